package render

import (
	"fmt"
	"strconv"
	"strings"

	"resume-renderer/internal/model"
)

// Composer renders one resume section, or "" when the section has no data.
// Composers are pure: they never mutate their inputs.
type Composer func(c *model.ResumeContent, p *model.UserProfile) string

const (
	placeholderName    = "Your Name"
	placeholderTitle   = "Job Title"
	placeholderCompany = "Company Name"
	placeholderDate    = "Date"
	placeholderDegree  = "Degree"
	presentLabel       = "Present"

	contactSeparator = " | "
	maxProjectTech   = 3
)

const (
	githubIcon = `<svg class="icon" viewBox="0 0 16 16" width="12" height="12" aria-hidden="true"><path fill="currentColor" d="M8 0C3.58 0 0 3.58 0 8c0 3.54 2.29 6.53 5.47 7.59.4.07.55-.17.55-.38 0-.19-.01-.82-.01-1.49-2.01.37-2.53-.49-2.69-.94-.09-.23-.48-.94-.82-1.13-.28-.15-.68-.52-.01-.53.63-.01 1.08.58 1.23.82.72 1.21 1.87.87 2.33.66.07-.52.28-.87.51-1.07-1.78-.2-3.64-.89-3.64-3.95 0-.87.31-1.59.82-2.15-.08-.2-.36-1.02.08-2.12 0 0 .67-.21 2.2.82.64-.18 1.32-.27 2-.27.68 0 1.36.09 2 .27 1.53-1.04 2.2-.82 2.2-.82.44 1.1.16 1.92.08 2.12.51.56.82 1.27.82 2.15 0 3.07-1.87 3.75-3.65 3.95.29.25.54.73.54 1.48 0 1.07-.01 1.93-.01 2.2 0 .21.15.46.55.38A8.013 8.013 0 0016 8c0-4.42-3.58-8-8-8z"/></svg>`
	liveIcon   = `<svg class="icon" viewBox="0 0 16 16" width="12" height="12" aria-hidden="true"><path fill="currentColor" d="M3.75 2h3.5a.75.75 0 0 1 0 1.5h-3.5a.25.25 0 0 0-.25.25v8.5c0 .138.112.25.25.25h8.5a.25.25 0 0 0 .25-.25v-3.5a.75.75 0 0 1 1.5 0v3.5A1.75 1.75 0 0 1 12.25 14h-8.5A1.75 1.75 0 0 1 2 12.25v-8.5C2 2.784 2.784 2 3.75 2Zm6.854-1h4.146a.25.25 0 0 1 .25.25v4.146a.25.25 0 0 1-.427.177L13.03 4.03 9.28 7.78a.751.751 0 0 1-1.042-.018.751.751 0 0 1-.018-1.042l3.75-3.75-1.543-1.543A.25.25 0 0 1 10.604 1Z"/></svg>`
)

// section wraps a body in a titled section. An empty body yields nothing, so
// no heading is ever emitted for a section without data.
func section(class, title, body string) string {
	if body == "" {
		return ""
	}
	return fmt.Sprintf(`<section class="section section-%s"><h2 class="section-title">%s</h2>%s</section>`, class, title, body)
}

// bulletList renders sanitized rich-text items, skipping ones that sanitize
// to nothing.
func bulletList(class string, items []string) string {
	var b strings.Builder
	for _, it := range items {
		if clean := Sanitize(it); clean != "" {
			b.WriteString("<li>" + clean + "</li>")
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return `<ul class="` + class + `">` + b.String() + `</ul>`
}

func richBlock(class, raw string) string {
	clean := Sanitize(raw)
	if clean == "" {
		return ""
	}
	return `<div class="` + class + `">` + clean + `</div>`
}

func link(class, href, label string) string {
	if class != "" {
		return fmt.Sprintf(`<a class="%s" href="%s">%s</a>`, class, escape(href), label)
	}
	return fmt.Sprintf(`<a href="%s">%s</a>`, escape(href), label)
}

func displayName(p *model.UserProfile) string {
	switch {
	case strings.TrimSpace(p.FullName) != "":
		return p.FullName
	case strings.TrimSpace(p.GithubUsername) != "":
		return p.GithubUsername
	default:
		return placeholderName
	}
}

func headline(c *model.ResumeContent, p *model.UserProfile) string {
	if h := strings.TrimSpace(p.ProfessionalHeadline); h != "" {
		return h
	}
	role := strings.TrimSpace(c.Role)
	if role == "" {
		role = "software"
	}
	return Capitalize(role) + " Developer"
}

func contactLine(p *model.UserProfile) string {
	return JoinPresent(contactSeparator, escape(p.Location), escape(p.Phone), escape(p.Email))
}

func githubURL(username string) string {
	username = strings.TrimSpace(username)
	if username == "" {
		return ""
	}
	return "https://github.com/" + username
}

func profileLinks(p *model.UserProfile) string {
	var links []string
	for _, u := range []string{githubURL(p.GithubUsername), p.LinkedinURL, p.PortfolioURL} {
		if strings.TrimSpace(u) == "" {
			continue
		}
		links = append(links, link("", EnsureScheme(u), escape(StripProtocol(u))))
	}
	return JoinPresent(contactSeparator, links...)
}

func headerBlock(class string, name, subtitle string, p *model.UserProfile) string {
	var b strings.Builder
	b.WriteString(`<header class="` + class + `">`)
	b.WriteString(`<h1 class="name">` + escape(name) + `</h1>`)
	if subtitle != "" {
		b.WriteString(`<p class="headline">` + escape(subtitle) + `</p>`)
	}
	if contact := contactLine(p); contact != "" {
		b.WriteString(`<p class="contact">` + contact + `</p>`)
	}
	if links := profileLinks(p); links != "" {
		b.WriteString(`<p class="links">` + links + `</p>`)
	}
	b.WriteString(`</header>`)
	return b.String()
}

func composeHeader(c *model.ResumeContent, p *model.UserProfile) string {
	return headerBlock("resume-header", displayName(p), headline(c, p), p)
}

func topTechnologies(tech []string) string {
	var picked []string
	for _, t := range tech {
		if len(picked) == maxProjectTech {
			break
		}
		if strings.TrimSpace(t) != "" {
			picked = append(picked, escape(t))
		}
	}
	return strings.Join(picked, ", ")
}

func composeProjects(c *model.ResumeContent, _ *model.UserProfile) string {
	var b strings.Builder
	for _, pr := range c.Projects {
		b.WriteString(`<div class="project-item"><div class="project-header">`)
		b.WriteString(`<span class="project-title">` + escape(pr.RepoName) + `</span>`)
		if tech := topTechnologies(pr.Technologies); tech != "" {
			b.WriteString(`<span class="project-tech">` + tech + `</span>`)
		}
		var icons string
		if strings.TrimSpace(pr.RepoURL) != "" {
			icons += link("project-link-github", EnsureScheme(pr.RepoURL), githubIcon)
		}
		if strings.TrimSpace(pr.LiveURL) != "" {
			icons += link("project-link-live", EnsureScheme(pr.LiveURL), liveIcon)
		}
		if icons != "" {
			b.WriteString(`<span class="project-links">` + icons + `</span>`)
		}
		b.WriteString(`</div>`)
		b.WriteString(richBlock("project-description", pr.Description))
		b.WriteString(bulletList("bullets", pr.Bullets))
		b.WriteString(`</div>`)
	}
	return section("projects", "Projects", b.String())
}

func composeAchievements(c *model.ResumeContent, _ *model.UserProfile) string {
	return section("achievements", "Achievements", bulletList("bullets", c.ProblemsSolved))
}

func composeSkillTags(c *model.ResumeContent, _ *model.UserProfile) string {
	skills := c.Skills.Flatten()
	if len(skills) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<div class="skill-tags">`)
	for _, s := range skills {
		b.WriteString(`<span class="skill-tag">` + escape(s) + `</span>`)
	}
	b.WriteString(`</div>`)
	return section("skills", "Skills", b.String())
}

func dateRange(start, end string) string {
	from, ok := FormatDate(start)
	if !ok {
		from = placeholderDate
	}
	to, ok := FormatDate(end)
	if !ok {
		to = presentLabel
	}
	return from + " - " + to
}

func orPlaceholder(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

func itemHeader(title, dates string) string {
	h := `<div class="item-header"><span class="item-title">` + escape(title) + `</span>`
	if dates != "" {
		h += `<span class="item-date">` + escape(dates) + `</span>`
	}
	return h + `</div>`
}

func composeWorkExperience(_ *model.ResumeContent, p *model.UserProfile) string {
	var b strings.Builder
	for _, w := range p.WorkExperience {
		b.WriteString(`<div class="work-item">`)
		b.WriteString(itemHeader(orPlaceholder(w.JobTitle, placeholderTitle), dateRange(w.StartDate, w.EndDate)))
		b.WriteString(`<div class="item-subtitle">` + escape(orPlaceholder(w.Company, placeholderCompany)) + `</div>`)
		b.WriteString(richBlock("item-description", w.Description))
		b.WriteString(bulletList("bullets", w.Responsibilities))
		b.WriteString(`</div>`)
	}
	return section("work", "Work Experience", b.String())
}

func yearRange(start, end int) string {
	switch {
	case start > 0 && end > 0:
		return strconv.Itoa(start) + " - " + strconv.Itoa(end)
	case start > 0:
		return strconv.Itoa(start) + " - " + presentLabel
	case end > 0:
		return strconv.Itoa(end)
	default:
		return ""
	}
}

func composeEducation(_ *model.ResumeContent, p *model.UserProfile) string {
	var b strings.Builder
	for _, e := range p.Education {
		b.WriteString(`<div class="education-item">`)
		b.WriteString(itemHeader(orPlaceholder(e.Degree, placeholderDegree), yearRange(e.StartYear, e.EndYear)))
		if strings.TrimSpace(e.School) != "" {
			b.WriteString(`<div class="item-subtitle">` + escape(e.School) + `</div>`)
		}
		if e.GPA != nil {
			b.WriteString(`<div class="item-meta">GPA: ` + strconv.FormatFloat(*e.GPA, 'f', -1, 64) + `</div>`)
		}
		b.WriteString(`</div>`)
	}
	return section("education", "Education", b.String())
}

func certificationLabel(cert model.Certification) string {
	label := escape(cert.Name)
	if strings.TrimSpace(cert.Issuer) != "" {
		label += " - " + escape(cert.Issuer)
	}
	if strings.TrimSpace(cert.Year) != "" {
		label += " (" + escape(cert.Year) + ")"
	}
	return label
}

func composeCertifications(_ *model.ResumeContent, p *model.UserProfile) string {
	var b strings.Builder
	for _, cert := range p.Certifications {
		if strings.TrimSpace(cert.Name) == "" {
			continue
		}
		b.WriteString(`<li>` + certificationLabel(cert))
		if strings.TrimSpace(cert.URL) != "" {
			b.WriteString(" " + link("cert-link", EnsureScheme(cert.URL), escape(LinkLabel(cert.URL))))
		}
		b.WriteString(`</li>`)
	}
	if b.Len() == 0 {
		return ""
	}
	return section("certifications", "Certifications", `<ul class="cert-list">`+b.String()+`</ul>`)
}

func languageLabels(langs []model.Language) []string {
	var out []string
	for _, l := range langs {
		if strings.TrimSpace(l.Name) == "" {
			continue
		}
		label := escape(l.Name)
		if strings.TrimSpace(l.Proficiency) != "" {
			label += " (" + escape(l.Proficiency) + ")"
		}
		out = append(out, label)
	}
	return out
}

func composeLanguageTags(_ *model.ResumeContent, p *model.UserProfile) string {
	labels := languageLabels(p.Languages)
	if len(labels) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<div class="language-tags">`)
	for _, l := range labels {
		b.WriteString(`<span class="language-tag">` + l + `</span>`)
	}
	b.WriteString(`</div>`)
	return section("languages", "Languages", b.String())
}
