package render

import (
	"strings"

	"resume-renderer/internal/model"
)

// ATS composers keep a single column of plain text: no icons, no tag chips,
// category labels written out so parsers can pick them up.

func composeATSHeader(_ *model.ResumeContent, p *model.UserProfile) string {
	return headerBlock("resume-header ats-header", displayName(p), "", p)
}

func composeSummary(_ *model.ResumeContent, p *model.UserProfile) string {
	h := strings.TrimSpace(p.ProfessionalHeadline)
	if h == "" {
		return ""
	}
	return section("summary", "Summary", `<p class="summary">`+escape(h)+`</p>`)
}

func composeATSProjects(c *model.ResumeContent, _ *model.UserProfile) string {
	var b strings.Builder
	for _, pr := range c.Projects {
		title := escape(pr.RepoName)
		if tech := topTechnologies(pr.Technologies); tech != "" {
			title += ` <span class="project-tech">| ` + tech + `</span>`
		}
		b.WriteString(`<div class="project-item">`)
		b.WriteString(`<div class="item-header"><span class="item-title">` + title + `</span></div>`)

		var links []string
		for _, u := range []string{pr.RepoURL, pr.LiveURL} {
			if strings.TrimSpace(u) != "" {
				links = append(links, link("", EnsureScheme(u), escape(StripProtocol(u))))
			}
		}
		if len(links) > 0 {
			b.WriteString(`<div class="item-links">` + JoinPresent(contactSeparator, links...) + `</div>`)
		}
		b.WriteString(richBlock("item-description", pr.Description))
		b.WriteString(bulletList("bullets", pr.Bullets))
		b.WriteString(`</div>`)
	}
	return section("projects", "Projects", b.String())
}

func composeSkillGroups(c *model.ResumeContent, _ *model.UserProfile) string {
	var b strings.Builder
	for _, cat := range c.Skills.Categories() {
		escaped := make([]string, 0, len(cat.Skills))
		for _, s := range cat.Skills {
			escaped = append(escaped, escape(s))
		}
		b.WriteString(`<p class="skill-group"><strong>` + cat.Label + `:</strong> ` + strings.Join(escaped, ", ") + `</p>`)
	}
	return section("skills", "Skills", b.String())
}

func composeLanguageLine(_ *model.ResumeContent, p *model.UserProfile) string {
	labels := languageLabels(p.Languages)
	if len(labels) == 0 {
		return ""
	}
	return section("languages", "Languages", `<p class="language-line">`+strings.Join(labels, ", ")+`</p>`)
}
