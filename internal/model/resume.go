package model

import "strings"

// Go models for the resume content and profile snapshots consumed by the
// renderer. Rich-text fields carry editor markup and must go through the
// sanitizer before they are embedded; everything else is plain text.

type Project struct {
	RepoName     string   `json:"repo_name"`
	RepoURL      string   `json:"repo_url,omitempty"`
	LiveURL      string   `json:"live_url,omitempty"`
	Description  string   `json:"description,omitempty"` // rich text
	Bullets      []string `json:"bullets,omitempty"`     // rich text
	Technologies []string `json:"technologies,omitempty"`
}

type Skills struct {
	Frontend  []string `json:"frontend,omitempty"`
	Backend   []string `json:"backend,omitempty"`
	Databases []string `json:"databases,omitempty"`
	Tools     []string `json:"tools,omitempty"`
	Other     []string `json:"other,omitempty"`
}

// SkillCategory is one labelled group of skills.
type SkillCategory struct {
	Key    string
	Label  string
	Skills []string
}

// Categories returns the non-empty categories in display order:
// frontend, backend, databases, tools, other.
func (s Skills) Categories() []SkillCategory {
	all := []SkillCategory{
		{Key: "frontend", Label: "Frontend", Skills: s.Frontend},
		{Key: "backend", Label: "Backend", Skills: s.Backend},
		{Key: "databases", Label: "Databases", Skills: s.Databases},
		{Key: "tools", Label: "Tools", Skills: s.Tools},
		{Key: "other", Label: "Other", Skills: s.Other},
	}
	out := make([]SkillCategory, 0, len(all))
	for _, c := range all {
		c.Skills = nonEmpty(c.Skills)
		if len(c.Skills) == 0 {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Flatten returns every skill in category order.
func (s Skills) Flatten() []string {
	var out []string
	for _, c := range s.Categories() {
		out = append(out, c.Skills...)
	}
	return out
}

type ResumeContent struct {
	// Role is the targeted role ("frontend", "full stack", ...) used when the
	// profile carries no professional headline.
	Role           string    `json:"role,omitempty"`
	Projects       []Project `json:"projects"`
	Skills         Skills    `json:"skills"`
	ProblemsSolved []string  `json:"problems_solved,omitempty"` // rich text
}

type Education struct {
	Degree    string   `json:"degree"`
	School    string   `json:"school"`
	StartYear int      `json:"start_year,omitempty"`
	EndYear   int      `json:"end_year,omitempty"`
	GPA       *float64 `json:"gpa,omitempty"`
}

type WorkExperience struct {
	JobTitle         string   `json:"job_title"`
	Company          string   `json:"company"`
	StartDate        string   `json:"start_date,omitempty"`
	EndDate          string   `json:"end_date,omitempty"`
	Description      string   `json:"description,omitempty"`      // rich text
	Responsibilities []string `json:"responsibilities,omitempty"` // rich text
}

type UserProfile struct {
	FullName             string           `json:"full_name,omitempty"`
	GithubUsername       string           `json:"github_username"`
	ProfessionalHeadline string           `json:"professional_headline,omitempty"`
	Location             string           `json:"location,omitempty"`
	Phone                string           `json:"phone,omitempty"`
	Email                string           `json:"email,omitempty"`
	PortfolioURL         string           `json:"portfolio_url,omitempty"`
	LinkedinURL          string           `json:"linkedin_url,omitempty"`
	Education            []Education      `json:"education,omitempty"`
	WorkExperience       []WorkExperience `json:"work_experience,omitempty"`
	Certifications       []Certification  `json:"certifications,omitempty"`
	Languages            []Language       `json:"languages,omitempty"`
}

// RenderRequest is the envelope accepted by the preview and export surfaces.
type RenderRequest struct {
	Content  ResumeContent `json:"content"`
	Profile  UserProfile   `json:"profile"`
	Template string        `json:"template,omitempty"`
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
