package render

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-renderer/internal/model"
)

func scenarioContent() *model.ResumeContent {
	return &model.ResumeContent{
		Projects: []model.Project{{
			RepoName:     "ecommerce-app",
			RepoURL:      "https://github.com/u/ecommerce-app",
			Description:  "<p>Built a store</p>",
			Bullets:      []string{"<p>Added <strong>checkout</strong></p>"},
			Technologies: []string{"React", "Node.js"},
		}},
	}
}

func scenarioProfile() *model.UserProfile {
	return &model.UserProfile{FullName: "Jane Dev", GithubUsername: "janedev"}
}

func fullProfile() *model.UserProfile {
	return &model.UserProfile{
		FullName:             "Jane Dev",
		GithubUsername:       "janedev",
		ProfessionalHeadline: "Backend engineer focused on payments",
		Location:             "Berlin",
		Email:                "jane@example.com",
		Education:            []model.Education{{Degree: "BSc", School: "TU Berlin", StartYear: 2014, EndYear: 2018}},
		WorkExperience:       []model.WorkExperience{{JobTitle: "Engineer", Company: "Acme", StartDate: "2019-05-01"}},
		Certifications:       []model.Certification{{Name: "CKA"}},
		Languages:            []model.Language{{Name: "German", Proficiency: "Native"}},
	}
}

func fullContent() *model.ResumeContent {
	c := scenarioContent()
	c.Skills = model.Skills{Frontend: []string{"React"}, Backend: []string{"Go", "Node.js"}}
	c.ProblemsSolved = []string{"<p>Reduced build time by 60%</p>"}
	return c
}

func heading(title string) string {
	return `<h2 class="section-title">` + title + `</h2>`
}

func TestRenderEndToEndScenario(t *testing.T) {
	out, err := Render(scenarioContent(), scenarioProfile(), "default")
	require.NoError(t, err)

	assert.Contains(t, out, `<h1 class="name">Jane Dev</h1>`)
	assert.Contains(t, out, heading("Projects"))
	assert.Contains(t, out, `<span class="project-title">ecommerce-app</span>`)
	assert.Contains(t, out, `<span class="project-tech">React, Node.js</span>`)
	assert.Contains(t, out, `class="project-link-github" href="https://github.com/u/ecommerce-app"`)
	assert.NotContains(t, out, "project-link-live")
	assert.Contains(t, out, `<div class="project-description">Built a store</div>`)
	assert.Contains(t, out, `<ul class="bullets"><li>Added <strong>checkout</strong></li></ul>`)

	for _, absent := range []string{"Skills", "Work Experience", "Education", "Certifications", "Languages", "Achievements"} {
		assert.NotContains(t, out, heading(absent))
	}
}

func TestRenderDeterministic(t *testing.T) {
	first, err := Render(fullContent(), fullProfile(), "default")
	require.NoError(t, err)
	second, err := Render(fullContent(), fullProfile(), "default")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderUnknownTemplateFallsBackToDefault(t *testing.T) {
	want, err := Render(fullContent(), fullProfile(), "default")
	require.NoError(t, err)

	for _, name := range []string{"nonexistent-template", "", "  ", "DEFAULT", "classic"} {
		got, err := Render(fullContent(), fullProfile(), name)
		require.NoError(t, err)
		assert.Equal(t, want, got, "template %q", name)
	}
}

func TestSelectTemplate(t *testing.T) {
	assert.Equal(t, TemplateHarvard, SelectTemplate("harvard").Name)
	assert.Equal(t, TemplateHarvard, SelectTemplate(" ATS ").Name)
	assert.Equal(t, TemplateDefault, SelectTemplate("modern").Name)

	names := []TemplateName{}
	for _, s := range Templates() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []TemplateName{TemplateDefault, TemplateHarvard}, names)
}

func TestRenderSuppressesEducationWhenEmpty(t *testing.T) {
	p := fullProfile()
	p.Education = []model.Education{}

	for _, name := range []string{"default", "harvard"} {
		out, err := Render(fullContent(), p, name)
		require.NoError(t, err)
		assert.NotContains(t, out, heading("Education"), "template %s", name)
	}
}

func TestRenderDefaultSectionOrder(t *testing.T) {
	out, err := Render(fullContent(), fullProfile(), "default")
	require.NoError(t, err)

	assertOrdered(t, out,
		`<h1 class="name">`,
		heading("Projects"),
		heading("Achievements"),
		heading("Skills"),
		heading("Work Experience"),
		heading("Education"),
		heading("Certifications"),
		heading("Languages"),
	)
	assert.NotContains(t, out, heading("Summary"))
	assert.Contains(t, out, `<p class="headline">Backend engineer focused on payments</p>`)
}

func TestRenderHarvardSectionOrder(t *testing.T) {
	out, err := Render(fullContent(), fullProfile(), "harvard")
	require.NoError(t, err)

	assertOrdered(t, out,
		`<h1 class="name">`,
		heading("Summary"),
		heading("Work Experience"),
		heading("Projects"),
		heading("Education"),
		heading("Skills"),
		heading("Achievements"),
		heading("Certifications"),
		heading("Languages"),
	)
	assert.Contains(t, out, `<strong>Backend:</strong> Go, Node.js`)
	assert.Contains(t, out, `class="resume resume-harvard"`)
	assert.NotContains(t, out, "<svg")
	assert.NotContains(t, out, "skill-tag")
	assert.NotContains(t, out, "display: flex")
	assert.Contains(t, out, "serif")
}

func TestRenderHarvardWithoutHeadlineOmitsSummary(t *testing.T) {
	p := fullProfile()
	p.ProfessionalHeadline = ""

	out, err := Render(fullContent(), p, "harvard")
	require.NoError(t, err)
	assert.NotContains(t, out, heading("Summary"))
}

func TestRenderDocumentShell(t *testing.T) {
	for _, s := range Templates() {
		out, err := s.Assemble(fullContent(), fullProfile())
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"), s.Name)
		assert.Contains(t, out, `<meta charset="UTF-8">`)
		assert.Equal(t, 1, strings.Count(out, `<link rel="stylesheet"`), s.Name)
		assert.Equal(t, 1, strings.Count(out, "<style>"), s.Name)
		assert.Equal(t, 1, strings.Count(out, `<div class="resume `), s.Name)
		assert.Contains(t, out, "<title>Jane Dev - Resume</title>")
		assert.Contains(t, out, "@page")
		assert.Contains(t, out, "break-inside: avoid")
		assert.Contains(t, out, "break-after: avoid")
	}
}

func TestRenderNilInputsUsePlaceholders(t *testing.T) {
	out, err := Render(nil, nil, "")
	require.NoError(t, err)

	assert.Contains(t, out, `<h1 class="name">Your Name</h1>`)
	assert.NotContains(t, out, `<section`)
}

func TestRenderDoesNotMutateInputs(t *testing.T) {
	c, p := fullContent(), fullProfile()

	_, err := Render(c, p, "harvard")
	require.NoError(t, err)
	_, err = Render(c, p, "default")
	require.NoError(t, err)

	assert.Equal(t, fullContent(), c)
	assert.Equal(t, fullProfile(), p)
}

func TestRenderConcurrentCallsAgree(t *testing.T) {
	want, err := Render(fullContent(), fullProfile(), "harvard")
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Render(fullContent(), fullProfile(), "harvard")
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func assertOrdered(t *testing.T, s string, parts ...string) {
	t.Helper()
	last := -1
	for _, p := range parts {
		idx := strings.Index(s, p)
		if !assert.GreaterOrEqual(t, idx, 0, "missing %q", p) {
			return
		}
		assert.Greater(t, idx, last, "%q out of order", p)
		last = idx
	}
}
