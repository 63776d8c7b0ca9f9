package render

import (
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"resume-renderer/internal/model"
)

//go:embed templates/shell.html
var shellSource string

var shell = template.Must(template.New("shell").Parse(shellSource))

type shellData struct {
	Title      string
	FontURL    template.URL
	Stylesheet template.CSS
	Template   string
	Body       template.HTML
}

// Render builds the complete resume document for the named template. The
// preview and export surfaces both call it, so identical inputs must give
// byte-identical output: no clock, no randomness, no map iteration.
func Render(content *model.ResumeContent, profile *model.UserProfile, templateName string) (string, error) {
	return SelectTemplate(templateName).Assemble(content, profile)
}

// Assemble runs the strategy's composers in order and wraps their output in
// the document shell. Nil inputs render as empty snapshots.
func (s *Strategy) Assemble(content *model.ResumeContent, profile *model.UserProfile) (string, error) {
	if content == nil {
		content = &model.ResumeContent{}
	}
	if profile == nil {
		profile = &model.UserProfile{}
	}

	var body strings.Builder
	for _, compose := range s.Sections {
		body.WriteString(compose(content, profile))
	}

	data := shellData{
		Title:      displayName(profile) + " - Resume",
		FontURL:    template.URL(s.FontURL),
		Stylesheet: template.CSS(s.Stylesheet),
		Template:   string(s.Name),
		Body:       template.HTML(body.String()),
	}

	var out strings.Builder
	if err := shell.Execute(&out, data); err != nil {
		return "", fmt.Errorf("render %s document: %w", s.Name, err)
	}
	return out.String(), nil
}
