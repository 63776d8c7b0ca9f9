package render

import (
	_ "embed"
	"strings"
)

// TemplateName identifies a registered template strategy.
type TemplateName string

const (
	TemplateDefault TemplateName = "default"
	TemplateHarvard TemplateName = "harvard"
)

var (
	//go:embed templates/default.css
	defaultStylesheet string
	//go:embed templates/harvard.css
	harvardStylesheet string
)

// Strategy is a self-contained template: stylesheet, font and the ordered
// section composers. Strategies are static configuration and never mutated.
type Strategy struct {
	Name       TemplateName
	Title      string
	FontURL    string
	Stylesheet string
	Sections   []Composer
}

var defaultStrategy = &Strategy{
	Name:       TemplateDefault,
	Title:      "Default",
	FontURL:    "https://fonts.googleapis.com/css2?family=Inter:wght@400;500;600;700&display=swap",
	Stylesheet: defaultStylesheet,
	Sections: []Composer{
		composeHeader,
		composeProjects,
		composeAchievements,
		composeSkillTags,
		composeWorkExperience,
		composeEducation,
		composeCertifications,
		composeLanguageTags,
	},
}

var harvardStrategy = &Strategy{
	Name:       TemplateHarvard,
	Title:      "Harvard (ATS)",
	FontURL:    "https://fonts.googleapis.com/css2?family=EB+Garamond:wght@400;500;700&display=swap",
	Stylesheet: harvardStylesheet,
	Sections: []Composer{
		composeATSHeader,
		composeSummary,
		composeWorkExperience,
		composeATSProjects,
		composeEducation,
		composeSkillGroups,
		composeAchievements,
		composeCertifications,
		composeLanguageLine,
	},
}

// registry lists strategies in display order.
var registry = []*Strategy{defaultStrategy, harvardStrategy}

var aliases = map[string]TemplateName{
	"default": TemplateDefault,
	"classic": TemplateDefault,
	"harvard": TemplateHarvard,
	"ats":     TemplateHarvard,
}

// SelectTemplate resolves a stored template preference. Unknown or empty
// names resolve to the default template.
func SelectTemplate(name string) *Strategy {
	key, ok := aliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return defaultStrategy
	}
	for _, s := range registry {
		if s.Name == key {
			return s
		}
	}
	return defaultStrategy
}

// Templates returns the registered strategies in display order.
func Templates() []*Strategy {
	out := make([]*Strategy, len(registry))
	copy(out, registry)
	return out
}
