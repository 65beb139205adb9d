package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/finplan/internal/domain"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []HouseholdTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names in sorted order
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common household what-ifs
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Retirement timing
	registry.Register(Template{
		Name:        "retire_early_5",
		Description: "Retire 5 years earlier",
		Transforms:  []HouseholdTransform{&PostponeRetirement{Years: -5}},
	})
	registry.Register(Template{
		Name:        "retire_late_3",
		Description: "Work 3 more years before retiring",
		Transforms:  []HouseholdTransform{&PostponeRetirement{Years: 3}},
	})

	// Market returns
	registry.Register(Template{
		Name:        "return_plus_2",
		Description: "Expected return 2 points higher",
		Transforms:  []HouseholdTransform{&AdjustReturn{Delta: 2}},
	})
	registry.Register(Template{
		Name:        "return_minus_2",
		Description: "Expected return 2 points lower",
		Transforms:  []HouseholdTransform{&AdjustReturn{Delta: -2}},
	})

	// Cash flow
	registry.Register(Template{
		Name:        "save_more_20",
		Description: "Increase monthly savings by 20%",
		Transforms:  []HouseholdTransform{&AdjustSavings{Percent: 20}},
	})
	registry.Register(Template{
		Name:        "spend_less_10",
		Description: "Cut monthly expenses by 10% and save the difference",
		Transforms:  []HouseholdTransform{&AdjustExpenses{Percent: -10, RedirectToSavings: true}},
	})
	registry.Register(Template{
		Name:        "income_up_10",
		Description: "Raise monthly income by 10%",
		Transforms:  []HouseholdTransform{&AdjustIncome{Percent: 10}},
	})

	// Combinations
	registry.Register(Template{
		Name:        "conservative",
		Description: "Work 3 more years with returns 2 points lower",
		Transforms: []HouseholdTransform{
			&PostponeRetirement{Years: 3},
			&AdjustReturn{Delta: -2},
		},
	})
	registry.Register(Template{
		Name:        "aggressive",
		Description: "Save 20% more with returns 2 points higher",
		Transforms: []HouseholdTransform{
			&AdjustSavings{Percent: 20},
			&AdjustReturn{Delta: 2},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base household
func ApplyTemplate(base *domain.Household, template Template) (*domain.Household, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	order := []string{"Retirement Timing", "Market Returns", "Cash Flow", "Combination Strategies"}
	categories := make(map[string][]Template, len(order))

	for _, name := range registry.List() {
		template := registry.templates[name]
		switch {
		case strings.HasPrefix(name, "retire_"):
			categories["Retirement Timing"] = append(categories["Retirement Timing"], template)
		case strings.HasPrefix(name, "return_"):
			categories["Market Returns"] = append(categories["Market Returns"], template)
		case strings.HasPrefix(name, "save_"), strings.HasPrefix(name, "spend_"), strings.HasPrefix(name, "income_"):
			categories["Cash Flow"] = append(categories["Cash Flow"], template)
		default:
			categories["Combination Strategies"] = append(categories["Combination Strategies"], template)
		}
	}

	for _, category := range order {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-20s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  finplan compare household.yaml --with retire_early_5,save_more_20\n")
	sb.WriteString("  finplan compare household.yaml --with conservative,aggressive\n")

	return sb.String()
}
