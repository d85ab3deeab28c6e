package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in loan templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []LoanTransform
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

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common loan what-ifs
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Rate templates
	registry.Register(Template{
		Name:        "rate_minus_1",
		Description: "Refinance at a rate 1 point lower",
		Transforms:  []LoanTransform{&AdjustRate{Points: decimal.NewFromInt(-1)}},
	})
	registry.Register(Template{
		Name:        "rate_minus_half",
		Description: "Refinance at a rate half a point lower",
		Transforms:  []LoanTransform{&AdjustRate{Points: decimal.RequireFromString("-0.5")}},
	})
	registry.Register(Template{
		Name:        "rate_plus_1",
		Description: "Rate 1 point higher (stress test)",
		Transforms:  []LoanTransform{&AdjustRate{Points: decimal.NewFromInt(1)}},
	})

	// Term templates
	registry.Register(Template{
		Name:        "extend_5yr",
		Description: "Extend the term by 5 years for a lower payment",
		Transforms:  []LoanTransform{&ExtendTerm{Years: 5}},
	})
	registry.Register(Template{
		Name:        "shorten_5yr",
		Description: "Shorten the term by 5 years to pay less interest",
		Transforms:  []LoanTransform{&ExtendTerm{Years: -5}},
	})
	registry.Register(Template{
		Name:        "term_15yr",
		Description: "Repay over 15 years",
		Transforms:  []LoanTransform{&SetTerm{Years: 15}},
	})

	// Interest mode templates
	registry.Register(Template{
		Name:        "flat",
		Description: "Same loan with flat interest on the original principal",
		Transforms:  []LoanTransform{&SetMode{Mode: domain.InterestFlat}},
	})
	registry.Register(Template{
		Name:        "reducing",
		Description: "Same loan with interest on the reducing balance",
		Transforms:  []LoanTransform{&SetMode{Mode: domain.InterestReducing}},
	})

	// Payment schedule templates
	registry.Register(Template{
		Name:        "quarterly",
		Description: "Pay quarterly over the same number of years",
		Transforms:  []LoanTransform{&SetFrequency{PerYear: 4}},
	})
	registry.Register(Template{
		Name:        "biweekly",
		Description: "Pay every two weeks over the same number of years",
		Transforms:  []LoanTransform{&SetFrequency{PerYear: 26}},
	})
	registry.Register(Template{
		Name:        "down_10pct",
		Description: "Put 10% of the principal down",
		Transforms:  []LoanTransform{&DownPayment{Percent: decimal.NewFromInt(10)}},
	})

	// Combination templates
	registry.Register(Template{
		Name:        "refi_15yr",
		Description: "Refinance into a 15 year loan at a rate 0.75 points lower",
		Transforms: []LoanTransform{
			&SetTerm{Years: 15},
			&AdjustRate{Points: decimal.RequireFromString("-0.75")},
		},
	})

	return registry
}

// ApplyTemplate applies a template to base loan terms
func ApplyTemplate(base domain.LoanTerms, template Template) (domain.LoanTerms, error) {
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

func templateCategory(name string) string {
	switch {
	case strings.HasPrefix(name, "rate_"):
		return "Rate"
	case strings.HasPrefix(name, "extend_"), strings.HasPrefix(name, "shorten_"), strings.HasPrefix(name, "term_"):
		return "Term"
	case name == "flat" || name == "reducing":
		return "Interest Mode"
	case name == "quarterly" || name == "biweekly" || strings.HasPrefix(name, "down_"):
		return "Payments"
	default:
		return "Combination Strategies"
	}
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := map[string][]Template{}
	for _, name := range registry.List() {
		t := registry.templates[name]
		category := templateCategory(name)
		categories[category] = append(categories[category], t)
	}

	for _, category := range []string{"Rate", "Term", "Interest Mode", "Payments", "Combination Strategies"} {
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
	sb.WriteString("  fincalc compare loan.yaml --with rate_minus_1,extend_5yr\n")
	sb.WriteString("  fincalc compare loan.yaml --transform adjust_rate:points=-0.25\n")

	return sb.String()
}
