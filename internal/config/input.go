package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of worksheet and schedule files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a worksheet from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Worksheet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a worksheet document
func (ip *InputParser) Parse(data []byte) (*domain.Worksheet, error) {
	var ws domain.Worksheet
	if err := yaml.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateWorksheet(&ws); err != nil {
		return nil, fmt.Errorf("worksheet validation failed: %w", err)
	}

	return &ws, nil
}

// ValidateWorksheet checks the shape of a worksheet: it has work to do, names
// are unique within each section, and every tax entry says which brackets to
// use. Numeric ranges are left to the calculators.
func (ip *InputParser) ValidateWorksheet(ws *domain.Worksheet) error {
	if len(ws.Loans)+len(ws.Investments)+len(ws.Taxes) == 0 {
		return fmt.Errorf("worksheet has no loans, investments, or tax computations")
	}

	loanNames := make([]string, len(ws.Loans))
	for i, l := range ws.Loans {
		loanNames[i] = l.Name
		if _, err := domain.ParseInterestMode(string(l.Mode)); err != nil {
			return fmt.Errorf("loan %d (%s): %w", i+1, l.Name, err)
		}
	}
	if err := uniqueNames("loan", loanNames); err != nil {
		return err
	}

	planNames := make([]string, len(ws.Investments))
	for i, p := range ws.Investments {
		planNames[i] = p.Name
	}
	if err := uniqueNames("investment", planNames); err != nil {
		return err
	}

	scheduleNames := make([]string, len(ws.TaxSchedules))
	for i, s := range ws.TaxSchedules {
		if s.Name == "" {
			return fmt.Errorf("tax schedule %d: name is required", i+1)
		}
		scheduleNames[i] = s.Name
	}
	if err := uniqueNames("tax schedule", scheduleNames); err != nil {
		return err
	}

	taxNames := make([]string, len(ws.Taxes))
	for i, c := range ws.Taxes {
		taxNames[i] = c.Name
		if c.Schedule == "" && len(c.Brackets) == 0 {
			return fmt.Errorf("tax %d (%s): a schedule name or inline brackets is required", i+1, c.Name)
		}
	}
	return uniqueNames("tax", taxNames)
}

// uniqueNames rejects repeated non-empty names
func uniqueNames(kind string, names []string) error {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if seen[name] {
			return fmt.Errorf("duplicate %s name %q", kind, name)
		}
		seen[name] = true
	}
	return nil
}
