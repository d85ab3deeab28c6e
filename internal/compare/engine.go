package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/fincalc/internal/calculation"
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/rgehrsitz/fincalc/internal/transform"
)

// CompareEngine orchestrates loan comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseLoanName string   // Name of the base loan; empty selects the first loan
	Templates    []string // Template names to apply, one alternative each
	Transforms   []string // Transform specs ("adjust_rate:points=-1"), one alternative each
}

// findLoan returns the named loan, or the first loan when name is empty
func findLoan(ws *domain.Worksheet, name string) (domain.LoanTerms, error) {
	if len(ws.Loans) == 0 {
		return domain.LoanTerms{}, fmt.Errorf("worksheet has no loans")
	}
	if name == "" {
		return ws.Loans[0], nil
	}
	for _, loan := range ws.Loans {
		if loan.Name == name {
			return loan, nil
		}
	}
	return domain.LoanTerms{}, fmt.Errorf("loan %s not found in worksheet", name)
}

func (ce *CompareEngine) evaluate(ctx context.Context, name string, terms domain.LoanTerms) (ComparisonResult, error) {
	if err := ctx.Err(); err != nil {
		return ComparisonResult{}, err
	}
	schedule, err := ce.CalcEngine.Amortize(terms)
	if err != nil {
		return ComparisonResult{}, err
	}
	return ce.MetricsCalculator.CalculateMetrics(name, schedule), nil
}

// Compare evaluates the base loan against variants built from templates and transform specs
func (ce *CompareEngine) Compare(
	ctx context.Context,
	ws *domain.Worksheet,
	options CompareOptions,
) (*ComparisonSet, error) {

	baseLoan, err := findLoan(ws, options.BaseLoanName)
	if err != nil {
		return nil, err
	}
	baseName := baseLoan.Label()

	baseResult, err := ce.evaluate(ctx, baseName, baseLoan)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base loan: %w", err)
	}
	baseResult.Description = "Base loan"

	alternatives := []ComparisonResult{}

	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modified, err := transform.ApplyTemplate(baseLoan, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}

		altResult, err := ce.evaluate(ctx, baseName+"_"+templateName, modified)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate loan %s: %w", templateName, err)
		}
		altResult.Description = template.Description
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	for _, spec := range options.Transforms {
		t, err := ce.TransformRegistry.ParseTransformSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("invalid transform %q: %w", spec, err)
		}

		modified, err := transform.ApplyTransforms(baseLoan, []transform.LoanTransform{t})
		if err != nil {
			return nil, fmt.Errorf("failed to apply transform %s: %w", spec, err)
		}

		altResult, err := ce.evaluate(ctx, baseName+"_"+t.Name(), modified)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate loan %s: %w", spec, err)
		}
		altResult.Description = t.Description()
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	compSet := &ComparisonSet{
		BaseLoanName:       baseName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// CompareLoans compares loans defined in the worksheet (not using templates)
func (ce *CompareEngine) CompareLoans(
	ctx context.Context,
	ws *domain.Worksheet,
	baseLoanName string,
	alternativeLoanNames []string,
) (*ComparisonSet, error) {

	baseLoan, err := findLoan(ws, baseLoanName)
	if err != nil {
		return nil, err
	}
	baseResult, err := ce.evaluate(ctx, baseLoan.Label(), baseLoan)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base loan: %w", err)
	}

	alternatives := []ComparisonResult{}

	for _, altName := range alternativeLoanNames {
		if altName == "" {
			return nil, fmt.Errorf("alternative loan name cannot be empty")
		}
		altLoan, err := findLoan(ws, altName)
		if err != nil {
			return nil, fmt.Errorf("alternative %w", err)
		}

		altResult, err := ce.evaluate(ctx, altName, altLoan)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate loan %s: %w", altName, err)
		}
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	compSet := &ComparisonSet{
		BaseLoanName:       baseResult.LoanName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
