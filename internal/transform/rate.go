package transform

import (
	"fmt"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// AdjustRate moves the annual rate by a number of percentage points.
// This is useful for exploring "what if rates drop by 1%" refinancing scenarios.
type AdjustRate struct {
	Points decimal.Decimal // Percentage points to add; negative lowers the rate
}

func (ar *AdjustRate) Name() string {
	return "adjust_rate"
}

func (ar *AdjustRate) Description() string {
	if ar.Points.IsNegative() {
		return fmt.Sprintf("Lower the annual rate by %s points", ar.Points.Neg())
	}
	return fmt.Sprintf("Raise the annual rate by %s points", ar.Points)
}

func (ar *AdjustRate) Validate(base domain.LoanTerms) error {
	next := base.AnnualRatePercent.Add(ar.Points)
	if next.IsNegative() || next.GreaterThan(hundred) {
		return NewTransformError(ar.Name(), "validate",
			fmt.Sprintf("resulting rate %s%% is outside 0-100", next), nil)
	}
	return nil
}

func (ar *AdjustRate) Apply(base domain.LoanTerms) (domain.LoanTerms, error) {
	base.AnnualRatePercent = base.AnnualRatePercent.Add(ar.Points)
	return base, nil
}

// SetRate replaces the annual rate
type SetRate struct {
	Percent decimal.Decimal
}

func (sr *SetRate) Name() string {
	return "set_rate"
}

func (sr *SetRate) Description() string {
	return fmt.Sprintf("Set the annual rate to %s%%", sr.Percent)
}

func (sr *SetRate) Validate(base domain.LoanTerms) error {
	if sr.Percent.IsNegative() || sr.Percent.GreaterThan(hundred) {
		return NewTransformError(sr.Name(), "validate",
			fmt.Sprintf("rate must be between 0 and 100, got %s", sr.Percent), nil)
	}
	return nil
}

func (sr *SetRate) Apply(base domain.LoanTerms) (domain.LoanTerms, error) {
	base.AnnualRatePercent = sr.Percent
	return base, nil
}
