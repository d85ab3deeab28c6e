package calculation

import (
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Brackets are half-open [lower, upper). Taxable income equal to an upper
//    bound is taxed entirely inside that bracket.
//
// 2. Every bracket appears in the breakdown, including the ones income never
//    reached (amount and tax of zero).
//
// 3. The surcharge (cess) is a flat rate on the total bracket tax, never on
//    individual brackets.
//
// 4. Nothing is rounded here. Formatters round for display.

// ComputeTax applies a marginal bracket schedule to income less deductions and
// adds a flat surcharge on the resulting tax
func ComputeTax(income, deductions decimal.Decimal, brackets []domain.TaxBracket, surchargeRate decimal.Decimal) (*domain.TaxResult, error) {
	if income.IsNegative() {
		return nil, domain.NewInputError("income", "cannot be negative, got %s", income)
	}
	if deductions.IsNegative() {
		return nil, domain.NewInputError("deductions", "cannot be negative, got %s", deductions)
	}
	if surchargeRate.IsNegative() || surchargeRate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, domain.NewInputError("surcharge_rate", "must be between 0 and 1, got %s", surchargeRate)
	}
	if err := ValidateBrackets(brackets); err != nil {
		return nil, err
	}

	taxable := decimal.Max(decimal.Zero, income.Sub(deductions))

	result := &domain.TaxResult{
		Income:        income,
		Deductions:    deductions,
		TaxableIncome: taxable,
		Brackets:      make([]domain.BracketTax, 0, len(brackets)),
		SurchargeRate: surchargeRate,
		MarginalRate:  brackets[0].MarginalRate,
	}

	for _, bracket := range brackets {
		top := taxable
		if !bracket.Unbounded() {
			top = decimal.Min(taxable, *bracket.UpperBound)
		}
		amount := decimal.Max(decimal.Zero, top.Sub(bracket.LowerBound))
		tax := amount.Mul(bracket.MarginalRate)

		if amount.IsPositive() {
			result.MarginalRate = bracket.MarginalRate
		}
		result.TotalTaxBeforeSurcharge = result.TotalTaxBeforeSurcharge.Add(tax)
		result.Brackets = append(result.Brackets, domain.BracketTax{
			Bracket:         bracket,
			AmountInBracket: amount,
			TaxInBracket:    tax,
		})
	}

	result.Surcharge = result.TotalTaxBeforeSurcharge.Mul(surchargeRate)
	result.TotalTax = result.TotalTaxBeforeSurcharge.Add(result.Surcharge)
	if income.IsPositive() {
		result.EffectiveRate = result.TotalTax.Div(income)
	}

	return result, nil
}

// ValidateBrackets checks that brackets partition [0, ∞): the first starts at
// zero, each starts where the previous ended, bounds strictly increase, and
// only the last is unbounded
func ValidateBrackets(brackets []domain.TaxBracket) error {
	if len(brackets) == 0 {
		return domain.NewInputError("brackets", "at least one bracket is required")
	}
	if !brackets[0].LowerBound.IsZero() {
		return domain.NewInputError("brackets", "first bracket must start at 0, got %s", brackets[0].LowerBound)
	}

	one := decimal.NewFromInt(1)
	last := len(brackets) - 1
	for i, b := range brackets {
		if b.MarginalRate.IsNegative() || b.MarginalRate.GreaterThan(one) {
			return domain.NewInputError("brackets", "bracket %d rate must be between 0 and 1, got %s", i+1, b.MarginalRate)
		}
		if b.Unbounded() {
			if i != last {
				return domain.NewInputError("brackets", "only the last bracket may be unbounded (bracket %d is)", i+1)
			}
			continue
		}
		if i == last {
			return domain.NewInputError("brackets", "last bracket must be unbounded, got upper bound %s", *b.UpperBound)
		}
		if !b.UpperBound.GreaterThan(b.LowerBound) {
			return domain.NewInputError("brackets", "bracket %d upper bound %s must exceed lower bound %s", i+1, *b.UpperBound, b.LowerBound)
		}
		if next := brackets[i+1]; !next.LowerBound.Equal(*b.UpperBound) {
			return domain.NewInputError("brackets", "bracket %d starts at %s but bracket %d ends at %s", i+2, next.LowerBound, i+1, *b.UpperBound)
		}
	}
	return nil
}

// TaxCalculator binds a named schedule so callers only supply income
type TaxCalculator struct {
	Schedule domain.TaxSchedule
}

// NewTaxCalculator validates a schedule and returns a calculator for it
func NewTaxCalculator(schedule domain.TaxSchedule) (*TaxCalculator, error) {
	if err := ValidateSchedule(schedule); err != nil {
		return nil, err
	}
	return &TaxCalculator{Schedule: schedule}, nil
}

// Calculate computes tax on income after extra deductions, plus the schedule's
// standard deduction when useStandard is set
func (tc *TaxCalculator) Calculate(income, extraDeductions decimal.Decimal, useStandard bool) (*domain.TaxResult, error) {
	deductions := extraDeductions
	if useStandard {
		if extraDeductions.IsNegative() {
			return nil, domain.NewInputError("deductions", "cannot be negative, got %s", extraDeductions)
		}
		deductions = deductions.Add(tc.Schedule.StandardDeduction)
	}
	return ComputeTax(income, deductions, tc.Schedule.Brackets, tc.Schedule.SurchargeRate)
}

// ValidateSchedule checks a schedule's brackets, deduction, and surcharge
func ValidateSchedule(schedule domain.TaxSchedule) error {
	if schedule.StandardDeduction.IsNegative() {
		return domain.NewInputError("standard_deduction", "schedule %q: cannot be negative, got %s", schedule.Name, schedule.StandardDeduction)
	}
	if schedule.SurchargeRate.IsNegative() || schedule.SurchargeRate.GreaterThan(decimal.NewFromInt(1)) {
		return domain.NewInputError("surcharge_rate", "schedule %q: must be between 0 and 1, got %s", schedule.Name, schedule.SurchargeRate)
	}
	return ValidateBrackets(schedule.Brackets)
}
