package transform

import (
	"fmt"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
)

// ExtendTerm lengthens (or, with negative Years, shortens) the loan term.
// The number of payments per year is unchanged.
type ExtendTerm struct {
	Years int
}

func (et *ExtendTerm) Name() string {
	return "extend_term"
}

func (et *ExtendTerm) Description() string {
	if et.Years < 0 {
		return fmt.Sprintf("Shorten the term by %d years", -et.Years)
	}
	return fmt.Sprintf("Extend the term by %d years", et.Years)
}

func (et *ExtendTerm) Validate(base domain.LoanTerms) error {
	if base.PeriodsPerYear < 1 {
		return NewTransformError(et.Name(), "validate", "base loan has no payment frequency", nil)
	}
	if next := base.TermPeriods + et.Years*base.PeriodsPerYear; next < 1 {
		return NewTransformError(et.Name(), "validate",
			fmt.Sprintf("term of %d periods would leave no payments", base.TermPeriods), nil)
	}
	return nil
}

func (et *ExtendTerm) Apply(base domain.LoanTerms) (domain.LoanTerms, error) {
	base.TermPeriods += et.Years * base.PeriodsPerYear
	return base, nil
}

// SetTerm replaces the loan term with a whole number of years
type SetTerm struct {
	Years int
}

func (st *SetTerm) Name() string {
	return "set_term"
}

func (st *SetTerm) Description() string {
	return fmt.Sprintf("Set the term to %d years", st.Years)
}

func (st *SetTerm) Validate(base domain.LoanTerms) error {
	if st.Years < 1 {
		return NewTransformError(st.Name(), "validate", fmt.Sprintf("years must be positive, got %d", st.Years), nil)
	}
	if base.PeriodsPerYear < 1 {
		return NewTransformError(st.Name(), "validate", "base loan has no payment frequency", nil)
	}
	return nil
}

func (st *SetTerm) Apply(base domain.LoanTerms) (domain.LoanTerms, error) {
	base.TermPeriods = st.Years * base.PeriodsPerYear
	return base, nil
}

// SetFrequency changes how many payments are made per year while keeping the
// loan's duration. The new period count is rounded to the nearest whole period.
type SetFrequency struct {
	PerYear int
}

func (sf *SetFrequency) Name() string {
	return "set_frequency"
}

func (sf *SetFrequency) Description() string {
	return fmt.Sprintf("Pay %d times per year", sf.PerYear)
}

func (sf *SetFrequency) Validate(base domain.LoanTerms) error {
	if sf.PerYear < 1 {
		return NewTransformError(sf.Name(), "validate", fmt.Sprintf("payments per year must be positive, got %d", sf.PerYear), nil)
	}
	if base.PeriodsPerYear < 1 {
		return NewTransformError(sf.Name(), "validate", "base loan has no payment frequency", nil)
	}
	return nil
}

func (sf *SetFrequency) Apply(base domain.LoanTerms) (domain.LoanTerms, error) {
	periods := base.TermYears().Mul(decimal.NewFromInt(int64(sf.PerYear))).Round(0).IntPart()
	if periods < 1 {
		periods = 1
	}
	base.TermPeriods = int(periods)
	base.PeriodsPerYear = sf.PerYear
	return base, nil
}
