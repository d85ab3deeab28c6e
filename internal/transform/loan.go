package transform

import (
	"fmt"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
)

// SetMode switches the loan between reducing-balance and flat interest
type SetMode struct {
	Mode domain.InterestMode
}

func (sm *SetMode) Name() string {
	return "set_mode"
}

func (sm *SetMode) Description() string {
	return fmt.Sprintf("Use %s interest", sm.Mode)
}

func (sm *SetMode) Validate(base domain.LoanTerms) error {
	if _, err := domain.ParseInterestMode(string(sm.Mode)); err != nil {
		return NewTransformError(sm.Name(), "validate", "invalid mode", err)
	}
	return nil
}

func (sm *SetMode) Apply(base domain.LoanTerms) (domain.LoanTerms, error) {
	mode, err := domain.ParseInterestMode(string(sm.Mode))
	if err != nil {
		return base, err
	}
	base.Mode = mode
	return base, nil
}

// DownPayment reduces the borrowed principal by a fixed amount or by a
// percentage of the original principal. Exactly one of the two is set.
type DownPayment struct {
	Amount  decimal.Decimal
	Percent decimal.Decimal
}

func (dp *DownPayment) Name() string {
	return "down_payment"
}

func (dp *DownPayment) Description() string {
	if !dp.Percent.IsZero() {
		return fmt.Sprintf("Put %s%% down", dp.Percent)
	}
	return fmt.Sprintf("Put %s down", dp.Amount.StringFixed(2))
}

func (dp *DownPayment) amount(base domain.LoanTerms) decimal.Decimal {
	if !dp.Percent.IsZero() {
		return base.Principal.Mul(dp.Percent).Div(hundred)
	}
	return dp.Amount
}

func (dp *DownPayment) Validate(base domain.LoanTerms) error {
	if !dp.Amount.IsZero() && !dp.Percent.IsZero() {
		return NewTransformError(dp.Name(), "validate", "give either amount or percent, not both", nil)
	}
	if dp.Amount.IsNegative() || dp.Percent.IsNegative() {
		return NewTransformError(dp.Name(), "validate", "down payment cannot be negative", nil)
	}
	if down := dp.amount(base); !down.LessThan(base.Principal) {
		return NewTransformError(dp.Name(), "validate",
			fmt.Sprintf("down payment %s must be less than principal %s", down.StringFixed(2), base.Principal.StringFixed(2)), nil)
	}
	return nil
}

func (dp *DownPayment) Apply(base domain.LoanTerms) (domain.LoanTerms, error) {
	base.Principal = base.Principal.Sub(dp.amount(base))
	return base, nil
}
