package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// InterestMode selects how a loan accrues interest
type InterestMode string

const (
	// InterestReducing charges interest on the outstanding balance (amortized EMI).
	InterestReducing InterestMode = "reducing"
	// InterestFlat charges interest once on the original principal, spread evenly.
	InterestFlat InterestMode = "flat"
)

// ParseInterestMode converts user input into an InterestMode. Empty input means reducing.
func ParseInterestMode(s string) (InterestMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reducing", "reducing_balance", "amortized":
		return InterestReducing, nil
	case "flat", "simple":
		return InterestFlat, nil
	default:
		return "", NewInputError("mode", "unknown interest mode %q (valid: reducing, flat)", s)
	}
}

// LoanTerms holds the inputs of an amortized loan
type LoanTerms struct {
	Name              string          `yaml:"name,omitempty" json:"name,omitempty"`
	Principal         decimal.Decimal `yaml:"principal" json:"principal"`
	AnnualRatePercent decimal.Decimal `yaml:"annual_rate_percent" json:"annual_rate_percent"`
	TermPeriods       int             `yaml:"term_periods" json:"term_periods"`
	PeriodsPerYear    int             `yaml:"periods_per_year" json:"periods_per_year"`
	Mode              InterestMode    `yaml:"mode,omitempty" json:"mode,omitempty"`
}

// PeriodicRate returns the per-period rate as a fraction (annual percent / 100 / periods per year).
func (t LoanTerms) PeriodicRate() decimal.Decimal {
	if t.PeriodsPerYear <= 0 {
		return decimal.Zero
	}
	return t.AnnualRatePercent.Div(decimal.NewFromInt(100)).Div(decimal.NewFromInt(int64(t.PeriodsPerYear)))
}

// TermYears returns the loan term expressed in years
func (t LoanTerms) TermYears() decimal.Decimal {
	if t.PeriodsPerYear <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(t.TermPeriods)).Div(decimal.NewFromInt(int64(t.PeriodsPerYear)))
}

// Label returns the loan name or a generated description
func (t LoanTerms) Label() string {
	if t.Name != "" {
		return t.Name
	}
	return fmt.Sprintf("%s @ %s%% x %d", t.Principal.StringFixed(2), t.AnnualRatePercent.String(), t.TermPeriods)
}

// AmortizationRow is one period of a repayment schedule
type AmortizationRow struct {
	Period           int             `json:"period"`
	Payment          decimal.Decimal `json:"payment"`
	Interest         decimal.Decimal `json:"interest"`
	Principal        decimal.Decimal `json:"principal"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
}

// AmortizationSchedule is the full result of amortizing a loan
type AmortizationSchedule struct {
	Terms           LoanTerms         `json:"terms"`
	Mode            InterestMode      `json:"mode"`
	PeriodicPayment decimal.Decimal   `json:"periodicPayment"`
	Rows            []AmortizationRow `json:"rows"`
	TotalInterest   decimal.Decimal   `json:"totalInterest"`
	TotalPayment    decimal.Decimal   `json:"totalPayment"`
}

// InterestModeComparison places the reducing-balance and flat schedules of one loan side by side
type InterestModeComparison struct {
	Terms    LoanTerms             `json:"terms"`
	Reducing *AmortizationSchedule `json:"reducing"`
	Flat     *AmortizationSchedule `json:"flat"`

	// Flat minus reducing; positive means the flat loan costs more.
	PaymentDifference  decimal.Decimal `json:"paymentDifference"`
	InterestDifference decimal.Decimal `json:"interestDifference"`
}
