package domain

import "github.com/shopspring/decimal"

// Worksheet is a batch of independent calculations loaded from a YAML file
type Worksheet struct {
	Name         string           `yaml:"name" json:"name"`
	Loans        []LoanTerms      `yaml:"loans,omitempty" json:"loans,omitempty"`
	Investments  []InvestmentPlan `yaml:"investments,omitempty" json:"investments,omitempty"`
	Taxes        []TaxComputation `yaml:"taxes,omitempty" json:"taxes,omitempty"`
	TaxSchedules []TaxSchedule    `yaml:"tax_schedules,omitempty" json:"tax_schedules,omitempty"`
}

// TaxComputation is one tax request inside a worksheet. Either Schedule names a
// built-in or worksheet schedule, or Brackets are given inline.
type TaxComputation struct {
	Name          string           `yaml:"name" json:"name"`
	Income        decimal.Decimal  `yaml:"income" json:"income"`
	Deductions    decimal.Decimal  `yaml:"deductions" json:"deductions"`
	Schedule      string           `yaml:"schedule,omitempty" json:"schedule,omitempty"`
	Brackets      []TaxBracket     `yaml:"brackets,omitempty" json:"brackets,omitempty"`
	SurchargeRate *decimal.Decimal `yaml:"surcharge_rate,omitempty" json:"surcharge_rate,omitempty"`

	// Apply the schedule's standard deduction on top of Deductions
	UseStandardDeduction bool `yaml:"use_standard_deduction,omitempty" json:"use_standard_deduction,omitempty"`
}

// NamedTaxResult pairs a tax result with the computation that produced it
type NamedTaxResult struct {
	Name     string     `json:"name"`
	Schedule string     `json:"schedule,omitempty"`
	Result   *TaxResult `json:"result"`
}

// LoanResult is the schedule for a loan's selected mode plus the side-by-side mode comparison
type LoanResult struct {
	Name       string                  `json:"name"`
	Schedule   *AmortizationSchedule   `json:"schedule"`
	Comparison *InterestModeComparison `json:"comparison"`
}

// WorksheetResult holds results in the same order as the worksheet inputs
type WorksheetResult struct {
	Name        string              `json:"name"`
	Loans       []LoanResult        `json:"loans,omitempty"`
	Investments []*GrowthProjection `json:"investments,omitempty"`
	Taxes       []NamedTaxResult    `json:"taxes,omitempty"`
}
