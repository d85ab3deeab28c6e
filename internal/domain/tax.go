package domain

import "github.com/shopspring/decimal"

// TaxBracket is one contiguous income range taxed at a single marginal rate.
// A nil UpperBound marks the final, unbounded bracket.
type TaxBracket struct {
	LowerBound   decimal.Decimal  `yaml:"lower_bound" json:"lowerBound"`
	UpperBound   *decimal.Decimal `yaml:"upper_bound,omitempty" json:"upperBound,omitempty"`
	MarginalRate decimal.Decimal  `yaml:"marginal_rate" json:"marginalRate"`
}

// Unbounded reports whether the bracket has no upper limit
func (b TaxBracket) Unbounded() bool {
	return b.UpperBound == nil
}

// TaxSchedule is a named bracket set with its standard deduction and surcharge
type TaxSchedule struct {
	Name              string          `yaml:"name" json:"name"`
	Description       string          `yaml:"description,omitempty" json:"description,omitempty"`
	StandardDeduction decimal.Decimal `yaml:"standard_deduction" json:"standardDeduction"`
	SurchargeRate     decimal.Decimal `yaml:"surcharge_rate" json:"surchargeRate"`
	Brackets          []TaxBracket    `yaml:"brackets" json:"brackets"`
}

// BracketTax is the share of taxable income that fell into one bracket
type BracketTax struct {
	Bracket         TaxBracket      `json:"bracket"`
	AmountInBracket decimal.Decimal `json:"amountInBracket"`
	TaxInBracket    decimal.Decimal `json:"taxInBracket"`
}

// TaxResult is the bracket-by-bracket breakdown of a tax computation.
// Values are kept unrounded; rounding happens only for display.
type TaxResult struct {
	Income                  decimal.Decimal `json:"income"`
	Deductions              decimal.Decimal `json:"deductions"`
	TaxableIncome           decimal.Decimal `json:"taxableIncome"`
	Brackets                []BracketTax    `json:"brackets"`
	TotalTaxBeforeSurcharge decimal.Decimal `json:"totalTaxBeforeSurcharge"`
	SurchargeRate           decimal.Decimal `json:"surchargeRate"`
	Surcharge               decimal.Decimal `json:"surcharge"`
	TotalTax                decimal.Decimal `json:"totalTax"`
	EffectiveRate           decimal.Decimal `json:"effectiveRate"` // TotalTax / Income, zero when income is zero
	MarginalRate            decimal.Decimal `json:"marginalRate"`  // rate of the highest bracket reached
}
