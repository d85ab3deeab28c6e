package domain

import "github.com/shopspring/decimal"

// InvestmentPlan describes a lump sum plus periodic contributions compounding at a fixed rate
type InvestmentPlan struct {
	Name                 string          `yaml:"name,omitempty" json:"name,omitempty"`
	InitialAmount        decimal.Decimal `yaml:"initial_amount" json:"initial_amount"`
	PeriodicContribution decimal.Decimal `yaml:"periodic_contribution" json:"periodic_contribution"`
	PeriodicRatePercent  decimal.Decimal `yaml:"periodic_rate_percent" json:"periodic_rate_percent"`
	TotalPeriods         int             `yaml:"total_periods" json:"total_periods"`

	// Optional; only used to annualize ROI metrics. Defaults to 12.
	PeriodsPerYear int `yaml:"periods_per_year,omitempty" json:"periods_per_year,omitempty"`
}

// GrowthRow is the state of an investment at the end of one period
type GrowthRow struct {
	Period              int             `json:"period"`
	AccumulatedValue    decimal.Decimal `json:"accumulatedValue"`
	TotalContributed    decimal.Decimal `json:"totalContributed"`
	AccumulatedInterest decimal.Decimal `json:"accumulatedInterest"`
}

// GrowthMetrics summarizes the return of an investment
type GrowthMetrics struct {
	Invested                decimal.Decimal `json:"invested"`
	FinalValue              decimal.Decimal `json:"finalValue"`
	Gain                    decimal.Decimal `json:"gain"`
	ROIPercent              decimal.Decimal `json:"roiPercent"`
	AnnualizedReturnPercent decimal.Decimal `json:"annualizedReturnPercent"`
	Years                   decimal.Decimal `json:"years"`
}

// GrowthProjection is the full result of projecting an investment plan
type GrowthProjection struct {
	Plan             InvestmentPlan  `json:"plan"`
	FutureValue      decimal.Decimal `json:"futureValue"`
	Rows             []GrowthRow     `json:"rows"`
	TotalContributed decimal.Decimal `json:"totalContributed"`
	TotalInterest    decimal.Decimal `json:"totalInterest"`
	Metrics          GrowthMetrics   `json:"metrics"`
}
