package compare

import (
	"fmt"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single loan with the metrics used to compare it
type ComparisonResult struct {
	LoanName    string                       `json:"loanName"`
	Description string                       `json:"description"`
	Schedule    *domain.AmortizationSchedule `json:"-"`

	// Loan terms (extracted from the schedule for display)
	Principal         decimal.Decimal     `json:"principal"`
	AnnualRatePercent decimal.Decimal     `json:"annualRatePercent"`
	TermPeriods       int                 `json:"termPeriods"`
	PeriodsPerYear    int                 `json:"periodsPerYear"`
	Mode              domain.InterestMode `json:"mode"`

	// Key Metrics
	PeriodicPayment decimal.Decimal `json:"periodicPayment"`
	TotalInterest   decimal.Decimal `json:"totalInterest"`
	TotalPayment    decimal.Decimal `json:"totalPayment"`
	TermYears       decimal.Decimal `json:"termYears"`

	// Comparison to Base
	PaymentDiffFromBase  decimal.Decimal `json:"paymentDiffFromBase"`
	InterestDiffFromBase decimal.Decimal `json:"interestDiffFromBase"`
	InterestPctFromBase  decimal.Decimal `json:"interestPctFromBase"`
	TotalDiffFromBase    decimal.Decimal `json:"totalDiffFromBase"`
}

// ComparisonSet represents a base loan and the alternatives compared against it
type ComparisonSet struct {
	BaseLoanName       string             `json:"baseLoanName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
}

// MetricsCalculator extracts key metrics from amortization schedules
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for a schedule
func (mc *MetricsCalculator) CalculateMetrics(name string, schedule *domain.AmortizationSchedule) ComparisonResult {
	terms := schedule.Terms
	return ComparisonResult{
		LoanName:          name,
		Schedule:          schedule,
		Principal:         terms.Principal,
		AnnualRatePercent: terms.AnnualRatePercent,
		TermPeriods:       terms.TermPeriods,
		PeriodsPerYear:    terms.PeriodsPerYear,
		Mode:              schedule.Mode,
		PeriodicPayment:   schedule.PeriodicPayment,
		TotalInterest:     schedule.TotalInterest,
		TotalPayment:      schedule.TotalPayment,
		TermYears:         terms.TermYears().Round(2),
	}
}

// CalculateComparison computes comparison metrics between a loan and the base
func (mc *MetricsCalculator) CalculateComparison(loan, base ComparisonResult) ComparisonResult {
	loan.PaymentDiffFromBase = loan.PeriodicPayment.Sub(base.PeriodicPayment)
	loan.InterestDiffFromBase = loan.TotalInterest.Sub(base.TotalInterest)
	loan.TotalDiffFromBase = loan.TotalPayment.Sub(base.TotalPayment)

	if !base.TotalInterest.IsZero() {
		loan.InterestPctFromBase = loan.InterestDiffFromBase.
			Div(base.TotalInterest).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	return loan
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	// Find lowest periodic payment
	lowestPayment := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.PeriodicPayment.LessThan(lowestPayment.PeriodicPayment) {
			lowestPayment = alt
		}
	}

	if lowestPayment != compSet.BaseResult {
		saving := compSet.BaseResult.PeriodicPayment.Sub(lowestPayment.PeriodicPayment)
		recommendations = append(recommendations,
			"Lowest Payment: "+lowestPayment.LoanName+" pays "+saving.StringFixed(2)+
				" less per period than the base loan")
	}

	// Find lowest total interest
	lowestInterest := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TotalInterest.LessThan(lowestInterest.TotalInterest) {
			lowestInterest = alt
		}
	}

	if lowestInterest != compSet.BaseResult {
		saving := compSet.BaseResult.TotalInterest.Sub(lowestInterest.TotalInterest)
		recommendations = append(recommendations,
			"Lowest Interest: "+lowestInterest.LoanName+" saves "+saving.StringFixed(2)+
				" in total interest")
	}

	// Find fastest payoff
	fastest := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TermYears.LessThan(fastest.TermYears) {
			fastest = alt
		}
	}

	if fastest != compSet.BaseResult {
		years := compSet.BaseResult.TermYears.Sub(fastest.TermYears)
		recommendations = append(recommendations,
			"Fastest Payoff: "+fastest.LoanName+" is paid off "+
				fmt.Sprintf("%s years sooner", years.String()))
	}

	return recommendations
}
