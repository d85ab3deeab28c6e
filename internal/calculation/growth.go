package calculation

import (
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultPeriodsPerYear is used to annualize returns when a plan does not say
const DefaultPeriodsPerYear = 12

// Project compounds an investment plan period by period. Contributions are
// made at the start of each period (annuity-due), so each one earns interest
// in the period it is made.
func Project(plan domain.InvestmentPlan) (*domain.GrowthProjection, error) {
	return projectPlan(plan, DefaultMaxPeriods)
}

func validateInvestmentPlan(plan domain.InvestmentPlan, maxPeriods int) error {
	if plan.TotalPeriods <= 0 {
		return domain.NewInputError("total_periods", "must be positive, got %d", plan.TotalPeriods)
	}
	if plan.TotalPeriods > maxPeriods {
		return domain.NewInputError("total_periods", "must not exceed %d, got %d", maxPeriods, plan.TotalPeriods)
	}
	if plan.InitialAmount.IsNegative() {
		return domain.NewInputError("initial_amount", "cannot be negative, got %s", plan.InitialAmount)
	}
	if plan.PeriodicContribution.IsNegative() {
		return domain.NewInputError("periodic_contribution", "cannot be negative, got %s", plan.PeriodicContribution)
	}
	if plan.PeriodicRatePercent.IsNegative() || plan.PeriodicRatePercent.GreaterThan(maxRate) {
		return domain.NewInputError("periodic_rate_percent", "must be between 0 and 100, got %s", plan.PeriodicRatePercent)
	}
	if plan.PeriodsPerYear < 0 {
		return domain.NewInputError("periods_per_year", "cannot be negative, got %d", plan.PeriodsPerYear)
	}
	return nil
}

func projectPlan(plan domain.InvestmentPlan, maxPeriods int) (*domain.GrowthProjection, error) {
	if err := validateInvestmentPlan(plan, maxPeriods); err != nil {
		return nil, err
	}

	growth := decimal.NewFromInt(1).Add(plan.PeriodicRatePercent.Div(hundred))
	value := plan.InitialAmount
	contributed := plan.InitialAmount

	projection := &domain.GrowthProjection{
		Plan: plan,
		Rows: make([]domain.GrowthRow, 0, plan.TotalPeriods),
	}

	for period := 1; period <= plan.TotalPeriods; period++ {
		value = value.Add(plan.PeriodicContribution).Mul(growth).Round(internalPlaces)
		contributed = contributed.Add(plan.PeriodicContribution)

		reported := roundMoney(value)
		projection.Rows = append(projection.Rows, domain.GrowthRow{
			Period:              period,
			AccumulatedValue:    reported,
			TotalContributed:    contributed,
			AccumulatedInterest: reported.Sub(contributed),
		})
	}

	projection.FutureValue = roundMoney(value)
	projection.TotalContributed = contributed
	projection.TotalInterest = projection.FutureValue.Sub(contributed)

	ppy := plan.PeriodsPerYear
	if ppy == 0 {
		ppy = DefaultPeriodsPerYear
	}
	years := decimal.NewFromInt(int64(plan.TotalPeriods)).Div(decimal.NewFromInt(int64(ppy)))
	projection.Metrics = ReturnOnInvestment(contributed, projection.FutureValue, years)

	return projection, nil
}
