package sequencing

import (
	"context"
	"fmt"
	"sort"

	"github.com/rgehrsitz/fincalc/internal/calculation"
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Planner prices a strategy's allocations by re-amortizing each loan
type Planner struct {
	CalcEngine *calculation.CalculationEngine
}

// NewPlanner creates a planner on top of a calculation engine
func NewPlanner(calcEngine *calculation.CalculationEngine) *Planner {
	return &Planner{CalcEngine: calcEngine}
}

// Plan splits amount across loans with strategy and works out what each
// prepayment saves
func (p *Planner) Plan(ctx context.Context, loans []domain.LoanTerms, amount decimal.Decimal, strategy SequencingStrategy) (*PrepaymentPlan, error) {
	if !amount.IsPositive() {
		return nil, domain.NewInputError("amount", "must be positive, got %s", amount)
	}
	if len(loans) == 0 {
		return nil, domain.NewInputError("loans", "at least one loan is required")
	}

	before := make([]*domain.AmortizationSchedule, len(loans))
	for i, loan := range loans {
		schedule, err := p.CalcEngine.Amortize(loan)
		if err != nil {
			return nil, fmt.Errorf("loan %q: %w", loan.Label(), err)
		}
		before[i] = schedule
	}

	plan := strategy.Plan(DebtsFromLoans(loans), StrategyContext{Amount: amount})

	for i := range plan.Allocations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		alloc := &plan.Allocations[i]
		base := before[alloc.index]
		alloc.PaymentBefore = base.PeriodicPayment
		alloc.InterestBefore = base.TotalInterest

		if !alloc.PaidOff {
			recast := loans[alloc.index]
			recast.Principal = alloc.BalanceAfter
			after, err := p.CalcEngine.Amortize(recast)
			if err != nil {
				return nil, fmt.Errorf("loan %q after prepayment: %w", alloc.Loan, err)
			}
			alloc.PaymentAfter = after.PeriodicPayment
			alloc.InterestAfter = after.TotalInterest
		}
		alloc.InterestSaved = alloc.InterestBefore.Sub(alloc.InterestAfter)

		plan.TotalInterestSaved = plan.TotalInterestSaved.Add(alloc.InterestSaved)
		plan.TotalPaymentReduction = plan.TotalPaymentReduction.Add(alloc.PaymentBefore.Sub(alloc.PaymentAfter))
	}

	return &plan, nil
}

// CompareStrategies plans the amount with every built-in ordering strategy,
// most interest saved first
func (p *Planner) CompareStrategies(ctx context.Context, loans []domain.LoanTerms, amount decimal.Decimal) ([]*PrepaymentPlan, error) {
	strategies := []SequencingStrategy{
		NewAvalancheStrategy(),
		NewSnowballStrategy(),
		NewProportionalStrategy(),
	}

	plans := make([]*PrepaymentPlan, 0, len(strategies))
	for _, s := range strategies {
		plan, err := p.Plan(ctx, loans, amount, s)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}

	sort.SliceStable(plans, func(a, b int) bool {
		return plans[a].TotalInterestSaved.GreaterThan(plans[b].TotalInterestSaved)
	})
	return plans, nil
}
