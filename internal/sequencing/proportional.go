package sequencing

import "github.com/shopspring/decimal"

// ProportionalStrategy splits the amount by each loan's share of the combined
// balance, to the cent. The last loan takes the rounding remainder.
type ProportionalStrategy struct{}

func NewProportionalStrategy() *ProportionalStrategy { return &ProportionalStrategy{} }

func (s *ProportionalStrategy) Name() string { return "proportional" }

func (s *ProportionalStrategy) Plan(debts []Debt, ctx StrategyContext) PrepaymentPlan {
	plan := newPlan(s.Name(), ctx)

	total := decimal.Zero
	last := -1
	for i, d := range debts {
		if d.Balance.IsPositive() {
			total = total.Add(d.Balance)
			last = i
		}
	}
	if last < 0 {
		plan.finish()
		return plan
	}

	// Everything is paid off when the amount covers the combined balance
	if ctx.Amount.GreaterThanOrEqual(total) {
		fillInOrder(&plan, debts, indices(len(debts)))
		return plan
	}

	remaining := ctx.Amount
	for i, d := range debts {
		if !d.Balance.IsPositive() {
			continue
		}
		share := ctx.Amount.Mul(d.Balance).Div(total).Round(2)
		if i == last {
			share = remaining
		}
		if share.GreaterThan(d.Balance) {
			share = d.Balance
		}
		if share.GreaterThan(remaining) {
			share = remaining
		}
		if !share.IsPositive() {
			continue
		}
		plan.add(i, d, share)
		remaining = remaining.Sub(share)
	}
	plan.finish()
	return plan
}
