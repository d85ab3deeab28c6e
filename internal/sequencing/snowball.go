package sequencing

import "sort"

// SnowballStrategy: smallest balance first, higher rate breaking ties.
// Clears whole loans, and their payments, as early as possible.
type SnowballStrategy struct{}

func NewSnowballStrategy() *SnowballStrategy { return &SnowballStrategy{} }

func (s *SnowballStrategy) Name() string { return "snowball" }

func (s *SnowballStrategy) Plan(debts []Debt, ctx StrategyContext) PrepaymentPlan {
	plan := newPlan(s.Name(), ctx)
	order := indices(len(debts))
	sort.SliceStable(order, func(a, b int) bool {
		da, db := debts[order[a]], debts[order[b]]
		if !da.Balance.Equal(db.Balance) {
			return da.Balance.LessThan(db.Balance)
		}
		return da.RatePercent.GreaterThan(db.RatePercent)
	})
	fillInOrder(&plan, debts, order)
	return plan
}
