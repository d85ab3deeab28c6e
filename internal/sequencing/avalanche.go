package sequencing

import "sort"

// AvalancheStrategy: highest rate first, smaller balance breaking ties.
// Minimizes the interest carried forward.
type AvalancheStrategy struct{}

func NewAvalancheStrategy() *AvalancheStrategy { return &AvalancheStrategy{} }

func (s *AvalancheStrategy) Name() string { return "avalanche" }

func (s *AvalancheStrategy) Plan(debts []Debt, ctx StrategyContext) PrepaymentPlan {
	plan := newPlan(s.Name(), ctx)
	order := indices(len(debts))
	sort.SliceStable(order, func(a, b int) bool {
		da, db := debts[order[a]], debts[order[b]]
		if !da.RatePercent.Equal(db.RatePercent) {
			return da.RatePercent.GreaterThan(db.RatePercent)
		}
		return da.Balance.LessThan(db.Balance)
	})
	fillInOrder(&plan, debts, order)
	return plan
}

func indices(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}
