package sequencing

// CustomStrategy pays loans off in a user-specified order. Loans the sequence
// leaves out follow in their original order. If the sequence is invalid it
// falls back to avalanche.
type CustomStrategy struct {
	Sequence []string
}

func NewCustomStrategy(sequence []string) *CustomStrategy { return &CustomStrategy{Sequence: sequence} }

func (s *CustomStrategy) Name() string { return "custom" }

func (s *CustomStrategy) Plan(debts []Debt, ctx StrategyContext) PrepaymentPlan {
	lookup := make(map[string]int, len(debts))
	for i, d := range debts {
		lookup[d.Name] = i
	}

	// Validate sequence
	seen := map[string]bool{}
	valid := len(s.Sequence) > 0
	for _, name := range s.Sequence {
		if _, ok := lookup[name]; !ok || seen[name] {
			valid = false
			break
		}
		seen[name] = true
	}
	if !valid {
		plan := NewAvalancheStrategy().Plan(debts, ctx)
		plan.StrategyUsed = "custom->avalanche_fallback"
		plan.Notes = append([]string{"invalid or empty custom sequence - falling back to avalanche"}, plan.Notes...)
		return plan
	}

	order := make([]int, 0, len(debts))
	for _, name := range s.Sequence {
		order = append(order, lookup[name])
	}
	for i, d := range debts {
		if !seen[d.Name] {
			order = append(order, i)
		}
	}

	plan := newPlan(s.Name(), ctx)
	fillInOrder(&plan, debts, order)
	return plan
}
