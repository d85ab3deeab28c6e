package sequencing

import (
	"context"
	"testing"

	"github.com/rgehrsitz/fincalc/internal/calculation"
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testLoans() []domain.LoanTerms {
	return []domain.LoanTerms{
		{Name: "card", Principal: d("5000"), AnnualRatePercent: d("18"), TermPeriods: 24, PeriodsPerYear: 12},
		{Name: "car", Principal: d("1200"), AnnualRatePercent: d("12"), TermPeriods: 12, PeriodsPerYear: 12, Mode: domain.InterestFlat},
		{Name: "mortgage", Principal: d("250000"), AnnualRatePercent: d("6.5"), TermPeriods: 360, PeriodsPerYear: 12},
	}
}

func allocated(plan PrepaymentPlan) map[string]string {
	out := map[string]string{}
	for _, a := range plan.Allocations {
		out[a.Loan] = a.Amount.StringFixed(2)
	}
	return out
}

func TestCreateStrategy(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"", "avalanche"},
		{"avalanche", "avalanche"},
		{"snowball", "snowball"},
		{"proportional", "proportional"},
		{"custom", "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			strategy, err := CreateStrategy(tt.name, nil)
			if err != nil {
				t.Fatalf("Expected strategy to be created, got %v", err)
			}
			if strategy.Name() != tt.expected {
				t.Errorf("Expected strategy name %s, got %s", tt.expected, strategy.Name())
			}
		})
	}

	_, err := CreateStrategy("highest_first", nil)
	if err == nil {
		t.Fatal("Expected error for unknown strategy")
	}
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Len(t, StrategyNames(), 4)
}

func TestAvalancheStrategy(t *testing.T) {
	plan := NewAvalancheStrategy().Plan(DebtsFromLoans(testLoans()), StrategyContext{Amount: d("6000")})

	assert.Equal(t, "avalanche", plan.StrategyUsed)
	require.Len(t, plan.Allocations, 2)
	assert.Equal(t, "card", plan.Allocations[0].Loan)
	assert.True(t, plan.Allocations[0].PaidOff)
	assert.Equal(t, map[string]string{"card": "5000.00", "car": "1000.00"}, allocated(plan))
	assert.True(t, plan.Allocations[1].BalanceAfter.Equal(d("200")))
	assert.True(t, plan.TotalAllocated.Equal(d("6000")))
	assert.True(t, plan.Unallocated.IsZero())
	assert.Empty(t, plan.Notes)
}

func TestSnowballStrategy(t *testing.T) {
	plan := NewSnowballStrategy().Plan(DebtsFromLoans(testLoans()), StrategyContext{Amount: d("6000")})

	require.Len(t, plan.Allocations, 2)
	assert.Equal(t, "car", plan.Allocations[0].Loan)
	assert.True(t, plan.Allocations[0].PaidOff)
	assert.Equal(t, map[string]string{"car": "1200.00", "card": "4800.00"}, allocated(plan))
}

func TestProportionalStrategy(t *testing.T) {
	plan := NewProportionalStrategy().Plan(DebtsFromLoans(testLoans()), StrategyContext{Amount: d("6000")})

	assert.Equal(t, map[string]string{"card": "117.10", "car": "28.10", "mortgage": "5854.80"}, allocated(plan))
	assert.True(t, plan.TotalAllocated.Equal(d("6000")), "shares add up to the amount")

	plan = NewProportionalStrategy().Plan(DebtsFromLoans(testLoans()), StrategyContext{Amount: d("300000")})
	require.Len(t, plan.Allocations, 3)
	for _, a := range plan.Allocations {
		assert.True(t, a.PaidOff, a.Loan)
	}
	assert.True(t, plan.Unallocated.Equal(d("43800")))

	plan = NewProportionalStrategy().Plan(nil, StrategyContext{Amount: d("10")})
	assert.Empty(t, plan.Allocations)
	assert.True(t, plan.Unallocated.Equal(d("10")))
}

func TestCustomStrategy(t *testing.T) {
	debts := DebtsFromLoans(testLoans())

	plan := NewCustomStrategy([]string{"mortgage"}).Plan(debts, StrategyContext{Amount: d("6000")})
	assert.Equal(t, "custom", plan.StrategyUsed)
	assert.Equal(t, map[string]string{"mortgage": "6000.00"}, allocated(plan))

	// loans left out of the sequence follow in input order
	plan = NewCustomStrategy([]string{"car"}).Plan(debts, StrategyContext{Amount: d("3000")})
	assert.Equal(t, map[string]string{"car": "1200.00", "card": "1800.00"}, allocated(plan))

	for _, sequence := range [][]string{nil, {"boat"}, {"car", "car"}} {
		plan = NewCustomStrategy(sequence).Plan(debts, StrategyContext{Amount: d("6000")})
		assert.Equal(t, "custom->avalanche_fallback", plan.StrategyUsed)
		require.NotEmpty(t, plan.Notes)
		assert.Contains(t, plan.Notes[0], "falling back to avalanche")
	}
}

func TestUnallocatedNote(t *testing.T) {
	plan := NewAvalancheStrategy().Plan(DebtsFromLoans(testLoans()), StrategyContext{Amount: d("300000")})
	assert.True(t, plan.Unallocated.Equal(d("43800")))
	require.Len(t, plan.Notes, 1)
	assert.Contains(t, plan.Notes[0], "43800.00 left unallocated")
}

func TestPlanner_Plan(t *testing.T) {
	planner := NewPlanner(calculation.NewCalculationEngine())

	plan, err := planner.Plan(context.Background(), testLoans(), d("6000"), NewAvalancheStrategy())
	require.NoError(t, err)
	require.Len(t, plan.Allocations, 2)

	card := plan.Allocations[0]
	assert.True(t, card.PaidOff)
	assert.True(t, card.PaymentAfter.IsZero())
	assert.True(t, card.InterestSaved.Equal(card.InterestBefore))
	assert.True(t, card.InterestBefore.IsPositive())

	car := plan.Allocations[1]
	assert.True(t, car.PaymentBefore.Equal(d("112")), "got %s", car.PaymentBefore)
	assert.True(t, car.InterestBefore.Equal(d("144")), "got %s", car.InterestBefore)
	assert.True(t, car.InterestAfter.Equal(d("24")), "got %s", car.InterestAfter)
	assert.True(t, car.InterestSaved.Equal(d("120")), "got %s", car.InterestSaved)
	assert.True(t, car.PaymentAfter.LessThan(car.PaymentBefore))

	assert.True(t, plan.TotalInterestSaved.Equal(card.InterestSaved.Add(car.InterestSaved)))
	assert.True(t, plan.TotalPaymentReduction.IsPositive())
}

func TestPlanner_Errors(t *testing.T) {
	planner := NewPlanner(calculation.NewCalculationEngine())
	ctx := context.Background()

	_, err := planner.Plan(ctx, testLoans(), decimal.Zero, NewAvalancheStrategy())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = planner.Plan(ctx, nil, d("100"), NewAvalancheStrategy())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad := append(testLoans(), domain.LoanTerms{Name: "bad", Principal: d("100"), PeriodsPerYear: 12})
	_, err = planner.Plan(ctx, bad, d("100"), NewAvalancheStrategy())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), `loan "bad"`)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = planner.Plan(cancelled, testLoans(), d("100"), NewAvalancheStrategy())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlanner_CompareStrategies(t *testing.T) {
	planner := NewPlanner(calculation.NewCalculationEngine())

	plans, err := planner.CompareStrategies(context.Background(), testLoans(), d("6000"))
	require.NoError(t, err)
	require.Len(t, plans, 3)

	names := []string{}
	for i, p := range plans {
		names = append(names, p.StrategyUsed)
		if i > 0 {
			assert.True(t, plans[i-1].TotalInterestSaved.GreaterThanOrEqual(p.TotalInterestSaved))
		}
	}
	assert.ElementsMatch(t, []string{"avalanche", "snowball", "proportional"}, names)
}

func TestFormatters(t *testing.T) {
	planner := NewPlanner(calculation.NewCalculationEngine())
	plan, err := planner.Plan(context.Background(), testLoans(), d("300000"), NewSnowballStrategy())
	require.NoError(t, err)

	tf := &TableFormatter{}
	out := tf.Format(plan)
	assert.Contains(t, out, "PREPAYMENT PLAN: 300,000.00 (strategy snowball)")
	assert.Contains(t, out, "paid off")
	assert.Contains(t, out, "Unallocated:        43,800.00")
	assert.Contains(t, out, "Note: amount exceeds the combined balances")

	plans, err := planner.CompareStrategies(context.Background(), testLoans(), d("6000"))
	require.NoError(t, err)
	out = tf.FormatComparison(plans)
	assert.Contains(t, out, "PREPAYMENT STRATEGY COMPARISON")
	assert.Contains(t, out, "proportional")

	js, err := (&JSONFormatter{Pretty: true}).Format(plan)
	require.NoError(t, err)
	assert.Contains(t, js, `"strategy_used": "snowball"`)
	assert.NotContains(t, js, "index")

	assert.Equal(t, "a-very-long-loan-...", tf.truncate("a-very-long-loan-name-here", 20))
}
