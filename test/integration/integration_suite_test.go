package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rgehrsitz/fincalc/internal/breakeven"
	"github.com/rgehrsitz/fincalc/internal/calculation"
	"github.com/rgehrsitz/fincalc/internal/compare"
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/rgehrsitz/fincalc/internal/output"
	"github.com/rgehrsitz/fincalc/internal/sequencing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

// TestIntegrationSuite runs the cross-package flows against one worksheet
func TestIntegrationSuite(t *testing.T) {
	t.Run("Output_Formats", testOutputFormats)
	t.Run("Comparison", testComparison)
	t.Run("Prepayment", testPrepayment)
	t.Run("Break_Even", testBreakEven)
	t.Run("Error_Handling", testErrorHandling)
}

func testOutputFormats(t *testing.T) {
	ws := loadWorksheet(t)
	results, err := calculation.NewCalculationEngine().RunWorksheet(context.Background(), ws)
	require.NoError(t, err)

	for _, name := range output.AvailableFormatterNames() {
		t.Run(fmt.Sprintf("format_%s", name), func(t *testing.T) {
			f := output.GetFormatterByName(name)
			require.NotNil(t, f)
			data, err := f.Format(results)
			require.NoError(t, err, "Should generate %s output", name)
			assert.NotEmpty(t, data)
		})
	}
}

func testComparison(t *testing.T) {
	ws := loadWorksheet(t)
	engine := compare.NewCompareEngine(calculation.NewCalculationEngine())

	set, err := engine.Compare(context.Background(), ws, compare.CompareOptions{
		BaseLoanName: "mortgage",
		Templates:    []string{"rate_minus_1"},
	})
	require.NoError(t, err)
	require.Len(t, set.AlternativeResults, 1)
	assert.True(t, set.AlternativeResults[0].PaymentDiffFromBase.IsNegative())

	set, err = engine.CompareLoans(context.Background(), ws, "card", []string{"car"})
	require.NoError(t, err)
	require.Len(t, set.AlternativeResults, 1)
	assert.Equal(t, "car", set.AlternativeResults[0].LoanName)
}

func testPrepayment(t *testing.T) {
	ws := loadWorksheet(t)
	planner := sequencing.NewPlanner(calculation.NewCalculationEngine())

	plan, err := planner.Plan(context.Background(), ws.Loans, decimal.NewFromInt(6000), sequencing.NewAvalancheStrategy())
	require.NoError(t, err)
	require.Len(t, plan.Allocations, 2)
	assert.Equal(t, "card", plan.Allocations[0].Loan)
	assert.True(t, plan.Allocations[0].PaidOff)
	assert.Equal(t, "car", plan.Allocations[1].Loan)
	assert.True(t, plan.TotalInterestSaved.IsPositive())

	plans, err := planner.CompareStrategies(context.Background(), ws.Loans, decimal.NewFromInt(6000))
	require.NoError(t, err)
	assert.Len(t, plans, 3)
}

func testBreakEven(t *testing.T) {
	ws := loadWorksheet(t)
	solver := breakeven.NewDefaultSolver(calculation.NewCalculationEngine())

	// The rate that reproduces the mortgage payment is the mortgage rate
	result, err := solver.Solve(context.Background(), breakeven.SolveRequest{
		Target: breakeven.SolveRate,
		Goal:   decimal.RequireFromString("1580.17"),
		Loan:   ws.Loans[0],
	})
	require.NoError(t, err)
	require.NotNil(t, result.SolvedRate)
	assert.True(t, result.SolvedRate.Sub(ws.Loans[0].AnnualRatePercent).Abs().LessThan(decimal.RequireFromString("0.001")),
		"got %s", result.SolvedRate)
}

func testErrorHandling(t *testing.T) {
	engine := calculation.NewCalculationEngine()

	_, err := engine.RunWorksheet(context.Background(), &domain.Worksheet{
		Loans: []domain.LoanTerms{{Name: "broken", Principal: decimal.NewFromInt(-1), TermPeriods: 12, PeriodsPerYear: 12}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "broken")

	_, err = engine.RunWorksheet(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestIntegrationRegression checks that repeated and concurrent runs agree
func TestIntegrationRegression(t *testing.T) {
	ws := loadWorksheet(t)
	engine := calculation.NewCalculationEngine()

	t.Run("calculation_consistency", func(t *testing.T) {
		first, err := engine.RunWorksheet(context.Background(), ws)
		require.NoError(t, err)
		second, err := engine.RunWorksheet(context.Background(), ws)
		require.NoError(t, err)

		if diff := cmp.Diff(first, second, decimalComparer); diff != "" {
			t.Errorf("Results differ between runs (-first +second):\n%s", diff)
		}
	})

	t.Run("concurrent_runs", func(t *testing.T) {
		want, err := engine.RunWorksheet(context.Background(), ws)
		require.NoError(t, err)

		results := make([]*domain.WorksheetResult, 8)
		g, ctx := errgroup.WithContext(context.Background())
		for i := range results {
			g.Go(func() error {
				r, err := engine.RunWorksheet(ctx, ws)
				results[i] = r
				return err
			})
		}
		require.NoError(t, g.Wait())

		for i, got := range results {
			if diff := cmp.Diff(want, got, decimalComparer); diff != "" {
				t.Errorf("Run %d differs (-want +got):\n%s", i, diff)
			}
		}
	})
}

// TestIntegrationBenchmarks checks that a full worksheet stays fast
func TestIntegrationBenchmarks(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping benchmarks in short mode")
	}

	ws := loadWorksheet(t)
	engine := calculation.NewCalculationEngine()

	start := time.Now()
	_, err := engine.RunWorksheet(context.Background(), ws)
	duration := time.Since(start)

	require.NoError(t, err, "Should complete calculation")
	assert.Less(t, duration, 5*time.Second, "Worksheet should complete within 5 seconds")
	t.Logf("Worksheet completed in %v", duration)
}
