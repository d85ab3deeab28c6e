package compare

import (
	"testing"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
)

func TestMetricsCalculator_CalculateMetrics(t *testing.T) {
	calc := NewMetricsCalculator()

	schedule := &domain.AmortizationSchedule{
		Terms: domain.LoanTerms{
			Principal:         decimal.NewFromInt(1200),
			AnnualRatePercent: decimal.NewFromInt(12),
			TermPeriods:       18,
			PeriodsPerYear:    12,
		},
		Mode:            domain.InterestFlat,
		PeriodicPayment: decimal.NewFromInt(78),
		TotalInterest:   decimal.NewFromInt(216),
		TotalPayment:    decimal.NewFromInt(1416),
	}

	result := calc.CalculateMetrics("car", schedule)

	if result.LoanName != "car" {
		t.Errorf("Expected loan name 'car', got %s", result.LoanName)
	}
	if result.Schedule != schedule {
		t.Error("Expected schedule to be kept")
	}
	if result.Mode != domain.InterestFlat {
		t.Errorf("Expected flat mode, got %s", result.Mode)
	}
	if !result.TermYears.Equal(decimal.RequireFromString("1.5")) {
		t.Errorf("Expected 1.5 years, got %s", result.TermYears)
	}
	if !result.TotalPayment.Equal(decimal.NewFromInt(1416)) {
		t.Errorf("Expected total payment 1416, got %s", result.TotalPayment)
	}
}

func TestMetricsCalculator_CalculateComparison(t *testing.T) {
	calc := NewMetricsCalculator()

	base := ComparisonResult{
		LoanName:        "Base",
		PeriodicPayment: decimal.NewFromInt(1000),
		TotalInterest:   decimal.NewFromInt(200000),
		TotalPayment:    decimal.NewFromInt(500000),
	}
	loan := ComparisonResult{
		LoanName:        "Alt",
		PeriodicPayment: decimal.NewFromInt(900),
		TotalInterest:   decimal.NewFromInt(150000),
		TotalPayment:    decimal.NewFromInt(450000),
	}

	result := calc.CalculateComparison(loan, base)

	if !result.PaymentDiffFromBase.Equal(decimal.NewFromInt(-100)) {
		t.Errorf("Expected payment diff -100, got %s", result.PaymentDiffFromBase)
	}
	if !result.InterestDiffFromBase.Equal(decimal.NewFromInt(-50000)) {
		t.Errorf("Expected interest diff -50000, got %s", result.InterestDiffFromBase)
	}
	if !result.InterestPctFromBase.Equal(decimal.NewFromInt(-25)) {
		t.Errorf("Expected -25%%, got %s", result.InterestPctFromBase)
	}
	if !result.TotalDiffFromBase.Equal(decimal.NewFromInt(-50000)) {
		t.Errorf("Expected total diff -50000, got %s", result.TotalDiffFromBase)
	}

	// zero-interest base leaves the percentage at zero
	base.TotalInterest = decimal.Zero
	result = calc.CalculateComparison(loan, base)
	if !result.InterestPctFromBase.IsZero() {
		t.Errorf("Expected zero percentage, got %s", result.InterestPctFromBase)
	}
}

func TestGenerateRecommendations(t *testing.T) {
	base := &ComparisonResult{
		LoanName:        "base",
		PeriodicPayment: decimal.NewFromInt(1000),
		TotalInterest:   decimal.NewFromInt(100000),
		TermYears:       decimal.NewFromInt(30),
	}

	empty := GenerateRecommendations(&ComparisonSet{BaseResult: base})
	if len(empty) != 0 {
		t.Errorf("Expected no recommendations without alternatives, got %v", empty)
	}

	worse := GenerateRecommendations(&ComparisonSet{
		BaseResult: base,
		AlternativeResults: []ComparisonResult{{
			LoanName:        "worse",
			PeriodicPayment: decimal.NewFromInt(1100),
			TotalInterest:   decimal.NewFromInt(120000),
			TermYears:       decimal.NewFromInt(30),
		}},
	})
	if len(worse) != 0 {
		t.Errorf("Expected no recommendations for a worse alternative, got %v", worse)
	}

	better := GenerateRecommendations(&ComparisonSet{
		BaseResult: base,
		AlternativeResults: []ComparisonResult{
			{LoanName: "cheap", PeriodicPayment: decimal.NewFromInt(800), TotalInterest: decimal.NewFromInt(150000), TermYears: decimal.NewFromInt(35)},
			{LoanName: "short", PeriodicPayment: decimal.NewFromInt(1500), TotalInterest: decimal.NewFromInt(50000), TermYears: decimal.NewFromInt(15)},
		},
	})
	expected := []string{
		"Lowest Payment: cheap pays 200.00 less per period than the base loan",
		"Lowest Interest: short saves 50000.00 in total interest",
		"Fastest Payoff: short is paid off 15 years sooner",
	}
	if len(better) != len(expected) {
		t.Fatalf("Expected %d recommendations, got %v", len(expected), better)
	}
	for i := range expected {
		if better[i] != expected[i] {
			t.Errorf("Recommendation %d: expected %q, got %q", i, expected[i], better[i])
		}
	}
}
