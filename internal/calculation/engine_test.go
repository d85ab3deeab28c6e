package calculation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLogger records formatted messages by level
type TestLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *TestLogger) record(level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, level+": "+fmt.Sprintf(format, args...))
}

func (l *TestLogger) Debugf(format string, args ...any) { l.record("debug", format, args...) }
func (l *TestLogger) Infof(format string, args ...any)  { l.record("info", format, args...) }
func (l *TestLogger) Warnf(format string, args ...any)  { l.record("warn", format, args...) }
func (l *TestLogger) Errorf(format string, args ...any) { l.record("error", format, args...) }

func sampleWorksheet() *domain.Worksheet {
	surcharge := d("0.04")
	return &domain.Worksheet{
		Name: "household",
		Loans: []domain.LoanTerms{
			{Name: "mortgage", Principal: d("250000"), AnnualRatePercent: d("6.5"), TermPeriods: 360, PeriodsPerYear: 12},
			{Name: "car", Principal: d("1200"), AnnualRatePercent: d("12"), TermPeriods: 12, PeriodsPerYear: 12, Mode: domain.InterestFlat},
		},
		Investments: []domain.InvestmentPlan{
			{Name: "savings", InitialAmount: d("10000"), PeriodicRatePercent: d("1"), TotalPeriods: 12},
			{Name: "sip", PeriodicContribution: d("100"), PeriodicRatePercent: d("1"), TotalPeriods: 12},
		},
		Taxes: []domain.TaxComputation{
			{Name: "federal", Income: d("100000"), Schedule: "us-2025-single"},
			{Name: "custom", Income: d("60000"), Deductions: d("5000"), Schedule: "simple", SurchargeRate: &surcharge},
			{Name: "inline", Income: d("60000"), Deductions: d("5000"), Brackets: simpleBrackets()},
		},
		TaxSchedules: []domain.TaxSchedule{
			{Name: "simple", Brackets: simpleBrackets()},
		},
	}
}

func TestNewCalculationEngine(t *testing.T) {
	engine := NewCalculationEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Schedules, "Should initialize schedules")
	assert.Equal(t, DefaultMaxPeriods, engine.MaxPeriods)
	assert.Positive(t, engine.Workers)
	assert.NotNil(t, engine.Logger, "Should initialize logger")
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := NewCalculationEngine()

	// Test setting a custom logger
	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)

	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	// Test setting nil logger (should use no-op logger)
	engine.SetLogger(nil)

	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestCalculationEngine_RunWorksheet(t *testing.T) {
	engine := NewCalculationEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)

	result, err := engine.RunWorksheet(context.Background(), sampleWorksheet())
	require.NoError(t, err)

	assert.Equal(t, "household", result.Name)

	require.Len(t, result.Loans, 2)
	assert.Equal(t, "mortgage", result.Loans[0].Name)
	assert.True(t, result.Loans[0].Schedule.PeriodicPayment.Equal(d("1580.17")), "got %s", result.Loans[0].Schedule.PeriodicPayment)
	assert.Equal(t, domain.InterestFlat, result.Loans[1].Schedule.Mode)
	assert.True(t, result.Loans[1].Schedule.PeriodicPayment.Equal(d("112")))
	require.NotNil(t, result.Loans[1].Comparison)
	assert.True(t, result.Loans[1].Comparison.Reducing.PeriodicPayment.LessThan(d("112")))

	require.Len(t, result.Investments, 2)
	assert.Equal(t, "savings", result.Investments[0].Plan.Name)
	assert.True(t, result.Investments[0].FutureValue.Equal(d("11268.25")))
	assert.True(t, result.Investments[1].FutureValue.Equal(d("1280.93")))

	require.Len(t, result.Taxes, 3)
	assert.Equal(t, "us-2025-single", result.Taxes[0].Schedule)
	assert.True(t, result.Taxes[0].Result.TotalTax.Equal(d("16914")), "got %s", result.Taxes[0].Result.TotalTax)
	assert.Equal(t, "simple", result.Taxes[1].Schedule)
	assert.True(t, result.Taxes[1].Result.TotalTax.Equal(d("5200")), "got %s", result.Taxes[1].Result.TotalTax)
	assert.Empty(t, result.Taxes[2].Schedule)
	assert.True(t, result.Taxes[2].Result.TotalTax.Equal(d("5000")), "got %s", result.Taxes[2].Result.TotalTax)

	assert.Contains(t, logger.messages, `info: worksheet "household" complete`)
}

func TestCalculationEngine_RunWorksheet_Idempotent(t *testing.T) {
	engine := NewCalculationEngine()

	first, err := engine.RunWorksheet(context.Background(), sampleWorksheet())
	require.NoError(t, err)
	second, err := engine.RunWorksheet(context.Background(), sampleWorksheet())
	require.NoError(t, err)

	if diff := cmp.Diff(first, second, decimalComparer); diff != "" {
		t.Errorf("worksheet results differ (-first +second):\n%s", diff)
	}
}

func TestCalculationEngine_RunWorksheet_FailFast(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Worksheet)
		message string
	}{
		{
			name:    "bad loan",
			mutate:  func(ws *domain.Worksheet) { ws.Loans[1].Principal = decimal.Zero },
			message: `loan "car"`,
		},
		{
			name:    "unnamed investment",
			mutate:  func(ws *domain.Worksheet) { ws.Investments = append(ws.Investments, domain.InvestmentPlan{TotalPeriods: 0}) },
			message: `investment "#3"`,
		},
		{
			name:    "unknown schedule",
			mutate:  func(ws *domain.Worksheet) { ws.Taxes[0].Schedule = "atlantis" },
			message: `tax "federal"`,
		},
		{
			name: "schedule and brackets together",
			mutate: func(ws *domain.Worksheet) {
				ws.Taxes[2].Schedule = "simple"
			},
			message: "not both",
		},
		{
			name:    "negative income",
			mutate:  func(ws *domain.Worksheet) { ws.Taxes[1].Income = d("-1") },
			message: `tax "custom"`,
		},
		{
			name: "broken worksheet schedule",
			mutate: func(ws *domain.Worksheet) {
				ws.TaxSchedules[0].Brackets = ws.TaxSchedules[0].Brackets[:2]
			},
			message: `tax schedule "simple"`,
		},
		{
			name:    "neither schedule nor brackets",
			mutate:  func(ws *domain.Worksheet) { ws.Taxes[0].Schedule = "" },
			message: "schedule name or inline brackets is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := sampleWorksheet()
			tt.mutate(ws)

			engine := NewCalculationEngine()
			result, err := engine.RunWorksheet(context.Background(), ws)
			assert.Nil(t, result)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput), "got %v", err)
			assert.Contains(t, err.Error(), tt.message)

			assert.Equal(t, err, engine.ValidateWorksheet(ws))
		})
	}
}

func TestCalculationEngine_RunWorksheet_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewCalculationEngine().RunWorksheet(ctx, sampleWorksheet())
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestCalculationEngine_MaxPeriods(t *testing.T) {
	engine := NewCalculationEngine()
	engine.MaxPeriods = 120

	_, err := engine.Amortize(loan(250000, "6.5", 360, 12))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not exceed 120")

	_, err = engine.Project(plan(100, 10, "1", 121))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	// the engine never allows more than the package limit
	engine.MaxPeriods = DefaultMaxPeriods * 2
	_, err = engine.Amortize(loan(1000, "5", DefaultMaxPeriods+1, 12))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestCalculationEngine_Schedules(t *testing.T) {
	engine := NewCalculationEngine()

	shadow := us2025Single()
	shadow.StandardDeduction = d("1")
	require.NoError(t, engine.AddSchedules(shadow, domain.TaxSchedule{Name: "simple", Brackets: simpleBrackets()}))

	s, err := engine.Schedule("us-2025-single")
	require.NoError(t, err)
	assert.True(t, s.StandardDeduction.Equal(d("1")), "custom schedule shadows the built-in")

	s, err = engine.Schedule("us-2025-mfj")
	require.NoError(t, err)
	assert.Equal(t, "us-2025-mfj", s.Name)

	err = engine.AddSchedules(domain.TaxSchedule{Name: "bad"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	err = engine.AddSchedules(domain.TaxSchedule{Brackets: simpleBrackets()})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	named, err := engine.ComputeTax(domain.TaxComputation{Name: "x", Income: d("60000"), Schedule: "simple"})
	require.NoError(t, err)
	assert.True(t, named.Result.TotalTax.Equal(d("6000")), "got %s", named.Result.TotalTax)
}

func TestCalculationEngine_DebugLogging(t *testing.T) {
	engine := NewCalculationEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)
	engine.Debug = true

	_, err := engine.Amortize(loan(1200, "0", 12, 12))
	require.NoError(t, err)

	require.Len(t, logger.messages, 1)
	assert.Contains(t, logger.messages[0], "debug:")
	assert.Contains(t, logger.messages[0], "payment 100.00")
}
