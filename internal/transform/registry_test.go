package transform

import (
	"testing"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformRegistry_List(t *testing.T) {
	registry := NewTransformRegistry()
	assert.Equal(t, []string{
		"adjust_rate", "down_payment", "extend_term", "set_frequency", "set_mode", "set_rate", "set_term",
	}, registry.List())
}

func TestParseTransformSpec(t *testing.T) {
	registry := NewTransformRegistry()

	tests := []struct {
		spec     string
		expected LoanTransform
	}{
		{"adjust_rate:points=-0.25", &AdjustRate{Points: decimal.RequireFromString("-0.25")}},
		{"set_rate: percent = 4.75", &SetRate{Percent: decimal.RequireFromString("4.75")}},
		{"extend_term:years=5", &ExtendTerm{Years: 5}},
		{"set_term:years=15", &SetTerm{Years: 15}},
		{"set_frequency:per_year=26", &SetFrequency{PerYear: 26}},
		{"set_mode:mode=flat", &SetMode{Mode: domain.InterestFlat}},
		{"down_payment:amount=20000", &DownPayment{Amount: decimal.NewFromInt(20000)}},
		{"down_payment:percent=20", &DownPayment{Percent: decimal.NewFromInt(20)}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			transform, err := registry.ParseTransformSpec(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.expected.Name(), transform.Name())
			assert.Equal(t, tt.expected.Description(), transform.Description())
		})
	}
}

func TestParseTransformSpec_Errors(t *testing.T) {
	registry := NewTransformRegistry()

	tests := []struct {
		spec    string
		message string
	}{
		{"adjust_rate", "expected 'name:params'"},
		{"adjust_rate:points", "expected 'key=value'"},
		{"adjust_rate:", "requires 'points' parameter"},
		{"adjust_rate:points=abc", "invalid points value"},
		{"extend_term:years=1.5", "invalid years value"},
		{"set_mode:mode=balloon", "unknown interest mode"},
		{"down_payment:amount=1,percent=2", "not both"},
		{"refinance:rate=1", "unknown transform: refinance"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			_, err := registry.ParseTransformSpec(tt.spec)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestTransformRegistry_Register(t *testing.T) {
	registry := NewTransformRegistry()
	registry.Register("no_op", func(map[string]string) (LoanTransform, error) {
		return &ExtendTerm{}, nil
	})

	transform, err := registry.ParseTransformSpec("no_op:")
	require.NoError(t, err)

	base := createTestLoan()
	result, err := ApplyTransforms(base, []LoanTransform{transform})
	require.NoError(t, err)
	assert.Equal(t, base, result)
}
