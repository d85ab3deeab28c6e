package calculation

import "github.com/shopspring/decimal"

const (
	// MoneyPlaces is the precision of every reported money value.
	MoneyPlaces = 2

	// DefaultMaxPeriods bounds the work a single call may do (100 years of monthly periods).
	DefaultMaxPeriods = 1200

	// internalPlaces is the precision of running balances between periods.
	internalPlaces = 12
)

var (
	hundred = decimal.NewFromInt(100)
	maxRate = decimal.NewFromInt(100)
)

// roundMoney rounds a value for reporting
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// compound returns base^n for n >= 0 by repeated squaring, holding every
// intermediate product at internal precision so digits do not grow with n.
func compound(base decimal.Decimal, n int) decimal.Decimal {
	result := decimal.NewFromInt(1)
	factor := base
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(factor).Round(internalPlaces)
		}
		factor = factor.Mul(factor).Round(internalPlaces)
		n >>= 1
	}
	return result
}
