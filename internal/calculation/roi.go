package calculation

import (
	"math"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
)

// ratioPlaces is the precision of reported percentages
const ratioPlaces = 4

// ReturnOnInvestment summarizes the gain on an amount invested over a number of
// years. ROI is the simple percentage gain; the annualized figure is the
// compound annual growth rate. Both are zero when nothing was invested.
func ReturnOnInvestment(invested, finalValue, years decimal.Decimal) domain.GrowthMetrics {
	metrics := domain.GrowthMetrics{
		Invested:   invested,
		FinalValue: finalValue,
		Gain:       finalValue.Sub(invested),
		Years:      years,
	}
	if !invested.IsPositive() {
		return metrics
	}

	metrics.ROIPercent = metrics.Gain.Div(invested).Mul(hundred).Round(ratioPlaces)

	if years.IsPositive() && !finalValue.IsNegative() {
		// Fractional exponents are outside what decimal does well; float
		// precision is plenty for a descriptive growth rate.
		ratio := finalValue.Div(invested).InexactFloat64()
		cagr := math.Pow(ratio, 1/years.InexactFloat64()) - 1
		if !math.IsNaN(cagr) && !math.IsInf(cagr, 0) {
			metrics.AnnualizedReturnPercent = decimal.NewFromFloat(cagr * 100).Round(ratioPlaces)
		}
	}

	return metrics
}
