package calculation

import (
	"sort"
	"strings"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Built-in schedules. Each lookup builds a fresh copy so callers can modify
// what they get back.
var builtinSchedules = map[string]func() domain.TaxSchedule{
	"us-2025-single": us2025Single,
	"us-2025-mfj":    us2025MarriedJoint,
	"in-new-regime":  indiaNewRegime,
}

// LookupSchedule returns a built-in tax schedule by name
func LookupSchedule(name string) (domain.TaxSchedule, error) {
	build, ok := builtinSchedules[name]
	if !ok {
		return domain.TaxSchedule{}, domain.NewInputError("schedule", "unknown tax schedule %q (available: %s)", name, strings.Join(ScheduleNames(), ", "))
	}
	return build(), nil
}

// ScheduleNames lists the built-in schedules in sorted order
func ScheduleNames() []string {
	names := make([]string, 0, len(builtinSchedules))
	for name := range builtinSchedules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuildBrackets turns ascending upper bounds and one more rate than bounds into
// a contiguous schedule starting at zero with an unbounded top bracket
func BuildBrackets(uppers []decimal.Decimal, rates []decimal.Decimal) []domain.TaxBracket {
	brackets := make([]domain.TaxBracket, 0, len(rates))
	lower := decimal.Zero
	for i, rate := range rates {
		b := domain.TaxBracket{LowerBound: lower, MarginalRate: rate}
		if i < len(uppers) {
			upper := uppers[i]
			b.UpperBound = &upper
			lower = upper
		}
		brackets = append(brackets, b)
	}
	return brackets
}

func ints(values ...int64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromInt(v)
	}
	return out
}

func percents(values ...int64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.New(v, -2)
	}
	return out
}

func us2025Single() domain.TaxSchedule {
	return domain.TaxSchedule{
		Name:              "us-2025-single",
		Description:       "US federal income tax, 2025, single filer",
		StandardDeduction: decimal.NewFromInt(15000),
		Brackets: BuildBrackets(
			ints(11925, 48475, 103350, 197300, 250525, 626350),
			percents(10, 12, 22, 24, 32, 35, 37),
		),
	}
}

func us2025MarriedJoint() domain.TaxSchedule {
	return domain.TaxSchedule{
		Name:              "us-2025-mfj",
		Description:       "US federal income tax, 2025, married filing jointly",
		StandardDeduction: decimal.NewFromInt(30000),
		Brackets: BuildBrackets(
			ints(23850, 96950, 206700, 394600, 501050, 751600),
			percents(10, 12, 22, 24, 32, 35, 37),
		),
	}
}

func indiaNewRegime() domain.TaxSchedule {
	return domain.TaxSchedule{
		Name:              "in-new-regime",
		Description:       "India new tax regime slabs (FY 2025-26) with 4% health and education cess",
		StandardDeduction: decimal.NewFromInt(75000),
		SurchargeRate:     decimal.New(4, -2),
		Brackets: BuildBrackets(
			ints(400000, 800000, 1200000, 1600000, 2000000, 2400000),
			percents(0, 5, 10, 15, 20, 25, 30),
		),
	}
}
