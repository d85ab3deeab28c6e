package calculation

import (
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
)

// AMORTIZATION ASSUMPTIONS:
//
// 1. Payments fall at the end of each period (ordinary annuity).
// 2. Running balances carry 12 decimal places; reported values carry 2.
// 3. Reducing-balance rows report the rounded level payment. Row interest is
//    the exact interest plus the payment's rounding error, rounded up to the
//    cent, so reported interest never rises, reported principal never falls
//    and reported principal never runs ahead of the exact schedule. The final
//    period settles the loan: reported principals sum to the principal, the
//    last remaining balance is exactly zero, and total interest stays within
//    about a cent per period of the exact figure.
// 4. Flat rows are differences of rounded running totals, so a row payment
//    may differ from the periodic payment by a cent.
// 5. Flat interest is charged on the original principal for the full term and
//    spread evenly over the periods.

// Amortize builds a reducing-balance repayment schedule
func Amortize(terms domain.LoanTerms) (*domain.AmortizationSchedule, error) {
	return amortizeReducing(terms, DefaultMaxPeriods)
}

// AmortizeFlat builds a flat-interest repayment schedule
func AmortizeFlat(terms domain.LoanTerms) (*domain.AmortizationSchedule, error) {
	return amortizeFlat(terms, DefaultMaxPeriods)
}

// AmortizeWithMode builds the schedule selected by terms.Mode (reducing when empty)
func AmortizeWithMode(terms domain.LoanTerms) (*domain.AmortizationSchedule, error) {
	return amortizeWithMode(terms, DefaultMaxPeriods)
}

// CompareInterestModes amortizes the loan both ways and reports flat minus reducing
func CompareInterestModes(terms domain.LoanTerms) (*domain.InterestModeComparison, error) {
	return compareInterestModes(terms, DefaultMaxPeriods)
}

// PeriodicPayment returns the level payment that retires principal over n
// periods at periodic rate r, unrounded. A zero rate gives principal / n.
func PeriodicPayment(principal, rate decimal.Decimal, n int) decimal.Decimal {
	periods := decimal.NewFromInt(int64(n))
	if rate.IsZero() {
		return principal.Div(periods)
	}
	factor := compound(decimal.NewFromInt(1).Add(rate), n)
	return principal.Mul(rate).Mul(factor).Div(factor.Sub(decimal.NewFromInt(1)))
}

func validateLoanTerms(terms domain.LoanTerms, maxPeriods int) error {
	if terms.Principal.LessThanOrEqual(decimal.Zero) {
		return domain.NewInputError("principal", "must be positive, got %s", terms.Principal)
	}
	if terms.TermPeriods <= 0 {
		return domain.NewInputError("term_periods", "must be positive, got %d", terms.TermPeriods)
	}
	if terms.TermPeriods > maxPeriods {
		return domain.NewInputError("term_periods", "must not exceed %d, got %d", maxPeriods, terms.TermPeriods)
	}
	if terms.PeriodsPerYear < 1 {
		return domain.NewInputError("periods_per_year", "must be at least 1, got %d", terms.PeriodsPerYear)
	}
	if terms.AnnualRatePercent.LessThan(decimal.Zero) || terms.AnnualRatePercent.GreaterThan(maxRate) {
		return domain.NewInputError("annual_rate_percent", "must be between 0 and 100, got %s", terms.AnnualRatePercent)
	}
	if _, err := domain.ParseInterestMode(string(terms.Mode)); err != nil {
		return err
	}
	return nil
}

func amortizeWithMode(terms domain.LoanTerms, maxPeriods int) (*domain.AmortizationSchedule, error) {
	mode, err := domain.ParseInterestMode(string(terms.Mode))
	if err != nil {
		return nil, err
	}
	if mode == domain.InterestFlat {
		return amortizeFlat(terms, maxPeriods)
	}
	return amortizeReducing(terms, maxPeriods)
}

func amortizeReducing(terms domain.LoanTerms, maxPeriods int) (*domain.AmortizationSchedule, error) {
	if err := validateLoanTerms(terms, maxPeriods); err != nil {
		return nil, err
	}

	n := terms.TermPeriods
	rate := terms.PeriodicRate()
	payment := PeriodicPayment(terms.Principal, rate, n).Round(internalPlaces)

	level := roundMoney(payment)
	excess := level.Sub(payment)

	b := newScheduleBuilder(terms, domain.InterestReducing, level)
	balance := terms.Principal
	for period := 1; period <= n; period++ {
		interest := balance.Mul(rate).Round(internalPlaces)
		balance = balance.Sub(payment.Sub(interest))

		rowInterest := decimal.Zero
		if rate.IsPositive() {
			rowInterest = interest.Add(excess).RoundCeil(MoneyPlaces)
		}
		rowPrincipal := level.Sub(rowInterest)
		if period == n {
			rowPrincipal = terms.Principal.Sub(b.repRepaid)
		}
		b.appendRow(rowPrincipal, rowInterest)
	}

	return b.schedule, nil
}

func amortizeFlat(terms domain.LoanTerms, maxPeriods int) (*domain.AmortizationSchedule, error) {
	if err := validateLoanTerms(terms, maxPeriods); err != nil {
		return nil, err
	}

	n := terms.TermPeriods
	periods := decimal.NewFromInt(int64(n))
	totalInterest := terms.Principal.Mul(terms.AnnualRatePercent.Div(hundred)).Mul(terms.TermYears())
	principalPerPeriod := terms.Principal.Div(periods)
	interestPerPeriod := totalInterest.Div(periods)

	b := newScheduleBuilder(terms, domain.InterestFlat, roundMoney(terms.Principal.Add(totalInterest).Div(periods)))
	balance := terms.Principal
	charged := decimal.Zero
	for period := 1; period <= n; period++ {
		principal, interest := principalPerPeriod, interestPerPeriod
		if period == n {
			principal = balance
			interest = totalInterest.Sub(charged)
		}
		balance = balance.Sub(principal)
		charged = charged.Add(interest)
		b.add(principal, interest)
	}

	return b.schedule, nil
}

// scheduleBuilder collects reported rows. The reported balance is the
// principal less the reported principal repaid so far.
type scheduleBuilder struct {
	schedule *domain.AmortizationSchedule

	cumPaid     decimal.Decimal
	cumInterest decimal.Decimal
	repPaid     decimal.Decimal
	repInterest decimal.Decimal
	repRepaid   decimal.Decimal
}

func newScheduleBuilder(terms domain.LoanTerms, mode domain.InterestMode, periodicPayment decimal.Decimal) *scheduleBuilder {
	terms.Mode = mode
	return &scheduleBuilder{
		schedule: &domain.AmortizationSchedule{
			Terms:           terms,
			Mode:            mode,
			PeriodicPayment: periodicPayment,
			Rows:            make([]domain.AmortizationRow, 0, terms.TermPeriods),
		},
	}
}

// add reports unrounded amounts as changes in rounded running totals, so
// rounding never accumulates
func (b *scheduleBuilder) add(principal, interest decimal.Decimal) {
	s := b.schedule
	period := len(s.Rows) + 1

	b.cumPaid = b.cumPaid.Add(principal).Add(interest)
	b.cumInterest = b.cumInterest.Add(interest)

	payment := roundMoney(b.cumPaid).Sub(b.repPaid)
	rowInterest := roundMoney(b.cumInterest).Sub(b.repInterest)
	rowPrincipal := payment.Sub(rowInterest)
	if period == s.Terms.TermPeriods {
		rowPrincipal = s.Terms.Principal.Sub(b.repRepaid)
	}
	b.appendRow(rowPrincipal, rowInterest)
}

// appendRow records one reported row; payment is principal plus interest
func (b *scheduleBuilder) appendRow(principal, interest decimal.Decimal) {
	s := b.schedule
	payment := principal.Add(interest)

	b.repPaid = b.repPaid.Add(payment)
	b.repInterest = b.repInterest.Add(interest)
	b.repRepaid = b.repRepaid.Add(principal)

	s.Rows = append(s.Rows, domain.AmortizationRow{
		Period:           len(s.Rows) + 1,
		Payment:          payment,
		Interest:         interest,
		Principal:        principal,
		RemainingBalance: s.Terms.Principal.Sub(b.repRepaid),
	})
	s.TotalInterest = b.repInterest
	s.TotalPayment = b.repPaid
}

func compareInterestModes(terms domain.LoanTerms, maxPeriods int) (*domain.InterestModeComparison, error) {
	reducing, err := amortizeReducing(terms, maxPeriods)
	if err != nil {
		return nil, err
	}
	flat, err := amortizeFlat(terms, maxPeriods)
	if err != nil {
		return nil, err
	}

	return &domain.InterestModeComparison{
		Terms:              terms,
		Reducing:           reducing,
		Flat:               flat,
		PaymentDifference:  flat.PeriodicPayment.Sub(reducing.PeriodicPayment),
		InterestDifference: flat.TotalInterest.Sub(reducing.TotalInterest),
	}, nil
}
