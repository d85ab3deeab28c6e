package tui

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/rgehrsitz/fincalc/internal/output"
	"github.com/shopspring/decimal"
)

// recompute evaluates one tab from its current inputs. Invalid input clears
// the tab's result and records the error instead.
func (m *Model) recompute(tab Tab) {
	switch tab {
	case TabLoan:
		m.loan, m.errs[tab] = m.computeLoan()
	case TabInvestment:
		m.projection, m.errs[tab] = m.computeInvestment()
	case TabTax:
		m.tax, m.errs[tab] = m.computeTax()
	}
}

func (m *Model) computeLoan() (*domain.InterestModeComparison, error) {
	f := m.forms[TabLoan]
	principal, err := f.number(loanPrincipal)
	if err != nil {
		return nil, err
	}
	rate, err := f.number(loanRate)
	if err != nil {
		return nil, err
	}
	term, err := f.integer(loanTerm)
	if err != nil {
		return nil, err
	}
	perYear, err := f.integer(loanPerYear)
	if err != nil {
		return nil, err
	}
	mode, err := domain.ParseInterestMode(f.value(loanMode))
	if err != nil {
		return nil, err
	}

	return m.engine.CompareInterestModes(domain.LoanTerms{
		Principal:         principal,
		AnnualRatePercent: rate,
		TermPeriods:       term,
		PeriodsPerYear:    perYear,
		Mode:              mode,
	})
}

func (m *Model) computeInvestment() (*domain.GrowthProjection, error) {
	f := m.forms[TabInvestment]
	initial, err := f.number(investInitial)
	if err != nil {
		return nil, err
	}
	contribution, err := f.number(investContribution)
	if err != nil {
		return nil, err
	}
	rate, err := f.number(investRate)
	if err != nil {
		return nil, err
	}
	periods, err := f.integer(investPeriods)
	if err != nil {
		return nil, err
	}
	perYear, err := f.integer(investPerYear)
	if err != nil {
		return nil, err
	}

	return m.engine.Project(domain.InvestmentPlan{
		InitialAmount:        initial,
		PeriodicContribution: contribution,
		PeriodicRatePercent:  rate,
		TotalPeriods:         periods,
		PeriodsPerYear:       perYear,
	})
}

func (m *Model) computeTax() (*domain.NamedTaxResult, error) {
	f := m.forms[TabTax]
	income, err := f.number(taxIncome)
	if err != nil {
		return nil, err
	}
	deductions, err := f.number(taxDeductions)
	if err != nil {
		return nil, err
	}
	standard, err := parseYesNo(f.value(taxStandard))
	if err != nil {
		return nil, err
	}

	c := domain.TaxComputation{
		Income:               income,
		Deductions:           deductions,
		Schedule:             f.value(taxSchedule),
		UseStandardDeduction: standard,
	}
	if f.value(taxSurcharge) != "" {
		percent, err := f.number(taxSurcharge)
		if err != nil {
			return nil, err
		}
		rate := percent.Div(decimal.NewFromInt(100))
		c.SurchargeRate = &rate
	}
	return m.engine.ComputeTax(c)
}

func parseYesNo(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "y", "yes", "true", "1":
		return true, nil
	case "", "n", "no", "false", "0":
		return false, nil
	default:
		return false, domain.NewInputError("standard deduction", "answer y or n, got %q", s)
	}
}

// selected returns the schedule for the mode chosen in the loan form
func (m Model) selected() (chosen, other *domain.AmortizationSchedule) {
	if m.loan == nil {
		return nil, nil
	}
	if m.loan.Terms.Mode == domain.InterestFlat {
		return m.loan.Flat, m.loan.Reducing
	}
	return m.loan.Reducing, m.loan.Flat
}

// summary renders the active result as plain text for the clipboard; empty
// when the tab has no valid result
func (m Model) summary(tab Tab) string {
	var b strings.Builder
	switch tab {
	case TabLoan:
		s, _ := m.selected()
		if s == nil {
			return ""
		}
		t := s.Terms
		fmt.Fprintf(&b, "Loan of %s at %s over %d periods (%s)\n",
			output.FormatAmount(t.Principal), output.FormatPercentage(t.AnnualRatePercent), t.TermPeriods, s.Mode)
		fmt.Fprintf(&b, "Payment: %s\n", output.FormatAmount(s.PeriodicPayment))
		fmt.Fprintf(&b, "Total interest: %s\n", output.FormatAmount(s.TotalInterest))
		fmt.Fprintf(&b, "Total paid: %s\n", output.FormatAmount(s.TotalPayment))
		fmt.Fprintf(&b, "Flat minus reducing: payment %s, interest %s\n",
			output.FormatAmount(m.loan.PaymentDifference), output.FormatAmount(m.loan.InterestDifference))
	case TabInvestment:
		p := m.projection
		if p == nil {
			return ""
		}
		fmt.Fprintf(&b, "Future value: %s\n", output.FormatAmount(p.FutureValue))
		fmt.Fprintf(&b, "Contributed: %s\n", output.FormatAmount(p.TotalContributed))
		fmt.Fprintf(&b, "Interest: %s\n", output.FormatAmount(p.TotalInterest))
		fmt.Fprintf(&b, "ROI: %s (%s annualized)\n",
			output.FormatPercentage(p.Metrics.ROIPercent), output.FormatPercentage(p.Metrics.AnnualizedReturnPercent))
	case TabTax:
		if m.tax == nil {
			return ""
		}
		r := m.tax.Result
		fmt.Fprintf(&b, "Taxable income: %s\n", output.FormatAmount(r.TaxableIncome))
		fmt.Fprintf(&b, "Tax before surcharge: %s\n", output.FormatAmount(r.TotalTaxBeforeSurcharge))
		fmt.Fprintf(&b, "Surcharge: %s\n", output.FormatAmount(r.Surcharge))
		fmt.Fprintf(&b, "Total tax: %s\n", output.FormatAmount(r.TotalTax))
		fmt.Fprintf(&b, "Effective rate: %s\n", output.FormatRate(r.EffectiveRate))
		fmt.Fprintf(&b, "Marginal rate: %s\n", output.FormatRate(r.MarginalRate))
	}
	return b.String()
}
