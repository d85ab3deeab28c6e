package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/fincalc/internal/domain"
)

const ruleWidth = 80

// ConsoleVerboseFormatter renders every schedule row by row
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(results *domain.WorksheetResult) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", ruleWidth))
	fmt.Fprintf(&buf, "FINANCIAL WORKSHEET: %s\n", worksheetTitle(results))
	fmt.Fprintln(&buf, strings.Repeat("=", ruleWidth))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for i, loan := range results.Loans {
		writeLoan(&buf, i, loan)
	}
	for i, projection := range results.Investments {
		writeInvestment(&buf, i, projection)
	}
	for i, tax := range results.Taxes {
		writeTax(&buf, i, tax)
	}

	return buf.Bytes(), nil
}

func worksheetTitle(results *domain.WorksheetResult) string {
	if results.Name == "" {
		return "untitled"
	}
	return results.Name
}

func itemName(name, kind string, i int) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("%s %d", kind, i+1)
}

func writeLoan(w io.Writer, i int, loan domain.LoanResult) {
	s := loan.Schedule
	terms := s.Terms

	fmt.Fprintf(w, "LOAN %d: %s\n", i+1, itemName(loan.Name, "loan", i))
	fmt.Fprintln(w, strings.Repeat("-", 50))
	fmt.Fprintf(w, "Principal:          %s\n", FormatAmount(terms.Principal))
	fmt.Fprintf(w, "Annual Rate:        %s\n", FormatPercentage(terms.AnnualRatePercent))
	fmt.Fprintf(w, "Term:               %d periods (%d per year)\n", terms.TermPeriods, terms.PeriodsPerYear)
	fmt.Fprintf(w, "Interest Mode:      %s\n", s.Mode)
	fmt.Fprintf(w, "Periodic Payment:   %s\n", FormatAmount(s.PeriodicPayment))
	fmt.Fprintf(w, "Total Interest:     %s\n", FormatAmount(s.TotalInterest))
	fmt.Fprintf(w, "Total Payment:      %s\n", FormatAmount(s.TotalPayment))
	fmt.Fprintln(w)

	if c := loan.Comparison; c != nil {
		fmt.Fprintln(w, "FLAT VS REDUCING BALANCE:")
		fmt.Fprintf(w, "  %-12s %16s %18s\n", "Mode", "Payment", "Total Interest")
		fmt.Fprintf(w, "  %-12s %16s %18s\n", domain.InterestReducing, FormatAmount(c.Reducing.PeriodicPayment), FormatAmount(c.Reducing.TotalInterest))
		fmt.Fprintf(w, "  %-12s %16s %18s\n", domain.InterestFlat, FormatAmount(c.Flat.PeriodicPayment), FormatAmount(c.Flat.TotalInterest))
		fmt.Fprintf(w, "  Flat costs %s more per period and %s more in total interest\n",
			FormatAmount(c.PaymentDifference), FormatAmount(c.InterestDifference))
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "AMORTIZATION SCHEDULE:")
	fmt.Fprintf(w, "%6s %16s %16s %16s %18s\n", "Period", "Payment", "Interest", "Principal", "Balance")
	for _, row := range s.Rows {
		fmt.Fprintf(w, "%6d %16s %16s %16s %18s\n", row.Period,
			FormatAmount(row.Payment), FormatAmount(row.Interest), FormatAmount(row.Principal), FormatAmount(row.RemainingBalance))
	}
	fmt.Fprintln(w)
}

func writeInvestment(w io.Writer, i int, p *domain.GrowthProjection) {
	fmt.Fprintf(w, "INVESTMENT %d: %s\n", i+1, itemName(p.Plan.Name, "investment", i))
	fmt.Fprintln(w, strings.Repeat("-", 50))
	fmt.Fprintf(w, "Initial Amount:     %s\n", FormatAmount(p.Plan.InitialAmount))
	fmt.Fprintf(w, "Contribution:       %s per period\n", FormatAmount(p.Plan.PeriodicContribution))
	fmt.Fprintf(w, "Rate:               %s per period\n", FormatPercentage(p.Plan.PeriodicRatePercent))
	fmt.Fprintf(w, "Periods:            %d\n", p.Plan.TotalPeriods)
	fmt.Fprintf(w, "Future Value:       %s\n", FormatAmount(p.FutureValue))
	fmt.Fprintf(w, "Total Contributed:  %s\n", FormatAmount(p.TotalContributed))
	fmt.Fprintf(w, "Total Interest:     %s\n", FormatAmount(p.TotalInterest))
	fmt.Fprintf(w, "ROI:                %s (%s annualized over %s years)\n",
		FormatPercentage(p.Metrics.ROIPercent), FormatPercentage(p.Metrics.AnnualizedReturnPercent), p.Metrics.Years.StringFixed(2))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "GROWTH SCHEDULE:")
	fmt.Fprintf(w, "%6s %18s %18s %18s\n", "Period", "Value", "Contributed", "Interest")
	for _, row := range p.Rows {
		fmt.Fprintf(w, "%6d %18s %18s %18s\n", row.Period,
			FormatAmount(row.AccumulatedValue), FormatAmount(row.TotalContributed), FormatAmount(row.AccumulatedInterest))
	}
	fmt.Fprintln(w)
}

func writeTax(w io.Writer, i int, t domain.NamedTaxResult) {
	r := t.Result

	fmt.Fprintf(w, "TAX %d: %s\n", i+1, itemName(t.Name, "tax", i))
	fmt.Fprintln(w, strings.Repeat("-", 50))
	if t.Schedule != "" {
		fmt.Fprintf(w, "Schedule:           %s\n", t.Schedule)
	}
	fmt.Fprintf(w, "Income:             %s\n", FormatAmount(r.Income))
	fmt.Fprintf(w, "Deductions:         %s\n", FormatAmount(r.Deductions))
	fmt.Fprintf(w, "Taxable Income:     %s\n", FormatAmount(r.TaxableIncome))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-32s %8s %18s %16s\n", "Bracket", "Rate", "Amount", "Tax")
	for _, bt := range r.Brackets {
		fmt.Fprintf(w, "%-32s %8s %18s %16s\n", BoundLabel(bt.Bracket),
			FormatRate(bt.Bracket.MarginalRate), FormatAmount(bt.AmountInBracket), FormatAmount(bt.TaxInBracket))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Tax Before Surcharge: %s\n", FormatAmount(r.TotalTaxBeforeSurcharge))
	fmt.Fprintf(w, "Surcharge (%s):   %s\n", FormatRate(r.SurchargeRate), FormatAmount(r.Surcharge))
	fmt.Fprintf(w, "Total Tax:            %s\n", FormatAmount(r.TotalTax))
	fmt.Fprintf(w, "Effective Rate:       %s\n", FormatRate(r.EffectiveRate))
	fmt.Fprintf(w, "Marginal Rate:        %s\n", FormatRate(r.MarginalRate))
	fmt.Fprintln(w)
}
