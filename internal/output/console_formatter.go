package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/fincalc/internal/domain"
)

// ConsoleFormatter prints one summary line per calculation
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(results *domain.WorksheetResult) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "WORKSHEET SUMMARY: %s\n", worksheetTitle(results))
	fmt.Fprintln(&buf, strings.Repeat("=", ruleWidth))

	if len(results.Loans) > 0 {
		fmt.Fprintln(&buf, "Loans:")
		for i, loan := range results.Loans {
			s := loan.Schedule
			fmt.Fprintf(&buf, "  %-20s %-8s payment %s x %d, interest %s, total %s\n",
				itemName(loan.Name, "loan", i), s.Mode, FormatAmount(s.PeriodicPayment), len(s.Rows),
				FormatAmount(s.TotalInterest), FormatAmount(s.TotalPayment))
			if c := loan.Comparison; c != nil {
				fmt.Fprintf(&buf, "  %-20s flat vs reducing: payment Δ %s, interest Δ %s\n",
					"", FormatAmount(c.PaymentDifference), FormatAmount(c.InterestDifference))
			}
		}
	}

	if len(results.Investments) > 0 {
		fmt.Fprintln(&buf, "Investments:")
		for i, p := range results.Investments {
			fmt.Fprintf(&buf, "  %-20s future value %s, contributed %s, interest %s, ROI %s\n",
				itemName(p.Plan.Name, "investment", i), FormatAmount(p.FutureValue), FormatAmount(p.TotalContributed),
				FormatAmount(p.TotalInterest), FormatPercentage(p.Metrics.ROIPercent))
		}
	}

	if len(results.Taxes) > 0 {
		fmt.Fprintln(&buf, "Taxes:")
		for i, t := range results.Taxes {
			fmt.Fprintf(&buf, "  %-20s taxable %s, tax %s, effective %s, marginal %s\n",
				itemName(t.Name, "tax", i), FormatAmount(t.Result.TaxableIncome), FormatAmount(t.Result.TotalTax),
				FormatRate(t.Result.EffectiveRate), FormatRate(t.Result.MarginalRate))
		}
	}

	return buf.Bytes(), nil
}
