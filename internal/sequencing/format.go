package sequencing

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/fincalc/internal/output"
)

// TableFormatter formats prepayment plans as a console table
type TableFormatter struct{}

// Format renders one plan
func (tf *TableFormatter) Format(plan *PrepaymentPlan) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("PREPAYMENT PLAN: %s (strategy %s)\n", output.FormatAmount(plan.Requested), plan.StrategyUsed))
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-20s %13s %13s %13s %16s\n", "Loan", "Prepay", "Payment", "New Payment", "Interest Saved"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, a := range plan.Allocations {
		newPayment := output.FormatAmount(a.PaymentAfter)
		if a.PaidOff {
			newPayment = "paid off"
		}
		sb.WriteString(fmt.Sprintf("%-20s %13s %13s %13s %16s\n",
			tf.truncate(a.Loan, 20), output.FormatAmount(a.Amount), output.FormatAmount(a.PaymentBefore),
			newPayment, output.FormatAmount(a.InterestSaved)))
	}

	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Allocated:          %s\n", output.FormatAmount(plan.TotalAllocated)))
	if plan.Unallocated.IsPositive() {
		sb.WriteString(fmt.Sprintf("Unallocated:        %s\n", output.FormatAmount(plan.Unallocated)))
	}
	sb.WriteString(fmt.Sprintf("Payment Reduction:  %s per period\n", output.FormatAmount(plan.TotalPaymentReduction)))
	sb.WriteString(fmt.Sprintf("Interest Saved:     %s\n", output.FormatAmount(plan.TotalInterestSaved)))

	for _, note := range plan.Notes {
		sb.WriteString(fmt.Sprintf("Note: %s\n", note))
	}
	return sb.String()
}

// FormatComparison renders a one-line summary per strategy
func (tf *TableFormatter) FormatComparison(plans []*PrepaymentPlan) string {
	var sb strings.Builder

	sb.WriteString("PREPAYMENT STRATEGY COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-16s %16s %20s %16s\n", "Strategy", "Interest Saved", "Payment Reduction", "Loans Cleared"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for _, plan := range plans {
		cleared := 0
		for _, a := range plan.Allocations {
			if a.PaidOff {
				cleared++
			}
		}
		sb.WriteString(fmt.Sprintf("%-16s %16s %20s %16d\n",
			plan.StrategyUsed, output.FormatAmount(plan.TotalInterestSaved),
			output.FormatAmount(plan.TotalPaymentReduction), cleared))
	}
	return sb.String()
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// JSONFormatter formats plans as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output for a plan or a slice of plans
func (jf *JSONFormatter) Format(v any) (string, error) {
	data, err := output.EncodeJSON(v, jf.Pretty)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
