package breakeven

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/fincalc/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats solver results as a console table
type TableFormatter struct{}

// Format generates a formatted table for one solve
func (tf *TableFormatter) Format(result *SolveResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN SOLVER RESULT\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	req := result.Request
	sb.WriteString(fmt.Sprintf("Solve For:   %s\n", req.Target))
	if req.IsLoanTarget() {
		sb.WriteString(fmt.Sprintf("Goal:        payment of %s per period\n", output.FormatAmount(req.Goal)))
	} else {
		sb.WriteString(fmt.Sprintf("Goal:        future value of %s\n", output.FormatAmount(req.Goal)))
	}
	sb.WriteString(fmt.Sprintf("Status:      %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:  %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence: %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("SOLVED INPUT\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	switch {
	case result.SolvedRate != nil:
		sb.WriteString(fmt.Sprintf("Annual Rate:  %s%%\n", result.SolvedRate.Round(4).StringFixed(4)))
	case result.SolvedPrincipal != nil:
		sb.WriteString(fmt.Sprintf("Principal:    %s\n", output.FormatAmount(*result.SolvedPrincipal)))
	case result.SolvedTerm != nil:
		years := decimal.NewFromInt(int64(*result.SolvedTerm)).Div(decimal.NewFromInt(int64(max(req.Loan.PeriodsPerYear, 1))))
		sb.WriteString(fmt.Sprintf("Term:         %d periods (%s years)\n", *result.SolvedTerm, years.StringFixed(1)))
	case result.SolvedContribution != nil:
		sb.WriteString(fmt.Sprintf("Contribution: %s per period\n", output.FormatAmount(*result.SolvedContribution)))
	}
	sb.WriteString("\n")

	sb.WriteString("RESULT AT SOLVED INPUT\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	if s := result.Schedule; s != nil {
		sb.WriteString(fmt.Sprintf("Payment:        %s (%s)\n", output.FormatAmount(s.PeriodicPayment), s.Mode))
		sb.WriteString(fmt.Sprintf("Total Interest: %s\n", output.FormatAmount(s.TotalInterest)))
		sb.WriteString(fmt.Sprintf("Total Paid:     %s\n", output.FormatAmount(s.TotalPayment)))
	}
	if p := result.Projection; p != nil {
		sb.WriteString(fmt.Sprintf("Future Value:   %s\n", output.FormatAmount(p.FutureValue)))
		sb.WriteString(fmt.Sprintf("Contributed:    %s\n", output.FormatAmount(p.TotalContributed)))
		sb.WriteString(fmt.Sprintf("Interest:       %s\n", output.FormatAmount(p.TotalInterest)))
	}
	diff := result.Difference()
	sb.WriteString(fmt.Sprintf("Difference:     %s%s from goal\n", tf.deltaSymbol(diff), output.FormatAmount(diff)))

	return sb.String()
}

// FormatAffordability formats the results of SolveAffordability
func (tf *TableFormatter) FormatAffordability(result *AffordabilityResult) string {
	var sb strings.Builder

	sb.WriteString("AFFORDABILITY FOR A PAYMENT OF " + output.FormatAmount(result.Payment) + "\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-12s %20s %16s %16s\n", "Solve For", "Solved Input", "Payment", "Total Interest"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, r := range result.Results {
		var solved string
		switch {
		case r.SolvedRate != nil:
			solved = r.SolvedRate.Round(4).StringFixed(4) + "%"
		case r.SolvedPrincipal != nil:
			solved = output.FormatAmount(*r.SolvedPrincipal)
		case r.SolvedTerm != nil:
			solved = fmt.Sprintf("%d periods", *r.SolvedTerm)
		}
		interest := ""
		if r.Schedule != nil {
			interest = output.FormatAmount(r.Schedule.TotalInterest)
		}
		sb.WriteString(fmt.Sprintf("%-12s %20s %16s %16s\n",
			tf.truncate(string(r.Request.Target), 12), solved, output.FormatAmount(r.Achieved), interest))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *SolveResult) (string, error) {
	return jf.marshal(result)
}

// FormatAffordability formats affordability results as JSON
func (jf *JSONFormatter) FormatAffordability(result *AffordabilityResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	data, err := output.EncodeJSON(v, jf.Pretty)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Closest match"
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
