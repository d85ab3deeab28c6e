package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/rgehrsitz/fincalc/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing loans
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	// Header
	sb.WriteString("LOAN COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Loan: %s\n", compSet.BaseLoanName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Worksheet: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 24
	numWidth := 13

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Loan",
		numWidth, "Rate",
		numWidth, "Payment",
		numWidth, "Total Int.",
		numWidth, "Term"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	// Comparison details (deltas from base)
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.LoanName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}
			sb.WriteString(fmt.Sprintf("  Payment:          %s%s per period\n",
				tf.deltaSymbol(alt.PaymentDiffFromBase), alt.PaymentDiffFromBase.StringFixed(2)))
			sb.WriteString(fmt.Sprintf("  Total Interest:   %s%s (%s%%)\n",
				tf.deltaSymbol(alt.InterestDiffFromBase), tf.formatDecimal(alt.InterestDiffFromBase),
				alt.InterestPctFromBase.StringFixed(1)))
			if !alt.TotalDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Total Paid:       %s%s\n",
					tf.deltaSymbol(alt.TotalDiffFromBase), tf.formatDecimal(alt.TotalDiffFromBase)))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single loan row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.LoanName
	if isBase {
		name += " (base)"
	}

	term := fmt.Sprintf("%s yrs", result.TermYears.String())
	if result.Mode == domain.InterestFlat {
		term += "*"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, result.AnnualRatePercent.StringFixed(2)+"%",
		numWidth, tf.formatDecimal(result.PeriodicPayment),
		numWidth, tf.formatDecimal(result.TotalInterest),
		numWidth, term)
}

// formatDecimal formats money with thousands separators, abbreviating millions
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	}
	return output.FormatAmount(d)
}

// deltaSymbol returns "+" for increases; negative values carry their own sign
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each alternative
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseLoanName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if !alt.PaymentDiffFromBase.IsZero() {
			change = tf.deltaSymbol(alt.PaymentDiffFromBase) + alt.PaymentDiffFromBase.StringFixed(2)
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.LoanName, change))
	}

	return sb.String()
}
