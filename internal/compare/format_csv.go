package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Loan",
		"Type",
		"Principal",
		"Annual Rate %",
		"Term Periods",
		"Periods Per Year",
		"Mode",
		"Periodic Payment",
		"Total Interest",
		"Total Payment",
		"Payment Diff from Base",
		"Interest Diff from Base",
		"Interest % Change",
		"Total Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
		return "", err
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, loanType string) []string {
	return []string{
		result.LoanName,
		loanType,
		result.Principal.StringFixed(2),
		result.AnnualRatePercent.String(),
		strconv.Itoa(result.TermPeriods),
		strconv.Itoa(result.PeriodsPerYear),
		string(result.Mode),
		result.PeriodicPayment.StringFixed(2),
		result.TotalInterest.StringFixed(2),
		result.TotalPayment.StringFixed(2),
		result.PaymentDiffFromBase.StringFixed(2),
		result.InterestDiffFromBase.StringFixed(2),
		result.InterestPctFromBase.StringFixed(2),
		result.TotalDiffFromBase.StringFixed(2),
	}
}
