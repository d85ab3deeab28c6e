package output

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rgehrsitz/fincalc/internal/calculation"
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleResults(t *testing.T) *domain.WorksheetResult {
	t.Helper()
	upper := d("10000")
	ws := &domain.Worksheet{
		Name: "household",
		Loans: []domain.LoanTerms{
			{Name: "car", Principal: d("1200"), AnnualRatePercent: d("12"), TermPeriods: 12, PeriodsPerYear: 12, Mode: domain.InterestFlat},
		},
		Investments: []domain.InvestmentPlan{
			{Name: "savings", InitialAmount: d("10000"), PeriodicRatePercent: d("1"), TotalPeriods: 12},
		},
		Taxes: []domain.TaxComputation{
			{Name: "simple", Income: d("60000"), Brackets: []domain.TaxBracket{
				{LowerBound: d("0"), UpperBound: &upper, MarginalRate: d("0")},
				{LowerBound: d("10000"), MarginalRate: d("0.1")},
			}},
		},
	}
	results, err := calculation.NewCalculationEngine().RunWorksheet(context.Background(), ws)
	require.NoError(t, err)
	return results
}

func TestGetFormatterByName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"console", "console"},
		{"verbose", "console"},
		{"TEXT", "console"},
		{"summary", "console-lite"},
		{" csv ", "csv"},
		{"detailed-csv", "detailed-csv"},
		{"json", "json"},
		{"html", "html"},
		{"md", "markdown"},
		{"pretty", "pretty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := GetFormatterByName(tt.name)
			require.NotNil(t, f)
			assert.Equal(t, tt.expected, f.Name())
		})
	}

	assert.Nil(t, GetFormatterByName("xml"))
}

func TestAvailableFormatterNames(t *testing.T) {
	names := AvailableFormatterNames()
	assert.Len(t, names, len(registry))
	for _, n := range []string{"console", "console-lite", "csv", "detailed-csv", "json", "html", "markdown", "pretty"} {
		assert.Contains(t, names, n)
	}
	assert.IsIncreasing(t, AvailableFormatAliases())
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "csv", Extension(CSVSummarizer{}))
	assert.Equal(t, "csv", Extension(CSVDetailedFormatter{}))
	assert.Equal(t, "json", Extension(JSONFormatter{}))
	assert.Equal(t, "html", Extension(HTMLFormatter{}))
	assert.Equal(t, "md", Extension(MarkdownFormatter{}))
	assert.Equal(t, "txt", Extension(ConsoleFormatter{}))
	assert.Equal(t, "txt", Extension(PrettyFormatter{}))
}

func TestFormatAmount(t *testing.T) {
	tests := map[string]string{
		"0":          "0.00",
		"12.345":     "12.35",
		"1234.5":     "1,234.50",
		"-9876543.2": "-9,876,543.20",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatAmount(d(in)), "input %s", in)
	}
	assert.Equal(t, "22.00%", FormatRate(d("0.22")))
	assert.Equal(t, "6.50%", FormatPercentage(d("6.5")))
}

func TestBoundLabel(t *testing.T) {
	upper := d("11925")
	assert.Equal(t, "0.00 to 11,925.00", BoundLabel(domain.TaxBracket{LowerBound: d("0"), UpperBound: &upper}))
	assert.Equal(t, "626,350.00 and above", BoundLabel(domain.TaxBracket{LowerBound: d("626350")}))
}

func TestConsoleFormatters(t *testing.T) {
	results := sampleResults(t)

	lite, err := ConsoleFormatter{}.Format(results)
	require.NoError(t, err)
	out := string(lite)
	assert.Contains(t, out, "WORKSHEET SUMMARY: household")
	assert.Contains(t, out, "payment 112.00 x 12, interest 144.00")
	assert.Contains(t, out, "tax 5,000.00")

	verbose, err := ConsoleVerboseFormatter{}.Format(results)
	require.NoError(t, err)
	out = string(verbose)
	assert.Contains(t, out, "FINANCIAL WORKSHEET: household")
	assert.Contains(t, out, "LOAN 1: car")
	assert.Contains(t, out, "FLAT VS REDUCING BALANCE:")
	assert.Contains(t, out, "AMORTIZATION SCHEDULE:")
	assert.Contains(t, out, "Future Value:       11,268.25")
	assert.Contains(t, out, "10,000.00 and above")
	for _, a := range DefaultAssumptions {
		assert.Contains(t, out, a)
	}
}

func TestConsoleFormatter_UnnamedItems(t *testing.T) {
	results := sampleResults(t)
	results.Name = ""
	results.Loans[0].Name = ""

	out, err := ConsoleFormatter{}.Format(results)
	require.NoError(t, err)
	assert.Contains(t, string(out), "WORKSHEET SUMMARY: untitled")
	assert.Contains(t, string(out), "loan 1")
}

func TestCSVSummarizer(t *testing.T) {
	data, err := CSVSummarizer{}.Format(sampleResults(t))
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Type", "Name", "Basis", "Periods", "BaseAmount", "InterestOrTax", "Result"}, records[0])
	assert.Equal(t, []string{"loan", "car", "flat", "12", "1200.00", "144.00", "1344.00"}, records[1])
	assert.Equal(t, "investment", records[2][0])
	assert.Equal(t, "11268.25", records[2][6])
	assert.Equal(t, []string{"tax", "simple", "", "", "60000.00", "5000.00", "55000.00"}, records[3])
}

func TestCSVDetailedFormatter(t *testing.T) {
	data, err := CSVDetailedFormatter{}.Format(sampleResults(t))
	require.NoError(t, err)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	// loan header + 12 rows, investment header + 12 rows, tax header + 2 brackets + 2 totals
	// csv.Reader skips the blank separator lines
	assert.Len(t, records, 13+13+5)
	assert.Equal(t, "Loan", records[0][0])
	assert.Equal(t, "0.00", records[12][6], "final balance")
	assert.Equal(t, "Investment", records[13][0])
	assert.Equal(t, "Tax", records[26][0])
	assert.Equal(t, "Total", records[30][2])
	assert.Equal(t, "5000.00", records[30][6])
	assert.Equal(t, 2, strings.Count(string(data), "\n\n"))
}

func TestJSONFormatter(t *testing.T) {
	results := sampleResults(t)

	pretty, err := JSONFormatter{Pretty: true}.Format(results)
	require.NoError(t, err)
	compact, err := JSONFormatter{}.Format(results)
	require.NoError(t, err)
	assert.Greater(t, len(pretty), len(compact))
	assert.True(t, bytes.HasSuffix(pretty, []byte("}\n")))
	assert.True(t, bytes.HasSuffix(compact, []byte("}\n")))
	assert.Equal(t, 1, bytes.Count(compact, []byte("\n")), "compact output is a single line")

	var decoded domain.WorksheetResult
	require.NoError(t, json.Unmarshal(compact, &decoded))
	assert.Equal(t, "household", decoded.Name)
	require.Len(t, decoded.Loans, 1)
	assert.True(t, decoded.Loans[0].Schedule.TotalInterest.Equal(d("144")))
	require.Len(t, decoded.Taxes, 1)
	assert.True(t, decoded.Taxes[0].Result.TotalTax.Equal(d("5000")))
}

func TestHTMLFormatter(t *testing.T) {
	data, err := HTMLFormatter{}.Format(sampleResults(t))
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "<!DOCTYPE html>"))
	assert.Contains(t, out, "household")
	assert.Contains(t, out, "11,268.25")
	assert.Contains(t, out, "5,000.00")
}

func TestMarkdownFormatter(t *testing.T) {
	data, err := MarkdownFormatter{}.Format(sampleResults(t))
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "# household")
	assert.Contains(t, out, "| car | flat | 112.00 | 12 | 144.00 |")
	assert.Contains(t, out, "## Tax: simple")
	assert.Contains(t, out, "**Total tax:** 5,000.00")
}

func TestPrettyFormatter(t *testing.T) {
	data, err := PrettyFormatter{WordWrap: 120}.Format(sampleResults(t))
	require.NoError(t, err)
	assert.Contains(t, string(data), "household")
	assert.Contains(t, string(data), "5,000.00")
}

func TestFormatterFunc(t *testing.T) {
	f := FormatterFunc{ID: "names", F: func(r *domain.WorksheetResult) ([]byte, error) {
		return []byte(r.Name), nil
	}}
	assert.Equal(t, "names", f.Name())
	out, err := f.Format(&domain.WorksheetResult{Name: "x"})
	require.NoError(t, err)
	assert.Equal(t, "x", string(out))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "report.csv")
	require.NoError(t, WriteFile(path, []byte("a,b\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(data))
}

func TestWriteFormatted(t *testing.T) {
	t.Chdir(t.TempDir())

	name, err := WriteFormatted(CSVSummarizer{}, sampleResults(t), "csv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "fincalc_report_"))
	assert.True(t, strings.HasSuffix(name, ".csv"))
	_, err = os.Stat(name)
	assert.NoError(t, err)

	failing := FormatterFunc{ID: "broken", F: func(*domain.WorksheetResult) ([]byte, error) {
		return nil, errors.New("boom")
	}}
	_, err = WriteFormatted(failing, sampleResults(t), "txt")
	assert.EqualError(t, err, "boom")
}

func TestCopyToClipboard(t *testing.T) {
	original := clipboardWriteAll
	t.Cleanup(func() { clipboardWriteAll = original })

	var copied string
	clipboardWriteAll = func(s string) error {
		copied = s
		return nil
	}
	require.NoError(t, CopyToClipboard([]byte("report")))
	assert.Equal(t, "report", copied)

	clipboardWriteAll = func(string) error { return errors.New("no clipboard utility") }
	err := CopyToClipboard([]byte("report"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to copy to clipboard")
}
