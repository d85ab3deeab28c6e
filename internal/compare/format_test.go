package compare

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testComparisonSet() *ComparisonSet {
	return &ComparisonSet{
		BaseLoanName: "mortgage",
		ConfigPath:   "/path/to/loans.yaml",
		BaseResult: &ComparisonResult{
			LoanName:          "mortgage",
			Description:       "Base loan",
			Principal:         decimal.NewFromInt(250000),
			AnnualRatePercent: decimal.RequireFromString("6.5"),
			TermPeriods:       360,
			PeriodsPerYear:    12,
			Mode:              domain.InterestReducing,
			PeriodicPayment:   decimal.RequireFromString("1580.17"),
			TotalInterest:     decimal.RequireFromString("318861.22"),
			TotalPayment:      decimal.RequireFromString("568861.22"),
			TermYears:         decimal.NewFromInt(30),
		},
		AlternativeResults: []ComparisonResult{
			{
				LoanName:             "mortgage_rate_minus_1",
				Description:          "Refinance at a rate 1 point lower",
				Principal:            decimal.NewFromInt(250000),
				AnnualRatePercent:    decimal.RequireFromString("5.5"),
				TermPeriods:          360,
				PeriodsPerYear:       12,
				Mode:                 domain.InterestReducing,
				PeriodicPayment:      decimal.RequireFromString("1419.47"),
				TotalInterest:        decimal.RequireFromString("261010.10"),
				TotalPayment:         decimal.RequireFromString("511010.10"),
				TermYears:            decimal.NewFromInt(30),
				PaymentDiffFromBase:  decimal.RequireFromString("-160.70"),
				InterestDiffFromBase: decimal.RequireFromString("-57851.12"),
				InterestPctFromBase:  decimal.RequireFromString("-18.14"),
				TotalDiffFromBase:    decimal.RequireFromString("-57851.12"),
			},
		},
		Recommendations: []string{
			"Lowest Payment: mortgage_rate_minus_1 pays 160.70 less per period than the base loan",
		},
	}
}

func TestTableFormatter_Format(t *testing.T) {
	formatter := &TableFormatter{}
	result := formatter.Format(testComparisonSet())

	for _, want := range []string{
		"LOAN COMPARISON",
		"Base Loan: mortgage",
		"Worksheet: /path/to/loans.yaml",
		"mortgage (base)",
		"mortgage_rate_minus_1",
		"6.50%",
		"1,580.17",
		"318,861.22",
		"30 yrs",
		"COMPARISON TO BASE",
		"Payment:          -160.70 per period",
		"(-18.1%)",
		"RECOMMENDATIONS",
	} {
		assert.Contains(t, result, want)
	}
}

func TestTableFormatter_Format_EmptyAlternatives(t *testing.T) {
	compSet := testComparisonSet()
	compSet.AlternativeResults = nil
	compSet.Recommendations = nil
	compSet.ConfigPath = ""

	result := (&TableFormatter{}).Format(compSet)
	assert.NotContains(t, result, "COMPARISON TO BASE")
	assert.NotContains(t, result, "RECOMMENDATIONS")
	assert.NotContains(t, result, "Worksheet:")
}

func TestTableFormatter_Helpers(t *testing.T) {
	tf := &TableFormatter{}
	assert.Equal(t, "1.25M", tf.formatDecimal(decimal.NewFromInt(1250000)))
	assert.Equal(t, "12,345.60", tf.formatDecimal(decimal.RequireFromString("12345.60")))
	assert.Equal(t, "4,614.50", tf.formatDecimal(decimal.RequireFromString("4614.5")))
	assert.Equal(t, "1,000.00", tf.formatDecimal(decimal.NewFromInt(1000)))
	assert.Equal(t, "abcdefg...", tf.truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "short", tf.truncate("short", 10))
	assert.Equal(t, "+", tf.deltaSymbol(decimal.NewFromInt(1)))
	assert.Equal(t, "", tf.deltaSymbol(decimal.NewFromInt(-1)))
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	compSet := testComparisonSet()
	compSet.AlternativeResults = append(compSet.AlternativeResults, ComparisonResult{LoanName: "same"})

	result := (&TableFormatter{}).FormatCompact(compSet)
	assert.Equal(t, "Base: mortgage | mortgage_rate_minus_1: -160.70 | same: =", result)
}

func TestCSVFormatter_Format(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(testComparisonSet())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Loan", records[0][0])
	assert.Equal(t, []string{"mortgage", "base", "250000.00", "6.5", "360", "12", "reducing", "1580.17", "318861.22", "568861.22", "0.00", "0.00", "0.00", "0.00"}, records[1])
	assert.Equal(t, "alternative", records[2][1])
	assert.Equal(t, "-57851.12", records[2][11])
}

func TestJSONFormatter_Format(t *testing.T) {
	compSet := testComparisonSet()

	pretty, err := (&JSONFormatter{Pretty: true}).Format(compSet)
	require.NoError(t, err)
	assert.Contains(t, pretty, "\n  \"baseLoanName\": \"mortgage\"")

	compact, err := (&JSONFormatter{}).Format(compSet)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(compact, "}\n"), "document ends with a newline")
	assert.NotContains(t, strings.TrimSuffix(compact, "\n"), "\n")

	var decoded ComparisonSet
	require.NoError(t, json.Unmarshal([]byte(compact), &decoded))
	assert.Equal(t, "mortgage", decoded.BaseLoanName)
	require.Len(t, decoded.AlternativeResults, 1)
	assert.True(t, decoded.AlternativeResults[0].PaymentDiffFromBase.Equal(decimal.RequireFromString("-160.70")))
	assert.Nil(t, decoded.AlternativeResults[0].Schedule, "schedules are not serialized")
}
