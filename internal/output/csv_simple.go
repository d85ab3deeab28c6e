package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rgehrsitz/fincalc/internal/domain"
)

// CSVSummarizer writes one row per calculation
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.WorksheetResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Type", "Name", "Basis", "Periods", "BaseAmount", "InterestOrTax", "Result"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	var rows [][]string
	for _, loan := range results.Loans {
		s := loan.Schedule
		rows = append(rows, []string{
			"loan", loan.Name, string(s.Mode), intToString(len(s.Rows)),
			s.Terms.Principal.StringFixed(2), s.TotalInterest.StringFixed(2), s.TotalPayment.StringFixed(2),
		})
	}
	for _, p := range results.Investments {
		rows = append(rows, []string{
			"investment", p.Plan.Name, "annuity-due", intToString(len(p.Rows)),
			p.TotalContributed.StringFixed(2), p.TotalInterest.StringFixed(2), p.FutureValue.StringFixed(2),
		})
	}
	for _, t := range results.Taxes {
		r := t.Result
		rows = append(rows, []string{
			"tax", t.Name, t.Schedule, "",
			r.TaxableIncome.StringFixed(2), r.TotalTax.StringFixed(2), r.Income.Sub(r.TotalTax).StringFixed(2),
		})
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CSVDetailedFormatter writes every schedule as its own block of rows,
// separated by blank lines
type CSVDetailedFormatter struct{}

func (c CSVDetailedFormatter) Name() string { return "detailed-csv" }

func (c CSVDetailedFormatter) Format(results *domain.WorksheetResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	var records [][]string
	block := func(rows ...[]string) {
		if len(records) > 0 {
			records = append(records, []string{})
		}
		records = append(records, rows...)
	}

	for i, loan := range results.Loans {
		rows := [][]string{{"Loan", itemName(loan.Name, "loan", i), "Period", "Payment", "Interest", "Principal", "Balance"}}
		for _, r := range loan.Schedule.Rows {
			rows = append(rows, []string{"", "", intToString(r.Period),
				r.Payment.StringFixed(2), r.Interest.StringFixed(2), r.Principal.StringFixed(2), r.RemainingBalance.StringFixed(2)})
		}
		block(rows...)
	}
	for i, p := range results.Investments {
		rows := [][]string{{"Investment", itemName(p.Plan.Name, "investment", i), "Period", "Value", "Contributed", "Interest"}}
		for _, r := range p.Rows {
			rows = append(rows, []string{"", "", intToString(r.Period),
				r.AccumulatedValue.StringFixed(2), r.TotalContributed.StringFixed(2), r.AccumulatedInterest.StringFixed(2)})
		}
		block(rows...)
	}
	for i, t := range results.Taxes {
		rows := [][]string{{"Tax", itemName(t.Name, "tax", i), "LowerBound", "UpperBound", "Rate", "Amount", "Tax"}}
		for _, bt := range t.Result.Brackets {
			upper := ""
			if !bt.Bracket.Unbounded() {
				upper = bt.Bracket.UpperBound.StringFixed(2)
			}
			rows = append(rows, []string{"", "", bt.Bracket.LowerBound.StringFixed(2), upper,
				bt.Bracket.MarginalRate.String(), bt.AmountInBracket.StringFixed(2), bt.TaxInBracket.StringFixed(2)})
		}
		r := t.Result
		rows = append(rows,
			[]string{"", "", "Surcharge", "", r.SurchargeRate.String(), r.TotalTaxBeforeSurcharge.StringFixed(2), r.Surcharge.StringFixed(2)},
			[]string{"", "", "Total", "", "", r.TaxableIncome.StringFixed(2), r.TotalTax.StringFixed(2)},
		)
		block(rows...)
	}

	if err := w.WriteAll(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
