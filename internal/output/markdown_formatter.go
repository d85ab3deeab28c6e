package output

import (
	"bytes"
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/rgehrsitz/fincalc/internal/domain"
)

// MarkdownFormatter writes a summary report as GitHub-flavored markdown
type MarkdownFormatter struct{}

func (m MarkdownFormatter) Name() string { return "markdown" }

func (m MarkdownFormatter) Format(results *domain.WorksheetResult) ([]byte, error) {
	var buf bytes.Buffer
	writeMarkdown(&buf, results)
	return buf.Bytes(), nil
}

func writeMarkdown(w io.Writer, results *domain.WorksheetResult) {
	fmt.Fprintf(w, "# %s\n\n", worksheetTitle(results))

	if len(results.Loans) > 0 {
		fmt.Fprintln(w, "## Loans")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Loan | Mode | Payment | Periods | Total interest | Flat minus reducing interest |")
		fmt.Fprintln(w, "|---|---|--:|--:|--:|--:|")
		for i, loan := range results.Loans {
			s := loan.Schedule
			diff := "n/a"
			if loan.Comparison != nil {
				diff = FormatAmount(loan.Comparison.InterestDifference)
			}
			fmt.Fprintf(w, "| %s | %s | %s | %d | %s | %s |\n", itemName(loan.Name, "loan", i), s.Mode,
				FormatAmount(s.PeriodicPayment), len(s.Rows), FormatAmount(s.TotalInterest), diff)
		}
		fmt.Fprintln(w)
	}

	if len(results.Investments) > 0 {
		fmt.Fprintln(w, "## Investments")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Investment | Future value | Contributed | Interest | ROI |")
		fmt.Fprintln(w, "|---|--:|--:|--:|--:|")
		for i, p := range results.Investments {
			fmt.Fprintf(w, "| %s | %s | %s | %s | %s |\n", itemName(p.Plan.Name, "investment", i),
				FormatAmount(p.FutureValue), FormatAmount(p.TotalContributed), FormatAmount(p.TotalInterest),
				FormatPercentage(p.Metrics.ROIPercent))
		}
		fmt.Fprintln(w)
	}

	for i, t := range results.Taxes {
		r := t.Result
		fmt.Fprintf(w, "## Tax: %s\n\n", itemName(t.Name, "tax", i))
		fmt.Fprintln(w, "| Bracket | Rate | Amount | Tax |")
		fmt.Fprintln(w, "|---|--:|--:|--:|")
		for _, bt := range r.Brackets {
			fmt.Fprintf(w, "| %s | %s | %s | %s |\n", BoundLabel(bt.Bracket), FormatRate(bt.Bracket.MarginalRate),
				FormatAmount(bt.AmountInBracket), FormatAmount(bt.TaxInBracket))
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "**Total tax:** %s (surcharge %s, effective %s)\n\n",
			FormatAmount(r.TotalTax), FormatAmount(r.Surcharge), FormatRate(r.EffectiveRate))
	}
}

// PrettyFormatter renders the markdown report for the terminal
type PrettyFormatter struct {
	WordWrap int // zero means 100 columns
}

func (p PrettyFormatter) Name() string { return "pretty" }

func (p PrettyFormatter) Format(results *domain.WorksheetResult) ([]byte, error) {
	md, err := MarkdownFormatter{}.Format(results)
	if err != nil {
		return nil, err
	}

	wrap := p.WordWrap
	if wrap <= 0 {
		wrap = 100
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.RenderBytes(md)
	if err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
