package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/fincalc/internal/domain"
	"github.com/rgehrsitz/fincalc/internal/output"
	"github.com/rgehrsitz/fincalc/internal/tui/components"
	"github.com/rgehrsitz/fincalc/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// View renders the current state of the application
func (m Model) View() string {
	title := tuistyles.TitleStyle.Render("FINCALC - Financial Calculators")

	var content string
	switch m.activeTab {
	case TabLoan:
		content = m.renderLoan()
	case TabInvestment:
		content = m.renderInvestment()
	case TabTax:
		content = m.renderTax()
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		tuistyles.BorderStyle.Render(m.renderForm()),
		"  ",
		content,
	)

	return tuistyles.AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		m.renderTabs(),
		body,
		m.renderStatusBar(),
	))
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, tabCount)
	for t := Tab(0); t < tabCount; t++ {
		style := tuistyles.InactiveTabStyle
		if t == m.activeTab {
			style = tuistyles.ActiveTabStyle
		}
		tabs = append(tabs, style.Render(t.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

func (m Model) renderForm() string {
	f := m.forms[m.activeTab]
	lines := make([]string, 0, len(f.inputs)+2)
	for i, input := range f.inputs {
		label := tuistyles.FieldLabelStyle
		if i == f.focus {
			label = tuistyles.FocusedLabelStyle
		}
		lines = append(lines, label.Render(f.labels[i])+input.View())
	}
	if err := m.errs[m.activeTab]; err != nil {
		lines = append(lines, "", tuistyles.ErrorStyle.Render("Invalid input: "+err.Error()))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStatusBar() string {
	parts := []string{m.help.View(m.keys)}
	if m.status != "" {
		parts = append([]string{tuistyles.InfoStyle.Render(m.status)}, parts...)
	}
	return tuistyles.StatusBarStyle.Render(strings.Join(parts, "\n"))
}

func (m Model) chartWidth() int {
	return max(m.width-60, 40)
}

func (m Model) renderLoan() string {
	chosen, other := m.selected()
	if chosen == nil {
		return ""
	}

	diff := m.loan.InterestDifference
	if chosen.Mode == domain.InterestFlat {
		diff = diff.Neg()
	}
	otherCard := components.NewMetricCard(fmt.Sprintf("Interest vs %s", other.Mode), output.FormatAmount(other.TotalInterest)).
		WithTrend(diff.IsPositive(), diff.IsNegative(), signed(diff)).
		WithDescription(fmt.Sprintf("%s payment %s", other.Mode, output.FormatAmount(other.PeriodicPayment)))

	cards := components.MetricGrid([]*components.MetricCard{
		components.NewMetricCard("Payment", output.FormatAmount(chosen.PeriodicPayment)).
			WithDescription(fmt.Sprintf("%s, %d periods", chosen.Mode, len(chosen.Rows))),
		components.NewMetricCard("Total interest", output.FormatAmount(chosen.TotalInterest)),
		components.NewMetricCard("Total paid", output.FormatAmount(chosen.TotalPayment)),
		otherCard,
	}, 2)

	chart := components.NewASCIIChart("Remaining balance").
		WithSize(m.chartWidth(), 8).
		WithXAxisLabel(fmt.Sprintf("periods 1-%d", len(chosen.Rows))).
		AddSeries(string(chosen.Mode), balances(chosen), tuistyles.ColorChartLine1).
		AddSeries(string(other.Mode), balances(other), tuistyles.ColorChartLine2)

	return lipgloss.JoinVertical(lipgloss.Left, cards, chart.Render())
}

func (m Model) renderInvestment() string {
	p := m.projection
	if p == nil {
		return ""
	}

	cards := components.MetricGrid([]*components.MetricCard{
		components.NewMetricCard("Future value", output.FormatAmount(p.FutureValue)),
		components.NewMetricCard("Contributed", output.FormatAmount(p.TotalContributed)),
		components.NewMetricCard("Interest earned", output.FormatAmount(p.TotalInterest)),
		components.NewMetricCard("ROI", output.FormatPercentage(p.Metrics.ROIPercent)).
			WithDescription(output.FormatPercentage(p.Metrics.AnnualizedReturnPercent) + " annualized"),
	}, 2)

	values := make([]float64, len(p.Rows))
	contributed := make([]float64, len(p.Rows))
	for i, row := range p.Rows {
		values[i] = row.AccumulatedValue.InexactFloat64()
		contributed[i] = row.TotalContributed.InexactFloat64()
	}
	chart := components.NewASCIIChart("Growth").
		WithSize(m.chartWidth(), 8).
		WithXAxisLabel(fmt.Sprintf("periods 1-%d", len(p.Rows))).
		AddSeries("value", values, tuistyles.ColorChartLine1).
		AddSeries("contributed", contributed, tuistyles.ColorChartLine2)

	return lipgloss.JoinVertical(lipgloss.Left, cards, chart.Render())
}

func (m Model) renderTax() string {
	if m.tax == nil {
		return ""
	}
	r := m.tax.Result

	cards := components.MetricGrid([]*components.MetricCard{
		components.NewMetricCard("Taxable income", output.FormatAmount(r.TaxableIncome)),
		components.NewMetricCard("Total tax", output.FormatAmount(r.TotalTax)).
			WithDescription("surcharge " + output.FormatAmount(r.Surcharge)),
		components.NewMetricCard("Effective rate", output.FormatRate(r.EffectiveRate)),
		components.NewMetricCard("Marginal rate", output.FormatRate(r.MarginalRate)),
	}, 2)

	var b strings.Builder
	fmt.Fprintf(&b, "%-30s %8s %14s\n", "Bracket", "Rate", "Tax")
	for _, bt := range r.Brackets {
		line := fmt.Sprintf("%-30s %8s %14s", output.BoundLabel(bt.Bracket),
			output.FormatRate(bt.Bracket.MarginalRate), output.FormatAmount(bt.TaxInBracket))
		if bt.AmountInBracket.IsZero() {
			line = tuistyles.MetricLabelStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	return lipgloss.JoinVertical(lipgloss.Left, cards, tuistyles.BorderStyle.Render(strings.TrimRight(b.String(), "\n")))
}

func balances(s *domain.AmortizationSchedule) []float64 {
	points := make([]float64, 0, len(s.Rows)+1)
	points = append(points, s.Terms.Principal.InexactFloat64())
	for _, row := range s.Rows {
		points = append(points, row.RemainingBalance.InexactFloat64())
	}
	return points
}

func signed(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + output.FormatAmount(d)
	}
	return output.FormatAmount(d)
}
