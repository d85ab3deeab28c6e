package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestMetricCard_Render(t *testing.T) {
	card := NewMetricCard("Payment", "1,580.17").
		WithTrend(true, false, "+385.51").
		WithDescription("per period").
		WithWidth(30)

	out := card.Render()
	assert.Contains(t, out, "Payment")
	assert.Contains(t, out, "1,580.17")
	assert.Contains(t, out, "▲ +385.51")
	assert.Contains(t, out, "per period")
	assert.Equal(t, 30+2, lipgloss.Width(strings.Split(out, "\n")[0]), "width plus border")
}

func TestMetricCard_RenderCompact(t *testing.T) {
	out := NewMetricCard("Tax", "5,200.00").WithTrend(false, true, "-10.00").RenderCompact()
	assert.Contains(t, out, "Tax:")
	assert.Contains(t, out, "5,200.00")
	assert.Contains(t, out, "▼ -10.00")
	assert.NotContains(t, out, "\n")

	assert.NotContains(t, NewMetricCard("Tax", "0.00").RenderCompact(), "▲")
}

func TestMetricGrid(t *testing.T) {
	assert.Empty(t, MetricGrid(nil, 2))

	cards := []*MetricCard{NewMetricCard("A", "1"), NewMetricCard("B", "2"), NewMetricCard("C", "3")}
	one := lipgloss.Height(cards[0].Render())
	assert.Equal(t, 2*one, lipgloss.Height(MetricGrid(cards, 2)))
	assert.Equal(t, one, lipgloss.Height(MetricGrid(cards, 3)))
	assert.Equal(t, 3*one, lipgloss.Height(MetricGrid(cards, 0)))
}

func TestASCIIChart_Render(t *testing.T) {
	chart := NewASCIIChart("Balance").
		WithSize(40, 6).
		WithXAxisLabel("period").
		AddSeries("balance", []float64{1000, 750, 500, 250, 0}, lipgloss.Color("#4EA8DE"))

	out := chart.Render()
	assert.Contains(t, out, "Balance")
	assert.Contains(t, out, "1.0K")
	assert.Contains(t, out, "period")
	assert.Contains(t, out, "●")
	assert.NotContains(t, out, "Legend")

	lines := strings.Split(out, "\n")
	// title, 6 plot rows, axis, caption
	assert.Len(t, lines, 9)
	assert.True(t, strings.HasSuffix(strings.TrimRight(lines[1], " "), "●"), "series starts high on the left: %q", lines[1])
}

func TestASCIIChart_EdgeCases(t *testing.T) {
	assert.Contains(t, NewASCIIChart("empty").Render(), "No data to display")
	assert.Contains(t, NewASCIIChart("empty").AddSeries("none", nil, lipgloss.Color("1")).Render(), "No data to display")

	flat := NewASCIIChart("").AddSeries("flat", []float64{5, 5, 5}, lipgloss.Color("1")).Render()
	assert.Contains(t, flat, "●")

	single := NewASCIIChart("").AddSeries("one", []float64{42}, lipgloss.Color("1")).Render()
	assert.Equal(t, 1, strings.Count(single, "●"))

	two := NewASCIIChart("").
		AddSeries("a", []float64{1, 2}, lipgloss.Color("1")).
		AddSeries("b", []float64{2, 1}, lipgloss.Color("2")).
		Render()
	assert.Contains(t, two, "Legend:")
	assert.Contains(t, two, "■ b")
}

func TestFormatChartValue(t *testing.T) {
	assert.Equal(t, "2.5M", formatChartValue(2500000))
	assert.Equal(t, "11.3K", formatChartValue(11268.25))
	assert.Equal(t, "-42", formatChartValue(-42))
}
