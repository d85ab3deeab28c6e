// Package tuistyles holds the colors and lipgloss styles shared by the
// calculator screens and their components.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/fincalc/internal/output"
)

var (
	// Colors
	ColorPrimary   = lipgloss.Color("#7D56F4")
	ColorSecondary = lipgloss.Color("#3C3C8A")
	ColorAccent    = lipgloss.Color("#F4A261")
	ColorSuccess   = lipgloss.Color("#2A9D8F")
	ColorDanger    = lipgloss.Color("#E63946")
	ColorInfo      = lipgloss.Color("#4EA8DE")

	ColorForeground = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#EDEDED"}
	ColorMuted      = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#6C6C6C"}
	ColorBorder     = lipgloss.AdaptiveColor{Light: "#C8C8C8", Dark: "#444444"}

	ColorChartLine1 = lipgloss.Color("#4EA8DE")
	ColorChartLine2 = lipgloss.Color("#F4A261")
)

var (
	AppStyle = lipgloss.NewStyle().Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			PaddingTop(1)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ActiveTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Border(lipgloss.RoundedBorder(), true, true, false, true).
			BorderForeground(ColorPrimary).
			Padding(0, 2)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Border(lipgloss.RoundedBorder(), true, true, false, true).
				BorderForeground(ColorBorder).
				Padding(0, 2)

	FieldLabelStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Width(28)

	FocusedLabelStyle = FieldLabelStyle.
				Foreground(ColorPrimary).
				Bold(true)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorForeground)

	MetricPositiveStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	MetricNegativeStyle = lipgloss.NewStyle().Foreground(ColorDanger)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)
)

// MetricTrendStyle colors a change; good changes are green
func MetricTrendStyle(good bool) lipgloss.Style {
	if good {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// TrendIndicator returns an arrow for the direction of a change
func TrendIndicator(up bool) string {
	if up {
		return "▲"
	}
	return "▼"
}

// FormatCurrency formats money the same way as the report formatters
var FormatCurrency = output.FormatAmount
