package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/fincalc/internal/tui/tuistyles"
)

// DataSeries is one line of a chart
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.TerminalColor
}

// ASCIIChart plots one or more series over the same x range, such as a loan
// balance falling to zero or an investment value growing
type ASCIIChart struct {
	Title      string
	Series     []*DataSeries
	Width      int
	Height     int
	XAxisLabel string
}

const yAxisWidth = 10

// NewASCIIChart creates a new chart
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:  title,
		Width:  60,
		Height: 10,
	}
}

// AddSeries adds a data series to the chart
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.TerminalColor) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{Name: name, Points: points, Color: color})
	return c
}

// WithSize sets the chart dimensions
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

// WithXAxisLabel sets the x-axis caption
func (c *ASCIIChart) WithXAxisLabel(label string) *ASCIIChart {
	c.XAxisLabel = label
	return c
}

func (c *ASCIIChart) plotWidth() int {
	return max(c.Width-yAxisWidth-3, 2)
}

// Render returns the styled chart
func (c *ASCIIChart) Render() string {
	lo, hi, ok := c.bounds()
	if !ok {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var b strings.Builder
	if c.Title != "" {
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Title))
		b.WriteString("\n")
	}

	height := max(c.Height, 2)
	width := c.plotWidth()
	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}
	for i, s := range c.Series {
		c.plot(grid, s.Points, lo, hi, seriesChar(i))
	}

	axis := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(yAxisWidth).Align(lipgloss.Right)
	for i, row := range grid {
		label := ""
		if i == 0 || i == height-1 || i == height/2 {
			label = formatChartValue(hi - (hi-lo)*float64(i)/float64(height-1))
		}
		b.WriteString(axis.Render(label))
		b.WriteString(" │ ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat(" ", yAxisWidth) + " └" + strings.Repeat("─", width+1))

	if c.XAxisLabel != "" {
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", yAxisWidth+3))
		b.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true).Render(c.XAxisLabel))
	}

	if len(c.Series) > 1 {
		b.WriteString("\n")
		b.WriteString(c.renderLegend())
	}

	return b.String()
}

// bounds finds the value range across all series; a flat range is widened so
// the line sits in the middle of the plot
func (c *ASCIIChart) bounds() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, p := range s.Points {
			lo = math.Min(lo, p)
			hi = math.Max(hi, p)
			ok = true
		}
	}
	if !ok {
		return 0, 0, false
	}
	if hi == lo {
		lo, hi = lo-1, hi+1
	}
	return lo, hi, true
}

// plot samples points across the grid width and joins consecutive samples
func (c *ASCIIChart) plot(grid [][]rune, points []float64, lo, hi float64, char rune) {
	if len(points) == 0 {
		return
	}
	height, width := len(grid), len(grid[0])
	toY := func(v float64) int {
		return height - 1 - int(math.Round((v-lo)/(hi-lo)*float64(height-1)))
	}

	prevX, prevY := -1, 0
	for x := 0; x < width; x++ {
		idx := 0
		if len(points) > 1 {
			idx = int(math.Round(float64(x) / float64(width-1) * float64(len(points)-1)))
		}
		y := toY(points[idx])
		if prevX >= 0 {
			drawLine(grid, prevX, prevY, x, y, char)
		} else {
			grid[y][x] = char
		}
		prevX, prevY = x, y
		if len(points) == 1 {
			break
		}
	}
}

func seriesChar(index int) rune {
	chars := []rune{'●', '■', '▲', '♦'}
	return chars[index%len(chars)]
}

// drawLine draws between two grid cells using Bresenham's algorithm
func drawLine(grid [][]rune, x0, y0, x1, y1 int, char rune) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		if y0 >= 0 && y0 < len(grid) && x0 >= 0 && x0 < len(grid[y0]) {
			grid[y0][x0] = char
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *ASCIIChart) renderLegend() string {
	items := make([]string, 0, len(c.Series))
	for i, s := range c.Series {
		symbol := lipgloss.NewStyle().Foreground(s.Color).Render(string(seriesChar(i)))
		items = append(items, symbol+" "+s.Name)
	}
	return lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render("Legend: " + strings.Join(items, " • "))
}

// formatChartValue abbreviates a y-axis value
func formatChartValue(value float64) string {
	switch {
	case math.Abs(value) >= 1e6:
		return fmt.Sprintf("%.1fM", value/1e6)
	case math.Abs(value) >= 1e3:
		return fmt.Sprintf("%.1fK", value/1e3)
	default:
		return fmt.Sprintf("%.0f", value)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
