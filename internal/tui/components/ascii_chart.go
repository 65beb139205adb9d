package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/finplan/internal/tui/tuistyles"
)

// Series is one plotted line
type Series struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// ASCIIChart draws line series on a character grid
type ASCIIChart struct {
	Title  string
	Series []Series
	XLabel string
	Width  int
	Height int
}

const yAxisWidth = 12

// NewASCIIChart creates a chart with default dimensions
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{Title: title, Width: 60, Height: 12}
}

// AddSeries appends a line
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, Series{Name: name, Points: points, Color: color})
	return c
}

// WithSize sets the chart dimensions
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

// WithXLabel sets the caption under the x axis
func (c *ASCIIChart) WithXLabel(label string) *ASCIIChart {
	c.XLabel = label
	return c
}

// PercentileCurve samples sorted values at n evenly spaced percentiles from 0 to 100
func PercentileCurve(sorted []float64, n int) []float64 {
	if len(sorted) == 0 || n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{sorted[len(sorted)/2]}
	}
	out := make([]float64, n)
	last := len(sorted) - 1
	for i := range out {
		out[i] = sorted[int(math.Round(float64(i)/float64(n-1)*float64(last)))]
	}
	return out
}

// Render returns the chart with y-axis values in compact currency units
func (c *ASCIIChart) Render() string {
	lo, hi, ok := c.bounds()
	if !ok {
		return tuistyles.InfoStyle.Render("No data to display")
	}
	height := max(c.Height, 2)
	width := max(c.Width-yAxisWidth-3, 2)

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	toRow := func(v float64) int {
		return height - 1 - int((v-lo)/(hi-lo)*float64(height-1))
	}
	toCol := func(i, n int) int {
		if n <= 1 {
			return 0
		}
		return int(float64(i) / float64(n-1) * float64(width-1))
	}

	for s, series := range c.Series {
		mark := seriesMark(s)
		for i, v := range series.Points {
			x, y := toCol(i, len(series.Points)), toRow(v)
			if i > 0 {
				drawLine(grid, toCol(i-1, len(series.Points)), toRow(series.Points[i-1]), x, y, mark)
			}
			if y >= 0 && y < height && x >= 0 && x < width {
				grid[y][x] = mark
			}
		}
	}

	var sb strings.Builder
	if c.Title != "" {
		sb.WriteString(tuistyles.TitleStyle.Render(c.Title) + "\n\n")
	}
	axis := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(yAxisWidth).Align(lipgloss.Right)
	for i, row := range grid {
		v := hi - float64(i)/float64(height-1)*(hi-lo)
		sb.WriteString(axis.Render(tuistyles.FormatCompact(v)) + " │ " + string(row) + "\n")
	}
	sb.WriteString(strings.Repeat(" ", yAxisWidth) + " └" + strings.Repeat("─", width+1) + "\n")
	if c.XLabel != "" {
		sb.WriteString(strings.Repeat(" ", yAxisWidth+3) + tuistyles.SubtitleStyle.Render(c.XLabel) + "\n")
	}
	if len(c.Series) > 1 {
		var items []string
		for s, series := range c.Series {
			items = append(items, lipgloss.NewStyle().Foreground(series.Color).Render(string(seriesMark(s)))+" "+series.Name)
		}
		sb.WriteString(tuistyles.MetricLabelStyle.Render("Legend: ") + strings.Join(items, " • ") + "\n")
	}
	return sb.String()
}

// bounds returns the padded value range across all series
func (c *ASCIIChart) bounds() (float64, float64, bool) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, v := range s.Points {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 0, false
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = math.Max(math.Abs(hi)*0.05, 1)
	}
	return lo - pad, hi + pad, true
}

func seriesMark(i int) rune {
	marks := []rune{'●', '─', '▲', '♦'}
	return marks[i%len(marks)]
}

// drawLine fills blank cells between two points with Bresenham's algorithm
func drawLine(grid [][]rune, x0, y0, x1, y1 int, mark rune) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		if y0 >= 0 && y0 < len(grid) && x0 >= 0 && x0 < len(grid[y0]) && grid[y0][x0] == ' ' {
			grid[y0][x0] = mark
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

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
