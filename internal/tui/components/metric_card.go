package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/finplan/internal/tui/tuistyles"
)

// MetricCard displays a single figure with a label and optional delta
type MetricCard struct {
	Label       string
	Value       string
	Description string
	Width       int

	// Delta colours the value and prefixes an arrow when HasDelta is set
	Delta    float64
	HasDelta bool
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 26,
	}
}

// WithDelta marks the card as moving in the direction of delta
func (m *MetricCard) WithDelta(delta float64) *MetricCard {
	m.Delta = delta
	m.HasDelta = true
	return m
}

// WithDescription adds a subtitle
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

func (m *MetricCard) value() string {
	if !m.HasDelta {
		return tuistyles.MetricValueStyle.Render(m.Value)
	}
	return tuistyles.MetricTrendStyle(m.Delta).Render(tuistyles.TrendIndicator(m.Delta) + " " + m.Value)
}

// Render returns the bordered card
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" + m.value()
	if m.Description != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Description)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// RenderCompact returns an inline "label: value" form without a border
func (m *MetricCard) RenderCompact() string {
	return tuistyles.MetricLabelStyle.Render(m.Label+":") + " " + m.value()
}

// MetricGrid lays cards out in rows of the given column count
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns <= 0 {
		columns = 1
	}

	var rows, current []string
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
