package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/finplan/internal/tui/tuistyles"
)

// TrialProgress tracks simulation trials and renders an animated bar
type TrialProgress struct {
	Done  int
	Total int
	Label string

	bar progress.Model
}

// NewTrialProgress creates a progress tracker for total trials
func NewTrialProgress(total int) TrialProgress {
	return TrialProgress{
		Total: total,
		bar: progress.New(
			progress.WithGradient(string(tuistyles.ColorPrimary), string(tuistyles.ColorSuccess)),
			progress.WithWidth(40),
		),
	}
}

// WithLabel sets the label shown above the bar
func (p TrialProgress) WithLabel(label string) TrialProgress {
	p.Label = label
	return p
}

// SetWidth resizes the bar, leaving room for the counters
func (p *TrialProgress) SetWidth(width int) {
	w := width - 24
	if w < 10 {
		w = 10
	}
	if w > 80 {
		w = 80
	}
	p.bar.Width = w
}

// Fraction returns completion in [0, 1]
func (p TrialProgress) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	f := float64(p.Done) / float64(p.Total)
	if f > 1 {
		return 1
	}
	return f
}

// IsComplete reports whether every trial has finished
func (p TrialProgress) IsComplete() bool {
	return p.Total > 0 && p.Done >= p.Total
}

// Set records trials completed and starts the bar animation toward the new fraction
func (p *TrialProgress) Set(done, total int) tea.Cmd {
	p.Done = done
	if total > 0 {
		p.Total = total
	}
	return p.bar.SetPercent(p.Fraction())
}

// Update forwards animation frames to the bar
func (p TrialProgress) Update(msg tea.Msg) (TrialProgress, tea.Cmd) {
	m, cmd := p.bar.Update(msg)
	if bar, ok := m.(progress.Model); ok {
		p.bar = bar
	}
	return p, cmd
}

// View renders the label, bar and trial counter
func (p TrialProgress) View() string {
	var sb strings.Builder
	if p.Label != "" {
		sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorForeground).Render(p.Label))
		sb.WriteString("\n")
	}
	sb.WriteString(p.bar.View())
	sb.WriteString(" ")
	sb.WriteString(tuistyles.MetricLabelStyle.Render(fmt.Sprintf("%d/%d trials", p.Done, p.Total)))
	return sb.String()
}
