package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/tui/components"
	"github.com/rgehrsitz/finplan/internal/tui/tuistyles"
)

// curvePoints is the number of percentiles sampled for the outcome chart
const curvePoints = 41

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch {
	case m.err != nil:
		content = tuistyles.ErrorStyle.Render("Error: " + m.err.Error())
	case m.aborted:
		content = tuistyles.WarningStyle.Render("Simulation aborted")
	case m.result != nil:
		content = m.renderResults()
	default:
		content = m.renderProgress()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		"",
		content,
		"",
		m.help.View(m.keys),
	)
}

func (m Model) renderTitleBar() string {
	p := m.params
	sub := fmt.Sprintf("%.0f years • %.1f%% ± %.1f%% • target %s",
		p.Years, p.MeanReturnPct, p.VolatilityPct, tuistyles.FormatCurrency(p.TargetCorpus))
	return lipgloss.JoinVertical(
		lipgloss.Left,
		tuistyles.TitleStyle.Render("FINPLAN - Monte Carlo Simulation"),
		tuistyles.SubtitleStyle.Render(sub),
	)
}

func (m Model) renderProgress() string {
	return tuistyles.BorderStyle.Render(m.progress.View())
}

func (m Model) renderResults() string {
	r := m.result

	width := 24
	if m.width >= 120 {
		width = 28
	}
	cards := []*components.MetricCard{
		components.NewMetricCard("Pessimistic (P10)", tuistyles.FormatCompact(r.P10)).WithWidth(width),
		components.NewMetricCard("Median", tuistyles.FormatCompact(r.Median)).WithWidth(width),
		components.NewMetricCard("Optimistic (P90)", tuistyles.FormatCompact(r.P90)).WithWidth(width),
		components.NewMetricCard("Chance of target", fmt.Sprintf("%.1f%%", r.Probability)).
			WithDelta(r.Probability - 50).
			WithWidth(width).
			WithDescription(fmt.Sprintf("%d trials, seed %d", r.Trials, r.Seed)),
	}
	columns := 4
	if m.width < 4*(width+2) {
		columns = 2
	}

	var sb strings.Builder
	sb.WriteString(components.MetricGrid(cards, columns))
	sb.WriteString("\n\n")

	if curve := components.PercentileCurve(r.SortedResults, curvePoints); len(curve) > 0 {
		chart := components.NewASCIIChart("Outcome by percentile").
			WithSize(min(m.width, 100), 12).
			WithXLabel("0th → 100th percentile of final corpus").
			AddSeries("Final corpus", curve, tuistyles.ColorPrimary)
		if m.params.TargetCorpus > 0 {
			target := make([]float64, len(curve))
			for i := range target {
				target[i] = m.params.TargetCorpus
			}
			chart.AddSeries("Target", target, tuistyles.ColorWarning)
		}
		sb.WriteString(chart.Render())
	}

	if bins := calculation.Histogram(r.SortedResults, 10); len(bins) > 0 {
		peak := 0
		for _, b := range bins {
			peak = max(peak, b.Count)
		}
		sb.WriteString("\n" + tuistyles.TitleStyle.Render("Distribution") + "\n")
		for _, b := range bins {
			n := 0
			if peak > 0 {
				n = b.Count * 30 / peak
			}
			sb.WriteString(fmt.Sprintf("%12s │%s %d\n",
				tuistyles.FormatCompact(b.Lower),
				lipgloss.NewStyle().Foreground(tuistyles.ColorSecondary).Render(strings.Repeat("█", n)),
				b.Count))
		}
	}
	return sb.String()
}
