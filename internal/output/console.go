package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/finplan/internal/breakeven"
	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/rgehrsitz/finplan/internal/tui/tuistyles"
)

const ruleWidth = 60

// ConsoleFormatter renders a report for a terminal. Plain drops lipgloss styling.
type ConsoleFormatter struct {
	Plain bool
}

func (c ConsoleFormatter) Name() string {
	if c.Plain {
		return "plain"
	}
	return "console"
}

func (c ConsoleFormatter) style(s lipgloss.Style, text string) string {
	if c.Plain {
		return text
	}
	return s.Render(text)
}

func (c ConsoleFormatter) heading(sb *strings.Builder, title string) {
	sb.WriteString("\n")
	sb.WriteString(c.style(tuistyles.TitleStyle, title) + "\n")
	sb.WriteString(strings.Repeat("-", ruleWidth) + "\n")
}

// Format implements Formatter
func (c ConsoleFormatter) Format(r *Report) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("report is nil")
	}
	var sb strings.Builder

	sb.WriteString(c.style(tuistyles.TitleStyle, strings.ToUpper(r.Title)) + "\n")
	sb.WriteString(strings.Repeat("=", ruleWidth) + "\n")
	if r.Household != "" {
		sb.WriteString(c.style(tuistyles.SubtitleStyle, "Household: "+r.Household) + "\n")
	}

	if len(r.Metrics) > 0 {
		sb.WriteString("\n")
		c.writeMetrics(&sb, r.Metrics)
	}
	if r.MonteCarlo != nil {
		c.writeMonteCarlo(&sb, r.MonteCarlo)
	}
	if len(r.Histogram) > 0 {
		c.heading(&sb, "DISTRIBUTION OF OUTCOMES")
		sb.WriteString(RenderHistogram(r.Histogram, DefaultHistogramWidth))
	}
	if r.Retirement != nil {
		c.writeRetirement(&sb, r.Retirement)
	}
	if r.Health != nil {
		c.writeHealth(&sb, r.Health)
	}
	if len(r.Goals) > 0 {
		c.writeGoals(&sb, r.Goals)
	}

	tf := &breakeven.TableFormatter{}
	if r.RequiredReturn != nil {
		sb.WriteString("\n")
		sb.WriteString(tf.FormatResult(*r.RequiredReturn))
	}
	if r.GoalsPlan != nil {
		sb.WriteString("\n")
		sb.WriteString(tf.FormatGoalsPlan(r.GoalsPlan))
	}

	for _, t := range r.Tables {
		c.writeTable(&sb, t)
	}
	if len(r.Assumptions) > 0 {
		c.heading(&sb, "ASSUMPTIONS")
		for _, a := range r.Assumptions {
			sb.WriteString("• " + a + "\n")
		}
	}
	if len(r.Notes) > 0 {
		c.heading(&sb, "NOTES")
		for _, n := range r.Notes {
			sb.WriteString(c.style(tuistyles.WarningStyle, "• "+n) + "\n")
		}
	}
	return []byte(sb.String()), nil
}

// FormatValue renders a metric value according to its kind
func FormatValue(m Metric) string {
	switch m.Kind {
	case KindCurrency:
		return tuistyles.FormatCurrency(m.Value)
	case KindPercent:
		return fmt.Sprintf("%.2f%%", m.Value)
	case KindYears:
		return fmt.Sprintf("%.0f years", m.Value)
	case KindText:
		return m.Text
	default:
		return fmt.Sprintf("%.2f", m.Value)
	}
}

func (c ConsoleFormatter) writeMetrics(sb *strings.Builder, metrics []Metric) {
	width := 0
	for _, m := range metrics {
		if len(m.Label) > width {
			width = len(m.Label)
		}
	}
	for _, m := range metrics {
		label := fmt.Sprintf("%-*s", width+1, m.Label+":")
		sb.WriteString(c.style(tuistyles.MetricLabelStyle, label) + " " +
			c.style(tuistyles.MetricValueStyle, FormatValue(m)) + "\n")
	}
}

func (c ConsoleFormatter) writeMonteCarlo(sb *strings.Builder, mc *calculation.MonteCarloResult) {
	c.heading(sb, "MONTE CARLO SIMULATION")
	sb.WriteString(fmt.Sprintf("Trials:                 %d (seed %d)\n", mc.Trials, mc.Seed))
	sb.WriteString(fmt.Sprintf("Pessimistic (P10):      %s\n", tuistyles.FormatCurrency(mc.P10)))
	sb.WriteString(fmt.Sprintf("Median (P50):           %s\n", tuistyles.FormatCurrency(mc.Median)))
	sb.WriteString(fmt.Sprintf("Optimistic (P90):       %s\n", tuistyles.FormatCurrency(mc.P90)))
	prob := fmt.Sprintf("%.1f%%", mc.Probability)
	style := tuistyles.MetricNegativeStyle
	if mc.Probability >= 50 {
		style = tuistyles.MetricPositiveStyle
	}
	sb.WriteString(fmt.Sprintf("Chance of reaching target: %s\n", c.style(style, prob)))
}

func (c ConsoleFormatter) writeRetirement(sb *strings.Builder, rr *calculation.RetirementResult) {
	c.heading(sb, "RETIREMENT PROJECTION")
	sb.WriteString(fmt.Sprintf("Years to retirement:    %d\n", rr.YearsToRetirement))
	sb.WriteString(fmt.Sprintf("Years in retirement:    %d\n", rr.YearsInRetirement))
	sb.WriteString(fmt.Sprintf("Annual expenses then:   %s\n", tuistyles.FormatCurrency(rr.AnnualExpensesAtRetirement)))
	sb.WriteString(fmt.Sprintf("Required corpus:        %s\n", tuistyles.FormatCurrency(rr.RequiredCorpus)))
	sb.WriteString(fmt.Sprintf("Projected corpus:       %s\n", tuistyles.FormatCurrency(rr.ProjectedCorpus)))

	label := "Surplus:"
	if rr.Surplus < 0 {
		label = "Shortfall:"
	}
	sb.WriteString(fmt.Sprintf("%-23s %s\n", label,
		c.style(tuistyles.MetricTrendStyle(rr.Surplus), tuistyles.FormatCurrency(rr.Surplus))))
	sb.WriteString(fmt.Sprintf("Corpus lasts:           %d years\n", rr.CorpusLastsYears))

	if len(rr.Drawdown) > 0 {
		t := Table{
			Title:   "DRAWDOWN SCHEDULE",
			Headers: []string{"Year", "Age", "Opening", "Withdrawal", "Closing"},
		}
		for _, d := range rr.Drawdown {
			t.Rows = append(t.Rows, []string{
				fmt.Sprintf("%d", d.Year),
				fmt.Sprintf("%d", d.Age),
				tuistyles.FormatCompact(d.OpeningBalance),
				tuistyles.FormatCompact(d.Withdrawal),
				tuistyles.FormatCompact(d.ClosingBalance),
			})
		}
		c.writeTable(sb, t)
	}
}

func (c ConsoleFormatter) writeHealth(sb *strings.Builder, h *domain.HealthScore) {
	c.heading(sb, "FINANCIAL HEALTH")
	sb.WriteString(fmt.Sprintf("Score:                  %s (%s)\n",
		c.style(tuistyles.MetricValueStyle, fmt.Sprintf("%d/100", h.Total)), h.Rating))
	rows := []struct {
		label string
		score int
		max   int
	}{
		{"Net worth", h.Breakdown.NetWorth, domain.MaxNetWorthScore},
		{"Savings rate", h.Breakdown.SavingsRate, domain.MaxSavingsRateScore},
		{"Debt ratio", h.Breakdown.DebtRatio, domain.MaxDebtRatioScore},
		{"Emergency fund", h.Breakdown.EmergencyFund, domain.MaxEmergencyFundScore},
		{"Goal progress", h.Breakdown.GoalProgress, domain.MaxGoalProgressScore},
	}
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("  %-21s %2d/%d\n", row.label, row.score, row.max))
	}
}

func (c ConsoleFormatter) writeGoals(sb *strings.Builder, goals []calculation.GoalProjection) {
	t := Table{
		Title:   "GOALS",
		Headers: []string{"Goal", "Year", "Future Cost", "Funded", "Status", "SIP Needed"},
	}
	for _, g := range goals {
		t.Rows = append(t.Rows, []string{
			g.Goal.Name,
			fmt.Sprintf("%d", g.Goal.TargetYear),
			tuistyles.FormatCompact(g.FutureCost),
			fmt.Sprintf("%.1f%%", g.ProgressPct),
			string(g.Status),
			tuistyles.FormatCurrency(g.RequiredMonthlySIP),
		})
	}
	c.writeTable(sb, t)
	sb.WriteString(fmt.Sprintf("Total monthly SIP needed: %s\n",
		tuistyles.FormatCurrency(calculation.TotalRequiredSIP(goals))))
}

func (c ConsoleFormatter) writeTable(sb *strings.Builder, t Table) {
	if t.Title != "" {
		c.heading(sb, t.Title)
	}
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	pad := func(s string, w int) string {
		return s + strings.Repeat(" ", max(w-lipgloss.Width(s), 0))
	}

	header := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = pad(h, widths[i])
	}
	sb.WriteString(c.style(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary), strings.Join(header, "  ")) + "\n")
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			w := 0
			if i < len(widths) {
				w = widths[i]
			}
			cells[i] = pad(cell, w)
		}
		sb.WriteString(strings.TrimRight(strings.Join(cells, "  "), " ") + "\n")
	}
}
