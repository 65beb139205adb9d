package compare

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/finplan/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct {
	// Plain disables lipgloss styling (for logs and tests)
	Plain bool
}

const (
	nameWidth = 22
	numWidth  = 16
	ruleWidth = nameWidth + 4*(numWidth+1)
)

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(tf.style(tuistyles.TitleStyle, "HOUSEHOLD SCENARIO COMPARISON") + "\n")
	sb.WriteString(strings.Repeat("=", ruleWidth) + "\n")
	sb.WriteString(fmt.Sprintf("Household: %s\n", compSet.HouseholdName))
	if compSet.HouseholdPath != "" {
		sb.WriteString(fmt.Sprintf("File: %s\n", compSet.HouseholdPath))
	}
	sb.WriteString("\n")

	header := fmt.Sprintf("%-*s %*s %*s %*s %*s",
		nameWidth, "Scenario",
		numWidth, "Retire Age",
		numWidth, "Corpus",
		numWidth, "Goals Funded",
		numWidth, "Net Worth")
	sb.WriteString(tf.style(tuistyles.TableHeaderStyle, header) + "\n")
	sb.WriteString(strings.Repeat("-", ruleWidth) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", ruleWidth) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], false))
		}
	}

	sb.WriteString(strings.Repeat("=", ruleWidth) + "\n")

	// Comparison details (deltas from base)
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", ruleWidth) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(" - " + alt.Description)
			}
			sb.WriteString(":\n")

			sb.WriteString(fmt.Sprintf("  Corpus:        %s (%s%%)\n",
				tf.delta(alt.CorpusDiffFromBase),
				alt.CorpusPctFromBase.StringFixed(1)))

			if alt.GoalRateDiff != 0 {
				sb.WriteString(fmt.Sprintf("  Goals Funded:  %+d points\n", alt.GoalRateDiff))
			}

			if !alt.NetWorthDiffFromBase.Equal(alt.CorpusDiffFromBase) {
				sb.WriteString(fmt.Sprintf("  Net Worth:     %s\n", tf.delta(alt.NetWorthDiffFromBase)))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", ruleWidth) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ScenarioResult, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*d %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, result.RetirementAge,
		numWidth, tuistyles.FormatCompact(result.RetirementCorpus.InexactFloat64()),
		numWidth, fmt.Sprintf("%d%%", result.GoalSuccessRate),
		numWidth, tuistyles.FormatCompact(result.FinalNetWorth.InexactFloat64()))
}

// delta renders a signed currency difference, colored by direction
func (tf *TableFormatter) delta(d decimal.Decimal) string {
	v := d.InexactFloat64()
	s := tuistyles.FormatCompact(v)
	if d.IsPositive() {
		s = "+" + s
	}
	return tf.style(tuistyles.MetricTrendStyle(v), s)
}

func (tf *TableFormatter) style(s lipgloss.Style, text string) string {
	if tf.Plain {
		return text
	}
	return s.Render(text)
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", tuistyles.FormatCompact(compSet.BaseResult.RetirementCorpus.InexactFloat64())))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if !alt.CorpusDiffFromBase.IsZero() {
			change = fmt.Sprintf("%s%s", tuistyles.TrendIndicator(alt.CorpusDiffFromBase.InexactFloat64()),
				tuistyles.FormatCompact(alt.CorpusDiffFromBase.Abs().InexactFloat64()))
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
