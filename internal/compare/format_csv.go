package compare

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"ID",
		"Scenario",
		"Type",
		"Retirement Age",
		"Return %",
		"Monthly Savings",
		"Retirement Corpus",
		"Goal Success Rate",
		"Final Net Worth",
		"Corpus Diff from Base",
		"Corpus % Change",
		"Goal Rate Diff",
		"Net Worth Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a scenario result as a CSV row
func (cf *CSVFormatter) formatRow(result *ScenarioResult, scenarioType string) []string {
	return []string{
		result.ID,
		result.ScenarioName,
		scenarioType,
		formatInt(result.RetirementAge),
		fmt.Sprintf("%.2f", result.ReturnPct),
		fmt.Sprintf("%.2f", result.MonthlySavings),
		result.RetirementCorpus.StringFixed(2),
		formatInt(result.GoalSuccessRate),
		result.FinalNetWorth.StringFixed(2),
		result.CorpusDiffFromBase.StringFixed(2),
		result.CorpusPctFromBase.StringFixed(2),
		formatInt(result.GoalRateDiff),
		result.NetWorthDiffFromBase.StringFixed(2),
	}
}

func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
