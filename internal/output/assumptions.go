package output

import (
	"fmt"

	"github.com/rgehrsitz/finplan/internal/domain"
)

// AssumptionLines lists the planning rates a household projection ran with,
// after defaults are applied.
func AssumptionLines(a domain.Assumptions) []string {
	a = a.WithDefaults()
	return []string{
		fmt.Sprintf("Inflation: %.1f%% annually", a.InflationRate),
		fmt.Sprintf("Pre-retirement return: %.1f%% annually", a.PreRetirementReturn),
		fmt.Sprintf("Post-retirement return: %.1f%% annually", a.PostRetirementReturn),
		fmt.Sprintf("Retirement expenses: %.0f%% of today's spending", a.ExpenseReplacementPct),
		fmt.Sprintf("Return volatility: %.1f%%", a.Volatility),
		fmt.Sprintf("Existing asset growth: %.1f%% annually", a.AssetGrowthRate),
		fmt.Sprintf("Goals without an inflation rate: %.0f%% annually", domain.DefaultGoalInflation),
	}
}
