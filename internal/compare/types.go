package compare

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/rgehrsitz/finplan/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// ScenarioResult holds the headline metrics of one household snapshot
type ScenarioResult struct {
	ID           string `json:"id"`
	ScenarioName string `json:"scenarioName"`
	Description  string `json:"description,omitempty"`

	// Inputs as seen by this scenario
	RetirementAge     int     `json:"retirementAge"`
	YearsToRetirement int     `json:"yearsToRetirement"`
	ReturnPct         float64 `json:"returnPct"`
	MonthlySavings    float64 `json:"monthlySavings"`

	// Key Metrics
	RetirementCorpus decimal.Decimal `json:"retirementCorpus"`
	GoalSuccessRate  int             `json:"goalSuccessRate"` // % of goals already funded at future cost
	FinalNetWorth    decimal.Decimal `json:"finalNetWorth"`   // corpus less today's liabilities

	// Comparison to Base
	CorpusDiffFromBase   decimal.Decimal `json:"corpusDiffFromBase"`
	CorpusPctFromBase    decimal.Decimal `json:"corpusPctFromBase"`
	GoalRateDiff         int             `json:"goalRateDiff"`
	NetWorthDiffFromBase decimal.Decimal `json:"netWorthDiffFromBase"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	ID                 string           `json:"id"`
	HouseholdName      string           `json:"householdName"`
	HouseholdPath      string           `json:"householdPath,omitempty"`
	GeneratedAt        time.Time        `json:"generatedAt"`
	BaseResult         *ScenarioResult  `json:"baseResult"`
	AlternativeResults []ScenarioResult `json:"alternativeResults"`
	Recommendations    []string         `json:"recommendations"`
}

// MetricsCalculator derives scenario metrics from a household snapshot
type MetricsCalculator struct {
	Timing      domain.Timing
	CurrentYear int

	// scenarios whose corpus overflowed and was recorded as zero
	nonFinite []string
}

// NewMetricsCalculator creates a metrics calculator for the given timing and year
func NewMetricsCalculator(timing domain.Timing, currentYear int) *MetricsCalculator {
	return &MetricsCalculator{Timing: timing, CurrentYear: currentYear}
}

// CalculateMetrics computes the corpus, goal success rate and net worth for h.
// The scenario return is h's pre-retirement return floored at zero.
func (mc *MetricsCalculator) CalculateMetrics(name string, h *domain.Household) ScenarioResult {
	years := math.Max(float64(h.Profile.RetirementAge-h.Profile.CurrentAge), 0)
	a := h.Assumptions.WithDefaults()
	rate := math.Max(0, a.PreRetirementReturn)
	growth := a.AssetGrowthRate

	corpus := calculation.SIP(h.Profile.MonthlySavings, rate, years, mc.Timing) +
		calculation.FutureValue(h.TotalAssets(), growth, years)
	if math.IsNaN(corpus) || math.IsInf(corpus, 0) {
		mc.nonFinite = append(mc.nonFinite, name)
	}

	return ScenarioResult{
		ID:                uuid.NewString(),
		ScenarioName:      name,
		RetirementAge:     h.Profile.RetirementAge,
		YearsToRetirement: int(years),
		ReturnPct:         rate,
		MonthlySavings:    h.Profile.MonthlySavings,
		RetirementCorpus:  money(corpus),
		GoalSuccessRate:   mc.goalSuccessRate(h.Goals),
		FinalNetWorth:     money(corpus - h.TotalLiabilities()),
	}
}

// goalSuccessRate is the share of goals whose saved amount already covers the
// inflated cost at the target year
func (mc *MetricsCalculator) goalSuccessRate(goals []domain.Goal) int {
	if len(goals) == 0 {
		return 100
	}
	met := 0
	for _, g := range goals {
		years := math.Max(float64(g.YearsRemaining(mc.CurrentYear)), 0)
		if g.SavedAmount >= calculation.FutureValue(g.CurrentCost, g.EffectiveInflation(), years) {
			met++
		}
	}
	return int(math.Round(float64(met) / float64(len(goals)) * 100))
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ScenarioResult) ScenarioResult {
	scenario.CorpusDiffFromBase = scenario.RetirementCorpus.Sub(base.RetirementCorpus)

	if !base.RetirementCorpus.IsZero() {
		scenario.CorpusPctFromBase = scenario.CorpusDiffFromBase.
			Div(base.RetirementCorpus).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	scenario.GoalRateDiff = scenario.GoalSuccessRate - base.GoalSuccessRate
	scenario.NetWorthDiffFromBase = scenario.FinalNetWorth.Sub(base.FinalNetWorth)

	return scenario
}

// money rounds v to paise. decimal cannot hold NaN or infinities, so those become zero;
// CalculateMetrics records the scenario so callers can reject it.
func money(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v).Round(2)
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 || compSet.BaseResult == nil {
		return recommendations
	}
	base := compSet.BaseResult

	// Find best scenario by retirement corpus
	bestCorpus := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.RetirementCorpus.GreaterThan(bestCorpus.RetirementCorpus) {
			bestCorpus = alt
		}
	}

	if bestCorpus != base {
		diff := bestCorpus.RetirementCorpus.Sub(base.RetirementCorpus)
		recommendations = append(recommendations,
			"Largest Corpus: "+bestCorpus.ScenarioName+" builds "+tuistyles.FormatCurrency(diff.InexactFloat64())+
				" more by retirement than the base plan")
	}

	// Find best goal success rate
	bestGoals := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.GoalSuccessRate > bestGoals.GoalSuccessRate {
			bestGoals = alt
		}
	}

	if bestGoals != base {
		recommendations = append(recommendations,
			"Best Goal Coverage: "+bestGoals.ScenarioName+" funds "+
				fmt.Sprintf("%d%% of goals (base %d%%)", bestGoals.GoalSuccessRate, base.GoalSuccessRate))
	}

	// Warn about scenarios that lose more than a tenth of the corpus
	for _, alt := range compSet.AlternativeResults {
		if alt.CorpusPctFromBase.LessThan(decimal.NewFromInt(-10)) {
			recommendations = append(recommendations,
				"Risk: "+alt.ScenarioName+" shrinks the retirement corpus by "+
					alt.CorpusPctFromBase.Abs().StringFixed(1)+"%")
		}
	}

	return recommendations
}
