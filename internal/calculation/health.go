package calculation

import (
	"math"

	"github.com/rgehrsitz/finplan/internal/domain"
)

// onTrackFundedRatio is the saved/target ratio at which a goal counts as on track
const onTrackFundedRatio = 0.8

// GoalFunding is the minimum a scorer needs to know about a goal
type GoalFunding struct {
	Saved      float64
	FutureCost float64
}

// HealthFacts are the primitive inputs to the health score
type HealthFacts struct {
	NetWorth        float64
	MonthlyIncome   float64
	MonthlyExpenses float64
	MonthlyEMI      float64
	LiquidAssets    float64
	Goals           []GoalFunding
}

// HealthFactsFromHousehold extracts scoring inputs; goal targets are inflated to their
// target year from currentYear (past-due goals use a zero horizon).
func HealthFactsFromHousehold(h *domain.Household, currentYear int) HealthFacts {
	facts := HealthFacts{
		NetWorth:        h.NetWorth(),
		MonthlyIncome:   h.Profile.MonthlyIncome,
		MonthlyExpenses: h.Profile.MonthlyExpenses,
		MonthlyEMI:      h.TotalEMI(),
		LiquidAssets:    h.LiquidAssets(),
	}
	for _, g := range h.Goals {
		years := math.Max(float64(g.YearsRemaining(currentYear)), 0)
		facts.Goals = append(facts.Goals, GoalFunding{
			Saved:      g.SavedAmount,
			FutureCost: FutureValue(g.CurrentCost, g.EffectiveInflation(), years),
		})
	}
	return facts
}

// ScoreHealth computes the five sub-scores, their sum and the rating band
func ScoreHealth(f HealthFacts) domain.HealthScore {
	b := domain.HealthScoreBreakdown{
		NetWorth:      netWorthScore(f.NetWorth),
		SavingsRate:   savingsRateScore(f.MonthlyIncome, f.MonthlyExpenses),
		DebtRatio:     debtRatioScore(f.MonthlyIncome, f.MonthlyEMI),
		EmergencyFund: emergencyFundScore(f.LiquidAssets, f.MonthlyExpenses),
		GoalProgress:  goalProgressScore(f.Goals),
	}
	total := b.Sum()
	return domain.HealthScore{Total: total, Breakdown: b, Rating: domain.RatingFor(total)}
}

func netWorthScore(netWorth float64) int {
	if netWorth > 0 {
		return domain.MaxNetWorthScore
	}
	return 0
}

// SavingsRatePct is surplus income as a percentage of income, 0 when income is not positive
func SavingsRatePct(income, expenses float64) float64 {
	if income <= 0 {
		return 0
	}
	return math.Max(income-expenses, 0) / income * 100
}

func savingsRateScore(income, expenses float64) int {
	rate := SavingsRatePct(income, expenses)
	switch {
	case rate >= 20:
		return domain.MaxSavingsRateScore
	case rate <= 0:
		return 0
	}
	return int(math.Min(domain.MaxSavingsRateScore, math.Round(rate/20*domain.MaxSavingsRateScore)))
}

// DebtToIncomePct is EMI as a percentage of income; no income counts as fully indebted
func DebtToIncomePct(income, emi float64) float64 {
	if income <= 0 {
		return 100
	}
	return emi / income * 100
}

func debtRatioScore(income, emi float64) int {
	ratio := DebtToIncomePct(income, emi)
	switch {
	case ratio <= 30:
		return domain.MaxDebtRatioScore
	case ratio >= 50:
		return 0
	}
	over := math.Min(math.Max(ratio-30, 0), 20)
	return int(math.Round(domain.MaxDebtRatioScore - over/20*domain.MaxDebtRatioScore))
}

// EmergencyMonths is how many months of expenses liquid assets cover
func EmergencyMonths(liquid, monthlyExpenses float64) float64 {
	if monthlyExpenses <= 0 {
		return 0
	}
	return liquid / monthlyExpenses
}

func emergencyFundScore(liquid, expenses float64) int {
	months := EmergencyMonths(liquid, expenses)
	if months >= 6 {
		return domain.MaxEmergencyFundScore
	}
	if months <= 0 {
		return 0
	}
	return int(math.Round(math.Min(months/6*domain.MaxEmergencyFundScore, domain.MaxEmergencyFundScore)))
}

func goalProgressScore(goals []GoalFunding) int {
	if len(goals) == 0 {
		return domain.MaxGoalProgressScore
	}
	onTrack := 0
	for _, g := range goals {
		funded := 1.0
		if g.FutureCost > 0 {
			funded = g.Saved / g.FutureCost
		}
		if funded >= onTrackFundedRatio {
			onTrack++
		}
	}
	return int(math.Round(float64(onTrack) / float64(len(goals)) * domain.MaxGoalProgressScore))
}
