package domain

// Rating is the categorical band for a financial health total
type Rating string

const (
	RatingExcellent Rating = "Excellent"
	RatingGood      Rating = "Good"
	RatingFair      Rating = "Fair"
	RatingPoor      Rating = "Poor"
)

// Sub-score ceilings; they sum to 100
const (
	MaxNetWorthScore      = 25
	MaxSavingsRateScore   = 25
	MaxDebtRatioScore     = 20
	MaxEmergencyFundScore = 15
	MaxGoalProgressScore  = 15
)

// HealthScoreBreakdown holds the five independently clamped sub-scores
type HealthScoreBreakdown struct {
	NetWorth      int `json:"netWorth" yaml:"net_worth"`
	SavingsRate   int `json:"savingsRate" yaml:"savings_rate"`
	DebtRatio     int `json:"debtRatio" yaml:"debt_ratio"`
	EmergencyFund int `json:"emergencyFund" yaml:"emergency_fund"`
	GoalProgress  int `json:"goalProgress" yaml:"goal_progress"`
}

// Sum adds the sub-scores
func (b HealthScoreBreakdown) Sum() int {
	return b.NetWorth + b.SavingsRate + b.DebtRatio + b.EmergencyFund + b.GoalProgress
}

// HealthScore is the composite 0-100 financial health result
type HealthScore struct {
	Total     int                  `json:"total" yaml:"total"`
	Breakdown HealthScoreBreakdown `json:"breakdown" yaml:"breakdown"`
	Rating    Rating               `json:"rating" yaml:"rating"`
}

// RatingFor maps a total onto its band (>=85, >=70, >=50, else)
func RatingFor(total int) Rating {
	switch {
	case total >= 85:
		return RatingExcellent
	case total >= 70:
		return RatingGood
	case total >= 50:
		return RatingFair
	default:
		return RatingPoor
	}
}
