package calculation

import (
	"math"

	"github.com/rgehrsitz/finplan/internal/domain"
)

// GoalStatus is the funding band of a goal
type GoalStatus string

const (
	GoalCritical       GoalStatus = "critical"
	GoalNeedsAttention GoalStatus = "needs_attention"
	GoalOnTrack        GoalStatus = "on_track"
)

// GoalStatusFor maps funding progress (percent) onto a status band
func GoalStatusFor(progressPct float64) GoalStatus {
	switch {
	case progressPct < 30:
		return GoalCritical
	case progressPct < 60:
		return GoalNeedsAttention
	default:
		return GoalOnTrack
	}
}

// GoalProjection is the inflated target and funding position of one goal
type GoalProjection struct {
	Goal               domain.Goal `json:"goal"`
	YearsRemaining     int         `json:"yearsRemaining"`
	FutureCost         float64     `json:"futureCost"`
	ProgressPct        float64     `json:"progressPct"`
	Status             GoalStatus  `json:"status"`
	Shortfall          float64     `json:"shortfall"`
	RequiredMonthlySIP float64     `json:"requiredMonthlySip"`
}

// ProjectGoal inflates a goal's cost to its target year and sizes the monthly SIP
// needed to close the gap at the goal's expected return.
func ProjectGoal(g domain.Goal, timing domain.Timing, currentYear int) GoalProjection {
	years := g.YearsRemaining(currentYear)
	horizon := math.Max(float64(years), 0)
	fv := FutureValue(g.CurrentCost, g.EffectiveInflation(), horizon)

	progress := 100.0
	if fv > 0 {
		progress = math.Min(g.SavedAmount/fv*100, 100)
	}
	shortfall := math.Max(fv-g.SavedAmount, 0)

	gp := GoalProjection{
		Goal:           g,
		YearsRemaining: years,
		FutureCost:     fv,
		ProgressPct:    progress,
		Status:         GoalStatusFor(progress),
		Shortfall:      shortfall,
	}
	if years > 0 {
		gp.RequiredMonthlySIP = RequiredSIP(shortfall, g.ExpectedReturn, float64(years), timing)
	}
	return gp
}

// TotalRequiredSIP sums the monthly SIP needed across projections
func TotalRequiredSIP(projections []GoalProjection) float64 {
	total := 0.0
	for _, p := range projections {
		total += p.RequiredMonthlySIP
	}
	return total
}
