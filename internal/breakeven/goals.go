package breakeven

import (
	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/domain"
)

// GoalsRequiredReturn totals the inflated cost of every goal with a future target year,
// projects current savings and contributions over the longest goal horizon at the
// expected return, and solves for the return that would fund all of them.
func (s *Solver) GoalsRequiredReturn(
	h *domain.Household,
	currentSavings float64,
	monthlyContribution float64,
	expectedReturn float64,
	timing domain.Timing,
	currentYear int,
) (*GoalsPlan, error) {
	totalNeeded := 0.0
	maxYears := 0
	for _, g := range h.Goals {
		years := g.YearsRemaining(currentYear)
		if years <= 0 {
			continue
		}
		totalNeeded += calculation.FutureValue(g.CurrentCost, g.EffectiveInflation(), float64(years))
		if years > maxYears {
			maxYears = years
		}
	}

	if totalNeeded == 0 {
		return nil, &SolverError{
			Operation: "goals_required_return",
			Message:   "no goals with a future target year",
		}
	}

	horizon := float64(maxYears)
	projected := calculation.SIP(monthlyContribution, expectedReturn, horizon, timing) +
		calculation.FutureValue(currentSavings, expectedReturn, horizon)

	required := s.Solve(currentSavings, monthlyContribution, totalNeeded, horizon, timing)

	return &GoalsPlan{
		TotalNeeded:     totalNeeded,
		HorizonYears:    maxYears,
		ProjectedCorpus: projected,
		ExpectedReturn:  expectedReturn,
		Required:        required,
		Gap:             required.Rate - expectedReturn,
		Assessment:      ClassifyFeasibility(required.Rate),
	}, nil
}
