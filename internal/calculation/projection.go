package calculation

import (
	"github.com/rgehrsitz/finplan/internal/domain"
)

// ProjectionParams describes a savings plan run to retirement
type ProjectionParams struct {
	CurrentAge     int
	RetirementAge  int
	CurrentSavings float64
	MonthlySavings float64
	ReturnPct      float64
	Timing         domain.Timing
}

// ProjectionYear is the wealth at the end of one plan year
type ProjectionYear struct {
	Year          int     `json:"year"`
	Age           int     `json:"age"`
	Contributions float64 `json:"contributions"` // SIP balance, compounded monthly
	Lumpsum       float64 `json:"lumpsum"`       // current savings, compounded annually
	Wealth        float64 `json:"wealth"`
	TotalInvested float64 `json:"totalInvested"`
}

// ProjectionResult is the headline of a savings projection plus the yearly series
type ProjectionResult struct {
	Years           int              `json:"years"`
	ProjectedCorpus float64          `json:"projectedCorpus"`
	TotalInvested   float64          `json:"totalInvested"`
	TotalReturns    float64          `json:"totalReturns"`
	Series          []ProjectionYear `json:"series"`
}

// ProjectWealth walks the contributions month by month in the configured timing and
// compounds the current savings annually, recording the balance at each year end.
// Series[0] is the starting point; the last entry equals ProjectedCorpus.
func ProjectWealth(p ProjectionParams) ProjectionResult {
	years := p.RetirementAge - p.CurrentAge
	if years < 0 {
		years = 0
	}
	r := MonthlyRate(p.ReturnPct)

	series := make([]ProjectionYear, 0, years+1)
	series = append(series, ProjectionYear{
		Age:           p.CurrentAge,
		Lumpsum:       p.CurrentSavings,
		Wealth:        p.CurrentSavings,
		TotalInvested: p.CurrentSavings,
	})

	balance := 0.0
	for m := 1; m <= years*12; m++ {
		if p.Timing.IsDue() {
			balance = (balance + p.MonthlySavings) * (1 + r)
		} else {
			balance = balance*(1+r) + p.MonthlySavings
		}
		if m%12 != 0 {
			continue
		}
		y := m / 12
		lumpsum := FutureValue(p.CurrentSavings, p.ReturnPct, float64(y))
		series = append(series, ProjectionYear{
			Year:          y,
			Age:           p.CurrentAge + y,
			Contributions: balance,
			Lumpsum:       lumpsum,
			Wealth:        balance + lumpsum,
			TotalInvested: p.CurrentSavings + p.MonthlySavings*12*float64(y),
		})
	}

	last := series[len(series)-1]
	return ProjectionResult{
		Years:           years,
		ProjectedCorpus: last.Wealth,
		TotalInvested:   last.TotalInvested,
		TotalReturns:    last.Wealth - last.TotalInvested,
		Series:          series,
	}
}

// ProjectionParamsFromHousehold uses the profile savings, total assets and the
// pre-retirement return
func ProjectionParamsFromHousehold(h *domain.Household, timing domain.Timing) ProjectionParams {
	return ProjectionParams{
		CurrentAge:     h.Profile.CurrentAge,
		RetirementAge:  h.Profile.RetirementAge,
		CurrentSavings: h.TotalAssets(),
		MonthlySavings: h.Profile.MonthlySavings,
		ReturnPct:      h.Assumptions.WithDefaults().PreRetirementReturn,
		Timing:         timing,
	}
}
