package calculation

import (
	"fmt"

	"github.com/rgehrsitz/finplan/internal/domain"
)

// EarnerRetirement is one earner's working and retired span
type EarnerRetirement struct {
	Name              string  `json:"name"`
	CurrentAge        int     `json:"currentAge"`
	RetirementAge     int     `json:"retirementAge"`
	LifeExpectancy    int     `json:"lifeExpectancy"`
	YearsToRetirement int     `json:"yearsToRetirement"`
	YearsInRetirement int     `json:"yearsInRetirement"`
	MonthlyIncome     float64 `json:"monthlyIncome"`
}

// TimelineYear is the household's earned income in one calendar year.
// Incomes is aligned with DualRetirementResult.Earners; a nil entry means the
// earner is past life expectancy.
type TimelineYear struct {
	Year     int        `json:"year"`
	Incomes  []*float64 `json:"incomes"`
	Combined float64    `json:"combined"`
	Working  int        `json:"working"`
}

// DualRetirementResult is a phased retirement plan for two or more earners
type DualRetirementResult struct {
	Earners               []EarnerRetirement `json:"earners"`
	CombinedMonthlyIncome float64            `json:"combinedMonthlyIncome"`
	Timeline              []TimelineYear     `json:"timeline"`
}

// PlanDualRetirement lays out each earner's retirement and the combined annual income
// from currentYear until the last earner's life expectancy. Members without their own
// retirement age or life expectancy take the household profile's.
func PlanDualRetirement(h *domain.Household, currentYear int) (DualRetirementResult, error) {
	var res DualRetirementResult
	for _, m := range h.FamilyMembers {
		if !m.IsEarner {
			continue
		}
		retAge := m.RetirementAge
		if retAge == 0 {
			retAge = h.Profile.RetirementAge
		}
		life := m.LifeExpectancy
		if life == 0 {
			life = h.Profile.LifeExpectancy
		}
		res.Earners = append(res.Earners, EarnerRetirement{
			Name:              m.Name,
			CurrentAge:        m.Age,
			RetirementAge:     retAge,
			LifeExpectancy:    life,
			YearsToRetirement: max(0, retAge-m.Age),
			YearsInRetirement: max(0, life-retAge),
			MonthlyIncome:     m.MonthlyIncome,
		})
		res.CombinedMonthlyIncome += m.MonthlyIncome
	}
	if len(res.Earners) < 2 {
		return res, fmt.Errorf("dual retirement needs at least 2 earning family members, found %d", len(res.Earners))
	}

	span := 0
	for _, e := range res.Earners {
		span = max(span, e.YearsToRetirement+e.YearsInRetirement)
	}
	res.Timeline = make([]TimelineYear, 0, span+1)
	for i := 0; i <= span; i++ {
		ty := TimelineYear{Year: currentYear + i, Incomes: make([]*float64, len(res.Earners))}
		for k, e := range res.Earners {
			age := e.CurrentAge + i
			switch {
			case age < e.RetirementAge:
				income := e.MonthlyIncome * 12
				ty.Incomes[k] = &income
				ty.Combined += income
				ty.Working++
			case age < e.RetirementAge+e.YearsInRetirement:
				zero := 0.0
				ty.Incomes[k] = &zero
			}
		}
		res.Timeline = append(res.Timeline, ty)
	}
	return res, nil
}
