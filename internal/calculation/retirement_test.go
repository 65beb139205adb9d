package calculation

import (
	"testing"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRetirementParams() RetirementParams {
	return RetirementParams{
		CurrentAge:            30,
		RetirementAge:         60,
		LifeExpectancy:        85,
		MonthlyExpenses:       50000,
		ExpenseReplacementPct: 100,
		InflationPct:          6,
		PreRetirementPct:      12,
		PostRetirementPct:     8,
		CurrentCorpus:         1000000,
		MonthlyContribution:   20000,
		Timing:                domain.TimingDue,
	}
}

func TestProjectRetirement(t *testing.T) {
	res := ProjectRetirement(sampleRetirementParams())

	assert.Equal(t, 30, res.YearsToRetirement)
	assert.Equal(t, 25, res.YearsInRetirement)
	assert.InDelta(t, 3446094.70, res.AnnualExpensesAtRetirement, 0.01)
	assert.InDelta(t, 64323085.75, res.RequiredCorpus, 0.01)
	assert.InDelta(t, 100558197.60, res.ProjectedCorpus, 0.01)
	assert.InDelta(t, 36235111.85, res.Surplus, 0.01)
	assert.Equal(t, 47, res.CorpusLastsYears)
	require.Len(t, res.Drawdown, 25)

	first := res.Drawdown[0]
	assert.Equal(t, 1, first.Year)
	assert.Equal(t, 60, first.Age)
	assert.InDelta(t, res.ProjectedCorpus, first.OpeningBalance, 1e-6)
	assert.InDelta(t, res.AnnualExpensesAtRetirement, first.Withdrawal, 1e-6)
	assert.InDelta(t, res.Drawdown[1].OpeningBalance, first.ClosingBalance, 1e-6)
}

func TestProjectRetirement_EqualRates(t *testing.T) {
	p := sampleRetirementParams()
	p.PostRetirementPct = 6

	res := ProjectRetirement(p)
	assert.InDelta(t, 81275818.48, res.RequiredCorpus, 0.01)
	assert.InDelta(t, res.AnnualExpensesAtRetirement*25/1.06, res.RequiredCorpus, 1e-6)
	assert.Equal(t, 31, res.CorpusLastsYears)
}

func TestProjectRetirement_DegenerateHorizons(t *testing.T) {
	t.Run("no retirement years", func(t *testing.T) {
		p := sampleRetirementParams()
		p.CurrentAge, p.RetirementAge, p.LifeExpectancy = 60, 60, 60

		res := ProjectRetirement(p)
		assert.Equal(t, 0.0, res.RequiredCorpus)
		assert.InDelta(t, 1000000, res.ProjectedCorpus, 1e-6)
		assert.Equal(t, 1000000.0, res.Surplus)
		assert.Equal(t, 2, res.CorpusLastsYears)
		assert.Empty(t, res.Drawdown)
	})

	t.Run("life expectancy before retirement", func(t *testing.T) {
		p := sampleRetirementParams()
		p.LifeExpectancy = 55

		res := ProjectRetirement(p)
		assert.Equal(t, 0, res.YearsInRetirement)
		assert.Equal(t, 0.0, res.RequiredCorpus)
	})

	t.Run("already past retirement age", func(t *testing.T) {
		p := sampleRetirementParams()
		p.CurrentAge = 65

		res := ProjectRetirement(p)
		assert.Equal(t, 0, res.YearsToRetirement)
		assert.InDelta(t, 1000000, res.ProjectedCorpus, 1e-6, "no growth or contributions over a zero horizon")
	})

	t.Run("empty corpus never lasts", func(t *testing.T) {
		res := ProjectRetirement(RetirementParams{CurrentAge: 40, RetirementAge: 50, LifeExpectancy: 80, MonthlyExpenses: 10000, ExpenseReplacementPct: 100})
		assert.Equal(t, 0, res.CorpusLastsYears)
		assert.InDelta(t, 3600000, res.RequiredCorpus, 1e-6)
	})
}

func TestCorpusLastsYears_Cap(t *testing.T) {
	assert.Equal(t, 100, CorpusLastsYears(1e9, 1000, 10, 2), "perpetual corpus stops at the cap")
	assert.Equal(t, 0, CorpusLastsYears(0, 1000, 10, 2))
}

func TestGrowingAnnuityPV(t *testing.T) {
	assert.Equal(t, 0.0, GrowingAnnuityPV(1000, 0.08, 0.06, 0))
	assert.Equal(t, 0.0, GrowingAnnuityPV(1000, 0.08, 0.06, -3))
	assert.InDelta(t, 1000*10/1.05, GrowingAnnuityPV(1000, 0.05, 0.05, 10), 1e-9)
	// No growth reduces to an ordinary annuity
	assert.InDelta(t, 1000*(1-1/1.1/1.1)/0.1, GrowingAnnuityPV(1000, 0.1, 0, 2), 1e-9)
}

func TestProjectRetirement_ExpenseReplacement(t *testing.T) {
	p := sampleRetirementParams()
	full := ProjectRetirement(p)

	p.ExpenseReplacementPct = 70
	reduced := ProjectRetirement(p)
	assert.InDelta(t, full.AnnualExpensesAtRetirement*0.7, reduced.AnnualExpensesAtRetirement, 1e-6)
	assert.InDelta(t, full.RequiredCorpus*0.7, reduced.RequiredCorpus, 1e-4)

	p.ExpenseReplacementPct = 0
	none := ProjectRetirement(p)
	assert.Zero(t, none.AnnualExpensesAtRetirement)
	assert.Zero(t, none.RequiredCorpus)
	assert.InDelta(t, full.ProjectedCorpus, none.Surplus, 1e-6)
	assert.Equal(t, maxDepletionYears, none.CorpusLastsYears)
}

func TestProjectRetirement_ZeroRatesAreLiteral(t *testing.T) {
	p := sampleRetirementParams()
	p.InflationPct, p.PostRetirementPct = 0, 0

	res := ProjectRetirement(p)
	assert.InDelta(t, 50000*12, res.AnnualExpensesAtRetirement, 1e-9)
	assert.InDelta(t, 50000*12*25, res.RequiredCorpus, 1e-6)
}
