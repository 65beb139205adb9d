package calculation

import (
	"testing"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dualHousehold() *domain.Household {
	return &domain.Household{
		Profile: domain.Profile{CurrentAge: 35, RetirementAge: 60, LifeExpectancy: 85},
		FamilyMembers: []domain.FamilyMember{
			{Name: "Arjun", Age: 35, MonthlyIncome: 140000, IsEarner: true},
			{Name: "Meera", Age: 33, MonthlyIncome: 60000, IsEarner: true, RetirementAge: 55, LifeExpectancy: 88},
			{Name: "Kabir", Age: 6, IsDependent: true},
		},
	}
}

func TestPlanDualRetirement_Earners(t *testing.T) {
	res, err := PlanDualRetirement(dualHousehold(), 2025)
	require.NoError(t, err)

	require.Len(t, res.Earners, 2)
	arjun, meera := res.Earners[0], res.Earners[1]
	assert.Equal(t, 60, arjun.RetirementAge, "profile retirement age fills the gap")
	assert.Equal(t, 85, arjun.LifeExpectancy)
	assert.Equal(t, 25, arjun.YearsToRetirement)
	assert.Equal(t, 25, arjun.YearsInRetirement)
	assert.Equal(t, 22, meera.YearsToRetirement)
	assert.Equal(t, 33, meera.YearsInRetirement)
	assert.Equal(t, 200000.0, res.CombinedMonthlyIncome)
}

func TestPlanDualRetirement_Timeline(t *testing.T) {
	res, err := PlanDualRetirement(dualHousehold(), 2025)
	require.NoError(t, err)

	require.Len(t, res.Timeline, 56)
	assert.Equal(t, 2025, res.Timeline[0].Year)
	assert.Equal(t, 2080, res.Timeline[55].Year)

	tests := []struct {
		offset   int
		combined float64
		working  int
		arjun    *float64
		meera    *float64
	}{
		{0, 2400000, 2, ptr(1680000), ptr(720000)},
		{21, 2400000, 2, ptr(1680000), ptr(720000)},
		{22, 1680000, 1, ptr(1680000), ptr(0)},
		{25, 0, 0, ptr(0), ptr(0)},
		{50, 0, 0, nil, ptr(0)},
		{55, 0, 0, nil, nil},
	}
	for _, tt := range tests {
		y := res.Timeline[tt.offset]
		assert.Equal(t, tt.combined, y.Combined, "offset %d", tt.offset)
		assert.Equal(t, tt.working, y.Working, "offset %d", tt.offset)
		assert.Equal(t, tt.arjun, y.Incomes[0], "offset %d", tt.offset)
		assert.Equal(t, tt.meera, y.Incomes[1], "offset %d", tt.offset)
	}
}

func TestPlanDualRetirement_AlreadyRetired(t *testing.T) {
	h := dualHousehold()
	h.FamilyMembers[0].Age = 66
	res, err := PlanDualRetirement(h, 2025)
	require.NoError(t, err)

	assert.Zero(t, res.Earners[0].YearsToRetirement)
	assert.Equal(t, 0.0, *res.Timeline[0].Incomes[0])
	assert.Equal(t, 720000.0, res.Timeline[0].Combined)
}

func TestPlanDualRetirement_NeedsTwoEarners(t *testing.T) {
	h := dualHousehold()
	h.FamilyMembers[1].IsEarner = false
	_, err := PlanDualRetirement(h, 2025)
	assert.EqualError(t, err, "dual retirement needs at least 2 earning family members, found 1")
}

func ptr(v float64) *float64 { return &v }
