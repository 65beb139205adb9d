package config

import (
	"testing"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/stretchr/testify/assert"
)

func validHousehold() *domain.Household {
	return &domain.Household{
		Name: "Test",
		Profile: domain.Profile{
			CurrentAge: 40, RetirementAge: 60, LifeExpectancy: 85,
			MonthlyIncome: 100000, MonthlyExpenses: 60000, MonthlySavings: 30000,
		},
		Assets:        []domain.Asset{{Name: "Cash", Category: domain.CategoryCash, Value: 100000, ExpectedReturn: 4}},
		Liabilities:   []domain.Liability{{Name: "Loan", Amount: 500000, InterestRate: 9, EMI: 10000}},
		Goals:         []domain.Goal{{Name: "Car", CurrentCost: 800000, TargetYear: 2030, InflationRate: 5, ExpectedReturn: 10}},
		FamilyMembers: []domain.FamilyMember{{Name: "Self", Age: 40, IsEarner: true}},
	}
}

func TestValidateHousehold(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(h *domain.Household)
		errContains string
	}{
		{"valid", func(h *domain.Household) {}, ""},
		{"negative age", func(h *domain.Household) { h.Profile.CurrentAge = -1 }, "current age"},
		{"retire before now", func(h *domain.Household) { h.Profile.RetirementAge = 30 }, "retirement age (30)"},
		{"die before retiring", func(h *domain.Household) { h.Profile.LifeExpectancy = 55 }, "life expectancy (55)"},
		{"negative income", func(h *domain.Household) { h.Profile.MonthlyIncome = -5 }, "monthly income"},
		{"negative expenses", func(h *domain.Household) { h.Profile.MonthlyExpenses = -5 }, "monthly expenses"},
		{"unnamed asset", func(h *domain.Household) { h.Assets[0].Name = "" }, "asset 0"},
		{"negative asset", func(h *domain.Household) { h.Assets[0].Value = -1 }, "value cannot be negative"},
		{"absurd asset return", func(h *domain.Household) { h.Assets[0].ExpectedReturn = 250 }, "expected return"},
		{"negative emi", func(h *domain.Household) { h.Liabilities[0].EMI = -1 }, "emi cannot be negative"},
		{"goal without year", func(h *domain.Household) { h.Goals[0].TargetYear = 0 }, "target year is required"},
		{"goal negative saved", func(h *domain.Household) { h.Goals[0].SavedAmount = -10 }, "saved amount"},
		{"member bad age", func(h *domain.Household) { h.FamilyMembers[0].Age = 200 }, "family member 0 (Self)"},
		{"member dies before retiring", func(h *domain.Household) {
			h.FamilyMembers[0].RetirementAge, h.FamilyMembers[0].LifeExpectancy = 60, 55
		}, "life expectancy (55) cannot be before retirement age (60)"},
		{"member negative retirement age", func(h *domain.Household) { h.FamilyMembers[0].RetirementAge = -1 }, "cannot be negative"},
		{"volatility range", func(h *domain.Household) { h.Assumptions.Volatility = 150 }, "volatility"},
		{"inflation range", func(h *domain.Household) { h.Assumptions.InflationRate = -80 }, "inflation rate"},
		{"retirement age optional", func(h *domain.Household) { h.Profile.RetirementAge, h.Profile.LifeExpectancy = 0, 0 }, ""},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := validHousehold()
			tt.mutate(h)
			err := parser.ValidateHousehold(h)
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.errContains)
			}
		})
	}
}
