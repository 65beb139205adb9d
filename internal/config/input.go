package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/finplan/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of household files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a household from a YAML (or JSON) file and validates it
func (ip *InputParser) LoadFromFile(filename string) (*domain.Household, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates household YAML
func (ip *InputParser) Parse(data []byte) (*domain.Household, error) {
	household := domain.Household{Assumptions: domain.DefaultAssumptions()}
	if err := yaml.Unmarshal(data, &household); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateHousehold(&household); err != nil {
		return nil, fmt.Errorf("household validation failed: %w", err)
	}

	return &household, nil
}

// ValidateHousehold checks a household for values the engine cannot project sensibly
func (ip *InputParser) ValidateHousehold(h *domain.Household) error {
	if err := ip.validateProfile(&h.Profile); err != nil {
		return fmt.Errorf("profile validation failed: %w", err)
	}
	for i, a := range h.Assets {
		if err := ip.validateAsset(a); err != nil {
			return fmt.Errorf("asset %d (%s) validation failed: %w", i, a.Name, err)
		}
	}
	for i, l := range h.Liabilities {
		if err := ip.validateLiability(l); err != nil {
			return fmt.Errorf("liability %d (%s) validation failed: %w", i, l.Name, err)
		}
	}
	for i, g := range h.Goals {
		if err := ip.validateGoal(g); err != nil {
			return fmt.Errorf("goal %d (%s) validation failed: %w", i, g.Name, err)
		}
	}
	for i, m := range h.FamilyMembers {
		if err := ip.validateMember(m); err != nil {
			return fmt.Errorf("family member %d (%s) validation failed: %w", i, m.Name, err)
		}
	}
	if err := ip.validateAssumptions(&h.Assumptions); err != nil {
		return fmt.Errorf("assumptions validation failed: %w", err)
	}
	return nil
}

func (ip *InputParser) validateProfile(p *domain.Profile) error {
	if p.CurrentAge < 0 || p.CurrentAge > 120 {
		return fmt.Errorf("current age must be between 0 and 120, got %d", p.CurrentAge)
	}
	if p.RetirementAge != 0 && p.RetirementAge < p.CurrentAge {
		return fmt.Errorf("retirement age (%d) cannot be before current age (%d)", p.RetirementAge, p.CurrentAge)
	}
	if p.LifeExpectancy != 0 && p.LifeExpectancy < p.RetirementAge {
		return fmt.Errorf("life expectancy (%d) cannot be before retirement age (%d)", p.LifeExpectancy, p.RetirementAge)
	}
	if p.MonthlyIncome < 0 {
		return fmt.Errorf("monthly income cannot be negative")
	}
	if p.MonthlyExpenses < 0 {
		return fmt.Errorf("monthly expenses cannot be negative")
	}
	if p.MonthlySavings < 0 {
		return fmt.Errorf("monthly savings cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateAsset(a domain.Asset) error {
	if a.Name == "" {
		return fmt.Errorf("name is required")
	}
	if a.Value < 0 {
		return fmt.Errorf("value cannot be negative")
	}
	if err := validateRate("expected return", a.ExpectedReturn); err != nil {
		return err
	}
	return nil
}

func (ip *InputParser) validateLiability(l domain.Liability) error {
	if l.Name == "" {
		return fmt.Errorf("name is required")
	}
	if l.Amount < 0 {
		return fmt.Errorf("amount cannot be negative")
	}
	if l.EMI < 0 {
		return fmt.Errorf("emi cannot be negative")
	}
	return validateRate("interest rate", l.InterestRate)
}

func (ip *InputParser) validateGoal(g domain.Goal) error {
	if g.Name == "" {
		return fmt.Errorf("name is required")
	}
	if g.CurrentCost < 0 {
		return fmt.Errorf("current cost cannot be negative")
	}
	if g.SavedAmount < 0 {
		return fmt.Errorf("saved amount cannot be negative")
	}
	if g.TargetYear <= 0 {
		return fmt.Errorf("target year is required")
	}
	if err := validateRate("inflation rate", g.InflationRate); err != nil {
		return err
	}
	return validateRate("expected return", g.ExpectedReturn)
}

func (ip *InputParser) validateMember(m domain.FamilyMember) error {
	if m.Name == "" {
		return fmt.Errorf("name is required")
	}
	if m.Age < 0 || m.Age > 120 {
		return fmt.Errorf("age must be between 0 and 120, got %d", m.Age)
	}
	if m.MonthlyIncome < 0 {
		return fmt.Errorf("monthly income cannot be negative")
	}
	if m.RetirementAge < 0 || m.LifeExpectancy < 0 {
		return fmt.Errorf("retirement age and life expectancy cannot be negative")
	}
	if m.RetirementAge != 0 && m.LifeExpectancy != 0 && m.LifeExpectancy < m.RetirementAge {
		return fmt.Errorf("life expectancy (%d) cannot be before retirement age (%d)", m.LifeExpectancy, m.RetirementAge)
	}
	return nil
}

func (ip *InputParser) validateAssumptions(a *domain.Assumptions) error {
	checks := []struct {
		name string
		v    float64
	}{
		{"inflation rate", a.InflationRate},
		{"pre-retirement return", a.PreRetirementReturn},
		{"post-retirement return", a.PostRetirementReturn},
		{"asset growth rate", a.AssetGrowthRate},
	}
	for _, c := range checks {
		if err := validateRate(c.name, c.v); err != nil {
			return err
		}
	}
	if a.Volatility < 0 || a.Volatility > 100 {
		return fmt.Errorf("volatility must be between 0%% and 100%%, got %.2f%%", a.Volatility)
	}
	if a.ExpenseReplacementPct < 0 || a.ExpenseReplacementPct > 200 {
		return fmt.Errorf("expense replacement must be between 0%% and 200%%, got %.2f%%", a.ExpenseReplacementPct)
	}
	return nil
}

// validateRate bounds annual percentage rates to a plausible range
func validateRate(name string, v float64) error {
	if v < -50 || v > 100 {
		return fmt.Errorf("%s must be between -50%% and 100%%, got %.2f%%", name, v)
	}
	return nil
}
