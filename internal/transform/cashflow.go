package transform

import (
	"fmt"
	"math"

	"github.com/rgehrsitz/finplan/internal/domain"
)

// scale applies a percentage change, rounds to whole currency units and floors at zero
func scale(v, percent float64) float64 {
	return math.Max(0, math.Round(v*(1+percent/100)))
}

func validatePercent(name string, percent float64) error {
	if percent < -100 {
		return NewTransformError(name, "validate", fmt.Sprintf("percent cannot be below -100, got %.2f", percent), nil)
	}
	return nil
}

// AdjustSavings changes the monthly savings contribution by a percentage
type AdjustSavings struct {
	Percent float64
}

func (as *AdjustSavings) Name() string {
	return "adjust_savings"
}

func (as *AdjustSavings) Description() string {
	return fmt.Sprintf("Monthly savings %+.0f%%", as.Percent)
}

func (as *AdjustSavings) Validate(base *domain.Household) error {
	if err := requireBase(as.Name(), base); err != nil {
		return err
	}
	return validatePercent(as.Name(), as.Percent)
}

func (as *AdjustSavings) Apply(base *domain.Household) (*domain.Household, error) {
	modified := base.DeepCopy()
	modified.Profile.MonthlySavings = scale(modified.Profile.MonthlySavings, as.Percent)
	return modified, nil
}

// SetMonthlySavings overrides the monthly savings contribution
type SetMonthlySavings struct {
	Amount float64
}

func (ss *SetMonthlySavings) Name() string {
	return "set_savings"
}

func (ss *SetMonthlySavings) Description() string {
	return fmt.Sprintf("Save %.0f per month", ss.Amount)
}

func (ss *SetMonthlySavings) Validate(base *domain.Household) error {
	if err := requireBase(ss.Name(), base); err != nil {
		return err
	}
	if ss.Amount <= 0 {
		return NewTransformError(ss.Name(), "validate", fmt.Sprintf("amount must be positive, got %.2f", ss.Amount), nil)
	}
	return nil
}

func (ss *SetMonthlySavings) Apply(base *domain.Household) (*domain.Household, error) {
	modified := base.DeepCopy()
	modified.Profile.MonthlySavings = ss.Amount
	return modified, nil
}

// AdjustExpenses changes monthly expenses by a percentage. With RedirectToSavings
// any reduction is added to monthly savings.
type AdjustExpenses struct {
	Percent           float64
	RedirectToSavings bool
}

func (ae *AdjustExpenses) Name() string {
	return "adjust_expenses"
}

func (ae *AdjustExpenses) Description() string {
	if ae.RedirectToSavings && ae.Percent < 0 {
		return fmt.Sprintf("Monthly expenses %+.0f%%, difference saved", ae.Percent)
	}
	return fmt.Sprintf("Monthly expenses %+.0f%%", ae.Percent)
}

func (ae *AdjustExpenses) Validate(base *domain.Household) error {
	if err := requireBase(ae.Name(), base); err != nil {
		return err
	}
	return validatePercent(ae.Name(), ae.Percent)
}

func (ae *AdjustExpenses) Apply(base *domain.Household) (*domain.Household, error) {
	modified := base.DeepCopy()
	before := modified.Profile.MonthlyExpenses
	modified.Profile.MonthlyExpenses = scale(before, ae.Percent)
	if freed := before - modified.Profile.MonthlyExpenses; ae.RedirectToSavings && freed > 0 {
		modified.Profile.MonthlySavings += freed
	}
	return modified, nil
}

// AdjustIncome changes the profile's monthly income by a percentage
type AdjustIncome struct {
	Percent float64
}

func (ai *AdjustIncome) Name() string {
	return "adjust_income"
}

func (ai *AdjustIncome) Description() string {
	return fmt.Sprintf("Monthly income %+.0f%%", ai.Percent)
}

func (ai *AdjustIncome) Validate(base *domain.Household) error {
	if err := requireBase(ai.Name(), base); err != nil {
		return err
	}
	return validatePercent(ai.Name(), ai.Percent)
}

func (ai *AdjustIncome) Apply(base *domain.Household) (*domain.Household, error) {
	modified := base.DeepCopy()
	modified.Profile.MonthlyIncome = scale(modified.Profile.MonthlyIncome, ai.Percent)
	return modified, nil
}
