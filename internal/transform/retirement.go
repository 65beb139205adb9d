package transform

import (
	"fmt"

	"github.com/rgehrsitz/finplan/internal/domain"
)

// PostponeRetirement shifts the planned retirement age by a number of years.
// Negative values model retiring early.
type PostponeRetirement struct {
	Years int
}

func (pr *PostponeRetirement) Name() string {
	return "postpone_retirement"
}

func (pr *PostponeRetirement) Description() string {
	if pr.Years < 0 {
		return fmt.Sprintf("Retire %d years earlier", -pr.Years)
	}
	return fmt.Sprintf("Postpone retirement by %d years", pr.Years)
}

func (pr *PostponeRetirement) Validate(base *domain.Household) error {
	if err := requireBase(pr.Name(), base); err != nil {
		return err
	}
	return validateRetirementAge(pr.Name(), base.Profile, base.Profile.RetirementAge+pr.Years)
}

func (pr *PostponeRetirement) Apply(base *domain.Household) (*domain.Household, error) {
	modified := base.DeepCopy()
	modified.Profile.RetirementAge += pr.Years
	return modified, nil
}

// SetRetirementAge sets an absolute retirement age. Unlike PostponeRetirement which is
// relative, this overrides whatever the household file says.
type SetRetirementAge struct {
	Age int
}

func (sr *SetRetirementAge) Name() string {
	return "set_retirement_age"
}

func (sr *SetRetirementAge) Description() string {
	return fmt.Sprintf("Retire at age %d", sr.Age)
}

func (sr *SetRetirementAge) Validate(base *domain.Household) error {
	if err := requireBase(sr.Name(), base); err != nil {
		return err
	}
	return validateRetirementAge(sr.Name(), base.Profile, sr.Age)
}

func (sr *SetRetirementAge) Apply(base *domain.Household) (*domain.Household, error) {
	modified := base.DeepCopy()
	modified.Profile.RetirementAge = sr.Age
	return modified, nil
}

func validateRetirementAge(name string, p domain.Profile, age int) error {
	if p.RetirementAge == 0 {
		return NewTransformError(name, "validate", "household has no retirement age", nil)
	}
	if age < p.CurrentAge {
		return NewTransformError(name, "validate", fmt.Sprintf("retirement age %d is before current age %d", age, p.CurrentAge), nil)
	}
	if p.LifeExpectancy > 0 && age > p.LifeExpectancy {
		return NewTransformError(name, "validate", fmt.Sprintf("retirement age %d is beyond life expectancy %d", age, p.LifeExpectancy), nil)
	}
	return nil
}
