package transform

import (
	"fmt"

	"github.com/rgehrsitz/finplan/internal/domain"
)

// maxReturnDelta bounds return adjustments to something a planner would plausibly test
const maxReturnDelta = 20.0

// AdjustReturn shifts the expected pre-retirement return by Delta percentage points.
// An unset return is resolved to its default before the shift.
type AdjustReturn struct {
	Delta float64
}

func (ar *AdjustReturn) Name() string {
	return "adjust_return"
}

func (ar *AdjustReturn) Description() string {
	return fmt.Sprintf("Expected return %+.1f%%", ar.Delta)
}

func (ar *AdjustReturn) Validate(base *domain.Household) error {
	if err := requireBase(ar.Name(), base); err != nil {
		return err
	}
	if ar.Delta < -maxReturnDelta || ar.Delta > maxReturnDelta {
		return NewTransformError(ar.Name(), "validate", fmt.Sprintf("delta must be between -%.0f and %.0f, got %.2f", maxReturnDelta, maxReturnDelta, ar.Delta), nil)
	}
	return nil
}

func (ar *AdjustReturn) Apply(base *domain.Household) (*domain.Household, error) {
	modified := base.DeepCopy()
	modified.Assumptions = modified.Assumptions.WithDefaults()
	modified.Assumptions.PreRetirementReturn += ar.Delta
	return modified, nil
}
