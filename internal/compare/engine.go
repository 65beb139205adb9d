package compare

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/rgehrsitz/finplan/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine       *calculation.CalculationEngine
	TemplateRegistry *transform.TemplateRegistry
}

// NewCompareEngine creates a new comparison engine with the built-in templates
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &CompareEngine{
		CalcEngine:       calcEngine,
		TemplateRegistry: transform.CreateBuiltInTemplates(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	Templates     []string         // template names to apply to the base household
	BaseReturnPct float64          // base pre-retirement return; 0 uses the household assumption
	Now           func() time.Time // clock for goal horizons; nil uses the engine clock
	Timing        domain.Timing    // SIP timing; empty uses the engine timing
	HouseholdPath string           // recorded on the result for display
}

// Scenario is an explicitly named list of transforms
type Scenario struct {
	Name        string
	Description string
	Transforms  []transform.HouseholdTransform
}

// Compare evaluates the base household and one alternative per template
func (ce *CompareEngine) Compare(
	ctx context.Context,
	household *domain.Household,
	options CompareOptions,
) (*ComparisonSet, error) {
	scenarios := make([]Scenario, 0, len(options.Templates))
	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}
		scenarios = append(scenarios, Scenario{
			Name:        template.Name,
			Description: template.Description,
			Transforms:  template.Transforms,
		})
	}
	return ce.CompareScenarios(ctx, household, scenarios, options)
}

// CompareScenarios evaluates the base household and each explicit scenario
func (ce *CompareEngine) CompareScenarios(
	ctx context.Context,
	household *domain.Household,
	scenarios []Scenario,
	options CompareOptions,
) (*ComparisonSet, error) {
	if household == nil {
		return nil, fmt.Errorf("household cannot be nil")
	}

	base := household.DeepCopy()
	base.Assumptions = base.Assumptions.WithDefaults()
	baseReturn := options.BaseReturnPct
	if baseReturn == 0 {
		baseReturn = base.Assumptions.WithDefaults().PreRetirementReturn
	}
	base.Assumptions.PreRetirementReturn = baseReturn

	metrics := NewMetricsCalculator(ce.timing(options), ce.currentYear(options))
	baseResult := metrics.CalculateMetrics("base", base)
	ce.logger().Debugf("compare base: corpus=%s goals=%d%%", baseResult.RetirementCorpus.StringFixed(0), baseResult.GoalSuccessRate)

	alternatives := []ScenarioResult{}
	for _, sc := range scenarios {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		modified, err := transform.ApplyTransforms(base, sc.Transforms)
		if err != nil {
			return nil, fmt.Errorf("failed to apply scenario %s: %w", sc.Name, err)
		}

		altResult := metrics.CalculateMetrics(sc.Name, modified)
		altResult.Description = sc.Description
		altResult = metrics.CalculateComparison(altResult, baseResult)
		ce.logger().Debugf("compare %s: corpus=%s diff=%s", sc.Name,
			altResult.RetirementCorpus.StringFixed(0), altResult.CorpusDiffFromBase.StringFixed(0))

		alternatives = append(alternatives, altResult)
	}

	if len(metrics.nonFinite) > 0 {
		return nil, fmt.Errorf("retirement corpus is not finite for %s", strings.Join(metrics.nonFinite, ", "))
	}

	compSet := &ComparisonSet{
		ID:                 uuid.NewString(),
		HouseholdName:      household.Name,
		HouseholdPath:      options.HouseholdPath,
		GeneratedAt:        ce.now(options),
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	ce.logger().Infof("compared %d scenarios for %q", len(alternatives), household.Name)
	return compSet, nil
}

// logger falls back to a no-op logger for engines built without one
func (ce *CompareEngine) logger() calculation.Logger {
	if ce.CalcEngine == nil || ce.CalcEngine.Logger == nil {
		return calculation.NopLogger{}
	}
	return ce.CalcEngine.Logger
}

func (ce *CompareEngine) timing(options CompareOptions) domain.Timing {
	if options.Timing != "" {
		return options.Timing
	}
	if ce.CalcEngine == nil {
		return domain.DefaultTiming
	}
	return ce.CalcEngine.Timing
}

func (ce *CompareEngine) now(options CompareOptions) time.Time {
	if options.Now != nil {
		return options.Now()
	}
	if ce.CalcEngine != nil && ce.CalcEngine.Now != nil {
		return ce.CalcEngine.Now()
	}
	return time.Now()
}

func (ce *CompareEngine) currentYear(options CompareOptions) int {
	return ce.now(options).Year()
}
