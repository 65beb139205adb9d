package calculation

import (
	"context"
	"time"

	"github.com/rgehrsitz/finplan/internal/domain"
)

// Logger is the minimal logging surface the engine needs.
// *zap.SugaredLogger satisfies it.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Debugf(string, ...interface{}) {}
func (NopLogger) Infof(string, ...interface{})  {}
func (NopLogger) Warnf(string, ...interface{})  {}
func (NopLogger) Errorf(string, ...interface{}) {}

// CalculationEngine binds the pure projection functions to the caller's settings
// (contribution timing, Monte Carlo worker count, logger, clock).
type CalculationEngine struct {
	Timing  domain.Timing
	Workers int
	Logger  Logger
	Now     func() time.Time
}

// NewCalculationEngine creates an engine with annuity-due timing and a no-op logger
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Timing: domain.DefaultTiming,
		Logger: NopLogger{},
		Now:    time.Now,
	}
}

// SetLogger replaces the engine logger; nil restores the no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// CurrentYear is the calendar year of the engine clock
func (ce *CalculationEngine) CurrentYear() int {
	if ce.Now == nil {
		return time.Now().Year()
	}
	return ce.Now().Year()
}

// RunMonteCarlo runs a simulation, filling timing and worker count from the engine when unset
func (ce *CalculationEngine) RunMonteCarlo(ctx context.Context, p MonteCarloParams) (*MonteCarloResult, error) {
	if p.Timing == "" {
		p.Timing = ce.Timing
	}
	if p.Workers == 0 {
		p.Workers = ce.Workers
	}
	ce.Logger.Debugf("monte carlo: trials=%d years=%.1f mean=%.2f%% vol=%.2f%% monthly=%t lognormal=%t",
		p.Trials, p.Years, p.MeanReturnPct, p.VolatilityPct, p.MonthlySteps, p.Lognormal)

	res, err := RunMonteCarlo(ctx, p)
	if err != nil {
		ce.Logger.Warnf("monte carlo aborted: %v", err)
		return nil, err
	}
	ce.Logger.Infof("monte carlo complete: trials=%d seed=%d probability=%.1f%% median=%.0f",
		res.Trials, res.Seed, res.Probability, res.Median)
	return res, nil
}

// ProjectRetirement projects the retirement plan with the engine's timing when unset
func (ce *CalculationEngine) ProjectRetirement(p RetirementParams) RetirementResult {
	if p.Timing == "" {
		p.Timing = ce.Timing
	}
	res := ProjectRetirement(p)
	if res.Surplus < 0 {
		ce.Logger.Warnf("retirement shortfall of %.0f (required %.0f, projected %.0f)",
			-res.Surplus, res.RequiredCorpus, res.ProjectedCorpus)
	}
	ce.Logger.Debugf("retirement: years_to=%d years_in=%d corpus_lasts=%d",
		res.YearsToRetirement, res.YearsInRetirement, res.CorpusLastsYears)
	return res
}

// ScoreHousehold scores a household as of the engine clock
func (ce *CalculationEngine) ScoreHousehold(h *domain.Household) domain.HealthScore {
	score := ScoreHealth(HealthFactsFromHousehold(h, ce.CurrentYear()))
	ce.Logger.Debugf("health score %d (%s): %+v", score.Total, score.Rating, score.Breakdown)
	return score
}

// ProjectGoals projects every goal on the household with the engine's timing and clock
func (ce *CalculationEngine) ProjectGoals(h *domain.Household) []GoalProjection {
	year := ce.CurrentYear()
	out := make([]GoalProjection, 0, len(h.Goals))
	for _, g := range h.Goals {
		gp := ProjectGoal(g, ce.Timing, year)
		if gp.Status == GoalCritical {
			ce.Logger.Warnf("goal %q is critical: %.1f%% funded", g.Name, gp.ProgressPct)
		}
		out = append(out, gp)
	}
	return out
}

// RetirementParamsFromHousehold derives retirement inputs from the household profile and
// assumptions. Current corpus is total assets; monthly contribution is the profile savings figure.
func RetirementParamsFromHousehold(h *domain.Household) RetirementParams {
	a := h.Assumptions.WithDefaults()
	return RetirementParams{
		CurrentAge:            h.Profile.CurrentAge,
		RetirementAge:         h.Profile.RetirementAge,
		LifeExpectancy:        h.Profile.LifeExpectancy,
		MonthlyExpenses:       h.Profile.MonthlyExpenses,
		ExpenseReplacementPct: a.ExpenseReplacementPct,
		InflationPct:          a.InflationRate,
		PreRetirementPct:      a.PreRetirementReturn,
		PostRetirementPct:     a.PostRetirementReturn,
		CurrentCorpus:         h.TotalAssets(),
		MonthlyContribution:   h.Profile.MonthlySavings,
	}
}
