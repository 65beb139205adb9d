package breakeven

import (
	"fmt"
	"math"

	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/domain"
)

// Solver finds the annual return at which a lump sum plus a monthly SIP reaches a target
type Solver struct {
	Options SolverOptions
	Logger  calculation.Logger
}

// NewSolver creates a solver; zero-valued options fall back to the defaults
func NewSolver(options SolverOptions) *Solver {
	return &Solver{Options: options.withDefaults(), Logger: calculation.NopLogger{}}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultSolverOptions())
}

// FindRequiredReturn returns the best-effort required annual return (percent) using
// the default options
func FindRequiredReturn(pv, monthlyPayment, targetFV, years float64, timing domain.Timing) float64 {
	return NewDefaultSolver().Solve(pv, monthlyPayment, targetFV, years, timing).Rate
}

// corpusAt is the combined SIP and lump-sum value at rate
func corpusAt(pv, pmt, years, rate float64, timing domain.Timing) float64 {
	return calculation.SIP(pmt, rate, years, timing) + calculation.FutureValue(pv, rate, years)
}

// Solve runs Newton-Raphson on f(rate) = corpus(rate) - target with a central-difference
// derivative. The rate is clamped to [MinRate, MaxRate] after every step; when the
// iteration budget runs out the last rate is returned with Converged=false.
func (s *Solver) Solve(pv, pmt, targetFV, years float64, timing domain.Timing) Result {
	opts := s.Options.withDefaults()
	logger := s.Logger
	if logger == nil {
		logger = calculation.NopLogger{}
	}

	clamp := func(r float64) float64 {
		return math.Max(opts.MinRate, math.Min(opts.MaxRate, r))
	}

	rate := opts.InitialGuess
	var residual float64
	for i := 0; i < opts.MaxIterations; i++ {
		residual = corpusAt(pv, pmt, years, rate, timing) - targetFV
		if math.Abs(residual) < opts.Tolerance {
			logger.Debugf("required return converged at %.4f%% after %d iterations", rate, i)
			return Result{
				Rate:            rate,
				Iterations:      i,
				Converged:       true,
				Residual:        residual,
				ConvergenceInfo: fmt.Sprintf("converged within %.4g after %d iterations", opts.Tolerance, i),
			}
		}

		up := corpusAt(pv, pmt, years, rate+opts.Delta, timing)
		down := corpusAt(pv, pmt, years, rate-opts.Delta, timing)
		derivative := (up - down) / (2 * opts.Delta)
		if math.Abs(derivative) < 1e-9 {
			rate = clamp(rate + opts.Delta)
			continue
		}
		rate = clamp(rate - residual/derivative)
	}

	residual = corpusAt(pv, pmt, years, rate, timing) - targetFV
	logger.Warnf("required return did not converge after %d iterations (rate %.4f%%, residual %.2f)",
		opts.MaxIterations, rate, residual)
	return Result{
		Rate:            rate,
		Iterations:      opts.MaxIterations,
		Converged:       false,
		Residual:        residual,
		ConvergenceInfo: fmt.Sprintf("max iterations (%d) reached", opts.MaxIterations),
	}
}

// ClassifyFeasibility grades a required return: under 12% is achievable, under 18%
// challenging, anything higher difficult.
func ClassifyFeasibility(rate float64) Assessment {
	switch {
	case rate < 12:
		return Assessment{
			Feasibility: FeasibilityAchievable,
			Summary:     "Achievable - your goals are realistic",
			Recommendations: []string{
				"Your goals are on track with a reasonable return expectation",
				"Consider diversifying across equity mutual funds and index funds",
				"Maintain discipline in your monthly investments",
			},
		}
	case rate < 18:
		return Assessment{
			Feasibility: FeasibilityChallenging,
			Summary:     "Challenging - requires an aggressive strategy",
			Recommendations: []string{
				"Your goals require an aggressive investment approach",
				"Consider increasing your monthly contributions",
				"Focus on high-growth equity investments",
				"Review and prioritize your goals",
			},
		}
	default:
		return Assessment{
			Feasibility: FeasibilityDifficult,
			Summary:     "Very difficult - goals need adjustment",
			Recommendations: []string{
				"Required return is very high and risky to achieve",
				"Consider extending goal timelines",
				"Significantly increase monthly contributions",
				"Re-evaluate goal priorities and costs",
				"Consider partial funding of lower priority goals",
			},
		}
	}
}
