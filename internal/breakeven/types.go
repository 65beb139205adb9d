package breakeven

// SolverOptions configures the Newton-Raphson search. Rates are annual percentages.
type SolverOptions struct {
	InitialGuess  float64 // starting rate
	Tolerance     float64 // stop when |corpus - target| falls below this amount
	Delta         float64 // step for the numerical derivative
	MinRate       float64
	MaxRate       float64
	MaxIterations int
}

// DefaultSolverOptions returns the standard search configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		InitialGuess:  12,
		Tolerance:     0.001,
		Delta:         0.01,
		MinRate:       0,
		MaxRate:       50,
		MaxIterations: 100,
	}
}

// withDefaults fills zero-valued fields from DefaultSolverOptions.
// MinRate is left as given since zero is a meaningful lower bound.
func (o SolverOptions) withDefaults() SolverOptions {
	d := DefaultSolverOptions()
	if o.InitialGuess == 0 {
		o.InitialGuess = d.InitialGuess
	}
	if o.Tolerance <= 0 {
		o.Tolerance = d.Tolerance
	}
	if o.Delta <= 0 {
		o.Delta = d.Delta
	}
	if o.MaxRate <= o.MinRate {
		o.MaxRate = d.MaxRate
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = d.MaxIterations
	}
	return o
}

// Result is the outcome of a required-return search
type Result struct {
	Rate            float64 `json:"rate"`
	Iterations      int     `json:"iterations"`
	Converged       bool    `json:"converged"`
	Residual        float64 `json:"residual"`
	ConvergenceInfo string  `json:"convergenceInfo"`
}

// Feasibility grades how realistic a required return is
type Feasibility string

const (
	FeasibilityAchievable  Feasibility = "achievable"
	FeasibilityChallenging Feasibility = "challenging"
	FeasibilityDifficult   Feasibility = "difficult"
)

// Assessment pairs a feasibility grade with actionable advice
type Assessment struct {
	Feasibility     Feasibility `json:"feasibility"`
	Summary         string      `json:"summary"`
	Recommendations []string    `json:"recommendations"`
}

// GoalsPlan is the aggregate required-return analysis across a household's future goals
type GoalsPlan struct {
	TotalNeeded     float64    `json:"totalNeeded"`
	HorizonYears    int        `json:"horizonYears"`
	ProjectedCorpus float64    `json:"projectedCorpus"`
	ExpectedReturn  float64    `json:"expectedReturn"`
	Required        Result     `json:"required"`
	Gap             float64    `json:"gap"` // required minus expected, percentage points
	Assessment      Assessment `json:"assessment"`
}

// SolverError represents errors from the required-return solver
type SolverError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *SolverError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *SolverError) Unwrap() error {
	return e.Cause
}
