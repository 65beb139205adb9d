package output

import (
	"time"

	"github.com/rgehrsitz/finplan/internal/breakeven"
	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/domain"
)

// Kind tells formatters how to render a metric value
type Kind string

const (
	KindCurrency Kind = "currency"
	KindPercent  Kind = "percent"
	KindNumber   Kind = "number"
	KindYears    Kind = "years"
	KindText     Kind = "text"
)

// Metric is a single labelled figure
type Metric struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Kind  Kind    `json:"kind"`
	Text  string  `json:"text,omitempty"` // used when Kind is KindText
}

// Table is a small ad-hoc grid (portfolio categories, drawdown years)
type Table struct {
	Title   string     `json:"title"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Report is the envelope every command renders. Only the populated sections are printed.
type Report struct {
	Title       string    `json:"title"`
	Household   string    `json:"household,omitempty"`
	GeneratedAt time.Time `json:"generatedAt"`

	Metrics        []Metric                      `json:"metrics,omitempty"`
	MonteCarlo     *calculation.MonteCarloResult `json:"monteCarlo,omitempty"`
	Histogram      []calculation.HistogramBin    `json:"histogram,omitempty"`
	Retirement     *calculation.RetirementResult `json:"retirement,omitempty"`
	Health         *domain.HealthScore           `json:"health,omitempty"`
	Goals          []calculation.GoalProjection  `json:"goals,omitempty"`
	RequiredReturn *breakeven.Result             `json:"requiredReturn,omitempty"`
	GoalsPlan      *breakeven.GoalsPlan          `json:"goalsPlan,omitempty"`
	Tables         []Table                       `json:"tables,omitempty"`
	Assumptions    []string                      `json:"assumptions,omitempty"`
	Notes          []string                      `json:"notes,omitempty"`
}

// NewReport starts a report stamped with now
func NewReport(title string, now time.Time) *Report {
	return &Report{Title: title, GeneratedAt: now}
}

// Add appends a numeric metric and returns the report for chaining
func (r *Report) Add(label string, value float64, kind Kind) *Report {
	r.Metrics = append(r.Metrics, Metric{Label: label, Value: value, Kind: kind})
	return r
}

// AddText appends a textual metric
func (r *Report) AddText(label, text string) *Report {
	r.Metrics = append(r.Metrics, Metric{Label: label, Kind: KindText, Text: text})
	return r
}
