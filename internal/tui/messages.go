package tui

import (
	"github.com/rgehrsitz/finplan/internal/calculation"
)

// Message types for the Bubble Tea update cycle

// ProgressMsg reports trials completed so far
type ProgressMsg struct {
	Done  int
	Total int
}

// ResultMsg signals the simulation has finished
type ResultMsg struct {
	Result *calculation.MonteCarloResult
	Err    error
}

// eventsClosedMsg is delivered once the run has stopped publishing progress
type eventsClosedMsg struct{}
