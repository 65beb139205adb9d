package domain

import (
	"fmt"
	"strings"
)

// Timing selects when a recurring contribution is posted relative to growth for a period.
type Timing string

const (
	// TimingDue posts the contribution at the start of the period, before growth (annuity-due)
	TimingDue Timing = "due"
	// TimingOrdinary grows the balance first and posts the contribution at period end
	TimingOrdinary Timing = "ordinary"
)

// DefaultTiming is used when no timing has been configured
const DefaultTiming = TimingDue

// ParseTiming converts user input into a Timing. Empty input yields DefaultTiming.
func ParseTiming(s string) (Timing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultTiming, nil
	case "due", "start", "annuity_due", "begin":
		return TimingDue, nil
	case "ordinary", "end", "annuity_immediate":
		return TimingOrdinary, nil
	default:
		return "", fmt.Errorf("invalid sip timing %q (valid: due, ordinary)", s)
	}
}

// IsDue reports whether contributions are posted before growth.
// The zero value is treated as DefaultTiming.
func (t Timing) IsDue() bool {
	return t == TimingDue || t == ""
}

func (t Timing) String() string {
	if t == "" {
		return string(DefaultTiming)
	}
	return string(t)
}
