package calculation

import (
	"math"

	"github.com/rgehrsitz/finplan/internal/domain"
)

// MonthlyRate converts an annual percentage into a decimal monthly rate
func MonthlyRate(annualRatePct float64) float64 {
	return annualRatePct / 12 / 100
}

// MonthsIn returns floor(years*12), clamped at zero
func MonthsIn(years float64) int {
	months := int(math.Floor(years * 12))
	if months < 0 {
		return 0
	}
	return months
}

// FutureValue compounds a lump sum annually: pv × (1 + rate/100)^years
func FutureValue(pv, annualRatePct, years float64) float64 {
	return pv * math.Pow(1+annualRatePct/100, years)
}

// SIPFactor returns the future value of one unit contributed every period.
// Ordinary timing gives ((1+r)^n - 1)/r; due timing multiplies by (1+r).
func SIPFactor(monthlyRate float64, months int, timing domain.Timing) float64 {
	if months <= 0 {
		return 0
	}
	if monthlyRate == 0 {
		return float64(months)
	}
	factor := (math.Pow(1+monthlyRate, float64(months)) - 1) / monthlyRate
	if timing.IsDue() {
		factor *= 1 + monthlyRate
	}
	return factor
}

// SIP is the maturity value of a fixed monthly contribution
func SIP(monthly, annualRatePct, years float64, timing domain.Timing) float64 {
	return monthly * SIPFactor(MonthlyRate(annualRatePct), MonthsIn(years), timing)
}

// EMI is the level monthly installment that amortizes principal over the term.
// A zero rate spreads principal evenly; a zero-length term returns 0.
func EMI(principal, annualRatePct, years float64) float64 {
	months := MonthsIn(years)
	if months == 0 {
		return 0
	}
	r := MonthlyRate(annualRatePct)
	if r == 0 {
		return principal / float64(months)
	}
	growth := math.Pow(1+r, float64(months))
	return principal * r * growth / (growth - 1)
}

// RequiredSIP inverts SIP: the monthly contribution that reaches targetFV.
// Returns 0 when the horizon has no contribution periods.
func RequiredSIP(targetFV, annualRatePct, years float64, timing domain.Timing) float64 {
	factor := SIPFactor(MonthlyRate(annualRatePct), MonthsIn(years), timing)
	if factor == 0 {
		return 0
	}
	return targetFV / factor
}
