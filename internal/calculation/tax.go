package calculation

import (
	"fmt"
	"math"
	"strings"

	"github.com/rgehrsitz/finplan/internal/domain"
)

// TAX ASSUMPTIONS:
//
// Old-regime income tax slabs with a flat standard deduction of ₹50,000.
// Slabs and deduction are not indexed for future years. Health and education
// cess of 4% applies to the computed tax. Surcharge and rebates are ignored.

const (
	StandardDeduction = 50000
	CessRate          = 0.04
)

// TaxSlab taxes income above Min at Rate. Max of 0 means unbounded.
type TaxSlab struct {
	Min  float64
	Max  float64
	Rate float64
}

// OldRegimeSlabs are the individual income tax slabs applied after the standard deduction
var OldRegimeSlabs = []TaxSlab{
	{Min: 0, Max: 250000, Rate: 0},
	{Min: 250000, Max: 500000, Rate: 0.05},
	{Min: 500000, Max: 1000000, Rate: 0.20},
	{Min: 1000000, Max: 0, Rate: 0.30},
}

// FilingMode selects whether earners are assessed separately or on combined income
type FilingMode string

const (
	FilingIndividual FilingMode = "individual"
	FilingJoint      FilingMode = "joint"
)

// ParseFilingMode accepts individual or joint, case-insensitively
func ParseFilingMode(s string) (FilingMode, error) {
	switch m := FilingMode(strings.ToLower(strings.TrimSpace(s))); m {
	case FilingIndividual, FilingJoint:
		return m, nil
	case "":
		return FilingIndividual, nil
	default:
		return "", fmt.Errorf("unknown filing mode %q (want individual or joint)", s)
	}
}

// IncomeTax returns the tax including cess on an annual gross income
func IncomeTax(annualIncome float64) float64 {
	taxable := math.Max(0, annualIncome-StandardDeduction)

	tax := 0.0
	for _, slab := range OldRegimeSlabs {
		if taxable <= slab.Min {
			break
		}
		upper := taxable
		if slab.Max > 0 {
			upper = math.Min(taxable, slab.Max)
		}
		tax += (upper - slab.Min) * slab.Rate
	}
	return tax * (1 + CessRate)
}

// EarnerTax is one earner's separately assessed tax
type EarnerTax struct {
	Name         string  `json:"name"`
	AnnualIncome float64 `json:"annualIncome"`
	Tax          float64 `json:"tax"`
}

// JointTax is the tax on the earners' combined income
type JointTax struct {
	CombinedIncome float64 `json:"combinedIncome"`
	Tax            float64 `json:"tax"`
}

// TaxComparison compares per-earner assessment with a joint assessment
type TaxComparison struct {
	Mode               FilingMode  `json:"mode"`
	Individual         []EarnerTax `json:"individual"`
	TotalIndividualTax float64     `json:"totalIndividualTax"`
	Joint              *JointTax   `json:"joint,omitempty"`
	Savings            float64     `json:"savings"` // individual total minus joint tax; negative when joint costs more
}

// CompareTaxes assesses every earner in members. Joint figures are produced only in
// joint mode with at least two earners.
func CompareTaxes(members []domain.FamilyMember, mode FilingMode) (TaxComparison, error) {
	res := TaxComparison{Mode: mode}
	combined := 0.0
	for _, m := range members {
		if !m.IsEarner {
			continue
		}
		annual := m.MonthlyIncome * 12
		tax := IncomeTax(annual)
		res.Individual = append(res.Individual, EarnerTax{Name: m.Name, AnnualIncome: annual, Tax: tax})
		res.TotalIndividualTax += tax
		combined += annual
	}
	if len(res.Individual) == 0 {
		return res, fmt.Errorf("household has no earning family members")
	}

	if mode == FilingJoint && len(res.Individual) >= 2 {
		res.Joint = &JointTax{CombinedIncome: combined, Tax: IncomeTax(combined)}
		res.Savings = res.TotalIndividualTax - res.Joint.Tax
	}
	return res, nil
}
