package calculation

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rgehrsitz/finplan/internal/domain"
)

// LoanResult is the repayment profile of an amortizing loan
type LoanResult struct {
	EMI           float64 `json:"emi"`
	TotalPayment  float64 `json:"totalPayment"`
	TotalInterest float64 `json:"totalInterest"`
}

// LoanSummary computes the EMI and lifetime cost of a loan
func LoanSummary(principal, annualRatePct, years float64) LoanResult {
	emi := EMI(principal, annualRatePct, years)
	total := emi * float64(MonthsIn(years))
	return LoanResult{EMI: emi, TotalPayment: total, TotalInterest: total - principal}
}

// SIPResult splits a SIP maturity value into contributions and growth
type SIPResult struct {
	Invested float64 `json:"invested"`
	Maturity float64 `json:"maturity"`
	Returns  float64 `json:"returns"`
}

// SIPSummary computes the maturity of a monthly SIP and how much of it is growth
func SIPSummary(monthly, annualRatePct, years float64, timing domain.Timing) SIPResult {
	invested := monthly * float64(MonthsIn(years))
	maturity := SIP(monthly, annualRatePct, years, timing)
	return SIPResult{Invested: invested, Maturity: maturity, Returns: maturity - invested}
}

// InflationResult describes how inflation erodes a sum over time
type InflationResult struct {
	FutureValue         float64 `json:"futureValue"`
	PurchasingPowerLoss float64 `json:"purchasingPowerLoss"`
	RetainedPct         float64 `json:"retainedPct"`
}

// InflationImpact projects the future price of amount and the share of value retained
func InflationImpact(amount, inflationPct, years float64) InflationResult {
	fv := FutureValue(amount, inflationPct, years)
	res := InflationResult{FutureValue: fv, PurchasingPowerLoss: fv - amount}
	if fv != 0 {
		res.RetainedPct = amount / fv * 100
	}
	return res
}

// CategoryAllocation is one asset category's share of the portfolio
type CategoryAllocation struct {
	Category      string  `json:"category"`
	Value         float64 `json:"value"`
	AllocationPct float64 `json:"allocationPct"`
	AverageReturn float64 `json:"averageReturn"`
	Contribution  float64 `json:"contribution"` // allocation-weighted return, in %
}

// PortfolioResult groups assets by category and reports the weighted return
type PortfolioResult struct {
	TotalValue     float64              `json:"totalValue"`
	WeightedReturn float64              `json:"weightedReturn"`
	Categories     []CategoryAllocation `json:"categories"`
}

// PortfolioSummary aggregates assets per category. Categories are returned in name order.
func PortfolioSummary(assets []domain.Asset) PortfolioResult {
	type bucket struct {
		value   float64
		returns []float64
	}
	buckets := map[string]*bucket{}
	total := 0.0
	for _, a := range assets {
		b, ok := buckets[a.Category]
		if !ok {
			b = &bucket{}
			buckets[a.Category] = b
		}
		b.value += a.Value
		b.returns = append(b.returns, a.ExpectedReturn)
		total += a.Value
	}

	res := PortfolioResult{TotalValue: total}
	if len(buckets) == 0 || total == 0 {
		return res
	}

	names := make([]string, 0, len(buckets))
	for name := range buckets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		b := buckets[name]
		sum := 0.0
		for _, r := range b.returns {
			sum += r
		}
		avg := sum / float64(len(b.returns))
		alloc := b.value / total * 100
		contrib := alloc / 100 * avg
		res.WeightedReturn += contrib
		res.Categories = append(res.Categories, CategoryAllocation{
			Category:      name,
			Value:         b.value,
			AllocationPct: alloc,
			AverageReturn: avg,
			Contribution:  contrib,
		})
	}
	return res
}

// RiskTolerance selects the base asset mix
type RiskTolerance string

const (
	RiskConservative RiskTolerance = "Conservative"
	RiskModerate     RiskTolerance = "Moderate"
	RiskAggressive   RiskTolerance = "Aggressive"
)

// ParseRiskTolerance accepts tolerance names case-insensitively
func ParseRiskTolerance(s string) (RiskTolerance, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "conservative":
		return RiskConservative, nil
	case "", "moderate":
		return RiskModerate, nil
	case "aggressive":
		return RiskAggressive, nil
	}
	return "", fmt.Errorf("unknown risk tolerance %q (valid: conservative, moderate, aggressive)", s)
}

// Allocation is a recommended percentage split
type Allocation struct {
	Equity int `json:"equity"`
	Debt   int `json:"debt"`
	Others int `json:"others"`
}

// RecommendAllocation starts from the tolerance's base mix and tilts ten points toward
// equity for horizons over 15 years, or toward debt for horizons under 5.
func RecommendAllocation(horizonYears int, tolerance RiskTolerance) Allocation {
	a := Allocation{Equity: 50, Debt: 40, Others: 10}
	switch tolerance {
	case RiskConservative:
		a = Allocation{Equity: 30, Debt: 60, Others: 10}
	case RiskAggressive:
		a = Allocation{Equity: 70, Debt: 20, Others: 10}
	}

	if horizonYears > 15 {
		a.Equity += 10
		a.Debt -= 10
	} else if horizonYears < 5 {
		a.Equity -= 10
		a.Debt += 10
	}
	a.Equity = clampPct(a.Equity)
	a.Debt = clampPct(a.Debt)
	return a
}

func clampPct(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// EmergencyPlan is the recommended cash buffer for a household
type EmergencyPlan struct {
	RecommendedMonths  int     `json:"recommendedMonths"`
	ConservativeMonths int     `json:"conservativeMonths"`
	RecommendedFund    float64 `json:"recommendedFund"`
	ConservativeFund   float64 `json:"conservativeFund"`
}

// EmergencyFundPlan sizes the buffer at six months, plus one per dependent and three
// more when the household relies on a single earner.
func EmergencyFundPlan(monthlyExpenses float64, earners, dependents int) EmergencyPlan {
	months := 6 + dependents
	if earners == 1 {
		months += 3
	}
	return EmergencyPlan{
		RecommendedMonths:  months,
		ConservativeMonths: months + 3,
		RecommendedFund:    monthlyExpenses * float64(months),
		ConservativeFund:   monthlyExpenses * float64(months+3),
	}
}

// ProtectionStatus grades insurance adequacy
type ProtectionStatus string

const (
	ProtectionCritical      ProtectionStatus = "critical"
	ProtectionModerate      ProtectionStatus = "moderate"
	ProtectionWellProtected ProtectionStatus = "well_protected"
)

// lifeCoverIncomeMultiple is the recommended life cover as a multiple of annual income
const lifeCoverIncomeMultiple = 10

// InsuranceResult reports cover gaps against recommendations
type InsuranceResult struct {
	HealthGap       float64          `json:"healthGap"`
	RecommendedLife float64          `json:"recommendedLife"`
	LifeGap         float64          `json:"lifeGap"`
	Status          ProtectionStatus `json:"status"`
}

// InsuranceGap compares current health and life cover against recommended levels
func InsuranceGap(currentHealth, recommendedHealth, currentLife, annualIncome float64) InsuranceResult {
	healthGap := math.Max(0, recommendedHealth-currentHealth)
	recommendedLife := annualIncome * lifeCoverIncomeMultiple
	lifeGap := math.Max(0, recommendedLife-currentLife)

	status := ProtectionWellProtected
	if healthGap > 0 || lifeGap > annualIncome*5 {
		status = ProtectionCritical
	} else if lifeGap > 0 {
		status = ProtectionModerate
	}
	return InsuranceResult{
		HealthGap:       healthGap,
		RecommendedLife: recommendedLife,
		LifeGap:         lifeGap,
		Status:          status,
	}
}

// Family health cover sizing, per member and per member aged 60+
const (
	healthCoverPerMember = 500000
	healthCoverPerElder  = 1000000
	healthCoverBuffer    = 1.5
	premiumRate          = 0.01
	elderAge             = 60
)

// HealthCoverResult is a family floater recommendation
type HealthCoverResult struct {
	Members             int     `json:"members"`
	Elderly             int     `json:"elderly"`
	MinimumCoverage     float64 `json:"minimumCoverage"`
	RecommendedCoverage float64 `json:"recommendedCoverage"`
	AnnualPremium       float64 `json:"annualPremium"`
}

// FamilyHealthCover sizes a floater policy from household composition
func FamilyHealthCover(members []domain.FamilyMember) HealthCoverResult {
	elderly := 0
	for _, m := range members {
		if m.Age >= elderAge {
			elderly++
		}
	}
	base := float64(len(members))*healthCoverPerMember + float64(elderly)*healthCoverPerElder
	recommended := base * healthCoverBuffer
	return HealthCoverResult{
		Members:             len(members),
		Elderly:             elderly,
		MinimumCoverage:     base,
		RecommendedCoverage: recommended,
		AnnualPremium:       math.Round(recommended * premiumRate),
	}
}
