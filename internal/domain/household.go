package domain

import "gopkg.in/yaml.v3"

// Asset categories treated as liquid when sizing emergency-fund coverage
const (
	CategoryCash          = "Cash"
	CategoryFixedDeposits = "Fixed Deposits"
)

// DefaultGoalInflation is applied to goals that were saved without an inflation rate
const DefaultGoalInflation = 7.0

// Household holds every financial fact the engine reads. It is supplied by the caller
// and never mutated by calculations.
type Household struct {
	Name          string         `yaml:"name" json:"name"`
	Profile       Profile        `yaml:"profile" json:"profile"`
	Assets        []Asset        `yaml:"assets" json:"assets"`
	Liabilities   []Liability    `yaml:"liabilities" json:"liabilities"`
	Goals         []Goal         `yaml:"goals" json:"goals"`
	FamilyMembers []FamilyMember `yaml:"family_members" json:"familyMembers"`
	Assumptions   Assumptions    `yaml:"assumptions" json:"assumptions"`
}

// Assumptions are the market and planning rates applied to a household (annual %)
type Assumptions struct {
	InflationRate         float64 `yaml:"inflation_rate" json:"inflationRate"`
	PreRetirementReturn   float64 `yaml:"pre_retirement_return" json:"preRetirementReturn"`
	PostRetirementReturn  float64 `yaml:"post_retirement_return" json:"postRetirementReturn"`
	ExpenseReplacementPct float64 `yaml:"expense_replacement_pct" json:"expenseReplacementPct"`
	Volatility            float64 `yaml:"volatility" json:"volatility"`
	AssetGrowthRate       float64 `yaml:"asset_growth_rate" json:"assetGrowthRate"` // growth of existing assets in scenario projections

	// explicit marks assumptions read from a household file, whose zero rates are real values
	explicit bool
}

// DefaultAssumptions returns the planning rates used when a household file omits them
func DefaultAssumptions() Assumptions {
	return Assumptions{
		InflationRate:         6,
		PreRetirementReturn:   12,
		PostRetirementReturn:  8,
		ExpenseReplacementPct: 100,
		Volatility:            15,
		AssetGrowthRate:       6,
	}
}

// WithDefaults returns DefaultAssumptions when the block was never set. Rates that were
// set, zero included, are kept as given.
func (a Assumptions) WithDefaults() Assumptions {
	if a == (Assumptions{}) {
		return DefaultAssumptions()
	}
	return a
}

// UnmarshalYAML starts from DefaultAssumptions so that only keys present in the file
// override them. An explicit 0 stays 0.
func (a *Assumptions) UnmarshalYAML(node *yaml.Node) error {
	type plain Assumptions
	p := plain(DefaultAssumptions())
	if err := node.Decode(&p); err != nil {
		return err
	}
	*a = Assumptions(p)
	a.explicit = true
	return nil
}

// Profile captures the primary planner's ages and monthly cash flow
type Profile struct {
	CurrentAge      int     `yaml:"current_age" json:"currentAge"`
	RetirementAge   int     `yaml:"retirement_age" json:"retirementAge"`
	LifeExpectancy  int     `yaml:"life_expectancy" json:"lifeExpectancy"`
	MonthlyIncome   float64 `yaml:"monthly_income" json:"monthlyIncome"`
	MonthlyExpenses float64 `yaml:"monthly_expenses" json:"monthlyExpenses"`
	MonthlySavings  float64 `yaml:"monthly_savings" json:"monthlySavings"`
}

// Asset is a holding with a current market value
type Asset struct {
	Name           string  `yaml:"name" json:"name"`
	Category       string  `yaml:"category" json:"category"`
	Value          float64 `yaml:"value" json:"value"`
	ExpectedReturn float64 `yaml:"expected_return" json:"expectedReturn"` // annual %
}

// IsLiquid reports whether the asset counts toward emergency-fund coverage
func (a Asset) IsLiquid() bool {
	return a.Category == CategoryCash || a.Category == CategoryFixedDeposits
}

// Liability is an outstanding loan
type Liability struct {
	Name         string  `yaml:"name" json:"name"`
	Type         string  `yaml:"type" json:"type"`
	Amount       float64 `yaml:"amount" json:"amount"`              // outstanding principal
	InterestRate float64 `yaml:"interest_rate" json:"interestRate"` // annual %
	EMI          float64 `yaml:"emi" json:"emi"`                    // monthly installment
	TenureYears  float64 `yaml:"tenure_years,omitempty" json:"tenureYears,omitempty"`
}

// Goal is a future expense priced in today's money
type Goal struct {
	Name           string  `yaml:"name" json:"name"`
	Category       string  `yaml:"category" json:"category"`
	CurrentCost    float64 `yaml:"current_cost" json:"currentCost"`
	TargetYear     int     `yaml:"target_year" json:"targetYear"`
	InflationRate  float64 `yaml:"inflation_rate" json:"inflationRate"` // annual %
	SavedAmount    float64 `yaml:"saved_amount" json:"savedAmount"`
	ExpectedReturn float64 `yaml:"expected_return" json:"expectedReturn"` // annual %
	Priority       string  `yaml:"priority" json:"priority"`
}

// EffectiveInflation returns the goal inflation rate, falling back to DefaultGoalInflation
func (g Goal) EffectiveInflation() float64 {
	if g.InflationRate == 0 {
		return DefaultGoalInflation
	}
	return g.InflationRate
}

// YearsRemaining is the horizon from currentYear to the goal's target year (may be negative)
func (g Goal) YearsRemaining(currentYear int) int {
	return g.TargetYear - currentYear
}

// FamilyMember is a household member; earners contribute income, dependents add cost
type FamilyMember struct {
	Name           string  `yaml:"name" json:"name"`
	Relationship   string  `yaml:"relationship" json:"relationship"`
	Age            int     `yaml:"age" json:"age"`
	MonthlyIncome  float64 `yaml:"monthly_income" json:"monthlyIncome"`
	IsEarner       bool    `yaml:"is_earner" json:"isEarner"`
	IsDependent    bool    `yaml:"is_dependent" json:"isDependent"`
	RetirementAge  int     `yaml:"retirement_age,omitempty" json:"retirementAge,omitempty"`
	LifeExpectancy int     `yaml:"life_expectancy,omitempty" json:"lifeExpectancy,omitempty"`
}

// TotalAssets sums the value of every asset
func (h *Household) TotalAssets() float64 {
	total := 0.0
	for _, a := range h.Assets {
		total += a.Value
	}
	return total
}

// TotalLiabilities sums outstanding principal across liabilities
func (h *Household) TotalLiabilities() float64 {
	total := 0.0
	for _, l := range h.Liabilities {
		total += l.Amount
	}
	return total
}

// NetWorth is assets minus liabilities
func (h *Household) NetWorth() float64 {
	return h.TotalAssets() - h.TotalLiabilities()
}

// TotalEMI sums monthly installments across liabilities
func (h *Household) TotalEMI() float64 {
	total := 0.0
	for _, l := range h.Liabilities {
		total += l.EMI
	}
	return total
}

// LiquidAssets sums assets in the cash-like categories
func (h *Household) LiquidAssets() float64 {
	total := 0.0
	for _, a := range h.Assets {
		if a.IsLiquid() {
			total += a.Value
		}
	}
	return total
}

// Earners counts members flagged as earning income
func (h *Household) Earners() int {
	n := 0
	for _, m := range h.FamilyMembers {
		if m.IsEarner {
			n++
		}
	}
	return n
}

// Dependents counts members flagged as dependents
func (h *Household) Dependents() int {
	n := 0
	for _, m := range h.FamilyMembers {
		if m.IsDependent {
			n++
		}
	}
	return n
}

// HouseholdMonthlyIncome sums earner incomes; falls back to the profile income
// when no member is flagged as an earner
func (h *Household) HouseholdMonthlyIncome() float64 {
	total := 0.0
	for _, m := range h.FamilyMembers {
		if m.IsEarner {
			total += m.MonthlyIncome
		}
	}
	if total == 0 {
		return h.Profile.MonthlyIncome
	}
	return total
}

// DeepCopy returns an independent copy suitable for what-if snapshots
func (h *Household) DeepCopy() *Household {
	if h == nil {
		return nil
	}
	cp := *h
	cp.Assets = append([]Asset(nil), h.Assets...)
	cp.Liabilities = append([]Liability(nil), h.Liabilities...)
	cp.Goals = append([]Goal(nil), h.Goals...)
	cp.FamilyMembers = append([]FamilyMember(nil), h.FamilyMembers...)
	return &cp
}
