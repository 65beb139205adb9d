package calculation

import (
	"math"

	"github.com/rgehrsitz/finplan/internal/domain"
)

// maxDepletionYears caps the drawdown loop when the corpus outgrows withdrawals
const maxDepletionYears = 100

// RetirementParams describes a single-household retirement plan
type RetirementParams struct {
	CurrentAge            int           `json:"currentAge"`
	RetirementAge         int           `json:"retirementAge"`
	LifeExpectancy        int           `json:"lifeExpectancy"`
	MonthlyExpenses       float64       `json:"monthlyExpenses"`
	ExpenseReplacementPct float64       `json:"expenseReplacementPct"`
	InflationPct          float64       `json:"inflationPct"`
	PreRetirementPct      float64       `json:"preRetirementPct"`
	PostRetirementPct     float64       `json:"postRetirementPct"`
	CurrentCorpus         float64       `json:"currentCorpus"`
	MonthlyContribution   float64       `json:"monthlyContribution"`
	Timing                domain.Timing `json:"timing"`
}

// DrawdownYear is one year of the retirement withdrawal schedule
type DrawdownYear struct {
	Year           int     `json:"year"`
	Age            int     `json:"age"`
	OpeningBalance float64 `json:"openingBalance"`
	Withdrawal     float64 `json:"withdrawal"`
	ClosingBalance float64 `json:"closingBalance"`
}

// RetirementResult summarizes corpus sizing and the depletion horizon
type RetirementResult struct {
	YearsToRetirement          int            `json:"yearsToRetirement"`
	YearsInRetirement          int            `json:"yearsInRetirement"`
	AnnualExpensesAtRetirement float64        `json:"annualExpensesAtRetirement"`
	RequiredCorpus             float64        `json:"requiredCorpus"`
	ProjectedCorpus            float64        `json:"projectedCorpus"`
	Surplus                    float64        `json:"surplus"`
	CorpusLastsYears           int            `json:"corpusLastsYears"`
	Drawdown                   []DrawdownYear `json:"drawdown"`
}

// GrowingAnnuityPV is the present value at the start of year one of n annual withdrawals
// beginning at payment and growing at g, discounted at r (both decimal rates).
func GrowingAnnuityPV(payment, r, g float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	if math.Abs(r-g) < 1e-9 {
		return payment * float64(n) / (1 + r)
	}
	return payment * (1 - math.Pow((1+g)/(1+r), float64(n))) / (r - g)
}

// CorpusLastsYears simulates withdrawals growing with inflation against a corpus earning
// postPct, returning the number of years until it is exhausted (capped at 100).
func CorpusLastsYears(corpus, annualExpenses, postPct, inflationPct float64) int {
	years := 0
	remaining := corpus
	for remaining > 0 && years < maxDepletionYears {
		remaining = remaining*(1+postPct/100) - annualExpenses*math.Pow(1+inflationPct/100, float64(years))
		years++
	}
	return years
}

// ProjectRetirement sizes the corpus needed at retirement, projects what current savings
// will grow to, and estimates how long the projected corpus lasts.
func ProjectRetirement(p RetirementParams) RetirementResult {
	yearsTo := p.RetirementAge - p.CurrentAge
	if yearsTo < 0 {
		yearsTo = 0
	}
	yearsIn := p.LifeExpectancy - p.RetirementAge
	if yearsIn < 0 {
		yearsIn = 0
	}
	monthlyAtRetirement := p.MonthlyExpenses * (p.ExpenseReplacementPct / 100) * math.Pow(1+p.InflationPct/100, float64(yearsTo))
	annualExpenses := monthlyAtRetirement * 12

	required := GrowingAnnuityPV(annualExpenses, p.PostRetirementPct/100, p.InflationPct/100, yearsIn)
	projected := SIP(p.MonthlyContribution, p.PreRetirementPct, float64(yearsTo), p.Timing) +
		FutureValue(p.CurrentCorpus, p.PreRetirementPct, float64(yearsTo))

	return RetirementResult{
		YearsToRetirement:          yearsTo,
		YearsInRetirement:          yearsIn,
		AnnualExpensesAtRetirement: annualExpenses,
		RequiredCorpus:             required,
		ProjectedCorpus:            projected,
		Surplus:                    projected - required,
		CorpusLastsYears:           CorpusLastsYears(projected, annualExpenses, p.PostRetirementPct, p.InflationPct),
		Drawdown:                   drawdownSchedule(projected, annualExpenses, p, yearsIn),
	}
}

// drawdownSchedule lays out the yearly balances over the planned retirement horizon.
// Balances are floored at zero once the corpus runs out.
func drawdownSchedule(corpus, annualExpenses float64, p RetirementParams, yearsIn int) []DrawdownYear {
	if yearsIn <= 0 {
		return nil
	}
	if yearsIn > maxDepletionYears {
		yearsIn = maxDepletionYears
	}
	out := make([]DrawdownYear, 0, yearsIn)
	balance := corpus
	withdrawal := annualExpenses
	for i := 0; i < yearsIn; i++ {
		opening := math.Max(0, balance)
		closing := opening*(1+p.PostRetirementPct/100) - withdrawal
		out = append(out, DrawdownYear{
			Year:           i + 1,
			Age:            p.RetirementAge + i,
			OpeningBalance: opening,
			Withdrawal:     withdrawal,
			ClosingBalance: math.Max(0, closing),
		})
		balance = closing
		withdrawal *= 1 + p.InflationPct/100
	}
	return out
}
