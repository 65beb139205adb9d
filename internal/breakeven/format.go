package breakeven

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter renders solver results as plain console text
type TableFormatter struct{}

// FormatResult renders a single required-return search
func (tf *TableFormatter) FormatResult(result Result) string {
	var sb strings.Builder

	sb.WriteString("REQUIRED RETURN\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Required Annual Return: %s%%\n", tf.formatRate(result.Rate)))
	sb.WriteString(fmt.Sprintf("Status:                 %s\n", tf.formatStatus(result.Converged)))
	sb.WriteString(fmt.Sprintf("Iterations:             %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:            %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")
	tf.writeAssessment(&sb, ClassifyFeasibility(result.Rate))
	return sb.String()
}

// FormatGoalsPlan renders the aggregate goal funding analysis
func (tf *TableFormatter) FormatGoalsPlan(plan *GoalsPlan) string {
	var sb strings.Builder

	sb.WriteString("GOALS REQUIRED RETURN\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Total Needed:       %s\n", tf.formatCurrency(plan.TotalNeeded)))
	sb.WriteString(fmt.Sprintf("Horizon:            %d years\n", plan.HorizonYears))
	sb.WriteString(fmt.Sprintf("Projected Corpus:   %s (at %s%%)\n",
		tf.formatCurrency(plan.ProjectedCorpus), tf.formatRate(plan.ExpectedReturn)))
	sb.WriteString(fmt.Sprintf("Required Return:    %s%% (%s)\n",
		tf.formatRate(plan.Required.Rate), tf.formatStatus(plan.Required.Converged)))
	sb.WriteString(fmt.Sprintf("Gap:                %s%s pts\n",
		tf.deltaSymbol(plan.Gap), tf.formatRate(plan.Gap)))
	sb.WriteString("\n")
	tf.writeAssessment(&sb, plan.Assessment)
	return sb.String()
}

func (tf *TableFormatter) writeAssessment(sb *strings.Builder, a Assessment) {
	sb.WriteString("FEASIBILITY\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(a.Summary + "\n")
	for _, rec := range a.Recommendations {
		sb.WriteString(fmt.Sprintf("• %s\n", rec))
	}
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format marshals any solver result (Result or *GoalsPlan)
func (jf *JSONFormatter) Format(v interface{}) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) formatStatus(converged bool) string {
	if converged {
		return "✓ Converged"
	}
	return "⚠ Best effort (did not converge)"
}

func (tf *TableFormatter) formatRate(r float64) string {
	return fixed2(r)
}

func (tf *TableFormatter) formatCurrency(v float64) string {
	return fixed2(v)
}

// fixed2 prints v with two decimals; NaN and infinities have no decimal form
func fixed2(v float64) string {
	switch {
	case math.IsNaN(v):
		return "n/a"
	case math.IsInf(v, 0):
		return fmt.Sprintf("%v", v)
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

func (tf *TableFormatter) deltaSymbol(delta float64) string {
	if delta > 0 {
		return "+"
	}
	return ""
}
