package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// JSONFormatter renders a report as JSON
type JSONFormatter struct {
	Pretty bool
}

func (JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if j.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// YAMLFormatter renders a report as YAML using the same field names as the JSON output
type YAMLFormatter struct{}

func (YAMLFormatter) Name() string { return "yaml" }

func (YAMLFormatter) Format(r *Report) ([]byte, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CSVFormatter flattens a report into section,name,field,value rows
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func num(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func (CSVFormatter) Format(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{{"section", "name", "field", "value"}}
	add := func(section, name, field, value string) {
		rows = append(rows, []string{section, name, field, value})
	}

	add("report", r.Title, "household", r.Household)
	for _, m := range r.Metrics {
		value := num(m.Value)
		if m.Kind == KindText {
			value = m.Text
		}
		add("metric", m.Label, string(m.Kind), value)
	}

	if mc := r.MonteCarlo; mc != nil {
		add("monte_carlo", "result", "trials", strconv.Itoa(mc.Trials))
		add("monte_carlo", "result", "seed", strconv.FormatInt(mc.Seed, 10))
		add("monte_carlo", "result", "p10", num(mc.P10))
		add("monte_carlo", "result", "median", num(mc.Median))
		add("monte_carlo", "result", "p90", num(mc.P90))
		add("monte_carlo", "result", "probability", num(mc.Probability))
	}
	for i, b := range r.Histogram {
		name := fmt.Sprintf("bin_%02d", i+1)
		add("histogram", name, "lower", num(b.Lower))
		add("histogram", name, "upper", num(b.Upper))
		add("histogram", name, "count", strconv.Itoa(b.Count))
	}

	if rr := r.Retirement; rr != nil {
		add("retirement", "result", "years_to_retirement", strconv.Itoa(rr.YearsToRetirement))
		add("retirement", "result", "years_in_retirement", strconv.Itoa(rr.YearsInRetirement))
		add("retirement", "result", "annual_expenses_at_retirement", num(rr.AnnualExpensesAtRetirement))
		add("retirement", "result", "required_corpus", num(rr.RequiredCorpus))
		add("retirement", "result", "projected_corpus", num(rr.ProjectedCorpus))
		add("retirement", "result", "surplus", num(rr.Surplus))
		add("retirement", "result", "corpus_lasts_years", strconv.Itoa(rr.CorpusLastsYears))
		for _, d := range rr.Drawdown {
			name := strconv.Itoa(d.Year)
			add("drawdown", name, "age", strconv.Itoa(d.Age))
			add("drawdown", name, "opening", num(d.OpeningBalance))
			add("drawdown", name, "withdrawal", num(d.Withdrawal))
			add("drawdown", name, "closing", num(d.ClosingBalance))
		}
	}

	if h := r.Health; h != nil {
		add("health", "score", "total", strconv.Itoa(h.Total))
		add("health", "score", "rating", string(h.Rating))
		add("health", "breakdown", "net_worth", strconv.Itoa(h.Breakdown.NetWorth))
		add("health", "breakdown", "savings_rate", strconv.Itoa(h.Breakdown.SavingsRate))
		add("health", "breakdown", "debt_ratio", strconv.Itoa(h.Breakdown.DebtRatio))
		add("health", "breakdown", "emergency_fund", strconv.Itoa(h.Breakdown.EmergencyFund))
		add("health", "breakdown", "goal_progress", strconv.Itoa(h.Breakdown.GoalProgress))
	}

	for _, g := range r.Goals {
		add("goal", g.Goal.Name, "future_cost", num(g.FutureCost))
		add("goal", g.Goal.Name, "progress_pct", num(g.ProgressPct))
		add("goal", g.Goal.Name, "status", string(g.Status))
		add("goal", g.Goal.Name, "required_monthly_sip", num(g.RequiredMonthlySIP))
	}

	if rr := r.RequiredReturn; rr != nil {
		add("required_return", "result", "rate", num(rr.Rate))
		add("required_return", "result", "converged", strconv.FormatBool(rr.Converged))
		add("required_return", "result", "iterations", strconv.Itoa(rr.Iterations))
	}
	if gp := r.GoalsPlan; gp != nil {
		add("goals_plan", "result", "total_needed", num(gp.TotalNeeded))
		add("goals_plan", "result", "horizon_years", strconv.Itoa(gp.HorizonYears))
		add("goals_plan", "result", "projected_corpus", num(gp.ProjectedCorpus))
		add("goals_plan", "result", "required_rate", num(gp.Required.Rate))
		add("goals_plan", "result", "gap", num(gp.Gap))
		add("goals_plan", "result", "feasibility", string(gp.Assessment.Feasibility))
	}

	for _, t := range r.Tables {
		for _, row := range t.Rows {
			if len(row) == 0 {
				continue
			}
			for i := 1; i < len(row) && i < len(t.Headers); i++ {
				add(t.Title, row[0], t.Headers[i], row[i])
			}
		}
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write CSV: %w", err)
	}
	return buf.Bytes(), nil
}
