package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func householdPath(t *testing.T) string {
	t.Helper()
	p, err := filepath.Abs(filepath.Join("..", "..", "testdata", "household.yaml"))
	require.NoError(t, err)
	return p
}

// execute runs the CLI in an empty working directory with an isolated HOME
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

type jsonReport struct {
	Title     string `json:"title"`
	Household string `json:"household"`
	Metrics   []struct {
		Label string  `json:"label"`
		Value float64 `json:"value"`
		Text  string  `json:"text"`
	} `json:"metrics"`
	MonteCarlo *struct {
		Median      float64 `json:"median"`
		Probability float64 `json:"probability"`
		Trials      int     `json:"trials"`
		Seed        int64   `json:"seed"`
	} `json:"monteCarlo"`
	Histogram      []map[string]interface{} `json:"histogram"`
	Retirement     map[string]interface{}   `json:"retirement"`
	Health         map[string]interface{}   `json:"health"`
	Goals          []map[string]interface{} `json:"goals"`
	RequiredReturn *struct {
		Rate      float64 `json:"rate"`
		Converged bool    `json:"converged"`
	} `json:"requiredReturn"`
	GoalsPlan map[string]interface{} `json:"goalsPlan"`
	Notes     []string               `json:"notes"`
}

func decodeReport(t *testing.T, out string) jsonReport {
	t.Helper()
	var r jsonReport
	require.NoError(t, json.Unmarshal([]byte(out), &r), out)
	return r
}

func (r jsonReport) metric(t *testing.T, label string) float64 {
	t.Helper()
	for _, m := range r.Metrics {
		if m.Label == label {
			return m.Value
		}
	}
	t.Fatalf("metric %q not found in %s report", label, r.Title)
	return 0
}

func (r jsonReport) text(t *testing.T, label string) string {
	t.Helper()
	for _, m := range r.Metrics {
		if m.Label == label {
			return m.Text
		}
	}
	t.Fatalf("metric %q not found in %s report", label, r.Title)
	return ""
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "finplan", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{
		"fv", "sip", "emi", "required-sip", "required-return", "monte-carlo",
		"retirement", "health", "goals", "calc", "compare", "validate", "version",
	} {
		assert.Contains(t, names, want)
	}
}

func TestHelp(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "monte-carlo")
	assert.Contains(t, out, "--timing")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "finplan dev")
}

func TestFutureValue(t *testing.T) {
	out, err := execute(t, "fv", "--amount", "100000", "--rate", "12", "--years", "5", "--format", "json")
	require.NoError(t, err)
	r := decodeReport(t, out)
	assert.InDelta(t, 176234.168, r.metric(t, "Future value"), 0.01)
	assert.InDelta(t, 76234.168, r.metric(t, "Growth"), 0.01)
}

func TestFutureValuePlain(t *testing.T) {
	out, err := execute(t, "fv", "--amount", "100000", "--rate", "12", "--years", "5", "--format", "plain")
	require.NoError(t, err)
	assert.Contains(t, out, "FUTURE VALUE")
	assert.Contains(t, out, "₹1,76,234")
}

func TestFutureValueNonFinite(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"overflow", []string{"fv", "--amount", "100000", "--rate", "1e6", "--years", "200"}, "∞"},
		{"negative base", []string{"fv", "--amount", "100000", "--rate", "-200", "--years", "0.5"}, "n/a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out string
			var err error
			require.NotPanics(t, func() {
				out, err = execute(t, append(tt.args, "--format", "plain")...)
			})
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestFutureValueRequiresAmount(t *testing.T) {
	_, err := execute(t, "fv", "--rate", "12")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount")
}

func TestSIPTiming(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		env    string
		want   float64
		timing string
	}{
		{"default due", nil, "", 2323390.76, "due"},
		{"flag ordinary", []string{"--timing", "ordinary"}, "", 2300386.89, "ordinary"},
		{"env ordinary", nil, "ordinary", 2300386.89, "ordinary"},
		{"flag beats env", []string{"--timing", "due"}, "ordinary", 2323390.76, "due"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.env != "" {
				t.Setenv("FINPLAN_SIP_TIMING", tt.env)
			}
			args := append([]string{"sip", "--monthly", "10000", "--rate", "12", "--years", "10", "--format", "json"}, tt.args...)
			out, err := execute(t, args...)
			require.NoError(t, err)
			r := decodeReport(t, out)
			assert.InDelta(t, tt.want, r.metric(t, "Maturity value"), 0.01)
			assert.Equal(t, 1200000.0, r.metric(t, "Total invested"))
			assert.Equal(t, tt.timing, r.text(t, "Timing"))
		})
	}
}

func TestInvalidTiming(t *testing.T) {
	_, err := execute(t, "sip", "--monthly", "10000", "--timing", "weekly")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weekly")
}

func TestEMI(t *testing.T) {
	out, err := execute(t, "emi", "--principal", "1000000", "--rate", "9", "--years", "20", "--format", "json")
	require.NoError(t, err)
	r := decodeReport(t, out)
	assert.InDelta(t, 8997.26, r.metric(t, "Monthly EMI"), 0.01)
	assert.InDelta(t, 8997.26*240-1000000, r.metric(t, "Total interest"), 1)
}

func TestRequiredSIP(t *testing.T) {
	out, err := execute(t, "required-sip", "--target", "2300386.89", "--rate", "12", "--years", "10",
		"--timing", "ordinary", "--format", "json")
	require.NoError(t, err)
	r := decodeReport(t, out)
	assert.InDelta(t, 10000, r.metric(t, "Monthly SIP"), 0.01)
}

func TestRequiredReturn(t *testing.T) {
	out, err := execute(t, "required-return", "--monthly", "10000", "--target", "2323390.76",
		"--years", "10", "--guess", "8", "--format", "json")
	require.NoError(t, err)
	r := decodeReport(t, out)
	require.NotNil(t, r.RequiredReturn)
	assert.True(t, r.RequiredReturn.Converged)
	assert.InDelta(t, 12, r.RequiredReturn.Rate, 0.01)

	_, err = execute(t, "required-return", "--monthly", "10000")
	assert.Error(t, err)
}

func TestRequiredReturnForGoals(t *testing.T) {
	out, err := execute(t, "required-return", householdPath(t), "--format", "json")
	require.NoError(t, err)
	r := decodeReport(t, out)
	assert.Equal(t, "Sharma family", r.Household)
	require.NotNil(t, r.GoalsPlan)
	assert.Contains(t, r.GoalsPlan, "totalNeeded")
	assert.Contains(t, r.GoalsPlan, "assessment")
}

func TestMonteCarloDeterministic(t *testing.T) {
	args := []string{"monte-carlo", "--initial", "1000000", "--monthly", "10000", "--years", "10",
		"--target", "5000000", "--trials", "300", "--seed", "7", "--format", "json"}

	out1, err := execute(t, args...)
	require.NoError(t, err)
	out2, err := execute(t, append(args, "--workers", "1")...)
	require.NoError(t, err)

	r1, r2 := decodeReport(t, out1), decodeReport(t, out2)
	require.NotNil(t, r1.MonteCarlo)
	assert.Equal(t, 300, r1.MonteCarlo.Trials)
	assert.Equal(t, int64(7), r1.MonteCarlo.Seed)
	assert.Equal(t, r1.MonteCarlo.Median, r2.MonteCarlo.Median)
	assert.Equal(t, r1.MonteCarlo.Probability, r2.MonteCarlo.Probability)
	assert.Len(t, r1.Histogram, 20)

	total := 0.0
	for _, b := range r1.Histogram {
		total += b["count"].(float64)
	}
	assert.Equal(t, 300.0, total)
}

func TestMonteCarloFromHousehold(t *testing.T) {
	out, err := execute(t, "monte-carlo", householdPath(t), "--trials", "256", "--seed", "3",
		"--bins", "0", "--format", "json")
	require.NoError(t, err)
	r := decodeReport(t, out)
	assert.Equal(t, "Sharma family", r.Household)
	assert.Equal(t, 4200000.0, r.metric(t, "Starting corpus"))
	assert.Equal(t, 60000.0, r.metric(t, "Monthly SIP"))
	assert.Equal(t, 25.0, r.metric(t, "Years"))
	assert.Greater(t, r.metric(t, "Target corpus"), 0.0)
	assert.Empty(t, r.Histogram)
}

func TestMonteCarloRequiresHorizon(t *testing.T) {
	_, err := execute(t, "monte-carlo", "--initial", "1000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "horizon must be positive")
}

func TestMonteCarloSettingsFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "finplan.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("monte_carlo:\n  trials: 128\n  seed: 99\n"), 0o644))

	out, err := execute(t, "monte-carlo", "--config", cfg, "--years", "5", "--monthly", "1000", "--format", "json")
	require.NoError(t, err)
	r := decodeReport(t, out)
	assert.Equal(t, 128, r.MonteCarlo.Trials)
	assert.Equal(t, int64(99), r.MonteCarlo.Seed)
}

func TestRetirement(t *testing.T) {
	out, err := execute(t, "retirement", householdPath(t), "--format", "json")
	require.NoError(t, err)
	r := decodeReport(t, out)
	assert.Equal(t, "Sharma family", r.Household)
	require.NotNil(t, r.Retirement)
	assert.Equal(t, 25.0, r.Retirement["yearsToRetirement"])
	assert.Nil(t, r.Retirement["drawdown"])

	out, err = execute(t, "retirement", householdPath(t), "--schedule", "--format", "plain")
	require.NoError(t, err)
	assert.Contains(t, out, "RETIREMENT PROJECTION")
	assert.Contains(t, out, "DRAWDOWN SCHEDULE")
	assert.Contains(t, out, "ASSUMPTIONS")
}

func TestHealth(t *testing.T) {
	out, err := execute(t, "health", householdPath(t), "--format", "json")
	require.NoError(t, err)
	r := decodeReport(t, out)
	require.NotNil(t, r.Health)
	assert.Contains(t, r.Health, "rating")
	assert.InDelta(t, 45, r.metric(t, "Savings rate"), 1e-9)
	assert.InDelta(t, 23.5, r.metric(t, "Debt to income"), 1e-9)
}

func TestGoals(t *testing.T) {
	out, err := execute(t, "goals", householdPath(t), "--format", "plain")
	require.NoError(t, err)
	for _, want := range []string{"GOALS", "Child education", "Home upgrade", "Europe trip", "Total monthly SIP needed"} {
		assert.Contains(t, out, want)
	}
}

func TestCalcCommands(t *testing.T) {
	hh := householdPath(t)
	tests := []struct {
		name  string
		args  []string
		label string
		want  float64
	}{
		{"loan", []string{"calc", "loan", "--principal", "1000000"}, "Monthly EMI", 8997.26},
		{"inflation", []string{"calc", "inflation", "--amount", "100000", "--rate", "6", "--years", "10"}, "Future cost", 179084.77},
		{"allocation", []string{"calc", "allocation", "--horizon", "20", "--risk", "aggressive"}, "Equity", 80},
		{"emergency", []string{"calc", "emergency", hh}, "Shortfall", 80000},
		{"emergency flags", []string{"calc", "emergency", "--expenses", "50000", "--earners", "1", "--dependents", "2"}, "Recommended months", 11},
		{"insurance", []string{"calc", "insurance", "--annual-income", "1200000", "--life", "5000000"}, "Life gap", 7000000},
		{"health cover", []string{"calc", "health-cover", hh}, "Recommended coverage", 4500000},
		{"portfolio", []string{"calc", "portfolio", hh}, "Total value", 4200000},
		{"tax", []string{"calc", "tax", hh}, "Total individual tax", 361920},
		{"projection flags", []string{"calc", "projection", "--current-age", "30", "--retirement-age", "40", "--monthly", "10000"}, "Projected corpus", 2323390.76},
		{"projection ordinary", []string{"calc", "projection", "--current-age", "30", "--retirement-age", "40", "--monthly", "10000", "--timing", "ordinary"}, "Projected corpus", 2300386.89},
		{"projection household", []string{"calc", "projection", hh}, "Total invested", 22200000},
		{"dual retirement", []string{"calc", "dual-retirement", hh}, "Combined monthly income", 200000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append(tt.args, "--format", "json")...)
			require.NoError(t, err)
			r := decodeReport(t, out)
			assert.InDelta(t, tt.want, r.metric(t, tt.label), 0.01)
		})
	}
}

func TestCalcTaxJoint(t *testing.T) {
	out, err := execute(t, "calc", "tax", householdPath(t), "--mode", "joint", "--format", "json")
	require.NoError(t, err)
	r := decodeReport(t, out)
	assert.Equal(t, "joint", r.text(t, "Filing mode"))
	assert.InDelta(t, 2400000, r.metric(t, "Combined income"), 0.01)
	assert.InDelta(t, 538200, r.metric(t, "Joint tax"), 0.01)
	assert.InDelta(t, -176280, r.metric(t, "Joint savings"), 0.01)
	assert.Contains(t, r.Notes, "Separate assessment is cheaper than joint assessment")

	_, err = execute(t, "calc", "tax", householdPath(t), "--mode", "married")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown filing mode")
}

func TestCalcProjectionAndDualRetirementTables(t *testing.T) {
	out, err := execute(t, "calc", "projection", householdPath(t), "--format", "plain")
	require.NoError(t, err)
	assert.Contains(t, out, "BY YEAR")

	out, err = execute(t, "calc", "dual-retirement", householdPath(t), "--format", "plain")
	require.NoError(t, err)
	for _, want := range []string{"EARNERS", "ANNUAL INCOME", "Arjun", "Meera"} {
		assert.Contains(t, out, want)
	}

	_, err = execute(t, "calc", "projection", "--current-age", "50", "--retirement-age", "40")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retirement age (40)")
}

func TestCalcAllocationBadRisk(t *testing.T) {
	_, err := execute(t, "calc", "allocation", "--risk", "reckless")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown risk tolerance")
}

func TestCompare(t *testing.T) {
	out, err := execute(t, "compare", householdPath(t), "--with", "retire_late_3,return_minus_2", "--format", "plain")
	require.NoError(t, err)
	for _, want := range []string{"HOUSEHOLD SCENARIO COMPARISON", "Sharma family", "retire_late_3", "return_minus_2", "RECOMMENDATIONS"} {
		assert.Contains(t, out, want)
	}
}

func TestCompareJSONWithTransforms(t *testing.T) {
	out, err := execute(t, "compare", householdPath(t),
		"--transform", "adjust_savings:percent=20",
		"--transform", "adjust_return:delta=1",
		"--name", "stretch", "--format", "json")
	require.NoError(t, err)

	var set struct {
		ID                 string `json:"id"`
		AlternativeResults []struct {
			ScenarioName string `json:"scenarioName"`
		} `json:"alternativeResults"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &set), out)
	assert.NotEmpty(t, set.ID)
	require.Len(t, set.AlternativeResults, 1)
	assert.Equal(t, "stretch", set.AlternativeResults[0].ScenarioName)
}

func TestCompareCSVAndYAML(t *testing.T) {
	out, err := execute(t, "compare", householdPath(t), "--with", "save_more_20", "--format", "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 3)

	out, err = execute(t, "compare", householdPath(t), "--with", "save_more_20", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "householdName: Sharma family")
}

func TestCompareErrors(t *testing.T) {
	_, err := execute(t, "compare", householdPath(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--with")

	_, err = execute(t, "compare", householdPath(t), "--with", "moonshot")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template moonshot not found")

	_, err = execute(t, "compare", householdPath(t), "--transform", "adjust_return")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid transform")

	_, err = execute(t, "compare", "--with", "retire_late_3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "household file is required")
}

func TestCompareListTemplates(t *testing.T) {
	out, err := execute(t, "compare", "--list-templates")
	require.NoError(t, err)
	assert.Contains(t, out, "Available Templates")
	assert.Contains(t, out, "retire_early_5")
	assert.Contains(t, out, "Transforms:")
	assert.Contains(t, out, "postpone_retirement")
}

func TestValidate(t *testing.T) {
	out, err := execute(t, "validate", householdPath(t))
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
	assert.Contains(t, out, "Sharma family")
	assert.Contains(t, out, "Assets:      4 (₹42,00,000)")
}

func TestValidateRejectsBadHousehold(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("name: Bad\nprofile:\n  current_age: 50\n  retirement_age: 40\n"), 0o644))

	_, err := execute(t, "validate", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retirement age (40) cannot be before current age (50)")

	_, err = execute(t, "validate", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestUnsupportedFormat(t *testing.T) {
	_, err := execute(t, "fv", "--amount", "1", "--format", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestOutputDir(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "fv", "--amount", "1000", "--rate", "10", "--years", "1", "--format", "csv", "--output-dir", dir)
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(dir, "finplan_report_*.csv"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

// chdir changes the working directory for the duration of the test
// (equivalent to testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}
