package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/config"
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/rgehrsitz/finplan/internal/output"
	"github.com/rgehrsitz/finplan/internal/tui"
)

func retirementCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retirement [household.yaml]",
		Short: "Size the retirement corpus and project how long it lasts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.loadHousehold(args[0])
			if err != nil {
				return err
			}
			res := a.engine.ProjectRetirement(calculation.RetirementParamsFromHousehold(h))
			if schedule, _ := cmd.Flags().GetBool("schedule"); !schedule {
				res.Drawdown = nil
			}

			r := a.newReport("Retirement Projection")
			r.Household = h.Name
			r.Retirement = &res
			r.Assumptions = output.AssumptionLines(h.Assumptions)
			if res.Surplus < 0 {
				gapSIP := calculation.RequiredSIP(-res.Surplus, h.Assumptions.WithDefaults().PreRetirementReturn,
					float64(res.YearsToRetirement), a.engine.Timing)
				r.Add("Extra monthly SIP to close gap", gapSIP, output.KindCurrency)
			}
			return a.render(cmd.OutOrStdout(), r)
		},
	}
	cmd.Flags().Bool("schedule", false, "Include the year-by-year drawdown schedule")
	return cmd
}

func healthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health [household.yaml]",
		Short: "Score a household's financial health out of 100",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.loadHousehold(args[0])
			if err != nil {
				return err
			}
			score := a.engine.ScoreHousehold(h)

			p := h.Profile
			r := a.newReport("Financial Health").
				Add("Net worth", h.NetWorth(), output.KindCurrency).
				Add("Savings rate", calculation.SavingsRatePct(p.MonthlyIncome, p.MonthlyExpenses), output.KindPercent).
				Add("Debt to income", calculation.DebtToIncomePct(p.MonthlyIncome, h.TotalEMI()), output.KindPercent).
				Add("Emergency fund (months)", calculation.EmergencyMonths(h.LiquidAssets(), p.MonthlyExpenses), output.KindNumber)
			r.Household = h.Name
			r.Health = &score
			return a.render(cmd.OutOrStdout(), r)
		},
	}
}

func goalsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "goals [household.yaml]",
		Short: "Project every goal's inflated cost and the SIP needed to fund it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.loadHousehold(args[0])
			if err != nil {
				return err
			}
			r := a.newReport("Goal Plan")
			r.Household = h.Name
			r.Goals = a.engine.ProjectGoals(h)
			if len(r.Goals) == 0 {
				r.Notes = append(r.Notes, "Household has no goals")
			}
			return a.render(cmd.OutOrStdout(), r)
		},
	}
}

// monteCarloParams resolves simulation inputs: household facts first, then any
// explicitly set flag, then settings for trial and stepping options.
func monteCarloParams(cmd *cobra.Command, settings *config.Settings, timing domain.Timing, h *domain.Household) calculation.MonteCarloParams {
	f := cmd.Flags()
	p := calculation.MonteCarloParams{
		Trials:       settings.MonteCarlo.Trials,
		MonthlySteps: settings.MonteCarlo.MonthlySteps,
		Lognormal:    settings.MonteCarlo.Lognormal,
		Seed:         settings.MonteCarlo.Seed,
		Workers:      settings.MonteCarlo.Workers,
		Timing:       timing,
	}
	p.Initial, _ = f.GetFloat64("initial")
	p.MonthlyContribution, _ = f.GetFloat64("monthly")
	p.Years, _ = f.GetFloat64("years")
	p.MeanReturnPct, _ = f.GetFloat64("return")
	p.VolatilityPct, _ = f.GetFloat64("volatility")
	p.TargetCorpus, _ = f.GetFloat64("target")

	if h == nil {
		return p
	}
	assume := h.Assumptions.WithDefaults()
	if !f.Changed("initial") {
		p.Initial = h.TotalAssets()
	}
	if !f.Changed("monthly") {
		p.MonthlyContribution = h.Profile.MonthlySavings
	}
	if !f.Changed("years") {
		p.Years = float64(max(h.Profile.RetirementAge-h.Profile.CurrentAge, 0))
	}
	if !f.Changed("return") {
		p.MeanReturnPct = assume.PreRetirementReturn
	}
	if !f.Changed("volatility") {
		p.VolatilityPct = assume.Volatility
	}
	if !f.Changed("target") {
		rp := calculation.RetirementParamsFromHousehold(h)
		rp.Timing = timing
		p.TargetCorpus = calculation.ProjectRetirement(rp).RequiredCorpus
	}
	return p
}

func monteCarloCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monte-carlo [household.yaml]",
		Short: "Simulate wealth paths and the chance of reaching a target corpus",
		Long: "Runs randomized return paths for a lump sum plus monthly SIP. With a household file the\n" +
			"inputs default to its assets, savings, horizon and assumptions, and the target defaults to\n" +
			"the required retirement corpus; explicit flags override them.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var h *domain.Household
			if len(args) == 1 {
				var err error
				if h, err = a.loadHousehold(args[0]); err != nil {
					return err
				}
			}
			p := monteCarloParams(cmd, a.settings, a.engine.Timing, h)
			if p.Years <= 0 {
				return fmt.Errorf("simulation horizon must be positive (got %.1f years)", p.Years)
			}

			var (
				res *calculation.MonteCarloResult
				err error
			)
			if progress, _ := cmd.Flags().GetBool("progress"); progress {
				res, err = tui.Run(cmd.Context(), p, a.engine.RunMonteCarlo,
					tea.WithContext(cmd.Context()), tea.WithOutput(cmd.ErrOrStderr()))
			} else {
				res, err = a.engine.RunMonteCarlo(cmd.Context(), p)
			}
			if err != nil {
				return fmt.Errorf("monte carlo simulation failed: %w", err)
			}
			a.logger.Info("simulation finished", zap.String("op", "monte_carlo"),
				zap.Int("trials", res.Trials), zap.Int64("seed", res.Seed))

			r := a.newReport("Monte Carlo Simulation").
				Add("Starting corpus", p.Initial, output.KindCurrency).
				Add("Monthly SIP", p.MonthlyContribution, output.KindCurrency).
				Add("Years", p.Years, output.KindYears).
				Add("Expected return", p.MeanReturnPct, output.KindPercent).
				Add("Volatility", p.VolatilityPct, output.KindPercent).
				Add("Target corpus", p.TargetCorpus, output.KindCurrency)
			if h != nil {
				r.Household = h.Name
			}
			r.MonteCarlo = res
			if bins, _ := cmd.Flags().GetInt("bins"); bins > 0 {
				r.Histogram = calculation.Histogram(res.SortedResults, bins)
			}
			return a.render(cmd.OutOrStdout(), r)
		},
	}

	f := cmd.Flags()
	f.Float64("initial", 0, "Starting corpus")
	f.Float64("monthly", 0, "Monthly contribution")
	f.Float64("years", 0, "Horizon in years")
	f.Float64("return", 12, "Expected annual return (%)")
	f.Float64("volatility", 15, "Annual return volatility (%)")
	f.Float64("target", 0, "Target corpus for the success probability")
	f.Int("trials", 1000, "Number of simulated paths")
	f.Int64("seed", 0, "Random seed (0 seeds from the clock)")
	f.Int("workers", 0, "Worker goroutines (0 uses every CPU)")
	f.Bool("monthly-steps", true, "Compound monthly instead of one draw per year")
	f.Bool("lognormal", true, "Use drift-corrected lognormal monthly steps")
	f.Int("bins", calculation.DefaultHistogramBins, "Histogram bins (0 disables)")
	f.Bool("progress", false, "Show a live progress view while simulating")
	return cmd
}
