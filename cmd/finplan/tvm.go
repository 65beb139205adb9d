package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/finplan/internal/breakeven"
	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/output"
)

func fvCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fv",
		Short: "Future value of a lump sum",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, _ := cmd.Flags().GetFloat64("amount")
			rate, _ := cmd.Flags().GetFloat64("rate")
			years, _ := cmd.Flags().GetFloat64("years")

			fv := calculation.FutureValue(amount, rate, years)
			r := a.newReport("Future Value").
				Add("Present value", amount, output.KindCurrency).
				Add("Annual rate", rate, output.KindPercent).
				Add("Years", years, output.KindYears).
				Add("Future value", fv, output.KindCurrency).
				Add("Growth", fv-amount, output.KindCurrency)
			return a.render(cmd.OutOrStdout(), r)
		},
	}
	cmd.Flags().Float64("amount", 0, "Present value")
	cmd.Flags().Float64("rate", 0, "Annual return (%)")
	cmd.Flags().Float64("years", 0, "Horizon in years")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func sipCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sip",
		Short: "Maturity value of a monthly SIP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			monthly, _ := cmd.Flags().GetFloat64("monthly")
			rate, _ := cmd.Flags().GetFloat64("rate")
			years, _ := cmd.Flags().GetFloat64("years")

			res := calculation.SIPSummary(monthly, rate, years, a.engine.Timing)
			r := a.newReport("SIP Maturity").
				Add("Monthly investment", monthly, output.KindCurrency).
				Add("Annual rate", rate, output.KindPercent).
				Add("Years", years, output.KindYears).
				AddText("Timing", string(a.engine.Timing)).
				Add("Total invested", res.Invested, output.KindCurrency).
				Add("Maturity value", res.Maturity, output.KindCurrency).
				Add("Returns", res.Returns, output.KindCurrency)
			return a.render(cmd.OutOrStdout(), r)
		},
	}
	cmd.Flags().Float64("monthly", 0, "Monthly contribution")
	cmd.Flags().Float64("rate", 0, "Annual return (%)")
	cmd.Flags().Float64("years", 0, "Horizon in years")
	_ = cmd.MarkFlagRequired("monthly")
	return cmd
}

func emiCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emi",
		Short: "Monthly installment that repays a loan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			principal, _ := cmd.Flags().GetFloat64("principal")
			rate, _ := cmd.Flags().GetFloat64("rate")
			years, _ := cmd.Flags().GetFloat64("years")
			return a.render(cmd.OutOrStdout(), loanReport(a, principal, rate, years))
		},
	}
	cmd.Flags().Float64("principal", 0, "Loan principal")
	cmd.Flags().Float64("rate", 0, "Annual interest rate (%)")
	cmd.Flags().Float64("years", 0, "Loan tenure in years")
	_ = cmd.MarkFlagRequired("principal")
	return cmd
}

func loanReport(a *app, principal, rate, years float64) *output.Report {
	res := calculation.LoanSummary(principal, rate, years)
	return a.newReport("Loan EMI").
		Add("Principal", principal, output.KindCurrency).
		Add("Annual rate", rate, output.KindPercent).
		Add("Tenure", years, output.KindYears).
		Add("Monthly EMI", res.EMI, output.KindCurrency).
		Add("Total payment", res.TotalPayment, output.KindCurrency).
		Add("Total interest", res.TotalInterest, output.KindCurrency)
}

func requiredSIPCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "required-sip",
		Short: "Monthly SIP needed to reach a target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target, _ := cmd.Flags().GetFloat64("target")
			rate, _ := cmd.Flags().GetFloat64("rate")
			years, _ := cmd.Flags().GetFloat64("years")

			sip := calculation.RequiredSIP(target, rate, years, a.engine.Timing)
			r := a.newReport("Required SIP").
				Add("Target", target, output.KindCurrency).
				Add("Annual rate", rate, output.KindPercent).
				Add("Years", years, output.KindYears).
				AddText("Timing", string(a.engine.Timing)).
				Add("Monthly SIP", sip, output.KindCurrency)
			if sip == 0 {
				r.Notes = append(r.Notes, "Horizon has no contribution months")
			}
			return a.render(cmd.OutOrStdout(), r)
		},
	}
	cmd.Flags().Float64("target", 0, "Target corpus")
	cmd.Flags().Float64("rate", 0, "Annual return (%)")
	cmd.Flags().Float64("years", 0, "Horizon in years")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

func requiredReturnCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "required-return [household.yaml]",
		Short: "Annual return needed to reach a target, or to fund a household's goals",
		Long: "Without a household file, solves for the return at which --current plus a --monthly SIP\n" +
			"reaches --target in --years. With a household file, totals the inflated cost of every\n" +
			"future goal and solves for the return that funds them all.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := breakeven.DefaultSolverOptions()
			opts.InitialGuess, _ = cmd.Flags().GetFloat64("guess")
			opts.MaxIterations, _ = cmd.Flags().GetInt("max-iterations")
			solver := breakeven.NewSolver(opts)
			solver.Logger = a.engine.Logger

			if len(args) == 1 {
				h, err := a.loadHousehold(args[0])
				if err != nil {
					return err
				}
				plan, err := solver.GoalsRequiredReturn(h, h.TotalAssets(), h.Profile.MonthlySavings,
					h.Assumptions.WithDefaults().PreRetirementReturn, a.engine.Timing, a.engine.CurrentYear())
				if err != nil {
					return fmt.Errorf("failed to solve goals return: %w", err)
				}
				r := a.newReport("Goals Required Return")
				r.Household = h.Name
				r.GoalsPlan = plan
				return a.render(cmd.OutOrStdout(), r)
			}

			current, _ := cmd.Flags().GetFloat64("current")
			monthly, _ := cmd.Flags().GetFloat64("monthly")
			target, _ := cmd.Flags().GetFloat64("target")
			years, _ := cmd.Flags().GetFloat64("years")
			if target <= 0 || years <= 0 {
				return fmt.Errorf("--target and --years must be positive")
			}

			res := solver.Solve(current, monthly, target, years, a.engine.Timing)
			r := a.newReport("Required Return").
				Add("Current savings", current, output.KindCurrency).
				Add("Monthly SIP", monthly, output.KindCurrency).
				Add("Target", target, output.KindCurrency).
				Add("Years", years, output.KindYears)
			r.RequiredReturn = &res
			return a.render(cmd.OutOrStdout(), r)
		},
	}
	defaults := breakeven.DefaultSolverOptions()
	cmd.Flags().Float64("current", 0, "Current savings")
	cmd.Flags().Float64("monthly", 0, "Monthly contribution")
	cmd.Flags().Float64("target", 0, "Target corpus")
	cmd.Flags().Float64("years", 0, "Horizon in years")
	cmd.Flags().Float64("guess", defaults.InitialGuess, "Initial rate guess (%)")
	cmd.Flags().Int("max-iterations", defaults.MaxIterations, "Newton-Raphson iteration budget")
	return cmd
}
