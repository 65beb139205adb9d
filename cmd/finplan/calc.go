package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/output"
	"github.com/rgehrsitz/finplan/internal/tui/tuistyles"
)

func calcCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Standalone planning calculators",
	}
	cmd.AddCommand(
		calcLoanCmd(a), calcInflationCmd(a), calcPortfolioCmd(a), calcAllocationCmd(a),
		calcEmergencyCmd(a), calcInsuranceCmd(a), calcHealthCoverCmd(a),
		calcTaxCmd(a), calcProjectionCmd(a), calcDualRetirementCmd(a),
	)
	return cmd
}

func calcLoanCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loan",
		Short: "EMI, total payment and total interest of a loan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			principal, _ := cmd.Flags().GetFloat64("principal")
			rate, _ := cmd.Flags().GetFloat64("rate")
			years, _ := cmd.Flags().GetFloat64("years")
			return a.render(cmd.OutOrStdout(), loanReport(a, principal, rate, years))
		},
	}
	cmd.Flags().Float64("principal", 0, "Loan principal")
	cmd.Flags().Float64("rate", 9, "Annual interest rate (%)")
	cmd.Flags().Float64("years", 20, "Loan tenure in years")
	_ = cmd.MarkFlagRequired("principal")
	return cmd
}

func calcInflationCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inflation",
		Short: "Future price of an amount and the purchasing power lost",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, _ := cmd.Flags().GetFloat64("amount")
			rate, _ := cmd.Flags().GetFloat64("rate")
			years, _ := cmd.Flags().GetFloat64("years")

			res := calculation.InflationImpact(amount, rate, years)
			r := a.newReport("Inflation Impact").
				Add("Amount today", amount, output.KindCurrency).
				Add("Inflation", rate, output.KindPercent).
				Add("Years", years, output.KindYears).
				Add("Future cost", res.FutureValue, output.KindCurrency).
				Add("Purchasing power lost", res.PurchasingPowerLoss, output.KindCurrency).
				Add("Value retained", res.RetainedPct, output.KindPercent)
			return a.render(cmd.OutOrStdout(), r)
		},
	}
	cmd.Flags().Float64("amount", 0, "Amount in today's money")
	cmd.Flags().Float64("rate", 6, "Annual inflation (%)")
	cmd.Flags().Float64("years", 10, "Years ahead")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func calcPortfolioCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "portfolio [household.yaml]",
		Short: "Allocation by asset category and the weighted expected return",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.loadHousehold(args[0])
			if err != nil {
				return err
			}
			res := calculation.PortfolioSummary(h.Assets)
			r := a.newReport("Portfolio").
				Add("Total value", res.TotalValue, output.KindCurrency).
				Add("Weighted return", res.WeightedReturn, output.KindPercent)
			r.Household = h.Name

			t := output.Table{
				Title:   "ALLOCATION",
				Headers: []string{"Category", "Value", "Allocation", "Avg Return", "Contribution"},
			}
			for _, c := range res.Categories {
				t.Rows = append(t.Rows, []string{
					c.Category,
					tuistyles.FormatCurrency(c.Value),
					fmt.Sprintf("%.1f%%", c.AllocationPct),
					fmt.Sprintf("%.1f%%", c.AverageReturn),
					fmt.Sprintf("%.2f%%", c.Contribution),
				})
			}
			r.Tables = append(r.Tables, t)
			return a.render(cmd.OutOrStdout(), r)
		},
	}
}

func calcAllocationCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "allocation",
		Short: "Recommended equity/debt/other split for a horizon and risk tolerance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			horizon, _ := cmd.Flags().GetInt("horizon")
			riskName, _ := cmd.Flags().GetString("risk")
			risk, err := calculation.ParseRiskTolerance(riskName)
			if err != nil {
				return err
			}
			alloc := calculation.RecommendAllocation(horizon, risk)
			r := a.newReport("Recommended Allocation").
				Add("Horizon", float64(horizon), output.KindYears).
				AddText("Risk tolerance", string(risk)).
				Add("Equity", float64(alloc.Equity), output.KindPercent).
				Add("Debt", float64(alloc.Debt), output.KindPercent).
				Add("Others", float64(alloc.Others), output.KindPercent)
			return a.render(cmd.OutOrStdout(), r)
		},
	}
	cmd.Flags().Int("horizon", 10, "Investment horizon in years")
	cmd.Flags().String("risk", "moderate", "Risk tolerance (conservative, moderate, aggressive)")
	return cmd
}

func calcEmergencyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emergency [household.yaml]",
		Short: "Emergency fund size for a household",
		Long: "Sizes the emergency buffer from monthly expenses and household composition. With a\n" +
			"household file, expenses, earners and dependents come from it and liquid assets are\n" +
			"compared against the recommendation.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expenses, _ := cmd.Flags().GetFloat64("expenses")
			earners, _ := cmd.Flags().GetInt("earners")
			dependents, _ := cmd.Flags().GetInt("dependents")

			r := a.newReport("Emergency Fund")
			liquid := -1.0
			if len(args) == 1 {
				h, err := a.loadHousehold(args[0])
				if err != nil {
					return err
				}
				r.Household = h.Name
				expenses = h.Profile.MonthlyExpenses
				if len(h.FamilyMembers) > 0 {
					earners, dependents = h.Earners(), h.Dependents()
				}
				liquid = h.LiquidAssets()
			}
			if expenses <= 0 {
				return fmt.Errorf("monthly expenses must be positive")
			}

			plan := calculation.EmergencyFundPlan(expenses, earners, dependents)
			r.Add("Monthly expenses", expenses, output.KindCurrency).
				Add("Recommended months", float64(plan.RecommendedMonths), output.KindNumber).
				Add("Recommended fund", plan.RecommendedFund, output.KindCurrency).
				Add("Conservative months", float64(plan.ConservativeMonths), output.KindNumber).
				Add("Conservative fund", plan.ConservativeFund, output.KindCurrency)
			if liquid >= 0 {
				r.Add("Liquid assets", liquid, output.KindCurrency)
				if gap := plan.RecommendedFund - liquid; gap > 0 {
					r.Add("Shortfall", gap, output.KindCurrency)
				} else {
					r.Notes = append(r.Notes, "Liquid assets cover the recommended emergency fund")
				}
			}
			return a.render(cmd.OutOrStdout(), r)
		},
	}
	cmd.Flags().Float64("expenses", 0, "Monthly expenses")
	cmd.Flags().Int("earners", 1, "Earning members")
	cmd.Flags().Int("dependents", 0, "Dependents")
	return cmd
}

func calcInsuranceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insurance",
		Short: "Health and life cover gaps against recommended levels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			health, _ := cmd.Flags().GetFloat64("health")
			recommended, _ := cmd.Flags().GetFloat64("recommended-health")
			life, _ := cmd.Flags().GetFloat64("life")
			income, _ := cmd.Flags().GetFloat64("annual-income")

			res := calculation.InsuranceGap(health, recommended, life, income)
			r := a.newReport("Insurance Gap").
				Add("Health cover", health, output.KindCurrency).
				Add("Health gap", res.HealthGap, output.KindCurrency).
				Add("Life cover", life, output.KindCurrency).
				Add("Recommended life cover", res.RecommendedLife, output.KindCurrency).
				Add("Life gap", res.LifeGap, output.KindCurrency).
				AddText("Status", string(res.Status))
			return a.render(cmd.OutOrStdout(), r)
		},
	}
	cmd.Flags().Float64("health", 0, "Current health cover")
	cmd.Flags().Float64("recommended-health", 1000000, "Recommended health cover")
	cmd.Flags().Float64("life", 0, "Current life cover")
	cmd.Flags().Float64("annual-income", 0, "Annual income")
	_ = cmd.MarkFlagRequired("annual-income")
	return cmd
}

func calcHealthCoverCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health-cover [household.yaml]",
		Short: "Family floater health cover sized from household members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.loadHousehold(args[0])
			if err != nil {
				return err
			}
			res := calculation.FamilyHealthCover(h.FamilyMembers)
			r := a.newReport("Family Health Cover").
				Add("Members", float64(res.Members), output.KindNumber).
				Add("Members aged 60+", float64(res.Elderly), output.KindNumber).
				Add("Minimum coverage", res.MinimumCoverage, output.KindCurrency).
				Add("Recommended coverage", res.RecommendedCoverage, output.KindCurrency).
				Add("Estimated annual premium", res.AnnualPremium, output.KindCurrency)
			r.Household = h.Name
			if res.Members == 0 {
				r.Notes = append(r.Notes, "Household lists no family members")
			}
			return a.render(cmd.OutOrStdout(), r)
		},
	}
}

func calcTaxCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tax [household.yaml]",
		Short: "Old-regime income tax per earner, optionally against a joint assessment",
		Long: "Applies the ₹50,000 standard deduction, the old-regime slabs and 4% cess to each\n" +
			"earning family member. In joint mode with two or more earners the combined income is\n" +
			"assessed too and the difference reported.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			modeFlag, _ := cmd.Flags().GetString("mode")
			mode, err := calculation.ParseFilingMode(modeFlag)
			if err != nil {
				return err
			}
			h, err := a.loadHousehold(args[0])
			if err != nil {
				return err
			}
			res, err := calculation.CompareTaxes(h.FamilyMembers, mode)
			if err != nil {
				return err
			}

			r := a.newReport("Income Tax").
				AddText("Filing mode", string(res.Mode)).
				Add("Total individual tax", res.TotalIndividualTax, output.KindCurrency)
			r.Household = h.Name
			t := output.Table{Title: "PER EARNER", Headers: []string{"Earner", "Annual Income", "Tax", "Effective Rate"}}
			for _, e := range res.Individual {
				t.Rows = append(t.Rows, []string{
					e.Name,
					tuistyles.FormatCurrency(e.AnnualIncome),
					tuistyles.FormatCurrency(e.Tax),
					fmt.Sprintf("%.1f%%", effectiveRate(e.Tax, e.AnnualIncome)),
				})
			}
			r.Tables = append(r.Tables, t)

			if res.Joint != nil {
				r.Add("Combined income", res.Joint.CombinedIncome, output.KindCurrency).
					Add("Joint tax", res.Joint.Tax, output.KindCurrency).
					Add("Joint savings", res.Savings, output.KindCurrency)
				if res.Savings < 0 {
					r.Notes = append(r.Notes, "Separate assessment is cheaper than joint assessment")
				}
			} else if mode == calculation.FilingJoint {
				r.Notes = append(r.Notes, "Joint assessment needs at least 2 earners")
			}
			r.Assumptions = append(r.Assumptions,
				fmt.Sprintf("Standard deduction %s per earner", tuistyles.FormatCurrency(calculation.StandardDeduction)),
				fmt.Sprintf("Cess %.0f%% on tax", calculation.CessRate*100))
			return a.render(cmd.OutOrStdout(), r)
		},
	}
	cmd.Flags().String("mode", "individual", "Filing mode (individual, joint)")
	return cmd
}

func effectiveRate(tax, income float64) float64 {
	if income <= 0 {
		return 0
	}
	return tax / income * 100
}

func calcProjectionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projection [household.yaml]",
		Short: "Year-by-year wealth from current savings and a monthly SIP",
		Long: "Projects wealth to retirement with monthly compounding of contributions in the\n" +
			"configured SIP timing. With a household file, ages, total assets, monthly savings and\n" +
			"the pre-retirement return come from it.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := a.newReport("Wealth Projection")
			var p calculation.ProjectionParams
			if len(args) == 1 {
				h, err := a.loadHousehold(args[0])
				if err != nil {
					return err
				}
				r.Household = h.Name
				p = calculation.ProjectionParamsFromHousehold(h, a.engine.Timing)
			} else {
				p.CurrentAge, _ = cmd.Flags().GetInt("current-age")
				p.RetirementAge, _ = cmd.Flags().GetInt("retirement-age")
				p.CurrentSavings, _ = cmd.Flags().GetFloat64("savings")
				p.MonthlySavings, _ = cmd.Flags().GetFloat64("monthly")
				p.ReturnPct, _ = cmd.Flags().GetFloat64("rate")
				p.Timing = a.engine.Timing
			}
			if p.RetirementAge < p.CurrentAge {
				return fmt.Errorf("retirement age (%d) cannot be before current age (%d)", p.RetirementAge, p.CurrentAge)
			}

			res := calculation.ProjectWealth(p)
			r.Add("Years", float64(res.Years), output.KindYears).
				Add("Projected corpus", res.ProjectedCorpus, output.KindCurrency).
				Add("Total invested", res.TotalInvested, output.KindCurrency).
				Add("Total returns", res.TotalReturns, output.KindCurrency)
			t := output.Table{Title: "BY YEAR", Headers: []string{"Year", "Age", "Invested", "Wealth"}}
			for _, y := range res.Series {
				t.Rows = append(t.Rows, []string{
					fmt.Sprintf("%d", y.Year),
					fmt.Sprintf("%d", y.Age),
					tuistyles.FormatCompact(y.TotalInvested),
					tuistyles.FormatCompact(y.Wealth),
				})
			}
			r.Tables = append(r.Tables, t)
			r.Assumptions = append(r.Assumptions, fmt.Sprintf("SIP timing %s, %.1f%% annual return", p.Timing, p.ReturnPct))
			return a.render(cmd.OutOrStdout(), r)
		},
	}
	cmd.Flags().Int("current-age", 30, "Current age")
	cmd.Flags().Int("retirement-age", 60, "Retirement age")
	cmd.Flags().Float64("savings", 0, "Current savings")
	cmd.Flags().Float64("monthly", 0, "Monthly SIP")
	cmd.Flags().Float64("rate", 12, "Annual return (%)")
	return cmd
}

func calcDualRetirementCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dual-retirement [household.yaml]",
		Short: "Phased retirement timeline for two or more earners",
		Long: "Lays out each earner's years to and in retirement and the household's combined\n" +
			"earned income by calendar year. Members without their own retirement_age or\n" +
			"life_expectancy use the profile's.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.loadHousehold(args[0])
			if err != nil {
				return err
			}
			res, err := calculation.PlanDualRetirement(h, a.engine.CurrentYear())
			if err != nil {
				return err
			}

			r := a.newReport("Dual Retirement").
				Add("Earners", float64(len(res.Earners)), output.KindNumber).
				Add("Combined monthly income", res.CombinedMonthlyIncome, output.KindCurrency)
			r.Household = h.Name
			earners := output.Table{
				Title:   "EARNERS",
				Headers: []string{"Earner", "Age", "Retires At", "Years To", "Years In", "Monthly Income"},
			}
			headers := []string{"Year", "Combined"}
			for _, e := range res.Earners {
				earners.Rows = append(earners.Rows, []string{
					e.Name,
					fmt.Sprintf("%d", e.CurrentAge),
					fmt.Sprintf("%d", e.RetirementAge),
					fmt.Sprintf("%d", e.YearsToRetirement),
					fmt.Sprintf("%d", e.YearsInRetirement),
					tuistyles.FormatCurrency(e.MonthlyIncome),
				})
				headers = append(headers, e.Name)
			}
			timeline := output.Table{Title: "ANNUAL INCOME", Headers: headers}
			for _, y := range res.Timeline {
				row := []string{fmt.Sprintf("%d", y.Year), tuistyles.FormatCompact(y.Combined)}
				for _, income := range y.Incomes {
					cell := "-"
					if income != nil {
						cell = tuistyles.FormatCompact(*income)
					}
					row = append(row, cell)
				}
				timeline.Rows = append(timeline.Rows, row)
			}
			r.Tables = append(r.Tables, earners, timeline)
			return a.render(cmd.OutOrStdout(), r)
		},
	}
}
