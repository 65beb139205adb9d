package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/rgehrsitz/finplan/internal/compare"
	"github.com/rgehrsitz/finplan/internal/config"
	"github.com/rgehrsitz/finplan/internal/transform"
)

func compareCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [household.yaml]",
		Short: "Compare what-if scenarios against the household as it stands",
		Long: "Applies scenario templates (--with) or ad-hoc transforms (--transform) to the household and\n" +
			"compares retirement corpus, goal coverage and final net worth against the base plan.",
		Example: "  finplan compare household.yaml --with retire_late_3,return_minus_2\n" +
			"  finplan compare household.yaml --transform adjust_expenses:percent=-15,redirect=true\n" +
			"  finplan compare --list-templates",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := compare.NewCompareEngine(a.engine)

			if list, _ := cmd.Flags().GetBool("list-templates"); list {
				fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(engine.TemplateRegistry))
				fmt.Fprintf(cmd.OutOrStdout(), "\nTransforms: %s\n", strings.Join(transform.NewTransformRegistry().List(), ", "))
				return nil
			}
			if len(args) != 1 {
				return fmt.Errorf("household file is required")
			}

			templatesStr, _ := cmd.Flags().GetString("with")
			specs, _ := cmd.Flags().GetStringArray("transform")
			baseReturn, _ := cmd.Flags().GetFloat64("base-return")
			if templatesStr == "" && len(specs) == 0 {
				return fmt.Errorf("at least one --with template or --transform is required (see --list-templates)")
			}

			h, err := a.loadHousehold(args[0])
			if err != nil {
				return err
			}

			var scenarios []compare.Scenario
			for _, name := range transform.ParseTemplateList(templatesStr) {
				t, ok := engine.TemplateRegistry.Get(name)
				if !ok {
					return fmt.Errorf("template %s not found (available: %s)", name,
						strings.Join(engine.TemplateRegistry.List(), ", "))
				}
				scenarios = append(scenarios, compare.Scenario{Name: t.Name, Description: t.Description, Transforms: t.Transforms})
			}
			if len(specs) > 0 {
				registry := transform.NewTransformRegistry()
				var transforms []transform.HouseholdTransform
				var names []string
				for _, spec := range specs {
					t, err := registry.ParseTransformSpec(spec)
					if err != nil {
						return fmt.Errorf("invalid transform %q: %w", spec, err)
					}
					transforms = append(transforms, t)
					names = append(names, t.Description())
				}
				name, _ := cmd.Flags().GetString("name")
				scenarios = append(scenarios, compare.Scenario{
					Name:        name,
					Description: strings.Join(names, "; "),
					Transforms:  transforms,
				})
			}

			set, err := engine.CompareScenarios(cmd.Context(), h, scenarios, compare.CompareOptions{
				BaseReturnPct: baseReturn,
				Now:           a.now,
				Timing:        a.engine.Timing,
				HouseholdPath: args[0],
			})
			if err != nil {
				return err
			}
			a.logger.Info("comparison complete", zap.String("op", "compare"),
				zap.String("id", set.ID), zap.Int("scenarios", len(set.AlternativeResults)))

			text, err := formatComparison(set, a.settings)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().String("with", "", "Comma-separated scenario templates")
	cmd.Flags().StringArray("transform", nil, "Transform spec name:key=value,... (repeatable, combined into one scenario)")
	cmd.Flags().String("name", "custom", "Scenario name for --transform")
	cmd.Flags().Float64("base-return", 0, "Override the base pre-retirement return (%)")
	cmd.Flags().Bool("list-templates", false, "List available templates and transforms")
	return cmd
}

// formatComparison renders a comparison in the configured output format
func formatComparison(set *compare.ComparisonSet, settings *config.Settings) (string, error) {
	switch strings.ToLower(settings.Output.Format) {
	case "json":
		return (&compare.JSONFormatter{Pretty: true}).Format(set)
	case "csv":
		return (&compare.CSVFormatter{}).Format(set)
	case "yaml", "yml":
		raw, err := json.Marshal(set)
		if err != nil {
			return "", err
		}
		var generic interface{}
		if err := json.Unmarshal(raw, &generic); err != nil {
			return "", err
		}
		out, err := yaml.Marshal(generic)
		return strings.TrimRight(string(out), "\n"), err
	case "plain", "text":
		return (&compare.TableFormatter{Plain: true}).Format(set), nil
	default:
		return (&compare.TableFormatter{}).Format(set), nil
	}
}
