package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/finplan/internal/tui/tuistyles"
)

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [household.yaml]",
		Short: "Validate a household file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.loadHousehold(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ %s is valid\n", args[0])
			fmt.Fprintf(out, "  Household:   %s\n", h.Name)
			fmt.Fprintf(out, "  Assets:      %d (%s)\n", len(h.Assets), tuistyles.FormatCurrency(h.TotalAssets()))
			fmt.Fprintf(out, "  Liabilities: %d (%s)\n", len(h.Liabilities), tuistyles.FormatCurrency(h.TotalLiabilities()))
			fmt.Fprintf(out, "  Goals:       %d\n", len(h.Goals))
			fmt.Fprintf(out, "  Members:     %d\n", len(h.FamilyMembers))
			return nil
		},
	}
}
