package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/retireplan/internal/config"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <plan-file>",
		Short: "Check a plan file without running a projection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := a.loadPlan(args)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration is valid: %d account(s), %d scenario(s)\n", len(plan.Accounts), len(plan.Scenarios))
			return nil
		},
	}
}

func newExampleCmd() *cobra.Command {
	var fixture string
	cmd := &cobra.Command{
		Use:   "example [output-file]",
		Short: "Print or save an example plan file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, ok := config.Fixture(fixture)
			if !ok {
				return fmt.Errorf("unknown fixture %q (use example or near-retirement)", fixture)
			}
			if len(args) == 1 {
				if err := config.SavePlan(plan, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Example plan written to %s\n", args[0])
				return nil
			}
			data, err := config.EncodePlan(plan, config.FormatYAML)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&fixture, "fixture", "example", "which built-in plan to print (example, near-retirement)")
	return cmd
}
