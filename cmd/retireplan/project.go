package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rpgo/retireplan/internal/config"
	"github.com/rpgo/retireplan/internal/domain"
	"github.com/rpgo/retireplan/internal/output"
)

type renderFlags struct {
	format string
	output string
}

func (rf *renderFlags) add(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&rf.format, "format", "f", "console", "output format: "+strings.Join(output.AvailableFormatterNames(), ", "))
	cmd.Flags().StringVarP(&rf.output, "output", "o", "", "write the report to this file instead of stdout")
}

func (rf *renderFlags) write(w io.Writer, results *domain.ScenarioComparison) error {
	f := output.GetFormatterByName(rf.format)
	if f == nil {
		_, err := output.Render(results, rf.format)
		return err
	}
	if rf.output != "" {
		path, err := output.WriteFormatted(f, results, rf.output)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Report written to %s\n", path)
		return nil
	}
	data, err := f.Format(results)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func newProjectCmd(a *app) *cobra.Command {
	var rf renderFlags
	var watch bool
	cmd := &cobra.Command{
		Use:   "project [plan-file]",
		Short: "Project the baseline plan year by year",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run := func() error {
				plan, err := a.loadPlan(args)
				if err != nil {
					return err
				}
				res, err := a.engine().Calculate(plan.Assumptions, plan.Accounts)
				if err != nil {
					return err
				}
				return rf.write(cmd.OutOrStdout(), output.SingleResult(plan.Name, res))
			}
			if err := run(); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("--watch needs a plan file")
			}
			return a.watch(cmd.Context(), args[0], cmd.ErrOrStderr(), run)
		},
	}
	rf.add(cmd)
	a.addInputFlags(cmd)
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-run whenever the plan file changes")
	return cmd
}

// watch re-runs fn after every change to file until ctx is cancelled.
// Failures are reported and watching continues.
func (a *app) watch(ctx context.Context, file string, errOut io.Writer, fn func() error) error {
	fw, err := config.NewFileWatcher(file)
	if err != nil {
		return err
	}
	fmt.Fprintf(errOut, "Watching %s for changes (Ctrl+C to stop)\n", file)
	return fw.Run(ctx, func() {
		a.logger.Debug("plan changed", zap.String("file", file))
		if err := fn(); err != nil {
			fmt.Fprintln(errOut, "Error:", err)
		}
	})
}

func newCompareCmd(a *app) *cobra.Command {
	var rf renderFlags
	cmd := &cobra.Command{
		Use:   "compare [plan-file]",
		Short: "Compare the baseline with every scenario in the plan",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := a.loadPlan(args)
			if err != nil {
				return err
			}
			results, err := a.engine().CompareScenarios(cmd.Context(), plan)
			if err != nil {
				return err
			}
			return rf.write(cmd.OutOrStdout(), results)
		},
	}
	rf.add(cmd)
	a.addInputFlags(cmd)
	return cmd
}

func newSensitivityCmd(a *app) *cobra.Command {
	var (
		format string
		param  string
		values []string
	)
	cmd := &cobra.Command{
		Use:   "sensitivity [plan-file]",
		Short: "Sweep one assumption and show how the retirement year moves",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := a.loadPlan(args)
			if err != nil {
				return err
			}
			vals, err := parseValues(values)
			if err != nil {
				return err
			}
			report, err := a.engine().RunSensitivity(cmd.Context(), plan.Assumptions, plan.Accounts, domain.SensitivityParameter(param), vals)
			if err != nil {
				return err
			}
			data, err := output.RenderSensitivity(report, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format: console, json, csv")
	cmd.Flags().StringVar(&param, "param", string(domain.ParamWithdrawalRate), "parameter to sweep")
	cmd.Flags().StringSliceVar(&values, "values", []string{"0.03", "0.035", "0.04", "0.045", "0.05"}, "comma-separated values to try")
	a.addInputFlags(cmd)
	return cmd
}

func parseValues(raw []string) ([]decimal.Decimal, error) {
	vals := make([]decimal.Decimal, 0, len(raw))
	for _, r := range raw {
		d, err := decimal.NewFromString(strings.TrimSpace(r))
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", r, err)
		}
		vals = append(vals, d)
	}
	return vals, nil
}
