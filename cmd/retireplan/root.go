package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rpgo/retireplan/internal/calculation"
	"github.com/rpgo/retireplan/internal/config"
	"github.com/rpgo/retireplan/internal/domain"
)

// app carries state shared by every subcommand.
type app struct {
	verbose bool
	debug   bool
	fixture string
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "retireplan",
		Short: "Project the earliest sustainable retirement year",
		Long: `retireplan simulates savings accounts year by year and finds the first year in
which withdrawals and benefits, after tax, cover inflation-adjusted spending.

Plans are YAML or JSON files; see "retireplan example" for a starting point.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := zap.NewProductionConfig()
			cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if a.verbose {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := cfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newProjectCmd(a),
		newCompareCmd(a),
		newSensitivityCmd(a),
		newValidateCmd(a),
		newExampleCmd(),
		newServeCmd(a),
	)
	return root
}

func (a *app) engine() *calculation.CalculationEngine {
	return calculation.NewCalculationEngine(
		calculation.WithLogger(a.logger.Sugar()),
		calculation.WithDebug(a.debug),
	)
}

// loadPlan reads the plan named by args[0], or the --fixture plan when no file is given.
func (a *app) loadPlan(args []string) (*domain.Plan, error) {
	if len(args) > 0 {
		plan, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return nil, err
		}
		a.logger.Debug("plan loaded", zap.String("file", args[0]), zap.Int("accounts", len(plan.Accounts)), zap.Int("scenarios", len(plan.Scenarios)))
		return plan, nil
	}
	if a.fixture == "" {
		return nil, fmt.Errorf("a plan file or --fixture is required")
	}
	plan, ok := config.Fixture(a.fixture)
	if !ok {
		return nil, fmt.Errorf("unknown fixture %q (use example or near-retirement)", a.fixture)
	}
	return plan, nil
}

func (a *app) addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&a.fixture, "fixture", "", "use a built-in plan instead of a file (example, near-retirement)")
	cmd.Flags().BoolVar(&a.debug, "debug", false, "log every simulated year (with --verbose)")
}
