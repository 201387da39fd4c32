package calculation

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rpgo/retireplan/internal/domain"
)

// BaselineScenarioName labels the unmodified plan in a comparison.
const BaselineScenarioName = "Baseline"

// DefaultParallelism bounds how many projections run at once.
const DefaultParallelism = 4

// CompareScenarios runs the baseline plan and every scenario override concurrently.
// Results keep the order baseline, then overrides as listed.
func (ce *CalculationEngine) CompareScenarios(ctx context.Context, plan *domain.Plan) (*domain.ScenarioComparison, error) {
	if plan == nil {
		return nil, fmt.Errorf("%w: plan is required", ErrInvalidInput)
	}
	if err := Validate(plan.Assumptions, plan.Accounts); err != nil {
		return nil, err
	}

	overrides := append([]domain.ScenarioOverride{{Name: BaselineScenarioName}}, plan.Scenarios...)
	results := make([]domain.ScenarioResult, len(overrides))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(DefaultParallelism)
	for i, so := range overrides {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			a, accts := so.Apply(plan.Assumptions, plan.Accounts)
			res, err := ce.Calculate(a, accts)
			if err != nil {
				return fmt.Errorf("scenario %q: %w", so.Name, err)
			}
			results[i] = domain.ScenarioResult{Name: so.Name, Result: res}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return &domain.ScenarioComparison{
		Scenarios:   results,
		Assumptions: plan.Assumptions.GenerateAssumptions(),
	}, nil
}
