package calculation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/rpgo/retireplan/internal/domain"
)

// RunSensitivity sweeps one parameter over values and reports the headline outcome of each run.
func (ce *CalculationEngine) RunSensitivity(ctx context.Context, assumptions domain.Assumptions, accounts []domain.Account, param domain.SensitivityParameter, values []decimal.Decimal) (*domain.SensitivityReport, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: sensitivity sweep needs at least one value", ErrInvalidInput)
	}
	if err := Validate(assumptions, accounts); err != nil {
		return nil, err
	}
	overrides := make([]domain.ScenarioOverride, len(values))
	for i, v := range values {
		so, err := param.Override(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		overrides[i] = so
	}

	points := make([]domain.SensitivityPoint, len(values))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(DefaultParallelism)
	for i, so := range overrides {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			a, accts := so.Apply(assumptions, accounts)
			res, err := ce.Calculate(a, accts)
			if err != nil {
				return fmt.Errorf("%s: %w", so.Name, err)
			}
			points[i] = domain.SensitivityPoint{
				Value:                    values[i],
				RetirementYear:           res.RetirementYear,
				RetirementAge:            res.RetirementAge,
				Feasible:                 res.Feasible,
				PortfolioAtRetirement:    res.PortfolioAtRetirement,
				AnnualIncomeAtRetirement: res.AnnualIncomeAtRetirement,
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return &domain.SensitivityReport{
		Parameter: param,
		Points:    points,
		AgeSpread: ageSpread(points),
	}, nil
}

func ageSpread(points []domain.SensitivityPoint) int {
	lo, hi := 0, 0
	found := false
	for _, p := range points {
		if !p.Feasible {
			continue
		}
		if !found {
			lo, hi, found = p.RetirementAge, p.RetirementAge, true
			continue
		}
		lo = min(lo, p.RetirementAge)
		hi = max(hi, p.RetirementAge)
	}
	return hi - lo
}
