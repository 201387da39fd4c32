package output

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rpgo/retireplan/internal/domain"
)

// Recommendation summarizes which scenario retires soonest.
type Recommendation struct {
	ScenarioName   string
	RetirementYear int
	RetirementAge  int
	// YearsVsBaseline is negative when the scenario retires before the first one.
	YearsVsBaseline int
	PortfolioDelta  decimal.Decimal
}

// AnalyzeScenarios picks the earliest feasible scenario and compares it with the first
// (baseline) scenario. It returns nil when no scenario can afford retirement.
func AnalyzeScenarios(results *domain.ScenarioComparison) *Recommendation {
	if results == nil || len(results.Scenarios) == 0 {
		return nil
	}
	best, ok := results.Earliest()
	base := results.Scenarios[0].Result
	if !ok || base == nil {
		return nil
	}
	return &Recommendation{
		ScenarioName:    best.Name,
		RetirementYear:  best.Result.RetirementYear,
		RetirementAge:   best.Result.RetirementAge,
		YearsVsBaseline: best.Result.RetirementYear - base.RetirementYear,
		PortfolioDelta:  best.Result.PortfolioAtRetirement.Sub(base.PortfolioAtRetirement),
	}
}

// Summary returns a single sentence describing the recommendation.
func (r *Recommendation) Summary() string {
	if r == nil {
		return "No scenario reaches a sustainable retirement within the projection horizon."
	}
	switch {
	case r.YearsVsBaseline < 0:
		return fmt.Sprintf("%s retires earliest: %d at age %d, %d year(s) before the baseline.", r.ScenarioName, r.RetirementYear, r.RetirementAge, -r.YearsVsBaseline)
	case r.YearsVsBaseline > 0:
		return fmt.Sprintf("%s is the earliest feasible option: %d at age %d, %d year(s) after the baseline.", r.ScenarioName, r.RetirementYear, r.RetirementAge, r.YearsVsBaseline)
	default:
		return fmt.Sprintf("%s retires earliest: %d at age %d.", r.ScenarioName, r.RetirementYear, r.RetirementAge)
	}
}
