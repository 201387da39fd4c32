package domain

import (
	"github.com/shopspring/decimal"
)

// AccountBalance is one account's end-of-year balance.
type AccountBalance struct {
	AccountID string          `json:"account_id"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
}

// YearProjection is the end-of-year state of a single simulated year.
type YearProjection struct {
	Year                      int              `json:"year"`
	Age                       int              `json:"age"`
	PortfolioValue            decimal.Decimal  `json:"portfolio_value"`
	GrossWithdrawal           decimal.Decimal  `json:"gross_withdrawal"`
	Benefits                  decimal.Decimal  `json:"benefits"`
	AfterTaxIncome            decimal.Decimal  `json:"after_tax_income"`
	InflationAdjustedSpending decimal.Decimal  `json:"inflation_adjusted_spending"`
	CanRetire                 bool             `json:"can_retire"`
	IsRetired                 bool             `json:"is_retired"`
	AccountBalances           []AccountBalance `json:"account_balances"`
}

// Surplus returns after-tax income minus spending; negative values are a gap.
func (yp *YearProjection) Surplus() decimal.Decimal {
	return yp.AfterTaxIncome.Sub(yp.InflationAdjustedSpending)
}

// RetirementResult is the outcome of one projection run.
type RetirementResult struct {
	StartYear                  int             `json:"start_year"`
	RetirementYear             int             `json:"retirement_year"`
	RetirementAge              int             `json:"retirement_age"`
	YearsToRetirement          int             `json:"years_to_retirement"`
	PortfolioAtRetirement      decimal.Decimal `json:"portfolio_at_retirement"`
	AnnualIncomeAtRetirement   decimal.Decimal `json:"annual_income_at_retirement"`
	TargetSpendingAtRetirement decimal.Decimal `json:"target_spending_at_retirement"`
	// FundedRatio is income over target spending at retirement (1 = exactly covered).
	// A zero spending target reports 1.
	FundedRatio decimal.Decimal `json:"funded_ratio"`
	// Feasible is false when income does not cover spending in the retirement year,
	// including the case where no year in the horizon is affordable.
	Feasible bool `json:"feasible"`
	// Shortfall is the uncovered spending in the retirement year, zero when feasible.
	Shortfall decimal.Decimal `json:"shortfall"`
	// AutoDetermined is true when the retirement year came from the readiness scan.
	AutoDetermined        bool             `json:"auto_determined"`
	YearByYearProjections []YearProjection `json:"year_by_year_projections"`
	Assumptions           []string         `json:"assumptions"`
}

// ProjectionFor returns the row for a calendar year, if simulated.
func (r *RetirementResult) ProjectionFor(year int) (YearProjection, bool) {
	idx := year - r.StartYear
	if idx < 0 || idx >= len(r.YearByYearProjections) {
		return YearProjection{}, false
	}
	return r.YearByYearProjections[idx], true
}

// FirstDepletedYear returns the first retired year with an empty portfolio.
func (r *RetirementResult) FirstDepletedYear() (int, bool) {
	for _, yp := range r.YearByYearProjections {
		if yp.IsRetired && yp.PortfolioValue.LessThanOrEqual(decimal.Zero) {
			return yp.Year, true
		}
	}
	return 0, false
}

// ScenarioResult pairs a scenario name with its projection.
type ScenarioResult struct {
	Name   string            `json:"name"`
	Result *RetirementResult `json:"result"`
}

// ScenarioComparison holds the projections of several scenarios over the same accounts.
type ScenarioComparison struct {
	Scenarios   []ScenarioResult `json:"scenarios"`
	Assumptions []string         `json:"assumptions"`
}

// Earliest returns the feasible scenario retiring soonest, or false when none is feasible.
func (sc *ScenarioComparison) Earliest() (ScenarioResult, bool) {
	var best ScenarioResult
	found := false
	for _, s := range sc.Scenarios {
		if s.Result == nil || !s.Result.Feasible {
			continue
		}
		if !found || s.Result.RetirementAge < best.Result.RetirementAge {
			best = s
			found = true
		}
	}
	return best, found
}
