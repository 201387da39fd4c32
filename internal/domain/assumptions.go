package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// DefaultHorizonAge is the terminal age of a projection when none is configured.
	DefaultHorizonAge = 100
	// DesiredAgeBuffer is the minimum number of years simulated past a fixed retirement age.
	DesiredAgeBuffer = 5
	// MaxAge bounds every age input.
	MaxAge = 120
)

// Assumptions contains the scalar parameters of one projection run.
// Rates are annual decimals (0.03 = 3%).
type Assumptions struct {
	CurrentAge           int             `yaml:"current_age" json:"current_age"`
	DesiredRetirementAge *int            `yaml:"desired_retirement_age,omitempty" json:"desired_retirement_age,omitempty"`
	AnnualSpendingTarget decimal.Decimal `yaml:"annual_spending_target" json:"annual_spending_target"`
	InflationRate        decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate"`
	RetirementTaxRate    decimal.Decimal `yaml:"retirement_tax_rate" json:"retirement_tax_rate"`
	WithdrawalRate       decimal.Decimal `yaml:"withdrawal_rate" json:"withdrawal_rate"`
	RetirementGrowthRate decimal.Decimal `yaml:"retirement_growth_rate" json:"retirement_growth_rate"`
	InvestmentFeeRate    decimal.Decimal `yaml:"investment_fee_rate" json:"investment_fee_rate"`

	// StartYear is the calendar year in which the owner is CurrentAge. Zero means the current year.
	StartYear int `yaml:"start_year,omitempty" json:"start_year,omitempty"`
	// HorizonAge is the last simulated age. Zero means DefaultHorizonAge.
	HorizonAge int `yaml:"horizon_age,omitempty" json:"horizon_age,omitempty"`
}

// EffectiveHorizonAge returns the last simulated age, extended past a fixed retirement age when needed.
func (a Assumptions) EffectiveHorizonAge() int {
	horizon := a.HorizonAge
	if horizon == 0 {
		horizon = DefaultHorizonAge
	}
	if a.DesiredRetirementAge != nil && *a.DesiredRetirementAge+DesiredAgeBuffer > horizon {
		horizon = *a.DesiredRetirementAge + DesiredAgeBuffer
	}
	return horizon
}

// Clone returns a copy that shares no pointers with a.
func (a Assumptions) Clone() Assumptions {
	c := a
	if a.DesiredRetirementAge != nil {
		age := *a.DesiredRetirementAge
		c.DesiredRetirementAge = &age
	}
	return c
}

// GenerateAssumptions renders the assumption list shown alongside reports.
func (a Assumptions) GenerateAssumptions() []string {
	pct := func(d decimal.Decimal) float64 { return d.Mul(decimal.NewFromInt(100)).InexactFloat64() }
	retirement := "Retirement age: first year after-tax income covers spending"
	if a.DesiredRetirementAge != nil {
		retirement = fmt.Sprintf("Retirement age: fixed at %d", *a.DesiredRetirementAge)
	}
	return []string{
		retirement,
		fmt.Sprintf("Inflation: %.1f%% annually", pct(a.InflationRate)),
		fmt.Sprintf("Withdrawal rule: %.1f%% of portfolio per year", pct(a.WithdrawalRate)),
		fmt.Sprintf("Tax on withdrawals: %.1f%% flat", pct(a.RetirementTaxRate)),
		fmt.Sprintf("Post-retirement growth: %.1f%% annually", pct(a.RetirementGrowthRate)),
		fmt.Sprintf("Investment fees: %.2f%% annually", pct(a.InvestmentFeeRate)),
		"Benefits (e.g. Social Security) counted as already-net fixed income",
		"Simplified estimate; real tax treatment differs by account type",
	}
}
