package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SensitivityParameter names an input swept by a sensitivity analysis.
type SensitivityParameter string

const (
	ParamWithdrawalRate       SensitivityParameter = "withdrawal_rate"
	ParamInflationRate        SensitivityParameter = "inflation_rate"
	ParamRetirementTaxRate    SensitivityParameter = "retirement_tax_rate"
	ParamRetirementGrowthRate SensitivityParameter = "retirement_growth_rate"
	ParamInvestmentFeeRate    SensitivityParameter = "investment_fee_rate"
	ParamAnnualSpendingTarget SensitivityParameter = "annual_spending_target"
	ParamReturnShift          SensitivityParameter = "return_shift"
	ParamDesiredRetirementAge SensitivityParameter = "desired_retirement_age"
)

// SensitivityParameters lists every parameter that can be swept.
var SensitivityParameters = []SensitivityParameter{
	ParamWithdrawalRate,
	ParamInflationRate,
	ParamRetirementTaxRate,
	ParamRetirementGrowthRate,
	ParamInvestmentFeeRate,
	ParamAnnualSpendingTarget,
	ParamReturnShift,
	ParamDesiredRetirementAge,
}

// Override builds the scenario override that sets the parameter to value.
func (p SensitivityParameter) Override(value decimal.Decimal) (ScenarioOverride, error) {
	v := value
	so := ScenarioOverride{Name: fmt.Sprintf("%s=%s", p, value.String())}
	switch p {
	case ParamWithdrawalRate:
		so.WithdrawalRate = &v
	case ParamInflationRate:
		so.InflationRate = &v
	case ParamRetirementTaxRate:
		so.RetirementTaxRate = &v
	case ParamRetirementGrowthRate:
		so.RetirementGrowthRate = &v
	case ParamInvestmentFeeRate:
		so.InvestmentFeeRate = &v
	case ParamAnnualSpendingTarget:
		so.AnnualSpendingTarget = &v
	case ParamReturnShift:
		so.ReturnShift = &v
	case ParamDesiredRetirementAge:
		if !value.IsInteger() {
			return ScenarioOverride{}, fmt.Errorf("desired retirement age must be a whole number, got %s", value)
		}
		age := int(value.IntPart())
		so.DesiredRetirementAge = &age
	default:
		return ScenarioOverride{}, fmt.Errorf("unknown sensitivity parameter %q", p)
	}
	return so, nil
}

// SensitivityPoint is the headline outcome for one swept value.
type SensitivityPoint struct {
	Value                    decimal.Decimal `json:"value"`
	RetirementYear           int             `json:"retirement_year"`
	RetirementAge            int             `json:"retirement_age"`
	Feasible                 bool            `json:"feasible"`
	PortfolioAtRetirement    decimal.Decimal `json:"portfolio_at_retirement"`
	AnnualIncomeAtRetirement decimal.Decimal `json:"annual_income_at_retirement"`
}

// SensitivityReport collects the sweep of a single parameter.
type SensitivityReport struct {
	Parameter SensitivityParameter `json:"parameter"`
	Points    []SensitivityPoint   `json:"points"`
	// AgeSpread is the difference between the latest and earliest feasible retirement ages.
	AgeSpread int `json:"age_spread"`
}
