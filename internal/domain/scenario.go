package domain

import (
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Plan is a complete projection input: baseline assumptions, accounts and optional what-if scenarios.
type Plan struct {
	Name        string
	Assumptions Assumptions
	Accounts    []Account
	Scenarios   []ScenarioOverride
}

// ScenarioOverride replaces selected baseline assumptions for a what-if run.
// Nil fields keep the baseline value.
type ScenarioOverride struct {
	Name                 string           `yaml:"name" json:"name"`
	DesiredRetirementAge *int             `yaml:"desired_retirement_age,omitempty" json:"desired_retirement_age,omitempty"`
	AutoRetirement       bool             `yaml:"auto_retirement,omitempty" json:"auto_retirement,omitempty"`
	AnnualSpendingTarget *decimal.Decimal `yaml:"annual_spending_target,omitempty" json:"annual_spending_target,omitempty"`
	InflationRate        *decimal.Decimal `yaml:"inflation_rate,omitempty" json:"inflation_rate,omitempty"`
	RetirementTaxRate    *decimal.Decimal `yaml:"retirement_tax_rate,omitempty" json:"retirement_tax_rate,omitempty"`
	WithdrawalRate       *decimal.Decimal `yaml:"withdrawal_rate,omitempty" json:"withdrawal_rate,omitempty"`
	RetirementGrowthRate *decimal.Decimal `yaml:"retirement_growth_rate,omitempty" json:"retirement_growth_rate,omitempty"`
	InvestmentFeeRate    *decimal.Decimal `yaml:"investment_fee_rate,omitempty" json:"investment_fee_rate,omitempty"`
	// ReturnShift is added to every balance account's annual return rate.
	ReturnShift *decimal.Decimal `yaml:"return_shift,omitempty" json:"return_shift,omitempty"`
}

// UnmarshalYAML implements custom YAML unmarshaling for ScenarioOverride
func (so *ScenarioOverride) UnmarshalYAML(value *yaml.Node) error {
	type Alias struct {
		Name                 string  `yaml:"name"`
		DesiredRetirementAge *int    `yaml:"desired_retirement_age,omitempty"`
		AutoRetirement       bool    `yaml:"auto_retirement,omitempty"`
		AnnualSpendingTarget *string `yaml:"annual_spending_target,omitempty"`
		InflationRate        *string `yaml:"inflation_rate,omitempty"`
		RetirementTaxRate    *string `yaml:"retirement_tax_rate,omitempty"`
		WithdrawalRate       *string `yaml:"withdrawal_rate,omitempty"`
		RetirementGrowthRate *string `yaml:"retirement_growth_rate,omitempty"`
		InvestmentFeeRate    *string `yaml:"investment_fee_rate,omitempty"`
		ReturnShift          *string `yaml:"return_shift,omitempty"`
	}

	var aux Alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	so.Name = aux.Name
	so.DesiredRetirementAge = aux.DesiredRetirementAge
	so.AutoRetirement = aux.AutoRetirement

	fields := []struct {
		src *string
		dst **decimal.Decimal
	}{
		{aux.AnnualSpendingTarget, &so.AnnualSpendingTarget},
		{aux.InflationRate, &so.InflationRate},
		{aux.RetirementTaxRate, &so.RetirementTaxRate},
		{aux.WithdrawalRate, &so.WithdrawalRate},
		{aux.RetirementGrowthRate, &so.RetirementGrowthRate},
		{aux.InvestmentFeeRate, &so.InvestmentFeeRate},
		{aux.ReturnShift, &so.ReturnShift},
	}
	for _, f := range fields {
		if f.src == nil {
			continue
		}
		val, err := decimal.NewFromString(*f.src)
		if err != nil {
			return err
		}
		*f.dst = &val
	}

	return nil
}

// Apply returns copies of the assumptions and accounts with the override in effect.
// The inputs are left untouched.
func (so ScenarioOverride) Apply(base Assumptions, accounts []Account) (Assumptions, []Account) {
	a := base.Clone()
	if so.AutoRetirement {
		a.DesiredRetirementAge = nil
	}
	if so.DesiredRetirementAge != nil {
		age := *so.DesiredRetirementAge
		a.DesiredRetirementAge = &age
	}
	set := func(dst *decimal.Decimal, src *decimal.Decimal) {
		if src != nil {
			*dst = *src
		}
	}
	set(&a.AnnualSpendingTarget, so.AnnualSpendingTarget)
	set(&a.InflationRate, so.InflationRate)
	set(&a.RetirementTaxRate, so.RetirementTaxRate)
	set(&a.WithdrawalRate, so.WithdrawalRate)
	set(&a.RetirementGrowthRate, so.RetirementGrowthRate)
	set(&a.InvestmentFeeRate, so.InvestmentFeeRate)

	out := make([]Account, len(accounts))
	for i, acct := range accounts {
		switch v := Concrete(acct).(type) {
		case BalanceAccount:
			if so.ReturnShift != nil {
				v.AnnualReturnRate = v.AnnualReturnRate.Add(*so.ReturnShift)
			}
			out[i] = v
		default:
			out[i] = v
		}
	}
	return a, out
}
