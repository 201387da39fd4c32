package config

import (
	"github.com/shopspring/decimal"

	"github.com/rpgo/retireplan/internal/domain"
)

// FixtureStartYear anchors the fixtures so their event years stay meaningful.
const FixtureStartYear = 2026

func intPtr(v int) *int { return &v }

func decPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

// MockAssumptions is a mid-career saver: 35 years old, $75k/yr spending target.
func MockAssumptions() domain.Assumptions {
	return domain.Assumptions{
		CurrentAge:           35,
		AnnualSpendingTarget: decimal.NewFromInt(75000),
		InflationRate:        decimal.NewFromFloat(0.03),
		RetirementTaxRate:    decimal.NewFromFloat(0.22),
		WithdrawalRate:       decimal.NewFromFloat(0.04),
		RetirementGrowthRate: decimal.NewFromFloat(0.05),
		InvestmentFeeRate:    decimal.NewFromFloat(0.005),
		StartYear:            FixtureStartYear,
	}
}

// MockAccounts pairs with MockAssumptions.
func MockAccounts() []domain.Account {
	return []domain.Account{
		domain.BalanceAccount{
			ID:               "acct-401k",
			Name:             "Employer 401(k)",
			Type:             domain.AccountTraditional401k,
			CurrentBalance:   decimal.NewFromInt(125000),
			AnnualReturnRate: decimal.NewFromFloat(0.07),
			Contributions: &domain.ContributionSchedule{
				Amount:      decimal.NewFromInt(1500),
				Frequency:   domain.FrequencyMonthly,
				GrowthType:  domain.GrowthPercentage,
				GrowthValue: decimal.NewFromFloat(0.03),
			},
		},
		domain.BalanceAccount{
			ID:               "acct-roth",
			Name:             "Roth IRA",
			Type:             domain.AccountRothIRA,
			CurrentBalance:   decimal.NewFromInt(45000),
			AnnualReturnRate: decimal.NewFromFloat(0.07),
			Contributions: &domain.ContributionSchedule{
				Amount:     decimal.NewFromInt(500),
				Frequency:  domain.FrequencyMonthly,
				GrowthType: domain.GrowthNone,
			},
		},
		domain.BalanceAccount{
			ID:               "acct-brokerage",
			Name:             "Taxable Brokerage",
			Type:             domain.AccountTaxableBrokerage,
			CurrentBalance:   decimal.NewFromInt(32000),
			AnnualReturnRate: decimal.NewFromFloat(0.06),
			Contributions: &domain.ContributionSchedule{
				Amount:     decimal.NewFromInt(300),
				Frequency:  domain.FrequencyMonthly,
				GrowthType: domain.GrowthNone,
			},
			Events: []domain.OneTimeEvent{
				{Year: 2030, Amount: decimal.NewFromInt(-25000), Description: "Home down payment"},
				{Year: 2040, Amount: decimal.NewFromInt(50000), IsInflationAdjusted: true, Description: "Inheritance"},
			},
		},
		domain.BenefitAccount{
			ID:              "acct-ss",
			Name:            "Social Security",
			Type:            domain.AccountSocialSecurity,
			AnnualBenefit:   decimal.NewFromInt(28000),
			BenefitStartAge: 67,
		},
	}
}

// NearRetirementAssumptions is a 58-year-old with a $60k/yr spending target.
func NearRetirementAssumptions() domain.Assumptions {
	a := MockAssumptions()
	a.CurrentAge = 58
	a.AnnualSpendingTarget = decimal.NewFromInt(60000)
	return a
}

// MockAccountsNearRetirement holds roughly $1.25M across three accounts plus Social Security.
func MockAccountsNearRetirement() []domain.Account {
	return []domain.Account{
		domain.BalanceAccount{
			ID:               "acct-401k",
			Name:             "Employer 401(k)",
			Type:             domain.AccountTraditional401k,
			CurrentBalance:   decimal.NewFromInt(850000),
			AnnualReturnRate: decimal.NewFromFloat(0.06),
			Contributions: &domain.ContributionSchedule{
				Amount:     decimal.NewFromInt(2000),
				Frequency:  domain.FrequencyMonthly,
				GrowthType: domain.GrowthNone,
			},
		},
		domain.BalanceAccount{
			ID:               "acct-roth",
			Name:             "Roth IRA",
			Type:             domain.AccountRothIRA,
			CurrentBalance:   decimal.NewFromInt(250000),
			AnnualReturnRate: decimal.NewFromFloat(0.06),
		},
		domain.BalanceAccount{
			ID:               "acct-brokerage",
			Name:             "Taxable Brokerage",
			Type:             domain.AccountTaxableBrokerage,
			CurrentBalance:   decimal.NewFromInt(150000),
			AnnualReturnRate: decimal.NewFromFloat(0.05),
		},
		domain.BenefitAccount{
			ID:              "acct-ss",
			Name:            "Social Security",
			Type:            domain.AccountSocialSecurity,
			AnnualBenefit:   decimal.NewFromInt(32000),
			BenefitStartAge: 67,
		},
	}
}

// ExamplePlan is the mock fixture with a few what-if scenarios attached.
func ExamplePlan() *domain.Plan {
	return &domain.Plan{
		Name:        "Mid-career saver",
		Assumptions: MockAssumptions(),
		Accounts:    MockAccounts(),
		Scenarios: []domain.ScenarioOverride{
			{Name: "Retire at 60", DesiredRetirementAge: intPtr(60)},
			{Name: "Lean spending", AnnualSpendingTarget: decPtr(60000)},
			{Name: "Conservative withdrawals", WithdrawalRate: decPtr(0.035)},
		},
	}
}

// NearRetirementPlan is the near-retirement fixture.
func NearRetirementPlan() *domain.Plan {
	return &domain.Plan{
		Name:        "Near retirement",
		Assumptions: NearRetirementAssumptions(),
		Accounts:    MockAccountsNearRetirement(),
		Scenarios: []domain.ScenarioOverride{
			{Name: "Retire now", DesiredRetirementAge: intPtr(58)},
			{Name: "Retire at 62", DesiredRetirementAge: intPtr(62)},
		},
	}
}

// Fixture returns a named fixture plan.
func Fixture(name string) (*domain.Plan, bool) {
	switch name {
	case "mock", "example":
		return ExamplePlan(), true
	case "near-retirement", "near":
		return NearRetirementPlan(), true
	}
	return nil, false
}
