package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func intPtr(v int) *int { return &v }

func TestFrequencyPeriodsPerYear(t *testing.T) {
	assert.Equal(t, 52, FrequencyWeekly.PeriodsPerYear())
	assert.Equal(t, 26, FrequencyBiweekly.PeriodsPerYear())
	assert.Equal(t, 24, FrequencySemiMonthly.PeriodsPerYear())
	assert.Equal(t, 12, FrequencyMonthly.PeriodsPerYear())
	assert.Equal(t, 4, FrequencyQuarterly.PeriodsPerYear())
	assert.Equal(t, 1, FrequencyAnnually.PeriodsPerYear())
	assert.Equal(t, 0, Frequency("DAILY").PeriodsPerYear())
}

func TestAccountTypeValid(t *testing.T) {
	assert.True(t, AccountRothIRA.Valid())
	assert.True(t, AccountSocialSecurity.Valid())
	assert.False(t, AccountType("CRYPTO").Valid())
	assert.True(t, GrowthType("").Valid())
	assert.False(t, GrowthType("EXPONENTIAL").Valid())
}

func TestStartingBalances(t *testing.T) {
	accounts := []Account{
		BalanceAccount{ID: "a", CurrentBalance: d("1000")},
		&BalanceAccount{ID: "b", CurrentBalance: d("250.50")},
		BenefitAccount{ID: "ss", AnnualBenefit: d("20000")},
	}
	assert.True(t, StartingBalance(accounts[2]).IsZero())
	assert.True(t, TotalStartingBalance(accounts).Equal(d("1250.50")))
	_, ok := Concrete(accounts[1]).(BalanceAccount)
	assert.True(t, ok)

	assert.Nil(t, Concrete((*BalanceAccount)(nil)))
	assert.Nil(t, Concrete((*BenefitAccount)(nil)))
}

func TestScenarioOverrideApplyKeepsNilAccounts(t *testing.T) {
	_, out := ScenarioOverride{Name: "x"}.Apply(Assumptions{}, []Account{(*BalanceAccount)(nil)})
	require.Len(t, out, 1)
	assert.Nil(t, out[0])
}

func TestEffectiveHorizonAge(t *testing.T) {
	a := Assumptions{CurrentAge: 40}
	assert.Equal(t, DefaultHorizonAge, a.EffectiveHorizonAge())
	a.HorizonAge = 90
	assert.Equal(t, 90, a.EffectiveHorizonAge())
	a.DesiredRetirementAge = intPtr(88)
	assert.Equal(t, 93, a.EffectiveHorizonAge())
}

func TestCloneDetachesDesiredAge(t *testing.T) {
	a := Assumptions{DesiredRetirementAge: intPtr(60)}
	c := a.Clone()
	*c.DesiredRetirementAge = 65
	assert.Equal(t, 60, *a.DesiredRetirementAge)
}

func TestGenerateAssumptions(t *testing.T) {
	a := Assumptions{InflationRate: d("0.03"), WithdrawalRate: d("0.04"), InvestmentFeeRate: d("0.005")}
	lines := a.GenerateAssumptions()
	assert.Contains(t, lines, "Inflation: 3.0% annually")
	assert.Contains(t, lines, "Withdrawal rule: 4.0% of portfolio per year")
	assert.Contains(t, lines, "Investment fees: 0.50% annually")
	assert.Contains(t, lines[0], "first year")

	a.DesiredRetirementAge = intPtr(62)
	assert.Equal(t, "Retirement age: fixed at 62", a.GenerateAssumptions()[0])
}

func TestScenarioOverrideApply(t *testing.T) {
	base := Assumptions{CurrentAge: 40, DesiredRetirementAge: intPtr(60), WithdrawalRate: d("0.04"), InflationRate: d("0.03")}
	accounts := []Account{
		BalanceAccount{ID: "a", AnnualReturnRate: d("0.07")},
		BenefitAccount{ID: "ss", AnnualBenefit: d("1000")},
	}
	shift := d("-0.01")
	rate := d("0.035")
	so := ScenarioOverride{Name: "x", AutoRetirement: true, WithdrawalRate: &rate, ReturnShift: &shift}

	a, accts := so.Apply(base, accounts)
	assert.Nil(t, a.DesiredRetirementAge)
	assert.True(t, a.WithdrawalRate.Equal(rate))
	assert.True(t, a.InflationRate.Equal(d("0.03")))
	assert.True(t, accts[0].(BalanceAccount).AnnualReturnRate.Equal(d("0.06")))
	assert.Equal(t, accounts[1], accts[1])

	// inputs untouched
	assert.Equal(t, 60, *base.DesiredRetirementAge)
	assert.True(t, base.WithdrawalRate.Equal(d("0.04")))
	assert.True(t, accounts[0].(BalanceAccount).AnnualReturnRate.Equal(d("0.07")))
}

func TestScenarioOverrideDesiredAgeIsCopied(t *testing.T) {
	age := 55
	so := ScenarioOverride{DesiredRetirementAge: &age}
	a, _ := so.Apply(Assumptions{}, nil)
	age = 70
	assert.Equal(t, 55, *a.DesiredRetirementAge)
}

func TestScenarioOverrideUnmarshalYAML(t *testing.T) {
	src := `
name: Lean
desired_retirement_age: 58
annual_spending_target: 60000
withdrawal_rate: "0.035"
return_shift: -0.01
`
	var so ScenarioOverride
	require.NoError(t, yaml.Unmarshal([]byte(src), &so))
	assert.Equal(t, "Lean", so.Name)
	assert.Equal(t, 58, *so.DesiredRetirementAge)
	assert.True(t, so.AnnualSpendingTarget.Equal(d("60000")))
	assert.True(t, so.WithdrawalRate.Equal(d("0.035")))
	assert.True(t, so.ReturnShift.Equal(d("-0.01")))
	assert.Nil(t, so.InflationRate)

	assert.Error(t, yaml.Unmarshal([]byte("withdrawal_rate: lots\n"), &so))
}

func TestSensitivityOverride(t *testing.T) {
	for _, p := range SensitivityParameters {
		_, err := p.Override(d("50"))
		assert.NoError(t, err, p)
	}
	so, err := ParamInflationRate.Override(d("0.02"))
	require.NoError(t, err)
	assert.True(t, so.InflationRate.Equal(d("0.02")))
	assert.Equal(t, "inflation_rate=0.02", so.Name)

	_, err = ParamDesiredRetirementAge.Override(d("60.5"))
	assert.Error(t, err)
	_, err = SensitivityParameter("luck").Override(d("1"))
	assert.Error(t, err)
}

func testRows() []YearProjection {
	return []YearProjection{
		{Year: 2026, Age: 60, PortfolioValue: d("1000"), AfterTaxIncome: d("40"), InflationAdjustedSpending: d("50")},
		{Year: 2027, Age: 61, PortfolioValue: d("500"), IsRetired: true},
		{Year: 2028, Age: 62, PortfolioValue: d("0"), IsRetired: true},
	}
}

func TestRetirementResultLookups(t *testing.T) {
	r := &RetirementResult{StartYear: 2026, YearByYearProjections: testRows()}
	row, ok := r.ProjectionFor(2027)
	require.True(t, ok)
	assert.Equal(t, 61, row.Age)
	_, ok = r.ProjectionFor(2030)
	assert.False(t, ok)
	_, ok = r.ProjectionFor(2025)
	assert.False(t, ok)

	year, ok := r.FirstDepletedYear()
	require.True(t, ok)
	assert.Equal(t, 2028, year)

	assert.True(t, r.YearByYearProjections[0].Surplus().Equal(d("-10")))
}

func TestScenarioComparisonEarliest(t *testing.T) {
	sc := &ScenarioComparison{Scenarios: []ScenarioResult{
		{Name: "Baseline", Result: &RetirementResult{RetirementAge: 65, Feasible: true}},
		{Name: "Early", Result: &RetirementResult{RetirementAge: 55, Feasible: false}},
		{Name: "Lean", Result: &RetirementResult{RetirementAge: 62, Feasible: true}},
		{Name: "Missing"},
	}}
	best, ok := sc.Earliest()
	require.True(t, ok)
	assert.Equal(t, "Lean", best.Name)

	_, ok = (&ScenarioComparison{}).Earliest()
	assert.False(t, ok)
}
