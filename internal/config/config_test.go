package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/retireplan/internal/calculation"
	"github.com/rpgo/retireplan/internal/domain"
)

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

const samplePlan = `
name: Sample
assumptions:
  current_age: 45
  annual_spending_target: 70000
  inflation_rate: 0.025
  retirement_tax_rate: 0.2
  withdrawal_rate: 0.04
  retirement_growth_rate: 0.05
  investment_fee_rate: 0.003
  start_year: 2026
accounts:
  - id: k401
    name: 401(k)
    account_type: TRADITIONAL_401K
    current_balance: 400000
    annual_return_rate: 0.065
    contributions:
      amount: 1000
      frequency: MONTHLY
      growth_type: PERCENTAGE
      growth_value: 0.02
      end_year: 2040
    events:
      - year: 2030
        amount: -20000
        description: Tuition
  - id: ss
    name: Social Security
    account_type: SOCIAL_SECURITY
    annual_benefit: 30000
    benefit_start_age: 67
scenarios:
  - name: Retire at 60
    desired_retirement_age: 60
  - name: Low inflation
    inflation_rate: 0.02
`

func TestParseYAML(t *testing.T) {
	plan, err := NewInputParser().Parse([]byte(samplePlan), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "Sample", plan.Name)
	assert.Equal(t, 45, plan.Assumptions.CurrentAge)
	assert.True(t, plan.Assumptions.InflationRate.Equal(decimal.RequireFromString("0.025")))
	require.Len(t, plan.Accounts, 2)

	k, ok := plan.Accounts[0].(domain.BalanceAccount)
	require.True(t, ok)
	assert.Equal(t, domain.FrequencyMonthly, k.Contributions.Frequency)
	assert.Equal(t, 2040, *k.Contributions.EndYear)
	assert.Nil(t, k.Contributions.StartYear)
	assert.Equal(t, "Tuition", k.Events[0].Description)

	ss, ok := plan.Accounts[1].(domain.BenefitAccount)
	require.True(t, ok)
	assert.Equal(t, 67, ss.BenefitStartAge)
	assert.True(t, ss.AnnualBenefit.Equal(decimal.NewFromInt(30000)))

	require.Len(t, plan.Scenarios, 2)
	assert.Equal(t, 60, *plan.Scenarios[0].DesiredRetirementAge)
	assert.True(t, plan.Scenarios[1].InflationRate.Equal(decimal.RequireFromString("0.02")))
}

func TestParseErrors(t *testing.T) {
	ip := NewInputParser()

	_, err := ip.Parse([]byte("assumptions: ["), FormatYAML)
	assert.ErrorContains(t, err, "failed to parse YAML")

	_, err = ip.Parse([]byte("{"), FormatJSON)
	assert.ErrorContains(t, err, "failed to parse JSON")

	_, err = ip.Parse([]byte("assumptions:\n  current_age: 40\naccounts: []\n"), FormatYAML)
	assert.ErrorIs(t, err, calculation.ErrInvalidInput)
	assert.ErrorContains(t, err, "configuration validation failed")
}

func TestMixedAccountFieldsRejected(t *testing.T) {
	doc := `
assumptions: {current_age: 40, withdrawal_rate: 0.04}
accounts:
  - id: ss
    account_type: SOCIAL_SECURITY
    annual_benefit: 20000
    current_balance: 1000
`
	_, err := NewInputParser().Parse([]byte(doc), FormatYAML)
	assert.True(t, errors.Is(err, ErrMixedAccountFields))

	age := 62
	_, err = AccountInput{ID: "x", BenefitStartAge: &age}.ToAccount()
	assert.ErrorContains(t, err, "benefit_start_age requires annual_benefit")
}

func TestValidatePlanScenarios(t *testing.T) {
	ip := NewInputParser()
	age := 60
	tests := []struct {
		name      string
		scenarios []domain.ScenarioOverride
		problem   string
	}{
		{"missing name", []domain.ScenarioOverride{{}}, "name is required"},
		{"baseline name", []domain.ScenarioOverride{{Name: calculation.BaselineScenarioName}}, "duplicate name"},
		{"duplicate", []domain.ScenarioOverride{{Name: "a"}, {Name: "a"}}, "duplicate name"},
		{"auto with age", []domain.ScenarioOverride{{Name: "a", AutoRetirement: true, DesiredRetirementAge: &age}}, "mutually exclusive"},
		{"bad rate", []domain.ScenarioOverride{{Name: "a", WithdrawalRate: ptr(decimal.NewFromInt(2))}}, "withdrawal rate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := ExamplePlan()
			plan.Scenarios = tt.scenarios
			err := ip.ValidatePlan(plan)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.problem)
		})
	}
	assert.NoError(t, ip.ValidatePlan(ExamplePlan()))
	assert.NoError(t, ip.ValidatePlan(NearRetirementPlan()))
}

func ptr[T any](v T) *T { return &v }

func TestSaveAndLoadRoundTrip(t *testing.T) {
	for _, name := range []string{"plan.yaml", "plan.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			original := ExamplePlan()
			require.NoError(t, SavePlan(original, path))

			loaded, err := NewInputParser().LoadFromFile(path)
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(original, loaded, decimalEqual))
		})
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := NewInputParser().LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to read file")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFormatForFile(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatForFile("a/b.JSON"))
	assert.Equal(t, FormatYAML, FormatForFile("plan.yml"))
	assert.Equal(t, FormatYAML, FormatForFile("plan"))
}

func TestFixtures(t *testing.T) {
	for _, name := range []string{"example", "mock", "near", "near-retirement"} {
		plan, ok := Fixture(name)
		require.True(t, ok, name)
		assert.NotEmpty(t, plan.Accounts)
	}
	_, ok := Fixture("unknown")
	assert.False(t, ok)
	assert.True(t, domain.TotalStartingBalance(MockAccounts()).Equal(decimal.NewFromInt(202000)))
}

func TestFileWatcherDebouncesWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0644))

	fw, err := NewFileWatcher(path)
	require.NoError(t, err)
	fw.Debounce = 50 * time.Millisecond

	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- fw.Run(ctx, func() { calls.Add(1) }) }()

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("abc"), 0644))
	}
	// unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.yaml"), []byte("x"), 0644))

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	cancel()
	assert.NoError(t, <-done)
}
