package calculation

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/rpgo/retireplan/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func baseAssumptions() domain.Assumptions {
	return domain.Assumptions{
		CurrentAge:           30,
		AnnualSpendingTarget: d("50000"),
		InflationRate:        d("0.03"),
		RetirementTaxRate:    d("0.2"),
		WithdrawalRate:       d("0.04"),
		RetirementGrowthRate: d("0.05"),
		StartYear:            2026,
	}
}

func singleAccount(balance, rate string) []domain.Account {
	return []domain.Account{domain.BalanceAccount{
		ID:               "a1",
		Name:             "Brokerage",
		Type:             domain.AccountTaxableBrokerage,
		CurrentBalance:   d(balance),
		AnnualReturnRate: d(rate),
	}}
}

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (r *recordingLogger) add(level, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, level+": "+fmt.Sprintf(format, args...))
}

func (r *recordingLogger) Debugf(format string, args ...any) { r.add("debug", format, args...) }
func (r *recordingLogger) Infof(format string, args ...any)  { r.add("info", format, args...) }
func (r *recordingLogger) Warnf(format string, args ...any)  { r.add("warn", format, args...) }
func (r *recordingLogger) Errorf(format string, args ...any) { r.add("error", format, args...) }

func TestCompoundingWithoutContributions(t *testing.T) {
	a := baseAssumptions()
	a.AnnualSpendingTarget = d("1000000000")

	res, err := CalculateRetirement(a, singleAccount("10000", "0.10"))
	require.NoError(t, err)

	for n := 1; n <= 10; n++ {
		want := d("10000").Mul(d("1.1").Pow(decimal.NewFromInt(int64(n))))
		got := res.YearByYearProjections[n-1].PortfolioValue
		assert.True(t, got.Sub(want).Abs().LessThanOrEqual(d("0.01")), "year %d: want %s got %s", n, want.StringFixed(2), got)
	}
	assert.True(t, res.YearByYearProjections[9].PortfolioValue.Equal(d("25937.42")))
}

func TestRowsAreMonotonic(t *testing.T) {
	a := baseAssumptions()
	res, err := CalculateRetirement(a, singleAccount("250000", "0.07"))
	require.NoError(t, err)

	require.Len(t, res.YearByYearProjections, domain.DefaultHorizonAge-a.CurrentAge+1)
	assert.True(t, res.YearByYearProjections[0].InflationAdjustedSpending.Equal(a.AnnualSpendingTarget))
	for i, row := range res.YearByYearProjections {
		assert.Equal(t, a.StartYear+i, row.Year)
		assert.Equal(t, a.CurrentAge+i, row.Age)
		assert.Equal(t, row.AfterTaxIncome.GreaterThanOrEqual(row.InflationAdjustedSpending), row.CanRetire, "year %d", row.Year)
		assert.Equal(t, row.Year >= res.RetirementYear, row.IsRetired, "year %d", row.Year)
	}
}

func TestZeroBalanceStaysZero(t *testing.T) {
	log := &recordingLogger{}
	res, err := NewCalculationEngine(WithLogger(log)).Calculate(baseAssumptions(), singleAccount("0", "0.07"))
	require.NoError(t, err)

	for _, row := range res.YearByYearProjections {
		assert.True(t, row.PortfolioValue.IsZero(), "year %d", row.Year)
		assert.False(t, row.CanRetire)
	}
	assert.False(t, res.Feasible)
	last := res.YearByYearProjections[len(res.YearByYearProjections)-1]
	assert.Equal(t, last.Year, res.RetirementYear)
	assert.Equal(t, domain.DefaultHorizonAge, res.RetirementAge)
	assert.True(t, res.Shortfall.Equal(last.InflationAdjustedSpending))
	assert.Contains(t, log.lines[len(log.lines)-1], "warn: retirement never affordable")
}

func TestAutoRetirementPicksFirstAffordableYear(t *testing.T) {
	log := &recordingLogger{}
	res, err := NewCalculationEngine(WithLogger(log)).Calculate(baseAssumptions(), singleAccount("500000", "0.07"))
	require.NoError(t, err)

	require.True(t, res.Feasible)
	assert.True(t, res.AutoDetermined)
	row, ok := res.ProjectionFor(res.RetirementYear)
	require.True(t, ok)
	assert.True(t, row.CanRetire)
	for _, earlier := range res.YearByYearProjections[:res.YearsToRetirement] {
		assert.False(t, earlier.CanRetire, "year %d", earlier.Year)
	}
	assert.True(t, res.PortfolioAtRetirement.Equal(row.PortfolioValue))
	assert.True(t, res.AnnualIncomeAtRetirement.Equal(row.AfterTaxIncome))
	assert.True(t, res.FundedRatio.GreaterThanOrEqual(decimal.NewFromInt(1)))
	assert.True(t, res.Shortfall.IsZero())
	assert.Equal(t, res.RetirementAge-baseAssumptions().CurrentAge, res.YearsToRetirement)
	assert.Contains(t, log.lines[0], "info: retirement affordable")
}

func TestImmediateRetirementWhenAlreadyFunded(t *testing.T) {
	res, err := CalculateRetirement(baseAssumptions(), singleAccount("5000000", "0.05"))
	require.NoError(t, err)
	assert.Equal(t, 2026, res.RetirementYear)
	assert.Equal(t, 0, res.YearsToRetirement)
	assert.True(t, res.Feasible)
}

func TestDesiredRetirementAgeOverridesReadiness(t *testing.T) {
	a := baseAssumptions()
	age := 40
	a.DesiredRetirementAge = &age

	res, err := CalculateRetirement(a, singleAccount("100000", "0.07"))
	require.NoError(t, err)

	assert.Equal(t, 40, res.RetirementAge)
	assert.Equal(t, 2036, res.RetirementYear)
	assert.False(t, res.AutoDetermined)
	assert.False(t, res.Feasible)
	assert.True(t, res.Shortfall.IsPositive())
	assert.False(t, res.YearByYearProjections[9].IsRetired)
	assert.True(t, res.YearByYearProjections[10].IsRetired)
}

func TestRetiredYearsWithdrawAndUseRetirementGrowth(t *testing.T) {
	a := baseAssumptions()
	age := 30
	a.DesiredRetirementAge = &age
	a.RetirementGrowthRate = d("0.05")

	res, err := CalculateRetirement(a, singleAccount("100000", "0.10"))
	require.NoError(t, err)

	// retirement year itself still accumulates at the account rate
	assert.True(t, res.YearByYearProjections[0].PortfolioValue.Equal(d("110000")))
	// then 4% is drawn and the remainder grows at 5%
	assert.True(t, res.YearByYearProjections[1].PortfolioValue.Equal(d("110880")))
	assert.True(t, res.YearByYearProjections[1].GrossWithdrawal.Equal(d("4435.2")))
}

func TestRetiredYearWithdrawalSeesThatYearsEvents(t *testing.T) {
	a := baseAssumptions()
	age := 30
	a.DesiredRetirementAge = &age
	a.RetirementGrowthRate = decimal.Zero
	accounts := []domain.Account{domain.BalanceAccount{
		ID:             "a1",
		Type:           domain.AccountTaxableBrokerage,
		CurrentBalance: d("100000"),
		Events:         []domain.OneTimeEvent{{Year: 2027, Amount: d("100000")}},
	}}

	res, err := CalculateRetirement(a, accounts)
	require.NoError(t, err)

	rows := res.YearByYearProjections
	assert.True(t, rows[0].PortfolioValue.Equal(d("100000")))
	// 100000 + 100000 injection, then 4% drawn
	assert.True(t, rows[1].PortfolioValue.Equal(d("192000")), "got %s", rows[1].PortfolioValue)
	assert.True(t, rows[2].PortfolioValue.Equal(d("184320")), "got %s", rows[2].PortfolioValue)
}

func TestZeroWithdrawalRateIsNeutral(t *testing.T) {
	a := baseAssumptions()
	a.WithdrawalRate = decimal.Zero

	var res *domain.RetirementResult
	require.NotPanics(t, func() {
		var err error
		res, err = CalculateRetirement(a, singleAccount("100000", "0.05"))
		require.NoError(t, err)
	})

	for _, row := range res.YearByYearProjections {
		assert.True(t, row.GrossWithdrawal.IsZero(), "year %d", row.Year)
		assert.True(t, row.AfterTaxIncome.IsZero(), "year %d", row.Year)
		assert.False(t, row.CanRetire, "year %d", row.Year)
	}
	assert.False(t, res.Feasible)
	assert.True(t, res.FundedRatio.IsZero())
	assert.True(t, res.Shortfall.Equal(res.TargetSpendingAtRetirement))
}

func TestZeroSpendingTargetIsFullyFunded(t *testing.T) {
	a := baseAssumptions()
	a.AnnualSpendingTarget = decimal.Zero

	res, err := CalculateRetirement(a, singleAccount("0", "0.05"))
	require.NoError(t, err)

	assert.Equal(t, 2026, res.RetirementYear)
	assert.True(t, res.Feasible)
	assert.True(t, res.Shortfall.IsZero())
	assert.True(t, res.FundedRatio.Equal(decimal.NewFromInt(1)), "got %s", res.FundedRatio)
}

func TestBenefitsAreExcludedFromPortfolio(t *testing.T) {
	a := baseAssumptions()
	a.CurrentAge = 65
	a.AnnualSpendingTarget = d("1000000")
	accounts := []domain.Account{
		domain.BalanceAccount{ID: "ira", Type: domain.AccountTraditionalIRA, CurrentBalance: d("100000")},
		domain.BenefitAccount{ID: "ss", Type: domain.AccountSocialSecurity, AnnualBenefit: d("24000"), BenefitStartAge: 67},
		domain.BalanceAccount{ID: "roth", Type: domain.AccountRothIRA, CurrentBalance: d("50000")},
	}

	res, err := CalculateRetirement(a, accounts)
	require.NoError(t, err)
	require.False(t, res.Feasible)

	for _, row := range res.YearByYearProjections {
		require.Len(t, row.AccountBalances, 2)
		sum := decimal.Zero
		for _, b := range row.AccountBalances {
			sum = sum.Add(b.Balance)
		}
		assert.True(t, row.PortfolioValue.Equal(sum), "year %d", row.Year)
		assert.True(t, row.PortfolioValue.Equal(d("150000")), "year %d", row.Year)

		if row.Age < 67 {
			assert.True(t, row.Benefits.IsZero(), "age %d", row.Age)
		} else {
			assert.True(t, row.Benefits.Equal(d("24000")), "age %d", row.Age)
		}
	}
}

func TestHorizonExtendsPastLateDesiredAge(t *testing.T) {
	a := baseAssumptions()
	a.CurrentAge = 98
	age := 102
	a.DesiredRetirementAge = &age

	res, err := CalculateRetirement(a, singleAccount("1000", "0.01"))
	require.NoError(t, err)
	require.Len(t, res.YearByYearProjections, 10)
	assert.Equal(t, 107, res.YearByYearProjections[9].Age)
	assert.Equal(t, 102, res.RetirementAge)
}

func TestExplicitHorizon(t *testing.T) {
	a := baseAssumptions()
	a.HorizonAge = 60
	res, err := CalculateRetirement(a, singleAccount("1000", "0.01"))
	require.NoError(t, err)
	assert.Len(t, res.YearByYearProjections, 31)
}

func TestStartYearDefaultsToClock(t *testing.T) {
	a := baseAssumptions()
	a.StartYear = 0
	clock := func() time.Time { return time.Date(2031, 6, 1, 0, 0, 0, 0, time.UTC) }

	res, err := NewCalculationEngine(WithClock(clock)).Calculate(a, singleAccount("1000", "0.01"))
	require.NoError(t, err)
	assert.Equal(t, 2031, res.StartYear)
	assert.Equal(t, 2031, res.YearByYearProjections[0].Year)
}

func TestCalculateIsDeterministic(t *testing.T) {
	accounts := []domain.Account{
		domain.BalanceAccount{
			ID: "k", Name: "401k", Type: domain.AccountTraditional401k,
			CurrentBalance: d("80000"), AnnualReturnRate: d("0.065"),
			Contributions: &domain.ContributionSchedule{Amount: d("700"), Frequency: domain.FrequencyBiweekly, GrowthType: domain.GrowthPercentage, GrowthValue: d("0.02")},
			Events:        []domain.OneTimeEvent{{Year: 2030, Amount: d("-10000"), IsInflationAdjusted: true}},
		},
		domain.BenefitAccount{ID: "ss", Name: "Social Security", Type: domain.AccountSocialSecurity, AnnualBenefit: d("24000"), BenefitStartAge: 67},
	}
	a := baseAssumptions()
	a.InvestmentFeeRate = d("0.004")

	first, err := CalculateRetirement(a, accounts)
	require.NoError(t, err)
	second, err := CalculateRetirement(a, accounts)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(first, second, decimalEqual))
}

func TestCalculateDoesNotMutateInputs(t *testing.T) {
	start := 2027
	acct := domain.BalanceAccount{
		ID: "k", Name: "401k", Type: domain.AccountTraditional401k,
		CurrentBalance: d("80000"), AnnualReturnRate: d("0.065"),
		Contributions: &domain.ContributionSchedule{Amount: d("700"), Frequency: domain.FrequencyMonthly, StartYear: &start},
		Events:        []domain.OneTimeEvent{{Year: 2030, Amount: d("-10000")}},
	}
	a := baseAssumptions()
	age := 50
	a.DesiredRetirementAge = &age
	accounts := []domain.Account{&acct}

	_, err := CalculateRetirement(a, accounts)
	require.NoError(t, err)
	assert.True(t, acct.CurrentBalance.Equal(d("80000")))
	assert.Equal(t, 2027, *acct.Contributions.StartYear)
	assert.True(t, acct.Events[0].Amount.Equal(d("-10000")))
	assert.Equal(t, 50, *a.DesiredRetirementAge)
}

func TestDebugLogsEveryYear(t *testing.T) {
	log := &recordingLogger{}
	a := baseAssumptions()
	a.HorizonAge = 35
	_, err := NewCalculationEngine(WithLogger(log), WithDebug(true)).Calculate(a, singleAccount("1000", "0.01"))
	require.NoError(t, err)

	debug := 0
	for _, l := range log.lines {
		if len(l) > 6 && l[:6] == "debug:" {
			debug++
		}
	}
	assert.Equal(t, 6, debug)
}

func TestSetLoggerNilFallsBackToNop(t *testing.T) {
	ce := NewCalculationEngine()
	ce.SetLogger(nil)
	assert.IsType(t, NopLogger{}, ce.Logger)
}
