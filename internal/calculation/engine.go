package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rpgo/retireplan/internal/domain"
	dec "github.com/rpgo/retireplan/pkg/decimal"
)

// CalculationEngine runs retirement projections. It holds no per-run state, so one engine
// may serve concurrent callers.
type CalculationEngine struct {
	Debug  bool // Enable per-year debug output
	Logger Logger
	// Now supplies the projection start year when Assumptions.StartYear is unset.
	Now func() time.Time
}

// Option configures a CalculationEngine.
type Option func(*CalculationEngine)

// WithLogger sets the engine logger.
func WithLogger(l Logger) Option {
	return func(ce *CalculationEngine) { ce.SetLogger(l) }
}

// WithClock overrides the clock used to pick the default start year.
func WithClock(now func() time.Time) Option {
	return func(ce *CalculationEngine) {
		if now != nil {
			ce.Now = now
		}
	}
}

// WithDebug enables per-year debug logging.
func WithDebug(debug bool) Option {
	return func(ce *CalculationEngine) { ce.Debug = debug }
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine(opts ...Option) *CalculationEngine {
	ce := &CalculationEngine{
		Logger: NopLogger{},
		Now:    time.Now,
	}
	for _, opt := range opts {
		opt(ce)
	}
	return ce
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// CalculateRetirement runs a projection with a default engine.
func CalculateRetirement(assumptions domain.Assumptions, accounts []domain.Account) (*domain.RetirementResult, error) {
	return NewCalculationEngine().Calculate(assumptions, accounts)
}

// Calculate validates the inputs and simulates every year from the current age to the horizon.
//
// Each row is the end-of-year state. In auto mode the first year whose after-tax income covers
// the inflated spending target becomes the retirement year; with a desired retirement age that
// age is used regardless. The retirement-year row is where that decision is made, so it still
// shows accumulation: retirement rules (withdrawals, retirement growth rate, open-ended
// contributions stopping) take effect from the following year.
func (ce *CalculationEngine) Calculate(assumptions domain.Assumptions, accounts []domain.Account) (*domain.RetirementResult, error) {
	if err := Validate(assumptions, accounts); err != nil {
		return nil, err
	}

	a := assumptions.Clone()
	startYear := a.StartYear
	if startYear == 0 {
		startYear = ce.now().Year()
	}
	years := a.EffectiveHorizonAge() - a.CurrentAge + 1

	var projectors []*BalanceProjector
	var benefits []domain.BenefitAccount
	for _, acct := range accounts {
		switch v := domain.Concrete(acct).(type) {
		case domain.BalanceAccount:
			projectors = append(projectors, NewBalanceProjector(cloneBalanceAccount(v), a, startYear, ce.Logger))
		case domain.BenefitAccount:
			benefits = append(benefits, v)
		}
	}
	income := NewIncomeCalculator(a, benefits)

	desiredYear := -1
	if a.DesiredRetirementAge != nil {
		desiredYear = startYear + *a.DesiredRetirementAge - a.CurrentAge
	}

	rows := make([]domain.YearProjection, 0, years)
	retired := false
	retirementYear := 0
	for i := 0; i < years; i++ {
		year := startYear + i
		age := a.CurrentAge + i

		phase := PhaseAccumulation
		if retired {
			phase = PhaseRetired
		}

		balances := make([]domain.AccountBalance, len(projectors))
		portfolio := decimal.Zero
		for j, p := range projectors {
			b := p.Step(year, phase)
			portfolio = portfolio.Add(b)
			balances[j] = domain.AccountBalance{
				AccountID: p.account.ID,
				Name:      p.account.Name,
				Balance:   b.Round(2),
			}
		}

		inc := income.Calculate(portfolio, age)
		row := domain.YearProjection{
			Year:                      year,
			Age:                       age,
			PortfolioValue:            portfolio.Round(2),
			GrossWithdrawal:           inc.GrossWithdrawal.Round(2),
			Benefits:                  inc.Benefits.Round(2),
			AfterTaxIncome:            inc.AfterTax.Round(2),
			InflationAdjustedSpending: InflationAdjustedSpending(a.AnnualSpendingTarget, a.InflationRate, startYear, year).Round(2),
			AccountBalances:           balances,
		}
		row.CanRetire = row.AfterTaxIncome.GreaterThanOrEqual(row.InflationAdjustedSpending)

		if !retired {
			switch {
			case desiredYear >= 0 && year == desiredYear:
				retired, retirementYear = true, year
			case desiredYear < 0 && row.CanRetire:
				retired, retirementYear = true, year
				ce.Logger.Infof("retirement affordable in %d at age %d: income %s covers spending %s",
					year, age, row.AfterTaxIncome.StringFixed(2), row.InflationAdjustedSpending.StringFixed(2))
			}
		}
		row.IsRetired = retired

		if ce.Debug {
			ce.Logger.Debugf("%d age %d: portfolio=%s income=%s spending=%s can_retire=%t retired=%t",
				year, age, row.PortfolioValue.StringFixed(2), row.AfterTaxIncome.StringFixed(2),
				row.InflationAdjustedSpending.StringFixed(2), row.CanRetire, row.IsRetired)
		}
		rows = append(rows, row)
	}

	if !retired {
		retirementYear = rows[len(rows)-1].Year
		ce.Logger.Warnf("retirement never affordable before age %d; reporting horizon year %d", a.EffectiveHorizonAge(), retirementYear)
	}

	return summarize(a, startYear, retirementYear, rows), nil
}

func summarize(a domain.Assumptions, startYear, retirementYear int, rows []domain.YearProjection) *domain.RetirementResult {
	at := rows[retirementYear-startYear]
	shortfall := dec.ClampZero(at.InflationAdjustedSpending.Sub(at.AfterTaxIncome))
	return &domain.RetirementResult{
		StartYear:                  startYear,
		RetirementYear:             retirementYear,
		RetirementAge:              at.Age,
		YearsToRetirement:          retirementYear - startYear,
		PortfolioAtRetirement:      at.PortfolioValue,
		AnnualIncomeAtRetirement:   at.AfterTaxIncome,
		TargetSpendingAtRetirement: at.InflationAdjustedSpending,
		FundedRatio:                fundedRatio(at.AfterTaxIncome, at.InflationAdjustedSpending),
		Feasible:                   at.CanRetire,
		Shortfall:                  shortfall,
		AutoDetermined:             a.DesiredRetirementAge == nil,
		YearByYearProjections:      rows,
		Assumptions:                a.GenerateAssumptions(),
	}
}

// fundedRatio treats a zero spending target as fully covered.
func fundedRatio(income, spending decimal.Decimal) decimal.Decimal {
	if spending.IsZero() {
		return dec.One
	}
	return dec.SafeDiv(income, spending).Round(4)
}

func (ce *CalculationEngine) now() time.Time {
	if ce.Now == nil {
		return time.Now()
	}
	return ce.Now()
}

// cloneBalanceAccount deep-copies the slices and pointers the projector reads.
func cloneBalanceAccount(a domain.BalanceAccount) domain.BalanceAccount {
	c := a
	if a.Contributions != nil {
		sched := *a.Contributions
		if a.Contributions.StartYear != nil {
			y := *a.Contributions.StartYear
			sched.StartYear = &y
		}
		if a.Contributions.EndYear != nil {
			y := *a.Contributions.EndYear
			sched.EndYear = &y
		}
		c.Contributions = &sched
	}
	c.Events = append([]domain.OneTimeEvent(nil), a.Events...)
	return c
}
