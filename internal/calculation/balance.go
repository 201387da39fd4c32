package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/rpgo/retireplan/internal/domain"
	dec "github.com/rpgo/retireplan/pkg/decimal"
)

// YearPhase tells the projector which rules apply to a simulated year.
type YearPhase int

const (
	PhaseAccumulation YearPhase = iota
	PhaseRetired
)

// BalanceProjector steps one balance account through the simulated years.
// It owns a private copy of the running balance; the input account is never modified.
type BalanceProjector struct {
	account      domain.BalanceAccount
	balance      decimal.Decimal
	startYear    int
	assumptions  domain.Assumptions
	eventsByYear map[int][]domain.OneTimeEvent
	logger       Logger
}

// NewBalanceProjector prepares a projector starting from the account's current balance.
func NewBalanceProjector(account domain.BalanceAccount, assumptions domain.Assumptions, startYear int, logger Logger) *BalanceProjector {
	if logger == nil {
		logger = NopLogger{}
	}
	events := make(map[int][]domain.OneTimeEvent, len(account.Events))
	for _, ev := range account.Events {
		events[ev.Year] = append(events[ev.Year], ev)
	}
	return &BalanceProjector{
		account:      account,
		balance:      account.CurrentBalance,
		startYear:    startYear,
		assumptions:  assumptions,
		eventsByYear: events,
		logger:       logger,
	}
}

// Balance returns the balance after the most recent step.
func (bp *BalanceProjector) Balance() decimal.Decimal {
	return bp.balance
}

// Step advances the account through one year and returns its end-of-year balance.
// Contributions and one-time events land first. Retired years then take the account's
// share of the withdrawal rule from that balance, and one round of net compounding follows.
func (bp *BalanceProjector) Step(year int, phase YearPhase) decimal.Decimal {
	b := bp.balance

	b = b.Add(bp.ContributionFor(year, phase))
	b = bp.applyEvents(b, year)

	if phase == PhaseRetired {
		withdrawal := b.Mul(bp.assumptions.WithdrawalRate)
		b = dec.ClampZero(b.Sub(withdrawal))
	}

	rate := bp.account.AnnualReturnRate
	if phase == PhaseRetired {
		rate = bp.assumptions.RetirementGrowthRate
	}
	netRate := dec.NetRate(rate, bp.assumptions.InvestmentFeeRate)
	b = dec.ClampZero(dec.Normalize(b.Mul(dec.One.Add(netRate))))

	bp.balance = b
	return b
}

// ContributionFor returns the total contribution scheduled for year.
// Contributions only apply inside the schedule's inclusive window; an open-ended
// schedule stops once the owner has retired.
func (bp *BalanceProjector) ContributionFor(year int, phase YearPhase) decimal.Decimal {
	sched := bp.account.Contributions
	if sched == nil {
		return decimal.Zero
	}

	start := bp.startYear
	if sched.StartYear != nil {
		start = *sched.StartYear
	}
	if year < start {
		return decimal.Zero
	}
	if sched.EndYear != nil {
		if year > *sched.EndYear {
			return decimal.Zero
		}
	} else if phase == PhaseRetired {
		return decimal.Zero
	}

	elapsed := year - start
	perPeriod := sched.Amount
	switch sched.GrowthType {
	case domain.GrowthPercentage:
		perPeriod = dec.Compound(sched.Amount, sched.GrowthValue, elapsed)
	case domain.GrowthFixedAmount:
		perPeriod = sched.Amount.Add(sched.GrowthValue.Mul(decimal.NewFromInt(int64(elapsed))))
	}
	perPeriod = dec.ClampZero(perPeriod)

	return perPeriod.Mul(decimal.NewFromInt(int64(sched.Frequency.PeriodsPerYear())))
}

func (bp *BalanceProjector) applyEvents(b decimal.Decimal, year int) decimal.Decimal {
	for _, ev := range bp.eventsByYear[year] {
		amount := ev.Amount
		if ev.IsInflationAdjusted {
			amount = InflationAdjusted(amount, bp.assumptions.InflationRate, year-bp.startYear)
		}
		b = b.Add(amount)
		if b.IsNegative() {
			bp.logger.Debugf("account %s: %d withdrawal of %s exceeds balance, depleting to zero",
				bp.account.ID, year, amount.Neg().StringFixed(2))
			b = decimal.Zero
		}
	}
	return b
}
