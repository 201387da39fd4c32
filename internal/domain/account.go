package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AccountType identifies the kind of financial account.
type AccountType string

const (
	AccountTraditional401k  AccountType = "TRADITIONAL_401K"
	AccountRoth401k         AccountType = "ROTH_401K"
	AccountTraditionalIRA   AccountType = "TRADITIONAL_IRA"
	AccountRothIRA          AccountType = "ROTH_IRA"
	AccountTaxableBrokerage AccountType = "TAXABLE_BROKERAGE"
	AccountHSA              AccountType = "HSA"
	AccountCashSavings      AccountType = "CASH_SAVINGS"
	AccountPension          AccountType = "PENSION"
	AccountSocialSecurity   AccountType = "SOCIAL_SECURITY"
	AccountOther            AccountType = "OTHER"
)

var knownAccountTypes = map[AccountType]bool{
	AccountTraditional401k:  true,
	AccountRoth401k:         true,
	AccountTraditionalIRA:   true,
	AccountRothIRA:          true,
	AccountTaxableBrokerage: true,
	AccountHSA:              true,
	AccountCashSavings:      true,
	AccountPension:          true,
	AccountSocialSecurity:   true,
	AccountOther:            true,
}

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool { return knownAccountTypes[t] }

// Frequency is how often a contribution is made.
type Frequency string

const (
	FrequencyWeekly      Frequency = "WEEKLY"
	FrequencyBiweekly    Frequency = "BIWEEKLY"
	FrequencySemiMonthly Frequency = "SEMI_MONTHLY"
	FrequencyMonthly     Frequency = "MONTHLY"
	FrequencyQuarterly   Frequency = "QUARTERLY"
	FrequencyAnnually    Frequency = "ANNUALLY"
)

// PeriodsPerYear returns the number of contributions per year, or 0 for an unknown frequency.
func (f Frequency) PeriodsPerYear() int {
	switch f {
	case FrequencyWeekly:
		return 52
	case FrequencyBiweekly:
		return 26
	case FrequencySemiMonthly:
		return 24
	case FrequencyMonthly:
		return 12
	case FrequencyQuarterly:
		return 4
	case FrequencyAnnually:
		return 1
	default:
		return 0
	}
}

// GrowthType controls how a contribution amount changes year over year.
type GrowthType string

const (
	GrowthNone        GrowthType = "NONE"
	GrowthPercentage  GrowthType = "PERCENTAGE"
	GrowthFixedAmount GrowthType = "FIXED_AMOUNT"
)

// Valid reports whether g is a known growth type. The empty value means no growth.
func (g GrowthType) Valid() bool {
	switch g {
	case "", GrowthNone, GrowthPercentage, GrowthFixedAmount:
		return true
	}
	return false
}

// ContributionSchedule describes recurring deposits into a balance account.
// StartYear and EndYear are inclusive calendar years; nil StartYear means the first
// simulated year and nil EndYear means contributions continue until retirement.
type ContributionSchedule struct {
	Amount      decimal.Decimal `yaml:"amount" json:"amount"`
	Frequency   Frequency       `yaml:"frequency" json:"frequency"`
	GrowthType  GrowthType      `yaml:"growth_type" json:"growth_type"`
	GrowthValue decimal.Decimal `yaml:"growth_value" json:"growth_value"`
	StartYear   *int            `yaml:"start_year,omitempty" json:"start_year,omitempty"`
	EndYear     *int            `yaml:"end_year,omitempty" json:"end_year,omitempty"`
}

// OneTimeEvent is a single injection (positive) or withdrawal (negative) in a given year.
// Inflation-adjusted events are stated in today's dollars.
type OneTimeEvent struct {
	Year                int             `yaml:"year" json:"year"`
	Amount              decimal.Decimal `yaml:"amount" json:"amount"`
	IsInflationAdjusted bool            `yaml:"is_inflation_adjusted" json:"is_inflation_adjusted"`
	Description         string          `yaml:"description,omitempty" json:"description,omitempty"`
}

// Account is either a BalanceAccount or a BenefitAccount.
type Account interface {
	AccountID() string
	AccountName() string
	Kind() AccountType
	isAccount()
}

// BalanceAccount accumulates a balance through contributions, events and compounding.
type BalanceAccount struct {
	ID               string                `yaml:"id" json:"id"`
	Name             string                `yaml:"name" json:"name"`
	Type             AccountType           `yaml:"account_type" json:"account_type"`
	CurrentBalance   decimal.Decimal       `yaml:"current_balance" json:"current_balance"`
	AnnualReturnRate decimal.Decimal       `yaml:"annual_return_rate" json:"annual_return_rate"`
	Contributions    *ContributionSchedule `yaml:"contributions,omitempty" json:"contributions,omitempty"`
	Events           []OneTimeEvent        `yaml:"events,omitempty" json:"events,omitempty"`
}

func (a BalanceAccount) AccountID() string   { return a.ID }
func (a BalanceAccount) AccountName() string { return a.Name }
func (a BalanceAccount) Kind() AccountType   { return a.Type }
func (BalanceAccount) isAccount()            {}

// BenefitAccount pays a fixed annual amount once the owner reaches BenefitStartAge.
// It never carries a balance.
type BenefitAccount struct {
	ID              string          `yaml:"id" json:"id"`
	Name            string          `yaml:"name" json:"name"`
	Type            AccountType     `yaml:"account_type" json:"account_type"`
	AnnualBenefit   decimal.Decimal `yaml:"annual_benefit" json:"annual_benefit"`
	BenefitStartAge int             `yaml:"benefit_start_age" json:"benefit_start_age"`
}

func (a BenefitAccount) AccountID() string   { return a.ID }
func (a BenefitAccount) AccountName() string { return a.Name }
func (a BenefitAccount) Kind() AccountType   { return a.Type }
func (BenefitAccount) isAccount()            {}

// Concrete returns the value form of pointer variants so callers only switch on values.
// A typed-nil pointer comes back as a nil Account.
func Concrete(a Account) Account {
	switch acct := a.(type) {
	case *BalanceAccount:
		if acct == nil {
			return nil
		}
		return *acct
	case *BenefitAccount:
		if acct == nil {
			return nil
		}
		return *acct
	}
	return a
}

// StartingBalance returns the account's balance today. Benefit accounts report zero.
func StartingBalance(a Account) decimal.Decimal {
	switch acct := Concrete(a).(type) {
	case BalanceAccount:
		return acct.CurrentBalance
	case BenefitAccount:
		return decimal.Zero
	default:
		panic(fmt.Sprintf("domain: unhandled account variant %T", a))
	}
}

// TotalStartingBalance sums StartingBalance over all accounts.
func TotalStartingBalance(accounts []Account) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(StartingBalance(a))
	}
	return total
}
