package config

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rpgo/retireplan/internal/domain"
)

// ErrMixedAccountFields is returned when a benefit record also carries balance-account fields.
var ErrMixedAccountFields = errors.New("benefit account cannot carry balance, return, contributions or events")

// PlanFile is the on-disk and on-the-wire form of a plan.
type PlanFile struct {
	Name        string                    `yaml:"name,omitempty" json:"name,omitempty"`
	Assumptions domain.Assumptions        `yaml:"assumptions" json:"assumptions"`
	Accounts    []AccountInput            `yaml:"accounts" json:"accounts"`
	Scenarios   []domain.ScenarioOverride `yaml:"scenarios,omitempty" json:"scenarios,omitempty"`
}

// AccountInput is the loose account record found in plan files. Setting annual_benefit
// selects the benefit variant; otherwise the record is a balance account.
type AccountInput struct {
	ID               string                       `yaml:"id" json:"id"`
	Name             string                       `yaml:"name" json:"name"`
	AccountType      domain.AccountType           `yaml:"account_type" json:"account_type"`
	CurrentBalance   decimal.Decimal              `yaml:"current_balance" json:"current_balance"`
	AnnualReturnRate decimal.Decimal              `yaml:"annual_return_rate" json:"annual_return_rate"`
	Contributions    *domain.ContributionSchedule `yaml:"contributions,omitempty" json:"contributions,omitempty"`
	Events           []domain.OneTimeEvent        `yaml:"events,omitempty" json:"events,omitempty"`
	AnnualBenefit    *decimal.Decimal             `yaml:"annual_benefit,omitempty" json:"annual_benefit,omitempty"`
	BenefitStartAge  *int                         `yaml:"benefit_start_age,omitempty" json:"benefit_start_age,omitempty"`
}

// ToAccount converts the record into its domain variant.
func (ai AccountInput) ToAccount() (domain.Account, error) {
	if ai.AnnualBenefit == nil {
		if ai.BenefitStartAge != nil {
			return nil, fmt.Errorf("account %s: benefit_start_age requires annual_benefit", ai.ID)
		}
		return domain.BalanceAccount{
			ID:               ai.ID,
			Name:             ai.Name,
			Type:             ai.AccountType,
			CurrentBalance:   ai.CurrentBalance,
			AnnualReturnRate: ai.AnnualReturnRate,
			Contributions:    ai.Contributions,
			Events:           ai.Events,
		}, nil
	}

	if !ai.CurrentBalance.IsZero() || !ai.AnnualReturnRate.IsZero() || ai.Contributions != nil || len(ai.Events) > 0 {
		return nil, fmt.Errorf("account %s: %w", ai.ID, ErrMixedAccountFields)
	}
	startAge := 0
	if ai.BenefitStartAge != nil {
		startAge = *ai.BenefitStartAge
	}
	return domain.BenefitAccount{
		ID:              ai.ID,
		Name:            ai.Name,
		Type:            ai.AccountType,
		AnnualBenefit:   *ai.AnnualBenefit,
		BenefitStartAge: startAge,
	}, nil
}

// FromAccount converts a domain account back into its loose record.
func FromAccount(a domain.Account) AccountInput {
	switch v := domain.Concrete(a).(type) {
	case domain.BalanceAccount:
		return AccountInput{
			ID:               v.ID,
			Name:             v.Name,
			AccountType:      v.Type,
			CurrentBalance:   v.CurrentBalance,
			AnnualReturnRate: v.AnnualReturnRate,
			Contributions:    v.Contributions,
			Events:           v.Events,
		}
	case domain.BenefitAccount:
		benefit := v.AnnualBenefit
		age := v.BenefitStartAge
		return AccountInput{
			ID:              v.ID,
			Name:            v.Name,
			AccountType:     v.Type,
			AnnualBenefit:   &benefit,
			BenefitStartAge: &age,
		}
	default:
		panic(fmt.Sprintf("config: unhandled account variant %T", a))
	}
}

// ToPlan converts the file form into a domain plan.
func (pf *PlanFile) ToPlan() (*domain.Plan, error) {
	accounts := make([]domain.Account, 0, len(pf.Accounts))
	for i, ai := range pf.Accounts {
		acct, err := ai.ToAccount()
		if err != nil {
			return nil, fmt.Errorf("accounts[%d]: %w", i, err)
		}
		accounts = append(accounts, acct)
	}
	return &domain.Plan{
		Name:        pf.Name,
		Assumptions: pf.Assumptions,
		Accounts:    accounts,
		Scenarios:   pf.Scenarios,
	}, nil
}

// NewPlanFile converts a domain plan into its file form.
func NewPlanFile(plan *domain.Plan) *PlanFile {
	pf := &PlanFile{
		Name:        plan.Name,
		Assumptions: plan.Assumptions,
		Scenarios:   plan.Scenarios,
	}
	for _, a := range plan.Accounts {
		pf.Accounts = append(pf.Accounts, FromAccount(a))
	}
	return pf
}
