package calculation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rpgo/retireplan/internal/domain"
	dec "github.com/rpgo/retireplan/pkg/decimal"
)

// ErrInvalidInput marks precondition violations. A plan that can never afford retirement
// is not an error; it is reported through RetirementResult.Feasible.
var ErrInvalidInput = errors.New("invalid projection input")

// ValidationError lists every problem found in a projection input.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidInput, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

type validator struct {
	problems []string
}

func (v *validator) addf(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *validator) rate(name string, r decimal.Decimal) {
	if !dec.InRange(r, decimal.Zero, dec.One) {
		v.addf("%s must be between 0 and 1, got %s", name, r.String())
	}
}

func (v *validator) err() error {
	if len(v.problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: v.problems}
}

// Validate checks assumptions and accounts before a projection runs.
func Validate(assumptions domain.Assumptions, accounts []domain.Account) error {
	v := &validator{}
	validateAssumptions(v, assumptions)

	if len(accounts) == 0 {
		v.addf("at least one account is required")
	}
	seen := make(map[string]bool, len(accounts))
	for i, acct := range accounts {
		if acct == nil {
			v.addf("account %d is nil", i)
			continue
		}
		switch a := acct.(type) {
		case *domain.BalanceAccount:
			if a == nil {
				v.addf("account %d is nil", i)
				continue
			}
		case *domain.BenefitAccount:
			if a == nil {
				v.addf("account %d is nil", i)
				continue
			}
		}
		id := acct.AccountID()
		if id == "" {
			v.addf("account %d: id is required", i)
		} else if seen[id] {
			v.addf("account %s: duplicate id", id)
		}
		seen[id] = true
		if !acct.Kind().Valid() {
			v.addf("account %s: unknown account type %q", id, acct.Kind())
		}

		switch a := domain.Concrete(acct).(type) {
		case domain.BalanceAccount:
			validateBalanceAccount(v, a)
		case domain.BenefitAccount:
			validateBenefitAccount(v, a)
		}
	}

	return v.err()
}

func validateAssumptions(v *validator, a domain.Assumptions) {
	if a.CurrentAge < 0 || a.CurrentAge > domain.MaxAge {
		v.addf("current age must be between 0 and %d, got %d", domain.MaxAge, a.CurrentAge)
	}
	if a.DesiredRetirementAge != nil {
		d := *a.DesiredRetirementAge
		if d < a.CurrentAge {
			v.addf("desired retirement age %d cannot be before current age %d", d, a.CurrentAge)
		}
		if d > domain.MaxAge {
			v.addf("desired retirement age must be at most %d, got %d", domain.MaxAge, d)
		}
	}
	if a.HorizonAge != 0 && (a.HorizonAge <= a.CurrentAge || a.HorizonAge > domain.MaxAge+domain.DesiredAgeBuffer) {
		v.addf("horizon age must be after current age and at most %d, got %d", domain.MaxAge+domain.DesiredAgeBuffer, a.HorizonAge)
	}
	if a.HorizonAge == 0 && a.CurrentAge > domain.DefaultHorizonAge && a.DesiredRetirementAge == nil {
		v.addf("current age %d leaves no room before the default horizon age %d", a.CurrentAge, domain.DefaultHorizonAge)
	}
	if a.StartYear != 0 && (a.StartYear < 1900 || a.StartYear > 3000) {
		v.addf("start year %d is out of range", a.StartYear)
	}
	if a.AnnualSpendingTarget.IsNegative() {
		v.addf("annual spending target cannot be negative")
	}
	v.rate("inflation rate", a.InflationRate)
	v.rate("retirement tax rate", a.RetirementTaxRate)
	v.rate("withdrawal rate", a.WithdrawalRate)
	v.rate("retirement growth rate", a.RetirementGrowthRate)
	v.rate("investment fee rate", a.InvestmentFeeRate)
}

func validateBalanceAccount(v *validator, a domain.BalanceAccount) {
	if a.CurrentBalance.IsNegative() {
		v.addf("account %s: current balance cannot be negative", a.ID)
	}
	v.rate(fmt.Sprintf("account %s: annual return rate", a.ID), a.AnnualReturnRate)

	if c := a.Contributions; c != nil {
		if c.Amount.IsNegative() {
			v.addf("account %s: contribution amount cannot be negative", a.ID)
		}
		if c.Frequency.PeriodsPerYear() == 0 {
			v.addf("account %s: unknown contribution frequency %q", a.ID, c.Frequency)
		}
		if !c.GrowthType.Valid() {
			v.addf("account %s: unknown contribution growth type %q", a.ID, c.GrowthType)
		}
		if c.GrowthType == domain.GrowthPercentage && c.GrowthValue.LessThan(dec.One.Neg()) {
			v.addf("account %s: contribution growth cannot be below -100%%", a.ID)
		}
		if c.StartYear != nil && c.EndYear != nil && *c.EndYear < *c.StartYear {
			v.addf("account %s: contribution end year %d is before start year %d", a.ID, *c.EndYear, *c.StartYear)
		}
	}
}

func validateBenefitAccount(v *validator, a domain.BenefitAccount) {
	if a.AnnualBenefit.IsNegative() {
		v.addf("account %s: annual benefit cannot be negative", a.ID)
	}
	if a.BenefitStartAge < 0 || a.BenefitStartAge > domain.MaxAge {
		v.addf("account %s: benefit start age must be between 0 and %d, got %d", a.ID, domain.MaxAge, a.BenefitStartAge)
	}
}
