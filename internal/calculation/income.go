package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/rpgo/retireplan/internal/domain"
	dec "github.com/rpgo/retireplan/pkg/decimal"
)

// YearIncome breaks down the sustainable income available in one year.
type YearIncome struct {
	GrossWithdrawal decimal.Decimal
	Benefits        decimal.Decimal
	AfterTax        decimal.Decimal
}

// IncomeCalculator applies the withdrawal rule and flat retirement tax, and adds fixed benefits.
type IncomeCalculator struct {
	WithdrawalRate decimal.Decimal
	TaxRate        decimal.Decimal
	BenefitSources []domain.BenefitAccount
}

// NewIncomeCalculator creates an income calculator for the given assumptions and benefit accounts.
func NewIncomeCalculator(assumptions domain.Assumptions, benefits []domain.BenefitAccount) *IncomeCalculator {
	return &IncomeCalculator{
		WithdrawalRate: assumptions.WithdrawalRate,
		TaxRate:        assumptions.RetirementTaxRate,
		BenefitSources: benefits,
	}
}

// BenefitsAt sums the annual benefits that have started by age.
func (ic *IncomeCalculator) BenefitsAt(age int) decimal.Decimal {
	total := decimal.Zero
	for _, b := range ic.BenefitSources {
		if b.BenefitStartAge <= age {
			total = total.Add(b.AnnualBenefit)
		}
	}
	return total
}

// Calculate returns the income for a year with the given portfolio value and owner age.
// Benefits are treated as already-net income; only the portfolio withdrawal is taxed.
func (ic *IncomeCalculator) Calculate(portfolio decimal.Decimal, age int) YearIncome {
	gross := dec.ClampZero(portfolio).Mul(ic.WithdrawalRate)
	net := gross.Mul(dec.One.Sub(ic.TaxRate))
	benefits := ic.BenefitsAt(age)
	return YearIncome{
		GrossWithdrawal: dec.Normalize(gross),
		Benefits:        benefits,
		AfterTax:        dec.Normalize(net.Add(benefits)),
	}
}
