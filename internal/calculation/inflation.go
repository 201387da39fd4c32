package calculation

import (
	"github.com/shopspring/decimal"

	dec "github.com/rpgo/retireplan/pkg/decimal"
)

// InflationAdjusted projects a today's-dollars amount forward by the given number of years.
// Zero or negative elapsed years return the amount unchanged.
func InflationAdjusted(amount, inflationRate decimal.Decimal, years int) decimal.Decimal {
	if years <= 0 {
		return amount
	}
	return dec.Compound(amount, inflationRate, years)
}

// InflationAdjustedSpending returns the spending target expressed in year's dollars.
func InflationAdjustedSpending(target, inflationRate decimal.Decimal, startYear, year int) decimal.Decimal {
	return InflationAdjusted(target, inflationRate, year-startYear)
}
