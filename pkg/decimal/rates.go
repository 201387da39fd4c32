// Package decimal holds the rate and compounding helpers shared by the projection engine.
package decimal

import (
	"github.com/shopspring/decimal"
)

// Precision is the number of fractional digits kept on intermediate balances.
// Exact decimal multiplication would otherwise grow the digit count every simulated year.
const Precision int32 = 10

var (
	One     = decimal.NewFromInt(1)
	Hundred = decimal.NewFromInt(100)
)

// GrowthFactor returns (1+rate)^years. Non-positive year counts yield 1.
func GrowthFactor(rate decimal.Decimal, years int) decimal.Decimal {
	if years <= 0 {
		return One
	}
	return One.Add(rate).Pow(decimal.NewFromInt(int64(years))).Round(Precision)
}

// Compound grows amount by rate for the given number of whole years.
func Compound(amount, rate decimal.Decimal, years int) decimal.Decimal {
	return Normalize(amount.Mul(GrowthFactor(rate, years)))
}

// NetRate subtracts a fee rate from a gross return rate.
func NetRate(gross, fee decimal.Decimal) decimal.Decimal {
	return gross.Sub(fee)
}

// SafeDiv divides a by b, returning zero when b is zero.
func SafeDiv(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.DivRound(b, Precision)
}

// ClampZero floors negative amounts at zero.
func ClampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Normalize rounds to the working precision.
func Normalize(d decimal.Decimal) decimal.Decimal {
	return d.Round(Precision)
}

// Sum adds all values.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Percent converts a fractional rate (0.04) into percentage points (4).
func Percent(rate decimal.Decimal) decimal.Decimal {
	return rate.Mul(Hundred)
}

// InRange reports whether lo <= d <= hi.
func InRange(d, lo, hi decimal.Decimal) bool {
	return d.GreaterThanOrEqual(lo) && d.LessThanOrEqual(hi)
}
