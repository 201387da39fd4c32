package output

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	dec "github.com/rpgo/retireplan/pkg/decimal"
)

// FormatCurrency formats a decimal as whole US dollars with thousands separators, e.g. $1,234,567.
// Halves round away from zero.
func FormatCurrency(amount decimal.Decimal) string {
	p := message.NewPrinter(language.AmericanEnglish)
	whole := amount.Round(0).IntPart()
	if whole < 0 {
		return "-$" + p.Sprintf("%d", -whole)
	}
	return "$" + p.Sprintf("%d", whole)
}

// FormatPercentage formats a fractional rate (0.04) as a percentage with one decimal (4.0%).
func FormatPercentage(rate decimal.Decimal) string { return dec.Percent(rate).StringFixed(1) + "%" }

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
