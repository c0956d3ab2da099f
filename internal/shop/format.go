package shop

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// usd formats amounts as US dollars with grouping and two decimals, e.g.
// $1,234.50.
type usd struct {
	p *message.Printer
}

func newUSD() usd {
	return usd{p: message.NewPrinter(language.AmericanEnglish)}
}

func (u usd) Format(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	return sign + "$" + u.p.Sprintf("%v", number.Decimal(amount.Round(2).InexactFloat64(), number.Scale(2)))
}
