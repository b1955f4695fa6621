// Package money formatea importes en libras esterlinas para PDFs, hojas de cálculo y correos.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BritishEnglish)

// GBP formatea un importe con símbolo y separador de miles en-GB: £1,234.50 / -£3.20.
func GBP(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	f, _ := rounded.Abs().Float64()
	s := printer.Sprintf("£%.2f", f)
	if rounded.IsNegative() {
		return "-" + s
	}
	return s
}

// Quantity formatea una cantidad sin ceros finales (2, 2.5, 0.125).
func Quantity(q decimal.Decimal) string {
	return q.String()
}
