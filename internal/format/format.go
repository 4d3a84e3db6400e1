// Package format renders amounts for display. The engines never round; this is
// the only place values are cut to two decimals.
package format

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter prints amounts with locale grouping and a currency code
type Formatter struct {
	printer  *message.Printer
	currency string
}

// New creates a Formatter for a BCP 47 locale tag. Unknown tags fall back to English.
func New(locale, currency string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Formatter{
		printer:  message.NewPrinter(tag),
		currency: currency,
	}
}

// Amount formats a decimal with two places and locale grouping, e.g. "1,044.00"
func (f *Formatter) Amount(v decimal.Decimal) string {
	rounded, _ := v.Round(2).Float64()
	return f.printer.Sprintf("%.2f", rounded)
}

// Money formats an amount followed by the currency code, e.g. "1,044.00 USD"
func (f *Formatter) Money(v decimal.Decimal) string {
	if f.currency == "" {
		return f.Amount(v)
	}
	return f.Amount(v) + " " + f.currency
}

// Percent formats a percentage with one decimal place, e.g. "12.5%"
func (f *Formatter) Percent(v decimal.Decimal) string {
	rounded, _ := v.Round(1).Float64()
	return f.printer.Sprintf("%.1f%%", rounded)
}
