// Package money renders donation amounts for display.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter prints amounts of a single currency.
type Formatter struct {
	unit currency.Unit
}

// NewFormatter parses an ISO 4217 code such as "EUR".
func NewFormatter(code string) (*Formatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("parse currency %q: %w", code, err)
	}
	return &Formatter{unit: unit}, nil
}

// Currency returns the ISO code.
func (f *Formatter) Currency() string {
	return f.unit.String()
}

// Display renders amount with the currency symbol and the digit grouping of
// locale, e.g. "€ 1,234.50" for en and "€ 1.234,50" for de.
func (f *Formatter) Display(amount decimal.Decimal, locale language.Tag) string {
	p := message.NewPrinter(locale)
	return p.Sprint(currency.Symbol(f.unit.Amount(amount.Round(2).InexactFloat64())))
}

// Fixed renders amount with exactly two decimals and no grouping.
func Fixed(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
