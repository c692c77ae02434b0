// Package money implements the monetary arithmetic used across invoicing.
// All amounts are decimal quantities rounded half-up to cents at every stage,
// so repeating a computation never drifts at the cent boundary.
package money

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ItemAmount returns quantity * rate rounded to 2 decimal places.
func ItemAmount(quantity, rate decimal.Decimal) decimal.Decimal {
	return quantity.Mul(rate).Round(2)
}

// Subtotal returns the sum of the given amounts rounded to 2 decimal places.
func Subtotal(amounts []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, a := range amounts {
		sum = sum.Add(a)
	}
	return sum.Round(2)
}

// TaxAmount returns subtotal * taxRatePercent/100 rounded to 2 decimal places.
func TaxAmount(subtotal, taxRatePercent decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(taxRatePercent).Div(hundred).Round(2)
}

// Total returns subtotal + taxAmount rounded to 2 decimal places.
func Total(subtotal, taxAmount decimal.Decimal) decimal.Decimal {
	return subtotal.Add(taxAmount).Round(2)
}

// Format renders d with exactly 2 fractional digits, e.g. "2500.00".
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}
