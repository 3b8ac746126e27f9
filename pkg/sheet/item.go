// Package sheet provides the core bookkeeping abstractions: financial line
// items, the typed ordered list container and the sheet aggregate used by
// both invoices and the cash accounting ledger.
package sheet

import (
	"fmt"
	"strconv"
)

// Item is the capability every financial line item provides. Subtotal is
// computed per concrete type; tax and total derive from it (see Tax, Total).
// Values/Headers project the item for tabular display, Update applies a
// partial field map with full re-validation.
type Item interface {
	// Validate checks all field constraints, the same ones the constructor
	// enforces.
	Validate() error

	// Subtotal is the net amount of the item.
	Subtotal() float64

	// VATRate is the VAT percentage, 0 <= rate < 100.
	VATRate() float64

	// Values is the ordered projection of the item for table rows.
	Values() []any

	// Headers are the column labels matching Values (plus a leading index
	// column supplied by the list renderer).
	Headers() []string

	// Update returns a copy of the item with the given fields changed.
	// Unknown field names yield an *UnknownFieldError, constraint violations
	// a *ValidationError; the receiver is never modified.
	Update(fields map[string]any) (Item, error)
}

// Currencied is implemented by items that carry a currency symbol, which is
// appended to monetary values in formatted table rows.
type Currencied interface {
	CurrencySymbol() string
}

// Tax derives the tax of an item: subtotal * vat / 100.
func Tax(it Item) float64 {
	return it.Subtotal() * it.VATRate() / 100
}

// Total derives the total of an item: subtotal + tax.
func Total(it Item) float64 {
	return it.Subtotal() + Tax(it)
}

// FormatValues renders the item's values as display strings. Zero numbers
// render empty so that the revenue/expenditure bucketing of ledger rows stays
// readable.
func FormatValues(it Item) []string {
	currency := ""
	if c, ok := it.(Currencied); ok {
		currency = c.CurrencySymbol()
	}
	values := it.Values()
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = formatValue(v, currency)
	}
	return out
}

func formatValue(v any, currency string) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		if x == 0 {
			return ""
		}
		return strconv.FormatFloat(x, 'g', -1, 64) + currency
	case int:
		if x == 0 {
			return ""
		}
		return strconv.Itoa(x) + currency
	case Date:
		return x.Short()
	case *Date:
		if x == nil {
			return ""
		}
		return x.Short()
	default:
		return fmt.Sprint(x)
	}
}

// FloatField coerces a patch value into a float64. JSON decoding and callers
// may hand over ints where floats are expected.
func FloatField(name string, v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	default:
		return 0, &ValidationError{Field: name, Constraint: "numeric", Value: v}
	}
}

// StringField coerces a patch value into a string.
func StringField(name string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", &ValidationError{Field: name, Constraint: "string", Value: v}
	}
	return s, nil
}

// DateField coerces a patch value into a Date.
func DateField(name string, v any) (Date, error) {
	switch x := v.(type) {
	case Date:
		if err := x.Validate(); err != nil {
			return "", err
		}
		return x, nil
	case string:
		return ParseDate(x)
	default:
		return "", &ValidationError{Field: name, Constraint: "date", Value: v}
	}
}
