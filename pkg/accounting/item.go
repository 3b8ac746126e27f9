// Package accounting implements the cash-basis bookkeeping ledger: signed
// accounting items and the yearly CashAccounting sheet with
// revenue/expenditure bucketing.
package accounting

import (
	"github.com/NicDom/tia/pkg/sheet"
)

// DefaultVAT is the VAT percentage applied when an item is created without
// one.
const DefaultVAT = 19

// DefaultCurrency is the currency symbol applied when an item is created
// without one.
const DefaultCurrency = "€"

// Item is a single ledger entry. The sign of Value buckets it: positive means
// revenue, negative expenditure.
type Item struct {
	Description string     `json:"description" validate:"required"`
	Value       float64    `json:"value"`
	Currency    string     `json:"currency" validate:"required"`
	VAT         float64    `json:"vat" validate:"gte=0,lt=100"`
	Date        sheet.Date `json:"date" validate:"required"`
}

// NewItem creates a validated item with the package defaults: currency "€",
// VAT 19 %, date today.
func NewItem(description string, value float64) (Item, error) {
	it := Item{
		Description: description,
		Value:       value,
		Currency:    DefaultCurrency,
		VAT:         DefaultVAT,
		Date:        sheet.Today(),
	}
	if err := it.Validate(); err != nil {
		return Item{}, err
	}
	return it, nil
}

// Validate checks the field constraints.
func (i Item) Validate() error {
	if err := sheet.ValidateStruct(i); err != nil {
		return err
	}
	return i.Date.Validate()
}

// Subtotal is the raw signed value of the item.
func (i Item) Subtotal() float64 {
	return i.Value
}

// VATRate returns the VAT percentage.
func (i Item) VATRate() float64 {
	return i.VAT
}

// CurrencySymbol returns the currency appended to formatted amounts.
func (i Item) CurrencySymbol() string {
	return i.Currency
}

// Headers labels the 11 ledger table columns. The leading receipt number is
// supplied by the list renderer.
func (i Item) Headers() []string {
	return []string{
		"Receipt No.",
		"Date",
		"Transaction",
		"Revenue(Net)",
		"Revenue(VAT)",
		"Revenue(Total)",
		"Expenditure(Net)",
		"Expenditure(VAT)",
		"Expenditure(Total)",
		"VAT Paid",
		"VAT Debt",
	}
}

// Values projects the item into a ledger table row, bucketing the amounts
// into the revenue or expenditure columns by the sign of the subtotal. The
// signed tax lands in the "VAT Debt" column either way.
func (i Item) Values() []any {
	subtotal := i.Subtotal()
	tax := sheet.Tax(i)
	if subtotal >= 0 {
		return []any{
			i.Date, i.Description,
			subtotal, tax, subtotal + tax,
			0.0, 0.0, 0.0,
			0.0, tax,
		}
	}
	return []any{
		i.Date, i.Description,
		0.0, 0.0, 0.0,
		-subtotal, -tax, -tax - subtotal,
		0.0, tax,
	}
}

// Update returns a copy with the given fields changed. Unknown keys yield an
// *sheet.UnknownFieldError; the result is validated like a new item.
func (i Item) Update(fields map[string]any) (sheet.Item, error) {
	next := i
	for key, value := range fields {
		var err error
		switch key {
		case "description":
			next.Description, err = sheet.StringField(key, value)
		case "value":
			next.Value, err = sheet.FloatField(key, value)
		case "currency":
			next.Currency, err = sheet.StringField(key, value)
		case "vat":
			next.VAT, err = sheet.FloatField(key, value)
		case "date":
			next.Date, err = sheet.DateField(key, value)
		default:
			return nil, &sheet.UnknownFieldError{Field: key, Type: "accounting.Item"}
		}
		if err != nil {
			return nil, err
		}
	}
	if err := next.Validate(); err != nil {
		return nil, err
	}
	return next, nil
}
