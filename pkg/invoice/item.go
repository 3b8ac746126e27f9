// Package invoice implements invoices: priced service items, the invoice
// configuration, the invoice sheet itself and its metadata projection.
package invoice

import (
	"github.com/NicDom/tia/pkg/sheet"
)

// Item is a single invoice position. A nil VAT means "inherit the invoice's
// configured default"; it is resolved exactly once when the item is inserted
// into an invoice.
type Item struct {
	Service     string   `json:"service" validate:"required"`
	Qty         float64  `json:"qty" validate:"gt=0"`
	UnitPrice   float64  `json:"unit_price" validate:"gt=0"`
	VAT         *float64 `json:"vat,omitempty" validate:"omitempty,gte=0,lt=100"`
	Description string   `json:"description"`
}

// NewItem creates a validated item with the VAT left to inherit from the
// invoice it is added to.
func NewItem(service string, qty, unitPrice float64) (Item, error) {
	it := Item{Service: service, Qty: qty, UnitPrice: unitPrice}
	if err := it.Validate(); err != nil {
		return Item{}, err
	}
	return it, nil
}

// WithVAT returns a copy of the item with an explicit VAT percentage.
func (i Item) WithVAT(vat float64) Item {
	i.VAT = &vat
	return i
}

// Validate checks the field constraints.
func (i Item) Validate() error {
	return sheet.ValidateStruct(i)
}

// Subtotal is qty * unit price.
func (i Item) Subtotal() float64 {
	return i.Qty * i.UnitPrice
}

// VATRate returns the VAT percentage, or 0 while it is still unresolved.
func (i Item) VATRate() float64 {
	if i.VAT == nil {
		return 0
	}
	return *i.VAT
}

// Headers labels the item table columns; the "ID" column is filled by the
// list renderer.
func (i Item) Headers() []string {
	return []string{"ID", "service", "qty", "unit_price", "vat", "description"}
}

// Values projects the item for table rows.
func (i Item) Values() []any {
	var vat any
	if i.VAT != nil {
		vat = *i.VAT
	}
	return []any{i.Service, i.Qty, i.UnitPrice, vat, i.Description}
}

// Update returns a copy with the given fields changed. Setting "vat" to nil
// marks it to inherit again.
func (i Item) Update(fields map[string]any) (sheet.Item, error) {
	next := i
	if next.VAT != nil {
		vat := *next.VAT
		next.VAT = &vat
	}
	for key, value := range fields {
		var err error
		switch key {
		case "service":
			next.Service, err = sheet.StringField(key, value)
		case "qty":
			next.Qty, err = sheet.FloatField(key, value)
		case "unit_price":
			next.UnitPrice, err = sheet.FloatField(key, value)
		case "vat":
			if value == nil {
				next.VAT = nil
				continue
			}
			var vat float64
			vat, err = sheet.FloatField(key, value)
			if err == nil {
				next.VAT = &vat
			}
		case "description":
			next.Description, err = sheet.StringField(key, value)
		default:
			return nil, &sheet.UnknownFieldError{Field: key, Type: "invoice.Item"}
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
