package invoice

import (
	"github.com/NicDom/tia/pkg/sheet"
)

// Metadata is the summary projection of an invoice: number, total value,
// blended VAT percentage, due date and settlement date. A list of Metadata
// renders the yearly invoice overview.
type Metadata struct {
	Invoicenumber string      `json:"invoicenumber" validate:"required"`
	Value         float64     `json:"value" validate:"gt=0"`
	VAT           float64     `json:"vat" validate:"gte=0,lt=100"`
	DueTo         sheet.Date  `json:"due_to" validate:"required"`
	PayedOn       *sheet.Date `json:"payed_on,omitempty"`
}

// Validate checks the field constraints.
func (m Metadata) Validate() error {
	if err := sheet.ValidateStruct(m); err != nil {
		return err
	}
	return m.DueTo.Validate()
}

// Subtotal is the summarized invoice value.
func (m Metadata) Subtotal() float64 {
	return m.Value
}

// VATRate returns the blended VAT percentage of the invoice.
func (m Metadata) VATRate() float64 {
	return m.VAT
}

// Headers labels the overview table columns.
func (m Metadata) Headers() []string {
	return []string{"invoicenumber", "total", "tax", "due_to", "payed_on"}
}

// Values projects the metadata for the overview table: the derived total and
// tax, not the raw value.
func (m Metadata) Values() []any {
	return []any{m.Invoicenumber, sheet.Total(m), sheet.Tax(m), m.DueTo, m.PayedOn}
}

// Update returns a copy with the given fields changed.
func (m Metadata) Update(fields map[string]any) (sheet.Item, error) {
	next := m
	if next.PayedOn != nil {
		payed := *next.PayedOn
		next.PayedOn = &payed
	}
	for key, value := range fields {
		var err error
		switch key {
		case "invoicenumber":
			next.Invoicenumber, err = sheet.StringField(key, value)
		case "value":
			next.Value, err = sheet.FloatField(key, value)
		case "vat":
			next.VAT, err = sheet.FloatField(key, value)
		case "due_to":
			next.DueTo, err = sheet.DateField(key, value)
		case "payed_on":
			if value == nil {
				next.PayedOn = nil
				continue
			}
			var d sheet.Date
			d, err = sheet.DateField(key, value)
			if err == nil {
				next.PayedOn = &d
			}
		default:
			return nil, &sheet.UnknownFieldError{Field: key, Type: "invoice.Metadata"}
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
