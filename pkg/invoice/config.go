package invoice

import (
	"github.com/NicDom/tia/pkg/sheet"
)

// Config carries the per-invoice settings: issue date, default VAT, payment
// deadline (day count), terms, style and currency.
type Config struct {
	Language       string     `json:"language" yaml:"language" validate:"oneof=english german"`
	Date           sheet.Date `json:"date" yaml:"date" validate:"required"`
	VAT            float64    `json:"vat" yaml:"vat" validate:"gte=0,lt=100"`
	Deadline       int        `json:"deadline" yaml:"deadline" validate:"gte=0"`
	PaymentTerms   string     `json:"paymentterms" yaml:"paymentterms"`
	Style          string     `json:"invoicestyle" yaml:"invoicestyle"`
	CurrencySymbol string     `json:"currency_symbol" yaml:"currency_symbol" validate:"required"`
	CurrencyCode   string     `json:"currency_code" yaml:"currency_code" validate:"required,len=3"`
}

// DefaultConfig returns the settings for a new invoice: issued today, 0 %
// default VAT, 30 days to settle, classic style, Euro.
func DefaultConfig() Config {
	return Config{
		Language:       "english",
		Date:           sheet.Today(),
		VAT:            0,
		Deadline:       30,
		Style:          "classic",
		CurrencySymbol: "€",
		CurrencyCode:   "EUR",
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := sheet.ValidateStruct(c); err != nil {
		return err
	}
	return c.Date.Validate()
}
