package accounting

import (
	"encoding/json"

	"github.com/NicDom/tia/pkg/sheet"
)

// SupportedLanguages are the languages a configuration may carry.
var SupportedLanguages = []string{"english", "german"}

// Config is the configuration of a cash accounting ledger.
type Config struct {
	Language string `json:"language" yaml:"language" validate:"oneof=english german"`
}

// DefaultConfig returns the configuration for a new ledger.
func DefaultConfig() Config {
	return Config{Language: "english"}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	return sheet.ValidateStruct(c)
}

// CashAccounting is the yearly cash-basis ledger: a sheet of accounting items
// plus its configuration.
type CashAccounting struct {
	Config Config
	sheet.Sheet[Item]
}

// New creates a ledger with the given configuration and items.
func New(config Config, items ...Item) (*CashAccounting, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	ca := &CashAccounting{Config: config}
	for _, it := range items {
		if err := ca.AddItem(it); err != nil {
			return nil, err
		}
	}
	return ca, nil
}

// Subtotals returns the subtotal sums bucketed by the sign of each item's
// subtotal: (revenue >= 0, expenditure < 0).
func (c *CashAccounting) Subtotals() (revenue, expenditure float64) {
	for _, it := range c.Items() {
		if it.Subtotal() >= 0 {
			revenue += it.Subtotal()
		} else {
			expenditure += it.Subtotal()
		}
	}
	return revenue, expenditure
}

// Taxes returns the tax sums bucketed by the sign of each item's own tax, not
// the sign of its subtotal. With vat >= 0 the signs agree in practice, but
// the bucketing must not assume so.
func (c *CashAccounting) Taxes() (revenue, expenditure float64) {
	for _, it := range c.Items() {
		tax := sheet.Tax(it)
		if tax >= 0 {
			revenue += tax
		} else {
			expenditure += tax
		}
	}
	return revenue, expenditure
}

// Totals returns subtotals + taxes per bucket.
func (c *CashAccounting) Totals() (revenue, expenditure float64) {
	sr, se := c.Subtotals()
	tr, te := c.Taxes()
	return sr + tr, se + te
}

// SortByDate sorts the items in place by date, ascending and stable, and
// returns the receiver.
func (c *CashAccounting) SortByDate() *CashAccounting {
	c.SortStable(func(a, b Item) bool {
		return a.Date.Before(b.Date)
	})
	return c
}

type cashAccountingJSON struct {
	Config Config          `json:"config"`
	Items  json.RawMessage `json:"items"`
}

// MarshalJSON encodes the ledger as {"config": ..., "items": [...]}.
func (c *CashAccounting) MarshalJSON() ([]byte, error) {
	items, err := c.List.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return json.Marshal(cashAccountingJSON{Config: c.Config, Items: items})
}

// UnmarshalJSON decodes and validates a persisted ledger.
func (c *CashAccounting) UnmarshalJSON(data []byte) error {
	var raw cashAccountingJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := raw.Config.Validate(); err != nil {
		return err
	}
	next := CashAccounting{Config: raw.Config}
	if len(raw.Items) > 0 {
		if err := next.List.UnmarshalJSON(raw.Items); err != nil {
			return err
		}
		for _, it := range next.Items() {
			if err := it.Validate(); err != nil {
				return err
			}
		}
	}
	*c = next
	return nil
}
