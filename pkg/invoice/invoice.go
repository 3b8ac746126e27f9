package invoice

import (
	"encoding/json"
	"fmt"

	"github.com/NicDom/tia/pkg/accounting"
	"github.com/NicDom/tia/pkg/party"
	"github.com/NicDom/tia/pkg/sheet"
)

// Invoice is a sheet of invoice items together with the billing context.
// Invoicenumbers are caller-assigned; the orchestrator keeps them unique and
// increasing within a year.
type Invoice struct {
	Invoicenumber string
	Config        Config
	Company       party.Company
	Client        party.Client
	PayedOn       *sheet.Date

	sheet.Sheet[Item]
}

// New creates an invoice and inserts the given items through the VAT
// resolution hook.
func New(invoicenumber string, config Config, company party.Company, client party.Client, items ...Item) (*Invoice, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	inv := &Invoice{
		Invoicenumber: invoicenumber,
		Config:        config,
		Company:       company,
		Client:        client,
	}
	for _, it := range items {
		if err := inv.AddItem(it); err != nil {
			return nil, err
		}
	}
	return inv, nil
}

// resolveVAT fills an unset item VAT from the invoice configuration. This is
// the one-time resolution at insertion; later config changes do not
// retroactively alter stored items.
func (inv *Invoice) resolveVAT(it Item) Item {
	if it.VAT == nil {
		vat := inv.Config.VAT
		it.VAT = &vat
	}
	return it
}

// AddItem resolves the item's VAT and appends it.
func (inv *Invoice) AddItem(it Item) error {
	return inv.Sheet.AddItem(inv.resolveVAT(it))
}

// Append resolves the item's VAT and adds it to the end. It shadows the
// embedded list method so no insertion path skips the resolution.
func (inv *Invoice) Append(it Item) error {
	return inv.Sheet.Append(inv.resolveVAT(it))
}

// Set resolves the item's VAT and replaces the item at index i.
func (inv *Invoice) Set(i int, it Item) error {
	return inv.Sheet.Set(i, inv.resolveVAT(it))
}

// Insert resolves the item's VAT and inserts it at index i.
func (inv *Invoice) Insert(i int, it Item) error {
	return inv.Sheet.Insert(i, inv.resolveVAT(it))
}

// EditItem applies the edit like Sheet.EditItem, with the VAT resolution hook
// running on the resulting item.
func (inv *Invoice) EditItem(old Item, edit sheet.Edit[Item]) error {
	i, ok := inv.IndexOf(old)
	if !ok {
		return &sheet.NotFoundError{Item: old}
	}
	current, err := inv.Get(i)
	if err != nil {
		return err
	}
	next, err := edit.Apply(current)
	if err != nil {
		return err
	}
	return inv.Sheet.Set(i, inv.resolveVAT(next))
}

// DueTo is the settlement deadline: issue date + configured day count.
func (inv *Invoice) DueTo() sheet.Date {
	return inv.Config.Date.AddDays(inv.Config.Deadline)
}

// blendedVAT is the effective VAT percentage across all items.
func (inv *Invoice) blendedVAT() (float64, error) {
	subtotal := inv.Subtotal()
	if subtotal == 0 {
		return 0, fmt.Errorf("invoice %s has no billable subtotal", inv.Invoicenumber)
	}
	return inv.Tax() / subtotal * 100, nil
}

// Meta summarizes the invoice into its Metadata projection.
func (inv *Invoice) Meta() (Metadata, error) {
	vat, err := inv.blendedVAT()
	if err != nil {
		return Metadata{}, err
	}
	meta := Metadata{
		Invoicenumber: inv.Invoicenumber,
		Value:         inv.Total(),
		VAT:           vat,
		DueTo:         inv.DueTo(),
		PayedOn:       inv.PayedOn,
	}
	if err := meta.Validate(); err != nil {
		return Metadata{}, err
	}
	return meta, nil
}

// CAItem returns the ledger entry representing this invoice's cash effect,
// or nil while the invoice is unsettled.
func (inv *Invoice) CAItem() (*accounting.Item, error) {
	if inv.PayedOn == nil {
		return nil, nil
	}
	vat, err := inv.blendedVAT()
	if err != nil {
		return nil, err
	}
	item := accounting.Item{
		Description: fmt.Sprintf("Invoice no. %s", inv.Invoicenumber),
		Value:       inv.Total(),
		VAT:         vat,
		Currency:    inv.Config.CurrencySymbol,
		Date:        *inv.PayedOn,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return &item, nil
}

// Settle marks the invoice as payed on the given date.
func (inv *Invoice) Settle(on sheet.Date) error {
	if err := on.Validate(); err != nil {
		return err
	}
	inv.PayedOn = &on
	return nil
}

// String renders the billing parties and the item table.
func (inv *Invoice) String() string {
	return fmt.Sprintf("From:\n%s\n\nPrepared For:\n%s\n\nInvoiceItems:\n\n%s",
		inv.Company, inv.Client, inv.Sheet.String())
}

type invoiceJSON struct {
	Invoicenumber string          `json:"invoicenumber"`
	Config        Config          `json:"config"`
	Company       party.Company   `json:"company"`
	Client        party.Client    `json:"client"`
	Items         json.RawMessage `json:"items"`
	PayedOn       *sheet.Date     `json:"payed_on,omitempty"`
}

// MarshalJSON encodes the invoice with stable field names.
func (inv *Invoice) MarshalJSON() ([]byte, error) {
	items, err := inv.List.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return json.Marshal(invoiceJSON{
		Invoicenumber: inv.Invoicenumber,
		Config:        inv.Config,
		Company:       inv.Company,
		Client:        inv.Client,
		Items:         items,
		PayedOn:       inv.PayedOn,
	})
}

// UnmarshalJSON decodes and validates a persisted invoice. Stored items have
// their VAT already resolved, so no insertion hook runs here.
func (inv *Invoice) UnmarshalJSON(data []byte) error {
	var raw invoiceJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := raw.Config.Validate(); err != nil {
		return err
	}
	next := Invoice{
		Invoicenumber: raw.Invoicenumber,
		Config:        raw.Config,
		Company:       raw.Company,
		Client:        raw.Client,
		PayedOn:       raw.PayedOn,
	}
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
	*inv = next
	return nil
}
