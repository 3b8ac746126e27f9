package invoice

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/NicDom/tia/pkg/party"
	"github.com/NicDom/tia/pkg/sheet"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Date = sheet.MustDate("2022-01-05")
	cfg.VAT = 4
	return cfg
}

func testCompany(t *testing.T) party.Company {
	t.Helper()
	c, err := party.NewCompany(party.Company{
		Name:      "Scrooge and Marley",
		Street:    "Cornhill 17",
		PLZ:       "10115",
		City:      "Berlin",
		Country:   "Germany",
		Email:     "ebenezer@scrooge.com",
		Phone:     "+49 30 123456",
		TaxNumber: "12/345/67890",
		IBAN:      "DE02120300000000202051",
		BIC:       "BYLADEM1001",
		Bank:      "DKB Berlin",
	}, nil)
	if err != nil {
		t.Fatalf("NewCompany: %v", err)
	}
	return c
}

func testClient(t *testing.T) party.Client {
	t.Helper()
	c, err := party.NewClient(party.Client{
		Ref:     "10001",
		Name:    "Bob Cratchit",
		Street:  "Baker Street 221b",
		PLZ:     "20095",
		City:    "Hamburg",
		Country: "Germany",
		Email:   "bob@cratchit.com",
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func mustInvoiceItem(t *testing.T, service string, qty, unitPrice float64) Item {
	t.Helper()
	it, err := NewItem(service, qty, unitPrice)
	if err != nil {
		t.Fatalf("NewItem: %v", err)
	}
	return it
}

func newInvoice(t *testing.T, items ...Item) *Invoice {
	t.Helper()
	inv, err := New("2022001", testConfig(), testCompany(t), testClient(t), items...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return inv
}

func TestItemValidation(t *testing.T) {
	tests := []struct {
		name      string
		service   string
		qty       float64
		unitPrice float64
	}{
		{"missing service", "", 1, 10},
		{"zero qty", "consulting", 0, 10},
		{"negative qty", "consulting", -1, 10},
		{"zero unit price", "consulting", 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewItem(tt.service, tt.qty, tt.unitPrice); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	if err := (Item{Service: "x", Qty: 1, UnitPrice: 1}.WithVAT(120)).Validate(); err == nil {
		t.Error("vat 120 expected validation error")
	}
}

func TestVATResolutionAtInsertion(t *testing.T) {
	inv := newInvoice(t)

	t.Run("nil vat inherits the config default", func(t *testing.T) {
		if err := inv.AddItem(mustInvoiceItem(t, "consulting", 2, 100)); err != nil {
			t.Fatalf("AddItem: %v", err)
		}
		got, _ := inv.Get(0)
		if got.VAT == nil || *got.VAT != 4 {
			t.Fatalf("VAT = %v, expected resolved 4", got.VAT)
		}
	})

	t.Run("explicit vat stays", func(t *testing.T) {
		if err := inv.AddItem(mustInvoiceItem(t, "hosting", 1, 50).WithVAT(10)); err != nil {
			t.Fatalf("AddItem: %v", err)
		}
		got, _ := inv.Get(1)
		if got.VAT == nil || *got.VAT != 10 {
			t.Fatalf("VAT = %v, expected 10", got.VAT)
		}
	})

	t.Run("later config changes do not retroact", func(t *testing.T) {
		inv.Config.VAT = 19
		got, _ := inv.Get(0)
		if *got.VAT != 4 {
			t.Errorf("stored VAT changed to %v", *got.VAT)
		}
	})

	t.Run("new insertions use the new default", func(t *testing.T) {
		if err := inv.Insert(0, mustInvoiceItem(t, "design", 1, 10)); err != nil {
			t.Fatalf("Insert: %v", err)
		}
		got, _ := inv.Get(0)
		if *got.VAT != 19 {
			t.Errorf("VAT = %v, expected 19", *got.VAT)
		}
	})

	t.Run("patching vat to nil resolves again", func(t *testing.T) {
		target, _ := inv.Get(1)
		if err := inv.EditItem(target, sheet.Patch[Item](map[string]any{"vat": nil})); err != nil {
			t.Fatalf("EditItem: %v", err)
		}
		got, _ := inv.Get(1)
		if got.VAT == nil || *got.VAT != 19 {
			t.Errorf("VAT = %v, expected re-resolved 19", got.VAT)
		}
	})
}

func TestEveryInsertionPathResolvesVAT(t *testing.T) {
	paths := []struct {
		name   string
		insert func(inv *Invoice, it Item) error
	}{
		{"AddItem", func(inv *Invoice, it Item) error { return inv.AddItem(it) }},
		{"Append", func(inv *Invoice, it Item) error { return inv.Append(it) }},
		{"Insert", func(inv *Invoice, it Item) error { return inv.Insert(0, it) }},
		{"Set", func(inv *Invoice, it Item) error {
			if err := inv.AddItem(mustInvoiceItem(t, "placeholder", 1, 1)); err != nil {
				return err
			}
			return inv.Set(0, it)
		}},
	}

	for _, tt := range paths {
		t.Run(tt.name, func(t *testing.T) {
			inv := newInvoice(t)
			if err := tt.insert(inv, mustInvoiceItem(t, "consulting", 2, 100)); err != nil {
				t.Fatalf("%s: %v", tt.name, err)
			}
			got, _ := inv.Get(0)
			if got.VAT == nil {
				t.Fatalf("%s stored the item with a nil VAT", tt.name)
			}
			if *got.VAT != 4 {
				t.Errorf("%s stored VAT = %v, expected the config default 4", tt.name, *got.VAT)
			}
		})
	}
}

func TestInvoiceAggregates(t *testing.T) {
	inv := newInvoice(t,
		mustInvoiceItem(t, "consulting", 2, 100),        // inherits 4 %
		mustInvoiceItem(t, "hosting", 1, 50).WithVAT(0), // explicit 0 %
	)

	if got := inv.Subtotal(); !almostEqual(got, 250) {
		t.Errorf("Subtotal = %v, expected 250", got)
	}
	if got := inv.Tax(); !almostEqual(got, 8) {
		t.Errorf("Tax = %v, expected 8", got)
	}
	if got := inv.Total(); !almostEqual(got, 258) {
		t.Errorf("Total = %v, expected 258", got)
	}
}

func TestDueTo(t *testing.T) {
	inv := newInvoice(t)
	if got := inv.DueTo(); got != sheet.MustDate("2022-02-04") {
		t.Errorf("DueTo = %s, expected 2022-02-04", got)
	}
}

func TestMeta(t *testing.T) {
	inv := newInvoice(t,
		mustInvoiceItem(t, "consulting", 2, 100),
		mustInvoiceItem(t, "hosting", 1, 50).WithVAT(0),
	)

	meta, err := inv.Meta()
	if err != nil {
		t.Fatalf("Meta: %v", err)
	}
	if meta.Invoicenumber != "2022001" {
		t.Errorf("Invoicenumber = %q", meta.Invoicenumber)
	}
	if !almostEqual(meta.Value, 258) {
		t.Errorf("Value = %v, expected 258", meta.Value)
	}
	if !almostEqual(meta.VAT, 8.0/250*100) {
		t.Errorf("VAT = %v, expected blended 3.2", meta.VAT)
	}
	if meta.DueTo != inv.DueTo() {
		t.Errorf("DueTo = %s", meta.DueTo)
	}
	if meta.PayedOn != nil {
		t.Errorf("PayedOn = %v, expected nil", meta.PayedOn)
	}
}

func TestMetaOnEmptyInvoice(t *testing.T) {
	inv := newInvoice(t)
	if _, err := inv.Meta(); err == nil {
		t.Error("Meta on empty invoice expected error")
	}

	// CAItem on a settled empty invoice divides by the subtotal too.
	on := sheet.MustDate("2022-02-01")
	inv.PayedOn = &on
	if _, err := inv.CAItem(); err == nil {
		t.Error("CAItem on settled empty invoice expected error")
	}
}

func TestCAItem(t *testing.T) {
	inv := newInvoice(t, mustInvoiceItem(t, "consulting", 2, 100))

	t.Run("unsettled yields nil", func(t *testing.T) {
		it, err := inv.CAItem()
		if err != nil {
			t.Fatalf("CAItem: %v", err)
		}
		if it != nil {
			t.Errorf("CAItem = %+v, expected nil", it)
		}
	})

	t.Run("settled yields the ledger entry", func(t *testing.T) {
		if err := inv.Settle(sheet.MustDate("2022-02-01")); err != nil {
			t.Fatalf("Settle: %v", err)
		}
		it, err := inv.CAItem()
		if err != nil {
			t.Fatalf("CAItem: %v", err)
		}
		if it.Description != "Invoice no. 2022001" {
			t.Errorf("Description = %q", it.Description)
		}
		if !almostEqual(it.Value, inv.Total()) {
			t.Errorf("Value = %v, expected %v", it.Value, inv.Total())
		}
		if it.Date != sheet.MustDate("2022-02-01") {
			t.Errorf("Date = %s", it.Date)
		}
		if it.Currency != inv.Config.CurrencySymbol {
			t.Errorf("Currency = %q", it.Currency)
		}
	})
}

func TestSettleRejectsMalformedDate(t *testing.T) {
	inv := newInvoice(t)
	if err := inv.Settle(sheet.Date("tomorrow")); err == nil {
		t.Error("expected validation error")
	}
	if inv.PayedOn != nil {
		t.Errorf("failed Settle set PayedOn = %v", inv.PayedOn)
	}
}

func TestInvoiceJSONRoundTrip(t *testing.T) {
	inv := newInvoice(t,
		mustInvoiceItem(t, "consulting", 2, 100),
		mustInvoiceItem(t, "hosting", 1, 50).WithVAT(10),
	)
	on := sheet.MustDate("2022-02-01")
	inv.PayedOn = &on

	data, err := json.Marshal(inv)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded Invoice
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if decoded.Invoicenumber != inv.Invoicenumber {
		t.Errorf("Invoicenumber = %q", decoded.Invoicenumber)
	}
	if decoded.Config != inv.Config {
		t.Errorf("Config = %+v", decoded.Config)
	}
	if decoded.Company != inv.Company {
		t.Errorf("Company = %+v", decoded.Company)
	}
	if decoded.Client != inv.Client {
		t.Errorf("Client = %+v", decoded.Client)
	}
	if decoded.PayedOn == nil || *decoded.PayedOn != on {
		t.Errorf("PayedOn = %v", decoded.PayedOn)
	}
	if !decoded.Equal(inv.Items()) {
		t.Errorf("items mismatch:\n%s", data)
	}
	// Stored items keep their resolved VAT.
	got, _ := decoded.Get(0)
	if got.VAT == nil || *got.VAT != 4 {
		t.Errorf("decoded VAT = %v, expected 4", got.VAT)
	}
}

func TestInvoiceJSONRejectsInvalidItems(t *testing.T) {
	data := []byte(`{
		"invoicenumber": "2022001",
		"config": {"language": "english", "date": "2022-01-05", "vat": 0,
			"deadline": 30, "invoicestyle": "classic",
			"currency_symbol": "X", "currency_code": "EUR"},
		"items": [{"service": "consulting", "qty": 0, "unit_price": 10}]
	}`)
	var inv Invoice
	if err := json.Unmarshal(data, &inv); err == nil {
		t.Error("expected validation error for qty 0")
	}
}

func TestMetadataOverviewValues(t *testing.T) {
	meta := Metadata{
		Invoicenumber: "2022001",
		Value:         100,
		VAT:           19,
		DueTo:         sheet.MustDate("2022-02-04"),
	}
	if err := meta.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	v := meta.Values()
	if v[0] != "2022001" {
		t.Errorf("invoicenumber column = %v", v[0])
	}
	if !almostEqual(v[1].(float64), 119) {
		t.Errorf("total column = %v, expected 119", v[1])
	}
	if !almostEqual(v[2].(float64), 19) {
		t.Errorf("tax column = %v, expected 19", v[2])
	}
}
