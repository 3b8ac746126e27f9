package party

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func validClient() Client {
	return Client{
		Ref:     "10001",
		Name:    "Bob Cratchit",
		Street:  "Baker Street 221b",
		PLZ:     "20095",
		City:    "Hamburg",
		Country: "Germany",
		Email:   "bob@cratchit.com",
	}
}

func validCompany() Company {
	return Company{
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
	}
}

func TestClientMailDefaults(t *testing.T) {
	c, err := NewClient(validClient())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.InvoiceMail != c.Email || c.ReminderMail != c.Email {
		t.Errorf("mail defaults not applied: %+v", c)
	}

	explicit := validClient()
	explicit.InvoiceMail = "billing@cratchit.com"
	c, err = NewClient(explicit)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.InvoiceMail != "billing@cratchit.com" {
		t.Errorf("explicit invoice mail overwritten: %q", c.InvoiceMail)
	}
	if c.ReminderMail != c.Email {
		t.Errorf("reminder mail not defaulted: %q", c.ReminderMail)
	}
}

func TestClientValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Client)
	}{
		{"short ref", func(c *Client) { c.Ref = "123" }},
		{"non-numeric ref", func(c *Client) { c.Ref = "1000a" }},
		{"missing name", func(c *Client) { c.Name = "" }},
		{"bad email", func(c *Client) { c.Email = "not-an-address" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validClient()
			tt.mutate(&c)
			if _, err := NewClient(c); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestClientJSONAliases(t *testing.T) {
	c, err := NewClient(validClient())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, key := range []string{"clientref", "clientname", "clientinvoicemail"} {
		if !strings.Contains(string(data), `"`+key+`"`) {
			t.Errorf("encoding missing %q: %s", key, data)
		}
	}

	// Decoding applies the mail defaults.
	var decoded Client
	payload := `{"clientref":"10002","clientname":"N","clientstreet":"S","clientplz":"P","clientcity":"C","clientcountry":"D","clientemail":"n@example.com"}`
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.InvoiceMail != "n@example.com" {
		t.Errorf("InvoiceMail = %q", decoded.InvoiceMail)
	}
}

func TestNewCompanyTrustedAccount(t *testing.T) {
	c, err := NewCompany(validCompany(), nil)
	if err != nil {
		t.Fatalf("NewCompany: %v", err)
	}
	if c.BIC != "BYLADEM1001" || c.Bank != "DKB Berlin" {
		t.Errorf("account data changed: %+v", c)
	}

	t.Run("missing BIC", func(t *testing.T) {
		broken := validCompany()
		broken.BIC = ""
		var adErr *AccountDataMissingError
		if _, err := NewCompany(broken, nil); !errors.As(err, &adErr) {
			t.Errorf("expected AccountDataMissingError, got %v", err)
		}
	})

	t.Run("missing bank", func(t *testing.T) {
		broken := validCompany()
		broken.Bank = ""
		var adErr *AccountDataMissingError
		if _, err := NewCompany(broken, nil); !errors.As(err, &adErr) {
			t.Errorf("expected AccountDataMissingError, got %v", err)
		}
	})
}

func TestNewCompanyDerivedAccount(t *testing.T) {
	dir := NewStaticDirectory(map[string]BankAccount{
		"12030000": {BIC: "BYLADEM1001", Bank: "Deutsche Kreditbank"},
	})

	c := validCompany()
	c.ValidateAccountInformation = true
	c.BIC = ""
	c.Bank = ""

	resolved, err := NewCompany(c, dir)
	if err != nil {
		t.Fatalf("NewCompany: %v", err)
	}
	if resolved.BIC != "BYLADEM1001" || resolved.Bank != "Deutsche Kreditbank" {
		t.Errorf("lookup not applied: %+v", resolved)
	}

	t.Run("unknown bank code", func(t *testing.T) {
		unknown := c
		unknown.IBAN = "DE02100100100006820101"
		if _, err := NewCompany(unknown, dir); err == nil {
			t.Error("expected lookup failure")
		}
	})

	t.Run("nil directory", func(t *testing.T) {
		var adErr *AccountDataMissingError
		if _, err := NewCompany(c, nil); !errors.As(err, &adErr) {
			t.Errorf("expected AccountDataMissingError, got %v", err)
		}
	})
}

func TestStaticDirectoryLookup(t *testing.T) {
	dir := NewStaticDirectory(map[string]BankAccount{
		"12030000": {BIC: "BYLADEM1001", Bank: "DKB"},
	})

	tests := []struct {
		name    string
		iban    string
		wantErr bool
	}{
		{"known", "DE02120300000000202051", false},
		{"with spaces", "DE02 1203 0000 0000 2020 51", false},
		{"wrong length", "DE0212030000", true},
		{"other country", "FR1420041010050500013M02606", true},
		{"garbage", "xx", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account, err := dir.LookupIBAN(tt.iban)
			if tt.wantErr {
				if err == nil {
					t.Errorf("LookupIBAN(%q) expected error", tt.iban)
				}
				return
			}
			if err != nil {
				t.Fatalf("LookupIBAN(%q): %v", tt.iban, err)
			}
			if account.BIC != "BYLADEM1001" {
				t.Errorf("BIC = %q", account.BIC)
			}
		})
	}
}

func TestDisplayBlocks(t *testing.T) {
	c, _ := NewClient(validClient())
	out := c.String()
	for _, want := range []string{"Client_ID: 10001", "Bob Cratchit", "Baker Street 221b", "mail (invoice)"} {
		if !strings.Contains(out, want) {
			t.Errorf("client String missing %q:\n%s", want, out)
		}
	}

	co, _ := NewCompany(validCompany(), nil)
	out = co.String()
	for _, want := range []string{"Scrooge and Marley", "IBAN: DE02120300000000202051", "12/345/67890"} {
		if !strings.Contains(out, want) {
			t.Errorf("company String missing %q:\n%s", want, out)
		}
	}
}
