package party

import (
	"fmt"
	"strings"
)

// StaticDirectory is an offline BankDirectory backed by a table of national
// bank codes, typically loaded from the profile file. German IBANs carry the
// bank code in positions 4-12 (DEkk BBBB BBBB CCCC CCCC CC).
type StaticDirectory struct {
	entries map[string]BankAccount
}

// NewStaticDirectory builds a directory from bank-code to account entries.
func NewStaticDirectory(entries map[string]BankAccount) *StaticDirectory {
	if entries == nil {
		entries = map[string]BankAccount{}
	}
	return &StaticDirectory{entries: entries}
}

// LookupIBAN resolves the IBAN's bank code against the table.
func (d *StaticDirectory) LookupIBAN(iban string) (BankAccount, error) {
	code, err := bankCode(iban)
	if err != nil {
		return BankAccount{}, err
	}
	account, ok := d.entries[code]
	if !ok {
		return BankAccount{}, fmt.Errorf("unknown bank code %q", code)
	}
	return account, nil
}

// bankCode extracts the national bank code from an IBAN. Only the German
// layout is tabulated; other countries need a richer directory.
func bankCode(iban string) (string, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(iban, " ", ""))
	if len(normalized) < 4 {
		return "", fmt.Errorf("malformed IBAN %q", iban)
	}
	switch normalized[:2] {
	case "DE":
		if len(normalized) != 22 {
			return "", fmt.Errorf("malformed IBAN %q: German IBANs have 22 characters", iban)
		}
		return normalized[4:12], nil
	default:
		return "", fmt.Errorf("no bank code table for country %q", normalized[:2])
	}
}
