package party

import (
	"fmt"
	"strings"

	"github.com/NicDom/tia/pkg/sheet"
)

// AccountDataMissingError reports an incomplete bank account: BIC or bank
// name absent and not derivable.
type AccountDataMissingError struct {
	Message string
}

func (e *AccountDataMissingError) Error() string {
	if e.Message == "" {
		return "company BIC or company bank are missing"
	}
	return e.Message
}

// BankAccount is the result of an IBAN lookup.
type BankAccount struct {
	BIC  string
	Bank string
}

// BankDirectory resolves an IBAN to BIC and bank name. Implementations are
// external collaborators; see StaticDirectory for an offline one.
type BankDirectory interface {
	LookupIBAN(iban string) (BankAccount, error)
}

// Company is the invoice-issuing party.
type Company struct {
	Name      string `json:"companyname" yaml:"companyname" validate:"required"`
	Street    string `json:"companystreet" yaml:"companystreet" validate:"required"`
	PLZ       string `json:"companyplz" yaml:"companyplz" validate:"required"`
	City      string `json:"companycity" yaml:"companycity" validate:"required"`
	Country   string `json:"companycountry" yaml:"companycountry" validate:"required"`
	Email     string `json:"companyemail" yaml:"companyemail" validate:"required,email"`
	Logo      string `json:"companylogo" yaml:"companylogo"`
	Phone     string `json:"companyphone" yaml:"companyphone" validate:"required"`
	TaxNumber string `json:"companytaxnumber" yaml:"companytaxnumber" validate:"required"`
	IBAN      string `json:"companyiban" yaml:"companyiban" validate:"required"`
	BIC       string `json:"companybic" yaml:"companybic"`
	Bank      string `json:"companybank" yaml:"companybank"`

	// ValidateAccountInformation selects how the bank account is checked:
	// false trusts the supplied BIC/bank and requires both, true derives them
	// from the IBAN through a BankDirectory.
	ValidateAccountInformation bool `json:"validate_account_information" yaml:"validate_account_information"`
}

// NewCompany validates the company. With ValidateAccountInformation set, BIC
// and bank name are resolved from the IBAN through dir; otherwise both must
// be supplied.
func NewCompany(c Company, dir BankDirectory) (Company, error) {
	if !c.ValidateAccountInformation {
		if c.BIC == "" {
			return Company{}, &AccountDataMissingError{Message: "company BIC is missing"}
		}
		if c.Bank == "" {
			return Company{}, &AccountDataMissingError{Message: "company bank is missing"}
		}
	} else {
		if dir == nil {
			return Company{}, &AccountDataMissingError{Message: "no bank directory configured"}
		}
		account, err := dir.LookupIBAN(c.IBAN)
		if err != nil {
			return Company{}, fmt.Errorf("IBAN lookup for %q failed: %w", c.IBAN, err)
		}
		if account.BIC != "" {
			c.BIC = account.BIC
		}
		if account.Bank != "" {
			c.Bank = account.Bank
		}
		if c.BIC == "" || c.Bank == "" {
			return Company{}, &AccountDataMissingError{}
		}
	}
	if err := sheet.ValidateStruct(c); err != nil {
		return Company{}, err
	}
	return c, nil
}

// ContactInformation returns the phone/mail block.
func (c Company) ContactInformation() string {
	return fmt.Sprintf("phone: %s\nmail: %s", c.Phone, c.Email)
}

// BankAccountInformation returns the account block.
func (c Company) BankAccountInformation() string {
	return fmt.Sprintf("IBAN: %s\nBIC: %s\nBank: %s", c.IBAN, c.BIC, c.Bank)
}

// Address returns the postal address block.
func (c Company) Address() string {
	return fmt.Sprintf("%s\n%s, %s\n%s", c.Street, c.PLZ, c.City, c.Country)
}

// Compact returns the display blocks of the company.
func (c Company) Compact() []string {
	return []string{
		c.Name,
		c.Address(),
		c.ContactInformation(),
		c.BankAccountInformation(),
		c.TaxNumber,
	}
}

// String renders the company for terminal display.
func (c Company) String() string {
	return strings.Join(c.Compact(), "\n\n")
}
