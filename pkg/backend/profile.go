// Package backend orchestrates the bookkeeping of one company and year over
// file storage. Invoices, the yearly ledger and clients live as JSON files
// under the profile's parent directory; the files are the source of truth and
// every mutation is persisted by whole-file replace.
package backend

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/NicDom/tia/pkg/accounting"
	"github.com/NicDom/tia/pkg/invoice"
	"github.com/NicDom/tia/pkg/party"
	"github.com/NicDom/tia/pkg/pathutil"
)

// Profile carries the per-company settings: the issuing company, the default
// invoice and ledger configurations, the storage directories and the behavior
// flags. It is loaded from a YAML file.
type Profile struct {
	Company                 party.Company     `yaml:"company"`
	DefaultInvoiceConfig    invoice.Config    `yaml:"default_invoice_config"`
	DefaultAccountingConfig accounting.Config `yaml:"default_accounting_config"`

	// Directory overrides; empty fields fall back to the tree under
	// $HOME/.tia/<company name>.
	ParentDir     string `yaml:"parent_dir"`
	PDFParentDir  string `yaml:"pdf_parent_dir"`
	PDFInvoiceDir string `yaml:"pdf_invoice_dir"`
	PDFEURDir     string `yaml:"pdf_eur_dir"`

	OpenPDF    bool `yaml:"open_pdf"`
	AutoRemind bool `yaml:"auto_remind"`

	// Banks maps national bank codes to account data for offline IBAN
	// lookups; only consulted when the company asks for derived account
	// information.
	Banks map[string]party.BankAccount `yaml:"banks"`
}

// LoadProfile reads and validates a profile YAML file. The company passes
// through NewCompany, so its bank account is checked; a nil dir falls back to
// the profile's own bank table.
func LoadProfile(path string, dir party.BankDirectory) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	p.applyDefaults()

	if dir == nil {
		dir = party.NewStaticDirectory(p.Banks)
	}
	company, err := party.NewCompany(p.Company, dir)
	if err != nil {
		return nil, fmt.Errorf("invalid company in profile: %w", err)
	}
	p.Company = company

	if err := p.DefaultInvoiceConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid default invoice config: %w", err)
	}
	if err := p.DefaultAccountingConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid default accounting config: %w", err)
	}

	return &p, nil
}

// applyDefaults fills unset configuration fields. A profile only needs to
// state what differs from the defaults.
func (p *Profile) applyDefaults() {
	def := invoice.DefaultConfig()
	c := &p.DefaultInvoiceConfig
	if c.Language == "" {
		c.Language = def.Language
	}
	if c.Date == "" {
		c.Date = def.Date
	}
	if c.Deadline == 0 {
		c.Deadline = def.Deadline
	}
	if c.Style == "" {
		c.Style = def.Style
	}
	if c.CurrencySymbol == "" {
		c.CurrencySymbol = def.CurrencySymbol
	}
	if c.CurrencyCode == "" {
		c.CurrencyCode = def.CurrencyCode
	}
	if p.DefaultAccountingConfig.Language == "" {
		p.DefaultAccountingConfig = accounting.DefaultConfig()
	}
}

// Resolver builds the path resolver for this profile's storage tree.
func (p *Profile) Resolver() (*pathutil.Resolver, error) {
	return pathutil.New(pathutil.Config{
		ParentDir:     p.ParentDir,
		CompanyName:   p.Company.Name,
		PDFParentDir:  p.PDFParentDir,
		PDFInvoiceDir: p.PDFInvoiceDir,
		PDFEURDir:     p.PDFEURDir,
	})
}
