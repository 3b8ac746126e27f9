// Package pathutil provides centralized path management for the TIA storage
// tree: invoice and ledger JSON files, client files, PDF output directories
// and the bookkeeping database.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// Basenames of the generated document families.
const (
	InvoiceBasename = "invoice_"
	EURBasename     = "EUR_"
)

// Resolver manages the paths under a profile's parent directory:
//
//	<parent>/.invoices/<year>/config_<number>.json
//	<parent>/.cash_accs/<year>/EUR_<year>.json
//	<parent>/.clients/client_<ref>.json
//	<parent>/Balances/{Invoices,EUR}   (PDF output)
//	<parent>/.tia.db
type Resolver struct {
	parentDir     string
	pdfParentDir  string
	pdfInvoiceDir string
	pdfEURDir     string
	databasePath  string
}

// Config configures a Resolver. Empty fields get the defaults documented on
// New.
type Config struct {
	// ParentDir is the root of the storage tree
	// (default: $HOME/.tia/<company name>).
	ParentDir string
	// CompanyName picks the default ParentDir when none is given.
	CompanyName string
	// PDFParentDir holds the rendered documents (default: <parent>/Balances).
	PDFParentDir string
	// PDFInvoiceDir holds rendered invoices (default: <pdf parent>/Invoices).
	PDFInvoiceDir string
	// PDFEURDir holds rendered ledgers (default: <pdf parent>/EUR).
	PDFEURDir string
	// DatabasePath is the bookkeeping database (default: <parent>/.tia.db).
	DatabasePath string
}

// New creates a Resolver, filling unset directories with their defaults.
func New(config Config) (*Resolver, error) {
	parent := config.ParentDir
	if parent == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine home directory: %w", err)
		}
		if config.CompanyName == "" {
			return nil, fmt.Errorf("either ParentDir or CompanyName is required")
		}
		parent = filepath.Join(home, ".tia", config.CompanyName)
	}

	pdfParent := config.PDFParentDir
	if pdfParent == "" {
		pdfParent = filepath.Join(parent, "Balances")
	}
	pdfInvoice := config.PDFInvoiceDir
	if pdfInvoice == "" {
		pdfInvoice = filepath.Join(pdfParent, "Invoices")
	}
	pdfEUR := config.PDFEURDir
	if pdfEUR == "" {
		pdfEUR = filepath.Join(pdfParent, "EUR")
	}
	dbPath := config.DatabasePath
	if dbPath == "" {
		dbPath = filepath.Join(parent, ".tia.db")
	}

	return &Resolver{
		parentDir:     parent,
		pdfParentDir:  pdfParent,
		pdfInvoiceDir: pdfInvoice,
		pdfEURDir:     pdfEUR,
		databasePath:  dbPath,
	}, nil
}

// ParentDir returns the root of the storage tree.
func (r *Resolver) ParentDir() string {
	return r.parentDir
}

// PDFParentDir returns the root of the rendered documents.
func (r *Resolver) PDFParentDir() string {
	return r.pdfParentDir
}

// PDFInvoiceDir returns the directory for rendered invoices.
func (r *Resolver) PDFInvoiceDir() string {
	return r.pdfInvoiceDir
}

// PDFEURDir returns the directory for rendered ledgers.
func (r *Resolver) PDFEURDir() string {
	return r.pdfEURDir
}

// DatabasePath returns the bookkeeping database file path.
func (r *Resolver) DatabasePath() string {
	return r.databasePath
}

// InvoiceDir returns the invoice storage directory for a year.
func (r *Resolver) InvoiceDir(year int) string {
	return filepath.Join(r.parentDir, ".invoices", fmt.Sprintf("%d", year))
}

// CashAccDir returns the ledger storage directory for a year.
func (r *Resolver) CashAccDir(year int) string {
	return filepath.Join(r.parentDir, ".cash_accs", fmt.Sprintf("%d", year))
}

// ClientDir returns the client storage directory.
func (r *Resolver) ClientDir() string {
	return filepath.Join(r.parentDir, ".clients")
}

// InvoiceFilePath returns the storage file for an invoice.
func (r *Resolver) InvoiceFilePath(year int, invoicenumber string) string {
	return filepath.Join(r.InvoiceDir(year), fmt.Sprintf("config_%s.json", invoicenumber))
}

// CashAccFilePath returns the storage file for a year's ledger.
func (r *Resolver) CashAccFilePath(year int) string {
	return filepath.Join(r.CashAccDir(year), fmt.Sprintf("%s%d.json", EURBasename, year))
}

// ClientFilePath returns the storage file for a client reference.
func (r *Resolver) ClientFilePath(ref string) string {
	return filepath.Join(r.ClientDir(), fmt.Sprintf("client_%s.json", ref))
}

// AuxDir returns the scratch directory used while compiling a document.
func (r *Resolver) AuxDir(name string) string {
	return filepath.Join(r.parentDir, ".aux_files", name)
}

// EnsureDir creates a directory and its parents if missing.
func (r *Resolver) EnsureDir(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dirPath, err)
	}
	return nil
}

// EnsureParentDir ensures the parent directory of a file exists.
func (r *Resolver) EnsureParentDir(filePath string) error {
	return r.EnsureDir(filepath.Dir(filePath))
}

// EnsureTree creates the full storage tree for a year.
func (r *Resolver) EnsureTree(year int) error {
	for _, dir := range []string{
		r.parentDir,
		r.pdfParentDir,
		r.pdfInvoiceDir,
		r.pdfEURDir,
		r.InvoiceDir(year),
		r.CashAccDir(year),
		r.ClientDir(),
	} {
		if err := r.EnsureDir(dir); err != nil {
			return err
		}
	}
	return nil
}

// FileExists checks if a file exists.
func (r *Resolver) FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}

// IsDir checks if a path is a directory.
func (r *Resolver) IsDir(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}
