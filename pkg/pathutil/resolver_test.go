package pathutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDefaults(t *testing.T) {
	parent := t.TempDir()
	r, err := New(Config{ParentDir: parent})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if r.PDFParentDir() != filepath.Join(parent, "Balances") {
		t.Errorf("PDFParentDir = %q", r.PDFParentDir())
	}
	if r.PDFInvoiceDir() != filepath.Join(parent, "Balances", "Invoices") {
		t.Errorf("PDFInvoiceDir = %q", r.PDFInvoiceDir())
	}
	if r.PDFEURDir() != filepath.Join(parent, "Balances", "EUR") {
		t.Errorf("PDFEURDir = %q", r.PDFEURDir())
	}
	if r.DatabasePath() != filepath.Join(parent, ".tia.db") {
		t.Errorf("DatabasePath = %q", r.DatabasePath())
	}
}

func TestNewCompanyDefault(t *testing.T) {
	r, err := New(Config{CompanyName: "Scrooge"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	home, _ := os.UserHomeDir()
	if r.ParentDir() != filepath.Join(home, ".tia", "Scrooge") {
		t.Errorf("ParentDir = %q", r.ParentDir())
	}

	if _, err := New(Config{}); err == nil {
		t.Error("New without parent dir or company expected error")
	}
}

func TestFilePaths(t *testing.T) {
	r, err := New(Config{ParentDir: "/data"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"invoice dir", r.InvoiceDir(2022), "/data/.invoices/2022"},
		{"ledger dir", r.CashAccDir(2022), "/data/.cash_accs/2022"},
		{"client dir", r.ClientDir(), "/data/.clients"},
		{"invoice file", r.InvoiceFilePath(2022, "2022001"), "/data/.invoices/2022/config_2022001.json"},
		{"ledger file", r.CashAccFilePath(2022), "/data/.cash_accs/2022/EUR_2022.json"},
		{"client file", r.ClientFilePath("10001"), "/data/.clients/client_10001.json"},
		{"aux dir", r.AuxDir("invoice_2022001"), "/data/.aux_files/invoice_2022001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != filepath.FromSlash(tt.expected) {
				t.Errorf("got %q, expected %q", tt.got, tt.expected)
			}
		})
	}
}

func TestEnsureTree(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "root")
	r, err := New(Config{ParentDir: parent})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := r.EnsureTree(2022); err != nil {
		t.Fatalf("EnsureTree: %v", err)
	}

	for _, dir := range []string{
		r.InvoiceDir(2022),
		r.CashAccDir(2022),
		r.ClientDir(),
		r.PDFInvoiceDir(),
		r.PDFEURDir(),
	} {
		if !r.IsDir(dir) {
			t.Errorf("missing directory %q", dir)
		}
	}
}

func TestFileChecks(t *testing.T) {
	parent := t.TempDir()
	r, err := New(Config{ParentDir: parent})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	path := filepath.Join(parent, "sub", "file.json")
	if r.FileExists(path) {
		t.Error("FileExists on missing file = true")
	}
	if err := r.EnsureParentDir(path); err != nil {
		t.Fatalf("EnsureParentDir: %v", err)
	}
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if !r.FileExists(path) {
		t.Error("FileExists on existing file = false")
	}
	if r.IsDir(path) {
		t.Error("IsDir on file = true")
	}
}
