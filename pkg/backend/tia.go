package backend

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/NicDom/tia/pkg/accounting"
	"github.com/NicDom/tia/pkg/db"
	"github.com/NicDom/tia/pkg/invoice"
	"github.com/NicDom/tia/pkg/party"
	"github.com/NicDom/tia/pkg/pathutil"
	"github.com/NicDom/tia/pkg/sheet"
)

// TIA is the year-scoped orchestrator. It owns the storage tree of one
// profile, keeps at most one invoice open for item operations and loads the
// ledger fresh from its file on every access.
type TIA struct {
	Year    int
	Profile *Profile
	Paths   *pathutil.Resolver

	// Invoice is the currently open invoice, nil when none.
	Invoice *invoice.Invoice

	registry *db.NumberRegistry
}

// New creates the orchestrator for a profile and year (current year when 0)
// and ensures the storage tree exists.
func New(profile *Profile, year int) (*TIA, error) {
	if year == 0 {
		year = time.Now().Year()
	}
	paths, err := profile.Resolver()
	if err != nil {
		return nil, err
	}
	if err := paths.EnsureTree(year); err != nil {
		return nil, err
	}
	return &TIA{Year: year, Profile: profile, Paths: paths}, nil
}

// WithRegistry attaches the invoice number registry. Issued and deleted
// numbers are then mirrored into the database.
func (t *TIA) WithRegistry(registry *db.NumberRegistry) *TIA {
	t.registry = registry
	return t
}

// invoiceNumbers lists the stored invoicenumbers of the year, ascending by
// numeric value. Lexicographic order would break once a year passes 999
// invoices ("<year>1000" sorts before "<year>999" as a string).
func (t *TIA) invoiceNumbers() ([]string, error) {
	entries, err := os.ReadDir(t.Paths.InvoiceDir(t.Year))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list invoice directory: %w", err)
	}

	var numbers []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "config_") && strings.HasSuffix(name, ".json") {
			numbers = append(numbers, strings.TrimSuffix(strings.TrimPrefix(name, "config_"), ".json"))
		}
	}
	sort.Slice(numbers, func(i, j int) bool {
		a, aerr := strconv.Atoi(numbers[i])
		b, berr := strconv.Atoi(numbers[j])
		if aerr != nil || berr != nil {
			return numbers[i] < numbers[j]
		}
		return a < b
	})
	return numbers, nil
}

// LastInvoicenumber returns the highest stored invoicenumber of the year.
// With no invoices on file it returns "<year>000", so the first issued number
// is "<year>001". Invoicenumbers are unique and increasing within a year.
func (t *TIA) LastInvoicenumber() (string, error) {
	numbers, err := t.invoiceNumbers()
	if err != nil {
		return "", err
	}
	if len(numbers) == 0 {
		return fmt.Sprintf("%d000", t.Year), nil
	}
	return numbers[len(numbers)-1], nil
}

// NewInvoice creates, opens and persists a new invoice under the next
// invoicenumber. A nil config falls back to the profile default; a nil client
// falls back to the sole stored client.
func (t *TIA) NewInvoice(config *invoice.Config, client *party.Client, items ...invoice.Item) (*invoice.Invoice, error) {
	last, err := t.LastInvoicenumber()
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(last)
	if err != nil {
		return nil, fmt.Errorf("malformed invoicenumber %q on file: %w", last, err)
	}
	number := strconv.Itoa(n + 1)

	cfg := t.Profile.DefaultInvoiceConfig
	if config != nil {
		cfg = *config
	}
	cl, err := t.resolveClient(client)
	if err != nil {
		return nil, err
	}

	inv, err := invoice.New(number, cfg, t.Profile.Company, cl, items...)
	if err != nil {
		return nil, err
	}
	t.Invoice = inv
	if err := t.SaveInvoice(inv); err != nil {
		return nil, err
	}

	if t.registry != nil {
		if err := t.registry.Record(t.Year, number); err != nil {
			slog.Warn("failed to record invoicenumber", "number", number, "error", err)
		}
	}
	slog.Debug("created invoice", "number", number, "client", cl.Ref)
	return inv, nil
}

// OpenInvoice loads the invoice with the given invoicenumber and makes it the
// open one.
func (t *TIA) OpenInvoice(invoicenumber string) (*invoice.Invoice, error) {
	path := t.Paths.InvoiceFilePath(t.Year, invoicenumber)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("invoice %s does not exist: %w", invoicenumber, err)
	}
	var inv invoice.Invoice
	if err := json.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("failed to load invoice %s: %w", invoicenumber, err)
	}
	t.Invoice = &inv
	return &inv, nil
}

// SaveInvoice persists an invoice by whole-file replace.
func (t *TIA) SaveInvoice(inv *invoice.Invoice) error {
	if inv == nil {
		return &NoInvoiceOpenError{}
	}
	data, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode invoice %s: %w", inv.Invoicenumber, err)
	}
	path := t.Paths.InvoiceFilePath(t.Year, inv.Invoicenumber)
	if err := t.Paths.EnsureParentDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write invoice %s: %w", inv.Invoicenumber, err)
	}
	return nil
}

// Invoices loads every invoice of the year, sorted by invoicenumber.
func (t *TIA) Invoices() ([]*invoice.Invoice, error) {
	numbers, err := t.invoiceNumbers()
	if err != nil {
		return nil, err
	}
	invoices := make([]*invoice.Invoice, 0, len(numbers))
	for _, number := range numbers {
		path := t.Paths.InvoiceFilePath(t.Year, number)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read invoice %s: %w", number, err)
		}
		var inv invoice.Invoice
		if err := json.Unmarshal(data, &inv); err != nil {
			return nil, fmt.Errorf("failed to load invoice %s: %w", number, err)
		}
		invoices = append(invoices, &inv)
	}
	return invoices, nil
}

// InvoicesMeta summarizes every invoice of the year into a metadata list,
// sorted by invoicenumber. Its String renders the yearly invoice overview.
func (t *TIA) InvoicesMeta() (*sheet.List[invoice.Metadata], error) {
	invoices, err := t.Invoices()
	if err != nil {
		return nil, err
	}
	metas := make([]invoice.Metadata, 0, len(invoices))
	for _, inv := range invoices {
		meta, err := inv.Meta()
		if err != nil {
			return nil, fmt.Errorf("invoice %s: %w", inv.Invoicenumber, err)
		}
		metas = append(metas, meta)
	}
	return sheet.NewList(metas...)
}

// DeleteInvoice removes an invoice and its stored file. Later invoices are
// renumbered down by one, keeping the numbers gap-free and increasing. An
// empty invoicenumber deletes the last invoice.
func (t *TIA) DeleteInvoice(invoicenumber string) error {
	last, err := t.LastInvoicenumber()
	if err != nil {
		return err
	}
	if invoicenumber == "" {
		invoicenumber = last
	}
	deleted, err := strconv.Atoi(invoicenumber)
	if err != nil {
		return fmt.Errorf("malformed invoicenumber %q: %w", invoicenumber, err)
	}
	if !t.Paths.FileExists(t.Paths.InvoiceFilePath(t.Year, invoicenumber)) {
		return fmt.Errorf("invoice %s does not exist", invoicenumber)
	}

	invoices, err := t.Invoices()
	if err != nil {
		return err
	}
	for _, inv := range invoices {
		n, err := strconv.Atoi(inv.Invoicenumber)
		if err != nil {
			return fmt.Errorf("malformed invoicenumber %q on file: %w", inv.Invoicenumber, err)
		}
		if n > deleted {
			inv.Invoicenumber = strconv.Itoa(n - 1)
			if err := t.SaveInvoice(inv); err != nil {
				return err
			}
		}
	}

	// After renumbering, the file under the previous top number is stale.
	if err := os.Remove(t.Paths.InvoiceFilePath(t.Year, last)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete invoice file: %w", err)
	}
	if t.Invoice != nil && t.Invoice.Invoicenumber == invoicenumber {
		t.Invoice = nil
	}

	if t.registry != nil {
		newLast, err := t.LastInvoicenumber()
		if err == nil {
			err = t.registry.Record(t.Year, newLast)
		}
		if err != nil {
			slog.Warn("failed to update invoicenumber registry", "error", err)
		}
	}
	slog.Debug("deleted invoice", "number", invoicenumber)
	return nil
}

// CashAcc loads the year's ledger from its file. The file is the source of
// truth; a missing or unreadable file yields an empty ledger with the
// profile's default configuration.
func (t *TIA) CashAcc() *accounting.CashAccounting {
	path := t.Paths.CashAccFilePath(t.Year)
	data, err := os.ReadFile(path)
	if err == nil {
		var ca accounting.CashAccounting
		uerr := json.Unmarshal(data, &ca)
		if uerr == nil {
			return &ca
		}
		slog.Warn("ledger file unreadable, starting empty", "path", path, "error", uerr)
	}

	ca, err := accounting.New(t.Profile.DefaultAccountingConfig)
	if err != nil {
		ca, _ = accounting.New(accounting.DefaultConfig())
	}
	return ca
}

// SaveCashAcc persists the ledger by whole-file replace.
func (t *TIA) SaveCashAcc(ca *accounting.CashAccounting) error {
	data, err := json.MarshalIndent(ca, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}
	path := t.Paths.CashAccFilePath(t.Year)
	if err := t.Paths.EnsureParentDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write ledger: %w", err)
	}
	return nil
}

// Clients loads every stored client, sorted by reference.
func (t *TIA) Clients() ([]party.Client, error) {
	entries, err := os.ReadDir(t.Paths.ClientDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list client directory: %w", err)
	}

	var clients []party.Client
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(t.Paths.ClientDir(), entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read client file %s: %w", entry.Name(), err)
		}
		var c party.Client
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("failed to load client file %s: %w", entry.Name(), err)
		}
		clients = append(clients, c)
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].Ref < clients[j].Ref })
	return clients, nil
}

// SaveClient validates and persists a client under its reference.
func (t *TIA) SaveClient(c party.Client) error {
	valid, err := party.NewClient(c)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(valid, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode client %s: %w", valid.Ref, err)
	}
	path := t.Paths.ClientFilePath(valid.Ref)
	if err := t.Paths.EnsureParentDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write client %s: %w", valid.Ref, err)
	}
	return nil
}

// LoadClient loads the client stored under the given reference.
func (t *TIA) LoadClient(ref string) (party.Client, error) {
	data, err := os.ReadFile(t.Paths.ClientFilePath(ref))
	if err != nil {
		return party.Client{}, fmt.Errorf("client %s does not exist: %w", ref, err)
	}
	var c party.Client
	if err := json.Unmarshal(data, &c); err != nil {
		return party.Client{}, fmt.Errorf("failed to load client %s: %w", ref, err)
	}
	return c, nil
}

// resolveClient picks the billed client: the given one, or the sole stored
// client when nil. With none or several on file the caller has to choose.
func (t *TIA) resolveClient(client *party.Client) (party.Client, error) {
	if client != nil {
		return *client, nil
	}
	clients, err := t.Clients()
	if err != nil {
		return party.Client{}, err
	}
	if len(clients) != 1 {
		return party.Client{}, fmt.Errorf("no client given and %d clients on file, pass one explicitly", len(clients))
	}
	return clients[0], nil
}

// AddItem routes the item by kind: invoice items go to the open invoice,
// accounting items to the year's ledger. The touched container is persisted.
func (t *TIA) AddItem(item any) error {
	switch it := item.(type) {
	case invoice.Item:
		if t.Invoice == nil {
			return &NoInvoiceOpenError{}
		}
		if err := t.Invoice.AddItem(it); err != nil {
			return err
		}
		return t.SaveInvoice(t.Invoice)
	case accounting.Item:
		ca := t.CashAcc()
		if err := ca.AddItem(it); err != nil {
			return err
		}
		return t.SaveCashAcc(ca)
	default:
		return &sheet.TypeMismatchError{
			Expected: "invoice.Item or accounting.Item",
			Actual:   fmt.Sprintf("%T", item),
		}
	}
}

// EditItem locates old in its container, patches the named fields and
// persists. Routing follows AddItem.
func (t *TIA) EditItem(old any, fields map[string]any) error {
	switch it := old.(type) {
	case invoice.Item:
		if t.Invoice == nil {
			return &NoInvoiceOpenError{}
		}
		if err := t.Invoice.EditItem(it, sheet.Patch[invoice.Item](fields)); err != nil {
			return err
		}
		return t.SaveInvoice(t.Invoice)
	case accounting.Item:
		ca := t.CashAcc()
		if err := ca.EditItem(it, sheet.Patch[accounting.Item](fields)); err != nil {
			return err
		}
		return t.SaveCashAcc(ca)
	default:
		return &sheet.TypeMismatchError{
			Expected: "invoice.Item or accounting.Item",
			Actual:   fmt.Sprintf("%T", old),
		}
	}
}

// DeleteItem removes the first structurally equal item from its container and
// persists. Routing follows AddItem.
func (t *TIA) DeleteItem(item any) error {
	switch it := item.(type) {
	case invoice.Item:
		if t.Invoice == nil {
			return &NoInvoiceOpenError{}
		}
		if err := t.Invoice.DeleteItem(it); err != nil {
			return err
		}
		return t.SaveInvoice(t.Invoice)
	case accounting.Item:
		ca := t.CashAcc()
		if err := ca.DeleteItem(it); err != nil {
			return err
		}
		return t.SaveCashAcc(ca)
	default:
		return &sheet.TypeMismatchError{
			Expected: "invoice.Item or accounting.Item",
			Actual:   fmt.Sprintf("%T", item),
		}
	}
}

// SettleInvoice marks the open invoice as payed, persists it and books its
// cash effect into the ledger.
func (t *TIA) SettleInvoice(on sheet.Date) error {
	if t.Invoice == nil {
		return &NoInvoiceOpenError{}
	}
	if err := t.Invoice.Settle(on); err != nil {
		return err
	}
	if err := t.SaveInvoice(t.Invoice); err != nil {
		return err
	}
	caItem, err := t.Invoice.CAItem()
	if err != nil {
		return err
	}
	if caItem != nil {
		return t.AddItem(*caItem)
	}
	return nil
}
