// Package render turns invoices and ledgers into documents. The TeX path
// substitutes embedded templates and hands the result to an external PDF
// engine (latexmk); the direct path draws the PDF itself with gofpdf, needing
// no TeX toolchain.
package render

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/NicDom/tia/pkg/accounting"
	"github.com/NicDom/tia/pkg/invoice"
	"github.com/NicDom/tia/pkg/pathutil"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	invoiceTemplate = "templates/invoice.tex.tmpl"
	ledgerTemplate  = "templates/eur.tex.tmpl"
)

// Printer renders invoices and ledgers into the configured output
// directories.
type Printer struct {
	PDFInvoiceDir string
	PDFEURDir     string
	AuxRoot       string
	Engine        PDFEngine
}

// NewPrinter builds a printer over the profile's output directories. A nil
// engine defaults to latexmk.
func NewPrinter(paths *pathutil.Resolver, engine PDFEngine) *Printer {
	if engine == nil {
		engine = Latexmk{}
	}
	return &Printer{
		PDFInvoiceDir: paths.PDFInvoiceDir(),
		PDFEURDir:     paths.PDFEURDir(),
		AuxRoot:       paths.AuxDir(""),
		Engine:        engine,
	}
}

// TeX templates are substituted with << >> delimiters; {{ }} would collide
// with TeX group braces.
func texTemplate(name string) (*template.Template, error) {
	data, err := templateFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", name, err)
	}
	return template.New(filepath.Base(name)).Delims("<<", ">>").Parse(string(data))
}

func formatMoney(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}

func formatNumber(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// invoiceItemsTex renders one \invoiceitem line per invoice position.
func invoiceItemsTex(inv *invoice.Invoice) string {
	lines := make([]string, 0, inv.Len())
	for _, it := range inv.Items() {
		lines = append(lines, fmt.Sprintf("\\invoiceitem{%s}{%s}{%s}{%s}{%s}",
			it.Service,
			formatNumber(it.Qty),
			formatNumber(it.UnitPrice),
			formatNumber(it.VATRate()),
			it.Description,
		))
	}
	return strings.Join(lines, "\n")
}

// invoiceVars is the substitution map for the invoice template. Client and
// company fields carry their serialization prefixes, matching the
// placeholders a template author knows from the stored JSON.
func invoiceVars(inv *invoice.Invoice) map[string]string {
	client := inv.Client
	company := inv.Company
	config := inv.Config
	return map[string]string{
		"invoicenumber": inv.Invoicenumber,
		"invdate":       fmt.Sprintf("\\SetDate[%s]", config.Date.Short()),
		"duedate":       inv.DueTo().Short(),
		"language":      config.Language,
		"vat":           formatNumber(config.VAT),
		"deadline":      strconv.Itoa(config.Deadline),
		"paymentterms":  config.PaymentTerms,
		"invoicestyle":  config.Style,

		"currency_symbol": config.CurrencySymbol,
		"currency_code":   config.CurrencyCode,

		"subtotal": formatMoney(inv.Subtotal()),
		"tax":      formatMoney(inv.Tax()),
		"total":    formatMoney(inv.Total()),
		"items":    invoiceItemsTex(inv),

		"clientref":          client.Ref,
		"clientname":         client.Name,
		"clientstreet":       client.Street,
		"clientplz":          client.PLZ,
		"clientcity":         client.City,
		"clientcountry":      client.Country,
		"clientemail":        client.Email,
		"clientinvoicemail":  client.InvoiceMail,
		"clientremindermail": client.ReminderMail,

		"companyname":      company.Name,
		"companystreet":    company.Street,
		"companyplz":       company.PLZ,
		"companycity":      company.City,
		"companycountry":   company.Country,
		"companyemail":     company.Email,
		"companylogo":      company.Logo,
		"companyphone":     company.Phone,
		"companytaxnumber": company.TaxNumber,
		"companyiban":      company.IBAN,
		"companybic":       company.BIC,
		"companybank":      company.Bank,
	}
}

// InvoiceTex renders the invoice to TeX text.
func (p *Printer) InvoiceTex(inv *invoice.Invoice) (string, error) {
	tmpl, err := texTemplate(invoiceTemplate)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, invoiceVars(inv)); err != nil {
		return "", fmt.Errorf("failed to render invoice %s: %w", inv.Invoicenumber, err)
	}
	return sb.String(), nil
}

// caItemsTex renders the ledger table body: header row plus numbered item
// rows, cells joined with " & ", rows separated by \hline.
func caItemsTex(ca *accounting.CashAccounting) string {
	table := ca.Table()
	if table == nil {
		return ""
	}
	rows := make([]string, 0, len(table))
	rows = append(rows, strings.Join(table[0], " & "))
	for i, row := range table[1:] {
		cells := append([]string{strconv.Itoa(i + 1)}, row...)
		rows = append(rows, strings.Join(cells, " & "))
	}
	return strings.Join(rows, " \\\\\n\t\t\\hline\n\t\t") + "\\\\"
}

// CashAccTex renders the year's ledger to TeX text.
func (p *Printer) CashAccTex(ca *accounting.CashAccounting, year int, companyName string) (string, error) {
	tmpl, err := texTemplate(ledgerTemplate)
	if err != nil {
		return "", err
	}
	revenue, expenditure := ca.Totals()
	vars := map[string]string{
		"year":              strconv.Itoa(year),
		"companyname":       companyName,
		"items":             caItemsTex(ca),
		"revenue_total":     formatMoney(revenue),
		"expenditure_total": formatMoney(expenditure),
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, vars); err != nil {
		return "", fmt.Errorf("failed to render ledger %d: %w", year, err)
	}
	return sb.String(), nil
}

// InvoicePDF compiles the invoice to a PDF in the invoice output directory
// and returns its path. Scratch files are cleaned up afterwards.
func (p *Printer) InvoicePDF(inv *invoice.Invoice) (string, error) {
	tex, err := p.InvoiceTex(inv)
	if err != nil {
		return "", err
	}
	name := pathutil.InvoiceBasename + inv.Invoicenumber
	return p.compile(tex, name, p.PDFInvoiceDir)
}

// CashAccPDF compiles the ledger to a PDF in the EUR output directory and
// returns its path.
func (p *Printer) CashAccPDF(ca *accounting.CashAccounting, year int, companyName string) (string, error) {
	tex, err := p.CashAccTex(ca, year, companyName)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s%d", pathutil.EURBasename, year)
	return p.compile(tex, name, p.PDFEURDir)
}

func (p *Printer) compile(tex, name, outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	texPath := filepath.Join(outDir, name+".tex")
	if err := os.WriteFile(texPath, []byte(tex), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", texPath, err)
	}
	auxDir := filepath.Join(p.AuxRoot, name)
	if err := p.Engine.Compile(texPath, outDir, auxDir); err != nil {
		return "", err
	}
	if err := cleanupAux(outDir); err != nil {
		return "", err
	}
	return filepath.Join(outDir, name+".pdf"), nil
}

// cleanupAux deletes everything but PDFs from an output directory. The TeX
// source and any stray build artifacts latexmk left behind go with it.
func cleanupAux(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to list output directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || strings.HasSuffix(entry.Name(), ".pdf") {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("failed to remove %s: %w", entry.Name(), err)
		}
	}
	return nil
}
