package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/NicDom/tia/pkg/accounting"
	"github.com/NicDom/tia/pkg/invoice"
	"github.com/NicDom/tia/pkg/pathutil"
	"github.com/NicDom/tia/pkg/sheet"
)

// InvoiceDirectPDF draws the invoice straight to a PDF file in the invoice
// output directory and returns its path.
func (p *Printer) InvoiceDirectPDF(inv *invoice.Invoice) (string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// Issuer block, right aligned.
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 6, tr(inv.Company.Name), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range []string{
		inv.Company.Street,
		inv.Company.PLZ + " " + inv.Company.City,
		inv.Company.Country,
		inv.Company.Phone,
		inv.Company.Email,
	} {
		pdf.CellFormat(0, 5, tr(line), "", 1, "R", false, 0, "")
	}

	// Billed party.
	pdf.Ln(6)
	for _, line := range []string{
		inv.Client.Name,
		inv.Client.Street,
		inv.Client.PLZ + " " + inv.Client.City,
		inv.Client.Country,
	} {
		pdf.CellFormat(0, 5, tr(line), "", 1, "L", false, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Invoice no. "+inv.Invoicenumber, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Date: %s    Client-ID: %s    Due: %s",
		inv.Config.Date.Short(), inv.Client.Ref, inv.DueTo().Short()), "", 1, "L", false, 0, "")

	// Item table.
	pdf.Ln(4)
	widths := []float64{12, 45, 18, 28, 18, 69}
	headers := []string{"ID", "Service", "Qty", "Unit price", "VAT", "Description"}
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
	symbol := inv.Config.CurrencySymbol
	for i, it := range inv.Items() {
		cells := []string{
			strconv.Itoa(i + 1),
			it.Service,
			formatNumber(it.Qty),
			formatMoney(it.UnitPrice) + " " + symbol,
			formatNumber(it.VATRate()) + " %",
			it.Description,
		}
		for col, cell := range cells {
			pdf.CellFormat(widths[col], 6, tr(cell), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	// Totals.
	pdf.Ln(4)
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Subtotal: %s %s", formatMoney(inv.Subtotal()), symbol)), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("VAT: %s %s", formatMoney(inv.Tax()), symbol)), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Total: %s %s", formatMoney(inv.Total()), symbol)), "", 1, "R", false, 0, "")

	// Payment block.
	pdf.SetFont("Helvetica", "", 10)
	pdf.Ln(6)
	if inv.Config.PaymentTerms != "" {
		pdf.MultiCell(0, 5, tr(inv.Config.PaymentTerms), "", "L", false)
		pdf.Ln(2)
	}
	if payed := shortDate(inv.PayedOn); payed != "" {
		pdf.CellFormat(0, 5, "Payed on: "+payed, "", 1, "L", false, 0, "")
	} else {
		pdf.CellFormat(0, 5, fmt.Sprintf("Please transfer the total within %d days to:", inv.Config.Deadline), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 5, "IBAN: "+inv.Company.IBAN, "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 5, "BIC: "+inv.Company.BIC, "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 5, tr("Bank: "+inv.Company.Bank), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
	pdf.CellFormat(0, 5, "Tax number: "+inv.Company.TaxNumber, "", 1, "L", false, 0, "")

	name := pathutil.InvoiceBasename + inv.Invoicenumber
	return p.writePDF(pdf, name, p.PDFInvoiceDir)
}

// CashAccDirectPDF draws the year's ledger table to a PDF file in the EUR
// output directory and returns its path.
func (p *Printer) CashAccDirectPDF(ca *accounting.CashAccounting, year int, companyName string) (string, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Cash accounting %d - %s", year, companyName)), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	table := ca.Table()
	if table != nil {
		widths := []float64{20, 18, 50, 22, 22, 22, 22, 22, 22, 24, 24}
		pdf.SetFont("Helvetica", "B", 8)
		for i, h := range table[0] {
			pdf.CellFormat(widths[i], 6, h, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
		for i, row := range table[1:] {
			pdf.CellFormat(widths[0], 5, strconv.Itoa(i+1), "1", 0, "R", false, 0, "")
			for col, cell := range row {
				pdf.CellFormat(widths[col+1], 5, tr(cell), "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	revenue, expenditure := ca.Totals()
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("Revenue total: %s    Expenditure total: %s",
		formatMoney(revenue), formatMoney(expenditure)), "", 1, "L", false, 0, "")

	name := fmt.Sprintf("%s%d", pathutil.EURBasename, year)
	return p.writePDF(pdf, name, p.PDFEURDir)
}

func (p *Printer) writePDF(pdf *gofpdf.Fpdf, name, outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(outDir, name+".pdf")
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// shortDate guards against unset optional dates.
func shortDate(d *sheet.Date) string {
	if d == nil {
		return ""
	}
	return d.Short()
}
