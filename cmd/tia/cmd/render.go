package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/NicDom/tia/pkg/backend"
	"github.com/NicDom/tia/pkg/db"
	"github.com/NicDom/tia/pkg/render"
)

var (
	renderEngine  string
	renderTexOnly bool
)

// renderCmd represents the render command group.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render invoices and the ledger to PDF",
}

var renderInvoiceCmd = &cobra.Command{
	Use:   "invoice <invoicenumber>",
	Short: "Render an invoice",
	Long: `Render an invoice to PDF. The latex engine needs latexmk on PATH;
the gofpdf engine draws the document directly.

Example:
  tia render invoice 2026001 --engine gofpdf`,
	Args: cobra.ExactArgs(1),
	Run:  runRenderInvoice,
}

var renderLedgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Render the year's cash accounting ledger",
	Run:   runRenderLedger,
}

func init() {
	for _, c := range []*cobra.Command{renderInvoiceCmd, renderLedgerCmd} {
		c.Flags().StringVar(&renderEngine, "engine", "latex", "render engine: latex or gofpdf")
		c.Flags().BoolVar(&renderTexOnly, "tex", false, "print the TeX source instead of compiling")
	}

	renderCmd.AddCommand(renderInvoiceCmd)
	renderCmd.AddCommand(renderLedgerCmd)
}

func recordRender(conn *db.Connection, docType db.DocType, ref string, year int, path, engine string) {
	history := db.NewRenderHistory(conn)
	err := history.Record(db.RenderRecord{
		DocType:    docType,
		DocRef:     ref,
		Year:       year,
		OutputPath: path,
		Engine:     engine,
	})
	if err != nil {
		slog.Warn("failed to record render", "error", err)
	}
}

func runRenderInvoice(cmd *cobra.Command, args []string) {
	tia, conn := bootstrap()
	defer conn.Close()

	inv, err := tia.OpenInvoice(args[0])
	exitOnError(err, "failed to open invoice")

	printer := render.NewPrinter(tia.Paths, nil)

	if renderTexOnly {
		tex, err := printer.InvoiceTex(inv)
		exitOnError(err, "failed to render invoice")
		fmt.Println(tex)
		return
	}

	var path string
	switch renderEngine {
	case "gofpdf":
		path, err = printer.InvoiceDirectPDF(inv)
	case "latex":
		path, err = printer.InvoicePDF(inv)
	default:
		err = fmt.Errorf("unknown engine %q", renderEngine)
	}
	exitOnError(err, "failed to render invoice")

	recordRender(conn, db.DocTypeInvoice, inv.Invoicenumber, tia.Year, path, renderEngine)
	fmt.Printf("Rendered %s\n", path)
	maybeOpen(tia, path)
}

func runRenderLedger(cmd *cobra.Command, args []string) {
	tia, conn := bootstrap()
	defer conn.Close()

	ca := tia.CashAcc().SortByDate()
	printer := render.NewPrinter(tia.Paths, nil)
	company := tia.Profile.Company.Name

	if renderTexOnly {
		tex, err := printer.CashAccTex(ca, tia.Year, company)
		exitOnError(err, "failed to render ledger")
		fmt.Println(tex)
		return
	}

	var path string
	var err error
	switch renderEngine {
	case "gofpdf":
		path, err = printer.CashAccDirectPDF(ca, tia.Year, company)
	case "latex":
		path, err = printer.CashAccPDF(ca, tia.Year, company)
	default:
		err = fmt.Errorf("unknown engine %q", renderEngine)
	}
	exitOnError(err, "failed to render ledger")

	recordRender(conn, db.DocTypeLedger, fmt.Sprint(tia.Year), tia.Year, path, renderEngine)
	fmt.Printf("Rendered %s\n", path)
	maybeOpen(tia, path)
}

// maybeOpen hands the rendered file to xdg-open when the profile asks for it.
func maybeOpen(tia *backend.TIA, path string) {
	if !tia.Profile.OpenPDF {
		return
	}
	if err := render.OpenFile(path); err != nil {
		slog.Warn("failed to open rendered file", "path", path, "error", err)
	}
}
