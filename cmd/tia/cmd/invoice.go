package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/NicDom/tia/pkg/party"
	"github.com/NicDom/tia/pkg/sheet"
)

var (
	invoiceClientRef string
	invoiceVAT       float64
	invoiceDeadline  int
	invoiceTerms     string
	settleDate       string
)

// invoiceCmd represents the invoice command group.
var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Create, inspect and manage invoices",
}

var invoiceNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new invoice under the next invoicenumber",
	Long: `Create a new invoice for the given client. The invoicenumber is the
last issued one plus one; the first invoice of a year gets <year>001.

Example:
  tia invoice new --client 10001 --vat 19`,
	Run: runInvoiceNew,
}

var invoiceOpenCmd = &cobra.Command{
	Use:   "open <invoicenumber>",
	Short: "Open an invoice and print it",
	Args:  cobra.ExactArgs(1),
	Run:   runInvoiceOpen,
}

var invoiceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the metadata of every invoice of the year",
	Run:   runInvoiceList,
}

var invoiceDeleteCmd = &cobra.Command{
	Use:   "delete [invoicenumber]",
	Short: "Delete an invoice, renumbering later ones down by one",
	Long: `Delete an invoice. Without an invoicenumber the last invoice of the
year is deleted. Later invoices are renumbered down by one so the
numbers stay gap-free and increasing.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runInvoiceDelete,
}

var invoiceSettleCmd = &cobra.Command{
	Use:   "settle <invoicenumber>",
	Short: "Mark an invoice as payed and book it into the ledger",
	Args:  cobra.ExactArgs(1),
	Run:   runInvoiceSettle,
}

func init() {
	invoiceNewCmd.Flags().StringVar(&invoiceClientRef, "client", "", "client reference (defaults to the sole stored client)")
	invoiceNewCmd.Flags().Float64Var(&invoiceVAT, "vat", -1, "default VAT percentage for items (profile default when omitted)")
	invoiceNewCmd.Flags().IntVar(&invoiceDeadline, "deadline", 0, "days until the invoice is due (profile default when omitted)")
	invoiceNewCmd.Flags().StringVar(&invoiceTerms, "terms", "", "payment terms text")

	invoiceSettleCmd.Flags().StringVar(&settleDate, "on", "", "settlement date YYYY-MM-DD (default today)")

	invoiceCmd.AddCommand(invoiceNewCmd)
	invoiceCmd.AddCommand(invoiceOpenCmd)
	invoiceCmd.AddCommand(invoiceListCmd)
	invoiceCmd.AddCommand(invoiceDeleteCmd)
	invoiceCmd.AddCommand(invoiceSettleCmd)
}

func runInvoiceNew(cmd *cobra.Command, args []string) {
	tia, conn := bootstrap()
	defer conn.Close()

	config := tia.Profile.DefaultInvoiceConfig
	config.Date = sheet.Today()
	if invoiceVAT >= 0 {
		config.VAT = invoiceVAT
	}
	if invoiceDeadline > 0 {
		config.Deadline = invoiceDeadline
	}
	if invoiceTerms != "" {
		config.PaymentTerms = invoiceTerms
	}

	var client *party.Client
	if invoiceClientRef != "" {
		c, err := tia.LoadClient(invoiceClientRef)
		exitOnError(err, "failed to load client")
		client = &c
	}

	inv, err := tia.NewInvoice(&config, client)
	exitOnError(err, "failed to create invoice")

	fmt.Printf("Created invoice %s for %s\n", inv.Invoicenumber, inv.Client.Name)
}

func runInvoiceOpen(cmd *cobra.Command, args []string) {
	tia, conn := bootstrap()
	defer conn.Close()

	inv, err := tia.OpenInvoice(args[0])
	exitOnError(err, "failed to open invoice")

	fmt.Println(inv)
}

func runInvoiceList(cmd *cobra.Command, args []string) {
	tia, conn := bootstrap()
	defer conn.Close()

	metas, err := tia.InvoicesMeta()
	exitOnError(err, "failed to list invoices")

	fmt.Println(metas)
}

func runInvoiceDelete(cmd *cobra.Command, args []string) {
	tia, conn := bootstrap()
	defer conn.Close()

	number := ""
	if len(args) > 0 {
		number = args[0]
	}
	exitOnError(tia.DeleteInvoice(number), "failed to delete invoice")

	slog.Info("Invoice deleted", "number", number)
	fmt.Println("Invoice deleted")
}

func runInvoiceSettle(cmd *cobra.Command, args []string) {
	tia, conn := bootstrap()
	defer conn.Close()

	_, err := tia.OpenInvoice(args[0])
	exitOnError(err, "failed to open invoice")

	on := sheet.Today()
	if settleDate != "" {
		on, err = sheet.ParseDate(settleDate)
		exitOnError(err, "invalid settlement date")
	}
	exitOnError(tia.SettleInvoice(on), "failed to settle invoice")

	fmt.Printf("Invoice %s settled on %s and booked into the ledger\n", args[0], on)
}
