package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NicDom/tia/pkg/accounting"
	"github.com/NicDom/tia/pkg/backend"
	"github.com/NicDom/tia/pkg/invoice"
	"github.com/NicDom/tia/pkg/sheet"
)

var (
	itemInvoice string
	itemLedger  bool
	itemIndex   int
	itemSets    []string

	itemService     string
	itemQty         float64
	itemUnitPrice   float64
	itemVAT         float64
	itemDescription string

	itemValue    float64
	itemCurrency string
	itemDate     string
)

// itemCmd represents the item command group. Items route to the open invoice
// or to the year's ledger.
var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Add, edit and delete invoice or ledger items",
}

var itemAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an item to an invoice or to the ledger",
	Long: `Add an item. With --invoice the item is an invoice position added to
that invoice; with --ledger it is a cash accounting entry (negative
value = expenditure).

Example:
  tia item add --invoice 2026001 --service "Consulting" --qty 8 --unit-price 90
  tia item add --ledger --description "Office chair" --value -349.00`,
	Run: runItemAdd,
}

var itemEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit an item by index",
	Long: `Edit the item at --index with --set key=value pairs. Numeric values
are coerced; everything else stays a string.

Example:
  tia item edit --invoice 2026001 --index 0 --set qty=10 --set vat=7`,
	Run: runItemEdit,
}

var itemDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete an item by index",
	Run:   runItemDelete,
}

func init() {
	for _, c := range []*cobra.Command{itemAddCmd, itemEditCmd, itemDeleteCmd} {
		c.Flags().StringVar(&itemInvoice, "invoice", "", "target invoicenumber")
		c.Flags().BoolVar(&itemLedger, "ledger", false, "target the year's ledger")
	}

	itemAddCmd.Flags().StringVar(&itemService, "service", "", "invoice item: service name")
	itemAddCmd.Flags().Float64Var(&itemQty, "qty", 0, "invoice item: quantity")
	itemAddCmd.Flags().Float64Var(&itemUnitPrice, "unit-price", 0, "invoice item: unit price")
	itemAddCmd.Flags().Float64Var(&itemVAT, "vat", -1, "VAT percentage (invoice items inherit the invoice default when omitted)")
	itemAddCmd.Flags().StringVar(&itemDescription, "description", "", "item description")
	itemAddCmd.Flags().Float64Var(&itemValue, "value", 0, "ledger item: net value, negative for expenditures")
	itemAddCmd.Flags().StringVar(&itemCurrency, "currency", "", "ledger item: currency symbol")
	itemAddCmd.Flags().StringVar(&itemDate, "date", "", "ledger item: date YYYY-MM-DD (default today)")

	for _, c := range []*cobra.Command{itemEditCmd, itemDeleteCmd} {
		c.Flags().IntVar(&itemIndex, "index", 0, "zero-based item index")
	}
	itemEditCmd.Flags().StringArrayVar(&itemSets, "set", nil, "field assignment key=value (repeatable)")

	itemCmd.AddCommand(itemAddCmd)
	itemCmd.AddCommand(itemEditCmd)
	itemCmd.AddCommand(itemDeleteCmd)
}

// openTarget opens the invoice named by --invoice on the orchestrator.
func openTarget(tia *backend.TIA) {
	if itemInvoice == "" {
		exitOnError(fmt.Errorf("pass --invoice <number> or --ledger"), "no target given")
	}
	_, err := tia.OpenInvoice(itemInvoice)
	exitOnError(err, "failed to open invoice")
}

func runItemAdd(cmd *cobra.Command, args []string) {
	tia, conn := bootstrap()
	defer conn.Close()

	if itemLedger {
		it, err := accounting.NewItem(itemDescription, itemValue)
		exitOnError(err, "invalid ledger item")
		if itemVAT >= 0 {
			it.VAT = itemVAT
		}
		if itemCurrency != "" {
			it.Currency = itemCurrency
		}
		if itemDate != "" {
			it.Date, err = sheet.ParseDate(itemDate)
			exitOnError(err, "invalid date")
		}
		exitOnError(tia.AddItem(it), "failed to add ledger item")
		fmt.Println("Ledger item added")
		return
	}

	openTarget(tia)
	it, err := invoice.NewItem(itemService, itemQty, itemUnitPrice)
	exitOnError(err, "invalid invoice item")
	if itemVAT >= 0 {
		it = it.WithVAT(itemVAT)
	}
	it.Description = itemDescription
	exitOnError(tia.AddItem(it), "failed to add invoice item")
	fmt.Printf("Item added to invoice %s\n", itemInvoice)
}

// parseSets turns --set key=value pairs into a patch map. Values that parse
// as numbers become float64 so the field coercions accept them.
func parseSets(sets []string) map[string]any {
	fields := make(map[string]any, len(sets))
	for _, s := range sets {
		key, value, found := strings.Cut(s, "=")
		if !found {
			exitOnError(fmt.Errorf("malformed assignment %q", s), "invalid --set")
		}
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			fields[key] = f
		} else {
			fields[key] = value
		}
	}
	return fields
}

func runItemEdit(cmd *cobra.Command, args []string) {
	tia, conn := bootstrap()
	defer conn.Close()

	fields := parseSets(itemSets)
	if len(fields) == 0 {
		exitOnError(fmt.Errorf("nothing to change"), "no --set given")
	}

	if itemLedger {
		ca := tia.CashAcc()
		it, err := ca.Get(itemIndex)
		exitOnError(err, "no such ledger item")
		exitOnError(tia.EditItem(it, fields), "failed to edit ledger item")
		fmt.Println("Ledger item updated")
		return
	}

	openTarget(tia)
	it, err := tia.Invoice.Get(itemIndex)
	exitOnError(err, "no such invoice item")
	exitOnError(tia.EditItem(it, fields), "failed to edit invoice item")
	fmt.Printf("Item %d of invoice %s updated\n", itemIndex, itemInvoice)
}

func runItemDelete(cmd *cobra.Command, args []string) {
	tia, conn := bootstrap()
	defer conn.Close()

	if itemLedger {
		ca := tia.CashAcc()
		it, err := ca.Get(itemIndex)
		exitOnError(err, "no such ledger item")
		exitOnError(tia.DeleteItem(it), "failed to delete ledger item")
		fmt.Println("Ledger item deleted")
		return
	}

	openTarget(tia)
	it, err := tia.Invoice.Get(itemIndex)
	exitOnError(err, "no such invoice item")
	exitOnError(tia.DeleteItem(it), "failed to delete invoice item")
	fmt.Printf("Item %d of invoice %s deleted\n", itemIndex, itemInvoice)
}
