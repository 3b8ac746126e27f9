package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NicDom/tia/pkg/db"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display bookkeeping statistics",
	Long: `Display statistics for the bookkeeping year.

Shows:
- Number of invoices and their totals
- Last issued invoicenumber
- Render counts and the last render timestamp

Example:
  tia stats`,
	Run: runStats,
}

func runStats(cmd *cobra.Command, args []string) {
	tia, conn := bootstrap()
	defer conn.Close()

	invoices, err := tia.Invoices()
	exitOnError(err, "failed to load invoices")

	var total, open float64
	settled := 0
	for _, inv := range invoices {
		total += inv.Total()
		if inv.PayedOn != nil {
			settled++
		} else {
			open += inv.Total()
		}
	}

	last, err := tia.LastInvoicenumber()
	exitOnError(err, "failed to determine last invoicenumber")

	history := db.NewRenderHistory(conn)
	stats, err := history.GetStats(tia.Year)
	exitOnError(err, "failed to get render statistics")

	revenue, expenditure := tia.CashAcc().Totals()

	fmt.Printf("\n=== %d ===\n", tia.Year)
	fmt.Printf("Invoices:              %d (%d settled)\n", len(invoices), settled)
	fmt.Printf("Invoice volume:        %.2f (open: %.2f)\n", total, open)
	fmt.Printf("Last invoicenumber:    %s\n", last)
	fmt.Printf("Ledger result:         %.2f\n", revenue+expenditure)
	fmt.Printf("Rendered invoices:     %d\n", stats.TotalInvoices)
	fmt.Printf("Rendered ledgers:      %d\n", stats.TotalLedgers)

	if stats.LastRender.Valid {
		fmt.Printf("Last render:           %s\n", stats.LastRender.String)
	} else {
		fmt.Printf("Last render:           (never)\n")
	}

	fmt.Println()
}
