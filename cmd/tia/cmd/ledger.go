package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ledgerCmd represents the ledger command group.
var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Inspect the year's cash accounting ledger",
}

var ledgerShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the ledger table and totals",
	Run:   runLedgerShow,
}

var ledgerSortCmd = &cobra.Command{
	Use:   "sort",
	Short: "Sort the ledger by date and persist it",
	Run:   runLedgerSort,
}

func init() {
	ledgerCmd.AddCommand(ledgerShowCmd)
	ledgerCmd.AddCommand(ledgerSortCmd)
}

func runLedgerShow(cmd *cobra.Command, args []string) {
	tia, conn := bootstrap()
	defer conn.Close()

	ca := tia.CashAcc()
	fmt.Println(ca)

	revenue, expenditure := ca.Totals()
	fmt.Printf("\nRevenue total: %.2f\nExpenditure total: %.2f\nResult: %.2f\n",
		revenue, expenditure, revenue+expenditure)
}

func runLedgerSort(cmd *cobra.Command, args []string) {
	tia, conn := bootstrap()
	defer conn.Close()

	ca := tia.CashAcc().SortByDate()
	exitOnError(tia.SaveCashAcc(ca), "failed to save ledger")
	fmt.Println("Ledger sorted by date")
}
