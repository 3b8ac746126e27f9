package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NicDom/tia/pkg/party"
)

var clientFields party.Client

// clientCmd represents the client command group.
var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Manage the stored clients",
}

var clientAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Store a client under its five-digit reference",
	Run:   runClientAdd,
}

var clientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the stored clients",
	Run:   runClientList,
}

func init() {
	clientAddCmd.Flags().StringVar(&clientFields.Ref, "ref", "", "five-digit client reference")
	clientAddCmd.Flags().StringVar(&clientFields.Name, "name", "", "client name")
	clientAddCmd.Flags().StringVar(&clientFields.Street, "street", "", "street and number")
	clientAddCmd.Flags().StringVar(&clientFields.PLZ, "plz", "", "postal code")
	clientAddCmd.Flags().StringVar(&clientFields.City, "city", "", "city")
	clientAddCmd.Flags().StringVar(&clientFields.Country, "country", "", "country")
	clientAddCmd.Flags().StringVar(&clientFields.Email, "email", "", "official mail address")
	clientAddCmd.Flags().StringVar(&clientFields.InvoiceMail, "invoice-mail", "", "mail address for invoices (default: --email)")
	clientAddCmd.Flags().StringVar(&clientFields.ReminderMail, "reminder-mail", "", "mail address for reminders (default: --email)")

	clientCmd.AddCommand(clientAddCmd)
	clientCmd.AddCommand(clientListCmd)
}

func runClientAdd(cmd *cobra.Command, args []string) {
	tia, conn := bootstrap()
	defer conn.Close()

	exitOnError(tia.SaveClient(clientFields), "failed to save client")
	fmt.Printf("Client %s (%s) saved\n", clientFields.Name, clientFields.Ref)
}

func runClientList(cmd *cobra.Command, args []string) {
	tia, conn := bootstrap()
	defer conn.Close()

	clients, err := tia.Clients()
	exitOnError(err, "failed to list clients")

	if len(clients) == 0 {
		fmt.Println("No clients stored")
		return
	}
	for i, c := range clients {
		if i > 0 {
			fmt.Println()
		}
		fmt.Println(c)
	}
}
