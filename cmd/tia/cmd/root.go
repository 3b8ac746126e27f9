// Package cmd provides CLI commands for tia.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/NicDom/tia/pkg/backend"
	"github.com/NicDom/tia/pkg/config"
	"github.com/NicDom/tia/pkg/db"
)

var (
	cfgFile string
	debug   bool
	year    int
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:     "tia",
	Version: "0.1.0",
	Short:   "Personal tax and invoice assistant",
	Long: `tia keeps the bookkeeping of a small company: invoices, the yearly
cash accounting ledger and clients, stored as JSON files under the
profile's directory tree.

It supports:
- Creating, editing and settling invoices with gap-free numbering
- Maintaining the yearly cash accounting ledger
- Rendering invoices and ledgers to PDF (latexmk or built-in)
- Tracking renders and issued numbers in SQLite

Example:
  tia invoice new --client 10001
  tia item add --service "Consulting" --qty 8 --unit-price 90
  tia render invoice 2026001`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Setup logging
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().IntVar(&year, "year", 0, "bookkeeping year (default from TIA_YEAR or the current year)")

	// Add subcommands
	rootCmd.AddCommand(invoiceCmd)
	rootCmd.AddCommand(itemCmd)
	rootCmd.AddCommand(ledgerCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(clientCmd)
	rootCmd.AddCommand(statsCmd)
}

// Helper function to get config file path.
func getConfigFile() string {
	if cfgFile != "" {
		return cfgFile
	}
	return "" // Will use default .env loading
}

// Helper function to handle errors and exit.
func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}

// bootstrap loads configuration and profile and builds the orchestrator with
// its number registry attached. The caller closes the returned connection.
func bootstrap() (*backend.TIA, *db.Connection) {
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")
	exitOnError(cfg.Validate("profile"), "invalid configuration")

	profile, err := backend.LoadProfile(cfg.ProfilePath, nil)
	exitOnError(err, "failed to load profile")
	if profile.ParentDir == "" && cfg.Root != "" {
		profile.ParentDir = cfg.Root
	}

	if year == 0 {
		year = cfg.Year
	}
	tia, err := backend.New(profile, year)
	exitOnError(err, "failed to initialize storage")

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = tia.Paths.DatabasePath()
	}
	slog.Debug("Opening database", "path", dbPath)
	conn, err := db.Open(dbPath)
	exitOnError(err, "failed to open database")

	tia.WithRegistry(db.NewNumberRegistry(conn))
	return tia, conn
}
