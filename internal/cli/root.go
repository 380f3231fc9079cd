// Package cli holds the invoicedesk command tree.
package cli

import (
	"fmt"
	"os"

	"invoicedesk/internal/config"
	"invoicedesk/internal/logger"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

// cfg is loaded once before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "invoicedesk",
	Short: "InvoiceDesk API server",
	Long: `InvoiceDesk serves invoices, proforma invoices, local bills, local chalans
and local proformas for signed-in users, plus file uploads and an invoice
analytics dashboard.

Running it without a subcommand starts the HTTP server.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		if err := logger.Setup(loaded.GetLoggerConfig()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		cfg = loaded
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log := logger.WithComponent("cli")
		log.Error().Err(err).Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}
