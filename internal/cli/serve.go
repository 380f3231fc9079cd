package cli

import (
	"context"
	"os/signal"
	"syscall"

	"invoicedesk/internal/app"
	"invoicedesk/internal/logger"

	"github.com/spf13/cobra"
)

var skipMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.WithComponent("server")

		a, err := app.New(cfg, log, !skipMigrate)
		if err != nil {
			return err
		}
		defer func() {
			if err := a.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to close database")
			}
		}()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return a.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not auto-migrate the postgres schema on start")
}
