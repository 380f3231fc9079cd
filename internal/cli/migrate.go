package cli

import (
	"fmt"

	"invoicedesk/internal/config"
	"invoicedesk/internal/database"
	"invoicedesk/internal/logger"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the postgres schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.StoreDriver != config.DriverPostgres {
			return fmt.Errorf("migrate needs STORE_DRIVER=%s, got %s", config.DriverPostgres, cfg.StoreDriver)
		}
		log := logger.WithComponent("migrate")

		db, err := database.NewConnection(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = database.Close(db) }()

		if err := database.Migrate(db); err != nil {
			return err
		}
		log.Info().Int("tables", len(database.Models())).Msg("Schema migrated")
		return nil
	},
}
