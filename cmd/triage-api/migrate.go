package main

import (
	"github.com/findajob/job-triage/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the db",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, cleanup, err := loadConfig()
		if err != nil {
			return err
		}
		defer cleanup()
		defer zap.S().Info("Db migrated")

		zap.S().Info("Initializing data store")
		db, err := store.InitDB(cfg)
		if err != nil {
			zap.S().Fatalw("initializing data store", "error", err)
		}

		store := store.NewStore(db)
		defer store.Close()

		if err := migrate(cmd, cfg, db, store); err != nil {
			zap.S().Fatalw("running migration", "error", err)
		}

		return nil
	},
}
