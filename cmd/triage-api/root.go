package main

import (
	"errors"
	"io/fs"

	"github.com/findajob/job-triage/internal/config"
	"github.com/findajob/job-triage/internal/store"
	"github.com/findajob/job-triage/pkg/log"
	"github.com/findajob/job-triage/pkg/migrations"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "triage-api",
	Short: "triage-api serves the processed jobs and their statuses.",
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(runCmd)

	rootCmd.PersistentFlags().StringVarP(&envFile, "env-file", "e", ".env", "Optional file of environment variables loaded before the configuration")
}

// loadConfig reads the env file, when present, then the configuration, and installs the global logger.
func loadConfig() (*config.Config, func(), error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, err
	}

	cfg, err := config.New()
	if err != nil {
		return nil, nil, err
	}

	logger := log.InitLog(log.ParseLevel(cfg.Service.LogLevel))
	undo := zap.ReplaceGlobals(logger)

	return cfg, func() {
		_ = logger.Sync()
		undo()
	}, nil
}

// migrate runs the goose migrations on postgres and the gorm auto migration on sqlite.
func migrate(cmd *cobra.Command, cfg *config.Config, db *gorm.DB, s store.Store) error {
	if cfg.Database.Type == "pgsql" {
		return migrations.MigrateStore(db, cfg.Service.MigrationFolder)
	}
	return s.InitialMigration(cmd.Context())
}
