package main

import (
	"ev-route-service/internal/adapters/repositories"
	"ev-route-service/internal/platform/db"
	"ev-route-service/internal/platform/logger"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	log := logger.New("migrate")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	conn, err := db.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer conn.Close()

	log.Infof("initializing %s schema", cfg.Database.Driver)
	if err := repositories.InitSchema(cmd.Context(), conn, cfg.Database.Driver); err != nil {
		return err
	}
	log.Infof("schema ready")
	return nil
}
