package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"hrms/internal/app/server"
	"hrms/internal/domain/auth"
	"hrms/internal/platform/db"
	"hrms/internal/store/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requirePostgres(cmd); err != nil {
			return err
		}
		cfg.RunMigrations = true
		pool, err := server.ConnectDatabase(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		pool.Close()
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo dataset and demo accounts into an empty database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requirePostgres(cmd); err != nil {
			return err
		}
		pool, err := server.ConnectDatabase(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := db.Seed(cmd.Context(), postgres.New(pool), auth.NewStore(pool), time.Now()); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		logger.Info("seed complete")
		return nil
	},
}
