// Command hrms runs the HR management console and its maintenance tasks.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"hrms/internal/platform/config"
	"hrms/internal/platform/logging"
)

var (
	cfg    config.Config
	logger *logrus.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "hrms",
	Short:         "HRMS is a web console for managing employee records",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
		logger = logging.New(cfg.LogLevel, cfg.Environment, os.Stderr)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(hashPasswordCmd)
	rootCmd.AddCommand(grantCmd)
	rootCmd.AddCommand(exportCmd)
}

// requirePostgres rejects commands that only make sense against a database.
func requirePostgres(cmd *cobra.Command) error {
	if cfg.DataBackend != config.BackendPostgres {
		return fmt.Errorf("%s needs DATA_BACKEND=postgres, got %q", cmd.Name(), cfg.DataBackend)
	}
	return cfg.Validate()
}
