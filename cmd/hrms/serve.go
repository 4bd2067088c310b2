package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"hrms/internal/app/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the console over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app, err := server.New(ctx, cfg, logger)
		if err != nil {
			return err
		}
		return app.Run(ctx)
	},
}
