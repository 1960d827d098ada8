package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"ecofin-advisor/internal/di"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server until SIGINT or SIGTERM",
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.HTTPAddr = addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		container, err := di.NewContainer(ctx, cfg)
		if err != nil {
			return fmt.Errorf("initialization failed: %w", err)
		}
		defer container.Close()

		if err := container.Server.Run(ctx); err != nil {
			container.Logger.Error("Server failed", "error", err)
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides HTTP_ADDR)")
}
