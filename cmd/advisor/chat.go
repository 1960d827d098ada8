package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"ecofin-advisor/internal/application/usecase"
	"ecofin-advisor/internal/di"
	"ecofin-advisor/internal/infrastructure/advisorclient"
	"ecofin-advisor/internal/infrastructure/userinteraction"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive console chat against a running advisor",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Keep the terminal readable: human-format logs, warnings only unless -v.
		logCfg := cfg
		logCfg.LogFormat = "console"
		if !verbose {
			logCfg.LogLevel = "warn"
		}
		log, err := di.NewLogger(logCfg)
		if err != nil {
			return err
		}
		defer log.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		client := advisorclient.New(cfg.AdvisorURL, nil, log)
		session := usecase.NewChatSession(client, userinteraction.NewConsoleChat(), log)
		if err := session.Run(ctx); err != nil {
			return fmt.Errorf("chat session: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "\nGoodbye!")
		return nil
	},
}
