package main

import (
	"fmt"
	"strings"

	"ecofin-advisor/internal/di"
	"ecofin-advisor/internal/infrastructure/advisorclient"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <prompt...>",
	Short: "Send one prompt to a running advisor and print the answer",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := di.NewLogger(cfg)
		if err != nil {
			return err
		}
		defer log.Close()

		client := advisorclient.New(cfg.AdvisorURL, nil, log)
		prompt := strings.Join(args, " ")

		msg := client.Ask(cmd.Context(), prompt)
		fmt.Fprintln(cmd.OutOrStdout(), msg.Content)
		if msg.Failed {
			return fmt.Errorf("advisor at %s did not answer", cfg.AdvisorURL)
		}
		return nil
	},
}
