package main

import (
	"fmt"

	"ecofin-advisor/internal/infrastructure/prompts"

	"github.com/spf13/cobra"
)

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Print the context block appended to every prompt",
	RunE: func(cmd *cobra.Command, args []string) error {
		block, err := prompts.LoadContextBlock(cfg.ContextFile)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), block)
		return nil
	},
}
