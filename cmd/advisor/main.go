package main

import (
	"fmt"
	"os"

	"ecofin-advisor/internal/di"
	"ecofin-advisor/internal/infrastructure/env"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	envDir  string
	verbose bool

	cfg di.Config
)

var rootCmd = &cobra.Command{
	Use:   "advisor",
	Short: "EcoFin AI advisor: carbon footprint answers over HTTP",
	Long: `advisor serves POST /generate: the user prompt is joined with a fixed
carbon-footprint context block, sent to the configured LLM provider, and the
provider's {"response": ...} object is returned as {"ans": ...}.

Configuration comes from .env and .env.$APP_ENV in --env-dir, then the process environment.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = di.LoadConfig(env.NewEnvService(envDir))
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		if verbose {
			cfg.LogLevel = "debug"
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envDir, "env-dir", ".", "Directory holding .env files")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd, askCmd, chatCmd, contextCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
