// Package cmd holds the command line entry points of the server.
package cmd

import (
	"fmt"
	"os"
	"promptbuilder-backend/config"
	"promptbuilder-backend/pkg/logger"

	"github.com/spf13/cobra"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "promptbuilder",
	Short: "Prompt Builder API server",
	Long: `Prompt Builder stores reusable prompt templates with {placeholders},
fills them in on demand and asks Gemini to draft new prompts.

Examples:
  promptbuilder serve              # Start the HTTP API
  promptbuilder setup-db           # Create tables and load sample data
  promptbuilder setup-db --reset   # Drop everything first`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return logger.InitLogger(&logger.Config{
			Level:      cfg.LogLevel,
			Filename:   cfg.LogFilename,
			MaxSize:    cfg.LogMaxSize,
			MaxBackups: cfg.LogMaxBackups,
			MaxAge:     cfg.LogMaxAge,
			Compress:   cfg.LogCompress,
		})
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(setupDBCmd)
}

// Execute runs the command named on the command line, defaulting to serve.
func Execute() {
	if len(os.Args) == 1 {
		rootCmd.SetArgs([]string{"serve"})
	}
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
