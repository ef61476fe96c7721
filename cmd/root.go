package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/skumarhv16/ai-powered-mysql-assistant/assistant"
	"github.com/skumarhv16/ai-powered-mysql-assistant/config"
	"github.com/skumarhv16/ai-powered-mysql-assistant/monitor"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:          "mysql-assistant",
	SilenceUsage: true,
	Short:        "AI-powered MySQL assistant",
	Long: `mysql-assistant turns natural language into validated MySQL queries and
analyzes existing queries for performance problems.

It connects to a live MySQL database for query validation and schema
introspection, and to an OpenAI-compatible model for generation. Without an
API key it falls back to deterministic mock responses.`,
	Example: `  # Ask a question in natural language
  mysql-assistant ask "show me customers from California"

  # Analyze a query for performance issues
  mysql-assistant analyze "SELECT * FROM orders"

  # Full optimization report
  mysql-assistant optimize "SELECT * FROM orders"`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "path to config file")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildAssistant loads configuration and wires up the assistant. The caller
// owns the returned assistant and must Close it.
func buildAssistant() (*assistant.Assistant, error) {
	manager := config.NewManager()
	cfg, err := manager.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	logger, err := monitor.NewLogger(cfg.Log)
	if err != nil {
		return nil, err
	}

	return assistant.New(cfg, logger)
}
