package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [sql]",
	Short: "Detect performance issues in a query and score it",
	Example: `  mysql-assistant analyze "SELECT * FROM orders"
  mysql-assistant analyze --format json "SELECT * FROM orders"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		if format != "text" && format != "json" {
			return fmt.Errorf("invalid output format %q: must be \"text\" or \"json\"", format)
		}

		app, err := buildAssistant()
		if err != nil {
			return err
		}
		defer app.Close()

		result := app.AnalyzeQuery(context.Background(), args[0])

		if format == "json" {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(result)
		}

		renderScore(result.Score)
		fmt.Println()
		renderIssues(result.Issues)
		fmt.Println()
		renderPlan(result.Plan)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringP("format", "f", "text", "Output format: text, json")
}
