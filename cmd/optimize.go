package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize [sql]",
	Short: "Produce a full optimization report for a query",
	Long: `Produce a full optimization report: detected issues, a rewritten query,
index suggestions and model-written recommendations.`,
	Example: `  mysql-assistant optimize "SELECT * FROM orders"
  mysql-assistant optimize --format json "SELECT * FROM orders"`,
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

		report := app.OptimizeQuery(context.Background(), args[0])

		if format == "json" {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(report)
		}

		headerColor.Println("Original:")
		fmt.Printf("  %s\n\n", report.OriginalQuery)
		headerColor.Println("Optimized:")
		sqlColor.Printf("  %s\n\n", report.OptimizedQuery)

		renderIssues(report.Issues)
		fmt.Println()
		renderSuggestions(report.IndexSuggestions)
		fmt.Println()
		renderPlan(report.Plan)

		if report.Advice != "" {
			fmt.Println()
			headerColor.Println("Recommendations:")
			fmt.Printf("  %s\n", report.Advice)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(optimizeCmd)
	optimizeCmd.Flags().StringP("format", "f", "text", "Output format: text, json")
}
