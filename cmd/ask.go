package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a natural-language question with a generated query",
	Example: `  mysql-assistant ask "show me customers from California"
  mysql-assistant ask "how many orders were placed this year"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildAssistant()
		if err != nil {
			return err
		}
		defer app.Close()

		question := strings.Join(args, " ")
		response := app.Ask(context.Background(), question)

		headerColor.Println("Generated SQL:")
		sqlColor.Printf("  %s\n\n", response.Generation.SQL)

		if !response.Generation.Valid {
			if response.Generation.PolicyViolation {
				highColor.Println("Rejected: only SELECT queries are allowed.")
			} else {
				mediumColor.Printf("Query did not validate: %s\n", response.Generation.ValidationError)
			}
			return nil
		}

		if response.Result != nil {
			headerColor.Printf("Results (%d rows):\n", response.Result.RowCount)
			renderRows(response.Result.Columns, response.Result.Rows, 20)
			fmt.Println()
		}
		if response.Explanation != "" {
			headerColor.Println("Explanation:")
			fmt.Printf("  %s\n", response.Explanation)
		}
		return nil
	},
}

func renderRows(columns []string, rows []map[string]any, limit int) {
	fmt.Printf("  %s\n", strings.Join(columns, " | "))
	for i, row := range rows {
		if i >= limit {
			subtextColor.Printf("  ... %d more rows\n", len(rows)-limit)
			break
		}
		values := make([]string, 0, len(columns))
		for _, col := range columns {
			values = append(values, fmt.Sprintf("%v", row[col]))
		}
		fmt.Printf("  %s\n", strings.Join(values, " | "))
	}
}

func init() {
	rootCmd.AddCommand(askCmd)
}
