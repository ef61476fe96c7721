package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:     "generate [description]",
	Short:   "Generate a SQL query from a description without executing it",
	Example: `  mysql-assistant generate "total revenue per customer"`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildAssistant()
		if err != nil {
			return err
		}
		defer app.Close()

		result := app.GenerateQuery(context.Background(), strings.Join(args, " "))

		sqlColor.Println(result.SQL)
		if result.Valid {
			subtextColor.Printf("validated in %d attempt(s)\n", result.Attempts)
			return nil
		}
		if result.PolicyViolation {
			highColor.Println("Rejected: only SELECT queries are allowed.")
			return nil
		}
		mediumColor.Printf("not validated: %s\n", result.ValidationError)
		fmt.Println()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
