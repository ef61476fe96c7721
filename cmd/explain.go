package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var explainCmd = &cobra.Command{
	Use:     "explain [sql]",
	Short:   "Explain what a query does in plain language",
	Example: `  mysql-assistant explain "SELECT c.name, COUNT(*) FROM customers c JOIN orders o ON o.customer_id = c.id GROUP BY c.name"`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildAssistant()
		if err != nil {
			return err
		}
		defer app.Close()

		fmt.Println(app.ExplainQuery(context.Background(), args[0]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(explainCmd)
}
