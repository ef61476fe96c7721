package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Generate markdown documentation for the database schema",
	Example: `  mysql-assistant docs
  mysql-assistant docs --output schema.md`,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		app, err := buildAssistant()
		if err != nil {
			return err
		}
		defer app.Close()

		docs, err := app.GenerateDocumentation(context.Background())
		if err != nil {
			return err
		}

		if output == "" {
			fmt.Print(docs)
			return nil
		}
		if err := os.WriteFile(output, []byte(docs), 0o644); err != nil {
			return err
		}
		fmt.Printf("Documentation written to %s\n", output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)
	docsCmd.Flags().StringP("output", "o", "", "Write documentation to a file instead of stdout")
}
