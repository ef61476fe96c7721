package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check connectivity of the database and language model",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildAssistant()
		if err != nil {
			return err
		}
		defer app.Close()

		statuses := app.HealthCheck(context.Background())

		components := make([]string, 0, len(statuses))
		for name := range statuses {
			components = append(components, name)
		}
		sort.Strings(components)

		for _, name := range components {
			status := statuses[name]
			c := sqlColor
			if !status.Connected {
				c = highColor
			}
			c.Printf("%-10s %s", name, status.Status)
			if status.Detail != "" {
				subtextColor.Printf("  (%s)", status.Detail)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
