package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/workdeck/internal/config"
)

// newSeedCmd creates the seed command
func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.json>",
		Short: "Import a workspace export into the store",
		Long: `Import a workspace export (JSON) into the store.

The importer is tolerant: amounts may be numbers or formatted strings,
timestamps may be RFC3339 or date-only. Malformed values coerce to
zero instead of failing the import.

Example:
  workdeck seed export.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.RequireInit(); err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read export: %w", err)
			}

			store, _, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			stats, err := store.Import(cmd.Context(), data)
			if err != nil {
				return err
			}

			if jsonOut {
				return printJSON(stats)
			}
			if !quiet {
				fmt.Printf("Imported %d projects, %d tasks, %d sprints, %d users\n",
					stats.Projects, stats.Tasks, stats.Sprints, stats.Users)
				fmt.Printf("Imported %d budgets, %d costs, %d expenses, %d notifications, %d comments\n",
					stats.Budgets, stats.Costs, stats.Expenses, stats.Notifications, stats.Comments)
			}
			return nil
		},
	}
}
