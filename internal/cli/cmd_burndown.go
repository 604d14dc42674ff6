package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/workdeck/internal/config"
	"github.com/randalmurphal/workdeck/internal/dashboard"
	"github.com/randalmurphal/workdeck/internal/db"
)

// newBurndownCmd creates the burndown command
func newBurndownCmd() *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "burndown",
		Short: "Show the 14-day burn-down series",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.RequireInit(); err != nil {
				return err
			}

			store, _, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			tasks, err := store.ListTasks(cmd.Context(), db.TaskFilter{ProjectID: projectID})
			if err != nil {
				return fmt.Errorf("load tasks: %w", err)
			}

			points := dashboard.Burndown(tasks, time.Now())

			if jsonOut {
				return printJSON(points)
			}

			w := newTable()
			fmt.Fprintln(w, "DATE\tREMAINING\tIDEAL")
			for _, p := range points {
				fmt.Fprintf(w, "%s\t%d\t%.1f\n", p.Date, p.Remaining, p.Ideal)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "only tasks for this project")
	return cmd
}
