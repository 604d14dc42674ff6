package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/workdeck/internal/config"
	"github.com/randalmurphal/workdeck/internal/dashboard"
	"github.com/randalmurphal/workdeck/internal/db"
)

// newStatusCmd creates the status command
func newStatusCmd() *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show workspace or project statistics",
		Long: `Show quick statistics: task counts by status plus health and
productivity scores. Scope to one project with --project.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.RequireInit(); err != nil {
				return err
			}

			store, _, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			counts, err := store.TaskCountsByStatus(cmd.Context())
			if err != nil {
				return fmt.Errorf("load status counts: %w", err)
			}

			engine := dashboard.New(store, slog.Default())
			stats, err := engine.ComputeProjectStatistics(cmd.Context(), projectID)
			if err != nil {
				return fmt.Errorf("compute statistics: %w", err)
			}

			if jsonOut {
				return printJSON(map[string]any{
					"status_counts": counts,
					"statistics":    stats,
				})
			}

			w := newTable()
			fmt.Fprintln(w, "STATUS\tCOUNT")
			for _, status := range []db.TaskStatus{db.TaskTodo, db.TaskInProgress, db.TaskComplete, db.TaskBacklog} {
				fmt.Fprintf(w, "%s\t%d\n", status, counts[status])
			}
			_ = w.Flush()
			fmt.Println()

			fmt.Printf("Health        %3d (%s)\n", stats.Health.Score, stats.Health.Trend)
			fmt.Printf("Productivity  %3d\n", stats.Productivity)
			fmt.Printf("Completion    %.1f%%\n", stats.Stats.CompletionRate)
			if stats.TotalEstimatedCost > 0 {
				fmt.Printf("Estimated     %.2f\n", stats.TotalEstimatedCost)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "scope statistics to this project")
	return cmd
}
