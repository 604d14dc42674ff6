package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/workdeck/internal/config"
	"github.com/randalmurphal/workdeck/internal/dashboard"
)

// newDashboardCmd creates the dashboard command
func newDashboardCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Compute the composite workspace dashboard",
		Long: `Compute the composite workspace dashboard: health score,
productivity index, financial rollup, monthly overview, activity feed,
contributions, and burn-down.

Example:
  workdeck dashboard
  workdeck dashboard --user alice --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.RequireInit(); err != nil {
				return err
			}

			store, cfg, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if userID == "" {
				userID = cfg.Dashboard.DefaultUser
			}

			engine := dashboard.New(store, slog.Default())
			d, err := engine.ComputeDashboard(cmd.Context(), userID)
			if err != nil {
				return fmt.Errorf("compute dashboard: %w", err)
			}

			if jsonOut {
				return printJSON(d)
			}
			printDashboard(d)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user the activity feed is scoped to")
	return cmd
}

// printDashboard renders the composite result as tables.
func printDashboard(d *dashboard.Dashboard) {
	width := terminalWidth()
	barWidth := width / 3

	fmt.Printf("Health        %3d (%s)\n", d.Health.Score, d.Health.Trend)
	fmt.Printf("Productivity  %3d\n", d.Productivity)
	fmt.Println()

	fmt.Printf("Projects  %d total, %d active\n", d.Stats.TotalProjects, d.Stats.ActiveProjects)
	fmt.Printf("Tasks     %d total, %d complete, %d in progress, %d overdue\n",
		d.Stats.TotalTasks, d.Stats.CompletedTasks, d.Stats.InProgressTasks, d.Stats.OverdueTasks)
	fmt.Println()

	fmt.Printf("Budget    %.2f spent of %.2f\n", d.Finance.TotalSpent, d.Finance.TotalBudget)
	fmt.Println(bar(d.Finance.Utilization, barWidth))
	fmt.Println()

	if len(d.Overview) > 0 {
		w := newTable()
		fmt.Fprintln(w, "MONTH\tTOTAL\tCOMPLETED")
		for _, entry := range d.Overview {
			marker := ""
			if entry.IsHighlighted {
				marker = " *"
			}
			fmt.Fprintf(w, "%s%s\t%d\t%d\n", entry.Month, marker, entry.Total, entry.Completed)
		}
		_ = w.Flush()
		fmt.Println()
	}

	if len(d.Activity) > 0 {
		w := newTable()
		fmt.Fprintln(w, "WHEN\tKIND\tPROJECT\tTASK")
		for _, a := range d.Activity {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				a.CreatedAt.Format("01-02 15:04"), a.Kind,
				truncate(a.ProjectName, 24), truncate(a.TaskTitle, 32))
		}
		_ = w.Flush()
	}
}
