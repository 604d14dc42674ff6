package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/workdeck/internal/config"
	"github.com/randalmurphal/workdeck/internal/dashboard"
)

// newOverviewCmd creates the overview command
func newOverviewCmd() *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Show the monthly task-completion overview",
		Long: `Show the task-completion overview bucketed by calendar month.

Periods: week (1 bucket), month (5 buckets), year (12 buckets).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.RequireInit(); err != nil {
				return err
			}

			store, cfg, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if period == "" {
				period = cfg.Dashboard.DefaultPeriod
			}

			engine := dashboard.New(store, slog.Default())
			entries := engine.MonthlyOverview(cmd.Context(), period)

			if jsonOut {
				return printJSON(entries)
			}

			w := newTable()
			fmt.Fprintln(w, "MONTH\tTOTAL\tCOMPLETED")
			for _, entry := range entries {
				marker := ""
				if entry.IsHighlighted {
					marker = " *"
				}
				fmt.Fprintf(w, "%s%s\t%d\t%d\n", entry.Month, marker, entry.Total, entry.Completed)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&period, "period", "", "overview period: week, month, or year")
	return cmd
}
