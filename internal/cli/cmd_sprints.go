package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/workdeck/internal/config"
	"github.com/randalmurphal/workdeck/internal/dashboard"
	"github.com/randalmurphal/workdeck/internal/db"
)

// newSprintsCmd creates the sprints command
func newSprintsCmd() *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "sprints",
		Short: "List sprints with reconciled task counters",
		Long: `List sprints after reconciling their cached task counters against
the true counts. Drifted counters are corrected in storage as a side
effect.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.RequireInit(); err != nil {
				return err
			}

			store, _, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			sprints, err := store.ListSprints(cmd.Context(), db.SprintFilter{ProjectID: projectID})
			if err != nil {
				return fmt.Errorf("load sprints: %w", err)
			}

			engine := dashboard.New(store, slog.Default())
			sprints = engine.SyncSprintCounters(cmd.Context(), sprints)

			if jsonOut {
				return printJSON(sprints)
			}

			if len(sprints) == 0 {
				fmt.Println("No sprints found.")
				return nil
			}

			w := newTable()
			fmt.Fprintln(w, "ID\tNAME\tSTATUS\tTASKS\tCOMPLETED")
			for _, s := range sprints {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n",
					s.ID, truncate(s.Name, 32), s.Status, s.TaskCount, s.CompletedTaskCount)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "only sprints for this project")
	return cmd
}
