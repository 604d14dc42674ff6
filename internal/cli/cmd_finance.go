package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/workdeck/internal/config"
	"github.com/randalmurphal/workdeck/internal/dashboard"
)

// newFinanceCmd creates the finance command
func newFinanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "finance",
		Short: "Show the financial rollup and cost trend",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.RequireInit(); err != nil {
				return err
			}

			store, _, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			engine := dashboard.New(store, slog.Default())

			summary, err := engine.FinancialSummary(cmd.Context())
			if err != nil {
				return err
			}
			trend, err := engine.CostTrend(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOut {
				return printJSON(map[string]any{
					"summary": summary,
					"trend":   trend,
				})
			}

			fmt.Printf("Budget     %.2f\n", summary.TotalBudget)
			fmt.Printf("Spent      %.2f\n", summary.TotalSpent)
			fmt.Printf("Remaining  %.2f\n", summary.Remaining)
			fmt.Println(bar(summary.Utilization, terminalWidth()/3))
			fmt.Println()

			if len(summary.Projects) > 0 {
				w := newTable()
				fmt.Fprintln(w, "PROJECT\tBUDGET\tSPENT\tREMAINING\tUTILIZATION")
				for _, pf := range summary.Projects {
					fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%.1f%%\n",
						pf.ProjectID, pf.Budget, pf.Spent, pf.Remaining, pf.Utilization)
				}
				_ = w.Flush()
				fmt.Println()
			}

			w := newTable()
			fmt.Fprintln(w, "MONTH\tCOST\tEXPENSE\tTOTAL")
			for _, row := range trend {
				fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\n", row.Month, row.Cost, row.Expense, row.Total)
			}
			return w.Flush()
		},
	}
}
