package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/randalmurphal/workdeck/internal/db"
)

// costTrendMonths is the trailing window of the cost trend, current
// month included.
const costTrendMonths = 6

// FinancialSummary rolls up budget, spend, and utilization for the
// workspace and per project.
//
// Exactly three grouped-sum queries are issued (budgets, costs,
// expenses), concurrently. Workspace totals include unattributed
// amounts; the per-project breakdown lists only projects with nonzero
// budget or spend.
func (e *Engine) FinancialSummary(ctx context.Context) (FinanceSummary, error) {
	var budgets, costs, expenses map[string]float64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		budgets, err = e.store.SumAmountByProject(gctx, db.TableBudgets)
		return err
	})
	g.Go(func() error {
		var err error
		costs, err = e.store.SumAmountByProject(gctx, db.TableCosts)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = e.store.SumAmountByProject(gctx, db.TableExpenses)
		return err
	})
	if err := g.Wait(); err != nil {
		return FinanceSummary{}, fmt.Errorf("financial rollup: %w", err)
	}

	summary := FinanceSummary{}
	for _, v := range budgets {
		summary.TotalBudget += v
	}
	for _, v := range costs {
		summary.TotalSpent += v
	}
	for _, v := range expenses {
		summary.TotalSpent += v
	}
	summary.Remaining = summary.TotalBudget - summary.TotalSpent
	summary.Utilization = utilization(summary.TotalSpent, summary.TotalBudget)

	// Union of project IDs across all three maps; the empty key holds
	// unattributed amounts and stays out of the per-project breakdown.
	projectIDs := make(map[string]bool)
	for id := range budgets {
		projectIDs[id] = true
	}
	for id := range costs {
		projectIDs[id] = true
	}
	for id := range expenses {
		projectIDs[id] = true
	}
	delete(projectIDs, "")

	for id := range projectIDs {
		pf := ProjectFinance{
			ProjectID: id,
			Budget:    budgets[id],
			Spent:     costs[id] + expenses[id],
		}
		if pf.Budget == 0 && pf.Spent == 0 {
			continue
		}
		pf.Remaining = pf.Budget - pf.Spent
		pf.Utilization = utilization(pf.Spent, pf.Budget)
		summary.Projects = append(summary.Projects, pf)
	}
	sort.Slice(summary.Projects, func(i, j int) bool {
		return summary.Projects[i].ProjectID < summary.Projects[j].ProjectID
	})

	return summary, nil
}

// CostTrend buckets costs and expenses by calendar month for the
// trailing window, oldest first, current month included. The series
// always has exactly costTrendMonths entries; months with no records
// carry zeros. Two bounded window queries cover the whole trend.
func (e *Engine) CostTrend(ctx context.Context) ([]CostTrendRow, error) {
	now := e.now()
	start := monthStart(now).AddDate(0, -(costTrendMonths - 1), 0)
	end := monthStart(now).AddDate(0, 1, 0)

	var costs []db.Cost
	var expenses []db.Expense

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		costs, err = e.store.CostsBetween(gctx, start, end)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = e.store.ExpensesBetween(gctx, start, end)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("cost trend: %w", err)
	}

	costByMonth := make(map[string]float64)
	for _, c := range costs {
		costByMonth[monthKey(c.Date)] += c.Amount
	}
	expenseByMonth := make(map[string]float64)
	for _, x := range expenses {
		expenseByMonth[monthKey(x.StartDate)] += x.Amount
	}

	trend := make([]CostTrendRow, 0, costTrendMonths)
	for i := costTrendMonths - 1; i >= 0; i-- {
		key := monthKey(monthStart(now).AddDate(0, -i, 0))
		row := CostTrendRow{
			Month:   key,
			Cost:    costByMonth[key],
			Expense: expenseByMonth[key],
		}
		row.Total = row.Cost + row.Expense
		trend = append(trend, row)
	}

	return trend, nil
}

func utilization(spent, budget float64) float64 {
	if budget == 0 {
		return 0
	}
	return spent / budget * 100
}

// monthStart returns midnight UTC on the first of t's month.
func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// monthKey formats a time as its YYYY-MM bucket label.
func monthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}
