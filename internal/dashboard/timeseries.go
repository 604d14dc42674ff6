package dashboard

import (
	"context"
	"time"

	"github.com/randalmurphal/workdeck/internal/db"
)

// Period selectors for the monthly overview.
const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// periodBuckets maps a period selector to its month-bucket count.
func periodBuckets(period string) int {
	switch period {
	case PeriodWeek:
		return 1
	case PeriodYear:
		return 12
	default:
		return 5
	}
}

// minimumVisibleTotal keeps the current-month bar nonzero when the
// workspace has projects but no countable tasks, so the chart shows the
// workspace exists. Display heuristic carried over from the consumer's
// existing contract; remove here if product drops it.
const minimumVisibleTotal = 1

// MonthlyOverview generates the task-completion overview for a period
// selector. This is a best-effort display feed: any failure logs a
// warning and yields an empty series, never an error.
func (e *Engine) MonthlyOverview(ctx context.Context, period string) []OverviewEntry {
	projects, err := e.store.ListProjects(ctx, db.ProjectFilter{})
	if err != nil {
		e.logger.Warn("overview: load projects failed", "error", err)
		return []OverviewEntry{}
	}
	tasks, err := e.store.ListTasks(ctx, db.TaskFilter{})
	if err != nil {
		e.logger.Warn("overview: load tasks failed", "error", err)
		return []OverviewEntry{}
	}

	return monthlyOverview(projects, tasks, e.now(), period)
}

// monthlyOverview is the pure generator behind MonthlyOverview. One
// entry per calendar month, oldest first, ending at the current month.
//
// The current month reflects present-moment state: every task attached
// to a project plus every standalone task counts, regardless of when it
// was created. Past months count tasks created in that month plus tasks
// whose completion (status complete, updated_at) landed in that month —
// so one task can appear in its creation month and again in a later
// month's completed tally.
func monthlyOverview(projects []db.Project, tasks []db.Task, now time.Time, period string) []OverviewEntry {
	buckets := periodBuckets(period)
	current := monthStart(now)

	entries := make([]OverviewEntry, 0, buckets)
	for i := buckets - 1; i >= 0; i-- {
		month := current.AddDate(0, -i, 0)

		if i == 0 {
			entries = append(entries, currentMonthEntry(projects, tasks, month))
			continue
		}

		var total, completed int
		for _, t := range tasks {
			completedInMonth := t.Status == db.TaskComplete && inMonth(t.UpdatedAt, month)
			if inMonth(t.CreatedAt, month) || completedInMonth {
				total++
			}
			if completedInMonth {
				completed++
			}
		}
		entries = append(entries, OverviewEntry{
			Month:     monthKey(month),
			Total:     total,
			Completed: completed,
		})
	}

	return entries
}

// currentMonthEntry builds the highlighted present-moment bucket.
func currentMonthEntry(projects []db.Project, tasks []db.Task, month time.Time) OverviewEntry {
	entry := OverviewEntry{
		Month:         monthKey(month),
		Total:         len(tasks), // project tasks plus standalone tasks
		IsHighlighted: true,
	}
	for _, t := range tasks {
		if t.Status == db.TaskComplete {
			entry.Completed++
		}
	}
	if entry.Total == 0 && len(projects) > 0 {
		entry.Total = minimumVisibleTotal
	}
	return entry
}

// inMonth reports whether t falls inside the calendar month starting
// at monthStart.
func inMonth(t time.Time, month time.Time) bool {
	t = t.UTC()
	return t.Year() == month.Year() && t.Month() == month.Month()
}
