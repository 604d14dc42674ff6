// Package dashboard implements the aggregation and derived-metrics
// engine: composite health/productivity scoring, financial rollups,
// time-series overviews, activity feeds, and sprint counter
// reconciliation over the workspace store.
//
// The engine is read-mostly and idempotent. Independent reads are
// issued concurrently; each sub-computation fails soft, so a broken
// section degrades to its zero value instead of taking down the whole
// composite result. Only the top-level project/task fetch is fatal.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/randalmurphal/workdeck/internal/db"
)

// DefaultActivityLimit bounds the activity feed when the caller does
// not specify a limit.
const DefaultActivityLimit = 20

// Engine computes composite dashboard metrics over a workspace store.
type Engine struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// New creates a dashboard engine.
func New(store Store, logger *slog.Logger) *Engine {
	return NewWithClock(store, logger, time.Now)
}

// NewWithClock creates an engine with an injected clock. This is
// primarily used for testing with fixed timestamps.
func NewWithClock(store Store, logger *slog.Logger, now func() time.Time) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{store: store, logger: logger, now: now}
}

// ComputeDashboard assembles the full composite dashboard for a user.
//
// The project/task/sprint snapshot is fetched concurrently; project and
// task failures are fatal because every downstream section depends on
// them. Everything after that is best-effort: a failed section is
// logged and replaced with its zero value.
func (e *Engine) ComputeDashboard(ctx context.Context, userID string) (*Dashboard, error) {
	now := e.now()

	var projects []db.Project
	var tasks []db.Task
	var sprints []db.Sprint

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		projects, err = e.store.ListProjects(gctx, db.ProjectFilter{})
		if err != nil {
			return fmt.Errorf("load projects: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		tasks, err = e.store.ListTasks(gctx, db.TaskFilter{})
		if err != nil {
			return fmt.Errorf("load tasks: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		// Sprint load failures are not fatal; the dashboard renders
		// without the sprint section.
		var err error
		sprints, err = e.store.ListSprints(gctx, db.SprintFilter{})
		if err != nil {
			e.logger.Warn("load sprints failed, continuing without", "error", err)
			sprints = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := &Dashboard{
		GeneratedAt:  now,
		Stats:        workspaceStats(projects, tasks, now),
		Health:       HealthScore(projects, tasks, now),
		Productivity: ProductivityIndex(tasks, now),
		Overview:     monthlyOverview(projects, tasks, now, PeriodMonth),
		Burndown:     Burndown(tasks, now),
	}

	// Counter reconciliation needs the sprint list before the aggregate
	// query, so it runs sequentially here; its writes are idempotent.
	d.Sprints = e.SyncSprintCounters(ctx, sprints)

	// Remaining sections are independent I/O; issue them concurrently.
	// Each recovers to its zero value on failure, so the group never
	// returns an error.
	sg, sctx := errgroup.WithContext(ctx)
	sg.Go(func() error {
		summary, err := e.FinancialSummary(sctx)
		if err != nil {
			e.logger.Warn("financial summary failed, using zeroed totals", "error", err)
			return nil
		}
		d.Finance = summary
		return nil
	})
	sg.Go(func() error {
		trend, err := e.CostTrend(sctx)
		if err != nil {
			e.logger.Warn("cost trend failed, omitting", "error", err)
			return nil
		}
		d.CostTrend = trend
		return nil
	})
	sg.Go(func() error {
		feed, err := e.ActivityFeed(sctx, userID, DefaultActivityLimit)
		if err != nil {
			e.logger.Warn("activity feed failed, omitting", "error", err)
			return nil
		}
		d.Activity = feed
		return nil
	})
	sg.Go(func() error {
		contributions, err := e.Contributions(sctx)
		if err != nil {
			e.logger.Warn("contribution scores failed, omitting", "error", err)
			return nil
		}
		d.Contributions = contributions
		return nil
	})
	_ = sg.Wait()

	return d, nil
}

// ComputeProjectStatistics computes the narrower statistics view for a
// single project, or for the whole workspace when projectID is empty.
func (e *Engine) ComputeProjectStatistics(ctx context.Context, projectID string) (*ProjectStatistics, error) {
	now := e.now()

	var projects []db.Project
	var tasks []db.Task

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		projects, err = e.store.ListProjects(gctx, db.ProjectFilter{})
		if err != nil {
			return fmt.Errorf("load projects: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		tasks, err = e.store.ListTasks(gctx, db.TaskFilter{ProjectID: projectID})
		if err != nil {
			return fmt.Errorf("load tasks: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if projectID != "" {
		scoped := projects[:0:0]
		for _, p := range projects {
			if p.ID == projectID {
				scoped = append(scoped, p)
			}
		}
		projects = scoped
	}

	stats := &ProjectStatistics{
		ProjectID:    projectID,
		Stats:        workspaceStats(projects, tasks, now),
		Health:       HealthScore(projects, tasks, now),
		Productivity: ProductivityIndex(tasks, now),
	}
	for _, t := range tasks {
		stats.TotalEstimatedCost += t.EstimatedCost
	}

	summary, err := e.FinancialSummary(ctx)
	if err != nil {
		e.logger.Warn("financial summary failed, using zeroed totals", "error", err)
	} else if projectID == "" {
		stats.Finance = summary
	} else {
		stats.Finance = scopeFinance(summary, projectID)
	}

	return stats, nil
}

// ComputeMonthlyOverview computes the task-completion overview for a
// period selector. Best-effort: failures yield an empty series.
func (e *Engine) ComputeMonthlyOverview(ctx context.Context, userID, period string) []OverviewEntry {
	return e.MonthlyOverview(ctx, period)
}

// workspaceStats tallies the plain counters over the snapshot.
func workspaceStats(projects []db.Project, tasks []db.Task, now time.Time) WorkspaceStats {
	s := WorkspaceStats{
		TotalProjects: len(projects),
		TotalTasks:    len(tasks),
	}
	for _, p := range projects {
		if p.Status == db.ProjectActive {
			s.ActiveProjects++
		}
	}
	for _, t := range tasks {
		switch t.Status {
		case db.TaskComplete:
			s.CompletedTasks++
		case db.TaskInProgress:
			s.InProgressTasks++
		}
		if isOverdue(t, now) {
			s.OverdueTasks++
		}
	}
	s.CompletionRate = percent(s.CompletedTasks, s.TotalTasks)
	return s
}

// scopeFinance extracts a single project's slice of the workspace
// financial summary.
func scopeFinance(summary FinanceSummary, projectID string) FinanceSummary {
	for _, pf := range summary.Projects {
		if pf.ProjectID == projectID {
			return FinanceSummary{
				TotalBudget: pf.Budget,
				TotalSpent:  pf.Spent,
				Remaining:   pf.Remaining,
				Utilization: pf.Utilization,
				Projects:    []ProjectFinance{pf},
			}
		}
	}
	return FinanceSummary{}
}
