package dashboard

import (
	"math"
	"time"

	"github.com/randalmurphal/workdeck/internal/db"
)

// neutralScore is returned when there is no data to score.
const neutralScore = 50

// HealthScore computes the workspace health score from a project/task
// snapshot. Pure function: no queries, no side effects.
//
//	health = 0.4·completionRate + 0.3·projectActiveRate
//	       + 0.2·avgProjectProgress − 0.1·overdueRate
//
// Rates are percentages. The result is rounded and clamped to [0,100];
// an empty snapshot scores a neutral 50.
func HealthScore(projects []db.Project, tasks []db.Task, now time.Time) HealthStatus {
	if len(projects) == 0 && len(tasks) == 0 {
		return HealthStatus{Score: neutralScore, Trend: TrendStable}
	}

	var completionRate, overdueRate float64
	if len(tasks) > 0 {
		var completed, overdue int
		for _, t := range tasks {
			if t.Status == db.TaskComplete {
				completed++
			}
			if isOverdue(t, now) {
				overdue++
			}
		}
		completionRate = percent(completed, len(tasks))
		overdueRate = percent(overdue, len(tasks))
	}

	var activeRate, avgProgress float64
	if len(projects) > 0 {
		var active, progressSum int
		for _, p := range projects {
			if p.Status == db.ProjectActive {
				active++
			}
			progressSum += p.Progress
		}
		activeRate = percent(active, len(projects))
		avgProgress = float64(progressSum) / float64(len(projects))
	}

	score := clampScore(0.4*completionRate + 0.3*activeRate + 0.2*avgProgress - 0.1*overdueRate)
	return HealthStatus{Score: score, Trend: healthTrend(score)}
}

// healthTrend derives the trend label from the score itself.
func healthTrend(score int) string {
	switch {
	case score >= 70:
		return TrendUp
	case score < 50:
		return TrendDown
	default:
		return TrendStable
	}
}

// ProductivityIndex computes the workspace productivity index from a
// task snapshot. Pure function.
//
//	productivity = completionRate + 0.5·inProgressRate
//	             + 0.2·onTimeRate − 0.4·overdueRate
//
// Rounded and clamped to [0,100]; no tasks scores a neutral 50.
func ProductivityIndex(tasks []db.Task, now time.Time) int {
	if len(tasks) == 0 {
		return neutralScore
	}

	var completed, inProgress, onTime, overdue int
	for _, t := range tasks {
		switch t.Status {
		case db.TaskComplete:
			completed++
		case db.TaskInProgress:
			inProgress++
		}
		if isOnTime(t, now) {
			onTime++
		}
		if isOverdue(t, now) {
			overdue++
		}
	}

	total := len(tasks)
	return clampScore(percent(completed, total) +
		0.5*percent(inProgress, total) +
		0.2*percent(onTime, total) -
		0.4*percent(overdue, total))
}

// isOverdue reports whether a task has a past due date and is not complete.
func isOverdue(t db.Task, now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != db.TaskComplete
}

// isOnTime reports whether a task has a present or future due date and
// is complete or in progress.
func isOnTime(t db.Task, now time.Time) bool {
	if t.DueDate == nil || t.DueDate.Before(now) {
		return false
	}
	return t.Status == db.TaskComplete || t.Status == db.TaskInProgress
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

func clampScore(v float64) int {
	r := math.Round(v)
	if r < 0 {
		return 0
	}
	if r > 100 {
		return 100
	}
	return int(r)
}
