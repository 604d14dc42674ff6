package db

import (
	"context"
	"fmt"
)

// SprintTaskCounts holds the true task counts for one sprint, computed
// by SQL aggregation.
type SprintTaskCounts struct {
	Count     int
	Completed int
}

// TaskCountsBySprint computes task and completed-task counts for the
// given sprints in a single grouped query. This replaces the N+1
// pattern of one count query per sprint. Sprints with no tasks are
// absent from the result; callers treat absence as zero.
func (d *DB) TaskCountsBySprint(ctx context.Context, sprintIDs []string) (map[string]SprintTaskCounts, error) {
	if len(sprintIDs) == 0 {
		return map[string]SprintTaskCounts{}, nil
	}

	args := make([]any, len(sprintIDs))
	for i, id := range sprintIDs {
		args[i] = id
	}

	query := fmt.Sprintf(`
		SELECT
			sprint_id,
			COUNT(*) as task_count,
			SUM(CASE WHEN status = 'complete' THEN 1 ELSE 0 END) as completed_count
		FROM tasks
		WHERE sprint_id IN (%s)
		GROUP BY sprint_id
	`, d.placeholders(1, len(sprintIDs)))

	rows, err := d.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("task counts by sprint: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]SprintTaskCounts, len(sprintIDs))
	for rows.Next() {
		var sprintID string
		var c SprintTaskCounts
		if err := rows.Scan(&sprintID, &c.Count, &c.Completed); err != nil {
			return nil, fmt.Errorf("scan sprint task counts: %w", err)
		}
		counts[sprintID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sprint task counts: %w", err)
	}

	return counts, nil
}

// TaskCountsByStatus returns the task count per status in one grouped query.
func (d *DB) TaskCountsByStatus(ctx context.Context) (map[TaskStatus]int, error) {
	rows, err := d.Query(ctx, "SELECT status, COUNT(*) FROM tasks GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("task counts by status: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[TaskStatus]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[TaskStatus(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status counts: %w", err)
	}

	return counts, nil
}
