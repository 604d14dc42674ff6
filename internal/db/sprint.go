package db

import (
	"context"
	"fmt"
	"time"
)

// SprintStatus represents the lifecycle state of a sprint.
type SprintStatus string

const (
	SprintPlanned   SprintStatus = "planned"
	SprintActive    SprintStatus = "active"
	SprintCompleted SprintStatus = "completed"
)

// Sprint represents a sprint. TaskCount and CompletedTaskCount are
// denormalized caches of the true counts over tasks referencing this
// sprint; the dashboard engine reconciles them lazily on read.
type Sprint struct {
	ID                 string
	ProjectID          string
	Name               string
	Status             SprintStatus
	StartDate          time.Time
	EndDate            time.Time
	TaskCount          int
	CompletedTaskCount int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// SprintFilter narrows ListSprints results. Zero value matches everything.
type SprintFilter struct {
	ProjectID string
	Status    SprintStatus
}

// SaveSprint creates or updates a sprint.
func (d *DB) SaveSprint(ctx context.Context, s *Sprint) error {
	if s.ID == "" {
		s.ID = newID()
	}
	if s.Status == "" {
		s.Status = SprintPlanned
	}
	now := time.Now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now

	ph := make([]any, 10)
	for i := range ph {
		ph[i] = d.Placeholder(i + 1)
	}
	query := fmt.Sprintf(`
		INSERT INTO sprints (id, project_id, name, status, start_date, end_date, task_count, completed_task_count, created_at, updated_at)
		VALUES (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		ON CONFLICT (id) DO UPDATE SET
			project_id = excluded.project_id,
			name = excluded.name,
			status = excluded.status,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			task_count = excluded.task_count,
			completed_task_count = excluded.completed_task_count,
			updated_at = excluded.updated_at
	`, ph...)

	_, err := d.Exec(ctx, query,
		s.ID, s.ProjectID, s.Name, string(s.Status), formatTime(s.StartDate), formatTime(s.EndDate),
		s.TaskCount, s.CompletedTaskCount, formatTime(s.CreatedAt), formatTime(s.UpdatedAt))
	if err != nil {
		return fmt.Errorf("save sprint: %w", err)
	}
	return nil
}

// ListSprints returns sprints matching the filter, oldest first.
func (d *DB) ListSprints(ctx context.Context, f SprintFilter) ([]Sprint, error) {
	query := "SELECT id, project_id, name, status, start_date, end_date, task_count, completed_task_count, created_at, updated_at FROM sprints"
	var args []any
	var conds []string
	if f.ProjectID != "" {
		conds = append(conds, fmt.Sprintf("project_id = %s", d.Placeholder(len(args)+1)))
		args = append(args, f.ProjectID)
	}
	if f.Status != "" {
		conds = append(conds, fmt.Sprintf("status = %s", d.Placeholder(len(args)+1)))
		args = append(args, string(f.Status))
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY start_date"

	rows, err := d.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sprints: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sprints []Sprint
	for rows.Next() {
		var s Sprint
		var status, startDate, endDate, createdAt, updatedAt string
		if err := rows.Scan(&s.ID, &s.ProjectID, &s.Name, &status, &startDate, &endDate,
			&s.TaskCount, &s.CompletedTaskCount, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan sprint: %w", err)
		}
		s.Status = SprintStatus(status)
		s.StartDate = parseTime(startDate)
		s.EndDate = parseTime(endDate)
		s.CreatedAt = parseTime(createdAt)
		s.UpdatedAt = parseTime(updatedAt)
		sprints = append(sprints, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sprints: %w", err)
	}

	return sprints, nil
}

// UpdateSprintCounters writes the denormalized task counters for a sprint.
func (d *DB) UpdateSprintCounters(ctx context.Context, id string, taskCount, completedTaskCount int) error {
	query := fmt.Sprintf(`
		UPDATE sprints SET task_count = %s, completed_task_count = %s, updated_at = %s
		WHERE id = %s
	`, d.Placeholder(1), d.Placeholder(2), d.Placeholder(3), d.Placeholder(4))

	_, err := d.Exec(ctx, query, taskCount, completedTaskCount, formatTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("update sprint counters: %w", err)
	}
	return nil
}
