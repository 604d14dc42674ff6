package db

import (
	"context"
	"fmt"
	"time"
)

// TaskStatus represents the workflow state of a task.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskComplete   TaskStatus = "complete"
	TaskBacklog    TaskStatus = "backlog"
)

// TaskPriority represents task urgency.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// Task represents a workspace task. ProjectID and SprintID are empty
// for standalone tasks.
type Task struct {
	ID            string
	Title         string
	Description   string
	ProjectID     string
	SprintID      string
	Status        TaskStatus
	Priority      TaskPriority
	DueDate       *time.Time
	AssigneeIDs   []string
	CreatedBy     string
	EstimatedCost float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TaskFilter narrows ListTasks results. Zero value matches everything.
type TaskFilter struct {
	ProjectID      string
	SprintID       string
	Status         TaskStatus
	StandaloneOnly bool // tasks with no project
}

// SaveTask creates or updates a task and replaces its assignee rows.
func (d *DB) SaveTask(ctx context.Context, t *Task) error {
	if t.ID == "" {
		t.ID = newID()
	}
	if t.Status == "" {
		t.Status = TaskTodo
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}

	ph := make([]any, 12)
	for i := range ph {
		ph[i] = d.Placeholder(i + 1)
	}
	query := fmt.Sprintf(`
		INSERT INTO tasks (id, title, description, project_id, sprint_id, status, priority, due_date, created_by, estimated_cost, created_at, updated_at)
		VALUES (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			project_id = excluded.project_id,
			sprint_id = excluded.sprint_id,
			status = excluded.status,
			priority = excluded.priority,
			due_date = excluded.due_date,
			created_by = excluded.created_by,
			estimated_cost = excluded.estimated_cost,
			updated_at = excluded.updated_at
	`, ph...)

	_, err := d.Exec(ctx, query,
		t.ID, t.Title, t.Description, nullableString(t.ProjectID), nullableString(t.SprintID),
		string(t.Status), string(t.Priority), formatTimePtr(t.DueDate), t.CreatedBy,
		t.EstimatedCost, formatTime(t.CreatedAt), formatTime(t.UpdatedAt))
	if err != nil {
		return fmt.Errorf("save task: %w", err)
	}

	if _, err := d.Exec(ctx, fmt.Sprintf("DELETE FROM task_assignees WHERE task_id = %s", d.Placeholder(1)), t.ID); err != nil {
		return fmt.Errorf("clear task assignees: %w", err)
	}
	for _, userID := range t.AssigneeIDs {
		_, err := d.Exec(ctx, fmt.Sprintf(
			"INSERT INTO task_assignees (task_id, user_id) VALUES (%s, %s)",
			d.Placeholder(1), d.Placeholder(2)), t.ID, userID)
		if err != nil {
			return fmt.Errorf("save task assignee: %w", err)
		}
	}

	return nil
}

// ListTasks returns tasks matching the filter with assignees attached.
// Assignees come from a single grouped scan, never one query per task.
func (d *DB) ListTasks(ctx context.Context, f TaskFilter) ([]Task, error) {
	query := "SELECT id, title, description, project_id, sprint_id, status, priority, due_date, created_by, estimated_cost, created_at, updated_at FROM tasks"
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		conds = append(conds, fmt.Sprintf(cond, d.Placeholder(len(args)+1)))
		args = append(args, arg)
	}
	if f.ProjectID != "" {
		add("project_id = %s", f.ProjectID)
	}
	if f.SprintID != "" {
		add("sprint_id = %s", f.SprintID)
	}
	if f.Status != "" {
		add("status = %s", string(f.Status))
	}
	if f.StandaloneOnly {
		conds = append(conds, "project_id IS NULL")
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY created_at"

	rows, err := d.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []Task
	for rows.Next() {
		var t Task
		var projectID, sprintID, dueDate *string
		var status, priority, createdAt, updatedAt string
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &projectID, &sprintID,
			&status, &priority, &dueDate, &t.CreatedBy, &t.EstimatedCost, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		t.ProjectID = stringValue(projectID)
		t.SprintID = stringValue(sprintID)
		t.Status = TaskStatus(status)
		t.Priority = TaskPriority(priority)
		t.DueDate = parseTimePtr(dueDate)
		t.CreatedAt = parseTime(createdAt)
		t.UpdatedAt = parseTime(updatedAt)
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}

	assignees, err := d.taskAssignees(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		tasks[i].AssigneeIDs = assignees[tasks[i].ID]
	}

	return tasks, nil
}

// taskAssignees loads all assignee rows grouped by task in one query.
func (d *DB) taskAssignees(ctx context.Context) (map[string][]string, error) {
	rows, err := d.Query(ctx, "SELECT task_id, user_id FROM task_assignees ORDER BY task_id, user_id")
	if err != nil {
		return nil, fmt.Errorf("list task assignees: %w", err)
	}
	defer func() { _ = rows.Close() }()

	assignees := make(map[string][]string)
	for rows.Next() {
		var taskID, userID string
		if err := rows.Scan(&taskID, &userID); err != nil {
			return nil, fmt.Errorf("scan task assignee: %w", err)
		}
		assignees[taskID] = append(assignees[taskID], userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate task assignees: %w", err)
	}
	return assignees, nil
}

// TaskTitles loads task titles for multiple IDs in a single query.
// Missing IDs are absent from the result.
func (d *DB) TaskTitles(ctx context.Context, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	query := fmt.Sprintf("SELECT id, title FROM tasks WHERE id IN (%s)", d.placeholders(1, len(ids)))
	rows, err := d.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("task titles batch: %w", err)
	}
	defer func() { _ = rows.Close() }()

	titles := make(map[string]string, len(ids))
	for rows.Next() {
		var id, title string
		if err := rows.Scan(&id, &title); err != nil {
			return nil, fmt.Errorf("scan task title: %w", err)
		}
		titles[id] = title
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate task titles: %w", err)
	}

	return titles, nil
}
