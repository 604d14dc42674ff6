package db

import (
	"context"
	"fmt"
	"time"
)

// Notification represents a raw notification, the source material for
// the activity feed.
type Notification struct {
	ID        string
	UserID    string
	ProjectID string // empty when not project-scoped
	TaskID    string // empty when not task-scoped
	Type      string
	Message   string
	Read      bool
	CreatedAt time.Time
}

// SaveNotification creates or updates a notification.
func (d *DB) SaveNotification(ctx context.Context, n *Notification) error {
	if n.ID == "" {
		n.ID = newID()
	}
	if n.Type == "" {
		n.Type = "system"
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	read := 0
	if n.Read {
		read = 1
	}

	ph := make([]any, 8)
	for i := range ph {
		ph[i] = d.Placeholder(i + 1)
	}
	query := fmt.Sprintf(`
		INSERT INTO notifications (id, user_id, project_id, task_id, type, message, read, created_at)
		VALUES (%s, %s, %s, %s, %s, %s, %s, %s)
		ON CONFLICT (id) DO UPDATE SET
			read = excluded.read,
			message = excluded.message
	`, ph...)

	_, err := d.Exec(ctx, query,
		n.ID, n.UserID, nullableString(n.ProjectID), nullableString(n.TaskID),
		n.Type, n.Message, read, formatTime(n.CreatedAt))
	if err != nil {
		return fmt.Errorf("save notification: %w", err)
	}
	return nil
}

// ListNotifications returns the most recent notifications for a user,
// newest first, limited to the given count.
func (d *DB) ListNotifications(ctx context.Context, userID string, limit int) ([]Notification, error) {
	if limit <= 0 {
		limit = 20
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, project_id, task_id, type, message, read, created_at
		FROM notifications
		WHERE user_id = %s
		ORDER BY created_at DESC
		LIMIT %s
	`, d.Placeholder(1), d.Placeholder(2))

	rows, err := d.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var notifications []Notification
	for rows.Next() {
		var n Notification
		var projectID, taskID *string
		var read int
		var createdAt string
		if err := rows.Scan(&n.ID, &n.UserID, &projectID, &taskID, &n.Type, &n.Message, &read, &createdAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		n.ProjectID = stringValue(projectID)
		n.TaskID = stringValue(taskID)
		n.Read = read != 0
		n.CreatedAt = parseTime(createdAt)
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notifications: %w", err)
	}

	return notifications, nil
}
