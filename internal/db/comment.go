package db

import (
	"context"
	"fmt"
	"time"
)

// Comment represents a comment on a task.
type Comment struct {
	ID        string
	TaskID    string
	AuthorID  string
	Content   string
	CreatedAt time.Time
}

// SaveComment creates or updates a comment.
func (d *DB) SaveComment(ctx context.Context, c *Comment) error {
	if c.ID == "" {
		c.ID = newID()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	query := fmt.Sprintf(`
		INSERT INTO comments (id, task_id, author_id, content, created_at)
		VALUES (%s, %s, %s, %s, %s)
		ON CONFLICT (id) DO UPDATE SET content = excluded.content
	`, d.Placeholder(1), d.Placeholder(2), d.Placeholder(3), d.Placeholder(4), d.Placeholder(5))

	if _, err := d.Exec(ctx, query, c.ID, c.TaskID, c.AuthorID, c.Content, formatTime(c.CreatedAt)); err != nil {
		return fmt.Errorf("save comment: %w", err)
	}
	return nil
}

// CommentCountsByAuthor returns the comment count per author in one
// grouped query. Authors with no comments are absent.
func (d *DB) CommentCountsByAuthor(ctx context.Context) (map[string]int, error) {
	rows, err := d.Query(ctx, "SELECT author_id, COUNT(*) FROM comments GROUP BY author_id")
	if err != nil {
		return nil, fmt.Errorf("comment counts by author: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var authorID string
		var count int
		if err := rows.Scan(&authorID, &count); err != nil {
			return nil, fmt.Errorf("scan comment count: %w", err)
		}
		counts[authorID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comment counts: %w", err)
	}

	return counts, nil
}
