package db

import (
	"context"
	"fmt"
)

// User represents a workspace member, used for display enrichment and
// contribution scoring.
type User struct {
	ID     string
	Name   string
	Avatar string
	Status string
}

// SaveUser creates or updates a user.
func (d *DB) SaveUser(ctx context.Context, u *User) error {
	if u.ID == "" {
		u.ID = newID()
	}
	if u.Status == "" {
		u.Status = "active"
	}

	query := fmt.Sprintf(`
		INSERT INTO users (id, name, avatar, status)
		VALUES (%s, %s, %s, %s)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			avatar = excluded.avatar,
			status = excluded.status
	`, d.Placeholder(1), d.Placeholder(2), d.Placeholder(3), d.Placeholder(4))

	if _, err := d.Exec(ctx, query, u.ID, u.Name, u.Avatar, u.Status); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// ListUsers returns all users ordered by name.
func (d *DB) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := d.Query(ctx, "SELECT id, name, avatar, status FROM users ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Avatar, &u.Status); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}
