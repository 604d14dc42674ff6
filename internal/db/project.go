package db

import (
	"context"
	"fmt"
	"time"
)

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectOnHold   ProjectStatus = "on_hold"
	ProjectArchived ProjectStatus = "archived"
)

// Project represents a workspace project.
type Project struct {
	ID        string
	Name      string
	Status    ProjectStatus
	Progress  int // 0-100
	CreatedBy string
	MemberIDs []string // derived from project_members
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProjectFilter narrows ListProjects results. Zero value matches everything.
type ProjectFilter struct {
	Status ProjectStatus
}

// SaveProject creates or updates a project and replaces its membership rows.
func (d *DB) SaveProject(ctx context.Context, p *Project) error {
	if p.ID == "" {
		p.ID = newID()
	}
	if p.Status == "" {
		p.Status = ProjectActive
	}
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	_, err := d.Exec(ctx, fmt.Sprintf(`
		INSERT INTO projects (id, name, status, progress, created_by, created_at, updated_at)
		VALUES (%s, %s, %s, %s, %s, %s, %s)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			status = excluded.status,
			progress = excluded.progress,
			created_by = excluded.created_by,
			updated_at = excluded.updated_at
	`, d.Placeholder(1), d.Placeholder(2), d.Placeholder(3), d.Placeholder(4), d.Placeholder(5), d.Placeholder(6), d.Placeholder(7)),
		p.ID, p.Name, string(p.Status), p.Progress, p.CreatedBy, formatTime(p.CreatedAt), formatTime(p.UpdatedAt))
	if err != nil {
		return fmt.Errorf("save project: %w", err)
	}

	if _, err := d.Exec(ctx, fmt.Sprintf("DELETE FROM project_members WHERE project_id = %s", d.Placeholder(1)), p.ID); err != nil {
		return fmt.Errorf("clear project members: %w", err)
	}
	for _, userID := range p.MemberIDs {
		_, err := d.Exec(ctx, fmt.Sprintf(
			"INSERT INTO project_members (project_id, user_id) VALUES (%s, %s)",
			d.Placeholder(1), d.Placeholder(2)), p.ID, userID)
		if err != nil {
			return fmt.Errorf("save project member: %w", err)
		}
	}

	return nil
}

// ListProjects returns projects matching the filter, with member IDs
// attached from a single membership scan.
func (d *DB) ListProjects(ctx context.Context, f ProjectFilter) ([]Project, error) {
	query := "SELECT id, name, status, progress, created_by, created_at, updated_at FROM projects"
	var args []any
	if f.Status != "" {
		query += fmt.Sprintf(" WHERE status = %s", d.Placeholder(1))
		args = append(args, string(f.Status))
	}
	query += " ORDER BY created_at"

	rows, err := d.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var projects []Project
	for rows.Next() {
		var p Project
		var status, createdAt, updatedAt string
		if err := rows.Scan(&p.ID, &p.Name, &status, &p.Progress, &p.CreatedBy, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		p.Status = ProjectStatus(status)
		p.CreatedAt = parseTime(createdAt)
		p.UpdatedAt = parseTime(updatedAt)
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	members, err := d.projectMembers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		projects[i].MemberIDs = members[projects[i].ID]
	}

	return projects, nil
}

// projectMembers loads all membership rows grouped by project in one query.
func (d *DB) projectMembers(ctx context.Context) (map[string][]string, error) {
	rows, err := d.Query(ctx, "SELECT project_id, user_id FROM project_members ORDER BY project_id, user_id")
	if err != nil {
		return nil, fmt.Errorf("list project members: %w", err)
	}
	defer func() { _ = rows.Close() }()

	members := make(map[string][]string)
	for rows.Next() {
		var projectID, userID string
		if err := rows.Scan(&projectID, &userID); err != nil {
			return nil, fmt.Errorf("scan project member: %w", err)
		}
		members[projectID] = append(members[projectID], userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate project members: %w", err)
	}
	return members, nil
}

// ProjectNames loads project names for multiple IDs in a single query.
// Missing IDs are absent from the result.
func (d *DB) ProjectNames(ctx context.Context, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	query := fmt.Sprintf("SELECT id, name FROM projects WHERE id IN (%s)", d.placeholders(1, len(ids)))
	rows, err := d.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("project names batch: %w", err)
	}
	defer func() { _ = rows.Close() }()

	names := make(map[string]string, len(ids))
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan project name: %w", err)
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate project names: %w", err)
	}

	return names, nil
}
