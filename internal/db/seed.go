package db

import (
	"context"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
)

// ImportStats reports how many records an import wrote per entity.
type ImportStats struct {
	Projects      int
	Users         int
	Sprints       int
	Tasks         int
	Budgets       int
	Costs         int
	Expenses      int
	Notifications int
	Comments      int
}

// Import loads a workspace export (JSON) into the store. Parsing is
// tolerant: amounts may be numbers or formatted strings, timestamps may
// be RFC3339 or date-only, and missing fields fall back to defaults.
func (d *DB) Import(ctx context.Context, data []byte) (*ImportStats, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("import: invalid JSON")
	}
	root := gjson.ParseBytes(data)
	stats := &ImportStats{}

	var err error
	root.Get("users").ForEach(func(_, r gjson.Result) bool {
		u := &User{
			ID:     r.Get("id").String(),
			Name:   r.Get("name").String(),
			Avatar: r.Get("avatar").String(),
			Status: r.Get("status").String(),
		}
		if err = d.SaveUser(ctx, u); err != nil {
			return false
		}
		stats.Users++
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("import users: %w", err)
	}

	root.Get("projects").ForEach(func(_, r gjson.Result) bool {
		p := &Project{
			ID:        r.Get("id").String(),
			Name:      r.Get("name").String(),
			Status:    ProjectStatus(r.Get("status").String()),
			Progress:  int(r.Get("progress").Int()),
			CreatedBy: r.Get("createdBy").String(),
			MemberIDs: stringSlice(r.Get("memberIds")),
			CreatedAt: importTime(r.Get("createdAt")),
		}
		if err = d.SaveProject(ctx, p); err != nil {
			return false
		}
		stats.Projects++
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("import projects: %w", err)
	}

	root.Get("sprints").ForEach(func(_, r gjson.Result) bool {
		s := &Sprint{
			ID:                 r.Get("id").String(),
			ProjectID:          r.Get("projectId").String(),
			Name:               r.Get("name").String(),
			Status:             SprintStatus(r.Get("status").String()),
			StartDate:          importTime(r.Get("startDate")),
			EndDate:            importTime(r.Get("endDate")),
			TaskCount:          int(r.Get("taskCount").Int()),
			CompletedTaskCount: int(r.Get("completedTaskCount").Int()),
		}
		if err = d.SaveSprint(ctx, s); err != nil {
			return false
		}
		stats.Sprints++
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("import sprints: %w", err)
	}

	root.Get("tasks").ForEach(func(_, r gjson.Result) bool {
		t := &Task{
			ID:            r.Get("id").String(),
			Title:         r.Get("title").String(),
			Description:   r.Get("description").String(),
			ProjectID:     r.Get("projectId").String(),
			SprintID:      r.Get("sprintId").String(),
			Status:        TaskStatus(r.Get("status").String()),
			Priority:      TaskPriority(r.Get("priority").String()),
			AssigneeIDs:   stringSlice(r.Get("assigneeIds")),
			CreatedBy:     r.Get("createdBy").String(),
			EstimatedCost: importAmount(r.Get("estimatedCost")),
			CreatedAt:     importTime(r.Get("createdAt")),
			UpdatedAt:     importTime(r.Get("updatedAt")),
		}
		if due := importTime(r.Get("dueDate")); !due.IsZero() {
			t.DueDate = &due
		}
		if err = d.SaveTask(ctx, t); err != nil {
			return false
		}
		stats.Tasks++
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("import tasks: %w", err)
	}

	root.Get("budgets").ForEach(func(_, r gjson.Result) bool {
		b := &Budget{
			ID:        r.Get("id").String(),
			ProjectID: r.Get("projectId").String(),
			Amount:    importAmount(r.Get("amount")),
			Currency:  r.Get("currency").String(),
			StartDate: importTime(r.Get("startDate")),
		}
		if err = d.SaveBudget(ctx, b); err != nil {
			return false
		}
		stats.Budgets++
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("import budgets: %w", err)
	}

	root.Get("costs").ForEach(func(_, r gjson.Result) bool {
		c := &Cost{
			ID:          r.Get("id").String(),
			ProjectID:   r.Get("projectId").String(),
			Amount:      importAmount(r.Get("amount")),
			Currency:    r.Get("currency").String(),
			Date:        importTime(r.Get("date")),
			Description: r.Get("description").String(),
		}
		if err = d.SaveCost(ctx, c); err != nil {
			return false
		}
		stats.Costs++
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("import costs: %w", err)
	}

	root.Get("expenses").ForEach(func(_, r gjson.Result) bool {
		e := &Expense{
			ID:          r.Get("id").String(),
			ProjectID:   r.Get("projectId").String(),
			Amount:      importAmount(r.Get("amount")),
			Currency:    r.Get("currency").String(),
			StartDate:   importTime(r.Get("startDate")),
			Description: r.Get("description").String(),
		}
		if err = d.SaveExpense(ctx, e); err != nil {
			return false
		}
		stats.Expenses++
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("import expenses: %w", err)
	}

	root.Get("notifications").ForEach(func(_, r gjson.Result) bool {
		n := &Notification{
			ID:        r.Get("id").String(),
			UserID:    r.Get("userId").String(),
			ProjectID: r.Get("projectId").String(),
			TaskID:    r.Get("taskId").String(),
			Type:      r.Get("type").String(),
			Message:   r.Get("message").String(),
			Read:      r.Get("read").Bool(),
			CreatedAt: importTime(r.Get("createdAt")),
		}
		if err = d.SaveNotification(ctx, n); err != nil {
			return false
		}
		stats.Notifications++
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("import notifications: %w", err)
	}

	root.Get("comments").ForEach(func(_, r gjson.Result) bool {
		c := &Comment{
			ID:        r.Get("id").String(),
			TaskID:    r.Get("taskId").String(),
			AuthorID:  r.Get("authorId").String(),
			Content:   r.Get("content").String(),
			CreatedAt: importTime(r.Get("createdAt")),
		}
		if err = d.SaveComment(ctx, c); err != nil {
			return false
		}
		stats.Comments++
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("import comments: %w", err)
	}

	return stats, nil
}

// importAmount coerces a JSON amount (number or formatted string) to a
// float. Malformed values are zero.
func importAmount(r gjson.Result) float64 {
	if r.Type == gjson.String {
		return ParseAmount(r.String())
	}
	return r.Float()
}

// importTime parses a JSON timestamp; zero time when absent or malformed.
func importTime(r gjson.Result) time.Time {
	if !r.Exists() {
		return time.Time{}
	}
	return parseTime(r.String())
}

func stringSlice(r gjson.Result) []string {
	var out []string
	r.ForEach(func(_, v gjson.Result) bool {
		out = append(out, v.String())
		return true
	})
	return out
}
