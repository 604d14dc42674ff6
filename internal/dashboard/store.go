package dashboard

import (
	"context"
	"time"

	"github.com/randalmurphal/workdeck/internal/db"
)

// Store is the read/write surface the engine needs from the workspace
// store. *db.DB satisfies it; tests substitute counting fakes.
type Store interface {
	ListProjects(ctx context.Context, f db.ProjectFilter) ([]db.Project, error)
	ListTasks(ctx context.Context, f db.TaskFilter) ([]db.Task, error)
	ListSprints(ctx context.Context, f db.SprintFilter) ([]db.Sprint, error)
	ListUsers(ctx context.Context) ([]db.User, error)
	ListNotifications(ctx context.Context, userID string, limit int) ([]db.Notification, error)

	TaskCountsBySprint(ctx context.Context, sprintIDs []string) (map[string]db.SprintTaskCounts, error)
	SumAmountByProject(ctx context.Context, table db.FinanceTable) (map[string]float64, error)
	CostsBetween(ctx context.Context, from, to time.Time) ([]db.Cost, error)
	ExpensesBetween(ctx context.Context, from, to time.Time) ([]db.Expense, error)
	CommentCountsByAuthor(ctx context.Context) (map[string]int, error)

	ProjectNames(ctx context.Context, ids []string) (map[string]string, error)
	TaskTitles(ctx context.Context, ids []string) (map[string]string, error)

	UpdateSprintCounters(ctx context.Context, id string, taskCount, completedTaskCount int) error
}
