package dashboard

import (
	"context"
	"time"

	"github.com/randalmurphal/workdeck/internal/db"
)

// fakeStore implements Store in memory and counts aggregate calls so
// tests can assert query budgets (one aggregate per metric, no N+1).
type fakeStore struct {
	projects      []db.Project
	tasks         []db.Task
	sprints       []db.Sprint
	users         []db.User
	notifications []db.Notification
	sums          map[db.FinanceTable]map[string]float64
	costs         []db.Cost
	expenses      []db.Expense
	commentCounts map[string]int
	projectNames  map[string]string
	taskTitles    map[string]string

	projectsErr   error
	tasksErr      error
	taskCountsErr error
	sumErr        error

	taskCountsCalls   int
	projectNamesCalls int
	taskTitlesCalls   int
	counterWrites     map[string]db.SprintTaskCounts
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sums:          map[db.FinanceTable]map[string]float64{},
		commentCounts: map[string]int{},
		projectNames:  map[string]string{},
		taskTitles:    map[string]string{},
		counterWrites: map[string]db.SprintTaskCounts{},
	}
}

func (f *fakeStore) ListProjects(ctx context.Context, _ db.ProjectFilter) ([]db.Project, error) {
	return f.projects, f.projectsErr
}

func (f *fakeStore) ListTasks(ctx context.Context, filter db.TaskFilter) ([]db.Task, error) {
	if f.tasksErr != nil {
		return nil, f.tasksErr
	}
	if filter.ProjectID == "" && filter.SprintID == "" && filter.Status == "" && !filter.StandaloneOnly {
		return f.tasks, nil
	}
	var out []db.Task
	for _, t := range f.tasks {
		if filter.ProjectID != "" && t.ProjectID != filter.ProjectID {
			continue
		}
		if filter.SprintID != "" && t.SprintID != filter.SprintID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.StandaloneOnly && t.ProjectID != "" {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeStore) ListSprints(ctx context.Context, _ db.SprintFilter) ([]db.Sprint, error) {
	return f.sprints, nil
}

func (f *fakeStore) ListUsers(ctx context.Context) ([]db.User, error) {
	return f.users, nil
}

func (f *fakeStore) ListNotifications(ctx context.Context, userID string, limit int) ([]db.Notification, error) {
	var out []db.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// TaskCountsBySprint groups the fake's task set, mirroring the SQL
// aggregate's semantics.
func (f *fakeStore) TaskCountsBySprint(ctx context.Context, sprintIDs []string) (map[string]db.SprintTaskCounts, error) {
	f.taskCountsCalls++
	if f.taskCountsErr != nil {
		return nil, f.taskCountsErr
	}
	wanted := make(map[string]bool, len(sprintIDs))
	for _, id := range sprintIDs {
		wanted[id] = true
	}
	counts := map[string]db.SprintTaskCounts{}
	for _, t := range f.tasks {
		if t.SprintID == "" || !wanted[t.SprintID] {
			continue
		}
		c := counts[t.SprintID]
		c.Count++
		if t.Status == db.TaskComplete {
			c.Completed++
		}
		counts[t.SprintID] = c
	}
	return counts, nil
}

func (f *fakeStore) SumAmountByProject(ctx context.Context, table db.FinanceTable) (map[string]float64, error) {
	if f.sumErr != nil {
		return nil, f.sumErr
	}
	return f.sums[table], nil
}

func (f *fakeStore) CostsBetween(ctx context.Context, from, to time.Time) ([]db.Cost, error) {
	var out []db.Cost
	for _, c := range f.costs {
		if !c.Date.Before(from) && c.Date.Before(to) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStore) ExpensesBetween(ctx context.Context, from, to time.Time) ([]db.Expense, error) {
	var out []db.Expense
	for _, e := range f.expenses {
		if !e.StartDate.Before(from) && e.StartDate.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) CommentCountsByAuthor(ctx context.Context) (map[string]int, error) {
	return f.commentCounts, nil
}

func (f *fakeStore) ProjectNames(ctx context.Context, ids []string) (map[string]string, error) {
	f.projectNamesCalls++
	out := map[string]string{}
	for _, id := range ids {
		if name, ok := f.projectNames[id]; ok {
			out[id] = name
		}
	}
	return out, nil
}

func (f *fakeStore) TaskTitles(ctx context.Context, ids []string) (map[string]string, error) {
	f.taskTitlesCalls++
	out := map[string]string{}
	for _, id := range ids {
		if title, ok := f.taskTitles[id]; ok {
			out[id] = title
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateSprintCounters(ctx context.Context, id string, taskCount, completedTaskCount int) error {
	f.counterWrites[id] = db.SprintTaskCounts{Count: taskCount, Completed: completedTaskCount}
	return nil
}

// fixedNow gives tests a deterministic clock.
func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
