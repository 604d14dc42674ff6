package db

import (
	"context"
	"testing"
	"time"
)

func TestTaskSaveAndList(t *testing.T) {
	t.Parallel()
	d := NewTestDB(t)
	ctx := context.Background()

	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	task := &Task{
		Title:         "Implement importer",
		Description:   "tolerant JSON import",
		ProjectID:     "proj-1",
		SprintID:      "sprint-1",
		Status:        TaskInProgress,
		Priority:      PriorityHigh,
		DueDate:       &due,
		AssigneeIDs:   []string{"user-1", "user-2"},
		CreatedBy:     "user-1",
		EstimatedCost: 1200.50,
	}
	if err := d.SaveTask(ctx, task); err != nil {
		t.Fatalf("SaveTask failed: %v", err)
	}
	if task.ID == "" {
		t.Fatal("SaveTask did not assign an ID")
	}

	tasks, err := d.ListTasks(ctx, TaskFilter{})
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}

	got := tasks[0]
	if got.Title != task.Title {
		t.Errorf("Title = %q, want %q", got.Title, task.Title)
	}
	if got.Status != TaskInProgress {
		t.Errorf("Status = %s, want %s", got.Status, TaskInProgress)
	}
	if got.Priority != PriorityHigh {
		t.Errorf("Priority = %s, want %s", got.Priority, PriorityHigh)
	}
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Errorf("DueDate = %v, want %v", got.DueDate, due)
	}
	if len(got.AssigneeIDs) != 2 {
		t.Errorf("AssigneeIDs = %v, want 2 entries", got.AssigneeIDs)
	}
	if got.EstimatedCost != 1200.50 {
		t.Errorf("EstimatedCost = %v, want 1200.50", got.EstimatedCost)
	}
}

func TestTaskUpsertReplacesAssignees(t *testing.T) {
	t.Parallel()
	d := NewTestDB(t)
	ctx := context.Background()

	task := &Task{Title: "Rotate keys", AssigneeIDs: []string{"user-1"}}
	if err := d.SaveTask(ctx, task); err != nil {
		t.Fatalf("SaveTask failed: %v", err)
	}

	task.Status = TaskComplete
	task.AssigneeIDs = []string{"user-2"}
	if err := d.SaveTask(ctx, task); err != nil {
		t.Fatalf("SaveTask update failed: %v", err)
	}

	tasks, err := d.ListTasks(ctx, TaskFilter{})
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task after upsert, got %d", len(tasks))
	}
	if tasks[0].Status != TaskComplete {
		t.Errorf("Status = %s, want %s", tasks[0].Status, TaskComplete)
	}
	if len(tasks[0].AssigneeIDs) != 1 || tasks[0].AssigneeIDs[0] != "user-2" {
		t.Errorf("AssigneeIDs = %v, want [user-2]", tasks[0].AssigneeIDs)
	}
}

func TestTaskFilters(t *testing.T) {
	t.Parallel()
	d := NewTestDB(t)
	ctx := context.Background()

	fixtures := []*Task{
		{Title: "a", ProjectID: "p1", SprintID: "s1", Status: TaskTodo},
		{Title: "b", ProjectID: "p1", Status: TaskComplete},
		{Title: "c", ProjectID: "p2", Status: TaskTodo},
		{Title: "d", Status: TaskTodo}, // standalone
	}
	for _, task := range fixtures {
		if err := d.SaveTask(ctx, task); err != nil {
			t.Fatalf("save task %s: %v", task.Title, err)
		}
	}

	cases := []struct {
		name   string
		filter TaskFilter
		want   int
	}{
		{"all", TaskFilter{}, 4},
		{"by project", TaskFilter{ProjectID: "p1"}, 2},
		{"by sprint", TaskFilter{SprintID: "s1"}, 1},
		{"by status", TaskFilter{Status: TaskTodo}, 3},
		{"standalone", TaskFilter{StandaloneOnly: true}, 1},
		{"project and status", TaskFilter{ProjectID: "p1", Status: TaskComplete}, 1},
	}
	for _, tc := range cases {
		tasks, err := d.ListTasks(ctx, tc.filter)
		if err != nil {
			t.Fatalf("%s: ListTasks failed: %v", tc.name, err)
		}
		if len(tasks) != tc.want {
			t.Errorf("%s: got %d tasks, want %d", tc.name, len(tasks), tc.want)
		}
	}
}

func TestTaskDefaults(t *testing.T) {
	t.Parallel()
	d := NewTestDB(t)
	ctx := context.Background()

	task := &Task{Title: "bare"}
	if err := d.SaveTask(ctx, task); err != nil {
		t.Fatalf("SaveTask failed: %v", err)
	}

	tasks, err := d.ListTasks(ctx, TaskFilter{})
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if tasks[0].Status != TaskTodo {
		t.Errorf("default Status = %s, want %s", tasks[0].Status, TaskTodo)
	}
	if tasks[0].DueDate != nil {
		t.Errorf("DueDate = %v, want nil", tasks[0].DueDate)
	}
	if tasks[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not defaulted")
	}
}
