package db

import (
	"context"
	"testing"
	"time"
)

func TestSprintSaveAndList(t *testing.T) {
	t.Parallel()
	d := NewTestDB(t)
	ctx := context.Background()

	s := &Sprint{
		ProjectID: "proj-1",
		Name:      "Sprint 1",
		Status:    SprintActive,
		StartDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC),
		TaskCount: 4,
	}
	if err := d.SaveSprint(ctx, s); err != nil {
		t.Fatalf("SaveSprint failed: %v", err)
	}

	sprints, err := d.ListSprints(ctx, SprintFilter{})
	if err != nil {
		t.Fatalf("ListSprints failed: %v", err)
	}
	if len(sprints) != 1 {
		t.Fatalf("expected 1 sprint, got %d", len(sprints))
	}

	got := sprints[0]
	if got.Name != "Sprint 1" {
		t.Errorf("Name = %q, want Sprint 1", got.Name)
	}
	if got.Status != SprintActive {
		t.Errorf("Status = %s, want %s", got.Status, SprintActive)
	}
	if got.TaskCount != 4 {
		t.Errorf("TaskCount = %d, want 4", got.TaskCount)
	}
	if !got.StartDate.Equal(s.StartDate) {
		t.Errorf("StartDate = %v, want %v", got.StartDate, s.StartDate)
	}
}

func TestSprintFilters(t *testing.T) {
	t.Parallel()
	d := NewTestDB(t)
	ctx := context.Background()

	for _, s := range []*Sprint{
		{ProjectID: "p1", Name: "a", Status: SprintActive},
		{ProjectID: "p1", Name: "b", Status: SprintCompleted},
		{ProjectID: "p2", Name: "c", Status: SprintActive},
	} {
		if err := d.SaveSprint(ctx, s); err != nil {
			t.Fatalf("save sprint %s: %v", s.Name, err)
		}
	}

	byProject, err := d.ListSprints(ctx, SprintFilter{ProjectID: "p1"})
	if err != nil {
		t.Fatalf("ListSprints failed: %v", err)
	}
	if len(byProject) != 2 {
		t.Errorf("p1 sprints: got %d, want 2", len(byProject))
	}

	active, err := d.ListSprints(ctx, SprintFilter{Status: SprintActive})
	if err != nil {
		t.Fatalf("ListSprints failed: %v", err)
	}
	if len(active) != 2 {
		t.Errorf("active sprints: got %d, want 2", len(active))
	}
}

func TestUpdateSprintCounters(t *testing.T) {
	t.Parallel()
	d := NewTestDB(t)
	ctx := context.Background()

	s := &Sprint{ProjectID: "p1", Name: "Sprint 1"}
	if err := d.SaveSprint(ctx, s); err != nil {
		t.Fatalf("SaveSprint failed: %v", err)
	}

	if err := d.UpdateSprintCounters(ctx, s.ID, 7, 3); err != nil {
		t.Fatalf("UpdateSprintCounters failed: %v", err)
	}

	sprints, err := d.ListSprints(ctx, SprintFilter{})
	if err != nil {
		t.Fatalf("ListSprints failed: %v", err)
	}
	if sprints[0].TaskCount != 7 {
		t.Errorf("TaskCount = %d, want 7", sprints[0].TaskCount)
	}
	if sprints[0].CompletedTaskCount != 3 {
		t.Errorf("CompletedTaskCount = %d, want 3", sprints[0].CompletedTaskCount)
	}
}
