package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/workdeck/internal/db"
)

func sprintTasks(sprintID string, total, complete int) []db.Task {
	tasks := make([]db.Task, 0, total)
	for i := 0; i < total; i++ {
		status := db.TaskTodo
		if i < complete {
			status = db.TaskComplete
		}
		tasks = append(tasks, db.Task{SprintID: sprintID, Status: status})
	}
	return tasks
}

func TestSyncSprintCounters(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.tasks = append(sprintTasks("a", 5, 2), sprintTasks("b", 3, 3)...)
	sprints := []db.Sprint{
		{ID: "a", Name: "Sprint A"}, // drifted, both counters stale at zero
		{ID: "b", Name: "Sprint B", TaskCount: 3, CompletedTaskCount: 3}, // already correct
	}
	e := NewWithClock(store, discardLogger(), fixedNow(financeNow))

	synced := e.SyncSprintCounters(context.Background(), sprints)
	require.Len(t, synced, 2)

	assert.Equal(t, 5, synced[0].TaskCount)
	assert.Equal(t, 2, synced[0].CompletedTaskCount)
	assert.Equal(t, 3, synced[1].TaskCount)
	assert.Equal(t, 3, synced[1].CompletedTaskCount)

	// One aggregate query for the whole batch, and a write only for the
	// sprint that drifted.
	assert.Equal(t, 1, store.taskCountsCalls)
	require.Len(t, store.counterWrites, 1)
	assert.Equal(t, db.SprintTaskCounts{Count: 5, Completed: 2}, store.counterWrites["a"])

	// The caller's slice is left alone.
	assert.Zero(t, sprints[0].TaskCount)
}

func TestSyncSprintCountersEmptySprint(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	sprints := []db.Sprint{{ID: "a", TaskCount: 4, CompletedTaskCount: 1}}
	e := NewWithClock(store, discardLogger(), fixedNow(financeNow))

	// No tasks reference the sprint: stale counters reset to zero.
	synced := e.SyncSprintCounters(context.Background(), sprints)
	assert.Zero(t, synced[0].TaskCount)
	assert.Zero(t, synced[0].CompletedTaskCount)
	assert.Equal(t, db.SprintTaskCounts{}, store.counterWrites["a"])
}

func TestSyncSprintCountersAggregateFailure(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.taskCountsErr = assert.AnError
	sprints := []db.Sprint{{ID: "a", TaskCount: 2, CompletedTaskCount: 1}}
	e := NewWithClock(store, discardLogger(), fixedNow(financeNow))

	synced := e.SyncSprintCounters(context.Background(), sprints)
	assert.Equal(t, sprints, synced, "cached counts survive a failed sync")
	assert.Empty(t, store.counterWrites)
}

func TestSyncSprintCountersNoSprints(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	e := NewWithClock(store, discardLogger(), fixedNow(financeNow))

	assert.Empty(t, e.SyncSprintCounters(context.Background(), nil))
	assert.Zero(t, store.taskCountsCalls, "no aggregate query for an empty batch")
}
