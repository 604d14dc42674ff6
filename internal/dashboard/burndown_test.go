package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/workdeck/internal/db"
)

var burndownNow = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

func TestBurndownWindow(t *testing.T) {
	t.Parallel()

	points := Burndown(nil, burndownNow)
	require.Len(t, points, burndownDays)

	assert.Equal(t, "2026-08-02", points[0].Date)
	assert.Equal(t, "2026-08-15", points[len(points)-1].Date)
}

func TestBurndownIdealLine(t *testing.T) {
	t.Parallel()

	tasks := []db.Task{
		{ID: "t1", Status: db.TaskTodo, CreatedAt: burndownNow},
		{ID: "t2", Status: db.TaskTodo, CreatedAt: burndownNow},
		{ID: "t3", Status: db.TaskComplete, CreatedAt: burndownNow},
	}

	points := Burndown(tasks, burndownNow)
	require.Len(t, points, burndownDays)

	assert.Equal(t, 3.0, points[0].Ideal, "ideal starts at the total")
	assert.Equal(t, 0.0, points[len(points)-1].Ideal, "ideal ends at zero")

	// Linear: each step drops by total/(days-1).
	step := 3.0 / float64(burndownDays-1)
	for i := 1; i < len(points); i++ {
		assert.InDelta(t, points[i-1].Ideal-step, points[i].Ideal, 1e-9)
	}
}

func TestBurndownRemainingCounts(t *testing.T) {
	t.Parallel()

	tasks := []db.Task{
		{ID: "old", Status: db.TaskInProgress, CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "mid", Status: db.TaskTodo, CreatedAt: time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)},
		{ID: "done", Status: db.TaskComplete, CreatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
	}

	points := Burndown(tasks, burndownNow)
	byDate := map[string]BurndownPoint{}
	for _, p := range points {
		byDate[p.Date] = p
	}

	// Before "mid" exists only "old" is open; complete tasks never count.
	assert.Equal(t, 1, byDate["2026-08-02"].Remaining)
	assert.Equal(t, 1, byDate["2026-08-09"].Remaining)
	assert.Equal(t, 2, byDate["2026-08-10"].Remaining)
	assert.Equal(t, 2, byDate["2026-08-15"].Remaining)
}
