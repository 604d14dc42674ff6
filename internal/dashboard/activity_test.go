package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/workdeck/internal/db"
)

func TestActivityFeedEnrichment(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.projectNames["p1"] = "Apollo"
	store.taskTitles["t2"] = "Ship beta"
	store.notifications = []db.Notification{
		{ID: "n1", UserID: "u1", Type: "task_completed", ProjectID: "p1", TaskID: "t-gone"},
		{ID: "n2", UserID: "u1", Type: "mention", ProjectID: "p-gone", TaskID: "t2"},
		{ID: "n3", UserID: "u1", Type: "project_updated"},
		{ID: "n4", UserID: "other", Type: "comment"},
	}
	e := NewWithClock(store, discardLogger(), fixedNow(financeNow))

	feed, err := e.ActivityFeed(context.Background(), "u1", DefaultActivityLimit)
	require.NoError(t, err)
	require.Len(t, feed, 3)

	assert.Equal(t, ActivityTaskCompleted, feed[0].Kind)
	assert.Equal(t, "Apollo", feed[0].ProjectName)
	assert.Equal(t, unknownTask, feed[0].TaskTitle)

	assert.Equal(t, ActivityMention, feed[1].Kind)
	assert.Equal(t, unknownProject, feed[1].ProjectName)
	assert.Equal(t, "Ship beta", feed[1].TaskTitle)

	assert.Equal(t, ActivityProject, feed[2].Kind)
	assert.Empty(t, feed[2].ProjectName)
	assert.Empty(t, feed[2].TaskTitle)

	// One batched lookup per reference type, never one per notification.
	assert.Equal(t, 1, store.projectNamesCalls)
	assert.Equal(t, 1, store.taskTitlesCalls)
}

func TestActivityFeedEmpty(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	e := NewWithClock(store, discardLogger(), fixedNow(financeNow))

	feed, err := e.ActivityFeed(context.Background(), "u1", DefaultActivityLimit)
	require.NoError(t, err)
	assert.NotNil(t, feed)
	assert.Empty(t, feed)
	assert.Zero(t, store.projectNamesCalls, "no lookups without notifications")
}

func TestActivityKindMapping(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"task_completed":   ActivityTaskCompleted,
		"task_assigned":    ActivityTaskAssigned,
		"assignment":       ActivityTaskAssigned,
		"comment":          ActivityComment,
		"comment_added":    ActivityComment,
		"mention":          ActivityMention,
		"project_archived": ActivityProject,
		"project":          ActivityProject,
		"deploy_finished":  ActivitySystem,
		"":                 ActivitySystem,
	}
	for raw, want := range cases {
		assert.Equal(t, want, activityKind(raw), "type %q", raw)
	}
}

func TestContributionsScoring(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.users = []db.User{
		{ID: "u1", Name: "Ann"},
		{ID: "u2", Name: "Bob"},
	}
	store.tasks = []db.Task{
		{ID: "t1", Status: db.TaskComplete, AssigneeIDs: []string{"u1"}, CreatedBy: "u2"},
		{ID: "t2", Status: db.TaskComplete, AssigneeIDs: []string{"u1"}, CreatedBy: "u2"},
		{ID: "t3", Status: db.TaskInProgress, AssigneeIDs: []string{"u2"}, CreatedBy: "u1"},
	}
	store.commentCounts = map[string]int{"u1": 3}
	e := NewWithClock(store, discardLogger(), fixedNow(financeNow))

	contributions, err := e.Contributions(context.Background())
	require.NoError(t, err)
	require.Len(t, contributions, 2)

	// Ann: 2 completed (10) + 1 created (3) + 3 comments (3) = 16.
	ann := contributions[0]
	assert.Equal(t, "u1", ann.UserID)
	assert.Equal(t, 2, ann.TasksCompleted)
	assert.Equal(t, 1, ann.TasksCreated)
	assert.Equal(t, 3, ann.CommentsAdded)
	assert.Equal(t, 16, ann.TotalPoints)

	// Bob: 2 created (6); assigned to an incomplete task scores nothing.
	bob := contributions[1]
	assert.Equal(t, "u2", bob.UserID)
	assert.Equal(t, 0, bob.TasksCompleted)
	assert.Equal(t, 2, bob.TasksCreated)
	assert.Equal(t, 6, bob.TotalPoints)
}

func TestContributionsTiesSortByName(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.users = []db.User{
		{ID: "u2", Name: "Zoe"},
		{ID: "u1", Name: "Ann"},
	}
	e := NewWithClock(store, discardLogger(), fixedNow(financeNow))

	contributions, err := e.Contributions(context.Background())
	require.NoError(t, err)
	require.Len(t, contributions, 2)
	assert.Equal(t, "Ann", contributions[0].Name)
	assert.Equal(t, "Zoe", contributions[1].Name)
}
