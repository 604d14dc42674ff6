package dashboard

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/randalmurphal/workdeck/internal/db"
)

// Placeholder labels for references that no longer resolve.
const (
	unknownProject = "Unknown Project"
	unknownTask    = "Unknown Task"
)

// Contribution point weights.
const (
	pointsPerCompletedTask = 5
	pointsPerCreatedTask   = 3
	pointsPerComment       = 1
)

// ActivityFeed turns a user's most recent notifications into an
// enriched feed. Referenced project and task names are resolved with
// one batched lookup each (never one per notification); references that
// no longer exist fall back to placeholder labels.
func (e *Engine) ActivityFeed(ctx context.Context, userID string, limit int) ([]ActivityEntry, error) {
	notifications, err := e.store.ListNotifications(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("load notifications: %w", err)
	}
	if len(notifications) == 0 {
		return []ActivityEntry{}, nil
	}

	projectIDs := distinct(notifications, func(n db.Notification) string { return n.ProjectID })
	taskIDs := distinct(notifications, func(n db.Notification) string { return n.TaskID })

	var projectNames, taskTitles map[string]string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		projectNames, err = e.store.ProjectNames(gctx, projectIDs)
		return err
	})
	g.Go(func() error {
		var err error
		taskTitles, err = e.store.TaskTitles(gctx, taskIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("resolve activity references: %w", err)
	}

	feed := make([]ActivityEntry, 0, len(notifications))
	for _, n := range notifications {
		entry := ActivityEntry{
			ID:        n.ID,
			Kind:      activityKind(n.Type),
			Message:   n.Message,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		}
		if n.ProjectID != "" {
			entry.ProjectName = projectNames[n.ProjectID]
			if entry.ProjectName == "" {
				entry.ProjectName = unknownProject
			}
		}
		if n.TaskID != "" {
			entry.TaskTitle = taskTitles[n.TaskID]
			if entry.TaskTitle == "" {
				entry.TaskTitle = unknownTask
			}
		}
		feed = append(feed, entry)
	}

	return feed, nil
}

// activityKind maps a raw notification type onto the feed's fixed
// vocabulary.
func activityKind(notificationType string) string {
	switch {
	case notificationType == "task_completed":
		return ActivityTaskCompleted
	case notificationType == "task_assigned", notificationType == "assignment":
		return ActivityTaskAssigned
	case notificationType == "comment", notificationType == "comment_added":
		return ActivityComment
	case notificationType == "mention":
		return ActivityMention
	case strings.HasPrefix(notificationType, "project"):
		return ActivityProject
	default:
		return ActivitySystem
	}
}

// Contributions scores every user's contribution to the workspace:
// 5 points per completed assigned task, 3 per created task, 1 per
// comment. Comment counts come from one pre-aggregated query, not a
// per-task scan. Sorted by total points descending.
func (e *Engine) Contributions(ctx context.Context) ([]Contribution, error) {
	var users []db.User
	var tasks []db.Task
	var commentCounts map[string]int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = e.store.ListUsers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		tasks, err = e.store.ListTasks(gctx, db.TaskFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		commentCounts, err = e.store.CommentCountsByAuthor(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load contribution inputs: %w", err)
	}

	completed := make(map[string]int)
	created := make(map[string]int)
	for _, t := range tasks {
		if t.CreatedBy != "" {
			created[t.CreatedBy]++
		}
		if t.Status != db.TaskComplete {
			continue
		}
		for _, assignee := range t.AssigneeIDs {
			completed[assignee]++
		}
	}

	contributions := make([]Contribution, 0, len(users))
	for _, u := range users {
		c := Contribution{
			UserID:         u.ID,
			Name:           u.Name,
			Avatar:         u.Avatar,
			TasksCompleted: completed[u.ID],
			TasksCreated:   created[u.ID],
			CommentsAdded:  commentCounts[u.ID],
		}
		c.TotalPoints = pointsPerCompletedTask*c.TasksCompleted +
			pointsPerCreatedTask*c.TasksCreated +
			pointsPerComment*c.CommentsAdded
		contributions = append(contributions, c)
	}
	sort.Slice(contributions, func(i, j int) bool {
		if contributions[i].TotalPoints != contributions[j].TotalPoints {
			return contributions[i].TotalPoints > contributions[j].TotalPoints
		}
		return contributions[i].Name < contributions[j].Name
	})

	return contributions, nil
}

// distinct collects the unique non-empty keys extracted from a batch of
// notifications, preserving first-seen order.
func distinct(notifications []db.Notification, key func(db.Notification) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, n := range notifications {
		k := key(n)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
