package dashboard

import (
	"context"

	"github.com/randalmurphal/workdeck/internal/db"
)

// SyncSprintCounters reconciles the denormalized task counters on the
// given sprints against the true counts.
//
// One grouped aggregate query covers the whole batch; storage writes
// happen only for sprints whose cached counters drifted. Total cost is
// O(1) queries + O(drifted sprints) writes regardless of batch size.
//
// The sync is best-effort: if the aggregate query fails the input is
// returned unmodified and the failure is logged as non-fatal.
// Concurrent syncs racing on the same sprint write the same correct
// values, so no locking is needed.
func (e *Engine) SyncSprintCounters(ctx context.Context, sprints []db.Sprint) []db.Sprint {
	if len(sprints) == 0 {
		return sprints
	}

	ids := make([]string, len(sprints))
	for i, s := range sprints {
		ids[i] = s.ID
	}

	counts, err := e.store.TaskCountsBySprint(ctx, ids)
	if err != nil {
		e.logger.Warn("sprint counter sync failed, keeping cached counts", "error", err)
		return sprints
	}

	synced := make([]db.Sprint, len(sprints))
	copy(synced, sprints)

	for i := range synced {
		c := counts[synced[i].ID] // absent sprint means zero tasks
		if synced[i].TaskCount == c.Count && synced[i].CompletedTaskCount == c.Completed {
			continue
		}
		if err := e.store.UpdateSprintCounters(ctx, synced[i].ID, c.Count, c.Completed); err != nil {
			e.logger.Warn("update sprint counters failed",
				"sprint_id", synced[i].ID,
				"error", err)
		}
		// The in-memory view carries the true counts even if the write
		// failed; the next read path will retry the correction.
		synced[i].TaskCount = c.Count
		synced[i].CompletedTaskCount = c.Completed
	}

	return synced
}
