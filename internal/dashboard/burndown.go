package dashboard

import (
	"time"

	"github.com/randalmurphal/workdeck/internal/db"
)

// burndownDays is the fixed trailing window of the burn-down chart.
const burndownDays = 14

// Burndown computes the trailing burn-down series from a task
// snapshot. Pure function of the snapshot and "now".
//
// For each day, remaining counts tasks that are not complete and were
// created on or before that day. The ideal line decays linearly from
// the total task count to zero across the window.
func Burndown(tasks []db.Task, now time.Time) []BurndownPoint {
	total := len(tasks)
	today := dayStart(now)

	points := make([]BurndownPoint, 0, burndownDays)
	for i := burndownDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		dayEnd := day.AddDate(0, 0, 1)

		remaining := 0
		for _, t := range tasks {
			if t.Status == db.TaskComplete {
				continue
			}
			if t.CreatedAt.UTC().Before(dayEnd) {
				remaining++
			}
		}

		step := burndownDays - 1 - i
		points = append(points, BurndownPoint{
			Date:      day.Format("2006-01-02"),
			Remaining: remaining,
			Ideal:     float64(total) * float64(burndownDays-1-step) / float64(burndownDays-1),
		})
	}

	return points
}

// dayStart returns midnight UTC on t's day.
func dayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
