package metrics

import (
	"math"
	"sort"
	"time"

	"github.com/dkwarude-cell/smartheal-sub001/internal/models"
)

// Streak counts consecutive days with at least one completed session,
// walking backward from now. A same-day or next-day session extends the
// streak; a gap of two or more days ends the walk immediately.
func Streak(history []models.TherapySession, now time.Time) int {
	completed := make([]models.TherapySession, 0, len(history))
	for _, session := range history {
		if session.Status == models.SessionCompleted && session.CompletedAt != nil {
			completed = append(completed, session)
		}
	}
	if len(completed) == 0 {
		return 0
	}

	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].CompletedAt.After(*completed[j].CompletedAt)
	})

	streak := 0
	checkDate := now
	for _, session := range completed {
		dayDiff := int(math.Floor(checkDate.Sub(*session.CompletedAt).Hours() / 24))
		if dayDiff != 0 && dayDiff != 1 {
			break
		}
		streak++
		checkDate = *session.CompletedAt
	}
	return streak
}
