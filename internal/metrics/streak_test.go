package metrics

import (
	"testing"
	"time"

	"github.com/dkwarude-cell/smartheal-sub001/internal/models"
)

func completedSession(now time.Time, daysAgo int) models.TherapySession {
	completedAt := now.AddDate(0, 0, -daysAgo)
	return models.TherapySession{
		Status:      models.SessionCompleted,
		CompletedAt: &completedAt,
	}
}

func TestStreakBreaksAtGap(t *testing.T) {
	now := time.Date(2030, 6, 15, 20, 0, 0, 0, time.UTC)
	history := []models.TherapySession{
		completedSession(now, 0),
		completedSession(now, 1),
		completedSession(now, 3),
	}

	if got := Streak(history, now); got != 2 {
		t.Fatalf("expected streak 2 with a gap at day 3, got %d", got)
	}
}

func TestStreakEmptyAndNonCompletedHistory(t *testing.T) {
	now := time.Date(2030, 6, 15, 20, 0, 0, 0, time.UTC)
	if got := Streak(nil, now); got != 0 {
		t.Fatalf("expected 0 for empty history, got %d", got)
	}

	history := []models.TherapySession{
		{Status: models.SessionSkipped},
		{Status: models.SessionScheduled, ScheduledAt: now},
	}
	if got := Streak(history, now); got != 0 {
		t.Fatalf("expected 0 with no completed sessions, got %d", got)
	}
}

func TestStreakHandlesUnsortedHistory(t *testing.T) {
	now := time.Date(2030, 6, 15, 20, 0, 0, 0, time.UTC)
	history := []models.TherapySession{
		completedSession(now, 2),
		completedSession(now, 0),
		completedSession(now, 1),
	}

	if got := Streak(history, now); got != 3 {
		t.Fatalf("expected streak 3, got %d", got)
	}
}

func TestStreakIsMonotonicUnderNewestRemoval(t *testing.T) {
	now := time.Date(2030, 6, 15, 20, 0, 0, 0, time.UTC)
	history := []models.TherapySession{
		completedSession(now, 0),
		completedSession(now, 1),
		completedSession(now, 2),
		completedSession(now, 4),
	}

	full := Streak(history, now)
	trimmed := Streak(history[1:], now)
	if trimmed > full {
		t.Fatalf("streak grew after removing the newest session: %d > %d", trimmed, full)
	}
}
