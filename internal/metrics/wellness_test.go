package metrics

import (
	"testing"
	"time"

	"github.com/dkwarude-cell/smartheal-sub001/internal/models"
)

func TestPainImprovementAgainstWeekOldEntry(t *testing.T) {
	now := time.Date(2030, 6, 15, 12, 0, 0, 0, time.UTC)
	history := []models.PainEntry{
		{RecordedAt: now.AddDate(0, 0, -2), Level: 5},
		{RecordedAt: now.AddDate(0, 0, -7), Level: 8},
	}

	// (8 - 4) / 8 = 50%.
	if got := PainImprovement(history, 4, now); got != 50 {
		t.Fatalf("expected 50%% improvement, got %d", got)
	}
}

func TestPainImprovementWithoutExactWeekOldSample(t *testing.T) {
	now := time.Date(2030, 6, 15, 12, 0, 0, 0, time.UTC)
	history := []models.PainEntry{
		{RecordedAt: now.AddDate(0, 0, -6), Level: 9},
		{RecordedAt: now.AddDate(0, 0, -9), Level: 9},
	}

	// No entry aged exactly seven days: falls back to the current level.
	if got := PainImprovement(history, 4, now); got != 0 {
		t.Fatalf("expected 0%% without a day-7 sample, got %d", got)
	}
}

func TestPainImprovementZeroBaseline(t *testing.T) {
	now := time.Date(2030, 6, 15, 12, 0, 0, 0, time.UTC)
	history := []models.PainEntry{
		{RecordedAt: now.AddDate(0, 0, -7), Level: 0},
	}

	if got := PainImprovement(history, 0, now); got != 0 {
		t.Fatalf("expected 0%% for a pain-free week, got %d", got)
	}
}

func TestPainReliefPercentage(t *testing.T) {
	cases := []struct {
		level int
		want  int
	}{
		{0, 100},
		{4, 60},
		{10, 0},
	}
	for _, tc := range cases {
		if got := PainReliefPercentage(tc.level); got != tc.want {
			t.Fatalf("level %d: expected %d, got %d", tc.level, tc.want, got)
		}
	}
}

func TestDailyProgress(t *testing.T) {
	tasks := []models.DailyTask{
		{ID: "a", Points: 10},
		{ID: "b", Points: 20},
		{ID: "c", Points: 5},
	}

	got := DailyProgress([]string{"a", "b"}, tasks)
	want := models.DailyProgress{
		TasksCompleted: 2,
		TotalTasks:     3,
		Percentage:     67,
		Points:         30,
		MaxPoints:      35,
		IsPerfectDay:   false,
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestDailyProgressPerfectDay(t *testing.T) {
	tasks := []models.DailyTask{{ID: "a", Points: 10}, {ID: "b", Points: 15}}

	got := DailyProgress([]string{"a", "b"}, tasks)
	if !got.IsPerfectDay || got.Percentage != 100 || got.Points != 25 {
		t.Fatalf("expected a perfect day, got %+v", got)
	}
}

func TestDailyProgressUnknownTaskIDsContributeNothing(t *testing.T) {
	tasks := []models.DailyTask{{ID: "a", Points: 10}}

	got := DailyProgress([]string{"a", "ghost"}, tasks)
	if got.Points != 10 {
		t.Fatalf("expected 10 points, got %d", got.Points)
	}
	if got.TasksCompleted != 2 {
		t.Fatalf("expected completed count to mirror the id list, got %d", got.TasksCompleted)
	}
}

func TestDailyProgressNoTasksConfigured(t *testing.T) {
	got := DailyProgress(nil, nil)
	if got.Percentage != 0 || got.IsPerfectDay {
		t.Fatalf("expected 0%% and no perfect day with zero tasks, got %+v", got)
	}
}
