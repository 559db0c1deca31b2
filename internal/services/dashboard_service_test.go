package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dkwarude-cell/smartheal-sub001/internal/models"
)

type stubAthleteReader struct {
	profile *models.AthleteProfile
}

func (s *stubAthleteReader) GetByUserID(_ context.Context, _ int64) (*models.AthleteProfile, error) {
	if s.profile == nil {
		return nil, pgx.ErrNoRows
	}
	return s.profile, nil
}

type stubWorkoutReader struct {
	workouts []models.Workout
}

func (s *stubWorkoutReader) ListSince(_ context.Context, _ int64, since time.Time) ([]models.Workout, error) {
	out := make([]models.Workout, 0, len(s.workouts))
	for _, w := range s.workouts {
		if !w.WorkoutDate.Before(since) {
			out = append(out, w)
		}
	}
	return out, nil
}

type stubSessionHistory struct {
	history []models.TherapySession
	next    *models.TherapySession
}

func (s *stubSessionHistory) ListCompletedByUser(_ context.Context, _ int64, limit int) ([]models.TherapySession, error) {
	if len(s.history) > limit {
		return s.history[:limit], nil
	}
	return s.history, nil
}

func (s *stubSessionHistory) NextScheduled(_ context.Context, _ int64, _ time.Time) (*models.TherapySession, error) {
	if s.next == nil {
		return nil, pgx.ErrNoRows
	}
	return s.next, nil
}

func TestGetAthleteDashboardComputesTrends(t *testing.T) {
	now := time.Now().UTC()
	profile := &models.AthleteProfile{
		UserID:        4,
		Compliance:    85,
		LongestStreak: 12,
		Soreness:      3,
		CurrentWeek:   2,
		TotalWeeks:    8,
	}
	workouts := []models.Workout{
		{UserID: 4, WorkoutDate: now.Add(-24 * time.Hour), Type: models.WorkoutRunning, DurationMin: 60, DistanceKM: 10.0, Intensity: models.IntensityHigh},
		{UserID: 4, WorkoutDate: now.Add(-8 * 24 * time.Hour), Type: models.WorkoutRunning, DurationMin: 50, DistanceKM: 5.0, Intensity: models.IntensityModerate},
	}

	service := NewDashboardService(
		&stubAthleteReader{profile: profile},
		&stubWorkoutReader{workouts: workouts},
		&stubSessionHistory{next: &models.TherapySession{
			ID:          21,
			UserID:      4,
			Status:      models.SessionScheduled,
			ScheduledAt: now.Add(2*time.Hour + 30*time.Minute),
		}},
	)

	dashboard, err := service.GetAthleteDashboard(context.Background(), 4)
	if err != nil {
		t.Fatalf("GetAthleteDashboard: %v", err)
	}

	if dashboard.WeeklyDistance != 10.0 {
		t.Fatalf("expected weekly distance 10.0, got %v", dashboard.WeeklyDistance)
	}
	// 60min at high intensity: 60/10 * 2.
	if dashboard.TrainingLoad != 12.0 {
		t.Fatalf("expected training load 12.0, got %v", dashboard.TrainingLoad)
	}
	if dashboard.DistanceTrend.Direction != models.TrendUp || dashboard.DistanceTrend.Value != "+100%" {
		t.Fatalf("unexpected distance trend: %+v", dashboard.DistanceTrend)
	}
	// Previous week load 50/10 * 1.5 = 7.5, so 12.0 is up 60%.
	if dashboard.LoadTrend.Value != "+60%" {
		t.Fatalf("unexpected load trend: %+v", dashboard.LoadTrend)
	}
	// No history, no sleep, no HRV; soreness 3 pulls every sub-score to 70.
	if dashboard.Readiness != 70 {
		t.Fatalf("expected readiness 70, got %d", dashboard.Readiness)
	}
	if dashboard.Compliance != 85 || dashboard.LongestStreak != 12 {
		t.Fatalf("profile fields not carried over: %+v", dashboard)
	}
	if dashboard.CurrentWeek != 2 || dashboard.TotalWeeks != 8 {
		t.Fatalf("program position not carried over: %+v", dashboard)
	}
	if dashboard.NextSession == nil || dashboard.NextSession.ID != 21 {
		t.Fatalf("expected next session 21, got %+v", dashboard.NextSession)
	}
	if !strings.HasPrefix(dashboard.NextSessionIn, "in 2h") {
		t.Fatalf("unexpected next session countdown: %q", dashboard.NextSessionIn)
	}
}

func TestGetAthleteDashboardStreakFromHistory(t *testing.T) {
	now := time.Now().UTC()
	completed := func(daysAgo int, effectiveness int) models.TherapySession {
		at := now.AddDate(0, 0, -daysAgo)
		return models.TherapySession{
			UserID:        4,
			Status:        models.SessionCompleted,
			ScheduledAt:   at,
			CompletedAt:   &at,
			Effectiveness: &effectiveness,
		}
	}

	service := NewDashboardService(
		&stubAthleteReader{profile: &models.AthleteProfile{UserID: 4}},
		&stubWorkoutReader{},
		&stubSessionHistory{history: []models.TherapySession{
			completed(0, 80),
			completed(1, 90),
			completed(4, 70),
		}},
	)

	dashboard, err := service.GetAthleteDashboard(context.Background(), 4)
	if err != nil {
		t.Fatalf("GetAthleteDashboard: %v", err)
	}
	if dashboard.Streak != 2 {
		t.Fatalf("expected streak 2 across the gap, got %d", dashboard.Streak)
	}
	if dashboard.NextSession != nil || dashboard.NextSessionIn != "" {
		t.Fatalf("expected no upcoming session, got %+v", dashboard.NextSession)
	}
}

func TestGetAthleteDashboardQuietWeek(t *testing.T) {
	service := NewDashboardService(
		&stubAthleteReader{profile: &models.AthleteProfile{UserID: 4}},
		&stubWorkoutReader{},
		&stubSessionHistory{},
	)

	dashboard, err := service.GetAthleteDashboard(context.Background(), 4)
	if err != nil {
		t.Fatalf("GetAthleteDashboard: %v", err)
	}
	if dashboard.WeeklyDistance != 0 || dashboard.TrainingLoad != 0 {
		t.Fatalf("expected zero activity, got %+v", dashboard)
	}
	if dashboard.DistanceTrend.Direction != models.TrendStable || dashboard.DistanceTrend.Value != "+0%" {
		t.Fatalf("expected stable trend on a quiet week, got %+v", dashboard.DistanceTrend)
	}
}
