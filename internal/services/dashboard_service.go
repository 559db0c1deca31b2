package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dkwarude-cell/smartheal-sub001/internal/metrics"
	"github.com/dkwarude-cell/smartheal-sub001/internal/models"
)

type athleteProfileReader interface {
	GetByUserID(ctx context.Context, userID int64) (*models.AthleteProfile, error)
}

type workoutWindowReader interface {
	ListSince(ctx context.Context, userID int64, since time.Time) ([]models.Workout, error)
}

type sessionHistoryReader interface {
	ListCompletedByUser(ctx context.Context, userID int64, limit int) ([]models.TherapySession, error)
	NextScheduled(ctx context.Context, userID int64, after time.Time) (*models.TherapySession, error)
}

// AthleteDashboard is the summary payload behind the athlete home screen.
// Every number on it is recomputed from the current snapshot on each call.
type AthleteDashboard struct {
	Readiness      int                    `json:"readiness"`
	WeeklyDistance float64                `json:"weekly_distance"`
	TrainingLoad   float64                `json:"training_load"`
	Streak         int                    `json:"streak"`
	LongestStreak  int                    `json:"longest_streak"`
	Compliance     int                    `json:"compliance"`
	DistanceTrend  models.Trend           `json:"distance_trend"`
	LoadTrend      models.Trend           `json:"load_trend"`
	CurrentWeek    int                    `json:"current_week"`
	TotalWeeks     int                    `json:"total_weeks"`
	NextSession    *models.TherapySession `json:"next_session,omitempty"`
	NextSessionIn  string                 `json:"next_session_in,omitempty"`
}

type DashboardService struct {
	athleteRepo athleteProfileReader
	workoutRepo workoutWindowReader
	sessionRepo sessionHistoryReader
}

func NewDashboardService(
	athleteRepo athleteProfileReader,
	workoutRepo workoutWindowReader,
	sessionRepo sessionHistoryReader,
) *DashboardService {
	return &DashboardService{
		athleteRepo: athleteRepo,
		workoutRepo: workoutRepo,
		sessionRepo: sessionRepo,
	}
}

func (s *DashboardService) GetAthleteDashboard(
	ctx context.Context,
	userID int64,
) (*AthleteDashboard, error) {
	now := time.Now().UTC()

	profile, err := s.athleteRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Two trailing weeks of workouts cover both the current window and the
	// comparison window for the trends.
	workouts, err := s.workoutRepo.ListSince(ctx, userID, now.AddDate(0, 0, -14))
	if err != nil {
		return nil, err
	}

	history, err := s.sessionRepo.ListCompletedByUser(ctx, userID, completedHistoryWindow)
	if err != nil {
		return nil, err
	}

	weekAgo := now.AddDate(0, 0, -7)
	currentDistance := metrics.WeeklyRunningDistance(workouts, now)
	previousDistance := metrics.WeeklyRunningDistance(workouts, weekAgo)
	currentLoad := metrics.TrainingLoad(filterWorkoutsBetween(workouts, weekAgo, now))
	previousLoad := metrics.TrainingLoad(filterWorkoutsBetween(workouts, now.AddDate(0, 0, -14), weekAgo))

	dashboard := &AthleteDashboard{
		Readiness:      metrics.RecoveryScore(history, profile.SleepData, profile.HRV, profile.Soreness),
		WeeklyDistance: currentDistance,
		TrainingLoad:   currentLoad,
		Streak:         metrics.Streak(history, now),
		LongestStreak:  profile.LongestStreak,
		Compliance:     profile.Compliance,
		DistanceTrend:  metrics.Trend(currentDistance, previousDistance),
		LoadTrend:      metrics.Trend(currentLoad, previousLoad),
		CurrentWeek:    profile.CurrentWeek,
		TotalWeeks:     profile.TotalWeeks,
	}

	next, err := s.sessionRepo.NextScheduled(ctx, userID, now)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err == nil {
		dashboard.NextSession = next
		dashboard.NextSessionIn = metrics.FormatTimeUntil(next.ScheduledAt, now)
	}

	return dashboard, nil
}

func filterWorkoutsBetween(workouts []models.Workout, from, to time.Time) []models.Workout {
	filtered := make([]models.Workout, 0, len(workouts))
	for _, workout := range workouts {
		if workout.WorkoutDate.Before(from) || workout.WorkoutDate.After(to) {
			continue
		}
		filtered = append(filtered, workout)
	}
	return filtered
}
