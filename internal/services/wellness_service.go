package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dkwarude-cell/smartheal-sub001/internal/metrics"
	"github.com/dkwarude-cell/smartheal-sub001/internal/models"
	"github.com/dkwarude-cell/smartheal-sub001/internal/repository"
)

var ErrTaskNotFound = errors.New("task not found")

const (
	minPainLevel = 0
	maxPainLevel = 10
)

// Pain history fed into the week-over-week comparison; eight days covers the
// exact-seven-day lookup with a margin for clock placement within the day.
const painHistoryWindowDays = 8

type healthProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.HealthProfile, error)
	UpdatePainLevel(ctx context.Context, userID int64, level int) error
	UpdateDailyPoints(ctx context.Context, userID int64, points int) error
}

type painStore interface {
	Create(ctx context.Context, input repository.CreatePainEntryInput) (*models.PainEntry, error)
	ListSince(ctx context.Context, userID int64, since time.Time) ([]models.PainEntry, error)
	ListPage(ctx context.Context, userID int64, limit, offset int) ([]models.PainEntry, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
}

type taskStore interface {
	ListTasks(ctx context.Context) ([]models.DailyTask, error)
	GetTask(ctx context.Context, taskID string) (*models.DailyTask, error)
	CompletedTaskIDs(ctx context.Context, userID int64, day time.Time) ([]string, error)
	MarkCompleted(ctx context.Context, userID int64, taskID string, day time.Time) error
}

// WellnessSummary is the health-profile home screen payload.
type WellnessSummary struct {
	PainLevel         int                  `json:"pain_level"`
	ReliefPercentage  int                  `json:"relief_percentage"`
	WeeklyImprovement int                  `json:"weekly_improvement"`
	MobilityScore     int                  `json:"mobility_score"`
	WellBeingScore    int                  `json:"well_being_score"`
	Streak            int                  `json:"streak"`
	LongestStreak     int                  `json:"longest_streak"`
	Progress          models.DailyProgress `json:"progress"`
}

type WellnessService struct {
	healthRepo healthProfileStore
	painRepo   painStore
	taskRepo   taskStore
}

func NewWellnessService(
	healthRepo healthProfileStore,
	painRepo painStore,
	taskRepo taskStore,
) *WellnessService {
	return &WellnessService{
		healthRepo: healthRepo,
		painRepo:   painRepo,
		taskRepo:   taskRepo,
	}
}

func (s *WellnessService) GetSummary(ctx context.Context, userID int64) (*WellnessSummary, error) {
	now := time.Now().UTC()

	profile, err := s.healthRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	history, err := s.painRepo.ListSince(ctx, userID, now.AddDate(0, 0, -painHistoryWindowDays))
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	completedIDs, err := s.taskRepo.CompletedTaskIDs(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	return &WellnessSummary{
		PainLevel:         profile.PainLevel,
		ReliefPercentage:  metrics.PainReliefPercentage(profile.PainLevel),
		WeeklyImprovement: metrics.PainImprovement(history, profile.PainLevel, now),
		MobilityScore:     profile.MobilityScore,
		WellBeingScore:    profile.WellBeingScore,
		Streak:            profile.Streak,
		LongestStreak:     profile.LongestStreak,
		Progress:          metrics.DailyProgress(completedIDs, tasks),
	}, nil
}

func (s *WellnessService) ListTasks(ctx context.Context) ([]models.DailyTask, error) {
	return s.taskRepo.ListTasks(ctx)
}

// CompleteTask records a completion for today and returns the refreshed
// daily progress. Completing the same task twice in a day is a no-op.
func (s *WellnessService) CompleteTask(
	ctx context.Context,
	userID int64,
	taskID string,
) (*models.DailyProgress, error) {
	taskID = strings.TrimSpace(taskID)
	if taskID == "" {
		return nil, ErrInvalidInput
	}
	if _, err := s.taskRepo.GetTask(ctx, taskID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.taskRepo.MarkCompleted(ctx, userID, taskID, now); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	completedIDs, err := s.taskRepo.CompletedTaskIDs(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	progress := metrics.DailyProgress(completedIDs, tasks)
	if err := s.healthRepo.UpdateDailyPoints(ctx, userID, progress.Points); err != nil {
		return nil, err
	}
	return &progress, nil
}

type LogPainInput struct {
	Level int
	Areas []string
	Notes *string
}

// LogPain records a pain entry and keeps the profile's current level in
// sync. Levels are validated here so the relief formula downstream never
// sees an out-of-scale value.
func (s *WellnessService) LogPain(
	ctx context.Context,
	userID int64,
	input LogPainInput,
) (*models.PainEntry, error) {
	if input.Level < minPainLevel || input.Level > maxPainLevel {
		return nil, ErrInvalidInput
	}
	for _, area := range input.Areas {
		if strings.TrimSpace(area) == "" {
			return nil, ErrInvalidInput
		}
	}

	entry, err := s.painRepo.Create(ctx, repository.CreatePainEntryInput{
		UserID:     userID,
		RecordedAt: time.Now().UTC(),
		Level:      input.Level,
		Areas:      input.Areas,
		Notes:      input.Notes,
	})
	if err != nil {
		return nil, err
	}

	if err := s.healthRepo.UpdatePainLevel(ctx, userID, input.Level); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *WellnessService) ListPainHistory(
	ctx context.Context,
	userID int64,
	page int,
	limit int,
) ([]models.PainEntry, int, error) {
	entries, err := s.painRepo.ListPage(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.painRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
