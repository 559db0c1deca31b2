package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dkwarude-cell/smartheal-sub001/internal/metrics"
	"github.com/dkwarude-cell/smartheal-sub001/internal/models"
	"github.com/dkwarude-cell/smartheal-sub001/internal/repository"
)

var (
	ErrForbidden              = errors.New("forbidden")
	ErrInvalidStatus          = errors.New("invalid status")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrInvalidInput           = errors.New("invalid input")
)

type userReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

const (
	minIntensityLevel = 1
	maxIntensityLevel = 10
)

// How many completed sessions feed the streak and recovery recomputation
// after a session finishes.
const completedHistoryWindow = 60

type SessionService struct {
	db          *pgxpool.Pool
	sessionRepo *repository.SessionRepository
	userRepo    userReader
}

func NewSessionService(
	db *pgxpool.Pool,
	sessionRepo *repository.SessionRepository,
	userRepo userReader,
) *SessionService {
	return &SessionService{
		db:          db,
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
	}
}

type ScheduleSessionInput struct {
	Name           string
	Type           string
	ScheduledAt    time.Time
	DurationMin    int
	BodyPart       string
	IntensityLevel int
	Mode           string
}

func (s *SessionService) Schedule(
	ctx context.Context,
	userID int64,
	input ScheduleSessionInput,
) (*models.TherapySession, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.DurationMin <= 0 {
		return nil, ErrInvalidInput
	}
	if input.IntensityLevel < minIntensityLevel || input.IntensityLevel > maxIntensityLevel {
		return nil, ErrInvalidInput
	}
	if input.Mode != models.ModePro && input.Mode != models.ModeGuided {
		return nil, ErrInvalidInput
	}
	if input.ScheduledAt.Before(time.Now().Add(-1 * time.Minute)) {
		return nil, ErrInvalidInput
	}

	sessionType := strings.TrimSpace(input.Type)
	if sessionType == "" {
		return nil, ErrInvalidInput
	}

	return s.sessionRepo.Create(ctx, repository.CreateSessionInput{
		UserID:         userID,
		Name:           name,
		Type:           sessionType,
		ScheduledAt:    input.ScheduledAt.UTC(),
		DurationMin:    input.DurationMin,
		BodyPart:       strings.TrimSpace(input.BodyPart),
		IntensityLevel: input.IntensityLevel,
		Mode:           input.Mode,
	})
}

func (s *SessionService) List(
	ctx context.Context,
	userID int64,
	filter repository.SessionListFilter,
) ([]models.TherapySession, error) {
	filter.UserID = userID
	return s.sessionRepo.List(ctx, filter)
}

func (s *SessionService) Get(
	ctx context.Context,
	userID int64,
	sessionID int64,
) (*models.TherapySession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrForbidden
	}
	return session, nil
}

// UpdateStatus handles the non-terminal transitions: start, skip, cancel.
// Completion goes through Complete because it carries outcome data.
func (s *SessionService) UpdateStatus(
	ctx context.Context,
	userID int64,
	sessionID int64,
	requestedStatus string,
) (*models.TherapySession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrForbidden
	}

	nextStatus, err := normalizeRequestedStatus(requestedStatus)
	if err != nil {
		return nil, err
	}
	if err := validateStatusTransition(session.Status, nextStatus); err != nil {
		return nil, err
	}

	updated, err := s.sessionRepo.UpdateStatusIfCurrent(ctx, sessionID, session.Status, nextStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidStateTransition
		}
		return nil, err
	}
	return updated, nil
}

type CompleteSessionInput struct {
	Effectiveness *int
	PainBefore    *int
	PainAfter     *int
}

// Complete finishes a session, derives effectiveness from the pain delta
// when the caller did not report one, and recomputes the owner profile's
// streak and readiness inside the same transaction.
func (s *SessionService) Complete(
	ctx context.Context,
	userID int64,
	sessionID int64,
	input CompleteSessionInput,
) (*models.TherapySession, error) {
	if !validOptionalRange(input.Effectiveness, 0, 100) ||
		!validOptionalRange(input.PainBefore, 0, 10) ||
		!validOptionalRange(input.PainAfter, 0, 10) {
		return nil, ErrInvalidInput
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrForbidden
	}
	if session.Status != models.SessionScheduled && session.Status != models.SessionInProgress {
		return nil, ErrInvalidStateTransition
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	effectiveness := input.Effectiveness
	if effectiveness == nil {
		effectiveness = derivedEffectiveness(input.PainBefore, input.PainAfter)
	}

	now := time.Now().UTC()

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txSessionRepo := repository.NewSessionRepository(tx)

	completed, err := txSessionRepo.CompleteIfCurrent(ctx, sessionID, session.Status, repository.CompleteSessionInput{
		CompletedAt:   now,
		Effectiveness: effectiveness,
		PainBefore:    input.PainBefore,
		PainAfter:     input.PainAfter,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidStateTransition
		}
		return nil, err
	}

	history, err := txSessionRepo.ListCompletedByUser(ctx, userID, completedHistoryWindow)
	if err != nil {
		return nil, err
	}
	streak := metrics.Streak(history, now)

	switch user.Role {
	case models.RoleAthlete:
		txAthleteRepo := repository.NewAthleteProfileRepository(tx)
		profile, err := txAthleteRepo.GetByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		readiness := metrics.RecoveryScore(history, profile.SleepData, profile.HRV, profile.Soreness)
		longest := profile.LongestStreak
		if streak > longest {
			longest = streak
		}
		if err := txAthleteRepo.UpdateTrainingState(ctx, userID, streak, longest, readiness, now); err != nil {
			return nil, err
		}
	case models.RoleHealth:
		txHealthRepo := repository.NewHealthProfileRepository(tx)
		profile, err := txHealthRepo.GetByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		longest := profile.LongestStreak
		if streak > longest {
			longest = streak
		}
		if err := txHealthRepo.UpdateStreak(ctx, userID, streak, longest); err != nil {
			return nil, err
		}
	default:
		return nil, ErrForbidden
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return completed, nil
}

// derivedEffectiveness maps the pain delta of a session onto the 0-100
// effectiveness scale when the user skipped the explicit rating.
func derivedEffectiveness(painBefore, painAfter *int) *int {
	if painBefore == nil || painAfter == nil {
		return nil
	}
	value := (*painBefore - *painAfter) * 10
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	return &value
}

func validOptionalRange(value *int, min, max int) bool {
	if value == nil {
		return true
	}
	return *value >= min && *value <= max
}

func normalizeRequestedStatus(status string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "start", "in_progress", "in-progress":
		return models.SessionInProgress, nil
	case "skip", "skipped":
		return models.SessionSkipped, nil
	case "cancel", "cancelled", "canceled":
		return models.SessionCancelled, nil
	default:
		return "", ErrInvalidStatus
	}
}

func validateStatusTransition(currentStatus, nextStatus string) error {
	switch nextStatus {
	case models.SessionInProgress, models.SessionSkipped:
		if currentStatus != models.SessionScheduled {
			return ErrInvalidStateTransition
		}
	case models.SessionCancelled:
		if currentStatus != models.SessionScheduled && currentStatus != models.SessionInProgress {
			return ErrInvalidStateTransition
		}
	default:
		return ErrInvalidStatus
	}
	return nil
}
