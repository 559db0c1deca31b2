package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dkwarude-cell/smartheal-sub001/internal/models"
)

const therapySessionColumns = `
	id, user_id, name, type, scheduled_at, duration_min, body_part,
	intensity_level, mode, status, completed_at, effectiveness, pain_before,
	pain_after, created_at, updated_at
`

type CreateSessionInput struct {
	UserID         int64
	Name           string
	Type           string
	ScheduledAt    time.Time
	DurationMin    int
	BodyPart       string
	IntensityLevel int
	Mode           string
}

type SessionListFilter struct {
	UserID    int64
	Status    string
	Timeframe string
}

type CompleteSessionInput struct {
	CompletedAt   time.Time
	Effectiveness *int
	PainBefore    *int
	PainAfter     *int
}

type SessionRepository struct {
	db DBTX
}

func NewSessionRepository(db DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(
	ctx context.Context,
	input CreateSessionInput,
) (*models.TherapySession, error) {
	query := `
		INSERT INTO therapy_sessions
			(user_id, name, type, scheduled_at, duration_min, body_part, intensity_level, mode, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'scheduled')
		RETURNING ` + therapySessionColumns
	return r.scanSession(r.db.QueryRow(
		ctx,
		query,
		input.UserID,
		input.Name,
		input.Type,
		input.ScheduledAt,
		input.DurationMin,
		input.BodyPart,
		input.IntensityLevel,
		input.Mode,
	))
}

func (r *SessionRepository) GetByID(ctx context.Context, sessionID int64) (*models.TherapySession, error) {
	query := `SELECT ` + therapySessionColumns + ` FROM therapy_sessions WHERE id = $1`
	return r.scanSession(r.db.QueryRow(ctx, query, sessionID))
}

func (r *SessionRepository) List(
	ctx context.Context,
	filter SessionListFilter,
) ([]models.TherapySession, error) {
	args := []any{filter.UserID}
	whereParts := []string{"user_id = $1"}

	if status := strings.TrimSpace(filter.Status); status != "" {
		args = append(args, status)
		whereParts = append(whereParts, fmt.Sprintf("status = $%d", len(args)))
	}

	switch strings.TrimSpace(filter.Timeframe) {
	case "upcoming":
		whereParts = append(whereParts, "scheduled_at > NOW()")
	case "past":
		whereParts = append(whereParts, "scheduled_at <= NOW()")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM therapy_sessions
		WHERE %s
		ORDER BY scheduled_at ASC, id ASC
	`, therapySessionColumns, strings.Join(whereParts, " AND "))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]models.TherapySession, 0)
	for rows.Next() {
		session, err := r.scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// ListCompletedByUser returns completed sessions newest-first, capped at
// limit when limit is positive.
func (r *SessionRepository) ListCompletedByUser(
	ctx context.Context,
	userID int64,
	limit int,
) ([]models.TherapySession, error) {
	query := `
		SELECT ` + therapySessionColumns + `
		FROM therapy_sessions
		WHERE user_id = $1 AND status = 'completed'
		ORDER BY completed_at DESC, id DESC
	`
	args := []any{userID}
	if limit > 0 {
		args = append(args, limit)
		query += " LIMIT $2"
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]models.TherapySession, 0)
	for rows.Next() {
		session, err := r.scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *SessionRepository) NextScheduled(
	ctx context.Context,
	userID int64,
	after time.Time,
) (*models.TherapySession, error) {
	query := `
		SELECT ` + therapySessionColumns + `
		FROM therapy_sessions
		WHERE user_id = $1 AND status = 'scheduled' AND scheduled_at > $2
		ORDER BY scheduled_at ASC, id ASC
		LIMIT 1
	`
	return r.scanSession(r.db.QueryRow(ctx, query, userID, after))
}

func (r *SessionRepository) UpdateStatusIfCurrent(
	ctx context.Context,
	sessionID int64,
	currentStatus string,
	nextStatus string,
) (*models.TherapySession, error) {
	query := `
		UPDATE therapy_sessions
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING ` + therapySessionColumns
	return r.scanSession(r.db.QueryRow(ctx, query, sessionID, currentStatus, nextStatus))
}

// CompleteIfCurrent transitions a session to completed with its outcome
// fields in one compare-and-set statement.
func (r *SessionRepository) CompleteIfCurrent(
	ctx context.Context,
	sessionID int64,
	currentStatus string,
	input CompleteSessionInput,
) (*models.TherapySession, error) {
	query := `
		UPDATE therapy_sessions
		SET status = 'completed', completed_at = $3, effectiveness = $4,
		    pain_before = $5, pain_after = $6, updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING ` + therapySessionColumns
	return r.scanSession(r.db.QueryRow(
		ctx,
		query,
		sessionID,
		currentStatus,
		input.CompletedAt,
		input.Effectiveness,
		input.PainBefore,
		input.PainAfter,
	))
}

func (r *SessionRepository) scanSession(row rowScanner) (*models.TherapySession, error) {
	var session models.TherapySession
	err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.Name,
		&session.Type,
		&session.ScheduledAt,
		&session.DurationMin,
		&session.BodyPart,
		&session.IntensityLevel,
		&session.Mode,
		&session.Status,
		&session.CompletedAt,
		&session.Effectiveness,
		&session.PainBefore,
		&session.PainAfter,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}
