package repository

import (
	"context"

	"github.com/dkwarude-cell/smartheal-sub001/internal/models"
)

const protocolColumns = `id, coach_id, athlete_id, session_id, title, description, file_url, created_at`

type CreateProtocolInput struct {
	CoachID     int64
	AthleteID   int64
	SessionID   *int64
	Title       string
	Description *string
	FileURL     string
}

type ProtocolRepository struct {
	db DBTX
}

func NewProtocolRepository(db DBTX) *ProtocolRepository {
	return &ProtocolRepository{db: db}
}

func (r *ProtocolRepository) Create(
	ctx context.Context,
	input CreateProtocolInput,
) (*models.RecoveryProtocol, error) {
	query := `
		INSERT INTO recovery_protocols (coach_id, athlete_id, session_id, title, description, file_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + protocolColumns
	return r.scanProtocol(r.db.QueryRow(
		ctx,
		query,
		input.CoachID,
		input.AthleteID,
		input.SessionID,
		input.Title,
		input.Description,
		input.FileURL,
	))
}

func (r *ProtocolRepository) GetByID(ctx context.Context, protocolID int64) (*models.RecoveryProtocol, error) {
	query := `SELECT ` + protocolColumns + ` FROM recovery_protocols WHERE id = $1`
	return r.scanProtocol(r.db.QueryRow(ctx, query, protocolID))
}

func (r *ProtocolRepository) ListByCoachID(ctx context.Context, coachID int64) ([]models.RecoveryProtocol, error) {
	query := `SELECT ` + protocolColumns + `
		FROM recovery_protocols
		WHERE coach_id = $1
		ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query, coachID)
}

func (r *ProtocolRepository) ListByAthleteID(ctx context.Context, athleteID int64) ([]models.RecoveryProtocol, error) {
	query := `SELECT ` + protocolColumns + `
		FROM recovery_protocols
		WHERE athlete_id = $1
		ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query, athleteID)
}

func (r *ProtocolRepository) list(ctx context.Context, query string, args ...any) ([]models.RecoveryProtocol, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	protocols := make([]models.RecoveryProtocol, 0)
	for rows.Next() {
		protocol, err := r.scanProtocol(rows)
		if err != nil {
			return nil, err
		}
		protocols = append(protocols, *protocol)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return protocols, nil
}

func (r *ProtocolRepository) scanProtocol(row rowScanner) (*models.RecoveryProtocol, error) {
	var protocol models.RecoveryProtocol
	err := row.Scan(
		&protocol.ID,
		&protocol.CoachID,
		&protocol.AthleteID,
		&protocol.SessionID,
		&protocol.Title,
		&protocol.Description,
		&protocol.FileURL,
		&protocol.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &protocol, nil
}
