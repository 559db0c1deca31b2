package repository

import (
	"context"
	"time"

	"github.com/dkwarude-cell/smartheal-sub001/internal/models"
)

const painEntryColumns = `id, user_id, recorded_at, level, areas, notes, created_at`

type CreatePainEntryInput struct {
	UserID     int64
	RecordedAt time.Time
	Level      int
	Areas      []string
	Notes      *string
}

type PainRepository struct {
	db DBTX
}

func NewPainRepository(db DBTX) *PainRepository {
	return &PainRepository{db: db}
}

func (r *PainRepository) Create(ctx context.Context, input CreatePainEntryInput) (*models.PainEntry, error) {
	query := `
		INSERT INTO pain_entries (user_id, recorded_at, level, areas, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + painEntryColumns
	return r.scanEntry(r.db.QueryRow(
		ctx,
		query,
		input.UserID,
		input.RecordedAt,
		input.Level,
		input.Areas,
		input.Notes,
	))
}

// ListSince returns entries recorded on or after the cutoff, newest-first.
func (r *PainRepository) ListSince(
	ctx context.Context,
	userID int64,
	since time.Time,
) ([]models.PainEntry, error) {
	query := `
		SELECT ` + painEntryColumns + `
		FROM pain_entries
		WHERE user_id = $1 AND recorded_at >= $2
		ORDER BY recorded_at DESC, id DESC
	`
	return r.list(ctx, query, userID, since)
}

func (r *PainRepository) ListPage(
	ctx context.Context,
	userID int64,
	limit int,
	offset int,
) ([]models.PainEntry, error) {
	query := `
		SELECT ` + painEntryColumns + `
		FROM pain_entries
		WHERE user_id = $1
		ORDER BY recorded_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	return r.list(ctx, query, userID, limit, offset)
}

func (r *PainRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM pain_entries WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

func (r *PainRepository) list(ctx context.Context, query string, args ...any) ([]models.PainEntry, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.PainEntry, 0)
	for rows.Next() {
		entry, err := r.scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *PainRepository) scanEntry(row rowScanner) (*models.PainEntry, error) {
	var entry models.PainEntry
	err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.RecordedAt,
		&entry.Level,
		&entry.Areas,
		&entry.Notes,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
