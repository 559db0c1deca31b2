package repository

import (
	"context"
	"time"

	"github.com/dkwarude-cell/smartheal-sub001/internal/models"
)

const workoutColumns = `
	id, user_id, workout_date, type, duration_min, distance_km, intensity,
	pace_min_per_km, created_at
`

type CreateWorkoutInput struct {
	UserID       int64
	WorkoutDate  time.Time
	Type         string
	DurationMin  int
	DistanceKM   float64
	Intensity    string
	PaceMinPerKM *float64
}

type WorkoutRepository struct {
	db DBTX
}

func NewWorkoutRepository(db DBTX) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

func (r *WorkoutRepository) Create(ctx context.Context, input CreateWorkoutInput) (*models.Workout, error) {
	query := `
		INSERT INTO workouts
			(user_id, workout_date, type, duration_min, distance_km, intensity, pace_min_per_km)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + workoutColumns
	return r.scanWorkout(r.db.QueryRow(
		ctx,
		query,
		input.UserID,
		input.WorkoutDate,
		input.Type,
		input.DurationMin,
		input.DistanceKM,
		input.Intensity,
		input.PaceMinPerKM,
	))
}

// ListSince returns workouts on or after the cutoff, newest-first. Used by
// the dashboard to feed the windowed metrics.
func (r *WorkoutRepository) ListSince(
	ctx context.Context,
	userID int64,
	since time.Time,
) ([]models.Workout, error) {
	query := `
		SELECT ` + workoutColumns + `
		FROM workouts
		WHERE user_id = $1 AND workout_date >= $2
		ORDER BY workout_date DESC, id DESC
	`
	return r.list(ctx, query, userID, since)
}

func (r *WorkoutRepository) ListPage(
	ctx context.Context,
	userID int64,
	limit int,
	offset int,
) ([]models.Workout, error) {
	query := `
		SELECT ` + workoutColumns + `
		FROM workouts
		WHERE user_id = $1
		ORDER BY workout_date DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	return r.list(ctx, query, userID, limit, offset)
}

func (r *WorkoutRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM workouts WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

func (r *WorkoutRepository) list(ctx context.Context, query string, args ...any) ([]models.Workout, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := make([]models.Workout, 0)
	for rows.Next() {
		workout, err := r.scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, *workout)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (r *WorkoutRepository) scanWorkout(row rowScanner) (*models.Workout, error) {
	var workout models.Workout
	err := row.Scan(
		&workout.ID,
		&workout.UserID,
		&workout.WorkoutDate,
		&workout.Type,
		&workout.DurationMin,
		&workout.DistanceKM,
		&workout.Intensity,
		&workout.PaceMinPerKM,
		&workout.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &workout, nil
}
