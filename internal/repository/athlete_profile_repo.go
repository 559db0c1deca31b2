package repository

import (
	"context"
	"time"

	"github.com/dkwarude-cell/smartheal-sub001/internal/models"
)

const athleteProfileColumns = `
	id, user_id, coach_id, full_name, avatar_url, age, sport, experience_level,
	goals, weekly_training_days, readiness, compliance, streak, longest_streak,
	soreness, hrv, sleep_data, last_session_date, current_week, total_weeks,
	onboarding_complete, created_at, updated_at
`

type AthleteOnboardingInput struct {
	FullName           string
	Age                int
	Sport              string
	ExperienceLevel    string
	Goals              []string
	WeeklyTrainingDays int
	TotalWeeks         int
}

type AthleteCheckInInput struct {
	Soreness  int
	HRV       *int
	SleepData *models.SleepData
}

type AthleteProfileRepository struct {
	db DBTX
}

func NewAthleteProfileRepository(db DBTX) *AthleteProfileRepository {
	return &AthleteProfileRepository{db: db}
}

func (r *AthleteProfileRepository) CreateEmpty(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `INSERT INTO athlete_profiles (user_id) VALUES ($1)`, userID)
	return err
}

func (r *AthleteProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.AthleteProfile, error) {
	query := `SELECT ` + athleteProfileColumns + ` FROM athlete_profiles WHERE user_id = $1`
	return r.scanProfile(r.db.QueryRow(ctx, query, userID))
}

func (r *AthleteProfileRepository) UpdateOnboarding(
	ctx context.Context,
	userID int64,
	input AthleteOnboardingInput,
) (*models.AthleteProfile, error) {
	query := `
		UPDATE athlete_profiles
		SET full_name = $2, age = $3, sport = $4, experience_level = $5,
		    goals = $6, weekly_training_days = $7, total_weeks = $8,
		    current_week = 1, onboarding_complete = TRUE, updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + athleteProfileColumns
	return r.scanProfile(r.db.QueryRow(
		ctx,
		query,
		userID,
		input.FullName,
		input.Age,
		input.Sport,
		input.ExperienceLevel,
		input.Goals,
		input.WeeklyTrainingDays,
		input.TotalWeeks,
	))
}

func (r *AthleteProfileRepository) UpdateAvatar(ctx context.Context, userID int64, avatarURL string) error {
	_, err := r.db.Exec(
		ctx,
		`UPDATE athlete_profiles SET avatar_url = $2, updated_at = NOW() WHERE user_id = $1`,
		userID,
		avatarURL,
	)
	return err
}

// UpdateCheckIn stores the subjective recovery inputs reported by the
// athlete; they feed the next recovery score computation.
func (r *AthleteProfileRepository) UpdateCheckIn(
	ctx context.Context,
	userID int64,
	input AthleteCheckInInput,
) (*models.AthleteProfile, error) {
	query := `
		UPDATE athlete_profiles
		SET soreness = $2, hrv = $3, sleep_data = $4, updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + athleteProfileColumns
	return r.scanProfile(r.db.QueryRow(ctx, query, userID, input.Soreness, input.HRV, input.SleepData))
}

// UpdateTrainingState persists the derived adherence numbers after a session
// completes.
func (r *AthleteProfileRepository) UpdateTrainingState(
	ctx context.Context,
	userID int64,
	streak int,
	longestStreak int,
	readiness int,
	lastSession time.Time,
) error {
	_, err := r.db.Exec(ctx, `
		UPDATE athlete_profiles
		SET streak = $2, longest_streak = $3, readiness = $4,
		    last_session_date = $5, updated_at = NOW()
		WHERE user_id = $1
	`, userID, streak, longestStreak, readiness, lastSession)
	return err
}

func (r *AthleteProfileRepository) AssignCoach(ctx context.Context, userID, coachID int64) error {
	_, err := r.db.Exec(
		ctx,
		`UPDATE athlete_profiles SET coach_id = $2, updated_at = NOW() WHERE user_id = $1`,
		userID,
		coachID,
	)
	return err
}

func (r *AthleteProfileRepository) ListByCoachID(ctx context.Context, coachID int64) ([]models.AthleteProfile, error) {
	query := `SELECT ` + athleteProfileColumns + `
		FROM athlete_profiles
		WHERE coach_id = $1
		ORDER BY full_name ASC NULLS LAST, id ASC`

	rows, err := r.db.Query(ctx, query, coachID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	athletes := make([]models.AthleteProfile, 0)
	for rows.Next() {
		profile, err := r.scanProfile(rows)
		if err != nil {
			return nil, err
		}
		athletes = append(athletes, *profile)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return athletes, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *AthleteProfileRepository) scanProfile(row rowScanner) (*models.AthleteProfile, error) {
	var profile models.AthleteProfile
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.CoachID,
		&profile.FullName,
		&profile.AvatarURL,
		&profile.Age,
		&profile.Sport,
		&profile.ExperienceLevel,
		&profile.Goals,
		&profile.WeeklyTrainingDays,
		&profile.Readiness,
		&profile.Compliance,
		&profile.Streak,
		&profile.LongestStreak,
		&profile.Soreness,
		&profile.HRV,
		&profile.SleepData,
		&profile.LastSessionDate,
		&profile.CurrentWeek,
		&profile.TotalWeeks,
		&profile.OnboardingComplete,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
