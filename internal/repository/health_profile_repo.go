package repository

import (
	"context"

	"github.com/dkwarude-cell/smartheal-sub001/internal/models"
)

const healthProfileColumns = `
	id, user_id, full_name, avatar_url, age_group, primary_goal, pain_areas,
	pain_level, mobility_score, well_being_score, streak, longest_streak,
	daily_points, onboarding_complete, created_at, updated_at
`

type HealthOnboardingInput struct {
	FullName    string
	AgeGroup    string
	PrimaryGoal string
	PainAreas   []string
	PainLevel   int
}

type HealthProfileRepository struct {
	db DBTX
}

func NewHealthProfileRepository(db DBTX) *HealthProfileRepository {
	return &HealthProfileRepository{db: db}
}

func (r *HealthProfileRepository) CreateEmpty(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `INSERT INTO health_profiles (user_id) VALUES ($1)`, userID)
	return err
}

func (r *HealthProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.HealthProfile, error) {
	query := `SELECT ` + healthProfileColumns + ` FROM health_profiles WHERE user_id = $1`
	return r.scanProfile(r.db.QueryRow(ctx, query, userID))
}

func (r *HealthProfileRepository) UpdateOnboarding(
	ctx context.Context,
	userID int64,
	input HealthOnboardingInput,
) (*models.HealthProfile, error) {
	query := `
		UPDATE health_profiles
		SET full_name = $2, age_group = $3, primary_goal = $4, pain_areas = $5,
		    pain_level = $6, onboarding_complete = TRUE, updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + healthProfileColumns
	return r.scanProfile(r.db.QueryRow(
		ctx,
		query,
		userID,
		input.FullName,
		input.AgeGroup,
		input.PrimaryGoal,
		input.PainAreas,
		input.PainLevel,
	))
}

func (r *HealthProfileRepository) UpdateAvatar(ctx context.Context, userID int64, avatarURL string) error {
	_, err := r.db.Exec(
		ctx,
		`UPDATE health_profiles SET avatar_url = $2, updated_at = NOW() WHERE user_id = $1`,
		userID,
		avatarURL,
	)
	return err
}

func (r *HealthProfileRepository) UpdatePainLevel(ctx context.Context, userID int64, level int) error {
	_, err := r.db.Exec(
		ctx,
		`UPDATE health_profiles SET pain_level = $2, updated_at = NOW() WHERE user_id = $1`,
		userID,
		level,
	)
	return err
}

func (r *HealthProfileRepository) UpdateDailyPoints(ctx context.Context, userID int64, points int) error {
	_, err := r.db.Exec(
		ctx,
		`UPDATE health_profiles SET daily_points = $2, updated_at = NOW() WHERE user_id = $1`,
		userID,
		points,
	)
	return err
}

func (r *HealthProfileRepository) UpdateStreak(ctx context.Context, userID int64, streak, longestStreak int) error {
	_, err := r.db.Exec(ctx, `
		UPDATE health_profiles
		SET streak = $2, longest_streak = $3, updated_at = NOW()
		WHERE user_id = $1
	`, userID, streak, longestStreak)
	return err
}

func (r *HealthProfileRepository) scanProfile(row rowScanner) (*models.HealthProfile, error) {
	var profile models.HealthProfile
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FullName,
		&profile.AvatarURL,
		&profile.AgeGroup,
		&profile.PrimaryGoal,
		&profile.PainAreas,
		&profile.PainLevel,
		&profile.MobilityScore,
		&profile.WellBeingScore,
		&profile.Streak,
		&profile.LongestStreak,
		&profile.DailyPoints,
		&profile.OnboardingComplete,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
