package repository

import (
	"context"

	"github.com/dkwarude-cell/smartheal-sub001/internal/models"
)

const coachProfileColumns = `
	id, user_id, full_name, avatar_url, bio, specialty, team_name,
	onboarding_complete, created_at, updated_at
`

type CoachOnboardingInput struct {
	FullName  string
	Bio       string
	Specialty string
	TeamName  string
}

type CoachProfileRepository struct {
	db DBTX
}

func NewCoachProfileRepository(db DBTX) *CoachProfileRepository {
	return &CoachProfileRepository{db: db}
}

func (r *CoachProfileRepository) CreateEmpty(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `INSERT INTO coach_profiles (user_id) VALUES ($1)`, userID)
	return err
}

func (r *CoachProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.CoachProfile, error) {
	query := `SELECT ` + coachProfileColumns + ` FROM coach_profiles WHERE user_id = $1`
	return r.scanProfile(r.db.QueryRow(ctx, query, userID))
}

func (r *CoachProfileRepository) UpdateOnboarding(
	ctx context.Context,
	userID int64,
	input CoachOnboardingInput,
) (*models.CoachProfile, error) {
	query := `
		UPDATE coach_profiles
		SET full_name = $2, bio = $3, specialty = $4, team_name = $5,
		    onboarding_complete = TRUE, updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + coachProfileColumns
	return r.scanProfile(r.db.QueryRow(ctx, query, userID, input.FullName, input.Bio, input.Specialty, input.TeamName))
}

func (r *CoachProfileRepository) UpdateAvatar(ctx context.Context, userID int64, avatarURL string) error {
	_, err := r.db.Exec(
		ctx,
		`UPDATE coach_profiles SET avatar_url = $2, updated_at = NOW() WHERE user_id = $1`,
		userID,
		avatarURL,
	)
	return err
}

func (r *CoachProfileRepository) scanProfile(row rowScanner) (*models.CoachProfile, error) {
	var profile models.CoachProfile
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FullName,
		&profile.AvatarURL,
		&profile.Bio,
		&profile.Specialty,
		&profile.TeamName,
		&profile.OnboardingComplete,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
