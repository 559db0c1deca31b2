package models

import "time"

type HealthProfile struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"user_id"`
	FullName           *string   `json:"full_name"`
	AvatarURL          *string   `json:"avatar_url"`
	AgeGroup           *string   `json:"age_group"`
	PrimaryGoal        *string   `json:"primary_goal"`
	PainAreas          *[]string `json:"pain_areas"`
	PainLevel          int       `json:"pain_level"`
	MobilityScore      int       `json:"mobility_score"`
	WellBeingScore     int       `json:"well_being_score"`
	Streak             int       `json:"streak"`
	LongestStreak      int       `json:"longest_streak"`
	DailyPoints        int       `json:"daily_points"`
	OnboardingComplete bool      `json:"onboarding_complete"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// PainEntry is a single pain log; level uses the 0-10 scale where lower is
// better.
type PainEntry struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	RecordedAt time.Time `json:"recorded_at"`
	Level      int       `json:"level"`
	Areas      []string  `json:"areas"`
	Notes      *string   `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type DailyTask struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Points   int    `json:"points"`
}
