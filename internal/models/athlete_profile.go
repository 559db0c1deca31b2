package models

import "time"

// SleepData is the most recent sleep summary synced from the companion app.
// Stored as a jsonb column on the athlete profile.
type SleepData struct {
	Hours            float64 `json:"hours"`
	Quality          int     `json:"quality"`
	DeepSleepPercent int     `json:"deep_sleep_percent"`
	Interruptions    int     `json:"interruptions"`
}

type AthleteProfile struct {
	ID                 int64      `json:"id"`
	UserID             int64      `json:"user_id"`
	CoachID            *int64     `json:"coach_id,omitempty"`
	FullName           *string    `json:"full_name"`
	AvatarURL          *string    `json:"avatar_url"`
	Age                *int       `json:"age"`
	Sport              *string    `json:"sport"`
	ExperienceLevel    *string    `json:"experience_level"`
	Goals              *[]string  `json:"goals"`
	WeeklyTrainingDays *int       `json:"weekly_training_days"`
	Readiness          int        `json:"readiness"`
	Compliance         int        `json:"compliance"`
	Streak             int        `json:"streak"`
	LongestStreak      int        `json:"longest_streak"`
	Soreness           int        `json:"soreness"`
	HRV                *int       `json:"hrv,omitempty"`
	SleepData          *SleepData `json:"sleep_data,omitempty"`
	LastSessionDate    *time.Time `json:"last_session_date,omitempty"`
	CurrentWeek        int        `json:"current_week"`
	TotalWeeks         int        `json:"total_weeks"`
	OnboardingComplete bool       `json:"onboarding_complete"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
