package models

import "time"

const (
	WorkoutRunning  = "running"
	WorkoutCycling  = "cycling"
	WorkoutSwimming = "swimming"
	WorkoutOther    = "other"
)

const (
	IntensityLow      = "low"
	IntensityModerate = "moderate"
	IntensityHigh     = "high"
	IntensityVeryHigh = "very_high"
)

type Workout struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	WorkoutDate  time.Time `json:"workout_date"`
	Type         string    `json:"type"`
	DurationMin  int       `json:"duration_min"`
	DistanceKM   float64   `json:"distance_km"`
	Intensity    string    `json:"intensity"`
	PaceMinPerKM *float64  `json:"pace_min_per_km,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
