package models

import "time"

// RecoveryProtocol is a document a coach uploads for one of their athletes,
// optionally tied to a completed therapy session.
type RecoveryProtocol struct {
	ID          int64     `json:"id"`
	CoachID     int64     `json:"coach_id"`
	AthleteID   int64     `json:"athlete_id"`
	SessionID   *int64    `json:"session_id,omitempty"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	FileURL     string    `json:"file_url"`
	CreatedAt   time.Time `json:"created_at"`
}
