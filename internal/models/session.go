package models

import "time"

const (
	SessionScheduled  = "scheduled"
	SessionInProgress = "in_progress"
	SessionCompleted  = "completed"
	SessionSkipped    = "skipped"
	SessionCancelled  = "cancelled"
)

const (
	ModePro    = "pro"
	ModeGuided = "guided"
)

// TherapySession is one stimulation session on the device, from scheduling
// through completion. Pain levels and effectiveness are captured when the
// session finishes and feed the recovery and relief metrics.
type TherapySession struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"user_id"`
	Name           string     `json:"name"`
	Type           string     `json:"type"`
	ScheduledAt    time.Time  `json:"scheduled_at"`
	DurationMin    int        `json:"duration_min"`
	BodyPart       string     `json:"body_part"`
	IntensityLevel int        `json:"intensity_level"`
	Mode           string     `json:"mode"`
	Status         string     `json:"status"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	Effectiveness  *int       `json:"effectiveness,omitempty"`
	PainBefore     *int       `json:"pain_before,omitempty"`
	PainAfter      *int       `json:"pain_after,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
