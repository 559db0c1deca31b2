package models

import "time"

const (
	AlertAtRisk    = "at_risk"
	AlertSuccess   = "success"
	AlertMilestone = "milestone"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// PriorityAlert is a coach-facing alert produced by the risk rules. Alerts
// are recomputed wholesale on every call and never persisted.
type PriorityAlert struct {
	Type        string    `json:"type"`
	AthleteID   int64     `json:"athlete_id"`
	AthleteName string    `json:"athlete_name"`
	Message     string    `json:"message"`
	Action      string    `json:"action"`
	Priority    string    `json:"priority"`
	Timestamp   time.Time `json:"timestamp"`
}

type TeamMetrics struct {
	ActiveAthletes int `json:"active_athletes"`
	AvgCompliance  int `json:"avg_compliance"`
	AvgReadiness   int `json:"avg_readiness"`
	AtRiskCount    int `json:"at_risk_count"`
}

const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

type Trend struct {
	Direction string  `json:"direction"`
	Value     string  `json:"value"`
	Absolute  float64 `json:"absolute"`
}

type DailyProgress struct {
	TasksCompleted int  `json:"tasks_completed"`
	TotalTasks     int  `json:"total_tasks"`
	Percentage     int  `json:"percentage"`
	Points         int  `json:"points"`
	MaxPoints      int  `json:"max_points"`
	IsPerfectDay   bool `json:"is_perfect_day"`
}
