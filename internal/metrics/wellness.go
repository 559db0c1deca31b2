package metrics

import (
	"math"
	"time"

	"github.com/dkwarude-cell/smartheal-sub001/internal/models"
)

// PainImprovement compares the current pain level with the entry recorded
// exactly seven days ago and returns the improvement as a percentage of the
// week-ago level. Without a sample aged exactly seven days the comparison
// falls back to the current level and reports no change.
func PainImprovement(history []models.PainEntry, currentLevel int, now time.Time) int {
	weekAgoLevel := currentLevel
	for _, entry := range history {
		if int(math.Floor(now.Sub(entry.RecordedAt).Hours()/24)) == 7 {
			weekAgoLevel = entry.Level
			break
		}
	}
	if weekAgoLevel <= 0 {
		return 0
	}
	improvement := weekAgoLevel - currentLevel
	return int(math.Round(float64(improvement) / float64(weekAgoLevel) * 100))
}

// PainReliefPercentage maps the 0-10 pain scale onto a 0-100 relief
// percentage: level 0 reads as full relief, level 10 as none. Levels outside
// the scale are not clamped; validate at the boundary.
func PainReliefPercentage(level int) int {
	return int(math.Round(float64(10-level) * 10))
}

// DailyProgress summarises task completion for the day. Completed ids with
// no matching task contribute no points. With no tasks configured the day
// reports 0% and is never perfect.
func DailyProgress(completedIDs []string, tasks []models.DailyTask) models.DailyProgress {
	completed := make(map[string]struct{}, len(completedIDs))
	for _, id := range completedIDs {
		completed[id] = struct{}{}
	}

	points, maxPoints := 0, 0
	for _, task := range tasks {
		maxPoints += task.Points
		if _, ok := completed[task.ID]; ok {
			points += task.Points
		}
	}

	progress := models.DailyProgress{
		TasksCompleted: len(completedIDs),
		TotalTasks:     len(tasks),
		Points:         points,
		MaxPoints:      maxPoints,
	}
	if len(tasks) == 0 {
		return progress
	}
	progress.Percentage = int(math.Round(float64(len(completedIDs)) / float64(len(tasks)) * 100))
	progress.IsPerfectDay = len(completedIDs) == len(tasks)
	return progress
}
