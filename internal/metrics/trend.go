package metrics

import (
	"fmt"
	"math"
	"time"

	"github.com/dkwarude-cell/smartheal-sub001/internal/models"
)

// Trend classifies the change between two values and renders it as a signed
// integer percentage, always with an explicit sign for non-negative changes.
// A non-positive previous value reports a 0% change.
func Trend(current, previous float64) models.Trend {
	change := current - previous
	percent := 0.0
	if previous > 0 {
		percent = change / previous * 100
	}

	direction := models.TrendStable
	switch {
	case change > 0:
		direction = models.TrendUp
	case change < 0:
		direction = models.TrendDown
	}

	return models.Trend{
		Direction: direction,
		Value:     fmt.Sprintf("%+d%%", int(math.Round(percent))),
		Absolute:  math.Abs(change),
	}
}

// FormatTimeUntil renders the wait before a scheduled session, e.g.
// "in 1h 30m". Past times render as "Overdue". Horizons beyond a day stay in
// hours, so a session 30 hours out reads "in 30h 0m".
func FormatTimeUntil(scheduled, now time.Time) string {
	remaining := scheduled.Sub(now)
	if remaining < 0 {
		return "Overdue"
	}

	hours := int(remaining.Hours())
	minutes := int(remaining.Minutes()) % 60
	if hours > 0 {
		return fmt.Sprintf("in %dh %dm", hours, minutes)
	}
	return fmt.Sprintf("in %dm", minutes)
}
