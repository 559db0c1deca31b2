package metrics

import (
	"fmt"
	"math"
	"time"

	"github.com/dkwarude-cell/smartheal-sub001/internal/models"
)

// At-risk thresholds for the coach view.
const (
	complianceFloor = 80
	readinessFloor  = 70
	missedDaysFloor = 2
)

// TeamMetrics aggregates fleet-level numbers for the coach dashboard. An
// empty roster yields the zero value rather than dividing by zero.
func TeamMetrics(athletes []models.AthleteProfile) models.TeamMetrics {
	if len(athletes) == 0 {
		return models.TeamMetrics{}
	}

	var active, atRisk int
	var complianceSum, readinessSum float64
	for _, athlete := range athletes {
		if athlete.Streak > 0 {
			active++
		}
		if athlete.Compliance < complianceFloor || athlete.Readiness < readinessFloor {
			atRisk++
		}
		complianceSum += float64(athlete.Compliance)
		readinessSum += float64(athlete.Readiness)
	}

	count := float64(len(athletes))
	return models.TeamMetrics{
		ActiveAthletes: active,
		AvgCompliance:  int(math.Round(complianceSum / count)),
		AvgReadiness:   int(math.Round(readinessSum / count)),
		AtRiskCount:    atRisk,
	}
}

// DetectAtRiskAthletes runs three independent rules over the roster and
// returns zero or more alerts per athlete, in roster order then rule order.
// One athlete can trigger several alerts in the same pass; every alert
// carries the call time and no deduplication is applied.
func DetectAtRiskAthletes(athletes []models.AthleteProfile, now time.Time) []models.PriorityAlert {
	alerts := make([]models.PriorityAlert, 0)
	for _, athlete := range athletes {
		name := athleteName(athlete)

		if athlete.Streak == 0 && athlete.LastSessionDate != nil {
			missed := int(math.Floor(now.Sub(*athlete.LastSessionDate).Hours() / 24))
			if missed >= missedDaysFloor {
				alerts = append(alerts, models.PriorityAlert{
					Type:        models.AlertAtRisk,
					AthleteID:   athlete.UserID,
					AthleteName: name,
					Message:     fmt.Sprintf("Missed %d days of therapy, readiness at %d%%", missed, athlete.Readiness),
					Action:      "Schedule check-in",
					Priority:    models.PriorityHigh,
					Timestamp:   now,
				})
			}
		}

		if athlete.Readiness < readinessFloor {
			alerts = append(alerts, models.PriorityAlert{
				Type:        models.AlertAtRisk,
				AthleteID:   athlete.UserID,
				AthleteName: name,
				Message:     fmt.Sprintf("Readiness dropped to %d%%", athlete.Readiness),
				Action:      "Review program",
				Priority:    models.PriorityHigh,
				Timestamp:   now,
			})
		}

		if athlete.Compliance < complianceFloor {
			alerts = append(alerts, models.PriorityAlert{
				Type:        models.AlertAtRisk,
				AthleteID:   athlete.UserID,
				AthleteName: name,
				Message:     fmt.Sprintf("Compliance down to %d%% this week", athlete.Compliance),
				Action:      "Send motivation",
				Priority:    models.PriorityMedium,
				Timestamp:   now,
			})
		}
	}
	return alerts
}

func athleteName(athlete models.AthleteProfile) string {
	if athlete.FullName != nil && *athlete.FullName != "" {
		return *athlete.FullName
	}
	return fmt.Sprintf("Athlete %d", athlete.UserID)
}
