package services

import (
	"context"
	"time"

	"github.com/dkwarude-cell/smartheal-sub001/internal/metrics"
	"github.com/dkwarude-cell/smartheal-sub001/internal/models"
)

type rosterReader interface {
	ListByCoachID(ctx context.Context, coachID int64) ([]models.AthleteProfile, error)
}

// alertPublisher pushes freshly computed alerts to connected coach clients.
// Nil-safe: a TeamService without a publisher simply skips the push.
type alertPublisher interface {
	PublishAlerts(coachID int64, alerts []models.PriorityAlert)
}

// TeamOverview is the coach dashboard payload: fleet aggregates plus the
// per-athlete alerts, recomputed wholesale on each call.
type TeamOverview struct {
	Metrics  models.TeamMetrics      `json:"metrics"`
	Alerts   []models.PriorityAlert  `json:"alerts"`
	Athletes []models.AthleteProfile `json:"athletes"`
}

type TeamService struct {
	athleteRepo rosterReader
	publisher   alertPublisher
}

func NewTeamService(athleteRepo rosterReader, publisher alertPublisher) *TeamService {
	return &TeamService{
		athleteRepo: athleteRepo,
		publisher:   publisher,
	}
}

func (s *TeamService) GetTeamOverview(ctx context.Context, coachID int64) (*TeamOverview, error) {
	athletes, err := s.athleteRepo.ListByCoachID(ctx, coachID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	alerts := metrics.DetectAtRiskAthletes(athletes, now)

	if s.publisher != nil && len(alerts) > 0 {
		s.publisher.PublishAlerts(coachID, alerts)
	}

	return &TeamOverview{
		Metrics:  metrics.TeamMetrics(athletes),
		Alerts:   alerts,
		Athletes: athletes,
	}, nil
}

// GetAlerts recomputes the alert list without the rest of the overview; the
// websocket refresh path uses it.
func (s *TeamService) GetAlerts(ctx context.Context, coachID int64) ([]models.PriorityAlert, error) {
	athletes, err := s.athleteRepo.ListByCoachID(ctx, coachID)
	if err != nil {
		return nil, err
	}
	return metrics.DetectAtRiskAthletes(athletes, time.Now().UTC()), nil
}
