package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dkwarude-cell/smartheal-sub001/internal/models"
)

type stubRoster struct {
	athletes []models.AthleteProfile
	err      error
}

func (s *stubRoster) ListByCoachID(_ context.Context, _ int64) ([]models.AthleteProfile, error) {
	return s.athletes, s.err
}

type stubAlertPublisher struct {
	lastCoachID int64
	lastAlerts  []models.PriorityAlert
	calls       int
}

func (p *stubAlertPublisher) PublishAlerts(coachID int64, alerts []models.PriorityAlert) {
	p.calls++
	p.lastCoachID = coachID
	p.lastAlerts = alerts
}

func teamAthlete(userID int64, readiness, compliance, streak int) models.AthleteProfile {
	name := "Test Athlete"
	return models.AthleteProfile{
		UserID:     userID,
		FullName:   &name,
		Readiness:  readiness,
		Compliance: compliance,
		Streak:     streak,
	}
}

func TestGetTeamOverviewAggregatesAndPublishes(t *testing.T) {
	lastSession := time.Now().UTC().AddDate(0, 0, -3)
	struggling := teamAthlete(2, 60, 60, 0)
	struggling.LastSessionDate = &lastSession

	publisher := &stubAlertPublisher{}
	service := NewTeamService(&stubRoster{
		athletes: []models.AthleteProfile{
			teamAthlete(1, 90, 95, 5),
			struggling,
		},
	}, publisher)

	overview, err := service.GetTeamOverview(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetTeamOverview: %v", err)
	}

	if overview.Metrics.ActiveAthletes != 1 {
		t.Fatalf("expected 1 active athlete, got %d", overview.Metrics.ActiveAthletes)
	}
	if overview.Metrics.AtRiskCount != 1 {
		t.Fatalf("expected 1 at-risk athlete, got %d", overview.Metrics.AtRiskCount)
	}
	if len(overview.Alerts) != 3 {
		t.Fatalf("expected 3 alerts for the struggling athlete, got %d", len(overview.Alerts))
	}

	if publisher.calls != 1 {
		t.Fatalf("expected 1 publish, got %d", publisher.calls)
	}
	if publisher.lastCoachID != 7 {
		t.Fatalf("expected publish for coach 7, got %d", publisher.lastCoachID)
	}
	if len(publisher.lastAlerts) != len(overview.Alerts) {
		t.Fatalf("published alerts differ from returned alerts")
	}
}

func TestGetTeamOverviewQuietTeamSkipsPublish(t *testing.T) {
	publisher := &stubAlertPublisher{}
	service := NewTeamService(&stubRoster{
		athletes: []models.AthleteProfile{teamAthlete(1, 95, 95, 3)},
	}, publisher)

	overview, err := service.GetTeamOverview(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetTeamOverview: %v", err)
	}
	if len(overview.Alerts) != 0 {
		t.Fatalf("expected no alerts, got %+v", overview.Alerts)
	}
	if publisher.calls != 0 {
		t.Fatalf("expected no publish for a quiet team, got %d", publisher.calls)
	}
}

func TestGetTeamOverviewWithoutPublisher(t *testing.T) {
	lastSession := time.Now().UTC().AddDate(0, 0, -5)
	athlete := teamAthlete(3, 50, 50, 0)
	athlete.LastSessionDate = &lastSession

	service := NewTeamService(&stubRoster{athletes: []models.AthleteProfile{athlete}}, nil)
	if _, err := service.GetTeamOverview(context.Background(), 1); err != nil {
		t.Fatalf("GetTeamOverview without publisher: %v", err)
	}
}

func TestGetTeamOverviewPropagatesRosterError(t *testing.T) {
	rosterErr := errors.New("roster unavailable")
	service := NewTeamService(&stubRoster{err: rosterErr}, nil)

	if _, err := service.GetTeamOverview(context.Background(), 1); !errors.Is(err, rosterErr) {
		t.Fatalf("expected roster error, got %v", err)
	}
}

func TestGetTeamOverviewEmptyRoster(t *testing.T) {
	service := NewTeamService(&stubRoster{}, &stubAlertPublisher{})

	overview, err := service.GetTeamOverview(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetTeamOverview: %v", err)
	}
	if overview.Metrics != (models.TeamMetrics{}) {
		t.Fatalf("expected zero metrics for empty roster, got %+v", overview.Metrics)
	}
}
