package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/dkwarude-cell/smartheal-sub001/internal/models"
	"github.com/dkwarude-cell/smartheal-sub001/internal/repository"
	"github.com/dkwarude-cell/smartheal-sub001/internal/services"
)

type stubSessionService struct {
	scheduleResult     *models.TherapySession
	scheduleErr        error
	listResult         []models.TherapySession
	listErr            error
	getResult          *models.TherapySession
	getErr             error
	updateStatusResult *models.TherapySession
	updateStatusErr    error
	completeResult     *models.TherapySession
	completeErr        error
	lastScheduleInput  services.ScheduleSessionInput
	lastCompleteInput  services.CompleteSessionInput
	lastUserID         int64
	lastSessionID      int64
	lastStatus         string
	lastListFilter     repository.SessionListFilter
}

func (s *stubSessionService) Schedule(_ context.Context, userID int64, input services.ScheduleSessionInput) (*models.TherapySession, error) {
	s.lastUserID = userID
	s.lastScheduleInput = input
	return s.scheduleResult, s.scheduleErr
}

func (s *stubSessionService) List(_ context.Context, userID int64, filter repository.SessionListFilter) ([]models.TherapySession, error) {
	s.lastUserID = userID
	s.lastListFilter = filter
	return s.listResult, s.listErr
}

func (s *stubSessionService) Get(_ context.Context, userID int64, sessionID int64) (*models.TherapySession, error) {
	s.lastUserID = userID
	s.lastSessionID = sessionID
	return s.getResult, s.getErr
}

func (s *stubSessionService) UpdateStatus(_ context.Context, userID int64, sessionID int64, requestedStatus string) (*models.TherapySession, error) {
	s.lastUserID = userID
	s.lastSessionID = sessionID
	s.lastStatus = requestedStatus
	return s.updateStatusResult, s.updateStatusErr
}

func (s *stubSessionService) Complete(_ context.Context, userID int64, sessionID int64, input services.CompleteSessionInput) (*models.TherapySession, error) {
	s.lastUserID = userID
	s.lastSessionID = sessionID
	s.lastCompleteInput = input
	return s.completeResult, s.completeErr
}

func newSessionTestApp(handler *SessionHandler, role, userID string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("role", role)
		c.Locals("user_id", userID)
		return c.Next()
	})
	app.Post("/api/v1/sessions", handler.ScheduleSession)
	app.Get("/api/v1/sessions", handler.ListSessions)
	app.Get("/api/v1/sessions/:id", handler.GetSession)
	app.Patch("/api/v1/sessions/:id/status", handler.UpdateStatus)
	app.Post("/api/v1/sessions/:id/complete", handler.CompleteSession)
	return app
}

func TestScheduleSessionReturnsCreatedSession(t *testing.T) {
	service := &stubSessionService{
		scheduleResult: &models.TherapySession{
			ID:          91,
			UserID:      42,
			Name:        "Knee recovery",
			Status:      models.SessionScheduled,
			DurationMin: 30,
		},
	}
	handler := &SessionHandler{service: service}
	app := newSessionTestApp(handler, models.RoleAthlete, "42")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", strings.NewReader(`{
		"name": "Knee recovery",
		"type": "pain_relief",
		"scheduled_at": "2030-03-15T09:00:00Z",
		"duration_min": 30,
		"body_part": "knee",
		"intensity_level": 5,
		"mode": "guided"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastUserID != 42 {
		t.Fatalf("expected user id 42, got %d", service.lastUserID)
	}
	if service.lastScheduleInput.Name != "Knee recovery" {
		t.Fatalf("unexpected name: %q", service.lastScheduleInput.Name)
	}
	want := time.Date(2030, 3, 15, 9, 0, 0, 0, time.UTC)
	if !service.lastScheduleInput.ScheduledAt.Equal(want) {
		t.Fatalf("unexpected scheduled_at: %v", service.lastScheduleInput.ScheduledAt)
	}

	var body struct {
		Session models.TherapySession `json:"session"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Session.ID != 91 {
		t.Fatalf("expected session id 91, got %d", body.Session.ID)
	}
}

func TestScheduleSessionRejectsCoach(t *testing.T) {
	service := &stubSessionService{}
	handler := &SessionHandler{service: service}
	app := newSessionTestApp(handler, models.RoleCoach, "7")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestScheduleSessionRejectsBadTimestamp(t *testing.T) {
	service := &stubSessionService{}
	handler := &SessionHandler{service: service}
	app := newSessionTestApp(handler, models.RoleAthlete, "42")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", strings.NewReader(`{
		"name": "Knee recovery",
		"type": "pain_relief",
		"scheduled_at": "tomorrow",
		"duration_min": 30,
		"intensity_level": 5,
		"mode": "guided"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestListSessionsPassesFilter(t *testing.T) {
	service := &stubSessionService{listResult: []models.TherapySession{}}
	handler := &SessionHandler{service: service}
	app := newSessionTestApp(handler, models.RoleHealth, "9")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions?status=scheduled&timeframe=upcoming", nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastListFilter.Status != "scheduled" || service.lastListFilter.Timeframe != "upcoming" {
		t.Fatalf("unexpected filter: %+v", service.lastListFilter)
	}
}

func TestListSessionsRejectsBadTimeframe(t *testing.T) {
	service := &stubSessionService{}
	handler := &SessionHandler{service: service}
	app := newSessionTestApp(handler, models.RoleAthlete, "42")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions?timeframe=someday", nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestUpdateStatusMapsServiceErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid status", services.ErrInvalidStatus, http.StatusBadRequest},
		{"forbidden", services.ErrForbidden, http.StatusForbidden},
		{"illegal transition", services.ErrInvalidStateTransition, http.StatusUnprocessableEntity},
		{"missing session", pgx.ErrNoRows, http.StatusNotFound},
	}

	for _, tc := range cases {
		service := &stubSessionService{updateStatusErr: tc.err}
		handler := &SessionHandler{service: service}
		app := newSessionTestApp(handler, models.RoleAthlete, "42")

		req := httptest.NewRequest(http.MethodPatch, "/api/v1/sessions/5/status", strings.NewReader(`{"status":"start"}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: app.Test: %v", tc.name, err)
		}
		resp.Body.Close()

		if resp.StatusCode != tc.wantStatus {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.wantStatus, resp.StatusCode)
		}
	}
}

func TestCompleteSessionPassesOutcome(t *testing.T) {
	service := &stubSessionService{
		completeResult: &models.TherapySession{ID: 5, UserID: 42, Status: models.SessionCompleted},
	}
	handler := &SessionHandler{service: service}
	app := newSessionTestApp(handler, models.RoleAthlete, "42")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/5/complete", strings.NewReader(`{
		"pain_before": 7,
		"pain_after": 3
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastSessionID != 5 {
		t.Fatalf("expected session id 5, got %d", service.lastSessionID)
	}
	if service.lastCompleteInput.PainBefore == nil || *service.lastCompleteInput.PainBefore != 7 {
		t.Fatalf("unexpected pain_before: %+v", service.lastCompleteInput.PainBefore)
	}
	if service.lastCompleteInput.Effectiveness != nil {
		t.Fatalf("effectiveness should stay unset, got %+v", service.lastCompleteInput.Effectiveness)
	}
}

func TestGetSessionRejectsBadID(t *testing.T) {
	service := &stubSessionService{}
	handler := &SessionHandler{service: service}
	app := newSessionTestApp(handler, models.RoleAthlete, "42")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/abc", nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
