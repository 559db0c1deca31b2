package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/dkwarude-cell/smartheal-sub001/internal/models"
	"github.com/dkwarude-cell/smartheal-sub001/internal/services"
)

type teamApplicationService interface {
	GetTeamOverview(ctx context.Context, coachID int64) (*services.TeamOverview, error)
	GetAlerts(ctx context.Context, coachID int64) ([]models.PriorityAlert, error)
}

type teamUserReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type coachAssigner interface {
	AssignCoach(ctx context.Context, userID, coachID int64) error
}

type TeamHandler struct {
	service     teamApplicationService
	userRepo    teamUserReader
	athleteRepo coachAssigner
}

func NewTeamHandler(
	service *services.TeamService,
	userRepo teamUserReader,
	athleteRepo coachAssigner,
) *TeamHandler {
	return &TeamHandler{
		service:     service,
		userRepo:    userRepo,
		athleteRepo: athleteRepo,
	}
}

type addAthleteRequest struct {
	AthleteID int64 `json:"athlete_id"`
}

func coachActor(c *fiber.Ctx) (int64, bool) {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleCoach {
		return 0, false
	}
	coachID, err := parseAuthUserID(c)
	if err != nil {
		return 0, false
	}
	return coachID, true
}

func (h *TeamHandler) GetOverview(c *fiber.Ctx) error {
	coachID, ok := coachActor(c)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	overview, err := h.service.GetTeamOverview(c.Context(), coachID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build team overview"})
	}

	return c.JSON(fiber.Map{"overview": overview})
}

func (h *TeamHandler) GetAlerts(c *fiber.Ctx) error {
	coachID, ok := coachActor(c)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	alerts, err := h.service.GetAlerts(c.Context(), coachID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute alerts"})
	}

	return c.JSON(fiber.Map{"alerts": alerts})
}

// AddAthlete links an athlete to the calling coach's roster.
func (h *TeamHandler) AddAthlete(c *fiber.Ctx) error {
	coachID, ok := coachActor(c)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	var req addAthleteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.AthleteID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "athlete_id must be greater than 0"})
	}

	user, err := h.userRepo.GetByID(c.Context(), req.AthleteID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Athlete not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to lookup athlete"})
	}
	if user.Role != models.RoleAthlete {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user is not an athlete"})
	}

	if err := h.athleteRepo.AssignCoach(c.Context(), req.AthleteID, coachID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add athlete"})
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}
