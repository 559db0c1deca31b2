package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/dkwarude-cell/smartheal-sub001/internal/models"
	"github.com/dkwarude-cell/smartheal-sub001/internal/services"
)

type dashboardApplicationService interface {
	GetAthleteDashboard(ctx context.Context, userID int64) (*services.AthleteDashboard, error)
}

type DashboardHandler struct {
	service dashboardApplicationService
}

func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) GetAthleteDashboard(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleAthlete {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	dashboard, err := h.service.GetAthleteDashboard(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build dashboard"})
	}

	return c.JSON(fiber.Map{"dashboard": dashboard})
}
