package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/dkwarude-cell/smartheal-sub001/internal/models"
	"github.com/dkwarude-cell/smartheal-sub001/internal/services"
)

type wellnessApplicationService interface {
	GetSummary(ctx context.Context, userID int64) (*services.WellnessSummary, error)
	ListTasks(ctx context.Context) ([]models.DailyTask, error)
	CompleteTask(ctx context.Context, userID int64, taskID string) (*models.DailyProgress, error)
	LogPain(ctx context.Context, userID int64, input services.LogPainInput) (*models.PainEntry, error)
	ListPainHistory(ctx context.Context, userID int64, page, limit int) ([]models.PainEntry, int, error)
}

type WellnessHandler struct {
	service wellnessApplicationService
}

func NewWellnessHandler(service *services.WellnessService) *WellnessHandler {
	return &WellnessHandler{service: service}
}

type completeTaskRequest struct {
	TaskID string `json:"task_id"`
}

type logPainRequest struct {
	Level int      `json:"level"`
	Areas []string `json:"areas"`
	Notes *string  `json:"notes"`
}

func healthActor(c *fiber.Ctx) (int64, bool) {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleHealth {
		return 0, false
	}
	userID, err := parseAuthUserID(c)
	if err != nil {
		return 0, false
	}
	return userID, true
}

func (h *WellnessHandler) GetSummary(c *fiber.Ctx) error {
	userID, ok := healthActor(c)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	summary, err := h.service.GetSummary(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build wellness summary"})
	}

	return c.JSON(fiber.Map{"summary": summary})
}

func (h *WellnessHandler) ListTasks(c *fiber.Ctx) error {
	if _, ok := healthActor(c); !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	tasks, err := h.service.ListTasks(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list tasks"})
	}

	return c.JSON(fiber.Map{"tasks": tasks})
}

func (h *WellnessHandler) CompleteTask(c *fiber.Ctx) error {
	userID, ok := healthActor(c)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	var req completeTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	progress, err := h.service.CompleteTask(c.Context(), userID, req.TaskID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "task_id is required"})
		case errors.Is(err, services.ErrTaskNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to complete task"})
		}
	}

	return c.JSON(fiber.Map{"progress": progress})
}

func (h *WellnessHandler) LogPain(c *fiber.Ctx) error {
	userID, ok := healthActor(c)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	var req logPainRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Notes != nil && strings.TrimSpace(*req.Notes) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "notes must not be empty"})
	}

	entry, err := h.service.LogPain(c.Context(), userID, services.LogPainInput{
		Level: req.Level,
		Areas: req.Areas,
		Notes: req.Notes,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "level must be between 0 and 10 and areas must not be empty"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to log pain"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"entry": entry})
}

func (h *WellnessHandler) ListPainHistory(c *fiber.Ctx) error {
	userID, ok := healthActor(c)
	if !ok {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	page, limit, ok := parsePageQuery(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "page and limit must be positive integers"})
	}

	entries, total, err := h.service.ListPainHistory(c.Context(), userID, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list pain history"})
	}

	return c.JSON(fiber.Map{
		"entries":    entries,
		"pagination": buildPaginationMeta(page, limit, total),
	})
}
