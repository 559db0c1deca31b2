package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/dkwarude-cell/smartheal-sub001/internal/models"
	"github.com/dkwarude-cell/smartheal-sub001/internal/services"
)

const maxProtocolSizeBytes = 25 * 1024 * 1024

type protocolApplicationService interface {
	CreateProtocol(
		ctx context.Context,
		coachID int64,
		input services.CreateProtocolInput,
	) (*models.RecoveryProtocol, error)
	ListForCoach(ctx context.Context, coachID int64) ([]models.RecoveryProtocol, error)
	ListForAthlete(ctx context.Context, athleteID int64) ([]models.RecoveryProtocol, error)
	GetDownloadURL(ctx context.Context, actorID int64, role string, protocolID int64) (string, error)
}

type ProtocolHandler struct {
	service protocolApplicationService
}

func NewProtocolHandler(service protocolApplicationService) *ProtocolHandler {
	return &ProtocolHandler{service: service}
}

func (h *ProtocolHandler) CreateProtocol(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleCoach {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	coachID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	athleteID, err := strconv.ParseInt(strings.TrimSpace(c.FormValue("athlete_id")), 10, 64)
	if err != nil || athleteID <= 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "athlete_id must be a positive integer"})
	}

	var sessionID *int64
	if raw := strings.TrimSpace(c.FormValue("session_id")); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"error": "session_id must be a positive integer"})
		}
		sessionID = &parsed
	}

	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
	}

	var description *string
	if rawDescription := c.FormValue("description"); rawDescription != "" {
		description = &rawDescription
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
	}
	if fileHeader.Size <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is empty"})
	}
	if fileHeader.Size > maxProtocolSizeBytes {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file exceeds 25MB limit"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to open file"})
	}
	defer file.Close()

	protocol, err := h.service.CreateProtocol(c.Context(), coachID, services.CreateProtocolInput{
		AthleteID:   athleteID,
		SessionID:   sessionID,
		Title:       title,
		Description: description,
		File:        file,
		Filename:    fileHeader.Filename,
	})
	if err != nil {
		return mapProtocolError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"protocol": protocol})
}

func (h *ProtocolHandler) ListProtocols(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || (role != models.RoleCoach && role != models.RoleAthlete) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	actorID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var protocols []models.RecoveryProtocol
	if role == models.RoleCoach {
		protocols, err = h.service.ListForCoach(c.Context(), actorID)
	} else {
		protocols, err = h.service.ListForAthlete(c.Context(), actorID)
	}
	if err != nil {
		return mapProtocolError(c, err)
	}

	return c.JSON(fiber.Map{"protocols": protocols})
}

func (h *ProtocolHandler) DownloadProtocol(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || (role != models.RoleCoach && role != models.RoleAthlete) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	actorID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	protocolID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || protocolID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid protocol id"})
	}

	signedURL, err := h.service.GetDownloadURL(c.Context(), actorID, role, protocolID)
	if err != nil {
		return mapProtocolError(c, err)
	}

	return c.JSON(fiber.Map{"download_url": signedURL, "expires_in_seconds": 3600})
}

func mapProtocolError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	case errors.Is(err, services.ErrAthleteNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Athlete not found"})
	case errors.Is(err, services.ErrStorageUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).
			JSON(fiber.Map{"error": "Storage service is not configured"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"error": "Protocol or related resource not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to process protocol request"})
	}
}
