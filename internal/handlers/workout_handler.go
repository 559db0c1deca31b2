package handlers

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/dkwarude-cell/smartheal-sub001/internal/models"
	"github.com/dkwarude-cell/smartheal-sub001/internal/repository"
)

type workoutStore interface {
	Create(ctx context.Context, input repository.CreateWorkoutInput) (*models.Workout, error)
	ListPage(ctx context.Context, userID int64, limit, offset int) ([]models.Workout, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
}

type WorkoutHandler struct {
	workoutRepo workoutStore
	validate    *validator.Validate
}

func NewWorkoutHandler(workoutRepo workoutStore) *WorkoutHandler {
	return &WorkoutHandler{
		workoutRepo: workoutRepo,
		validate:    validator.New(),
	}
}

type logWorkoutRequest struct {
	WorkoutDate  string   `json:"workout_date" validate:"required"`
	Type         string   `json:"type" validate:"required,oneof=running cycling swimming other"`
	DurationMin  int      `json:"duration_min" validate:"required,gt=0"`
	DistanceKM   float64  `json:"distance_km" validate:"gte=0"`
	Intensity    string   `json:"intensity" validate:"required,oneof=low moderate high very_high"`
	PaceMinPerKM *float64 `json:"pace_min_per_km" validate:"omitempty,gt=0"`
}

func (h *WorkoutHandler) LogWorkout(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleAthlete {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req logWorkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	workoutDate, err := time.Parse(time.RFC3339, strings.TrimSpace(req.WorkoutDate))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "workout_date must be a valid RFC3339 timestamp"})
	}
	if workoutDate.After(time.Now().Add(time.Minute)) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "workout_date must not be in the future"})
	}

	workout, err := h.workoutRepo.Create(c.Context(), repository.CreateWorkoutInput{
		UserID:       userID,
		WorkoutDate:  workoutDate.UTC(),
		Type:         req.Type,
		DurationMin:  req.DurationMin,
		DistanceKM:   req.DistanceKM,
		Intensity:    req.Intensity,
		PaceMinPerKM: req.PaceMinPerKM,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to log workout"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"workout": workout})
}

func (h *WorkoutHandler) ListWorkouts(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleAthlete {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	page, limit, ok := parsePageQuery(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "page and limit must be positive integers"})
	}

	workouts, err := h.workoutRepo.ListPage(c.Context(), userID, limit, (page-1)*limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list workouts"})
	}
	total, err := h.workoutRepo.CountByUser(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list workouts"})
	}

	return c.JSON(fiber.Map{
		"workouts":   workouts,
		"pagination": buildPaginationMeta(page, limit, total),
	})
}

func parsePageQuery(c *fiber.Ctx) (page, limit int, ok bool) {
	page = 1
	limit = defaultPageLimit

	if raw := strings.TrimSpace(c.Query("page")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return 0, 0, false
		}
		page = parsed
	}
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return 0, 0, false
		}
		limit = parsed
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit, true
}
