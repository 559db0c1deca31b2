package handlers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/dkwarude-cell/smartheal-sub001/internal/models"
	"github.com/dkwarude-cell/smartheal-sub001/internal/repository"
)

type athleteOnboardingStore interface {
	UpdateOnboarding(ctx context.Context, userID int64, req repository.AthleteOnboardingInput) (*models.AthleteProfile, error)
}

type coachOnboardingStore interface {
	UpdateOnboarding(ctx context.Context, userID int64, req repository.CoachOnboardingInput) (*models.CoachProfile, error)
}

type healthOnboardingStore interface {
	UpdateOnboarding(ctx context.Context, userID int64, req repository.HealthOnboardingInput) (*models.HealthProfile, error)
}

type OnboardingHandler struct {
	athleteProfileRepo athleteOnboardingStore
	coachProfileRepo   coachOnboardingStore
	healthProfileRepo  healthOnboardingStore
}

func NewOnboardingHandler(
	athleteProfileRepo athleteOnboardingStore,
	coachProfileRepo coachOnboardingStore,
	healthProfileRepo healthOnboardingStore,
) *OnboardingHandler {
	return &OnboardingHandler{
		athleteProfileRepo: athleteProfileRepo,
		coachProfileRepo:   coachProfileRepo,
		healthProfileRepo:  healthProfileRepo,
	}
}

type athleteOnboardingRequest struct {
	FullName           string   `json:"full_name"`
	Age                int      `json:"age"`
	Sport              string   `json:"sport"`
	ExperienceLevel    string   `json:"experience_level"`
	Goals              []string `json:"goals"`
	WeeklyTrainingDays int      `json:"weekly_training_days"`
	TotalWeeks         int      `json:"total_weeks"`
}

type coachOnboardingRequest struct {
	FullName  string `json:"full_name"`
	Bio       string `json:"bio"`
	Specialty string `json:"specialty"`
	TeamName  string `json:"team_name"`
}

type healthOnboardingRequest struct {
	FullName    string   `json:"full_name"`
	AgeGroup    string   `json:"age_group"`
	PrimaryGoal string   `json:"primary_goal"`
	PainAreas   []string `json:"pain_areas"`
	PainLevel   int      `json:"pain_level"`
}

func (h *OnboardingHandler) AthleteOnboarding(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleAthlete {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req athleteOnboardingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateAthleteOnboardingRequest(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	profile, err := h.athleteProfileRepo.UpdateOnboarding(c.Context(), userID, repository.AthleteOnboardingInput{
		FullName:           req.FullName,
		Age:                req.Age,
		Sport:              req.Sport,
		ExperienceLevel:    req.ExperienceLevel,
		Goals:              req.Goals,
		WeeklyTrainingDays: req.WeeklyTrainingDays,
		TotalWeeks:         req.TotalWeeks,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{
		"profile":             profile,
		"onboarding_complete": profile.OnboardingComplete,
	})
}

func (h *OnboardingHandler) CoachOnboarding(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleCoach {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req coachOnboardingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateCoachOnboardingRequest(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	profile, err := h.coachProfileRepo.UpdateOnboarding(c.Context(), userID, repository.CoachOnboardingInput{
		FullName:  req.FullName,
		Bio:       req.Bio,
		Specialty: req.Specialty,
		TeamName:  req.TeamName,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{
		"profile":             profile,
		"onboarding_complete": profile.OnboardingComplete,
	})
}

func (h *OnboardingHandler) HealthOnboarding(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleHealth {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req healthOnboardingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateHealthOnboardingRequest(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	profile, err := h.healthProfileRepo.UpdateOnboarding(c.Context(), userID, repository.HealthOnboardingInput{
		FullName:    req.FullName,
		AgeGroup:    req.AgeGroup,
		PrimaryGoal: req.PrimaryGoal,
		PainAreas:   req.PainAreas,
		PainLevel:   req.PainLevel,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{
		"profile":             profile,
		"onboarding_complete": profile.OnboardingComplete,
	})
}

func parseAuthUserID(c *fiber.Ctx) (int64, error) {
	userIDValue := c.Locals("user_id")
	userIDStr, ok := userIDValue.(string)
	if !ok {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseInt(userIDStr, 10, 64)
}
