package handlers

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/dkwarude-cell/smartheal-sub001/internal/models"
	"github.com/dkwarude-cell/smartheal-sub001/internal/repository"
	"github.com/dkwarude-cell/smartheal-sub001/internal/services"
)

const maxAvatarSizeBytes = 5 * 1024 * 1024

type athleteProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.AthleteProfile, error)
	UpdateAvatar(ctx context.Context, userID int64, avatarURL string) error
	UpdateCheckIn(ctx context.Context, userID int64, input repository.AthleteCheckInInput) (*models.AthleteProfile, error)
}

type coachProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.CoachProfile, error)
	UpdateAvatar(ctx context.Context, userID int64, avatarURL string) error
}

type healthProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.HealthProfile, error)
	UpdateAvatar(ctx context.Context, userID int64, avatarURL string) error
}

type ProfileHandler struct {
	athleteProfileRepo athleteProfileStore
	coachProfileRepo   coachProfileStore
	healthProfileRepo  healthProfileStore
	storageService     services.StorageService
}

func NewProfileHandler(
	athleteProfileRepo athleteProfileStore,
	coachProfileRepo coachProfileStore,
	healthProfileRepo healthProfileStore,
	storageService services.StorageService,
) *ProfileHandler {
	return &ProfileHandler{
		athleteProfileRepo: athleteProfileRepo,
		coachProfileRepo:   coachProfileRepo,
		healthProfileRepo:  healthProfileRepo,
		storageService:     storageService,
	}
}

type checkInRequest struct {
	Soreness int               `json:"soreness"`
	HRV      *int              `json:"hrv"`
	Sleep    *models.SleepData `json:"sleep"`
}

// GetProfile returns the caller's role-specific profile.
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	userID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var profile any
	var onboardingComplete bool
	switch role {
	case models.RoleAthlete:
		p, err := h.athleteProfileRepo.GetByUserID(c.Context(), userID)
		if err != nil {
			return mapProfileLookupError(c, err)
		}
		profile, onboardingComplete = p, p.OnboardingComplete
	case models.RoleCoach:
		p, err := h.coachProfileRepo.GetByUserID(c.Context(), userID)
		if err != nil {
			return mapProfileLookupError(c, err)
		}
		profile, onboardingComplete = p, p.OnboardingComplete
	case models.RoleHealth:
		p, err := h.healthProfileRepo.GetByUserID(c.Context(), userID)
		if err != nil {
			return mapProfileLookupError(c, err)
		}
		profile, onboardingComplete = p, p.OnboardingComplete
	default:
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	return c.JSON(fiber.Map{
		"profile":             profile,
		"onboarding_complete": onboardingComplete,
	})
}

// CheckIn stores the athlete's subjective recovery inputs; the next
// dashboard read folds them into the recovery score.
func (h *ProfileHandler) CheckIn(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != models.RoleAthlete {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req checkInRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateCheckInRequest(req); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	profile, err := h.athleteProfileRepo.UpdateCheckIn(c.Context(), userID, repository.AthleteCheckInInput{
		Soreness:  req.Soreness,
		HRV:       req.HRV,
		SleepData: req.Sleep,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save check-in"})
	}

	return c.JSON(fiber.Map{"profile": profile})
}

func (h *ProfileHandler) UploadAvatar(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	if h.storageService == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Storage service is not configured"})
	}

	userID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar file is required"})
	}
	if fileHeader.Size <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar file is empty"})
	}
	if fileHeader.Size > maxAvatarSizeBytes {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar file exceeds 5MB limit"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to open avatar file"})
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar must be a jpg, jpeg, png, or webp file"})
	}

	filename := fmt.Sprintf("%d-%d%s", userID, time.Now().UnixNano(), ext)
	avatarURL, err := h.storageService.UploadFile(c.Context(), file, filename, "avatars")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to upload avatar"})
	}

	previousURL, err := h.currentAvatarURL(c.Context(), role, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch profile"})
	}
	if previousURL != "" && previousURL != avatarURL {
		_ = h.storageService.DeleteFile(c.Context(), previousURL)
	}

	switch role {
	case models.RoleAthlete:
		err = h.athleteProfileRepo.UpdateAvatar(c.Context(), userID, avatarURL)
	case models.RoleCoach:
		err = h.coachProfileRepo.UpdateAvatar(c.Context(), userID, avatarURL)
	case models.RoleHealth:
		err = h.healthProfileRepo.UpdateAvatar(c.Context(), userID, avatarURL)
	default:
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{"avatar_url": avatarURL})
}

func (h *ProfileHandler) currentAvatarURL(ctx context.Context, role string, userID int64) (string, error) {
	var avatarURL *string
	switch role {
	case models.RoleAthlete:
		profile, err := h.athleteProfileRepo.GetByUserID(ctx, userID)
		if err != nil {
			return "", err
		}
		avatarURL = profile.AvatarURL
	case models.RoleCoach:
		profile, err := h.coachProfileRepo.GetByUserID(ctx, userID)
		if err != nil {
			return "", err
		}
		avatarURL = profile.AvatarURL
	case models.RoleHealth:
		profile, err := h.healthProfileRepo.GetByUserID(ctx, userID)
		if err != nil {
			return "", err
		}
		avatarURL = profile.AvatarURL
	}
	if avatarURL == nil {
		return "", nil
	}
	return *avatarURL, nil
}
