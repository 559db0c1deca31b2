package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dkwarude-cell/smartheal-sub001/internal/models"
	"github.com/dkwarude-cell/smartheal-sub001/internal/repository"
)

var (
	ErrStorageUnavailable = errors.New("storage service is not configured")
	ErrAthleteNotFound    = errors.New("athlete not found")
)

type protocolStore interface {
	Create(ctx context.Context, input repository.CreateProtocolInput) (*models.RecoveryProtocol, error)
	GetByID(ctx context.Context, protocolID int64) (*models.RecoveryProtocol, error)
	ListByCoachID(ctx context.Context, coachID int64) ([]models.RecoveryProtocol, error)
	ListByAthleteID(ctx context.Context, athleteID int64) ([]models.RecoveryProtocol, error)
}

type protocolSessionReader interface {
	GetByID(ctx context.Context, sessionID int64) (*models.TherapySession, error)
}

type ProtocolService struct {
	protocolRepo   protocolStore
	athleteRepo    athleteProfileReader
	sessionRepo    protocolSessionReader
	storageService StorageService
}

type CreateProtocolInput struct {
	AthleteID   int64
	SessionID   *int64
	Title       string
	Description *string
	File        multipart.File
	Filename    string
}

func NewProtocolService(
	protocolRepo *repository.ProtocolRepository,
	athleteRepo *repository.AthleteProfileRepository,
	sessionRepo *repository.SessionRepository,
	storageService StorageService,
) *ProtocolService {
	return &ProtocolService{
		protocolRepo:   protocolRepo,
		athleteRepo:    athleteRepo,
		sessionRepo:    sessionRepo,
		storageService: storageService,
	}
}

// CreateProtocol uploads a protocol document for one of the coach's
// athletes. The upload is cleaned up again when the database insert fails.
func (s *ProtocolService) CreateProtocol(
	ctx context.Context,
	coachID int64,
	input CreateProtocolInput,
) (*models.RecoveryProtocol, error) {
	if s.storageService == nil {
		return nil, ErrStorageUnavailable
	}
	if coachID <= 0 || input.AthleteID <= 0 || input.File == nil {
		return nil, ErrInvalidInput
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrInvalidInput
	}

	var description *string
	if input.Description != nil {
		trimmed := strings.TrimSpace(*input.Description)
		if trimmed == "" {
			return nil, ErrInvalidInput
		}
		description = &trimmed
	}

	athlete, err := s.athleteRepo.GetByUserID(ctx, input.AthleteID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAthleteNotFound
		}
		return nil, err
	}
	if athlete.CoachID == nil || *athlete.CoachID != coachID {
		return nil, ErrForbidden
	}

	if input.SessionID != nil {
		session, err := s.sessionRepo.GetByID(ctx, *input.SessionID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrInvalidInput
			}
			return nil, err
		}
		if session.UserID != input.AthleteID {
			return nil, ErrInvalidInput
		}
	}

	filename := fmt.Sprintf(
		"coach-%d-athlete-%d-%d%s",
		coachID,
		input.AthleteID,
		time.Now().UnixNano(),
		strings.ToLower(filepath.Ext(input.Filename)),
	)
	fileURL, err := s.storageService.UploadFile(ctx, input.File, filename, "protocols")
	if err != nil {
		return nil, fmt.Errorf("upload protocol: %w", err)
	}

	protocol, err := s.protocolRepo.Create(ctx, repository.CreateProtocolInput{
		CoachID:     coachID,
		AthleteID:   input.AthleteID,
		SessionID:   input.SessionID,
		Title:       title,
		Description: description,
		FileURL:     fileURL,
	})
	if err != nil {
		if cleanupErr := s.storageService.DeleteFile(ctx, fileURL); cleanupErr != nil {
			return nil, fmt.Errorf("create protocol: %w (cleanup failed: %v)", err, cleanupErr)
		}
		return nil, fmt.Errorf("create protocol: %w", err)
	}

	return protocol, nil
}

func (s *ProtocolService) ListForCoach(ctx context.Context, coachID int64) ([]models.RecoveryProtocol, error) {
	return s.protocolRepo.ListByCoachID(ctx, coachID)
}

func (s *ProtocolService) ListForAthlete(ctx context.Context, athleteID int64) ([]models.RecoveryProtocol, error) {
	return s.protocolRepo.ListByAthleteID(ctx, athleteID)
}

// GetDownloadURL returns a signed URL for the protocol file; only the
// uploading coach and the target athlete may fetch it.
func (s *ProtocolService) GetDownloadURL(
	ctx context.Context,
	actorID int64,
	role string,
	protocolID int64,
) (string, error) {
	if s.storageService == nil {
		return "", ErrStorageUnavailable
	}

	protocol, err := s.protocolRepo.GetByID(ctx, protocolID)
	if err != nil {
		return "", err
	}

	switch role {
	case models.RoleCoach:
		if protocol.CoachID != actorID {
			return "", ErrForbidden
		}
	case models.RoleAthlete:
		if protocol.AthleteID != actorID {
			return "", ErrForbidden
		}
	default:
		return "", ErrForbidden
	}

	return s.storageService.GetSignedURL(ctx, protocol.FileURL)
}
