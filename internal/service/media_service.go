package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/planningkart/planningkart/internal/models"
	"github.com/planningkart/planningkart/internal/repository"
	"github.com/planningkart/planningkart/pkg/storage"
)

const (
	// MaxMediaFileSize is the per-file upload cap (10MB).
	MaxMediaFileSize = 10 * 1024 * 1024
	// MaxMediaPerEvent caps uploaded items on one event.
	MaxMediaPerEvent = 10
)

var (
	ErrUnsupportedMediaType = errors.New("unsupported image type, allowed types are jpeg, png and webp")
	ErrMediaTooLarge        = errors.New("file exceeds the 10MB limit")
	ErrMediaLimitReached    = fmt.Errorf("an event can have at most %d images", MaxMediaPerEvent)
)

var allowedMimeTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type MediaService struct {
	mediaRepo *repository.MediaRepository
	eventRepo *repository.EventRepository
	userRepo  *repository.UserRepository
	store     storage.Storage
	logger    *zap.Logger
}

func NewMediaService(
	mediaRepo *repository.MediaRepository,
	eventRepo *repository.EventRepository,
	userRepo *repository.UserRepository,
	store storage.Storage,
	logger *zap.Logger,
) *MediaService {
	return &MediaService{
		mediaRepo: mediaRepo,
		eventRepo: eventRepo,
		userRepo:  userRepo,
		store:     store,
		logger:    logger,
	}
}

// Upload validates the file, stores it and records the media row. The
// first image on an event becomes its primary automatically.
func (s *MediaService) Upload(ctx context.Context, eventID, userID uint, fileName, mimeType string, size int64, src io.Reader) (*models.EventMedia, error) {
	if _, err := s.ownedEvent(eventID, userID); err != nil {
		return nil, err
	}

	ext, ok := allowedMimeTypes[mimeType]
	if !ok {
		return nil, ErrUnsupportedMediaType
	}
	if size > MaxMediaFileSize {
		return nil, ErrMediaTooLarge
	}

	count, err := s.mediaRepo.CountByEventID(eventID)
	if err != nil {
		return nil, err
	}
	if count >= MaxMediaPerEvent {
		return nil, ErrMediaLimitReached
	}

	key := fmt.Sprintf("events/%d/%s%s", eventID, uuid.New().String(), ext)
	if err := s.store.Upload(ctx, key, src, size, mimeType); err != nil {
		s.logger.Error("media upload to storage failed",
			zap.Uint("event_id", eventID),
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, err
	}

	media := &models.EventMedia{
		EventID:      eventID,
		URL:          s.store.PublicURL(key),
		FileName:     path.Base(fileName),
		FileSize:     size,
		MimeType:     mimeType,
		StorageKey:   key,
		IsPrimary:    count == 0,
		DisplayOrder: int(count),
	}

	if err := s.mediaRepo.Create(media); err != nil {
		// Storage object is orphaned if this fails; best effort cleanup.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.logger.Warn("failed to clean up orphaned media object",
				zap.String("key", key),
				zap.Error(delErr),
			)
		}
		return nil, err
	}

	return media, nil
}

func (s *MediaService) GetEventMedia(eventID uint) ([]models.EventMedia, error) {
	return s.mediaRepo.GetByEventID(eventID)
}

func (s *MediaService) Delete(ctx context.Context, eventID, mediaID, userID uint) error {
	if _, err := s.ownedEvent(eventID, userID); err != nil {
		return err
	}

	media, err := s.mediaRepo.GetByID(mediaID)
	if err != nil {
		return err
	}
	if media.EventID != eventID {
		return errors.New("media does not belong to this event")
	}

	if err := s.mediaRepo.Delete(mediaID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, media.StorageKey); err != nil {
		s.logger.Warn("failed to delete media object from storage",
			zap.String("key", media.StorageKey),
			zap.Error(err),
		)
	}
	return nil
}

// SetPrimary makes the given item the event's cover image. Exclusivity is
// enforced transactionally in the repository.
func (s *MediaService) SetPrimary(eventID, mediaID, userID uint) ([]models.EventMedia, error) {
	if _, err := s.ownedEvent(eventID, userID); err != nil {
		return nil, err
	}

	media, err := s.mediaRepo.GetByID(mediaID)
	if err != nil {
		return nil, err
	}
	if media.EventID != eventID {
		return nil, errors.New("media does not belong to this event")
	}

	if err := s.mediaRepo.SetPrimary(eventID, mediaID); err != nil {
		return nil, err
	}
	return s.mediaRepo.GetByEventID(eventID)
}

func (s *MediaService) ownedEvent(eventID, userID uint) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		return nil, err
	}
	organizer, err := s.userRepo.GetOrganizerByUserID(userID)
	if err != nil {
		return nil, ErrNotEventOwner
	}
	if event.OrganizerID != organizer.ID {
		return nil, ErrNotEventOwner
	}
	return event, nil
}
