package service

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/planningkart/planningkart/internal/models"
	"github.com/planningkart/planningkart/internal/repository"
	"github.com/planningkart/planningkart/pkg/utils"
)

// Draft events are created with this title before the organizer has typed
// anything; validation refuses to mark such an event ready.
const PlaceholderTitle = "Untitled Event"

var (
	ErrNotEventOwner     = errors.New("you don't have permission to modify this event")
	ErrNotDraft          = errors.New("only draft events can be edited")
	ErrValidationFailed  = errors.New("event validation failed")
	ErrInvalidTransition = errors.New("invalid status transition")
)

type EventService struct {
	eventRepo *repository.EventRepository
	userRepo  *repository.UserRepository
	mediaRepo *repository.MediaRepository
	planRepo  *repository.PlanRepository
	logger    *zap.Logger
}

func NewEventService(
	eventRepo *repository.EventRepository,
	userRepo *repository.UserRepository,
	mediaRepo *repository.MediaRepository,
	planRepo *repository.PlanRepository,
	logger *zap.Logger,
) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		userRepo:  userRepo,
		mediaRepo: mediaRepo,
		planRepo:  planRepo,
		logger:    logger,
	}
}

// CreateDraft opens a new DRAFT event for the organizer. An empty title is
// allowed on this first call, the placeholder keeps the slug derivable.
func (s *EventService) CreateDraft(userID uint, req models.CreateEventRequest) (*models.Event, error) {
	organizer, err := s.userRepo.GetOrganizerByUserID(userID)
	if err != nil {
		return nil, errors.New("organizer profile not found")
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = PlaceholderTitle
	}

	slug, err := s.uniqueSlug(title)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		OrganizerID:      organizer.ID,
		Title:            title,
		Slug:             slug,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		CategoryID:       req.CategoryID,
		DurationMinutes:  req.DurationMinutes,
		MinParticipants:  req.MinParticipants,
		MaxParticipants:  req.MaxParticipants,
		Difficulty:       req.Difficulty,
		IsFeatured:       req.IsFeatured,
		Status:           models.EventStatusDraft,
	}
	if req.AgeRestriction != nil {
		event.AgeRestriction = *req.AgeRestriction
	}

	created, err := s.eventRepo.Create(event)
	if err != nil {
		return nil, err
	}

	s.logger.Info("draft event created",
		zap.Uint("event_id", created.ID),
		zap.Uint("organizer_id", organizer.ID),
	)
	return created, nil
}

func (s *EventService) GetEvent(id uint) (*models.Event, error) {
	return s.eventRepo.GetByID(id)
}

func (s *EventService) GetOrganizerEvents(userID uint) ([]models.Event, error) {
	organizer, err := s.userRepo.GetOrganizerByUserID(userID)
	if err != nil {
		return nil, errors.New("organizer profile not found")
	}
	return s.eventRepo.GetByOrganizerID(organizer.ID)
}

func (s *EventService) GetPublishedEvents() ([]models.Event, error) {
	return s.eventRepo.GetPublished()
}

// UpdateDraft applies the full auto-save payload. Only DRAFT events are
// editable by their organizer; later statuses belong to the admin.
func (s *EventService) UpdateDraft(id, userID uint, req models.UpdateEventRequest) (*models.Event, error) {
	event, err := s.ownedEvent(id, userID)
	if err != nil {
		return nil, err
	}
	if event.Status != models.EventStatusDraft {
		return nil, ErrNotDraft
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) != "" && *req.Title != event.Title {
		event.Title = strings.TrimSpace(*req.Title)
		slug, err := s.uniqueSlug(event.Title)
		if err != nil {
			return nil, err
		}
		event.Slug = slug
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.ShortDescription != nil {
		event.ShortDescription = *req.ShortDescription
	}
	if req.CategoryID != nil {
		event.CategoryID = req.CategoryID
	}
	if req.DurationMinutes != nil {
		event.DurationMinutes = *req.DurationMinutes
	}
	if req.MinParticipants != nil {
		event.MinParticipants = *req.MinParticipants
	}
	if req.MaxParticipants != nil {
		event.MaxParticipants = *req.MaxParticipants
	}
	if req.AgeRestriction != nil {
		event.AgeRestriction = *req.AgeRestriction
	}
	if req.Difficulty != nil {
		event.Difficulty = *req.Difficulty
	}
	if req.IsFeatured != nil {
		event.IsFeatured = *req.IsFeatured
	}

	if err := s.eventRepo.Update(event); err != nil {
		return nil, err
	}
	return s.eventRepo.GetByID(id)
}

func (s *EventService) DeleteEvent(id, userID uint) error {
	if _, err := s.ownedEvent(id, userID); err != nil {
		return err
	}
	return s.eventRepo.Delete(id)
}

// Validate runs the submit-for-review gate: an event needs a real title,
// a category, a description, at least one media item and at least one plan
// before it can be marked READY.
func (s *EventService) Validate(id, userID uint) (*models.ValidationResult, error) {
	event, err := s.ownedEvent(id, userID)
	if err != nil {
		return nil, err
	}

	mediaCount, err := s.mediaRepo.CountByEventID(id)
	if err != nil {
		return nil, err
	}
	planCount, err := s.planRepo.CountByEventID(id)
	if err != nil {
		return nil, err
	}

	errs := validateForReady(event, mediaCount, planCount)
	return &models.ValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	}, nil
}

// MarkReady transitions DRAFT → READY after re-running validation. The
// client validates first, but the server stays the source of truth.
func (s *EventService) MarkReady(id, userID uint) (*models.Event, error) {
	event, err := s.ownedEvent(id, userID)
	if err != nil {
		return nil, err
	}
	if event.Status != models.EventStatusDraft {
		return nil, ErrInvalidTransition
	}

	result, err := s.Validate(id, userID)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, strings.Join(result.Errors, "; "))
	}

	if err := s.eventRepo.UpdateStatus(id, models.EventStatusReady); err != nil {
		return nil, err
	}

	s.logger.Info("event submitted for review", zap.Uint("event_id", id))
	return s.eventRepo.GetByID(id)
}

// Publish is admin-only (enforced at the route) and moves READY → PUBLISHED.
func (s *EventService) Publish(id uint) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if event.Status != models.EventStatusReady {
		return nil, ErrInvalidTransition
	}
	if err := s.eventRepo.UpdateStatus(id, models.EventStatusPublished); err != nil {
		return nil, err
	}
	return s.eventRepo.GetByID(id)
}

// Unpublish moves PUBLISHED back to READY.
func (s *EventService) Unpublish(id uint) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if event.Status != models.EventStatusPublished {
		return nil, ErrInvalidTransition
	}
	if err := s.eventRepo.UpdateStatus(id, models.EventStatusReady); err != nil {
		return nil, err
	}
	return s.eventRepo.GetByID(id)
}

func (s *EventService) ownedEvent(id, userID uint) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(id)
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

func (s *EventService) uniqueSlug(title string) (string, error) {
	slug := utils.Slugify(title)
	if slug == "" {
		slug = "event"
	}
	exists, err := s.eventRepo.SlugExists(slug)
	if err != nil {
		return "", err
	}
	if exists {
		slug = slug + "-" + utils.GenerateRandomString(6)
	}
	return slug, nil
}

func validateForReady(event *models.Event, mediaCount, planCount int64) []string {
	var errs []string
	if strings.TrimSpace(event.Title) == "" || event.Title == PlaceholderTitle {
		errs = append(errs, "event title is required")
	}
	if event.CategoryID == nil {
		errs = append(errs, "event category is required")
	}
	if strings.TrimSpace(event.Description) == "" {
		errs = append(errs, "event description is required")
	}
	if mediaCount < 1 {
		errs = append(errs, "event must have at least one image")
	}
	if planCount < 1 {
		errs = append(errs, "event must have at least one plan")
	}
	return errs
}
