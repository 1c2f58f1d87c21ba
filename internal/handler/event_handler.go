package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/planningkart/planningkart/internal/models"
	"github.com/planningkart/planningkart/internal/service"
	"github.com/planningkart/planningkart/pkg/utils"
)

type EventHandler struct {
	eventService *service.EventService
	validator    *utils.Validator
}

func NewEventHandler(eventService *service.EventService, validator *utils.Validator) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		validator:    validator,
	}
}

func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	var req models.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	userID := c.Locals("userID").(uint)

	event, err := h.eventService.CreateDraft(userID, req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(event, "Draft event created"))
}

func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	eventID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID"))
	}

	event, err := h.eventService.GetEvent(eventID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Event not found"))
	}

	return c.JSON(models.SuccessResponse(event, "Event retrieved successfully"))
}

func (h *EventHandler) GetOrganizerEvents(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	events, err := h.eventService.GetOrganizerEvents(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(events, "Events retrieved successfully"))
}

func (h *EventHandler) UpdateEvent(c *fiber.Ctx) error {
	eventID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID"))
	}

	var req models.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	userID := c.Locals("userID").(uint)

	event, err := h.eventService.UpdateDraft(eventID, userID, req)
	if err != nil {
		return errorStatus(c, err)
	}

	return c.JSON(models.SuccessResponse(event, "Event updated successfully"))
}

func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	eventID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID"))
	}

	userID := c.Locals("userID").(uint)

	if err := h.eventService.DeleteEvent(eventID, userID); err != nil {
		return errorStatus(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Event successfully deleted"))
}

func (h *EventHandler) ValidateEvent(c *fiber.Ctx) error {
	eventID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID"))
	}

	userID := c.Locals("userID").(uint)

	result, err := h.eventService.Validate(eventID, userID)
	if err != nil {
		return errorStatus(c, err)
	}

	return c.JSON(models.SuccessResponse(result, "Validation completed"))
}

func (h *EventHandler) MarkReady(c *fiber.Ctx) error {
	eventID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID"))
	}

	userID := c.Locals("userID").(uint)

	event, err := h.eventService.MarkReady(eventID, userID)
	if err != nil {
		return errorStatus(c, err)
	}

	return c.JSON(models.SuccessResponse(event, "Event submitted for review"))
}

func (h *EventHandler) PublishEvent(c *fiber.Ctx) error {
	eventID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID"))
	}

	event, err := h.eventService.Publish(eventID)
	if err != nil {
		return errorStatus(c, err)
	}

	return c.JSON(models.SuccessResponse(event, "Event published"))
}

func (h *EventHandler) UnpublishEvent(c *fiber.Ctx) error {
	eventID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID"))
	}

	event, err := h.eventService.Unpublish(eventID)
	if err != nil {
		return errorStatus(c, err)
	}

	return c.JSON(models.SuccessResponse(event, "Event unpublished"))
}

func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func errorStatus(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Event not found"))
	case errors.Is(err, service.ErrNotEventOwner):
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse(err.Error()))
	case errors.Is(err, service.ErrNotDraft),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrValidationFailed):
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}
}
