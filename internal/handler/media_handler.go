package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/planningkart/planningkart/internal/models"
	"github.com/planningkart/planningkart/internal/service"
)

type MediaHandler struct {
	mediaService *service.MediaService
}

func NewMediaHandler(mediaService *service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

func (h *MediaHandler) UploadMedia(c *fiber.Ctx) error {
	eventID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID"))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("No file provided"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Failed to read file"))
	}
	defer file.Close()

	userID := c.Locals("userID").(uint)
	mimeType := fileHeader.Header.Get("Content-Type")

	media, err := h.mediaService.Upload(c.Context(), eventID, userID, fileHeader.Filename, mimeType, fileHeader.Size, file)
	if err != nil {
		return mediaErrorStatus(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(media, "Media uploaded successfully"))
}

func (h *MediaHandler) GetEventMedia(c *fiber.Ctx) error {
	eventID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID"))
	}

	media, err := h.mediaService.GetEventMedia(eventID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(media, "Media retrieved successfully"))
}

func (h *MediaHandler) DeleteMedia(c *fiber.Ctx) error {
	eventID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID"))
	}
	mediaID, err := parseID(c, "mediaId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid media ID"))
	}

	userID := c.Locals("userID").(uint)

	if err := h.mediaService.Delete(c.Context(), eventID, mediaID, userID); err != nil {
		return mediaErrorStatus(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Media deleted successfully"))
}

func (h *MediaHandler) SetPrimaryMedia(c *fiber.Ctx) error {
	eventID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid event ID"))
	}
	mediaID, err := parseID(c, "mediaId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid media ID"))
	}

	userID := c.Locals("userID").(uint)

	media, err := h.mediaService.SetPrimary(eventID, mediaID, userID)
	if err != nil {
		return mediaErrorStatus(c, err)
	}

	return c.JSON(models.SuccessResponse(media, "Primary media updated"))
}

func mediaErrorStatus(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Not found"))
	case errors.Is(err, service.ErrNotEventOwner):
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse(err.Error()))
	case errors.Is(err, service.ErrUnsupportedMediaType),
		errors.Is(err, service.ErrMediaTooLarge),
		errors.Is(err, service.ErrMediaLimitReached):
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}
}
