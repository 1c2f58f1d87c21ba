package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/planningkart/planningkart/internal/models"
)

func completeEvent() *models.Event {
	categoryID := uint(3)
	return &models.Event{
		Title:       "Sunset Kayak Tour",
		Slug:        "sunset-kayak-tour",
		Description: "Two hours of paddling on the lake.",
		CategoryID:  &categoryID,
		Status:      models.EventStatusDraft,
	}
}

func TestValidateForReady_Complete(t *testing.T) {
	errs := validateForReady(completeEvent(), 1, 1)
	assert.Empty(t, errs)
}

func TestValidateForReady_PlaceholderTitle(t *testing.T) {
	event := completeEvent()
	event.Title = PlaceholderTitle

	errs := validateForReady(event, 1, 1)
	assert.Contains(t, errs, "event title is required")
}

func TestValidateForReady_MissingMediaAndPlans(t *testing.T) {
	errs := validateForReady(completeEvent(), 0, 0)

	assert.Contains(t, errs, "event must have at least one image")
	assert.Contains(t, errs, "event must have at least one plan")
	assert.Len(t, errs, 2)
}

func TestValidateForReady_MissingCategoryAndDescription(t *testing.T) {
	event := completeEvent()
	event.CategoryID = nil
	event.Description = "   "

	errs := validateForReady(event, 2, 1)
	assert.Contains(t, errs, "event category is required")
	assert.Contains(t, errs, "event description is required")
}
