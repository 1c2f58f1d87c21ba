package models

import (
	"time"
)

type EventStatus string

const (
	EventStatusDraft     EventStatus = "DRAFT"
	EventStatusReady     EventStatus = "READY"
	EventStatusPublished EventStatus = "PUBLISHED"
	EventStatusArchived  EventStatus = "ARCHIVED"
	EventStatusCancelled EventStatus = "CANCELLED"
)

type DifficultyLevel string

const (
	DifficultyBeginner     DifficultyLevel = "BEGINNER"
	DifficultyIntermediate DifficultyLevel = "INTERMEDIATE"
	DifficultyAdvanced     DifficultyLevel = "ADVANCED"
)

type AgeRestriction struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type Event struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	OrganizerID      uint            `json:"organizerId" gorm:"not null;index"`
	Title            string          `json:"title" gorm:"not null"`
	Slug             string          `json:"slug" gorm:"unique;not null"`
	Description      string          `json:"description"`
	ShortDescription string          `json:"shortDescription"`
	CategoryID       *uint           `json:"categoryId"`
	Category         *Category       `json:"category,omitempty"`
	DurationMinutes  int             `json:"durationMinutes"`
	MinParticipants  int             `json:"minParticipants"`
	MaxParticipants  int             `json:"maxParticipants"`
	AgeRestriction   AgeRestriction  `json:"ageRestriction" gorm:"embedded;embeddedPrefix:age_"`
	Difficulty       DifficultyLevel `json:"difficulty" gorm:"type:varchar(20)"`
	IsFeatured       bool            `json:"isFeatured" gorm:"default:false"`
	Status           EventStatus     `json:"status" gorm:"type:varchar(20);not null;default:'DRAFT'"`
	Media            []EventMedia    `json:"media,omitempty"`
	Plans            []EventPlan     `json:"plans,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// CreateEventRequest is the initial draft call. Title may be empty, the
// service falls back to a placeholder so the draft can be saved against.
type CreateEventRequest struct {
	Title            string          `json:"title" validate:"omitempty,max=200"`
	Description      string          `json:"description"`
	ShortDescription string          `json:"shortDescription" validate:"omitempty,max=300"`
	CategoryID       *uint           `json:"categoryId"`
	DurationMinutes  int             `json:"durationMinutes" validate:"omitempty,min=0"`
	MinParticipants  int             `json:"minParticipants" validate:"omitempty,min=0"`
	MaxParticipants  int             `json:"maxParticipants" validate:"omitempty,min=0"`
	AgeRestriction   *AgeRestriction `json:"ageRestriction"`
	Difficulty       DifficultyLevel `json:"difficulty" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	IsFeatured       bool            `json:"isFeatured"`
}

// UpdateEventRequest carries the full draft payload; the auto-save loop
// always PUTs every field it knows about.
type UpdateEventRequest struct {
	Title            *string          `json:"title" validate:"omitempty,max=200"`
	Description      *string          `json:"description"`
	ShortDescription *string          `json:"shortDescription" validate:"omitempty,max=300"`
	CategoryID       *uint            `json:"categoryId"`
	DurationMinutes  *int             `json:"durationMinutes" validate:"omitempty,min=0"`
	MinParticipants  *int             `json:"minParticipants" validate:"omitempty,min=0"`
	MaxParticipants  *int             `json:"maxParticipants" validate:"omitempty,min=0"`
	AgeRestriction   *AgeRestriction  `json:"ageRestriction"`
	Difficulty       *DifficultyLevel `json:"difficulty" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	IsFeatured       *bool            `json:"isFeatured"`
}

// ValidationResult is returned by GET /v1/events/:id/validate.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}
