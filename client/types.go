// Package client is the Go client for the PlanningKart REST API. It holds
// the session state the web front-end keeps in local storage and drives the
// organizer event-draft workflow: debounced auto-save, the media upload
// queue, plan authoring and the submit-for-review gate.
package client

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleUser      Role = "USER"
	RoleOrganizer Role = "ORGANIZER"
	RoleAdmin     Role = "ADMIN"
)

type EventStatus string

const (
	EventStatusDraft     EventStatus = "DRAFT"
	EventStatusReady     EventStatus = "READY"
	EventStatusPublished EventStatus = "PUBLISHED"
	EventStatusArchived  EventStatus = "ARCHIVED"
	EventStatusCancelled EventStatus = "CANCELLED"
)

type AgeRestriction struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Event struct {
	ID               uint           `json:"id"`
	OrganizerID      uint           `json:"organizerId"`
	Title            string         `json:"title"`
	Slug             string         `json:"slug"`
	Description      string         `json:"description"`
	ShortDescription string         `json:"shortDescription"`
	CategoryID       *uint          `json:"categoryId"`
	Category         *Category      `json:"category,omitempty"`
	DurationMinutes  int            `json:"durationMinutes"`
	MinParticipants  int            `json:"minParticipants"`
	MaxParticipants  int            `json:"maxParticipants"`
	AgeRestriction   AgeRestriction `json:"ageRestriction"`
	Difficulty       string         `json:"difficulty"`
	IsFeatured       bool           `json:"isFeatured"`
	Status           EventStatus    `json:"status"`
	Media            []EventMedia   `json:"media,omitempty"`
	Plans            []EventPlan    `json:"plans,omitempty"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

type EventMedia struct {
	ID           uint   `json:"id"`
	EventID      uint   `json:"eventId"`
	URL          string `json:"url"`
	FileName     string `json:"fileName"`
	FileSize     int64  `json:"fileSize"`
	MimeType     string `json:"mimeType"`
	IsPrimary    bool   `json:"isPrimary"`
	DisplayOrder int    `json:"displayOrder"`
}

type EventPlan struct {
	ID               uint            `json:"id"`
	EventID          uint            `json:"eventId"`
	Title            string          `json:"title"`
	ShortDescription string          `json:"shortDescription"`
	Description      string          `json:"description"`
	PricePerPerson   decimal.Decimal `json:"pricePerPerson"`
	Currency         string          `json:"currency"`
	Items            []EventPlanItem `json:"items"`
}

type EventPlanItem struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	SortOrder   int    `json:"sortOrder"`
}

type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// UserInfo mirrors the serialized user object the front-end keeps next to
// the auth token.
type UserInfo struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type SignupInput struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
}

type VenueInput struct {
	Name         string   `json:"name"`
	AddressLine1 string   `json:"addressLine1"`
	AddressLine2 string   `json:"addressLine2,omitempty"`
	City         string   `json:"city"`
	State        string   `json:"state,omitempty"`
	PostalCode   string   `json:"postalCode,omitempty"`
	Country      string   `json:"country"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
}

type OrganizerSignupInput struct {
	SignupInput
	OrganizationName string     `json:"organizationName"`
	ContactEmail     string     `json:"contactEmail"`
	ContactPhone     string     `json:"contactPhone,omitempty"`
	Description      string     `json:"description,omitempty"`
	LogoURL          string     `json:"logoUrl,omitempty"`
	WebsiteURL       string     `json:"websiteUrl,omitempty"`
	Venue            VenueInput `json:"venue"`
}

type CreateEventInput struct {
	Title            string          `json:"title"`
	Description      string          `json:"description,omitempty"`
	ShortDescription string          `json:"shortDescription,omitempty"`
	CategoryID       *uint           `json:"categoryId,omitempty"`
	DurationMinutes  int             `json:"durationMinutes,omitempty"`
	MinParticipants  int             `json:"minParticipants,omitempty"`
	MaxParticipants  int             `json:"maxParticipants,omitempty"`
	AgeRestriction   *AgeRestriction `json:"ageRestriction,omitempty"`
	Difficulty       string          `json:"difficulty,omitempty"`
	IsFeatured       bool            `json:"isFeatured,omitempty"`
}

type PlanItemInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type PlanInput struct {
	Title            string          `json:"title"`
	ShortDescription string          `json:"shortDescription,omitempty"`
	Description      string          `json:"description,omitempty"`
	PricePerPerson   decimal.Decimal `json:"pricePerPerson"`
	Currency         string          `json:"currency"`
	Items            []PlanItemInput `json:"items,omitempty"`
}
