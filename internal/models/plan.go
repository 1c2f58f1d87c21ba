package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventPlan is a pricing tier on an event. A plan and its items are
// created as one atomic unit and removed as a whole, there is no partial
// item editing after creation.
type EventPlan struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	EventID          uint            `json:"eventId" gorm:"not null;index"`
	Title            string          `json:"title" gorm:"not null"`
	ShortDescription string          `json:"shortDescription"`
	Description      string          `json:"description"`
	PricePerPerson   decimal.Decimal `json:"pricePerPerson" gorm:"type:numeric(12,2);not null"`
	Currency         string          `json:"currency" gorm:"type:varchar(3);not null;default:'INR'"`
	Items            []EventPlanItem `json:"items"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

type EventPlanItem struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	EventPlanID uint   `json:"eventPlanId" gorm:"not null;index"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description"`
	SortOrder   int    `json:"sortOrder" gorm:"default:0"`
}

type CreatePlanItemRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"omitempty,max=1000"`
}

type CreatePlanRequest struct {
	EventID          uint                    `json:"eventId" validate:"required"`
	Title            string                  `json:"title" validate:"required,max=200"`
	ShortDescription string                  `json:"shortDescription" validate:"omitempty,max=300"`
	Description      string                  `json:"description" validate:"omitempty,max=2000"`
	PricePerPerson   decimal.Decimal         `json:"pricePerPerson" validate:"required"`
	Currency         string                  `json:"currency" validate:"required,len=3"`
	Items            []CreatePlanItemRequest `json:"items" validate:"omitempty,dive"`
}
