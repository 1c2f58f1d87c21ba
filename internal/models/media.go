package models

import (
	"time"
)

// EventMedia belongs to exactly one Event. At most one item per event is
// primary; the server is the source of truth for the exclusivity.
type EventMedia struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	EventID      uint      `json:"eventId" gorm:"not null;index"`
	URL          string    `json:"url" gorm:"not null"`
	FileName     string    `json:"fileName" gorm:"not null"`
	FileSize     int64     `json:"fileSize" gorm:"not null"`
	MimeType     string    `json:"mimeType" gorm:"not null"`
	StorageKey   string    `json:"-" gorm:"not null"`
	IsPrimary    bool      `json:"isPrimary" gorm:"default:false"`
	DisplayOrder int       `json:"displayOrder" gorm:"default:0"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type UploadMediaRequest struct {
	MimeType string `json:"mimeType" validate:"required,supported_image"`
	FileSize int64  `json:"fileSize" validate:"required,max=10485760"`
}
