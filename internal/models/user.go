package models

import (
	"time"
)

type Role string

const (
	RoleUser      Role = "USER"
	RoleOrganizer Role = "ORGANIZER"
	RoleAdmin     Role = "ADMIN"
)

type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FirstName   string    `json:"firstName" gorm:"not null"`
	LastName    string    `json:"lastName" gorm:"not null"`
	Email       string    `json:"email" gorm:"unique;not null"`
	Password    string    `json:"-" gorm:"not null"`
	Role        Role      `json:"role" gorm:"type:varchar(20);not null;default:'USER'"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	DateOfBirth string    `json:"dateOfBirth,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Organizer profile belongs to a User with the ORGANIZER role.
type Organizer struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	UserID           uint      `json:"userId" gorm:"unique;not null"`
	OrganizationName string    `json:"organizationName" gorm:"not null"`
	ContactEmail     string    `json:"contactEmail" gorm:"not null"`
	ContactPhone     string    `json:"contactPhone,omitempty"`
	Description      string    `json:"description,omitempty"`
	LogoURL          string    `json:"logoUrl,omitempty"`
	WebsiteURL       string    `json:"websiteUrl,omitempty"`
	Venue            Venue     `json:"venue"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type Venue struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	OrganizerID  uint     `json:"organizerId" gorm:"not null"`
	Name         string   `json:"name" gorm:"not null"`
	AddressLine1 string   `json:"addressLine1" gorm:"not null"`
	AddressLine2 string   `json:"addressLine2,omitempty"`
	City         string   `json:"city" gorm:"not null"`
	State        string   `json:"state,omitempty"`
	PostalCode   string   `json:"postalCode,omitempty"`
	Country      string   `json:"country" gorm:"not null"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
}
