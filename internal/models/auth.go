package models

type SignupRequest struct {
	FirstName   string `json:"firstName" validate:"required,max=100"`
	LastName    string `json:"lastName" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,max=20"`
	DateOfBirth string `json:"dateOfBirth" validate:"omitempty"`
}

type VenueRequest struct {
	Name         string   `json:"name" validate:"required,max=200"`
	AddressLine1 string   `json:"addressLine1" validate:"required,max=255"`
	AddressLine2 string   `json:"addressLine2" validate:"omitempty,max=255"`
	City         string   `json:"city" validate:"required,max=100"`
	State        string   `json:"state" validate:"omitempty,max=100"`
	PostalCode   string   `json:"postalCode" validate:"omitempty,max=20"`
	Country      string   `json:"country" validate:"required,max=100"`
	Latitude     *float64 `json:"latitude" validate:"omitempty"`
	Longitude    *float64 `json:"longitude" validate:"omitempty"`
}

// Organizer signup creates the user, the organizer profile and its venue
// in a single request.
type OrganizerSignupRequest struct {
	SignupRequest
	OrganizationName string       `json:"organizationName" validate:"required,max=200"`
	ContactEmail     string       `json:"contactEmail" validate:"required,email"`
	ContactPhone     string       `json:"contactPhone" validate:"omitempty,max=20"`
	Description      string       `json:"description" validate:"omitempty,max=1000"`
	LogoURL          string       `json:"logoUrl" validate:"omitempty,url"`
	WebsiteURL       string       `json:"websiteUrl" validate:"omitempty,url"`
	Venue            VenueRequest `json:"venue" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
