package service

import (
	"errors"
	"fmt"

	"github.com/planningkart/planningkart/internal/models"
	"github.com/planningkart/planningkart/internal/repository"
	"github.com/planningkart/planningkart/pkg/bcrypt"
	"github.com/planningkart/planningkart/pkg/email"
	jwtPkg "github.com/planningkart/planningkart/pkg/jwt"
)

type AuthService struct {
	userRepo     *repository.UserRepository
	emailService *email.EmailService
}

func NewAuthService(userRepo *repository.UserRepository, emailService *email.EmailService) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		emailService: emailService,
	}
}

func (s *AuthService) Signup(req models.SignupRequest) (*models.AuthResponse, error) {
	exists, err := s.userRepo.EmailExists(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.New("email already exists")
	}

	hashedPassword, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    hashedPassword,
		Role:        models.RoleUser,
		PhoneNumber: req.PhoneNumber,
		DateOfBirth: req.DateOfBirth,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	go s.emailService.SendWelcomeEmail(user.Email, user.FirstName)

	token, err := jwtPkg.GenerateToken(user.Email, user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

func (s *AuthService) SignupOrganizer(req models.OrganizerSignupRequest) (*models.AuthResponse, error) {
	exists, err := s.userRepo.EmailExists(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.New("email already exists")
	}

	hashedPassword, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    hashedPassword,
		Role:        models.RoleOrganizer,
		PhoneNumber: req.PhoneNumber,
		DateOfBirth: req.DateOfBirth,
	}

	organizer := &models.Organizer{
		OrganizationName: req.OrganizationName,
		ContactEmail:     req.ContactEmail,
		ContactPhone:     req.ContactPhone,
		Description:      req.Description,
		LogoURL:          req.LogoURL,
		WebsiteURL:       req.WebsiteURL,
		Venue: models.Venue{
			Name:         req.Venue.Name,
			AddressLine1: req.Venue.AddressLine1,
			AddressLine2: req.Venue.AddressLine2,
			City:         req.Venue.City,
			State:        req.Venue.State,
			PostalCode:   req.Venue.PostalCode,
			Country:      req.Venue.Country,
			Latitude:     req.Venue.Latitude,
			Longitude:    req.Venue.Longitude,
		},
	}

	if err := s.userRepo.CreateOrganizer(user, organizer); err != nil {
		return nil, err
	}

	go s.emailService.SendOrganizerWelcomeEmail(user.Email, user.FirstName, organizer.OrganizationName)

	token, err := jwtPkg.GenerateToken(user.Email, user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

func (s *AuthService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	if err := bcrypt.ComparePassword(user.Password, req.Password); err != nil {
		return nil, errors.New("invalid email or password")
	}

	token, err := jwtPkg.GenerateToken(user.Email, user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("token generation failed: %v", err)
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}
