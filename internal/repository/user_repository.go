package repository

import (
	"github.com/planningkart/planningkart/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// CreateOrganizer persists the user, organizer profile and venue in one
// transaction so a failed venue insert never leaves a half-registered
// organizer behind.
func (r *UserRepository) CreateOrganizer(user *models.User, organizer *models.Organizer) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		organizer.UserID = user.ID
		if err := tx.Create(organizer).Error; err != nil {
			return err
		}
		return nil
	})
}

func (r *UserRepository) GetOrganizerByUserID(userID uint) (*models.Organizer, error) {
	var organizer models.Organizer
	err := r.db.Preload("Venue").Where("user_id = ?", userID).First(&organizer).Error
	if err != nil {
		return nil, err
	}
	return &organizer, nil
}
