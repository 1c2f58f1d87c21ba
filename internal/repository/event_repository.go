package repository

import (
	"github.com/planningkart/planningkart/internal/models"
	"gorm.io/gorm"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(event *models.Event) (*models.Event, error) {
	result := r.db.Create(event)
	if result.Error != nil {
		return nil, result.Error
	}
	return event, nil
}

func (r *EventRepository) GetByID(id uint) (*models.Event, error) {
	var event models.Event
	err := r.db.Preload("Category").Preload("Media", func(db *gorm.DB) *gorm.DB {
		return db.Order("display_order ASC")
	}).Preload("Plans").Preload("Plans.Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).First(&event, id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) GetByOrganizerID(organizerID uint) ([]models.Event, error) {
	var events []models.Event
	err := r.db.Preload("Category").Preload("Media").
		Where("organizer_id = ?", organizerID).
		Order("created_at DESC").
		Find(&events).Error
	return events, err
}

func (r *EventRepository) GetPublished() ([]models.Event, error) {
	var events []models.Event
	err := r.db.Preload("Category").Preload("Media").
		Where("status = ?", models.EventStatusPublished).
		Order("created_at DESC").
		Find(&events).Error
	return events, err
}

func (r *EventRepository) Update(event *models.Event) error {
	return r.db.Save(event).Error
}

func (r *EventRepository) UpdateStatus(id uint, status models.EventStatus) error {
	return r.db.Model(&models.Event{}).Where("id = ?", id).Update("status", status).Error
}

func (r *EventRepository) Delete(id uint) error {
	return r.db.Delete(&models.Event{}, id).Error
}

func (r *EventRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Event{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}
