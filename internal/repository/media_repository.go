package repository

import (
	"github.com/planningkart/planningkart/internal/models"
	"gorm.io/gorm"
)

type MediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

func (r *MediaRepository) Create(media *models.EventMedia) error {
	return r.db.Create(media).Error
}

func (r *MediaRepository) GetByID(id uint) (*models.EventMedia, error) {
	var media models.EventMedia
	err := r.db.First(&media, id).Error
	if err != nil {
		return nil, err
	}
	return &media, nil
}

func (r *MediaRepository) GetByEventID(eventID uint) ([]models.EventMedia, error) {
	var media []models.EventMedia
	err := r.db.Where("event_id = ?", eventID).Order("display_order ASC").Find(&media).Error
	return media, err
}

func (r *MediaRepository) CountByEventID(eventID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.EventMedia{}).Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}

func (r *MediaRepository) Delete(id uint) error {
	return r.db.Delete(&models.EventMedia{}, id).Error
}

// SetPrimary flips the primary flag to the given item and clears it on all
// siblings inside one transaction, so exactly one item ends up primary.
func (r *MediaRepository) SetPrimary(eventID, mediaID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.EventMedia{}).
			Where("event_id = ? AND id <> ?", eventID, mediaID).
			Update("is_primary", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.EventMedia{}).
			Where("event_id = ? AND id = ?", eventID, mediaID).
			Update("is_primary", true).Error
	})
}
