package repository

import (
	"github.com/planningkart/planningkart/internal/models"
	"gorm.io/gorm"
)

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// Create persists the plan together with its items as one atomic unit.
func (r *PlanRepository) Create(plan *models.EventPlan) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(plan).Error
	})
}

func (r *PlanRepository) GetByID(id uint) (*models.EventPlan, error) {
	var plan models.EventPlan
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).First(&plan, id).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *PlanRepository) GetByEventID(eventID uint) ([]models.EventPlan, error) {
	var plans []models.EventPlan
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).Where("event_id = ?", eventID).Order("created_at ASC").Find(&plans).Error
	return plans, err
}

func (r *PlanRepository) CountByEventID(eventID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.EventPlan{}).Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}

// Delete removes the plan and its items. Plans are only removed whole.
func (r *PlanRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_plan_id = ?", id).Delete(&models.EventPlanItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.EventPlan{}, id).Error
	})
}
