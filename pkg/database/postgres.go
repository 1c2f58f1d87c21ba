package database

import (
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/planningkart/planningkart/internal/models"
)

func NewDatabase() *gorm.DB {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := RunMigrations(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Organizer{},
		&models.Venue{},
		&models.Category{},
		&models.Event{},
		&models.EventMedia{},
		&models.EventPlan{},
		&models.EventPlanItem{},
	)
	if err != nil {
		return err
	}

	return seedCategories(db)
}

// Kategorileri ekle (eğer yoksa)
func seedCategories(db *gorm.DB) error {
	categories := []models.Category{
		{Name: "Music"},
		{Name: "Sports"},
		{Name: "Arts & Theatre"},
		{Name: "Food & Drink"},
		{Name: "Workshops"},
		{Name: "Outdoors"},
		{Name: "Tech"},
		{Name: "Community"},
	}

	for _, category := range categories {
		var count int64
		db.Model(&models.Category{}).Where("name = ?", category.Name).Count(&count)
		if count == 0 {
			if err := db.Create(&category).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
