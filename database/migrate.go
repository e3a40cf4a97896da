package database

import (
	"fmt"
	"log"

	"skillspace_backend/internal/config"
	"skillspace_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var gormDB *gorm.DB

// ConnectGorm инициализирует GORM с URL из config.yaml
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate выполняет миграцию всех моделей
func AutoMigrate() error {
	db, err := ConnectGorm()
	if err != nil {
		return err
	}
	return Migrate(db)
}

// Migrate выполняет миграцию моделей на переданном подключении
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Connection{},
		&models.Course{},
		&models.Assignment{},
		&models.Certificate{},
		&models.Enrollment{},
		&models.EnrollmentRequest{},
		&models.SocialActivity{},
		&models.ServiceCategory{},
		&models.ServiceSubcategory{},
		&models.ServiceOffering{},
		&models.ServiceRequest{},
		&models.Internship{},
		&models.InternshipSubmission{},
		&models.ContactMessage{},
		&models.CalendarEvent{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate ошибка: %v", err)
	}

	// Один лайк и одна закладка на пару (пользователь, пост).
	// AutoMigrate не умеет частичные индексы, поэтому raw SQL.
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_activity_once_per_user
		ON social_activities (activity_type, user_id, target_id)
		WHERE activity_type IN ('like', 'bookmark')
	`).Error
	if err != nil {
		return fmt.Errorf("failed to create partial unique index: %w", err)
	}

	log.Println("AutoMigrate успешно завершен.")
	return nil
}
