package models

import (
	"time"

	"gorm.io/datatypes"
)

type Course struct {
	BaseModel
	Title         string         `gorm:"not null" json:"title"`
	Description   string         `json:"description"`
	Category      string         `gorm:"index" json:"category"`
	Level         string         `json:"level"`
	DurationWeeks int            `json:"duration_weeks"`
	Price         float64        `json:"price"`
	Tags          datatypes.JSON `gorm:"type:jsonb" json:"tags"`
	IsPublished   bool           `gorm:"default:true" json:"is_published"`
}

type Assignment struct {
	BaseModel
	CourseID    string     `gorm:"not null;index" json:"course_id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

type Certificate struct {
	BaseModel
	UserID         string    `gorm:"not null;index" json:"user_id"`
	CourseID       string    `gorm:"not null;index" json:"course_id"`
	IssuedAt       time.Time `json:"issued_at"`
	CertificateURL string    `json:"certificate_url"`
}
