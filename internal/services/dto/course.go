package dto

import (
	"time"

	"skillspace_backend/internal/models"
)

// CreateCourseRequest - создание курса (админ)
type CreateCourseRequest struct {
	Title         string   `json:"title" validate:"required,min=3,max=200"`
	Description   string   `json:"description" validate:"omitempty,max=5000"`
	Category      string   `json:"category" validate:"omitempty,max=100"`
	Level         string   `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	DurationWeeks int      `json:"duration_weeks" validate:"omitempty,min=0"`
	Price         float64  `json:"price" validate:"omitempty,min=0"`
	Tags          []string `json:"tags" validate:"omitempty,max=20"`
	IsPublished   *bool    `json:"is_published"`
}

// UpdateCourseRequest - правка курса (админ)
type UpdateCourseRequest struct {
	Title         *string  `json:"title" validate:"omitempty,min=3,max=200"`
	Description   *string  `json:"description" validate:"omitempty,max=5000"`
	Category      *string  `json:"category" validate:"omitempty,max=100"`
	Level         *string  `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	DurationWeeks *int     `json:"duration_weeks" validate:"omitempty,min=0"`
	Price         *float64 `json:"price" validate:"omitempty,min=0"`
	Tags          []string `json:"tags" validate:"omitempty,max=20"`
	IsPublished   *bool    `json:"is_published"`
}

// CourseQuery - каталог курсов
type CourseQuery struct {
	Category string `form:"category"`
	Level    string `form:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Search   string `form:"search"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

// CourseListResponse - страница каталога
type CourseListResponse struct {
	Courses    []models.Course `json:"courses"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	Total      int64           `json:"total"`
	TotalPages int             `json:"total_pages"`
}

// CreateAssignmentRequest - задание курса (админ)
type CreateAssignmentRequest struct {
	CourseID    string     `json:"course_id" validate:"required,uuid4"`
	Title       string     `json:"title" validate:"required,min=3,max=200"`
	Description string     `json:"description" validate:"omitempty,max=5000"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateAssignmentRequest - правка задания
type UpdateAssignmentRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=3,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=5000"`
	DueDate     *time.Time `json:"due_date"`
}

// IssueCertificateRequest - выдача сертификата (админ)
type IssueCertificateRequest struct {
	UserID         string `json:"user_id" validate:"required,uuid4"`
	CourseID       string `json:"course_id" validate:"required,uuid4"`
	CertificateURL string `json:"certificate_url" validate:"omitempty,url"`
}
