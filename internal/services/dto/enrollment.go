package dto

import (
	"time"

	"skillspace_backend/internal/models"
)

// EnrollRequest - запись авторизованного пользователя на курс
type EnrollRequest struct {
	CourseID string `json:"course_id" validate:"required,uuid4"`
}

// GuestEnrollRequest - гостевая заявка на курс (без аккаунта).
// Привязывается к пользователю по email при первом логине.
type GuestEnrollRequest struct {
	CourseID string `json:"course_id" validate:"required,uuid4"`
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,max=200"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
}

// UpdateProgressRequest - обновление прогресса по курсу
type UpdateProgressRequest struct {
	Progress int `json:"progress" validate:"min=0,max=100"`
}

// EnrollmentResponse - запись на курс с данными курса
type EnrollmentResponse struct {
	ID        string                  `json:"id"`
	CourseID  string                  `json:"course_id"`
	Course    *models.Course          `json:"course,omitempty"`
	Progress  int                     `json:"progress"`
	Status    models.EnrollmentStatus `json:"status"`
	CreatedAt time.Time               `json:"created_at"`
}

// EnrollmentListResponse - список записей (админ)
type EnrollmentListResponse struct {
	Enrollments []models.Enrollment `json:"enrollments"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
	Total       int64               `json:"total"`
	TotalPages  int                 `json:"total_pages"`
}
