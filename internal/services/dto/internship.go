package dto

import (
	"time"

	"skillspace_backend/internal/models"
)

// CreateInternshipRequest - стажировка (админ)
type CreateInternshipRequest struct {
	Title        string     `json:"title" validate:"required,min=3,max=200"`
	Company      string     `json:"company" validate:"required,max=200"`
	Description  string     `json:"description" validate:"omitempty,max=5000"`
	Location     string     `json:"location" validate:"omitempty,max=200"`
	Requirements []string   `json:"requirements" validate:"omitempty,max=30"`
	SpotsTotal   int        `json:"spots_total" validate:"required,min=1"`
	Deadline     *time.Time `json:"deadline"`
}

// UpdateInternshipRequest - правка стажировки
type UpdateInternshipRequest struct {
	Title       *string                  `json:"title" validate:"omitempty,min=3,max=200"`
	Company     *string                  `json:"company" validate:"omitempty,max=200"`
	Description *string                  `json:"description" validate:"omitempty,max=5000"`
	Location    *string                  `json:"location" validate:"omitempty,max=200"`
	Deadline    *time.Time               `json:"deadline"`
	Status      *models.InternshipStatus `json:"status" validate:"omitempty,oneof=open closed"`
}

// ApplyInternshipRequest - заявка на стажировку
type ApplyInternshipRequest struct {
	CoverLetter string `json:"cover_letter" validate:"omitempty,max=5000"`
	ResumeURL   string `json:"resume_url" validate:"omitempty,url"`
}

// ReviewSubmissionRequest - рассмотрение заявки (админ)
type ReviewSubmissionRequest struct {
	Status models.SubmissionStatus `json:"status" validate:"required,oneof=reviewed accepted rejected"`
}

// InternshipQuery - каталог стажировок
type InternshipQuery struct {
	Status   models.InternshipStatus `form:"status" validate:"omitempty,oneof=open closed"`
	Company  string                  `form:"company"`
	Search   string                  `form:"search"`
	Page     int                     `form:"page" validate:"omitempty,min=1"`
	PageSize int                     `form:"page_size" validate:"omitempty,min=1,max=100"`
}

// InternshipListResponse - страница стажировок
type InternshipListResponse struct {
	Internships []models.Internship `json:"internships"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
	Total       int64               `json:"total"`
	TotalPages  int                 `json:"total_pages"`
}

// SubmissionListResponse - заявки по стажировке (админ)
type SubmissionListResponse struct {
	Submissions []models.InternshipSubmission `json:"submissions"`
	Page        int                           `json:"page"`
	PageSize    int                           `json:"page_size"`
	Total       int64                         `json:"total"`
	TotalPages  int                           `json:"total_pages"`
}
