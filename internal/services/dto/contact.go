package dto

import "skillspace_backend/internal/models"

// ContactMessageRequest - сообщение формы обратной связи
type ContactMessageRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"omitempty,max=300"`
	Message string `json:"message" validate:"required,max=5000"`
}

// UpdateContactStatusRequest - смена статуса сообщения (админ)
type UpdateContactStatusRequest struct {
	Status models.ContactStatus `json:"status" validate:"required,oneof=new read resolved"`
}

// ContactListResponse - страница сообщений (админ)
type ContactListResponse struct {
	Messages   []models.ContactMessage `json:"messages"`
	Page       int                     `json:"page"`
	PageSize   int                     `json:"page_size"`
	Total      int64                   `json:"total"`
	TotalPages int                     `json:"total_pages"`
}
