package dto

import (
	"skillspace_backend/internal/models"
)

// CreateCategoryRequest - категория услуг (админ)
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	Icon        string `json:"icon" validate:"omitempty,max=100"`
}

// UpdateCategoryRequest - правка категории
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Icon        *string `json:"icon" validate:"omitempty,max=100"`
}

// CreateSubcategoryRequest - подкатегория услуг (админ)
type CreateSubcategoryRequest struct {
	CategoryID  string `json:"category_id" validate:"required,uuid4"`
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=1000"`
}

// CreateOfferingRequest - предложение услуги от провайдера
type CreateOfferingRequest struct {
	SubcategoryID string  `json:"subcategory_id" validate:"required,uuid4"`
	Title         string  `json:"title" validate:"required,min=3,max=200"`
	Description   string  `json:"description" validate:"omitempty,max=5000"`
	PriceFrom     float64 `json:"price_from" validate:"omitempty,min=0"`
	PriceTo       float64 `json:"price_to" validate:"omitempty,min=0,gtefield=PriceFrom"`
}

// UpdateOfferingRequest - правка предложения
type UpdateOfferingRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=3,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=5000"`
	PriceFrom   *float64 `json:"price_from" validate:"omitempty,min=0"`
	PriceTo     *float64 `json:"price_to" validate:"omitempty,min=0"`
	IsActive    *bool    `json:"is_active"`
}

// CreateServiceRequestRequest - заявка на услугу (в т.ч. гостевая)
type CreateServiceRequestRequest struct {
	SubcategoryID  string `json:"subcategory_id" validate:"required,uuid4"`
	ContactName    string `json:"contact_name" validate:"required,max=200"`
	ContactEmail   string `json:"contact_email" validate:"required,email"`
	ContactPhone   string `json:"contact_phone" validate:"omitempty,max=30"`
	ProjectDetails string `json:"project_details" validate:"omitempty,max=5000"`
	Budget         string `json:"budget" validate:"omitempty,max=100"`
	Timeline       string `json:"timeline" validate:"omitempty,max=100"`
}

// UpdateRequestStatusRequest - смена статуса заявки (админ)
type UpdateRequestStatusRequest struct {
	Status models.ServiceRequestStatus `json:"status" validate:"required,oneof=pending in-process completed cancelled"`
}

// ServiceRequestQuery - фильтрация заявок (админ)
type ServiceRequestQuery struct {
	SubcategoryID string                      `form:"subcategory_id" validate:"omitempty,uuid4"`
	UserID        string                      `form:"user_id" validate:"omitempty,uuid4"`
	Status        models.ServiceRequestStatus `form:"status" validate:"omitempty,oneof=pending in-process completed cancelled"`
	Page          int                         `form:"page" validate:"omitempty,min=1"`
	PageSize      int                         `form:"page_size" validate:"omitempty,min=1,max=100"`
}

// ServiceRequestListResponse - страница заявок
type ServiceRequestListResponse struct {
	Requests   []models.ServiceRequest `json:"requests"`
	Page       int                     `json:"page"`
	PageSize   int                     `json:"page_size"`
	Total      int64                   `json:"total"`
	TotalPages int                     `json:"total_pages"`
}
