package dto

import (
	"encoding/json"

	"skillspace_backend/internal/models"
)

// UserResponse - полные публичные данные о пользователе
type UserResponse struct {
	ID         string            `json:"id"`
	Email      string            `json:"email"`
	Role       models.UserRole   `json:"role"`
	Status     models.UserStatus `json:"status"`
	IsVerified bool              `json:"is_verified"`
	FirstName  string            `json:"first_name"`
	LastName   string            `json:"last_name"`
	Phone      string            `json:"phone"`
	City       string            `json:"city"`
	Company    string            `json:"company"`
	Bio        string            `json:"bio"`
	AvatarURL  string            `json:"avatar_url"`
	Skills     json.RawMessage   `json:"skills,omitempty"`
}

// UpdateProfileRequest - обновление профиля (частичное)
type UpdateProfileRequest struct {
	FirstName *string  `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string  `json:"last_name" validate:"omitempty,max=100"`
	Phone     *string  `json:"phone" validate:"omitempty,max=30"`
	City      *string  `json:"city" validate:"omitempty,max=100"`
	Company   *string  `json:"company" validate:"omitempty,max=200"`
	Bio       *string  `json:"bio" validate:"omitempty,max=2000"`
	Skills    []string `json:"skills" validate:"omitempty,max=50"`
}

// ConnectionRequest - добавление связи
type ConnectionRequest struct {
	ConnectedUserID string `json:"connected_user_id" validate:"required,uuid4"`
}

// AdminUserFilter - фильтрация пользователей администратором
type AdminUserFilter struct {
	Role     models.UserRole   `form:"role" validate:"omitempty,oneof=student professional business agency admin"`
	Status   models.UserStatus `form:"status" validate:"omitempty,oneof=active deactivated"`
	Search   string            `form:"search"`
	Page     int               `form:"page" validate:"omitempty,min=1"`
	PageSize int               `form:"page_size" validate:"omitempty,min=1,max=100"`
}

// AdminUpdateUserRequest - правка пользователя администратором
type AdminUpdateUserRequest struct {
	Role   *models.UserRole   `json:"role" validate:"omitempty,oneof=student professional business agency admin"`
	Status *models.UserStatus `json:"status" validate:"omitempty,oneof=active deactivated"`
}
