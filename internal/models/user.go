package models

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	BaseModel
	Email             string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash      string     `gorm:"not null" json:"-"`
	Role              UserRole   `gorm:"type:varchar(20);not null" json:"role"`
	Status            UserStatus `gorm:"type:varchar(20);default:'active'" json:"status"`
	IsVerified        bool       `gorm:"default:false" json:"is_verified"`
	VerificationToken string     `json:"-"`
	ResetToken        string     `json:"-"`
	ResetTokenExp     *time.Time `json:"-"`

	FirstName  string         `json:"first_name"`
	LastName   string         `json:"last_name"`
	Phone      string         `json:"phone"`
	City       string         `json:"city"`
	Company    string         `json:"company"`
	Bio        string         `json:"bio"`
	AvatarPath string         `json:"avatar_path"`
	Skills     datatypes.JSON `gorm:"type:jsonb" json:"skills"`

	// Relations
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}

// Connection - связь между пользователями, влияет на видимость ленты
type Connection struct {
	BaseModel
	UserID          string `gorm:"not null;index;uniqueIndex:idx_connection_pair" json:"user_id"`
	ConnectedUserID string `gorm:"not null;index;uniqueIndex:idx_connection_pair" json:"connected_user_id"`
}
