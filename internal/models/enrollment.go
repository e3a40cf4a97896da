package models

import "time"

type Enrollment struct {
	BaseModel
	UserID   string           `gorm:"not null;index;uniqueIndex:idx_enrollment_user_course" json:"user_id"`
	CourseID string           `gorm:"not null;index;uniqueIndex:idx_enrollment_user_course" json:"course_id"`
	Progress int              `gorm:"default:0" json:"progress"` // проценты 0-100
	Status   EnrollmentStatus `gorm:"type:varchar(20);default:'active'" json:"status"`
}

// EnrollmentRequest - гостевая заявка на курс (до создания аккаунта).
// При логине привязывается к пользователю по email (auto-linking).
type EnrollmentRequest struct {
	BaseModel
	Email        string     `gorm:"not null;index" json:"email"`
	CourseID     string     `gorm:"not null;index" json:"course_id"`
	Name         string     `json:"name"`
	Phone        string     `json:"phone"`
	LinkedUserID *string    `gorm:"index" json:"linked_user_id"`
	LinkedAt     *time.Time `json:"linked_at"`
}
