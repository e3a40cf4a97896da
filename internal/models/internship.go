package models

import (
	"time"

	"gorm.io/datatypes"
)

type Internship struct {
	BaseModel
	Title          string           `gorm:"not null" json:"title"`
	Company        string           `gorm:"not null" json:"company"`
	Description    string           `json:"description"`
	Location       string           `json:"location"`
	Requirements   datatypes.JSON   `gorm:"type:jsonb" json:"requirements"`
	SpotsTotal     int              `gorm:"not null" json:"spots_total"`
	SpotsAvailable int              `gorm:"not null" json:"spots_available"`
	Deadline       *time.Time       `json:"deadline"`
	Status         InternshipStatus `gorm:"type:varchar(20);default:'open'" json:"status"`
}

type InternshipSubmission struct {
	BaseModel
	InternshipID string           `gorm:"not null;index;uniqueIndex:idx_submission_internship_user" json:"internship_id"`
	UserID       string           `gorm:"not null;index;uniqueIndex:idx_submission_internship_user" json:"user_id"`
	CoverLetter  string           `json:"cover_letter"`
	ResumeURL    string           `json:"resume_url"`
	Status       SubmissionStatus `gorm:"type:varchar(20);default:'submitted'" json:"status"`
}
