package models

import (
	"time"

	"gorm.io/datatypes"
)

type CalendarEvent struct {
	BaseModel
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description"`
	StartTime   time.Time      `gorm:"not null;index" json:"start_time"`
	EndTime     time.Time      `json:"end_time"`
	Location    string         `json:"location"`
	EventType   string         `json:"event_type"` // webinar, deadline, meetup...
	CreatedBy   string         `gorm:"index" json:"created_by"`
	Attendees   datatypes.JSON `gorm:"type:jsonb" json:"attendees"`
}
