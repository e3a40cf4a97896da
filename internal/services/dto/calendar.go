package dto

import (
	"time"

	"skillspace_backend/internal/models"
)

// CreateEventRequest - событие календаря (админ)
type CreateEventRequest struct {
	Title       string    `json:"title" validate:"required,min=3,max=200"`
	Description string    `json:"description" validate:"omitempty,max=5000"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"omitempty,gtefield=StartTime"`
	Location    string    `json:"location" validate:"omitempty,max=300"`
	EventType   string    `json:"event_type" validate:"omitempty,max=50"`
	Attendees   []string  `json:"attendees" validate:"omitempty"`
}

// UpdateEventRequest - правка события
type UpdateEventRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=3,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=5000"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Location    *string    `json:"location" validate:"omitempty,max=300"`
	EventType   *string    `json:"event_type" validate:"omitempty,max=50"`
	Attendees   []string   `json:"attendees" validate:"omitempty"`
}

// EventQuery - события за период
type EventQuery struct {
	From      string `form:"from" validate:"omitempty,datetime=2006-01-02"`
	To        string `form:"to" validate:"omitempty,datetime=2006-01-02"`
	EventType string `form:"event_type"`
	Page      int    `form:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

// EventListResponse - страница событий
type EventListResponse struct {
	Events     []models.CalendarEvent `json:"events"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"page_size"`
	Total      int64                  `json:"total"`
	TotalPages int                    `json:"total_pages"`
}
