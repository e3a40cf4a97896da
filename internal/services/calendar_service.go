package services

import (
	"encoding/json"
	"time"

	"skillspace_backend/internal/models"
	"skillspace_backend/internal/repositories"
	"skillspace_backend/internal/services/dto"
	"skillspace_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type CalendarService interface {
	CreateEvent(db *gorm.DB, createdBy string, req *dto.CreateEventRequest) (*models.CalendarEvent, error)
	GetEvent(db *gorm.DB, eventID string) (*models.CalendarEvent, error)
	ListEvents(db *gorm.DB, query *dto.EventQuery) (*dto.EventListResponse, error)
	UpdateEvent(db *gorm.DB, eventID string, req *dto.UpdateEventRequest) error
	DeleteEvent(db *gorm.DB, eventID string) error
}

type CalendarServiceImpl struct{}

func NewCalendarService() CalendarService {
	return &CalendarServiceImpl{}
}

func (s *CalendarServiceImpl) CreateEvent(db *gorm.DB, createdBy string, req *dto.CreateEventRequest) (*models.CalendarEvent, error) {
	event := &models.CalendarEvent{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		EventType:   req.EventType,
		CreatedBy:   createdBy,
	}
	if req.Attendees != nil {
		attendeesJSON, err := json.Marshal(req.Attendees)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		event.Attendees = attendeesJSON
	}

	calendarRepo := repositories.NewCalendarRepository(db)
	if err := calendarRepo.Create(event); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return event, nil
}

func (s *CalendarServiceImpl) GetEvent(db *gorm.DB, eventID string) (*models.CalendarEvent, error) {
	calendarRepo := repositories.NewCalendarRepository(db)

	event, err := calendarRepo.FindByID(eventID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrEventNotFound) {
			return nil, apperrors.NewNotFoundError("calendar", "Event not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return event, nil
}

func (s *CalendarServiceImpl) ListEvents(db *gorm.DB, query *dto.EventQuery) (*dto.EventListResponse, error) {
	page, pageSize := normalizePage(query.Page, query.PageSize)

	criteria := repositories.EventFilter{
		EventType: query.EventType,
		Page:      page,
		PageSize:  pageSize,
	}
	if query.From != "" {
		from, err := time.Parse("2006-01-02", query.From)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Invalid 'from' date, expected YYYY-MM-DD")
		}
		criteria.From = &from
	}
	if query.To != "" {
		to, err := time.Parse("2006-01-02", query.To)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Invalid 'to' date, expected YYYY-MM-DD")
		}
		// Включительно до конца дня
		to = to.Add(24*time.Hour - time.Nanosecond)
		criteria.To = &to
	}

	calendarRepo := repositories.NewCalendarRepository(db)
	events, total, err := calendarRepo.FindWithFilter(criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.EventListResponse{
		Events:     events,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

func (s *CalendarServiceImpl) UpdateEvent(db *gorm.DB, eventID string, req *dto.UpdateEventRequest) error {
	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.StartTime != nil {
		fields["start_time"] = *req.StartTime
	}
	if req.EndTime != nil {
		fields["end_time"] = *req.EndTime
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.EventType != nil {
		fields["event_type"] = *req.EventType
	}
	if req.Attendees != nil {
		attendeesJSON, err := json.Marshal(req.Attendees)
		if err != nil {
			return apperrors.InternalError(err)
		}
		fields["attendees"] = attendeesJSON
	}
	if len(fields) == 0 {
		return nil
	}

	calendarRepo := repositories.NewCalendarRepository(db)
	if err := calendarRepo.Update(eventID, fields); err != nil {
		if apperrors.Is(err, repositories.ErrEventNotFound) {
			return apperrors.NewNotFoundError("calendar", "Event not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *CalendarServiceImpl) DeleteEvent(db *gorm.DB, eventID string) error {
	calendarRepo := repositories.NewCalendarRepository(db)
	if err := calendarRepo.Delete(eventID); err != nil {
		if apperrors.Is(err, repositories.ErrEventNotFound) {
			return apperrors.NewNotFoundError("calendar", "Event not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}
