package repositories

import (
	"errors"
	"time"

	"skillspace_backend/internal/models"

	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("calendar event not found")

type EventFilter struct {
	From      *time.Time
	To        *time.Time
	EventType string
	CreatedBy string
	Page      int
	PageSize  int
}

type CalendarRepository interface {
	Create(event *models.CalendarEvent) error
	FindByID(id string) (*models.CalendarEvent, error)
	FindWithFilter(criteria EventFilter) ([]models.CalendarEvent, int64, error)
	Update(id string, fields map[string]interface{}) error
	Delete(id string) error
}

type CalendarRepositoryImpl struct {
	db *gorm.DB
}

func NewCalendarRepository(db *gorm.DB) CalendarRepository {
	return &CalendarRepositoryImpl{db: db}
}

func (r *CalendarRepositoryImpl) Create(event *models.CalendarEvent) error {
	return r.db.Create(event).Error
}

func (r *CalendarRepositoryImpl) FindByID(id string) (*models.CalendarEvent, error) {
	var event models.CalendarEvent
	err := r.db.First(&event, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *CalendarRepositoryImpl) FindWithFilter(criteria EventFilter) ([]models.CalendarEvent, int64, error) {
	var events []models.CalendarEvent
	query := r.db.Model(&models.CalendarEvent{})

	if criteria.From != nil {
		query = query.Where("start_time >= ?", *criteria.From)
	}
	if criteria.To != nil {
		query = query.Where("start_time <= ?", *criteria.To)
	}
	if criteria.EventType != "" {
		query = query.Where("event_type = ?", criteria.EventType)
	}
	if criteria.CreatedBy != "" {
		query = query.Where("created_by = ?", criteria.CreatedBy)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (criteria.Page - 1) * criteria.PageSize
	err := query.Order("start_time ASC").Limit(criteria.PageSize).Offset(offset).Find(&events).Error
	return events, total, err
}

func (r *CalendarRepositoryImpl) Update(id string, fields map[string]interface{}) error {
	result := r.db.Model(&models.CalendarEvent{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (r *CalendarRepositoryImpl) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.CalendarEvent{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}
