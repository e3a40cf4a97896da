package repositories

import (
	"errors"

	"skillspace_backend/internal/models"

	"gorm.io/gorm"
)

var ErrContactMessageNotFound = errors.New("contact message not found")

type ContactRepository interface {
	Create(message *models.ContactMessage) error
	FindByID(id string) (*models.ContactMessage, error)
	FindAll(status models.ContactStatus, page, pageSize int) ([]models.ContactMessage, int64, error)
	UpdateStatus(id string, status models.ContactStatus) error
	Delete(id string) error
}

type ContactRepositoryImpl struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &ContactRepositoryImpl{db: db}
}

func (r *ContactRepositoryImpl) Create(message *models.ContactMessage) error {
	if message.Status == "" {
		message.Status = models.ContactStatusNew
	}
	return r.db.Create(message).Error
}

func (r *ContactRepositoryImpl) FindByID(id string) (*models.ContactMessage, error) {
	var message models.ContactMessage
	err := r.db.First(&message, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactMessageNotFound
		}
		return nil, err
	}
	return &message, nil
}

func (r *ContactRepositoryImpl) FindAll(status models.ContactStatus, page, pageSize int) ([]models.ContactMessage, int64, error) {
	var messages []models.ContactMessage
	query := r.db.Model(&models.ContactMessage{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(pageSize).Offset((page - 1) * pageSize).Find(&messages).Error
	return messages, total, err
}

func (r *ContactRepositoryImpl) UpdateStatus(id string, status models.ContactStatus) error {
	result := r.db.Model(&models.ContactMessage{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContactMessageNotFound
	}
	return nil
}

func (r *ContactRepositoryImpl) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.ContactMessage{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContactMessageNotFound
	}
	return nil
}
