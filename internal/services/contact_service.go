package services

import (
	"skillspace_backend/internal/models"
	"skillspace_backend/internal/repositories"
	"skillspace_backend/internal/services/dto"
	"skillspace_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ContactService interface {
	SubmitMessage(db *gorm.DB, req *dto.ContactMessageRequest) (*models.ContactMessage, error)
	ListMessages(db *gorm.DB, status models.ContactStatus, page, pageSize int) (*dto.ContactListResponse, error)
	GetMessage(db *gorm.DB, messageID string) (*models.ContactMessage, error)
	UpdateStatus(db *gorm.DB, messageID string, status models.ContactStatus) error
	DeleteMessage(db *gorm.DB, messageID string) error
}

type ContactServiceImpl struct{}

func NewContactService() ContactService {
	return &ContactServiceImpl{}
}

func (s *ContactServiceImpl) SubmitMessage(db *gorm.DB, req *dto.ContactMessageRequest) (*models.ContactMessage, error) {
	message := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
		Status:  models.ContactStatusNew,
	}

	contactRepo := repositories.NewContactRepository(db)
	if err := contactRepo.Create(message); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return message, nil
}

func (s *ContactServiceImpl) ListMessages(db *gorm.DB, status models.ContactStatus, page, pageSize int) (*dto.ContactListResponse, error) {
	page, pageSize = normalizePage(page, pageSize)

	contactRepo := repositories.NewContactRepository(db)
	messages, total, err := contactRepo.FindAll(status, page, pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.ContactListResponse{
		Messages:   messages,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

func (s *ContactServiceImpl) GetMessage(db *gorm.DB, messageID string) (*models.ContactMessage, error) {
	contactRepo := repositories.NewContactRepository(db)

	message, err := contactRepo.FindByID(messageID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrContactMessageNotFound) {
			return nil, apperrors.NewNotFoundError("contact", "Message not found")
		}
		return nil, apperrors.InternalError(err)
	}

	// Первое открытие переводит new -> read
	if message.Status == models.ContactStatusNew {
		if err := contactRepo.UpdateStatus(messageID, models.ContactStatusRead); err == nil {
			message.Status = models.ContactStatusRead
		}
	}
	return message, nil
}

func (s *ContactServiceImpl) UpdateStatus(db *gorm.DB, messageID string, status models.ContactStatus) error {
	contactRepo := repositories.NewContactRepository(db)
	if err := contactRepo.UpdateStatus(messageID, status); err != nil {
		if apperrors.Is(err, repositories.ErrContactMessageNotFound) {
			return apperrors.NewNotFoundError("contact", "Message not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ContactServiceImpl) DeleteMessage(db *gorm.DB, messageID string) error {
	contactRepo := repositories.NewContactRepository(db)
	if err := contactRepo.Delete(messageID); err != nil {
		if apperrors.Is(err, repositories.ErrContactMessageNotFound) {
			return apperrors.NewNotFoundError("contact", "Message not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}
