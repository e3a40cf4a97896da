package services

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"skillspace_backend/internal/config"
	"skillspace_backend/internal/imageprocessor"
	"skillspace_backend/internal/models"
	"skillspace_backend/internal/repositories"
	"skillspace_backend/internal/services/dto"
	"skillspace_backend/internal/storage"
	"skillspace_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService interface {
	GetProfile(db *gorm.DB, userID string) (*dto.UserResponse, error)
	UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	UploadAvatar(ctx context.Context, db *gorm.DB, userID string, file *multipart.FileHeader) (string, error)
	AddConnection(db *gorm.DB, userID, connectedUserID string) error
	RemoveConnection(db *gorm.DB, userID, connectedUserID string) error
	ListConnections(db *gorm.DB, userID string) ([]dto.UserResponse, error)
}

type UserServiceImpl struct {
	storage   storage.Storage
	processor *imageprocessor.Processor
}

func NewUserService(store storage.Storage, processor *imageprocessor.Processor) UserService {
	return &UserServiceImpl{
		storage:   store,
		processor: processor,
	}
}

func (s *UserServiceImpl) GetProfile(db *gorm.DB, userID string) (*dto.UserResponse, error) {
	userRepo := repositories.NewUserRepository(db)

	user, err := userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}

	return s.buildUserResponse(user), nil
}

func (s *UserServiceImpl) UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	userRepo := repositories.NewUserRepository(db)

	fields := map[string]interface{}{}
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.City != nil {
		fields["city"] = *req.City
	}
	if req.Company != nil {
		fields["company"] = *req.Company
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.Skills != nil {
		skillsJSON, err := json.Marshal(req.Skills)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		fields["skills"] = skillsJSON
	}

	if len(fields) > 0 {
		if err := userRepo.UpdateProfile(userID, fields); err != nil {
			if apperrors.Is(err, repositories.ErrUserNotFound) {
				return nil, apperrors.NewNotFoundError("user", "User not found")
			}
			return nil, apperrors.InternalError(err)
		}
	}

	return s.GetProfile(db, userID)
}

// UploadAvatar принимает изображение, сжимает его и сохраняет в storage.
// Возвращает публичный URL аватара.
func (s *UserServiceImpl) UploadAvatar(ctx context.Context, db *gorm.DB, userID string, file *multipart.FileHeader) (string, error) {
	cfg := config.GetConfig()

	if file.Size > cfg.Upload.MaxSize {
		return "", apperrors.ErrFileTooLarge
	}

	contentType := file.Header.Get("Content-Type")
	if !allowedContentType(contentType, cfg.Upload.AllowedTypes) {
		return "", apperrors.ErrInvalidFileType
	}

	src, err := file.Open()
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	defer src.Close()

	processed, ext, err := s.processor.ProcessImage(src, imageprocessor.SizeAvatar)
	if err != nil {
		return "", apperrors.ErrInvalidFileType
	}

	path := filepath.Join("avatars", fmt.Sprintf("%s.%s", uuid.NewString(), ext))
	if err := s.storage.Save(ctx, path, processed, contentType); err != nil {
		return "", apperrors.InternalError(err)
	}

	userRepo := repositories.NewUserRepository(db)
	if err := userRepo.UpdateAvatar(userID, path); err != nil {
		return "", apperrors.InternalError(err)
	}

	url, err := s.storage.GetURL(ctx, path)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	return url, nil
}

// AddConnection создает взаимную связь между пользователями.
// Связи влияют на видимость постов уровня "connections".
func (s *UserServiceImpl) AddConnection(db *gorm.DB, userID, connectedUserID string) error {
	if userID == connectedUserID {
		return apperrors.NewBadRequestError("Cannot connect to yourself")
	}

	userRepo := repositories.NewUserRepository(db)
	if _, err := userRepo.FindByID(connectedUserID); err != nil {
		return apperrors.NewNotFoundError("user", "User not found")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		connRepo := repositories.NewConnectionRepository(tx)
		if err := connRepo.Create(&models.Connection{UserID: userID, ConnectedUserID: connectedUserID}); err != nil {
			return err
		}
		return connRepo.Create(&models.Connection{UserID: connectedUserID, ConnectedUserID: userID})
	})
}

func (s *UserServiceImpl) RemoveConnection(db *gorm.DB, userID, connectedUserID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		connRepo := repositories.NewConnectionRepository(tx)
		if err := connRepo.Delete(userID, connectedUserID); err != nil {
			if apperrors.Is(err, repositories.ErrConnectionNotFound) {
				return apperrors.NewNotFoundError("connection", "Connection not found")
			}
			return err
		}
		// Обратная сторона могла быть удалена ранее
		if err := connRepo.Delete(connectedUserID, userID); err != nil &&
			!apperrors.Is(err, repositories.ErrConnectionNotFound) {
			return err
		}
		return nil
	})
}

func (s *UserServiceImpl) ListConnections(db *gorm.DB, userID string) ([]dto.UserResponse, error) {
	connRepo := repositories.NewConnectionRepository(db)
	userRepo := repositories.NewUserRepository(db)

	ids, err := connRepo.ListConnectedIDs(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := make([]dto.UserResponse, 0, len(ids))
	for _, id := range ids {
		user, err := userRepo.FindByID(id)
		if err != nil {
			// Связь на удаленного пользователя просто пропускаем
			continue
		}
		result = append(result, *s.buildUserResponse(user))
	}
	return result, nil
}

func allowedContentType(contentType string, allowed []string) bool {
	for _, t := range allowed {
		if t == contentType {
			return true
		}
	}
	return false
}

func (s *UserServiceImpl) buildUserResponse(user *models.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		Role:       user.Role,
		Status:     user.Status,
		IsVerified: user.IsVerified,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Phone:      user.Phone,
		City:       user.City,
		Company:    user.Company,
		Bio:        user.Bio,
		Skills:     json.RawMessage(user.Skills),
	}
	if user.AvatarPath != "" {
		if url, err := s.storage.GetURL(context.Background(), user.AvatarPath); err == nil {
			resp.AvatarURL = url
		}
	}
	return resp
}
