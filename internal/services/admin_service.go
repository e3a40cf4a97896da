package services

import (
	"skillspace_backend/internal/models"
	"skillspace_backend/internal/repositories"
	"skillspace_backend/internal/services/dto"
	"skillspace_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// AdminService - операции бэк-офиса: пользователи и сводная статистика.
type AdminService interface {
	GetDashboardStats(db *gorm.DB) (*dto.DashboardStats, error)
	ListUsers(db *gorm.DB, filter *dto.AdminUserFilter) (*dto.UserListResponse, error)
	GetUser(db *gorm.DB, userID string) (*dto.UserResponse, error)
	UpdateUser(db *gorm.DB, adminID, userID string, req *dto.AdminUpdateUserRequest) error
	DeactivateUser(db *gorm.DB, adminID, userID string) error
	ActivateUser(db *gorm.DB, userID string) error
	DeleteUser(db *gorm.DB, adminID, userID string) error
}

type AdminServiceImpl struct {
	userService UserService
}

func NewAdminService(userService UserService) AdminService {
	return &AdminServiceImpl{userService: userService}
}

func (s *AdminServiceImpl) GetDashboardStats(db *gorm.DB) (*dto.DashboardStats, error) {
	userRepo := repositories.NewUserRepository(db)
	activityRepo := repositories.NewActivityRepository(db)

	userStats, err := userRepo.GetRegistrationStats(30)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	totalPosts, err := activityRepo.CountPosts()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	var totalCourses int64
	if err := db.Model(&models.Course{}).Count(&totalCourses).Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	var totalApplicants int64
	if err := db.Model(&models.InternshipSubmission{}).Count(&totalApplicants).Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	var newContacts int64
	if err := db.Model(&models.ContactMessage{}).
		Where("status = ?", models.ContactStatusNew).Count(&newContacts).Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	var pendingRequests int64
	if err := db.Model(&models.ServiceRequest{}).
		Where("status = ?", models.ServiceRequestStatusPending).Count(&pendingRequests).Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.DashboardStats{
		Users:           userStats,
		TotalPosts:      totalPosts,
		TotalCourses:    totalCourses,
		TotalApplicants: totalApplicants,
		NewContacts:     newContacts,
		PendingRequests: pendingRequests,
	}, nil
}

func (s *AdminServiceImpl) ListUsers(db *gorm.DB, filter *dto.AdminUserFilter) (*dto.UserListResponse, error) {
	page, pageSize := normalizePage(filter.Page, filter.PageSize)

	userRepo := repositories.NewUserRepository(db)
	users, total, err := userRepo.FindWithFilter(repositories.UserFilter{
		Role:     filter.Role,
		Status:   filter.Status,
		Search:   filter.Search,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp, err := s.userService.GetProfile(db, users[i].ID)
		if err != nil {
			continue
		}
		result = append(result, *resp)
	}

	return &dto.UserListResponse{
		Users:      result,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

func (s *AdminServiceImpl) GetUser(db *gorm.DB, userID string) (*dto.UserResponse, error) {
	return s.userService.GetProfile(db, userID)
}

func (s *AdminServiceImpl) UpdateUser(db *gorm.DB, adminID, userID string, req *dto.AdminUpdateUserRequest) error {
	if adminID == userID && req.Status != nil && *req.Status == models.UserStatusDeactivated {
		return apperrors.ErrCannotModifySelf
	}

	fields := map[string]interface{}{}
	if req.Role != nil {
		fields["role"] = *req.Role
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if len(fields) == 0 {
		return nil
	}

	userRepo := repositories.NewUserRepository(db)
	if err := userRepo.UpdateProfile(userID, fields); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("user", "User not found")
		}
		return apperrors.InternalError(err)
	}

	// Деактивация гасит все сессии
	if req.Status != nil && *req.Status == models.UserStatusDeactivated {
		tokenRepo := repositories.NewRefreshTokenRepository(db)
		return tokenRepo.DeleteByUserID(userID)
	}
	return nil
}

func (s *AdminServiceImpl) DeactivateUser(db *gorm.DB, adminID, userID string) error {
	if adminID == userID {
		return apperrors.ErrCannotModifySelf
	}

	userRepo := repositories.NewUserRepository(db)
	if err := userRepo.UpdateStatus(userID, models.UserStatusDeactivated); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("user", "User not found")
		}
		return apperrors.InternalError(err)
	}

	tokenRepo := repositories.NewRefreshTokenRepository(db)
	return tokenRepo.DeleteByUserID(userID)
}

func (s *AdminServiceImpl) ActivateUser(db *gorm.DB, userID string) error {
	userRepo := repositories.NewUserRepository(db)
	if err := userRepo.UpdateStatus(userID, models.UserStatusActive); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("user", "User not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AdminServiceImpl) DeleteUser(db *gorm.DB, adminID, userID string) error {
	if adminID == userID {
		return apperrors.ErrCannotModifySelf
	}

	userRepo := repositories.NewUserRepository(db)
	if err := userRepo.Delete(userID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("user", "User not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}
