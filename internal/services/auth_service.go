package services

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"skillspace_backend/internal/auth"
	"skillspace_backend/internal/email"
	"skillspace_backend/internal/logger"
	"skillspace_backend/internal/models"
	"skillspace_backend/internal/repositories"
	"skillspace_backend/internal/services/dto"
	"skillspace_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const refreshTokenTTL = 30 * 24 * time.Hour

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) error
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(db *gorm.DB, refreshToken string) (*dto.AuthResponse, error)
	Logout(db *gorm.DB, refreshToken string) error
	VerifyEmail(db *gorm.DB, token string) error
	RequestPasswordReset(db *gorm.DB, email string) error
	ResetPassword(db *gorm.DB, token, newPassword string) error
	ChangePassword(db *gorm.DB, userID, currentPassword, newPassword string) error
}

type AuthServiceImpl struct {
	emailProvider email.Provider
}

func NewAuthService(emailProvider email.Provider) AuthService {
	return &AuthServiceImpl{emailProvider: emailProvider}
}

// Register - регистрация нового пользователя
func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) error {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return apperrors.ErrWeakPassword
	}

	if !models.ValidRegistrationRole(req.Role) {
		return apperrors.ErrInvalidUserRole
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.InternalError(err)
	}

	verificationToken := generateRandomToken()

	user := &models.User{
		Email:             req.Email,
		PasswordHash:      hashedPassword,
		Role:              req.Role,
		Status:            models.UserStatusActive,
		IsVerified:        false,
		VerificationToken: verificationToken,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Phone:             req.Phone,
		City:              req.City,
		Company:           req.Company,
	}

	userRepo := repositories.NewUserRepository(db)
	if err := userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return apperrors.ErrEmailAlreadyExists
		}
		return apperrors.InternalError(err)
	}

	// Отправка письма не должна ронять регистрацию
	if err := s.emailProvider.SendVerification(user.Email, verificationToken); err != nil {
		logger.WithError(err).Warn("failed to send verification email", "email", user.Email)
	}

	return nil
}

// Login - аутентификация пользователя
func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	userRepo := repositories.NewUserRepository(db)

	user, err := userRepo.FindByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.Status == models.UserStatusDeactivated {
		return nil, apperrors.ErrAccountDeactivated
	}

	// Гостевые заявки на курсы привязываются к аккаунту по email.
	// Ошибки привязки логгируются, но не блокируют вход.
	if err := linkGuestEnrollments(db, user); err != nil {
		logger.WithError(err).Warn("failed to link guest enrollments", "user_id", user.ID)
	}

	accessToken, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken, err := s.createRefreshToken(db, user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         buildUserDTO(user),
	}, nil
}

// RefreshToken - обновление access token по refresh token с ротацией
func (s *AuthServiceImpl) RefreshToken(db *gorm.DB, refreshToken string) (*dto.AuthResponse, error) {
	tokenRepo := repositories.NewRefreshTokenRepository(db)

	token, err := tokenRepo.FindByToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if time.Now().After(token.ExpiresAt) {
		_ = tokenRepo.DeleteByToken(refreshToken)
		return nil, apperrors.ErrInvalidToken
	}

	userRepo := repositories.NewUserRepository(db)
	user, err := userRepo.FindByID(token.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if user.Status == models.UserStatusDeactivated {
		return nil, apperrors.ErrAccountDeactivated
	}

	accessToken, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Ротация: старый refresh token гасится, выпускается новый
	if err := tokenRepo.DeleteByToken(refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}
	newRefreshToken, err := s.createRefreshToken(db, user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		User:         buildUserDTO(user),
	}, nil
}

// Logout - выход (удаление refresh token)
func (s *AuthServiceImpl) Logout(db *gorm.DB, refreshToken string) error {
	tokenRepo := repositories.NewRefreshTokenRepository(db)
	if err := tokenRepo.DeleteByToken(refreshToken); err != nil {
		if apperrors.Is(err, repositories.ErrRefreshTokenNotFound) {
			return apperrors.ErrInvalidToken
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// VerifyEmail - подтверждение email по токену
func (s *AuthServiceImpl) VerifyEmail(db *gorm.DB, token string) error {
	userRepo := repositories.NewUserRepository(db)

	user, err := userRepo.FindByVerificationToken(token)
	if err != nil {
		return apperrors.ErrInvalidToken
	}

	return userRepo.VerifyUser(user.ID)
}

// RequestPasswordReset - запрос сброса пароля
func (s *AuthServiceImpl) RequestPasswordReset(db *gorm.DB, emailAddr string) error {
	userRepo := repositories.NewUserRepository(db)

	user, err := userRepo.FindByEmail(emailAddr)
	if err != nil {
		// Не раскрываем существование email
		return nil
	}

	resetToken := generateRandomToken()
	resetTokenExp := time.Now().Add(1 * time.Hour)

	user.ResetToken = resetToken
	user.ResetTokenExp = &resetTokenExp

	if err := userRepo.Update(user); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.emailProvider.SendPasswordReset(user.Email, resetToken); err != nil {
		logger.WithError(err).Warn("failed to send password reset email", "email", user.Email)
	}

	return nil
}

// ResetPassword - установка нового пароля по reset-токену
func (s *AuthServiceImpl) ResetPassword(db *gorm.DB, token, newPassword string) error {
	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	userRepo := repositories.NewUserRepository(db)

	user, err := userRepo.FindByResetToken(token)
	if err != nil {
		return apperrors.ErrInvalidToken
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user.PasswordHash = hashedPassword
	user.ResetToken = ""
	user.ResetTokenExp = nil

	if err := userRepo.Update(user); err != nil {
		return apperrors.InternalError(err)
	}

	// Все сессии сбрасываются
	tokenRepo := repositories.NewRefreshTokenRepository(db)
	return tokenRepo.DeleteByUserID(user.ID)
}

// ChangePassword - смена пароля авторизованным пользователем
func (s *AuthServiceImpl) ChangePassword(db *gorm.DB, userID, currentPassword, newPassword string) error {
	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	userRepo := repositories.NewUserRepository(db)

	user, err := userRepo.FindByID(userID)
	if err != nil {
		return apperrors.ErrNotFound(err)
	}

	if !auth.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user.PasswordHash = hashedPassword
	return userRepo.Update(user)
}

// --- Вспомогательные функции ---

func (s *AuthServiceImpl) createRefreshToken(db *gorm.DB, userID string) (string, error) {
	tokenRepo := repositories.NewRefreshTokenRepository(db)

	token := &models.RefreshToken{
		UserID:    userID,
		Token:     generateRandomToken(),
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := tokenRepo.Create(token); err != nil {
		return "", err
	}
	return token.Token, nil
}

// linkGuestEnrollments привязывает гостевые заявки на курсы к аккаунту.
// Повторный вход - no-op: привязанные заявки выпадают из выборки, а
// дубликат записи на курс гасится уникальным индексом.
func linkGuestEnrollments(db *gorm.DB, user *models.User) error {
	return db.Transaction(func(tx *gorm.DB) error {
		enrollmentRepo := repositories.NewEnrollmentRepository(tx)

		requests, err := enrollmentRepo.FindUnlinkedByEmail(user.Email)
		if err != nil {
			return err
		}

		for _, req := range requests {
			enrollment := &models.Enrollment{
				UserID:   user.ID,
				CourseID: req.CourseID,
				Status:   models.EnrollmentStatusActive,
			}
			if err := enrollmentRepo.Create(enrollment); err != nil &&
				!apperrors.Is(err, repositories.ErrAlreadyEnrolled) {
				return err
			}
			if err := enrollmentRepo.MarkLinked(req.ID, user.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

func buildUserDTO(user *models.User) dto.UserDTO {
	return dto.UserDTO{
		ID:         user.ID,
		Email:      user.Email,
		Role:       user.Role,
		Status:     user.Status,
		IsVerified: user.IsVerified,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		CreatedAt:  user.CreatedAt,
	}
}

func generateRandomToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
