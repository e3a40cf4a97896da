package repositories

import (
	"errors"
	"strings"
	"time"

	"skillspace_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrAlreadyEnrolled    = errors.New("already enrolled")
)

type EnrollmentFilter struct {
	UserID   string
	CourseID string
	Status   models.EnrollmentStatus
	Page     int
	PageSize int
}

type EnrollmentRepository interface {
	Create(enrollment *models.Enrollment) error
	FindByID(id string) (*models.Enrollment, error)
	FindByUser(userID string) ([]models.Enrollment, error)
	FindWithFilter(criteria EnrollmentFilter) ([]models.Enrollment, int64, error)
	Update(id string, fields map[string]interface{}) error
	Delete(id string) error

	// Гостевые заявки (auto-linking)
	CreateRequest(req *models.EnrollmentRequest) error
	FindUnlinkedByEmail(email string) ([]models.EnrollmentRequest, error)
	MarkLinked(requestID, userID string) error
}

type EnrollmentRepositoryImpl struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &EnrollmentRepositoryImpl{db: db}
}

// Create полагается на уникальный индекс (user_id, course_id):
// повторная запись не вставляется.
func (r *EnrollmentRepositoryImpl) Create(enrollment *models.Enrollment) error {
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(enrollment)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAlreadyEnrolled
	}
	return nil
}

func (r *EnrollmentRepositoryImpl) FindByID(id string) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := r.db.First(&enrollment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}
	return &enrollment, nil
}

func (r *EnrollmentRepositoryImpl) FindByUser(userID string) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentRepositoryImpl) FindWithFilter(criteria EnrollmentFilter) ([]models.Enrollment, int64, error) {
	var enrollments []models.Enrollment
	query := r.db.Model(&models.Enrollment{})

	if criteria.UserID != "" {
		query = query.Where("user_id = ?", criteria.UserID)
	}
	if criteria.CourseID != "" {
		query = query.Where("course_id = ?", criteria.CourseID)
	}
	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (criteria.Page - 1) * criteria.PageSize
	err := query.Order("created_at DESC").Limit(criteria.PageSize).Offset(offset).Find(&enrollments).Error
	return enrollments, total, err
}

func (r *EnrollmentRepositoryImpl) Update(id string, fields map[string]interface{}) error {
	result := r.db.Model(&models.Enrollment{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEnrollmentNotFound
	}
	return nil
}

func (r *EnrollmentRepositoryImpl) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Enrollment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEnrollmentNotFound
	}
	return nil
}

// --- Гостевые заявки ---

func (r *EnrollmentRepositoryImpl) CreateRequest(req *models.EnrollmentRequest) error {
	req.Email = strings.ToLower(req.Email)
	return r.db.Create(req).Error
}

func (r *EnrollmentRepositoryImpl) FindUnlinkedByEmail(email string) ([]models.EnrollmentRequest, error) {
	var requests []models.EnrollmentRequest
	err := r.db.Where("LOWER(email) = ? AND linked_user_id IS NULL", strings.ToLower(email)).
		Find(&requests).Error
	return requests, err
}

func (r *EnrollmentRepositoryImpl) MarkLinked(requestID, userID string) error {
	now := time.Now()
	return r.db.Model(&models.EnrollmentRequest{}).Where("id = ?", requestID).Updates(map[string]interface{}{
		"linked_user_id": userID,
		"linked_at":      now,
	}).Error
}
