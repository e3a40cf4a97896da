package repositories

import (
	"errors"

	"skillspace_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCourseNotFound      = errors.New("course not found")
	ErrAssignmentNotFound  = errors.New("assignment not found")
	ErrCertificateNotFound = errors.New("certificate not found")
)

type CourseFilter struct {
	Category      string
	Level         string
	Search        string
	OnlyPublished bool
	Page          int
	PageSize      int
}

type CourseRepository interface {
	Create(course *models.Course) error
	FindByID(id string) (*models.Course, error)
	FindWithFilter(criteria CourseFilter) ([]models.Course, int64, error)
	Update(id string, fields map[string]interface{}) error
	Delete(id string) error

	CreateAssignment(a *models.Assignment) error
	FindAssignmentsByCourse(courseID string) ([]models.Assignment, error)
	FindAssignments(page, pageSize int) ([]models.Assignment, int64, error)
	UpdateAssignment(id string, fields map[string]interface{}) error
	DeleteAssignment(id string) error

	CreateCertificate(c *models.Certificate) error
	FindCertificatesByUser(userID string) ([]models.Certificate, error)
	FindCertificates(page, pageSize int) ([]models.Certificate, int64, error)
	DeleteCertificate(id string) error
}

type CourseRepositoryImpl struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &CourseRepositoryImpl{db: db}
}

func (r *CourseRepositoryImpl) Create(course *models.Course) error {
	return r.db.Create(course).Error
}

func (r *CourseRepositoryImpl) FindByID(id string) (*models.Course, error) {
	var course models.Course
	err := r.db.First(&course, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepositoryImpl) FindWithFilter(criteria CourseFilter) ([]models.Course, int64, error) {
	var courses []models.Course
	query := r.db.Model(&models.Course{})

	if criteria.Category != "" {
		query = query.Where("category = ?", criteria.Category)
	}
	if criteria.Level != "" {
		query = query.Where("level = ?", criteria.Level)
	}
	if criteria.OnlyPublished {
		query = query.Where("is_published = ?", true)
	}
	if criteria.Search != "" {
		search := "%" + criteria.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", search, search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (criteria.Page - 1) * criteria.PageSize
	err := query.Order("created_at DESC").Limit(criteria.PageSize).Offset(offset).Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepositoryImpl) Update(id string, fields map[string]interface{}) error {
	result := r.db.Model(&models.Course{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCourseNotFound
	}
	return nil
}

func (r *CourseRepositoryImpl) Delete(id string) error {
	// Курс удаляется вместе с заданиями
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", id).Delete(&models.Assignment{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Course{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCourseNotFound
		}
		return nil
	})
}

// --- Assignments ---

func (r *CourseRepositoryImpl) CreateAssignment(a *models.Assignment) error {
	return r.db.Create(a).Error
}

func (r *CourseRepositoryImpl) FindAssignmentsByCourse(courseID string) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := r.db.Where("course_id = ?", courseID).Order("created_at ASC").Find(&assignments).Error
	return assignments, err
}

func (r *CourseRepositoryImpl) FindAssignments(page, pageSize int) ([]models.Assignment, int64, error) {
	var assignments []models.Assignment
	var total int64
	if err := r.db.Model(&models.Assignment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Order("created_at DESC").Limit(pageSize).Offset((page - 1) * pageSize).Find(&assignments).Error
	return assignments, total, err
}

func (r *CourseRepositoryImpl) UpdateAssignment(id string, fields map[string]interface{}) error {
	result := r.db.Model(&models.Assignment{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}

func (r *CourseRepositoryImpl) DeleteAssignment(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Assignment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}

// --- Certificates ---

func (r *CourseRepositoryImpl) CreateCertificate(c *models.Certificate) error {
	return r.db.Create(c).Error
}

func (r *CourseRepositoryImpl) FindCertificatesByUser(userID string) ([]models.Certificate, error) {
	var certs []models.Certificate
	err := r.db.Where("user_id = ?", userID).Order("issued_at DESC").Find(&certs).Error
	return certs, err
}

func (r *CourseRepositoryImpl) FindCertificates(page, pageSize int) ([]models.Certificate, int64, error) {
	var certs []models.Certificate
	var total int64
	if err := r.db.Model(&models.Certificate{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Order("issued_at DESC").Limit(pageSize).Offset((page - 1) * pageSize).Find(&certs).Error
	return certs, total, err
}

func (r *CourseRepositoryImpl) DeleteCertificate(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Certificate{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCertificateNotFound
	}
	return nil
}
