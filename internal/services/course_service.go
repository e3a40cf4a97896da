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

type CourseService interface {
	CreateCourse(db *gorm.DB, req *dto.CreateCourseRequest) (*models.Course, error)
	GetCourse(db *gorm.DB, courseID string) (*models.Course, error)
	ListCourses(db *gorm.DB, query *dto.CourseQuery, includeUnpublished bool) (*dto.CourseListResponse, error)
	UpdateCourse(db *gorm.DB, courseID string, req *dto.UpdateCourseRequest) (*models.Course, error)
	DeleteCourse(db *gorm.DB, courseID string) error

	CreateAssignment(db *gorm.DB, req *dto.CreateAssignmentRequest) (*models.Assignment, error)
	ListCourseAssignments(db *gorm.DB, courseID string) ([]models.Assignment, error)
	UpdateAssignment(db *gorm.DB, assignmentID string, req *dto.UpdateAssignmentRequest) error
	DeleteAssignment(db *gorm.DB, assignmentID string) error

	IssueCertificate(db *gorm.DB, req *dto.IssueCertificateRequest) (*models.Certificate, error)
	ListUserCertificates(db *gorm.DB, userID string) ([]models.Certificate, error)
	DeleteCertificate(db *gorm.DB, certificateID string) error
}

type CourseServiceImpl struct{}

func NewCourseService() CourseService {
	return &CourseServiceImpl{}
}

func (s *CourseServiceImpl) CreateCourse(db *gorm.DB, req *dto.CreateCourseRequest) (*models.Course, error) {
	course := &models.Course{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Level:         req.Level,
		DurationWeeks: req.DurationWeeks,
		Price:         req.Price,
		IsPublished:   true,
	}
	if req.IsPublished != nil {
		course.IsPublished = *req.IsPublished
	}
	if req.Tags != nil {
		tagsJSON, err := json.Marshal(req.Tags)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		course.Tags = tagsJSON
	}

	courseRepo := repositories.NewCourseRepository(db)
	if err := courseRepo.Create(course); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return course, nil
}

func (s *CourseServiceImpl) GetCourse(db *gorm.DB, courseID string) (*models.Course, error) {
	courseRepo := repositories.NewCourseRepository(db)

	course, err := courseRepo.FindByID(courseID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCourseNotFound) {
			return nil, apperrors.NewNotFoundError("course", "Course not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return course, nil
}

func (s *CourseServiceImpl) ListCourses(db *gorm.DB, query *dto.CourseQuery, includeUnpublished bool) (*dto.CourseListResponse, error) {
	page, pageSize := normalizePage(query.Page, query.PageSize)

	courseRepo := repositories.NewCourseRepository(db)
	courses, total, err := courseRepo.FindWithFilter(repositories.CourseFilter{
		Category:      query.Category,
		Level:         query.Level,
		Search:        query.Search,
		OnlyPublished: !includeUnpublished,
		Page:          page,
		PageSize:      pageSize,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.CourseListResponse{
		Courses:    courses,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

func (s *CourseServiceImpl) UpdateCourse(db *gorm.DB, courseID string, req *dto.UpdateCourseRequest) (*models.Course, error) {
	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.Level != nil {
		fields["level"] = *req.Level
	}
	if req.DurationWeeks != nil {
		fields["duration_weeks"] = *req.DurationWeeks
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.IsPublished != nil {
		fields["is_published"] = *req.IsPublished
	}
	if req.Tags != nil {
		tagsJSON, err := json.Marshal(req.Tags)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		fields["tags"] = tagsJSON
	}

	courseRepo := repositories.NewCourseRepository(db)
	if len(fields) > 0 {
		if err := courseRepo.Update(courseID, fields); err != nil {
			if apperrors.Is(err, repositories.ErrCourseNotFound) {
				return nil, apperrors.NewNotFoundError("course", "Course not found")
			}
			return nil, apperrors.InternalError(err)
		}
	}

	return s.GetCourse(db, courseID)
}

func (s *CourseServiceImpl) DeleteCourse(db *gorm.DB, courseID string) error {
	courseRepo := repositories.NewCourseRepository(db)
	if err := courseRepo.Delete(courseID); err != nil {
		if apperrors.Is(err, repositories.ErrCourseNotFound) {
			return apperrors.NewNotFoundError("course", "Course not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// --- Assignments ---

func (s *CourseServiceImpl) CreateAssignment(db *gorm.DB, req *dto.CreateAssignmentRequest) (*models.Assignment, error) {
	courseRepo := repositories.NewCourseRepository(db)

	if _, err := courseRepo.FindByID(req.CourseID); err != nil {
		return nil, apperrors.NewNotFoundError("course", "Course not found")
	}

	assignment := &models.Assignment{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}
	if err := courseRepo.CreateAssignment(assignment); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return assignment, nil
}

func (s *CourseServiceImpl) ListCourseAssignments(db *gorm.DB, courseID string) ([]models.Assignment, error) {
	courseRepo := repositories.NewCourseRepository(db)

	if _, err := courseRepo.FindByID(courseID); err != nil {
		return nil, apperrors.NewNotFoundError("course", "Course not found")
	}

	assignments, err := courseRepo.FindAssignmentsByCourse(courseID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return assignments, nil
}

func (s *CourseServiceImpl) UpdateAssignment(db *gorm.DB, assignmentID string, req *dto.UpdateAssignmentRequest) error {
	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.DueDate != nil {
		fields["due_date"] = *req.DueDate
	}
	if len(fields) == 0 {
		return nil
	}

	courseRepo := repositories.NewCourseRepository(db)
	if err := courseRepo.UpdateAssignment(assignmentID, fields); err != nil {
		if apperrors.Is(err, repositories.ErrAssignmentNotFound) {
			return apperrors.NewNotFoundError("course", "Assignment not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *CourseServiceImpl) DeleteAssignment(db *gorm.DB, assignmentID string) error {
	courseRepo := repositories.NewCourseRepository(db)
	if err := courseRepo.DeleteAssignment(assignmentID); err != nil {
		if apperrors.Is(err, repositories.ErrAssignmentNotFound) {
			return apperrors.NewNotFoundError("course", "Assignment not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// --- Certificates ---

func (s *CourseServiceImpl) IssueCertificate(db *gorm.DB, req *dto.IssueCertificateRequest) (*models.Certificate, error) {
	courseRepo := repositories.NewCourseRepository(db)
	userRepo := repositories.NewUserRepository(db)

	if _, err := userRepo.FindByID(req.UserID); err != nil {
		return nil, apperrors.NewNotFoundError("user", "User not found")
	}
	if _, err := courseRepo.FindByID(req.CourseID); err != nil {
		return nil, apperrors.NewNotFoundError("course", "Course not found")
	}

	cert := &models.Certificate{
		UserID:         req.UserID,
		CourseID:       req.CourseID,
		IssuedAt:       time.Now(),
		CertificateURL: req.CertificateURL,
	}
	if err := courseRepo.CreateCertificate(cert); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return cert, nil
}

func (s *CourseServiceImpl) ListUserCertificates(db *gorm.DB, userID string) ([]models.Certificate, error) {
	courseRepo := repositories.NewCourseRepository(db)
	certs, err := courseRepo.FindCertificatesByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return certs, nil
}

func (s *CourseServiceImpl) DeleteCertificate(db *gorm.DB, certificateID string) error {
	courseRepo := repositories.NewCourseRepository(db)
	if err := courseRepo.DeleteCertificate(certificateID); err != nil {
		if apperrors.Is(err, repositories.ErrCertificateNotFound) {
			return apperrors.NewNotFoundError("course", "Certificate not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// --- Общая пагинация сервисов ---

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

func totalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
