package services

import (
	"skillspace_backend/internal/models"
	"skillspace_backend/internal/repositories"
	"skillspace_backend/internal/services/dto"
	"skillspace_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type EnrollmentService interface {
	Enroll(db *gorm.DB, userID string, req *dto.EnrollRequest) (*models.Enrollment, error)
	GuestEnroll(db *gorm.DB, req *dto.GuestEnrollRequest) error
	ListUserEnrollments(db *gorm.DB, userID string) ([]dto.EnrollmentResponse, error)
	UpdateProgress(db *gorm.DB, userID, enrollmentID string, req *dto.UpdateProgressRequest) error
	CancelEnrollment(db *gorm.DB, userID, enrollmentID string) error
	ListEnrollments(db *gorm.DB, userID, courseID string, page, pageSize int) (*dto.EnrollmentListResponse, error)
}

type EnrollmentServiceImpl struct{}

func NewEnrollmentService() EnrollmentService {
	return &EnrollmentServiceImpl{}
}

// Enroll записывает авторизованного пользователя на курс
func (s *EnrollmentServiceImpl) Enroll(db *gorm.DB, userID string, req *dto.EnrollRequest) (*models.Enrollment, error) {
	courseRepo := repositories.NewCourseRepository(db)

	course, err := courseRepo.FindByID(req.CourseID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("course", "Course not found")
	}
	if !course.IsPublished {
		return nil, apperrors.NewNotFoundError("course", "Course not found")
	}

	enrollment := &models.Enrollment{
		UserID:   userID,
		CourseID: req.CourseID,
		Status:   models.EnrollmentStatusActive,
	}

	enrollmentRepo := repositories.NewEnrollmentRepository(db)
	if err := enrollmentRepo.Create(enrollment); err != nil {
		if apperrors.Is(err, repositories.ErrAlreadyEnrolled) {
			return nil, apperrors.ErrAlreadyEnrolled
		}
		return nil, apperrors.InternalError(err)
	}
	return enrollment, nil
}

// GuestEnroll сохраняет гостевую заявку на курс. Заявка будет привязана
// к аккаунту с тем же email при первом логине.
func (s *EnrollmentServiceImpl) GuestEnroll(db *gorm.DB, req *dto.GuestEnrollRequest) error {
	courseRepo := repositories.NewCourseRepository(db)

	course, err := courseRepo.FindByID(req.CourseID)
	if err != nil || !course.IsPublished {
		return apperrors.NewNotFoundError("course", "Course not found")
	}

	enrollmentRepo := repositories.NewEnrollmentRepository(db)
	request := &models.EnrollmentRequest{
		Email:    req.Email,
		CourseID: req.CourseID,
		Name:     req.Name,
		Phone:    req.Phone,
	}
	if err := enrollmentRepo.CreateRequest(request); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *EnrollmentServiceImpl) ListUserEnrollments(db *gorm.DB, userID string) ([]dto.EnrollmentResponse, error) {
	enrollmentRepo := repositories.NewEnrollmentRepository(db)
	courseRepo := repositories.NewCourseRepository(db)

	enrollments, err := enrollmentRepo.FindByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for _, e := range enrollments {
		resp := dto.EnrollmentResponse{
			ID:        e.ID,
			CourseID:  e.CourseID,
			Progress:  e.Progress,
			Status:    e.Status,
			CreatedAt: e.CreatedAt,
		}
		if course, err := courseRepo.FindByID(e.CourseID); err == nil {
			resp.Course = course
		}
		result = append(result, resp)
	}
	return result, nil
}

func (s *EnrollmentServiceImpl) UpdateProgress(db *gorm.DB, userID, enrollmentID string, req *dto.UpdateProgressRequest) error {
	enrollmentRepo := repositories.NewEnrollmentRepository(db)

	enrollment, err := enrollmentRepo.FindByID(enrollmentID)
	if err != nil {
		return apperrors.NewNotFoundError("enrollment", "Enrollment not found")
	}
	if enrollment.UserID != userID {
		return apperrors.ErrInsufficientPermissions
	}

	fields := map[string]interface{}{"progress": req.Progress}
	if req.Progress >= 100 {
		fields["status"] = models.EnrollmentStatusCompleted
	}
	return enrollmentRepo.Update(enrollmentID, fields)
}

func (s *EnrollmentServiceImpl) CancelEnrollment(db *gorm.DB, userID, enrollmentID string) error {
	enrollmentRepo := repositories.NewEnrollmentRepository(db)

	enrollment, err := enrollmentRepo.FindByID(enrollmentID)
	if err != nil {
		return apperrors.NewNotFoundError("enrollment", "Enrollment not found")
	}
	if enrollment.UserID != userID {
		return apperrors.ErrInsufficientPermissions
	}

	return enrollmentRepo.Update(enrollmentID, map[string]interface{}{
		"status": models.EnrollmentStatusCancelled,
	})
}

// ListEnrollments - список записей для админки
func (s *EnrollmentServiceImpl) ListEnrollments(db *gorm.DB, userID, courseID string, page, pageSize int) (*dto.EnrollmentListResponse, error) {
	page, pageSize = normalizePage(page, pageSize)

	enrollmentRepo := repositories.NewEnrollmentRepository(db)
	enrollments, total, err := enrollmentRepo.FindWithFilter(repositories.EnrollmentFilter{
		UserID:   userID,
		CourseID: courseID,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.EnrollmentListResponse{
		Enrollments: enrollments,
		Page:        page,
		PageSize:    pageSize,
		Total:       total,
		TotalPages:  totalPages(total, pageSize),
	}, nil
}
