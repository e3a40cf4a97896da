package services

import (
	"encoding/json"

	"skillspace_backend/internal/models"
	"skillspace_backend/internal/repositories"
	"skillspace_backend/internal/services/dto"
	"skillspace_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type InternshipService interface {
	CreateInternship(db *gorm.DB, req *dto.CreateInternshipRequest) (*models.Internship, error)
	GetInternship(db *gorm.DB, internshipID string) (*models.Internship, error)
	ListInternships(db *gorm.DB, query *dto.InternshipQuery) (*dto.InternshipListResponse, error)
	UpdateInternship(db *gorm.DB, internshipID string, req *dto.UpdateInternshipRequest) error
	DeleteInternship(db *gorm.DB, internshipID string) error

	Apply(db *gorm.DB, userID, internshipID string, req *dto.ApplyInternshipRequest) (*models.InternshipSubmission, error)
	ListUserSubmissions(db *gorm.DB, userID string) ([]models.InternshipSubmission, error)
	ListSubmissions(db *gorm.DB, internshipID string, page, pageSize int) (*dto.SubmissionListResponse, error)
	ReviewSubmission(db *gorm.DB, submissionID string, status models.SubmissionStatus) error
}

type InternshipServiceImpl struct{}

func NewInternshipService() InternshipService {
	return &InternshipServiceImpl{}
}

func (s *InternshipServiceImpl) CreateInternship(db *gorm.DB, req *dto.CreateInternshipRequest) (*models.Internship, error) {
	internship := &models.Internship{
		Title:          req.Title,
		Company:        req.Company,
		Description:    req.Description,
		Location:       req.Location,
		SpotsTotal:     req.SpotsTotal,
		SpotsAvailable: req.SpotsTotal,
		Deadline:       req.Deadline,
		Status:         models.InternshipStatusOpen,
	}
	if req.Requirements != nil {
		reqJSON, err := json.Marshal(req.Requirements)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		internship.Requirements = reqJSON
	}

	internshipRepo := repositories.NewInternshipRepository(db)
	if err := internshipRepo.Create(internship); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return internship, nil
}

func (s *InternshipServiceImpl) GetInternship(db *gorm.DB, internshipID string) (*models.Internship, error) {
	internshipRepo := repositories.NewInternshipRepository(db)

	internship, err := internshipRepo.FindByID(internshipID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrInternshipNotFound) {
			return nil, apperrors.NewNotFoundError("internship", "Internship not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return internship, nil
}

func (s *InternshipServiceImpl) ListInternships(db *gorm.DB, query *dto.InternshipQuery) (*dto.InternshipListResponse, error) {
	page, pageSize := normalizePage(query.Page, query.PageSize)

	internshipRepo := repositories.NewInternshipRepository(db)
	internships, total, err := internshipRepo.FindWithFilter(repositories.InternshipFilter{
		Status:   query.Status,
		Company:  query.Company,
		Search:   query.Search,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.InternshipListResponse{
		Internships: internships,
		Page:        page,
		PageSize:    pageSize,
		Total:       total,
		TotalPages:  totalPages(total, pageSize),
	}, nil
}

func (s *InternshipServiceImpl) UpdateInternship(db *gorm.DB, internshipID string, req *dto.UpdateInternshipRequest) error {
	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Company != nil {
		fields["company"] = *req.Company
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.Deadline != nil {
		fields["deadline"] = *req.Deadline
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if len(fields) == 0 {
		return nil
	}

	internshipRepo := repositories.NewInternshipRepository(db)
	if err := internshipRepo.Update(internshipID, fields); err != nil {
		if apperrors.Is(err, repositories.ErrInternshipNotFound) {
			return apperrors.NewNotFoundError("internship", "Internship not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *InternshipServiceImpl) DeleteInternship(db *gorm.DB, internshipID string) error {
	internshipRepo := repositories.NewInternshipRepository(db)
	if err := internshipRepo.Delete(internshipID); err != nil {
		if apperrors.Is(err, repositories.ErrInternshipNotFound) {
			return apperrors.NewNotFoundError("internship", "Internship not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// Apply подает заявку на стажировку. Место занимается атомарно:
// при гонке за последнее место лишняя заявка получает отказ, счетчик
// мест не уходит в минус.
func (s *InternshipServiceImpl) Apply(db *gorm.DB, userID, internshipID string, req *dto.ApplyInternshipRequest) (*models.InternshipSubmission, error) {
	submission := &models.InternshipSubmission{
		InternshipID: internshipID,
		UserID:       userID,
		CoverLetter:  req.CoverLetter,
		ResumeURL:    req.ResumeURL,
		Status:       models.SubmissionStatusSubmitted,
	}

	internshipRepo := repositories.NewInternshipRepository(db)
	if err := internshipRepo.Apply(submission); err != nil {
		switch {
		case apperrors.Is(err, repositories.ErrInternshipNotFound):
			return nil, apperrors.NewNotFoundError("internship", "Internship not found")
		case apperrors.Is(err, repositories.ErrNoSpotsLeft):
			return nil, apperrors.ErrInternshipFull
		case apperrors.Is(err, repositories.ErrDuplicateSubmission):
			return nil, apperrors.ErrAlreadyApplied
		default:
			return nil, apperrors.InternalError(err)
		}
	}
	return submission, nil
}

func (s *InternshipServiceImpl) ListUserSubmissions(db *gorm.DB, userID string) ([]models.InternshipSubmission, error) {
	internshipRepo := repositories.NewInternshipRepository(db)
	submissions, err := internshipRepo.FindSubmissionsByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return submissions, nil
}

func (s *InternshipServiceImpl) ListSubmissions(db *gorm.DB, internshipID string, page, pageSize int) (*dto.SubmissionListResponse, error) {
	page, pageSize = normalizePage(page, pageSize)

	internshipRepo := repositories.NewInternshipRepository(db)

	if _, err := internshipRepo.FindByID(internshipID); err != nil {
		return nil, apperrors.NewNotFoundError("internship", "Internship not found")
	}

	submissions, total, err := internshipRepo.FindSubmissionsByInternship(internshipID, page, pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.SubmissionListResponse{
		Submissions: submissions,
		Page:        page,
		PageSize:    pageSize,
		Total:       total,
		TotalPages:  totalPages(total, pageSize),
	}, nil
}

func (s *InternshipServiceImpl) ReviewSubmission(db *gorm.DB, submissionID string, status models.SubmissionStatus) error {
	internshipRepo := repositories.NewInternshipRepository(db)
	if err := internshipRepo.UpdateSubmissionStatus(submissionID, status); err != nil {
		if apperrors.Is(err, repositories.ErrSubmissionNotFound) {
			return apperrors.NewNotFoundError("internship", "Submission not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}
