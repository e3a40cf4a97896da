package repositories

import (
	"errors"
	"time"

	"skillspace_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInternshipNotFound  = errors.New("internship not found")
	ErrSubmissionNotFound  = errors.New("submission not found")
	ErrDuplicateSubmission = errors.New("submission already exists")
	ErrNoSpotsLeft         = errors.New("no spots left")
)

type InternshipFilter struct {
	Status   models.InternshipStatus
	Company  string
	Search   string
	Page     int
	PageSize int
}

type InternshipRepository interface {
	Create(internship *models.Internship) error
	FindByID(id string) (*models.Internship, error)
	FindWithFilter(criteria InternshipFilter) ([]models.Internship, int64, error)
	Update(id string, fields map[string]interface{}) error
	Delete(id string) error

	// Apply атомарно занимает место и создаёт заявку
	Apply(submission *models.InternshipSubmission) error
	FindSubmissionByID(id string) (*models.InternshipSubmission, error)
	FindSubmissionsByUser(userID string) ([]models.InternshipSubmission, error)
	FindSubmissionsByInternship(internshipID string, page, pageSize int) ([]models.InternshipSubmission, int64, error)
	UpdateSubmissionStatus(id string, status models.SubmissionStatus) error

	// CloseExpired закрывает стажировки с истёкшим дедлайном, возвращает число закрытых
	CloseExpired() (int64, error)
}

type InternshipRepositoryImpl struct {
	db *gorm.DB
}

func NewInternshipRepository(db *gorm.DB) InternshipRepository {
	return &InternshipRepositoryImpl{db: db}
}

func (r *InternshipRepositoryImpl) Create(internship *models.Internship) error {
	if internship.Status == "" {
		internship.Status = models.InternshipStatusOpen
	}
	if internship.SpotsAvailable == 0 {
		internship.SpotsAvailable = internship.SpotsTotal
	}
	return r.db.Create(internship).Error
}

func (r *InternshipRepositoryImpl) FindByID(id string) (*models.Internship, error) {
	var internship models.Internship
	err := r.db.First(&internship, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInternshipNotFound
		}
		return nil, err
	}
	return &internship, nil
}

func (r *InternshipRepositoryImpl) FindWithFilter(criteria InternshipFilter) ([]models.Internship, int64, error) {
	var internships []models.Internship
	query := r.db.Model(&models.Internship{})

	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}
	if criteria.Company != "" {
		query = query.Where("company = ?", criteria.Company)
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
	err := query.Order("created_at DESC").Limit(criteria.PageSize).Offset(offset).Find(&internships).Error
	return internships, total, err
}

func (r *InternshipRepositoryImpl) Update(id string, fields map[string]interface{}) error {
	result := r.db.Model(&models.Internship{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInternshipNotFound
	}
	return nil
}

func (r *InternshipRepositoryImpl) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("internship_id = ?", id).Delete(&models.InternshipSubmission{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Internship{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInternshipNotFound
		}
		return nil
	})
}

// Apply занимает место условным декрементом: UPDATE проходит только пока
// spots_available > 0 и стажировка открыта, так что счётчик не уходит в
// минус при гонке. Заявка создаётся в той же транзакции; повторная заявка
// того же пользователя ловится уникальным индексом (internship_id, user_id).
func (r *InternshipRepositoryImpl) Apply(submission *models.InternshipSubmission) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Internship{}).
			Where("id = ? AND status = ? AND spots_available > 0", submission.InternshipID, models.InternshipStatusOpen).
			UpdateColumn("spots_available", gorm.Expr("spots_available - 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Либо стажировки нет, либо мест не осталось
			var count int64
			if err := tx.Model(&models.Internship{}).Where("id = ?", submission.InternshipID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrInternshipNotFound
			}
			return ErrNoSpotsLeft
		}

		if submission.Status == "" {
			submission.Status = models.SubmissionStatusSubmitted
		}
		insert := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(submission)
		if insert.Error != nil {
			return insert.Error
		}
		if insert.RowsAffected == 0 {
			// Откат транзакции вернёт место обратно
			return ErrDuplicateSubmission
		}
		return nil
	})
}

func (r *InternshipRepositoryImpl) FindSubmissionByID(id string) (*models.InternshipSubmission, error) {
	var submission models.InternshipSubmission
	err := r.db.First(&submission, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	return &submission, nil
}

func (r *InternshipRepositoryImpl) FindSubmissionsByUser(userID string) ([]models.InternshipSubmission, error) {
	var submissions []models.InternshipSubmission
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&submissions).Error
	return submissions, err
}

func (r *InternshipRepositoryImpl) FindSubmissionsByInternship(internshipID string, page, pageSize int) ([]models.InternshipSubmission, int64, error) {
	var submissions []models.InternshipSubmission
	query := r.db.Model(&models.InternshipSubmission{}).Where("internship_id = ?", internshipID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(pageSize).Offset((page - 1) * pageSize).Find(&submissions).Error
	return submissions, total, err
}

func (r *InternshipRepositoryImpl) UpdateSubmissionStatus(id string, status models.SubmissionStatus) error {
	result := r.db.Model(&models.InternshipSubmission{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}

func (r *InternshipRepositoryImpl) CloseExpired() (int64, error) {
	result := r.db.Model(&models.Internship{}).
		Where("status = ? AND deadline < ?", models.InternshipStatusOpen, time.Now()).
		Update("status", models.InternshipStatusClosed)
	return result.RowsAffected, result.Error
}
