package repositories

import (
	"errors"

	"skillspace_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound       = errors.New("service category not found")
	ErrSubcategoryNotFound    = errors.New("service subcategory not found")
	ErrOfferingNotFound       = errors.New("service offering not found")
	ErrServiceRequestNotFound = errors.New("service request not found")
)

type ServiceRequestFilter struct {
	SubcategoryID string
	UserID        string
	Status        models.ServiceRequestStatus
	Page          int
	PageSize      int
}

type ServiceRepository interface {
	CreateCategory(category *models.ServiceCategory) error
	// FindCategories возвращает категории вместе с подкатегориями
	FindCategories() ([]models.ServiceCategory, error)
	FindCategoryByID(id string) (*models.ServiceCategory, error)
	UpdateCategory(id string, fields map[string]interface{}) error
	DeleteCategory(id string) error

	CreateSubcategory(sub *models.ServiceSubcategory) error
	FindSubcategoryByID(id string) (*models.ServiceSubcategory, error)
	FindSubcategoriesByCategory(categoryID string) ([]models.ServiceSubcategory, error)
	UpdateSubcategory(id string, fields map[string]interface{}) error
	DeleteSubcategory(id string) error

	CreateOffering(offering *models.ServiceOffering) error
	FindOfferingsBySubcategory(subcategoryID string) ([]models.ServiceOffering, error)
	FindOfferingsByProvider(providerID string) ([]models.ServiceOffering, error)
	UpdateOffering(id string, fields map[string]interface{}) error
	DeleteOffering(id string) error

	CreateRequest(req *models.ServiceRequest) error
	FindRequestByID(id string) (*models.ServiceRequest, error)
	FindRequestsWithFilter(criteria ServiceRequestFilter) ([]models.ServiceRequest, int64, error)
	UpdateRequestStatus(id string, status models.ServiceRequestStatus) error
	DeleteRequest(id string) error
}

type ServiceRepositoryImpl struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &ServiceRepositoryImpl{db: db}
}

// --- Categories ---

func (r *ServiceRepositoryImpl) CreateCategory(category *models.ServiceCategory) error {
	return r.db.Create(category).Error
}

func (r *ServiceRepositoryImpl) FindCategories() ([]models.ServiceCategory, error) {
	var categories []models.ServiceCategory
	err := r.db.Preload("Subcategories").Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *ServiceRepositoryImpl) FindCategoryByID(id string) (*models.ServiceCategory, error) {
	var category models.ServiceCategory
	err := r.db.Preload("Subcategories").First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *ServiceRepositoryImpl) UpdateCategory(id string, fields map[string]interface{}) error {
	result := r.db.Model(&models.ServiceCategory{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *ServiceRepositoryImpl) DeleteCategory(id string) error {
	// Категория удаляется вместе с подкатегориями
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&models.ServiceSubcategory{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.ServiceCategory{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCategoryNotFound
		}
		return nil
	})
}

// --- Subcategories ---

func (r *ServiceRepositoryImpl) CreateSubcategory(sub *models.ServiceSubcategory) error {
	return r.db.Create(sub).Error
}

func (r *ServiceRepositoryImpl) FindSubcategoryByID(id string) (*models.ServiceSubcategory, error) {
	var sub models.ServiceSubcategory
	err := r.db.First(&sub, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubcategoryNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *ServiceRepositoryImpl) FindSubcategoriesByCategory(categoryID string) ([]models.ServiceSubcategory, error) {
	var subs []models.ServiceSubcategory
	err := r.db.Where("category_id = ?", categoryID).Order("name ASC").Find(&subs).Error
	return subs, err
}

func (r *ServiceRepositoryImpl) UpdateSubcategory(id string, fields map[string]interface{}) error {
	result := r.db.Model(&models.ServiceSubcategory{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubcategoryNotFound
	}
	return nil
}

func (r *ServiceRepositoryImpl) DeleteSubcategory(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.ServiceSubcategory{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubcategoryNotFound
	}
	return nil
}

// --- Offerings ---

func (r *ServiceRepositoryImpl) CreateOffering(offering *models.ServiceOffering) error {
	return r.db.Create(offering).Error
}

func (r *ServiceRepositoryImpl) FindOfferingsBySubcategory(subcategoryID string) ([]models.ServiceOffering, error) {
	var offerings []models.ServiceOffering
	err := r.db.Where("subcategory_id = ? AND is_active = ?", subcategoryID, true).
		Order("created_at DESC").Find(&offerings).Error
	return offerings, err
}

func (r *ServiceRepositoryImpl) FindOfferingsByProvider(providerID string) ([]models.ServiceOffering, error) {
	var offerings []models.ServiceOffering
	err := r.db.Where("provider_id = ?", providerID).Order("created_at DESC").Find(&offerings).Error
	return offerings, err
}

func (r *ServiceRepositoryImpl) UpdateOffering(id string, fields map[string]interface{}) error {
	result := r.db.Model(&models.ServiceOffering{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOfferingNotFound
	}
	return nil
}

func (r *ServiceRepositoryImpl) DeleteOffering(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.ServiceOffering{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOfferingNotFound
	}
	return nil
}

// --- Requests ---

func (r *ServiceRepositoryImpl) CreateRequest(req *models.ServiceRequest) error {
	if req.Status == "" {
		req.Status = models.ServiceRequestStatusPending
	}
	return r.db.Create(req).Error
}

func (r *ServiceRepositoryImpl) FindRequestByID(id string) (*models.ServiceRequest, error) {
	var req models.ServiceRequest
	err := r.db.First(&req, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *ServiceRepositoryImpl) FindRequestsWithFilter(criteria ServiceRequestFilter) ([]models.ServiceRequest, int64, error) {
	var requests []models.ServiceRequest
	query := r.db.Model(&models.ServiceRequest{})

	if criteria.SubcategoryID != "" {
		query = query.Where("subcategory_id = ?", criteria.SubcategoryID)
	}
	if criteria.UserID != "" {
		query = query.Where("user_id = ?", criteria.UserID)
	}
	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (criteria.Page - 1) * criteria.PageSize
	err := query.Order("created_at DESC").Limit(criteria.PageSize).Offset(offset).Find(&requests).Error
	return requests, total, err
}

func (r *ServiceRepositoryImpl) UpdateRequestStatus(id string, status models.ServiceRequestStatus) error {
	result := r.db.Model(&models.ServiceRequest{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrServiceRequestNotFound
	}
	return nil
}

func (r *ServiceRepositoryImpl) DeleteRequest(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.ServiceRequest{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrServiceRequestNotFound
	}
	return nil
}
