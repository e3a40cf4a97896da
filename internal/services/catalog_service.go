package services

import (
	"skillspace_backend/internal/email"
	"skillspace_backend/internal/logger"
	"skillspace_backend/internal/models"
	"skillspace_backend/internal/repositories"
	"skillspace_backend/internal/services/dto"
	"skillspace_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// CatalogService - маркетплейс услуг: категории, подкатегории,
// предложения провайдеров и заявки клиентов.
type CatalogService interface {
	CreateCategory(db *gorm.DB, req *dto.CreateCategoryRequest) (*models.ServiceCategory, error)
	ListCategories(db *gorm.DB) ([]models.ServiceCategory, error)
	GetCategory(db *gorm.DB, categoryID string) (*models.ServiceCategory, error)
	UpdateCategory(db *gorm.DB, categoryID string, req *dto.UpdateCategoryRequest) error
	DeleteCategory(db *gorm.DB, categoryID string) error

	CreateSubcategory(db *gorm.DB, req *dto.CreateSubcategoryRequest) (*models.ServiceSubcategory, error)
	DeleteSubcategory(db *gorm.DB, subcategoryID string) error

	CreateOffering(db *gorm.DB, providerID string, req *dto.CreateOfferingRequest) (*models.ServiceOffering, error)
	ListSubcategoryOfferings(db *gorm.DB, subcategoryID string) ([]models.ServiceOffering, error)
	ListProviderOfferings(db *gorm.DB, providerID string) ([]models.ServiceOffering, error)
	UpdateOffering(db *gorm.DB, providerID, offeringID string, req *dto.UpdateOfferingRequest) error
	DeleteOffering(db *gorm.DB, providerID, offeringID string) error

	SubmitRequest(db *gorm.DB, userID string, req *dto.CreateServiceRequestRequest) (*models.ServiceRequest, error)
	ListRequests(db *gorm.DB, query *dto.ServiceRequestQuery) (*dto.ServiceRequestListResponse, error)
	ListUserRequests(db *gorm.DB, userID string) ([]models.ServiceRequest, error)
	UpdateRequestStatus(db *gorm.DB, requestID string, status models.ServiceRequestStatus) error
}

type CatalogServiceImpl struct {
	emailProvider email.Provider
}

func NewCatalogService(emailProvider email.Provider) CatalogService {
	return &CatalogServiceImpl{emailProvider: emailProvider}
}

// --- Категории ---

func (s *CatalogServiceImpl) CreateCategory(db *gorm.DB, req *dto.CreateCategoryRequest) (*models.ServiceCategory, error) {
	category := &models.ServiceCategory{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	}

	serviceRepo := repositories.NewServiceRepository(db)
	if err := serviceRepo.CreateCategory(category); err != nil {
		return nil, apperrors.ErrAlreadyExists(err)
	}
	return category, nil
}

func (s *CatalogServiceImpl) ListCategories(db *gorm.DB) ([]models.ServiceCategory, error) {
	serviceRepo := repositories.NewServiceRepository(db)
	categories, err := serviceRepo.FindCategories()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return categories, nil
}

func (s *CatalogServiceImpl) GetCategory(db *gorm.DB, categoryID string) (*models.ServiceCategory, error) {
	serviceRepo := repositories.NewServiceRepository(db)
	category, err := serviceRepo.FindCategoryByID(categoryID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, apperrors.NewNotFoundError("services", "Category not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return category, nil
}

func (s *CatalogServiceImpl) UpdateCategory(db *gorm.DB, categoryID string, req *dto.UpdateCategoryRequest) error {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Icon != nil {
		fields["icon"] = *req.Icon
	}
	if len(fields) == 0 {
		return nil
	}

	serviceRepo := repositories.NewServiceRepository(db)
	if err := serviceRepo.UpdateCategory(categoryID, fields); err != nil {
		if apperrors.Is(err, repositories.ErrCategoryNotFound) {
			return apperrors.NewNotFoundError("services", "Category not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *CatalogServiceImpl) DeleteCategory(db *gorm.DB, categoryID string) error {
	serviceRepo := repositories.NewServiceRepository(db)
	if err := serviceRepo.DeleteCategory(categoryID); err != nil {
		if apperrors.Is(err, repositories.ErrCategoryNotFound) {
			return apperrors.NewNotFoundError("services", "Category not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// --- Подкатегории ---

func (s *CatalogServiceImpl) CreateSubcategory(db *gorm.DB, req *dto.CreateSubcategoryRequest) (*models.ServiceSubcategory, error) {
	serviceRepo := repositories.NewServiceRepository(db)

	if _, err := serviceRepo.FindCategoryByID(req.CategoryID); err != nil {
		return nil, apperrors.NewNotFoundError("services", "Category not found")
	}

	sub := &models.ServiceSubcategory{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := serviceRepo.CreateSubcategory(sub); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return sub, nil
}

func (s *CatalogServiceImpl) DeleteSubcategory(db *gorm.DB, subcategoryID string) error {
	serviceRepo := repositories.NewServiceRepository(db)
	if err := serviceRepo.DeleteSubcategory(subcategoryID); err != nil {
		if apperrors.Is(err, repositories.ErrSubcategoryNotFound) {
			return apperrors.NewNotFoundError("services", "Subcategory not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// --- Предложения ---

// CreateOffering доступен только business и agency пользователям
func (s *CatalogServiceImpl) CreateOffering(db *gorm.DB, providerID string, req *dto.CreateOfferingRequest) (*models.ServiceOffering, error) {
	userRepo := repositories.NewUserRepository(db)

	provider, err := userRepo.FindByID(providerID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("user", "User not found")
	}
	if provider.Role != models.UserRoleBusiness && provider.Role != models.UserRoleAgency {
		return nil, apperrors.ErrInvalidUserRole
	}

	serviceRepo := repositories.NewServiceRepository(db)
	if _, err := serviceRepo.FindSubcategoryByID(req.SubcategoryID); err != nil {
		return nil, apperrors.NewNotFoundError("services", "Subcategory not found")
	}

	offering := &models.ServiceOffering{
		SubcategoryID: req.SubcategoryID,
		ProviderID:    providerID,
		Title:         req.Title,
		Description:   req.Description,
		PriceFrom:     req.PriceFrom,
		PriceTo:       req.PriceTo,
		IsActive:      true,
	}
	if err := serviceRepo.CreateOffering(offering); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return offering, nil
}

func (s *CatalogServiceImpl) ListSubcategoryOfferings(db *gorm.DB, subcategoryID string) ([]models.ServiceOffering, error) {
	serviceRepo := repositories.NewServiceRepository(db)
	offerings, err := serviceRepo.FindOfferingsBySubcategory(subcategoryID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return offerings, nil
}

func (s *CatalogServiceImpl) ListProviderOfferings(db *gorm.DB, providerID string) ([]models.ServiceOffering, error) {
	serviceRepo := repositories.NewServiceRepository(db)
	offerings, err := serviceRepo.FindOfferingsByProvider(providerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return offerings, nil
}

func (s *CatalogServiceImpl) UpdateOffering(db *gorm.DB, providerID, offeringID string, req *dto.UpdateOfferingRequest) error {
	serviceRepo := repositories.NewServiceRepository(db)

	if err := s.checkOfferingOwner(db, providerID, offeringID); err != nil {
		return err
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.PriceFrom != nil {
		fields["price_from"] = *req.PriceFrom
	}
	if req.PriceTo != nil {
		fields["price_to"] = *req.PriceTo
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if len(fields) == 0 {
		return nil
	}

	if err := serviceRepo.UpdateOffering(offeringID, fields); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *CatalogServiceImpl) DeleteOffering(db *gorm.DB, providerID, offeringID string) error {
	serviceRepo := repositories.NewServiceRepository(db)

	if err := s.checkOfferingOwner(db, providerID, offeringID); err != nil {
		return err
	}

	if err := serviceRepo.DeleteOffering(offeringID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *CatalogServiceImpl) checkOfferingOwner(db *gorm.DB, providerID, offeringID string) error {
	var offering models.ServiceOffering
	if err := db.First(&offering, "id = ?", offeringID).Error; err != nil {
		return apperrors.NewNotFoundError("services", "Offering not found")
	}
	if offering.ProviderID != providerID {
		return apperrors.ErrInsufficientPermissions
	}
	return nil
}

// --- Заявки ---

// SubmitRequest принимает заявку на услугу; userID пуст для гостей
func (s *CatalogServiceImpl) SubmitRequest(db *gorm.DB, userID string, req *dto.CreateServiceRequestRequest) (*models.ServiceRequest, error) {
	serviceRepo := repositories.NewServiceRepository(db)

	if _, err := serviceRepo.FindSubcategoryByID(req.SubcategoryID); err != nil {
		return nil, apperrors.NewNotFoundError("services", "Subcategory not found")
	}

	request := &models.ServiceRequest{
		SubcategoryID:  req.SubcategoryID,
		UserID:         userID,
		ContactName:    req.ContactName,
		ContactEmail:   req.ContactEmail,
		ContactPhone:   req.ContactPhone,
		ProjectDetails: req.ProjectDetails,
		Budget:         req.Budget,
		Timeline:       req.Timeline,
		Status:         models.ServiceRequestStatusPending,
	}
	if err := serviceRepo.CreateRequest(request); err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Подтверждение заявителю, ошибки не блокируют
	if err := s.emailProvider.Send(&email.Email{
		To:      []string{req.ContactEmail},
		Subject: "We received your service request",
		Body:    "Thank you! Our team will get back to you shortly.",
	}); err != nil {
		logger.WithError(err).Warn("failed to send request confirmation", "email", req.ContactEmail)
	}

	return request, nil
}

func (s *CatalogServiceImpl) ListRequests(db *gorm.DB, query *dto.ServiceRequestQuery) (*dto.ServiceRequestListResponse, error) {
	page, pageSize := normalizePage(query.Page, query.PageSize)

	serviceRepo := repositories.NewServiceRepository(db)
	requests, total, err := serviceRepo.FindRequestsWithFilter(repositories.ServiceRequestFilter{
		SubcategoryID: query.SubcategoryID,
		UserID:        query.UserID,
		Status:        query.Status,
		Page:          page,
		PageSize:      pageSize,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.ServiceRequestListResponse{
		Requests:   requests,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

func (s *CatalogServiceImpl) ListUserRequests(db *gorm.DB, userID string) ([]models.ServiceRequest, error) {
	serviceRepo := repositories.NewServiceRepository(db)
	requests, _, err := serviceRepo.FindRequestsWithFilter(repositories.ServiceRequestFilter{
		UserID:   userID,
		Page:     1,
		PageSize: 100,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return requests, nil
}

func (s *CatalogServiceImpl) UpdateRequestStatus(db *gorm.DB, requestID string, status models.ServiceRequestStatus) error {
	if !models.ValidServiceRequestStatus(status) {
		return apperrors.ErrInvalidStatus("services", "Unknown request status")
	}

	serviceRepo := repositories.NewServiceRepository(db)
	if err := serviceRepo.UpdateRequestStatus(requestID, status); err != nil {
		if apperrors.Is(err, repositories.ErrServiceRequestNotFound) {
			return apperrors.NewNotFoundError("services", "Request not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}
