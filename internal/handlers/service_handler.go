package handlers

import (
	"net/http"

	"skillspace_backend/internal/middleware"
	"skillspace_backend/internal/models"
	"skillspace_backend/internal/services"
	"skillspace_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// ServiceHandler обслуживает маркетплейс услуг
type ServiceHandler struct {
	*BaseHandler
	catalogService services.CatalogService
}

func NewServiceHandler(base *BaseHandler, catalogService services.CatalogService) *ServiceHandler {
	return &ServiceHandler{
		BaseHandler:    base,
		catalogService: catalogService,
	}
}

func (h *ServiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	svc := rg.Group("/services")
	{
		svc.GET("/categories", h.ListCategories)
		svc.GET("/categories/:id", h.GetCategory)
		svc.GET("/subcategories/:id/offerings", h.ListOfferings)
		// Заявку может оставить и гость, и авторизованный пользователь
		svc.POST("/requests", middleware.OptionalAuth(), h.SubmitRequest)
	}

	provider := rg.Group("/services")
	provider.Use(middleware.AuthMiddleware())
	{
		provider.POST("/offerings", h.CreateOffering)
		provider.GET("/offerings/mine", h.MyOfferings)
		provider.PUT("/offerings/:id", h.UpdateOffering)
		provider.DELETE("/offerings/:id", h.DeleteOffering)
		provider.GET("/requests/mine", h.MyRequests)
	}

	admin := rg.Group("/admin/services")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.POST("/categories", h.CreateCategory)
		admin.PUT("/categories/:id", h.UpdateCategory)
		admin.DELETE("/categories/:id", h.DeleteCategory)
		admin.POST("/subcategories", h.CreateSubcategory)
		admin.DELETE("/subcategories/:id", h.DeleteSubcategory)
		admin.GET("/requests", h.ListRequests)
		admin.PUT("/requests/:id/status", h.UpdateRequestStatus)
	}
}

func (h *ServiceHandler) ListCategories(c *gin.Context) {
	db := h.GetDB(c)

	categories, err := h.catalogService.ListCategories(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *ServiceHandler) GetCategory(c *gin.Context) {
	db := h.GetDB(c)

	category, err := h.catalogService.GetCategory(db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *ServiceHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	category, err := h.catalogService.CreateCategory(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *ServiceHandler) UpdateCategory(c *gin.Context) {
	var req dto.UpdateCategoryRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.catalogService.UpdateCategory(db, c.Param("id"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category updated"})
}

func (h *ServiceHandler) DeleteCategory(c *gin.Context) {
	db := h.GetDB(c)

	if err := h.catalogService.DeleteCategory(db, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

func (h *ServiceHandler) CreateSubcategory(c *gin.Context) {
	var req dto.CreateSubcategoryRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	sub, err := h.catalogService.CreateSubcategory(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sub)
}

func (h *ServiceHandler) DeleteSubcategory(c *gin.Context) {
	db := h.GetDB(c)

	if err := h.catalogService.DeleteSubcategory(db, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subcategory deleted"})
}

func (h *ServiceHandler) ListOfferings(c *gin.Context) {
	db := h.GetDB(c)

	offerings, err := h.catalogService.ListSubcategoryOfferings(db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"offerings": offerings})
}

func (h *ServiceHandler) CreateOffering(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateOfferingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	offering, err := h.catalogService.CreateOffering(db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, offering)
}

func (h *ServiceHandler) MyOfferings(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	offerings, err := h.catalogService.ListProviderOfferings(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"offerings": offerings})
}

func (h *ServiceHandler) UpdateOffering(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateOfferingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.catalogService.UpdateOffering(db, userID, c.Param("id"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Offering updated"})
}

func (h *ServiceHandler) DeleteOffering(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.catalogService.DeleteOffering(db, userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Offering deleted"})
}

func (h *ServiceHandler) SubmitRequest(c *gin.Context) {
	var req dto.CreateServiceRequestRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	// Пустой userID - гостевая заявка
	request, err := h.catalogService.SubmitRequest(db, middleware.GetUserID(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, request)
}

func (h *ServiceHandler) MyRequests(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	requests, err := h.catalogService.ListUserRequests(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

func (h *ServiceHandler) ListRequests(c *gin.Context) {
	var query dto.ServiceRequestQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	db := h.GetDB(c)

	resp, err := h.catalogService.ListRequests(db, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ServiceHandler) UpdateRequestStatus(c *gin.Context) {
	var req dto.UpdateRequestStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.catalogService.UpdateRequestStatus(db, c.Param("id"), models.ServiceRequestStatus(req.Status)); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}
