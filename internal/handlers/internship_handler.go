package handlers

import (
	"net/http"

	"skillspace_backend/internal/middleware"
	"skillspace_backend/internal/services"
	"skillspace_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type InternshipHandler struct {
	*BaseHandler
	internshipService services.InternshipService
}

func NewInternshipHandler(base *BaseHandler, internshipService services.InternshipService) *InternshipHandler {
	return &InternshipHandler{
		BaseHandler:       base,
		internshipService: internshipService,
	}
}

func (h *InternshipHandler) RegisterRoutes(rg *gin.RouterGroup) {
	internships := rg.Group("/internships")
	{
		internships.GET("", h.ListInternships)
		internships.GET("/:id", h.GetInternship)
	}

	authorized := rg.Group("/internships")
	authorized.Use(middleware.AuthMiddleware())
	{
		authorized.POST("/:id/apply", h.Apply)
		authorized.GET("/submissions/mine", h.MySubmissions)
	}

	admin := rg.Group("/admin/internships")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.POST("", h.CreateInternship)
		admin.PUT("/:id", h.UpdateInternship)
		admin.DELETE("/:id", h.DeleteInternship)
		admin.GET("/:id/submissions", h.ListSubmissions)
		admin.PUT("/submissions/:id", h.ReviewSubmission)
	}
}

func (h *InternshipHandler) ListInternships(c *gin.Context) {
	var query dto.InternshipQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	db := h.GetDB(c)

	resp, err := h.internshipService.ListInternships(db, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *InternshipHandler) GetInternship(c *gin.Context) {
	db := h.GetDB(c)

	internship, err := h.internshipService.GetInternship(db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, internship)
}

func (h *InternshipHandler) CreateInternship(c *gin.Context) {
	var req dto.CreateInternshipRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	internship, err := h.internshipService.CreateInternship(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, internship)
}

func (h *InternshipHandler) UpdateInternship(c *gin.Context) {
	var req dto.UpdateInternshipRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.internshipService.UpdateInternship(db, c.Param("id"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Internship updated"})
}

func (h *InternshipHandler) DeleteInternship(c *gin.Context) {
	db := h.GetDB(c)

	if err := h.internshipService.DeleteInternship(db, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Internship deleted"})
}

func (h *InternshipHandler) Apply(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ApplyInternshipRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	submission, err := h.internshipService.Apply(db, userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, submission)
}

func (h *InternshipHandler) MySubmissions(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	submissions, err := h.internshipService.ListUserSubmissions(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"submissions": submissions})
}

func (h *InternshipHandler) ListSubmissions(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	db := h.GetDB(c)

	resp, err := h.internshipService.ListSubmissions(db, c.Param("id"), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *InternshipHandler) ReviewSubmission(c *gin.Context) {
	var req dto.ReviewSubmissionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.internshipService.ReviewSubmission(db, c.Param("id"), req.Status); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Submission reviewed"})
}
