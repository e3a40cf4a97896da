package handlers

import (
	"net/http"

	"skillspace_backend/internal/middleware"
	"skillspace_backend/internal/services"
	"skillspace_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type EnrollmentHandler struct {
	*BaseHandler
	enrollmentService services.EnrollmentService
}

func NewEnrollmentHandler(base *BaseHandler, enrollmentService services.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{
		BaseHandler:       base,
		enrollmentService: enrollmentService,
	}
}

func (h *EnrollmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Гостевая заявка без аккаунта
	rg.POST("/enrollments/guest", h.GuestEnroll)

	enrollments := rg.Group("/enrollments")
	enrollments.Use(middleware.AuthMiddleware())
	{
		enrollments.POST("", h.Enroll)
		enrollments.GET("/mine", h.MyEnrollments)
		enrollments.PUT("/:id/progress", h.UpdateProgress)
		enrollments.DELETE("/:id", h.CancelEnrollment)
	}

	admin := rg.Group("/admin/enrollments")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("", h.AdminListEnrollments)
	}
}

func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.EnrollRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	enrollment, err := h.enrollmentService.Enroll(db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, enrollment)
}

func (h *EnrollmentHandler) GuestEnroll(c *gin.Context) {
	var req dto.GuestEnrollRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.enrollmentService.GuestEnroll(db, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Enrollment request received. Create an account with this email to track your progress.",
	})
}

func (h *EnrollmentHandler) MyEnrollments(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	enrollments, err := h.enrollmentService.ListUserEnrollments(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"enrollments": enrollments})
}

func (h *EnrollmentHandler) UpdateProgress(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProgressRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.enrollmentService.UpdateProgress(db, userID, c.Param("id"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Progress updated"})
}

func (h *EnrollmentHandler) CancelEnrollment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.enrollmentService.CancelEnrollment(db, userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Enrollment cancelled"})
}

func (h *EnrollmentHandler) AdminListEnrollments(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	db := h.GetDB(c)

	resp, err := h.enrollmentService.ListEnrollments(db, c.Query("user_id"), c.Query("course_id"), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
