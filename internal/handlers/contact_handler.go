package handlers

import (
	"net/http"

	"skillspace_backend/internal/middleware"
	"skillspace_backend/internal/models"
	"skillspace_backend/internal/services"
	"skillspace_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	*BaseHandler
	contactService services.ContactService
}

func NewContactHandler(base *BaseHandler, contactService services.ContactService) *ContactHandler {
	return &ContactHandler{
		BaseHandler:    base,
		contactService: contactService,
	}
}

func (h *ContactHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/contact", h.SubmitMessage)

	admin := rg.Group("/admin/contact")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("", h.ListMessages)
		admin.GET("/:id", h.GetMessage)
		admin.PUT("/:id/status", h.UpdateStatus)
		admin.DELETE("/:id", h.DeleteMessage)
	}
}

func (h *ContactHandler) SubmitMessage(c *gin.Context) {
	var req dto.ContactMessageRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if _, err := h.contactService.SubmitMessage(db, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Message received"})
}

func (h *ContactHandler) ListMessages(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	db := h.GetDB(c)

	resp, err := h.contactService.ListMessages(db, models.ContactStatus(c.Query("status")), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ContactHandler) GetMessage(c *gin.Context) {
	db := h.GetDB(c)

	message, err := h.contactService.GetMessage(db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, message)
}

func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateContactStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.contactService.UpdateStatus(db, c.Param("id"), models.ContactStatus(req.Status)); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}

func (h *ContactHandler) DeleteMessage(c *gin.Context) {
	db := h.GetDB(c)

	if err := h.contactService.DeleteMessage(db, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
}
