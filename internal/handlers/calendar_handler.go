package handlers

import (
	"net/http"

	"skillspace_backend/internal/middleware"
	"skillspace_backend/internal/services"
	"skillspace_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CalendarHandler struct {
	*BaseHandler
	calendarService services.CalendarService
}

func NewCalendarHandler(base *BaseHandler, calendarService services.CalendarService) *CalendarHandler {
	return &CalendarHandler{
		BaseHandler:     base,
		calendarService: calendarService,
	}
}

func (h *CalendarHandler) RegisterRoutes(rg *gin.RouterGroup) {
	events := rg.Group("/events")
	{
		events.GET("", h.ListEvents)
		events.GET("/:id", h.GetEvent)
	}

	admin := rg.Group("/admin/events")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.POST("", h.CreateEvent)
		admin.PUT("/:id", h.UpdateEvent)
		admin.DELETE("/:id", h.DeleteEvent)
	}
}

func (h *CalendarHandler) ListEvents(c *gin.Context) {
	var query dto.EventQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	db := h.GetDB(c)

	resp, err := h.calendarService.ListEvents(db, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CalendarHandler) GetEvent(c *gin.Context) {
	db := h.GetDB(c)

	event, err := h.calendarService.GetEvent(db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *CalendarHandler) CreateEvent(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	event, err := h.calendarService.CreateEvent(db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

func (h *CalendarHandler) UpdateEvent(c *gin.Context) {
	var req dto.UpdateEventRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.calendarService.UpdateEvent(db, c.Param("id"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event updated"})
}

func (h *CalendarHandler) DeleteEvent(c *gin.Context) {
	db := h.GetDB(c)

	if err := h.calendarService.DeleteEvent(db, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
}
