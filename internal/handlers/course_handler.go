package handlers

import (
	"net/http"

	"skillspace_backend/internal/middleware"
	"skillspace_backend/internal/services"
	"skillspace_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CourseHandler struct {
	*BaseHandler
	courseService services.CourseService
}

func NewCourseHandler(base *BaseHandler, courseService services.CourseService) *CourseHandler {
	return &CourseHandler{
		BaseHandler:   base,
		courseService: courseService,
	}
}

func (h *CourseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	courses := rg.Group("/courses")
	{
		courses.GET("", h.ListCourses)
		courses.GET("/:id", h.GetCourse)
		courses.GET("/:id/assignments", h.ListAssignments)
	}

	me := rg.Group("/certificates")
	me.Use(middleware.AuthMiddleware())
	{
		me.GET("/mine", h.MyCertificates)
	}

	admin := rg.Group("/admin/courses")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.POST("", h.CreateCourse)
		admin.GET("", h.AdminListCourses)
		admin.PUT("/:id", h.UpdateCourse)
		admin.DELETE("/:id", h.DeleteCourse)
		admin.POST("/assignments", h.CreateAssignment)
		admin.PUT("/assignments/:id", h.UpdateAssignment)
		admin.DELETE("/assignments/:id", h.DeleteAssignment)
		admin.POST("/certificates", h.IssueCertificate)
		admin.DELETE("/certificates/:id", h.DeleteCertificate)
	}
}

func (h *CourseHandler) ListCourses(c *gin.Context) {
	var query dto.CourseQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	db := h.GetDB(c)

	resp, err := h.courseService.ListCourses(db, &query, false)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CourseHandler) AdminListCourses(c *gin.Context) {
	var query dto.CourseQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	db := h.GetDB(c)

	resp, err := h.courseService.ListCourses(db, &query, true)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CourseHandler) GetCourse(c *gin.Context) {
	db := h.GetDB(c)

	course, err := h.courseService.GetCourse(db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req dto.CreateCourseRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	course, err := h.courseService.CreateCourse(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, course)
}

func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	var req dto.UpdateCourseRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	course, err := h.courseService.UpdateCourse(db, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	db := h.GetDB(c)

	if err := h.courseService.DeleteCourse(db, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Course deleted"})
}

func (h *CourseHandler) ListAssignments(c *gin.Context) {
	db := h.GetDB(c)

	assignments, err := h.courseService.ListCourseAssignments(db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"assignments": assignments})
}

func (h *CourseHandler) CreateAssignment(c *gin.Context) {
	var req dto.CreateAssignmentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	assignment, err := h.courseService.CreateAssignment(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

func (h *CourseHandler) UpdateAssignment(c *gin.Context) {
	var req dto.UpdateAssignmentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.courseService.UpdateAssignment(db, c.Param("id"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Assignment updated"})
}

func (h *CourseHandler) DeleteAssignment(c *gin.Context) {
	db := h.GetDB(c)

	if err := h.courseService.DeleteAssignment(db, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Assignment deleted"})
}

func (h *CourseHandler) MyCertificates(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	certs, err := h.courseService.ListUserCertificates(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"certificates": certs})
}

func (h *CourseHandler) IssueCertificate(c *gin.Context) {
	var req dto.IssueCertificateRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	cert, err := h.courseService.IssueCertificate(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, cert)
}

func (h *CourseHandler) DeleteCertificate(c *gin.Context) {
	db := h.GetDB(c)

	if err := h.courseService.DeleteCertificate(db, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Certificate deleted"})
}
