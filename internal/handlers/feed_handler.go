package handlers

import (
	"net/http"

	"skillspace_backend/internal/middleware"
	"skillspace_backend/internal/services"
	"skillspace_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	*BaseHandler
	feedService services.FeedService
}

func NewFeedHandler(base *BaseHandler, feedService services.FeedService) *FeedHandler {
	return &FeedHandler{
		BaseHandler: base,
		feedService: feedService,
	}
}

func (h *FeedHandler) RegisterRoutes(rg *gin.RouterGroup) {
	feed := rg.Group("/feed")
	feed.Use(middleware.AuthMiddleware())
	{
		feed.GET("", h.GetFeed)
		feed.GET("/bookmarks", h.GetBookmarks)
		feed.POST("/posts", h.CreatePost)
		feed.GET("/posts/:id", h.GetPost)
		feed.PUT("/posts/:id", h.UpdatePost)
		feed.DELETE("/posts/:id", h.DeletePost)
		feed.POST("/posts/:id/like", h.LikePost)
		feed.DELETE("/posts/:id/like", h.UnlikePost)
		feed.POST("/posts/:id/bookmark", h.BookmarkPost)
		feed.DELETE("/posts/:id/bookmark", h.UnbookmarkPost)
		feed.POST("/posts/:id/share", h.SharePost)
		feed.POST("/posts/:id/comments", h.CommentPost)
		feed.DELETE("/comments/:id", h.DeleteComment)
	}
}

func (h *FeedHandler) GetFeed(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.FeedQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 {
		query.Limit = 10
	}

	db := h.GetDB(c)

	resp, err := h.feedService.GetFeed(c.Request.Context(), db, userID, query.Page, query.Limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *FeedHandler) GetBookmarks(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.FeedQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 {
		query.Limit = 10
	}

	db := h.GetDB(c)

	resp, err := h.feedService.GetBookmarkedPosts(c.Request.Context(), db, userID, query.Page, query.Limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreatePost принимает JSON либо multipart с полем image
func (h *FeedHandler) CreatePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	// Изображение опционально
	image, _ := c.FormFile("image")

	db := h.GetDB(c)

	post, err := h.feedService.CreatePost(c.Request.Context(), db, userID, &req, image)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *FeedHandler) GetPost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	post, err := h.feedService.GetPost(c.Request.Context(), db, userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *FeedHandler) UpdatePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdatePostRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.feedService.UpdatePost(db, userID, c.Param("id"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post updated"})
}

func (h *FeedHandler) DeletePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.feedService.DeletePost(db, userID, middleware.GetUserRole(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

func (h *FeedHandler) LikePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.feedService.LikePost(db, userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Post liked"})
}

func (h *FeedHandler) UnlikePost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.feedService.UnlikePost(db, userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Like removed"})
}

func (h *FeedHandler) BookmarkPost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.feedService.BookmarkPost(db, userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Post bookmarked"})
}

func (h *FeedHandler) UnbookmarkPost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.feedService.UnbookmarkPost(db, userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bookmark removed"})
}

func (h *FeedHandler) SharePost(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.feedService.SharePost(db, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Share counted"})
}

func (h *FeedHandler) CommentPost(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	comment, err := h.feedService.CommentPost(db, userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (h *FeedHandler) DeleteComment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.feedService.DeleteComment(db, userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
