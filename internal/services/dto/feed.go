package dto

import (
	"time"

	"skillspace_backend/internal/models"
)

// CreatePostRequest - публикация поста. Пост с изображением приходит
// multipart-формой, поэтому поля несут и form-теги.
type CreatePostRequest struct {
	Content       string            `json:"content" form:"content" validate:"required,max=5000"`
	Visibility    models.Visibility `json:"visibility" form:"visibility" validate:"omitempty,oneof=public connections private"`
	IsAchievement bool              `json:"is_achievement" form:"is_achievement"`
}

// UpdatePostRequest - правка поста автором
type UpdatePostRequest struct {
	Content    *string            `json:"content" validate:"omitempty,max=5000"`
	Visibility *models.Visibility `json:"visibility" validate:"omitempty,oneof=public connections private"`
}

// CreateCommentRequest - комментарий к посту
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// FeedQuery - параметры страницы ленты
type FeedQuery struct {
	Page  int `form:"page" validate:"omitempty,min=1"`
	Limit int `form:"limit" validate:"omitempty,min=1,max=100"`
}

// PostAuthor - краткая карточка автора в ленте
type PostAuthor struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
	AvatarURL string `json:"avatar_url"`
}

// CommentResponse - комментарий с автором
type CommentResponse struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	Author    PostAuthor `json:"author"`
	CreatedAt time.Time  `json:"created_at"`
}

// PostResponse - обогащенный пост ленты
type PostResponse struct {
	ID            string            `json:"id"`
	Author        PostAuthor        `json:"author"`
	Content       string            `json:"content"`
	ImageURL      string            `json:"image_url,omitempty"`
	Visibility    models.Visibility `json:"visibility"`
	IsAchievement bool              `json:"is_achievement"`
	LikeCount     int               `json:"like_count"`
	CommentCount  int               `json:"comment_count"`
	ShareCount    int               `json:"share_count"`
	IsLiked       bool              `json:"is_liked"`
	IsBookmarked  bool              `json:"is_bookmarked"`
	Comments      []CommentResponse `json:"comments"`
	CreatedAt     time.Time         `json:"created_at"`
}

// FeedResponse - страница ленты
type FeedResponse struct {
	Posts      []PostResponse `json:"posts"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	Total      int64          `json:"total"`
	TotalPages int            `json:"total_pages"`
}
