package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"sort"
	"time"

	"skillspace_backend/internal/config"
	"skillspace_backend/internal/imageprocessor"
	"skillspace_backend/internal/logger"
	"skillspace_backend/internal/models"
	"skillspace_backend/internal/repositories"
	"skillspace_backend/internal/services/dto"
	"skillspace_backend/internal/storage"
	"skillspace_backend/pkg/apperrors"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type FeedService interface {
	CreatePost(ctx context.Context, db *gorm.DB, userID string, req *dto.CreatePostRequest, image *multipart.FileHeader) (*dto.PostResponse, error)
	GetFeed(ctx context.Context, db *gorm.DB, viewerID string, page, limit int) (*dto.FeedResponse, error)
	GetPost(ctx context.Context, db *gorm.DB, viewerID, postID string) (*dto.PostResponse, error)
	GetBookmarkedPosts(ctx context.Context, db *gorm.DB, userID string, page, limit int) (*dto.FeedResponse, error)
	UpdatePost(db *gorm.DB, userID, postID string, req *dto.UpdatePostRequest) error
	DeletePost(db *gorm.DB, requesterID string, requesterRole models.UserRole, postID string) error

	LikePost(db *gorm.DB, userID, postID string) error
	UnlikePost(db *gorm.DB, userID, postID string) error
	BookmarkPost(db *gorm.DB, userID, postID string) error
	UnbookmarkPost(db *gorm.DB, userID, postID string) error
	SharePost(db *gorm.DB, postID string) error

	CommentPost(db *gorm.DB, userID, postID string, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	DeleteComment(db *gorm.DB, userID, commentID string) error
}

type FeedServiceImpl struct {
	storage   storage.Storage
	processor *imageprocessor.Processor
}

func NewFeedService(store storage.Storage, processor *imageprocessor.Processor) FeedService {
	return &FeedServiceImpl{
		storage:   store,
		processor: processor,
	}
}

// CreatePost публикует пост, при наличии изображения - сжимает и сохраняет его
func (s *FeedServiceImpl) CreatePost(ctx context.Context, db *gorm.DB, userID string, req *dto.CreatePostRequest, image *multipart.FileHeader) (*dto.PostResponse, error) {
	post := &models.SocialActivity{
		UserID:        userID,
		Content:       req.Content,
		Visibility:    req.Visibility,
		IsAchievement: req.IsAchievement,
	}

	if image != nil {
		imagePath, err := s.savePostImage(ctx, image)
		if err != nil {
			return nil, err
		}
		post.ImagePath = imagePath
	}

	activityRepo := repositories.NewActivityRepository(db)
	if err := activityRepo.CreatePost(post); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.enrichPost(ctx, db, userID, post)
}

// GetFeed собирает страницу ленты:
//  1. все посты, новые первыми
//  2. фильтр видимости относительно зрителя
//  3. пагинация по отфильтрованному набору
//  4. параллельное обогащение страницы (авторы, лайки, комментарии)
//
// Обогащение ограничено по числу горутин и по времени; пост, который не
// удалось обогатить, выпадает из страницы, не ломая остальные.
func (s *FeedServiceImpl) GetFeed(ctx context.Context, db *gorm.DB, viewerID string, page, limit int) (*dto.FeedResponse, error) {
	activityRepo := repositories.NewActivityRepository(db)
	connRepo := repositories.NewConnectionRepository(db)

	posts, err := activityRepo.FindAllPosts()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	connectedIDs, err := connRepo.ListConnectedIDs(viewerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	connected := make(map[string]bool, len(connectedIDs))
	for _, id := range connectedIDs {
		connected[id] = true
	}

	visible := filterVisiblePosts(posts, viewerID, connected)

	return s.buildFeedPage(ctx, db, viewerID, visible, page, limit)
}

func (s *FeedServiceImpl) GetPost(ctx context.Context, db *gorm.DB, viewerID, postID string) (*dto.PostResponse, error) {
	activityRepo := repositories.NewActivityRepository(db)

	post, err := activityRepo.FindPostByID(postID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPostNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	connRepo := repositories.NewConnectionRepository(db)
	connectedIDs, err := connRepo.ListConnectedIDs(viewerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	connected := make(map[string]bool, len(connectedIDs))
	for _, id := range connectedIDs {
		connected[id] = true
	}

	// Недоступный пост неотличим от несуществующего
	if !postVisibleTo(post, viewerID, connected) {
		return nil, apperrors.ErrPostNotFound
	}

	return s.enrichPost(ctx, db, viewerID, post)
}

// GetBookmarkedPosts возвращает посты, сохраненные пользователем
func (s *FeedServiceImpl) GetBookmarkedPosts(ctx context.Context, db *gorm.DB, userID string, page, limit int) (*dto.FeedResponse, error) {
	activityRepo := repositories.NewActivityRepository(db)
	bookmarks, err := activityRepo.FindByUserAndType(userID, models.ActivityTypeBookmark)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	posts := make([]models.SocialActivity, 0, len(bookmarks))
	for _, b := range bookmarks {
		if b.TargetID == nil {
			continue
		}
		post, err := activityRepo.FindPostByID(*b.TargetID)
		if err != nil {
			// Пост мог быть удален после закладки
			continue
		}
		posts = append(posts, *post)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})

	return s.buildFeedPage(ctx, db, userID, posts, page, limit)
}

func (s *FeedServiceImpl) UpdatePost(db *gorm.DB, userID, postID string, req *dto.UpdatePostRequest) error {
	activityRepo := repositories.NewActivityRepository(db)

	post, err := activityRepo.FindPostByID(postID)
	if err != nil {
		return apperrors.ErrPostNotFound
	}
	if post.UserID != userID {
		return apperrors.ErrInsufficientPermissions
	}

	fields := map[string]interface{}{}
	if req.Content != nil {
		fields["content"] = *req.Content
	}
	if req.Visibility != nil {
		fields["visibility"] = *req.Visibility
	}
	if len(fields) == 0 {
		return nil
	}

	return db.Model(&models.SocialActivity{}).Where("id = ?", postID).Updates(fields).Error
}

// DeletePost удаляет пост каскадно вместе с лайками, комментариями и
// закладками. Разрешено автору и администратору.
func (s *FeedServiceImpl) DeletePost(db *gorm.DB, requesterID string, requesterRole models.UserRole, postID string) error {
	activityRepo := repositories.NewActivityRepository(db)

	post, err := activityRepo.FindPostByID(postID)
	if err != nil {
		return apperrors.ErrPostNotFound
	}
	if post.UserID != requesterID && requesterRole != models.UserRoleAdmin {
		return apperrors.ErrInsufficientPermissions
	}

	if err := activityRepo.DeletePostCascade(postID); err != nil {
		if apperrors.Is(err, repositories.ErrPostNotFound) {
			return apperrors.ErrPostNotFound
		}
		return apperrors.InternalError(err)
	}

	// Файл изображения чистим best-effort: запись уже удалена
	if post.ImagePath != "" {
		if err := s.storage.Delete(context.Background(), post.ImagePath); err != nil {
			logger.WithError(err).Warn("failed to delete post image", "post_id", postID, "path", post.ImagePath)
		}
	}
	return nil
}

func (s *FeedServiceImpl) LikePost(db *gorm.DB, userID, postID string) error {
	activityRepo := repositories.NewActivityRepository(db)

	if _, err := activityRepo.FindPostByID(postID); err != nil {
		return apperrors.ErrPostNotFound
	}

	like := &models.SocialActivity{
		ActivityType: models.ActivityTypeLike,
		UserID:       userID,
		TargetID:     &postID,
	}
	if err := activityRepo.InsertUnique(like); err != nil {
		if apperrors.Is(err, repositories.ErrDuplicateActivity) {
			return apperrors.ErrAlreadyLiked
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *FeedServiceImpl) UnlikePost(db *gorm.DB, userID, postID string) error {
	activityRepo := repositories.NewActivityRepository(db)

	if err := activityRepo.DeleteOne(models.ActivityTypeLike, userID, postID); err != nil {
		if apperrors.Is(err, repositories.ErrActivityNotFound) {
			return apperrors.ErrLikeNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *FeedServiceImpl) BookmarkPost(db *gorm.DB, userID, postID string) error {
	activityRepo := repositories.NewActivityRepository(db)

	if _, err := activityRepo.FindPostByID(postID); err != nil {
		return apperrors.ErrPostNotFound
	}

	bookmark := &models.SocialActivity{
		ActivityType: models.ActivityTypeBookmark,
		UserID:       userID,
		TargetID:     &postID,
	}
	if err := activityRepo.InsertUnique(bookmark); err != nil {
		if apperrors.Is(err, repositories.ErrDuplicateActivity) {
			return apperrors.ErrAlreadyBookmarked
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *FeedServiceImpl) UnbookmarkPost(db *gorm.DB, userID, postID string) error {
	activityRepo := repositories.NewActivityRepository(db)

	if err := activityRepo.DeleteOne(models.ActivityTypeBookmark, userID, postID); err != nil {
		if apperrors.Is(err, repositories.ErrActivityNotFound) {
			return apperrors.ErrBookmarkNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *FeedServiceImpl) SharePost(db *gorm.DB, postID string) error {
	activityRepo := repositories.NewActivityRepository(db)

	if err := activityRepo.IncrementShareCount(postID); err != nil {
		if apperrors.Is(err, repositories.ErrPostNotFound) {
			return apperrors.ErrPostNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *FeedServiceImpl) CommentPost(db *gorm.DB, userID, postID string, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	activityRepo := repositories.NewActivityRepository(db)

	if _, err := activityRepo.FindPostByID(postID); err != nil {
		return nil, apperrors.ErrPostNotFound
	}

	comment := &models.SocialActivity{
		UserID:   userID,
		TargetID: &postID,
		Content:  req.Content,
	}
	if err := activityRepo.CreateComment(comment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	userRepo := repositories.NewUserRepository(db)
	author, err := userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.CommentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		Author:    s.buildPostAuthor(author),
		CreatedAt: comment.CreatedAt,
	}, nil
}

func (s *FeedServiceImpl) DeleteComment(db *gorm.DB, userID, commentID string) error {
	activityRepo := repositories.NewActivityRepository(db)

	if err := activityRepo.DeleteComment(commentID, userID); err != nil {
		if apperrors.Is(err, repositories.ErrActivityNotFound) {
			return apperrors.NewNotFoundError("feed", "Comment not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// --- Внутренняя кухня ленты ---

// filterVisiblePosts - чистая функция видимости:
//   - public видят все
//   - connections видят автор и его связи
//   - private видит только автор
func filterVisiblePosts(posts []models.SocialActivity, viewerID string, connected map[string]bool) []models.SocialActivity {
	visible := make([]models.SocialActivity, 0, len(posts))
	for _, post := range posts {
		if postVisibleTo(&post, viewerID, connected) {
			visible = append(visible, post)
		}
	}
	return visible
}

func postVisibleTo(post *models.SocialActivity, viewerID string, connected map[string]bool) bool {
	if post.UserID == viewerID {
		return true
	}
	switch post.Visibility {
	case models.VisibilityPublic, "":
		return true
	case models.VisibilityConnections:
		return connected[post.UserID]
	default: // private
		return false
	}
}

// buildFeedPage нарезает страницу и обогащает ее посты параллельно.
func (s *FeedServiceImpl) buildFeedPage(ctx context.Context, db *gorm.DB, viewerID string, visible []models.SocialActivity, page, limit int) (*dto.FeedResponse, error) {
	total := int64(len(visible))
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	start := (page - 1) * limit
	if start > len(visible) {
		start = len(visible)
	}
	end := start + limit
	if end > len(visible) {
		end = len(visible)
	}
	pagePosts := visible[start:end]

	cfg := config.GetConfig()
	enrichCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Feed.EnrichTimeoutMS)*time.Millisecond)
	defer cancel()

	results := make([]*dto.PostResponse, len(pagePosts))
	g, gctx := errgroup.WithContext(enrichCtx)
	g.SetLimit(cfg.Feed.EnrichConcurrent)

	for i := range pagePosts {
		i := i
		post := pagePosts[i]
		g.Go(func() error {
			enriched, err := s.enrichPost(gctx, db, viewerID, &post)
			if err != nil {
				// Проблемный пост выпадает из страницы
				logger.WithError(err).Warn("failed to enrich feed post", "post_id", post.ID)
				return nil
			}
			results[i] = enriched
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apperrors.InternalError(err)
	}

	postsOut := make([]dto.PostResponse, 0, len(results))
	for _, r := range results {
		if r != nil {
			postsOut = append(postsOut, *r)
		}
	}

	return &dto.FeedResponse{
		Posts:      postsOut,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// enrichPost собирает полную карточку поста: автор, счетчики,
// комментарии с авторами и флаги зрителя.
func (s *FeedServiceImpl) enrichPost(ctx context.Context, db *gorm.DB, viewerID string, post *models.SocialActivity) (*dto.PostResponse, error) {
	scoped := db.WithContext(ctx)
	activityRepo := repositories.NewActivityRepository(scoped)
	userRepo := repositories.NewUserRepository(scoped)

	author, err := userRepo.FindByID(post.UserID)
	if err != nil {
		return nil, fmt.Errorf("find post author: %w", err)
	}

	activities, err := activityRepo.FindByTargetID(post.ID)
	if err != nil {
		return nil, fmt.Errorf("find post activities: %w", err)
	}

	resp := &dto.PostResponse{
		ID:            post.ID,
		Author:        s.buildPostAuthor(author),
		Content:       post.Content,
		Visibility:    post.Visibility,
		IsAchievement: post.IsAchievement,
		ShareCount:    post.ShareCount,
		Comments:      []dto.CommentResponse{},
		CreatedAt:     post.CreatedAt,
	}
	if post.ImagePath != "" {
		if url, err := s.storage.GetURL(ctx, post.ImagePath); err == nil {
			resp.ImageURL = url
		}
	}

	var comments []models.SocialActivity
	for _, a := range activities {
		switch a.ActivityType {
		case models.ActivityTypeLike:
			resp.LikeCount++
			if a.UserID == viewerID {
				resp.IsLiked = true
			}
		case models.ActivityTypeBookmark:
			if a.UserID == viewerID {
				resp.IsBookmarked = true
			}
		case models.ActivityTypeComment:
			comments = append(comments, a)
		}
	}
	resp.CommentCount = len(comments)

	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	for _, c := range comments {
		commentAuthor, err := userRepo.FindByID(c.UserID)
		if err != nil {
			// Комментарий без автора пропускаем
			continue
		}
		resp.Comments = append(resp.Comments, dto.CommentResponse{
			ID:        c.ID,
			Content:   c.Content,
			Author:    s.buildPostAuthor(commentAuthor),
			CreatedAt: c.CreatedAt,
		})
	}

	return resp, nil
}

func (s *FeedServiceImpl) buildPostAuthor(user *models.User) dto.PostAuthor {
	author := dto.PostAuthor{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Company:   user.Company,
	}
	if user.AvatarPath != "" {
		if url, err := s.storage.GetURL(context.Background(), user.AvatarPath); err == nil {
			author.AvatarURL = url
		}
	}
	return author
}

func (s *FeedServiceImpl) savePostImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	cfg := config.GetConfig()

	if file.Size > cfg.Upload.MaxSize {
		return "", apperrors.ErrFileTooLarge
	}
	contentType := file.Header.Get("Content-Type")
	if !allowedContentType(contentType, cfg.Upload.AllowedTypes) {
		return "", apperrors.ErrInvalidFileType
	}

	src, err := file.Open()
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	defer src.Close()

	processed, ext, err := s.processor.ProcessImage(src, imageprocessor.SizePost)
	if err != nil {
		return "", apperrors.ErrInvalidFileType
	}

	path := filepath.Join("posts", fmt.Sprintf("%s.%s", uuid.NewString(), ext))
	if err := s.storage.Save(ctx, path, processed, contentType); err != nil {
		return "", apperrors.InternalError(err)
	}
	return path, nil
}
