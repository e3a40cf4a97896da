package repositories

import (
	"errors"

	"skillspace_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrPostNotFound      = errors.New("post not found")
	ErrActivityNotFound  = errors.New("activity not found")
	ErrDuplicateActivity = errors.New("activity already exists")
)

// ActivityRepository работает с единой коллекцией социальной ленты
// (посты, лайки, комментарии, закладки, различаемые по activity_type).
type ActivityRepository interface {
	CreatePost(post *models.SocialActivity) error
	FindPostByID(id string) (*models.SocialActivity, error)
	// FindAllPosts возвращает все посты, новые первыми
	FindAllPosts() ([]models.SocialActivity, error)
	// FindByTargetID возвращает все активности поста одним запросом
	FindByTargetID(postID string) ([]models.SocialActivity, error)
	// FindByUserAndType возвращает активности пользователя заданного типа
	FindByUserAndType(userID string, activityType models.ActivityType) ([]models.SocialActivity, error)

	CreateComment(comment *models.SocialActivity) error
	// InsertUnique вставляет лайк/закладку; ErrDuplicateActivity при повторе
	InsertUnique(activity *models.SocialActivity) error
	// DeleteOne удаляет лайк/закладку; ErrActivityNotFound если её нет
	DeleteOne(activityType models.ActivityType, userID, targetID string) error
	DeleteComment(commentID, userID string) error

	IncrementShareCount(postID string) error
	// DeletePostCascade удаляет пост и все активности с его target_id
	DeletePostCascade(postID string) error

	CountPosts() (int64, error)
}

type ActivityRepositoryImpl struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &ActivityRepositoryImpl{db: db}
}

func (r *ActivityRepositoryImpl) CreatePost(post *models.SocialActivity) error {
	post.ActivityType = models.ActivityTypePost
	if post.Visibility == "" {
		post.Visibility = models.VisibilityPublic
	}
	return r.db.Create(post).Error
}

func (r *ActivityRepositoryImpl) FindPostByID(id string) (*models.SocialActivity, error) {
	var post models.SocialActivity
	err := r.db.Where("id = ? AND activity_type = ?", id, models.ActivityTypePost).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *ActivityRepositoryImpl) FindAllPosts() ([]models.SocialActivity, error) {
	var posts []models.SocialActivity
	err := r.db.Where("activity_type = ?", models.ActivityTypePost).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *ActivityRepositoryImpl) FindByTargetID(postID string) ([]models.SocialActivity, error) {
	var activities []models.SocialActivity
	err := r.db.Where("target_id = ?", postID).Find(&activities).Error
	return activities, err
}

func (r *ActivityRepositoryImpl) FindByUserAndType(userID string, activityType models.ActivityType) ([]models.SocialActivity, error) {
	var activities []models.SocialActivity
	err := r.db.Where("user_id = ? AND activity_type = ?", userID, activityType).
		Order("created_at DESC").
		Find(&activities).Error
	return activities, err
}

func (r *ActivityRepositoryImpl) CreateComment(comment *models.SocialActivity) error {
	comment.ActivityType = models.ActivityTypeComment
	return r.db.Create(comment).Error
}

// InsertUnique полагается на частичный уникальный индекс по
// (activity_type, user_id, target_id): повторный лайк/закладка не
// вставляется, а RowsAffected == 0 переводится в ErrDuplicateActivity.
// Это атомарная замена паре "проверка + вставка".
func (r *ActivityRepositoryImpl) InsertUnique(activity *models.SocialActivity) error {
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(activity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDuplicateActivity
	}
	return nil
}

func (r *ActivityRepositoryImpl) DeleteOne(activityType models.ActivityType, userID, targetID string) error {
	result := r.db.Where("activity_type = ? AND user_id = ? AND target_id = ?", activityType, userID, targetID).
		Delete(&models.SocialActivity{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrActivityNotFound
	}
	return nil
}

func (r *ActivityRepositoryImpl) DeleteComment(commentID, userID string) error {
	result := r.db.Where("id = ? AND activity_type = ? AND user_id = ?", commentID, models.ActivityTypeComment, userID).
		Delete(&models.SocialActivity{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrActivityNotFound
	}
	return nil
}

func (r *ActivityRepositoryImpl) IncrementShareCount(postID string) error {
	result := r.db.Model(&models.SocialActivity{}).
		Where("id = ? AND activity_type = ?", postID, models.ActivityTypePost).
		UpdateColumn("share_count", gorm.Expr("share_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *ActivityRepositoryImpl) DeletePostCascade(postID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND activity_type = ?", postID, models.ActivityTypePost).
			Delete(&models.SocialActivity{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPostNotFound
		}
		// Каскад: лайки, комментарии, закладки поста
		return tx.Where("target_id = ?", postID).Delete(&models.SocialActivity{}).Error
	})
}

func (r *ActivityRepositoryImpl) CountPosts() (int64, error) {
	var count int64
	err := r.db.Model(&models.SocialActivity{}).
		Where("activity_type = ?", models.ActivityTypePost).
		Count(&count).Error
	return count, err
}
