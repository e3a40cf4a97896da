package models

// SocialActivity - единая коллекция ленты: посты, лайки, комментарии и
// закладки в одной таблице, различаются по ActivityType. Лайки, комментарии
// и закладки ссылаются на пост через TargetID.
//
// Уникальность "один лайк и одна закладка на пару (пользователь, пост)"
// обеспечивается частичным уникальным индексом (см. database/migrate.go).
type SocialActivity struct {
	BaseModel
	ActivityType ActivityType `gorm:"type:varchar(20);not null;index" json:"activity_type"`
	UserID       string       `gorm:"not null;index" json:"user_id"`
	TargetID     *string      `gorm:"index" json:"target_id"` // NULL для постов

	// Поля постов
	Content       string     `json:"content"`
	ImagePath     string     `json:"image_path"`
	Visibility    Visibility `gorm:"type:varchar(20)" json:"visibility"`
	IsAchievement bool       `gorm:"default:false" json:"is_achievement"`
	ShareCount    int        `gorm:"default:0" json:"share_count"`
}

// IsPost сообщает, является ли запись постом
func (a *SocialActivity) IsPost() bool {
	return a.ActivityType == ActivityTypePost
}
