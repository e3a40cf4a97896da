package repositories

import (
	"errors"

	"skillspace_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrConnectionNotFound = errors.New("connection not found")

type ConnectionRepository interface {
	// ListConnectedIDs возвращает id пользователей, связанных с userID
	ListConnectedIDs(userID string) ([]string, error)
	Create(conn *models.Connection) error
	Delete(userID, connectedUserID string) error
	Exists(userID, connectedUserID string) (bool, error)
}

type ConnectionRepositoryImpl struct {
	db *gorm.DB
}

func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &ConnectionRepositoryImpl{db: db}
}

func (r *ConnectionRepositoryImpl) ListConnectedIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Connection{}).
		Where("user_id = ?", userID).
		Pluck("connected_user_id", &ids).Error
	return ids, err
}

func (r *ConnectionRepositoryImpl) Create(conn *models.Connection) error {
	// Повторное добавление той же связи - no-op
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(conn).Error
}

func (r *ConnectionRepositoryImpl) Delete(userID, connectedUserID string) error {
	result := r.db.Where("user_id = ? AND connected_user_id = ?", userID, connectedUserID).
		Delete(&models.Connection{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConnectionNotFound
	}
	return nil
}

func (r *ConnectionRepositoryImpl) Exists(userID, connectedUserID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Connection{}).
		Where("user_id = ? AND connected_user_id = ?", userID, connectedUserID).
		Count(&count).Error
	return count > 0, err
}
