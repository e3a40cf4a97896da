package workers

import (
	"context"
	"time"

	"skillspace_backend/internal/logger"
	"skillspace_backend/internal/repositories"

	"gorm.io/gorm"
)

// MaintenanceWorker выполняет периодические фоновые задачи
type MaintenanceWorker struct {
	db *gorm.DB
}

func NewMaintenanceWorker(db *gorm.DB) *MaintenanceWorker {
	return &MaintenanceWorker{db: db}
}

// Start запускает фоновые задачи
func (w *MaintenanceWorker) Start(ctx context.Context) {
	// Автозакрытие стажировок с истёкшим дедлайном
	go w.autoCloseInternships(ctx)
	// Чистка протухших refresh-токенов
	go w.cleanupRefreshTokens(ctx)
}

func (w *MaintenanceWorker) autoCloseInternships(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Internship auto-close worker stopped")
			return
		case <-ticker.C:
			repo := repositories.NewInternshipRepository(w.db)
			closed, err := repo.CloseExpired()
			if err != nil {
				logger.WorkerLog("maintenance", "auto-close internships", err)
			} else if closed > 0 {
				logger.Info("Auto-closed expired internships", "count", closed)
			}
		}
	}
}

func (w *MaintenanceWorker) cleanupRefreshTokens(ctx context.Context) {
	ticker := time.NewTicker(6 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Refresh token cleanup worker stopped")
			return
		case <-ticker.C:
			repo := repositories.NewRefreshTokenRepository(w.db)
			deleted, err := repo.DeleteExpired()
			if err != nil {
				logger.WorkerLog("maintenance", "cleanup refresh tokens", err)
			} else if deleted > 0 {
				logger.Info("Deleted expired refresh tokens", "count", deleted)
			}
		}
	}
}
