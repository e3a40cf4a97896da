package app

import (
	"context"
	"errors"
	"fmt"

	"skillspace_backend/database"
	"skillspace_backend/internal/config"
	"skillspace_backend/internal/email"
	"skillspace_backend/internal/handlers"
	"skillspace_backend/internal/imageprocessor"
	"skillspace_backend/internal/logger"
	"skillspace_backend/internal/middleware"
	"skillspace_backend/internal/models"
	"skillspace_backend/internal/routes"
	"skillspace_backend/internal/services"
	"skillspace_backend/internal/storage"
	"skillspace_backend/internal/validator"
	"skillspace_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	// Фоновые задачи: автозакрытие стажировок, чистка refresh-токенов
	worker := workers.NewMaintenanceWorker(gormDB)
	worker.Start(context.Background())

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "base_path", cfg.Storage.BasePath)

	serviceContainer := initializeServices(cfg, storageInstance)

	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(cfg, gormDB)

	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config, storageInstance storage.Storage) *services.ServiceContainer {
	var emailProvider email.Provider
	if cfg.Email.SMTPUsername != "" {
		emailProvider = email.NewSMTPProvider(&email.SMTPConfig{
			Host:          cfg.Email.SMTPHost,
			Port:          cfg.Email.SMTPPort,
			Username:      cfg.Email.SMTPUsername,
			Password:      cfg.Email.SMTPPassword,
			FromEmail:     cfg.Email.FromEmail,
			FromName:      cfg.Email.FromName,
			PublicBaseURL: cfg.Email.PublicBaseURL,
		}, nil)
	} else {
		logger.Warn("SMTP is not configured, using mock email provider")
		emailProvider = &MockEmailProvider{}
	}

	processor := imageprocessor.NewProcessor(cfg.Upload.ImageQuality)

	userService := services.NewUserService(storageInstance, processor)

	return &services.ServiceContainer{
		AuthService:       services.NewAuthService(emailProvider),
		UserService:       userService,
		FeedService:       services.NewFeedService(storageInstance, processor),
		CourseService:     services.NewCourseService(),
		EnrollmentService: services.NewEnrollmentService(),
		CatalogService:    services.NewCatalogService(emailProvider),
		InternshipService: services.NewInternshipService(),
		ContactService:    services.NewContactService(),
		CalendarService:   services.NewCalendarService(),
		AdminService:      services.NewAdminService(userService),
		EmailProvider:     emailProvider,
		Storage:           storageInstance,
	}
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:       handlers.NewAuthHandler(baseHandler, container.AuthService),
		UserHandler:       handlers.NewUserHandler(baseHandler, container.UserService),
		FeedHandler:       handlers.NewFeedHandler(baseHandler, container.FeedService),
		CourseHandler:     handlers.NewCourseHandler(baseHandler, container.CourseService),
		EnrollmentHandler: handlers.NewEnrollmentHandler(baseHandler, container.EnrollmentService),
		ServiceHandler:    handlers.NewServiceHandler(baseHandler, container.CatalogService),
		InternshipHandler: handlers.NewInternshipHandler(baseHandler, container.InternshipService),
		ContactHandler:    handlers.NewContactHandler(baseHandler, container.ContactService),
		CalendarHandler:   handlers.NewCalendarHandler(baseHandler, container.CalendarService),
		AdminHandler:      handlers.NewAdminHandler(baseHandler, container.AdminService),
		FileHandler:       handlers.NewFileHandler(baseHandler, container.Storage),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(middleware.DBMiddleware(db))
	return router
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	var adminUser models.User
	result := db.Where("LOWER(email) = LOWER(?)", adminEmail).First(&adminUser)

	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Email:        adminEmail,
		PasswordHash: string(hashedPassword),
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
		IsVerified:   true,
		FirstName:    "Platform",
		LastName:     "Admin",
	}

	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user in database: %w", err)
	}

	logger.Info("✅ Successfully created first admin user", "email", adminEmail)
	return nil
}
