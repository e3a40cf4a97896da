package services

import (
	"skillspace_backend/internal/email"
	"skillspace_backend/internal/storage"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService       AuthService
	UserService       UserService
	FeedService       FeedService
	CourseService     CourseService
	EnrollmentService EnrollmentService
	CatalogService    CatalogService
	InternshipService InternshipService
	ContactService    ContactService
	CalendarService   CalendarService
	AdminService      AdminService
	EmailProvider     email.Provider
	Storage           storage.Storage
}
