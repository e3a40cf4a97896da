package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler       *AuthHandler
	UserHandler       *UserHandler
	FeedHandler       *FeedHandler
	CourseHandler     *CourseHandler
	EnrollmentHandler *EnrollmentHandler
	ServiceHandler    *ServiceHandler
	InternshipHandler *InternshipHandler
	ContactHandler    *ContactHandler
	CalendarHandler   *CalendarHandler
	AdminHandler      *AdminHandler
	FileHandler       *FileHandler
}
