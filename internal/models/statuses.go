package models

// UserRole - тип аккаунта на платформе
type UserRole string

const (
	UserRoleStudent      UserRole = "student"
	UserRoleProfessional UserRole = "professional"
	UserRoleBusiness     UserRole = "business"
	UserRoleAgency       UserRole = "agency"
	UserRoleAdmin        UserRole = "admin"
)

// ValidRegistrationRole проверяет, что роль доступна при саморегистрации
func ValidRegistrationRole(r UserRole) bool {
	switch r {
	case UserRoleStudent, UserRoleProfessional, UserRoleBusiness, UserRoleAgency:
		return true
	}
	return false
}

// UserStatus - статус аккаунта
type UserStatus string

const (
	UserStatusActive      UserStatus = "active"
	UserStatusDeactivated UserStatus = "deactivated"
)

// EnrollmentStatus - статус записи на курс
type EnrollmentStatus string

const (
	EnrollmentStatusActive    EnrollmentStatus = "active"
	EnrollmentStatusCompleted EnrollmentStatus = "completed"
	EnrollmentStatusCancelled EnrollmentStatus = "cancelled"
)

// ActivityType - дискриминатор записей социальной ленты
type ActivityType string

const (
	ActivityTypePost     ActivityType = "post"
	ActivityTypeLike     ActivityType = "like"
	ActivityTypeComment  ActivityType = "comment"
	ActivityTypeBookmark ActivityType = "bookmark"
)

// Visibility - область видимости поста
type Visibility string

const (
	VisibilityPublic      Visibility = "public"
	VisibilityConnections Visibility = "connections"
	VisibilityPrivate     Visibility = "private"
)

// ServiceRequestStatus - статус заявки на услугу
type ServiceRequestStatus string

const (
	ServiceRequestStatusPending   ServiceRequestStatus = "pending"
	ServiceRequestStatusInProcess ServiceRequestStatus = "in-process"
	ServiceRequestStatusCompleted ServiceRequestStatus = "completed"
	ServiceRequestStatusCancelled ServiceRequestStatus = "cancelled"
)

// ValidServiceRequestStatus проверяет статус воркфлоу заявки
func ValidServiceRequestStatus(s ServiceRequestStatus) bool {
	switch s {
	case ServiceRequestStatusPending, ServiceRequestStatusInProcess,
		ServiceRequestStatusCompleted, ServiceRequestStatusCancelled:
		return true
	}
	return false
}

// InternshipStatus - статус стажировки
type InternshipStatus string

const (
	InternshipStatusOpen   InternshipStatus = "open"
	InternshipStatusClosed InternshipStatus = "closed"
)

// SubmissionStatus - статус заявки на стажировку
type SubmissionStatus string

const (
	SubmissionStatusSubmitted SubmissionStatus = "submitted"
	SubmissionStatusReviewed  SubmissionStatus = "reviewed"
	SubmissionStatusAccepted  SubmissionStatus = "accepted"
	SubmissionStatusRejected  SubmissionStatus = "rejected"
)

// ContactStatus - статус сообщения из формы обратной связи
type ContactStatus string

const (
	ContactStatusNew      ContactStatus = "new"
	ContactStatusRead     ContactStatus = "read"
	ContactStatusResolved ContactStatus = "resolved"
)
