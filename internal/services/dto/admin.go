package dto

import "skillspace_backend/internal/repositories"

// DashboardStats - сводка для админ-панели
type DashboardStats struct {
	Users           *repositories.RegistrationStats `json:"users"`
	TotalPosts      int64                           `json:"total_posts"`
	TotalCourses    int64                           `json:"total_courses"`
	TotalApplicants int64                           `json:"total_applicants"`
	NewContacts     int64                           `json:"new_contacts"`
	PendingRequests int64                           `json:"pending_requests"`
}

// UserListResponse - страница пользователей (админ)
type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	Total      int64          `json:"total"`
	TotalPages int            `json:"total_pages"`
}
