package apperrors

import (
	"net/http"
)

/*
Фабрики и предопределенные переменные для общих ошибок
бизнес-логики и домена платформы.
*/

// =========================================================================
// Фабричные функции (оборачивание ошибок из репозиториев)
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404)
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus - фабрика для невалидных статусов (400)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// =========================================================================
// Auth & User Status
// =========================================================================

// ErrWeakPassword - пароль слишком слабый.
var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 6 characters required.",
	http.StatusBadRequest,
)

// ErrEmailAlreadyExists - email уже используется. Конфликт email отдается
// как 400, в одном ряду с повторным лайком/закладкой.
var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already exists",
	http.StatusBadRequest,
)

// ErrInvalidCredentials - неверный email или пароль.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

// ErrInvalidToken - неверный или просроченный токен (refresh, verify, reset).
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// ErrAccountDeactivated - аккаунт деактивирован админом.
var ErrAccountDeactivated = New(
	CodeUnauthorized,
	"auth",
	"Account is deactivated",
	http.StatusUnauthorized,
)

// ErrUserNotVerified - email не подтвержден.
var ErrUserNotVerified = New(
	CodeForbidden,
	"auth",
	"Please verify your email address",
	http.StatusForbidden,
)

// ErrInvalidUserRole - операция не предусмотрена для роли пользователя.
var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"business_logic",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)

// ErrCannotModifySelf - админ пытается деактивировать/удалить себя.
var ErrCannotModifySelf = New(
	CodeForbidden,
	"business_logic",
	"Operation on self is not allowed",
	http.StatusForbidden,
)

// ErrInsufficientPermissions - не-админ пытается выполнить админ-действие.
var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// =========================================================================
// Feed
// =========================================================================

// ErrPostNotFound - пост не найден или недоступен.
var ErrPostNotFound = New(
	CodeNotFound,
	"feed",
	"Post not found",
	http.StatusNotFound,
)

// ErrAlreadyLiked - пользователь уже лайкнул этот пост.
var ErrAlreadyLiked = New(
	CodeAlreadyExists,
	"feed",
	"Post is already liked",
	http.StatusBadRequest,
)

// ErrLikeNotFound - лайка нет, снимать нечего.
var ErrLikeNotFound = New(
	CodeNotFound,
	"feed",
	"Like not found",
	http.StatusNotFound,
)

// ErrAlreadyBookmarked - пост уже в закладках.
var ErrAlreadyBookmarked = New(
	CodeAlreadyExists,
	"feed",
	"Post is already bookmarked",
	http.StatusBadRequest,
)

// ErrBookmarkNotFound - закладки нет.
var ErrBookmarkNotFound = New(
	CodeNotFound,
	"feed",
	"Bookmark not found",
	http.StatusNotFound,
)

// =========================================================================
// Enrollments & Internships
// =========================================================================

// ErrAlreadyEnrolled - пользователь уже записан на курс.
var ErrAlreadyEnrolled = New(
	CodeAlreadyExists,
	"enrollment",
	"Already enrolled in this course",
	http.StatusConflict,
)

// ErrInternshipFull - свободных мест не осталось.
var ErrInternshipFull = New(
	CodeLimitExceeded,
	"internship",
	"No spots available for this internship",
	http.StatusConflict,
)

// ErrAlreadyApplied - заявка на стажировку уже подана.
var ErrAlreadyApplied = New(
	CodeAlreadyExists,
	"internship",
	"Application already submitted",
	http.StatusConflict,
)

// =========================================================================
// Uploads & Files
// =========================================================================

// ErrFileTooLarge - файл превышает максимальный размер.
var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

// ErrInvalidFileType - MIME-тип файла не разрешен.
var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)
