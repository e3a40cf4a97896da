package integration_test

import (
	"net/http"
	"testing"

	"skillspace_backend/internal/models"
	"skillspace_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

// TestRegisterAndLogin - золотой путь: регистрация, затем логин
func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	registerBody := map[string]interface{}{
		"email":      "newstudent@test.com",
		"password":   "super_password123",
		"role":       "student",
		"first_name": "Айгерим",
		"last_name":  "Тестова",
		"city":       "Almaty",
	}

	regRes, regBodyStr := ts.SendRequest(t, tx, "POST", "/api/v1/auth/register", "", registerBody)
	assert.Equal(t, http.StatusCreated, regRes.StatusCode)
	assert.Contains(t, regBodyStr, "Registration successful")

	loginBody := map[string]interface{}{
		"email":    "newstudent@test.com",
		"password": "super_password123",
	}
	logRes, logBodyStr := ts.SendRequest(t, tx, "POST", "/api/v1/auth/login", "", loginBody)

	assert.Equal(t, http.StatusOK, logRes.StatusCode)
	assert.Contains(t, logBodyStr, "access_token")
	assert.Contains(t, logBodyStr, "refresh_token")
}

// TestRegister_DuplicateEmail - дубликат email без учета регистра дает 409
func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	err := helpers.CreateUser(t, tx, &models.User{
		Email:        "duplicate@test.com",
		PasswordHash: "pass123",
		Role:         models.UserRoleStudent,
		FirstName:    "User",
		LastName:     "One",
	})
	assert.NoError(t, err)

	// Тот же email в другом регистре
	duplicateBody := map[string]interface{}{
		"email":      "DUPLICATE@test.com",
		"password":   "password_is_long_enough_123",
		"role":       "professional",
		"first_name": "User",
		"last_name":  "Two",
	}
	regRes, regBodyStr := ts.SendRequest(t, tx, "POST", "/api/v1/auth/register", "", duplicateBody)

	assert.Equal(t, http.StatusBadRequest, regRes.StatusCode)
	assert.Contains(t, regBodyStr, "Email already exists")
}

// TestRegister_AdminRoleRejected - роль admin недоступна при саморегистрации
func TestRegister_AdminRoleRejected(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	body := map[string]interface{}{
		"email":      "wannabe_admin@test.com",
		"password":   "password123",
		"role":       "admin",
		"first_name": "Evil",
	}
	res, _ := ts.SendRequest(t, tx, "POST", "/api/v1/auth/register", "", body)

	// Отсекается либо валидатором DTO, либо проверкой роли в сервисе
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

// TestLogin_BadPassword - неверный пароль дает 401
func TestLogin_BadPassword(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	err := helpers.CreateUser(t, tx, &models.User{
		Email:        "user@test.com",
		PasswordHash: "correct-password",
		Role:         models.UserRoleStudent,
	})
	assert.NoError(t, err)

	loginBody := map[string]interface{}{
		"email":    "user@test.com",
		"password": "WRONG-password",
	}
	logRes, logBodyStr := ts.SendRequest(t, tx, "POST", "/api/v1/auth/login", "", loginBody)

	assert.Equal(t, http.StatusUnauthorized, logRes.StatusCode)
	assert.Contains(t, logBodyStr, "Invalid email or password")
}

// TestLogin_DeactivatedUser - деактивированный аккаунт не может залогиниться
func TestLogin_DeactivatedUser(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	user := &models.User{
		Email:        "deactivated@test.com",
		PasswordHash: "password123",
		Role:         models.UserRoleStudent,
		Status:       models.UserStatusDeactivated,
	}
	err := helpers.CreateUser(t, tx, user)
	assert.NoError(t, err)

	loginBody := map[string]interface{}{
		"email":    "deactivated@test.com",
		"password": "password123",
	}
	logRes, logBodyStr := ts.SendRequest(t, tx, "POST", "/api/v1/auth/login", "", loginBody)

	assert.Equal(t, http.StatusUnauthorized, logRes.StatusCode)
	assert.Contains(t, logBodyStr, "Account is deactivated")
}

// TestDeactivatedUser_TokenRejected - токен живого логина перестает работать
// после деактивации аккаунта
func TestDeactivatedUser_TokenRejected(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, user := helpers.CreateAndLoginStudent(t, ts, tx)

	// Токен работает
	res, _ := ts.SendRequest(t, tx, "GET", "/api/v1/users/me", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// Деактивируем напрямую в транзакции
	err := tx.Model(&models.User{}).Where("id = ?", user.ID).
		Update("status", models.UserStatusDeactivated).Error
	assert.NoError(t, err)

	// Тот же токен теперь отклоняется
	res, bodyStr := ts.SendRequest(t, tx, "GET", "/api/v1/users/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Contains(t, bodyStr, "deactivated")
}

// TestRefreshToken_Rotation - refresh выдает новую пару, старый токен гаснет
func TestRefreshToken_Rotation(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	err := helpers.CreateUser(t, tx, &models.User{
		Email:        "rotation@test.com",
		PasswordHash: "password123",
		Role:         models.UserRoleStudent,
	})
	assert.NoError(t, err)

	logRes, logBodyStr := ts.SendRequest(t, tx, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "rotation@test.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, logRes.StatusCode)

	var loginResp struct {
		RefreshToken string `json:"refresh_token"`
	}
	assert.NoError(t, jsonUnmarshal(logBodyStr, &loginResp))

	// Первый refresh успешен
	refRes, _ := ts.SendRequest(t, tx, "POST", "/api/v1/auth/refresh", "", map[string]interface{}{
		"refresh_token": loginResp.RefreshToken,
	})
	assert.Equal(t, http.StatusOK, refRes.StatusCode)

	// Повторный refresh тем же токеном отклоняется
	refRes2, bodyStr := ts.SendRequest(t, tx, "POST", "/api/v1/auth/refresh", "", map[string]interface{}{
		"refresh_token": loginResp.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, refRes2.StatusCode)
	assert.Contains(t, bodyStr, "Invalid or expired token")
}
