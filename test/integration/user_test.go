package integration_test

import (
	"net/http"
	"testing"

	"skillspace_backend/internal/models"
	"skillspace_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

// TestProfile_GetAndUpdate - чтение и частичное обновление профиля
func TestProfile_GetAndUpdate(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, user := helpers.CreateAndLoginStudent(t, ts, tx)

	res, bodyStr := ts.SendRequest(t, tx, "GET", "/api/v1/users/me", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, user.Email)

	res, bodyStr = ts.SendRequest(t, tx, "PUT", "/api/v1/users/me", token, map[string]interface{}{
		"bio":    "Учу Go",
		"city":   "Astana",
		"skills": []string{"go", "postgres"},
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "Учу Go")
	assert.Contains(t, bodyStr, "postgres")

	// Не переданные поля не затираются
	var stored models.User
	assert.NoError(t, tx.First(&stored, "id = ?", user.ID).Error)
	assert.Equal(t, "Test", stored.FirstName)
	assert.Equal(t, "Astana", stored.City)
}

// TestConnections_MutualAddRemove - связь создается в обе стороны
func TestConnections_MutualAddRemove(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	aliceToken, alice := helpers.CreateAndLoginStudent(t, ts, tx)
	_, bob := helpers.CreateAndLoginStudent(t, ts, tx)

	res, _ := ts.SendRequest(t, tx, "POST", "/api/v1/users/me/connections", aliceToken, map[string]interface{}{
		"connected_user_id": bob.ID,
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var count int64
	assert.NoError(t, tx.Model(&models.Connection{}).
		Where("(user_id = ? AND connected_user_id = ?) OR (user_id = ? AND connected_user_id = ?)",
			alice.ID, bob.ID, bob.ID, alice.ID).
		Count(&count).Error)
	assert.Equal(t, int64(2), count)

	res, bodyStr := ts.SendRequest(t, tx, "GET", "/api/v1/users/me/connections", aliceToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, bob.Email)

	res, _ = ts.SendRequest(t, tx, "DELETE", "/api/v1/users/me/connections/"+bob.ID, aliceToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	assert.NoError(t, tx.Model(&models.Connection{}).
		Where("(user_id = ? AND connected_user_id = ?) OR (user_id = ? AND connected_user_id = ?)",
			alice.ID, bob.ID, bob.ID, alice.ID).
		Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

// TestAdmin_UserManagement - дашборд, деактивация и защита от self-lockout
func TestAdmin_UserManagement(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, admin := helpers.CreateAndLoginAdmin(t, ts, tx)
	_, student := helpers.CreateAndLoginStudent(t, ts, tx)

	res, bodyStr := ts.SendRequest(t, tx, "GET", "/api/v1/admin/dashboard", adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "users")

	// Деактивация студента
	res, _ = ts.SendRequest(t, tx, "PUT", "/api/v1/admin/users/"+student.ID+"/deactivate", adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var stored models.User
	assert.NoError(t, tx.First(&stored, "id = ?", student.ID).Error)
	assert.Equal(t, models.UserStatusDeactivated, stored.Status)

	// Деактивированный не может залогиниться
	logRes, _ := ts.SendRequest(t, tx, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"email":    student.Email,
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, logRes.StatusCode)

	// Обратная активация
	res, _ = ts.SendRequest(t, tx, "PUT", "/api/v1/admin/users/"+student.ID+"/activate", adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// Себя деактивировать нельзя
	res, bodyStr = ts.SendRequest(t, tx, "PUT", "/api/v1/admin/users/"+admin.ID+"/deactivate", adminToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Contains(t, bodyStr, "self")

	// Фильтрация по роли
	res, bodyStr = ts.SendRequest(t, tx, "GET", "/api/v1/admin/users?role=student", adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, student.Email)
	assert.NotContains(t, bodyStr, admin.Email)
}
