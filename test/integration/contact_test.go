package integration_test

import (
	"net/http"
	"testing"

	"skillspace_backend/internal/models"
	"skillspace_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

// TestContact_SubmitAndRead - публичная форма, просмотр админом переводит
// новое сообщение в read
func TestContact_SubmitAndRead(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, _ := ts.SendRequest(t, tx, "POST", "/api/v1/contact", "", map[string]interface{}{
		"name":    "Посетитель",
		"email":   "visitor@test.com",
		"subject": "Вопрос",
		"message": "Как записаться на курс?",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var message models.ContactMessage
	assert.NoError(t, tx.Where("email = ?", "visitor@test.com").First(&message).Error)
	assert.Equal(t, models.ContactStatusNew, message.Status)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, tx)

	// Просмотр сообщения
	res, bodyStr := ts.SendRequest(t, tx, "GET", "/api/v1/admin/contact/"+message.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "Как записаться на курс?")

	assert.NoError(t, tx.First(&message, "id = ?", message.ID).Error)
	assert.Equal(t, models.ContactStatusRead, message.Status)

	// Закрытие обращения
	res, _ = ts.SendRequest(t, tx, "PUT", "/api/v1/admin/contact/"+message.ID+"/status", adminToken, map[string]interface{}{
		"status": "resolved",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	assert.NoError(t, tx.First(&message, "id = ?", message.ID).Error)
	assert.Equal(t, models.ContactStatusResolved, message.Status)
}

// TestContact_ValidationAndAccess - форма валидируется, список только для админа
func TestContact_ValidationAndAccess(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	// Без email и текста - 400
	res, _ := ts.SendRequest(t, tx, "POST", "/api/v1/contact", "", map[string]interface{}{
		"name": "Аноним",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	// Список сообщений требует админа
	studentToken, _ := helpers.CreateAndLoginStudent(t, ts, tx)
	res, _ = ts.SendRequest(t, tx, "GET", "/api/v1/admin/contact", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = ts.SendRequest(t, tx, "GET", "/api/v1/admin/contact", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}
