package integration_test

import (
	"net/http"
	"testing"
	"time"

	"skillspace_backend/internal/models"
	"skillspace_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

// TestCalendar_CreateAndFilter - события фильтруются по периоду
func TestCalendar_CreateAndFilter(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, tx)

	res, _ := ts.SendRequest(t, tx, "POST", "/api/v1/admin/events", adminToken, map[string]interface{}{
		"title":      "Вебинар по Go",
		"start_time": "2026-10-10T18:00:00Z",
		"end_time":   "2026-10-10T19:30:00Z",
		"event_type": "webinar",
		"attendees":  []string{"speaker@test.com"},
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	res, _ = ts.SendRequest(t, tx, "POST", "/api/v1/admin/events", adminToken, map[string]interface{}{
		"title":      "Дедлайн набора",
		"start_time": "2026-12-01T00:00:00Z",
		"event_type": "deadline",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	// Октябрьское окно содержит только вебинар
	res, bodyStr := ts.SendRequest(t, tx, "GET", "/api/v1/events?from=2026-10-01&to=2026-10-31", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "Вебинар по Go")
	assert.NotContains(t, bodyStr, "Дедлайн набора")

	// Фильтр по типу
	res, bodyStr = ts.SendRequest(t, tx, "GET", "/api/v1/events?event_type=deadline", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "Дедлайн набора")
	assert.NotContains(t, bodyStr, "Вебинар по Go")
}

// TestCalendar_EndBeforeStartRejected - событие с end_time раньше start_time
// не проходит валидацию
func TestCalendar_EndBeforeStartRejected(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, tx)

	res, _ := ts.SendRequest(t, tx, "POST", "/api/v1/admin/events", adminToken, map[string]interface{}{
		"title":      "Сломанное событие",
		"start_time": "2026-10-10T18:00:00Z",
		"end_time":   "2026-10-10T17:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

// TestCalendar_AdminOnlyMutation - изменять события может только админ
func TestCalendar_AdminOnlyMutation(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	studentToken, _ := helpers.CreateAndLoginStudent(t, ts, tx)

	event := models.CalendarEvent{
		Title:     "Митап",
		StartTime: time.Date(2026, 11, 5, 19, 0, 0, 0, time.UTC),
		EventType: "meetup",
	}
	assert.NoError(t, tx.Create(&event).Error)

	// Чтение публично
	res, _ := ts.SendRequest(t, tx, "GET", "/api/v1/events/"+event.ID, "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// Правка студентом запрещена
	res, _ = ts.SendRequest(t, tx, "PUT", "/api/v1/admin/events/"+event.ID, studentToken, map[string]interface{}{
		"title": "Взломанный митап",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}
