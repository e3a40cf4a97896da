package integration_test

import (
	"net/http"
	"testing"

	"skillspace_backend/internal/models"
	"skillspace_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

// TestCourses_PublicCatalogHidesUnpublished - черновики видны только админу
func TestCourses_PublicCatalogHidesUnpublished(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, tx)

	published := helpers.CreateTestCourse(t, tx, uniqueName("Опубликованный курс"))
	draft := models.Course{Title: uniqueName("Черновик курса"), IsPublished: false}
	assert.NoError(t, tx.Create(&draft).Error)

	res, bodyStr := ts.SendRequest(t, tx, "GET", "/api/v1/courses", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, published.Title)
	assert.NotContains(t, bodyStr, draft.Title)

	res, bodyStr = ts.SendRequest(t, tx, "GET", "/api/v1/admin/courses", adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, draft.Title)
}

// TestCourses_AdminCRUD - создание, правка и удаление курса
func TestCourses_AdminCRUD(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, tx)

	res, bodyStr := ts.SendRequest(t, tx, "POST", "/api/v1/admin/courses", adminToken, map[string]interface{}{
		"title":          "Алгоритмы и структуры данных",
		"description":    "Базовый курс",
		"category":       "programming",
		"level":          "intermediate",
		"duration_weeks": 8,
		"tags":           []string{"go", "algorithms"},
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var course models.Course
	assert.NoError(t, jsonUnmarshal(bodyStr, &course))
	assert.True(t, course.IsPublished)

	res, _ = ts.SendRequest(t, tx, "PUT", "/api/v1/admin/courses/"+course.ID, adminToken, map[string]interface{}{
		"level": "advanced",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var updated models.Course
	assert.NoError(t, tx.First(&updated, "id = ?", course.ID).Error)
	assert.Equal(t, "advanced", updated.Level)
	assert.Equal(t, "Алгоритмы и структуры данных", updated.Title)

	res, _ = ts.SendRequest(t, tx, "DELETE", "/api/v1/admin/courses/"+course.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, tx, "GET", "/api/v1/courses/"+course.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

// TestCourses_AssignmentsAndCertificates - задания и сертификаты курса
func TestCourses_AssignmentsAndCertificates(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, tx)
	studentToken, student := helpers.CreateAndLoginStudent(t, ts, tx)
	course := helpers.CreateTestCourse(t, tx, uniqueName("Курс с заданиями"))

	res, _ := ts.SendRequest(t, tx, "POST", "/api/v1/admin/courses/assignments", adminToken, map[string]interface{}{
		"course_id":   course.ID,
		"title":       "Домашнее задание 1",
		"description": "Решить 10 задач",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	res, bodyStr := ts.SendRequest(t, tx, "GET", "/api/v1/courses/"+course.ID+"/assignments", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "Домашнее задание 1")

	res, _ = ts.SendRequest(t, tx, "POST", "/api/v1/admin/courses/certificates", adminToken, map[string]interface{}{
		"user_id":   student.ID,
		"course_id": course.ID,
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	res, bodyStr = ts.SendRequest(t, tx, "GET", "/api/v1/certificates/mine", studentToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, course.ID)
}
