package integration_test

import (
	"net/http"
	"testing"

	"skillspace_backend/internal/models"
	"skillspace_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

// TestInternship_Apply - заявка уменьшает счетчик мест
func TestInternship_Apply(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginStudent(t, ts, tx)
	internship := helpers.CreateTestInternship(t, tx, "Backend Intern", 3)

	res, _ := ts.SendRequest(t, tx, "POST", "/api/v1/internships/"+internship.ID+"/apply", token, map[string]interface{}{
		"cover_letter": "Хочу к вам",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var updated models.Internship
	assert.NoError(t, tx.First(&updated, "id = ?", internship.ID).Error)
	assert.Equal(t, 2, updated.SpotsAvailable)

	// Заявка видна в моих откликах
	res, bodyStr := ts.SendRequest(t, tx, "GET", "/api/v1/internships/submissions/mine", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, internship.ID)
}

// TestInternship_DuplicateApply - повторная заявка не съедает место
func TestInternship_DuplicateApply(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginStudent(t, ts, tx)
	internship := helpers.CreateTestInternship(t, tx, "Data Intern", 5)
	path := "/api/v1/internships/" + internship.ID + "/apply"

	res, _ := ts.SendRequest(t, tx, "POST", path, token, map[string]interface{}{})
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	res, bodyStr := ts.SendRequest(t, tx, "POST", path, token, map[string]interface{}{})
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Contains(t, bodyStr, "already submitted")

	// Откат транзакции заявки вернул место
	var updated models.Internship
	assert.NoError(t, tx.First(&updated, "id = ?", internship.ID).Error)
	assert.Equal(t, 4, updated.SpotsAvailable)
}

// TestInternship_NoSpotsLeft - последняя заявка закрывает набор
func TestInternship_NoSpotsLeft(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	firstToken, _ := helpers.CreateAndLoginStudent(t, ts, tx)
	secondToken, _ := helpers.CreateAndLoginStudent(t, ts, tx)

	internship := helpers.CreateTestInternship(t, tx, "Последнее место", 1)
	path := "/api/v1/internships/" + internship.ID + "/apply"

	res, _ := ts.SendRequest(t, tx, "POST", path, firstToken, map[string]interface{}{})
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	res, bodyStr := ts.SendRequest(t, tx, "POST", path, secondToken, map[string]interface{}{})
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Contains(t, bodyStr, "No spots available")
}

// TestInternship_AdminFlow - создание, список заявок, ревью
func TestInternship_AdminFlow(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, tx)
	studentToken, _ := helpers.CreateAndLoginStudent(t, ts, tx)

	res, bodyStr := ts.SendRequest(t, tx, "POST", "/api/v1/admin/internships", adminToken, map[string]interface{}{
		"title":       "QA Intern",
		"company":     "SkillSpace",
		"description": "Тестирование платформы",
		"spots_total": 2,
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var created models.Internship
	assert.NoError(t, jsonUnmarshal(bodyStr, &created))
	assert.Equal(t, 2, created.SpotsAvailable)

	// Студенту админский маршрут недоступен
	res, _ = ts.SendRequest(t, tx, "POST", "/api/v1/admin/internships", studentToken, map[string]interface{}{
		"title": "x", "company": "y", "spots_total": 1,
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	// Студент подается, админ ревьюит
	res, _ = ts.SendRequest(t, tx, "POST", "/api/v1/internships/"+created.ID+"/apply", studentToken, map[string]interface{}{})
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	res, bodyStr = ts.SendRequest(t, tx, "GET", "/api/v1/admin/internships/"+created.ID+"/submissions", adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var subsPage struct {
		Submissions []models.InternshipSubmission `json:"submissions"`
	}
	assert.NoError(t, jsonUnmarshal(bodyStr, &subsPage))
	assert.Len(t, subsPage.Submissions, 1)

	res, _ = ts.SendRequest(t, tx, "PUT", "/api/v1/admin/internships/submissions/"+subsPage.Submissions[0].ID, adminToken, map[string]interface{}{
		"status": "accepted",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var sub models.InternshipSubmission
	assert.NoError(t, tx.First(&sub, "id = ?", subsPage.Submissions[0].ID).Error)
	assert.Equal(t, models.SubmissionStatusAccepted, sub.Status)
}
