package integration_test

import (
	"net/http"
	"testing"

	"skillspace_backend/internal/models"
	"skillspace_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

// TestEnrollment_Flow - запись на курс и защита от повторной записи
func TestEnrollment_Flow(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginStudent(t, ts, tx)
	course := helpers.CreateTestCourse(t, tx, "Go для начинающих")

	enrollBody := map[string]interface{}{"course_id": course.ID}

	res, _ := ts.SendRequest(t, tx, "POST", "/api/v1/enrollments", token, enrollBody)
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	// Повторная запись на тот же курс отклоняется
	res, bodyStr := ts.SendRequest(t, tx, "POST", "/api/v1/enrollments", token, enrollBody)
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Contains(t, bodyStr, "Already enrolled")

	// Курс виден в списке моих записей
	res, bodyStr = ts.SendRequest(t, tx, "GET", "/api/v1/enrollments/mine", token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "Go для начинающих")
}

// TestEnrollment_UnpublishedCourseRejected - на снятый с публикации курс
// записаться нельзя
func TestEnrollment_UnpublishedCourseRejected(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginStudent(t, ts, tx)

	course := models.Course{Title: "Черновик", IsPublished: false}
	assert.NoError(t, tx.Create(&course).Error)

	res, _ := ts.SendRequest(t, tx, "POST", "/api/v1/enrollments", token, map[string]interface{}{
		"course_id": course.ID,
	})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

// TestEnrollment_GuestAutoLink - гостевая заявка привязывается к аккаунту
// с тем же email при первом логине
func TestEnrollment_GuestAutoLink(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	course := helpers.CreateTestCourse(t, tx, "Курс для гостя")

	// Гость оставляет заявку без аккаунта (email в другом регистре)
	res, _ := ts.SendRequest(t, tx, "POST", "/api/v1/enrollments/guest", "", map[string]interface{}{
		"course_id": course.ID,
		"email":     "Guest@Test.com",
		"name":      "Гость",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	// Гость регистрируется и логинится с тем же email
	err := helpers.CreateUser(t, tx, &models.User{
		Email:        "guest@test.com",
		PasswordHash: "password123",
		Role:         models.UserRoleStudent,
	})
	assert.NoError(t, err)

	logRes, _ := ts.SendRequest(t, tx, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "guest@test.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, logRes.StatusCode)

	// Заявка привязана, запись создана
	var request models.EnrollmentRequest
	err = tx.Where("LOWER(email) = ?", "guest@test.com").First(&request).Error
	assert.NoError(t, err)
	assert.NotNil(t, request.LinkedUserID)
	assert.NotNil(t, request.LinkedAt)

	var enrollment models.Enrollment
	err = tx.Where("course_id = ? AND user_id = ?", course.ID, *request.LinkedUserID).First(&enrollment).Error
	assert.NoError(t, err)

	// Повторный логин не плодит дубликаты
	logRes, _ = ts.SendRequest(t, tx, "POST", "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "guest@test.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, logRes.StatusCode)

	var count int64
	err = tx.Model(&models.Enrollment{}).
		Where("course_id = ? AND user_id = ?", course.ID, *request.LinkedUserID).
		Count(&count).Error
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

// TestEnrollment_Progress - прогресс 100 переводит запись в completed
func TestEnrollment_Progress(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, user := helpers.CreateAndLoginStudent(t, ts, tx)
	course := helpers.CreateTestCourse(t, tx, "Курс с прогрессом")

	res, _ := ts.SendRequest(t, tx, "POST", "/api/v1/enrollments", token, map[string]interface{}{
		"course_id": course.ID,
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var enrollment models.Enrollment
	assert.NoError(t, tx.Where("user_id = ? AND course_id = ?", user.ID, course.ID).First(&enrollment).Error)

	res, _ = ts.SendRequest(t, tx, "PUT", "/api/v1/enrollments/"+enrollment.ID+"/progress", token, map[string]interface{}{
		"progress": 100,
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	assert.NoError(t, tx.First(&enrollment, "id = ?", enrollment.ID).Error)
	assert.Equal(t, 100, enrollment.Progress)
	assert.Equal(t, models.EnrollmentStatusCompleted, enrollment.Status)
}

// TestEnrollment_AdminFilterByUser - админский список фильтруется по user_id
func TestEnrollment_AdminFilterByUser(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, tx)
	aliceToken, alice := helpers.CreateAndLoginStudent(t, ts, tx)
	bobToken, bob := helpers.CreateAndLoginStudent(t, ts, tx)
	course := helpers.CreateTestCourse(t, tx, uniqueName("Общий курс"))

	enrollBody := map[string]interface{}{"course_id": course.ID}
	res, _ := ts.SendRequest(t, tx, "POST", "/api/v1/enrollments", aliceToken, enrollBody)
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	res, _ = ts.SendRequest(t, tx, "POST", "/api/v1/enrollments", bobToken, enrollBody)
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	res, bodyStr := ts.SendRequest(t, tx, "GET", "/api/v1/admin/enrollments?user_id="+alice.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, alice.ID)
	assert.NotContains(t, bodyStr, bob.ID)

	// Без фильтра видны обе записи
	res, bodyStr = ts.SendRequest(t, tx, "GET", "/api/v1/admin/enrollments?course_id="+course.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, alice.ID)
	assert.Contains(t, bodyStr, bob.ID)
}
