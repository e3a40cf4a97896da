package integration_test

import (
	"net/http"
	"testing"

	"skillspace_backend/internal/models"
	"skillspace_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func createCategoryTree(t *testing.T, tx *gorm.DB) (models.ServiceCategory, models.ServiceSubcategory) {
	t.Helper()

	category := models.ServiceCategory{Name: uniqueName("Дизайн"), Description: "Все про дизайн"}
	assert.NoError(t, tx.Create(&category).Error)

	subcategory := models.ServiceSubcategory{CategoryID: category.ID, Name: "Логотипы"}
	assert.NoError(t, tx.Create(&subcategory).Error)

	return category, subcategory
}

// TestServices_GuestRequest - гость оставляет заявку без аккаунта
func TestServices_GuestRequest(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, subcategory := createCategoryTree(t, tx)

	res, _ := ts.SendRequest(t, tx, "POST", "/api/v1/services/requests", "", map[string]interface{}{
		"subcategory_id":  subcategory.ID,
		"contact_name":    "Гость",
		"contact_email":   "guest-client@test.com",
		"contact_phone":   "+77001234567",
		"project_details": "Нужен логотип",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var request models.ServiceRequest
	assert.NoError(t, tx.Where("contact_email = ?", "guest-client@test.com").First(&request).Error)
	assert.Equal(t, models.ServiceRequestStatusPending, request.Status)
	assert.Empty(t, request.UserID)
}

// TestServices_OfferingRequiresProviderRole - студент не может создать услугу
func TestServices_OfferingRequiresProviderRole(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, subcategory := createCategoryTree(t, tx)

	studentToken, _ := helpers.CreateAndLoginStudent(t, ts, tx)
	businessToken, _ := helpers.CreateAndLoginUser(t, ts, tx, uniqueName("business")+"@test.com", "password123", models.UserRoleBusiness)

	offeringBody := map[string]interface{}{
		"subcategory_id": subcategory.ID,
		"title":          "Логотип под ключ",
		"price_from":     50000,
	}

	res, _ := ts.SendRequest(t, tx, "POST", "/api/v1/services/offerings", studentToken, offeringBody)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, _ = ts.SendRequest(t, tx, "POST", "/api/v1/services/offerings", businessToken, offeringBody)
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	// Услуга видна в выдаче по подкатегории
	res, bodyStr := ts.SendRequest(t, tx, "GET", "/api/v1/services/subcategories/"+subcategory.ID+"/offerings", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "Логотип под ключ")
}

// TestServices_RequestWorkflow - админ двигает заявку по статусам
func TestServices_RequestWorkflow(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, tx)
	_, subcategory := createCategoryTree(t, tx)

	res, _ := ts.SendRequest(t, tx, "POST", "/api/v1/services/requests", "", map[string]interface{}{
		"subcategory_id":  subcategory.ID,
		"contact_name":    "Клиент",
		"contact_email":   "client@test.com",
		"project_details": "Заявка",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var request models.ServiceRequest
	assert.NoError(t, tx.Where("contact_email = ?", "client@test.com").First(&request).Error)

	res, _ = ts.SendRequest(t, tx, "PUT", "/api/v1/admin/services/requests/"+request.ID+"/status", adminToken, map[string]interface{}{
		"status": "in-process",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	assert.NoError(t, tx.First(&request, "id = ?", request.ID).Error)
	assert.Equal(t, models.ServiceRequestStatusInProcess, request.Status)

	// Невалидный статус отклоняется
	res, _ = ts.SendRequest(t, tx, "PUT", "/api/v1/admin/services/requests/"+request.ID+"/status", adminToken, map[string]interface{}{
		"status": "done",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

// TestServices_CategoryCascadeDelete - удаление категории уносит подкатегории
func TestServices_CategoryCascadeDelete(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, tx)
	category, subcategory := createCategoryTree(t, tx)

	res, _ := ts.SendRequest(t, tx, "DELETE", "/api/v1/admin/services/categories/"+category.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var count int64
	assert.NoError(t, tx.Model(&models.ServiceSubcategory{}).Where("id = ?", subcategory.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

// TestServices_AdminFilterRequestsByUser - заявки фильтруются по user_id
func TestServices_AdminFilterRequestsByUser(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, tx)
	userToken, user := helpers.CreateAndLoginStudent(t, ts, tx)
	_, subcategory := createCategoryTree(t, tx)

	// Заявка от залогиненного пользователя
	res, _ := ts.SendRequest(t, tx, "POST", "/api/v1/services/requests", userToken, map[string]interface{}{
		"subcategory_id":  subcategory.ID,
		"contact_name":    "Пользователь",
		"contact_email":   "member-request@test.com",
		"project_details": "Заявка от аккаунта",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	// Гостевая заявка
	res, _ = ts.SendRequest(t, tx, "POST", "/api/v1/services/requests", "", map[string]interface{}{
		"subcategory_id":  subcategory.ID,
		"contact_name":    "Гость",
		"contact_email":   "guest-request@test.com",
		"project_details": "Заявка без аккаунта",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	res, bodyStr := ts.SendRequest(t, tx, "GET", "/api/v1/admin/services/requests?user_id="+user.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "member-request@test.com")
	assert.NotContains(t, bodyStr, "guest-request@test.com")
}
