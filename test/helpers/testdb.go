package helpers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"strings"
	"testing"
	"time"

	"skillspace_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUser создает пользователя в транзакции с автоматическим хешированием пароля
func CreateUser(t *testing.T, db *gorm.DB, user *models.User) error {
	if user.PasswordHash != "" && !strings.HasPrefix(user.PasswordHash, "$2a$") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
		if err != nil {
			t.Fatalf("Не удалось хешировать пароль: %v", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	// По умолчанию - активный и верифицированный
	if user.Status == "" {
		user.Status = models.UserStatusActive
	}
	user.IsVerified = true

	result := db.Create(user)
	if result.Error != nil {
		t.Logf("ОШИБКА: не удалось создать пользователя %s: %v", user.Email, result.Error)
		return result.Error
	}

	return nil
}

// CreateAndLoginUser создает пользователя и логинит его через API
func CreateAndLoginUser(t *testing.T, ts *TestServer, tx *gorm.DB, email, password string, role models.UserRole) (string, *models.User) {
	user := &models.User{
		Email:        email,
		PasswordHash: password, // сырой пароль, CreateUser захеширует
		Role:         role,
		FirstName:    "Test",
		LastName:     "User",
	}
	err := CreateUser(t, tx, user)
	assert.NoError(t, err, "Создание тестового пользователя не должно вызывать ошибку")

	loginBody := map[string]interface{}{
		"email":    email,
		"password": password,
	}

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Логин должен быть успешным. Ответ: "+bodyStr)

	var loginResponse struct {
		Token string `json:"access_token"`
	}
	err = json.Unmarshal([]byte(bodyStr), &loginResponse)
	assert.NoError(t, err, "Не удалось распарсить JSON")
	assert.NotEmpty(t, loginResponse.Token, "Токен не должен быть пустым")

	// Восстанавливаем сырой пароль для удобства в тестах
	user.PasswordHash = password

	return loginResponse.Token, user
}

// CreateAndLoginStudent создает студента с уникальным email
func CreateAndLoginStudent(t *testing.T, ts *TestServer, tx *gorm.DB) (string, *models.User) {
	email := fmt.Sprintf("student_%d@test.com", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, tx, email, "password123", models.UserRoleStudent)
}

// CreateAndLoginAdmin создает администратора с уникальным email
func CreateAndLoginAdmin(t *testing.T, ts *TestServer, tx *gorm.DB) (string, *models.User) {
	email := fmt.Sprintf("admin_%d@test.com", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, tx, email, "password123", models.UserRoleAdmin)
}

// CreateTestCourse создает опубликованный курс
func CreateTestCourse(t *testing.T, tx *gorm.DB, title string) models.Course {
	course := models.Course{
		Title:       title,
		Description: "Test course description",
		Category:    "programming",
		Level:       "beginner",
		IsPublished: true,
	}
	if err := tx.Create(&course).Error; err != nil {
		t.Fatalf("Не удалось создать тестовый курс: %v", err)
	}
	return course
}

// CreateTestPost создает пост в ленте напрямую
func CreateTestPost(t *testing.T, tx *gorm.DB, userID, content string, visibility models.Visibility) models.SocialActivity {
	post := models.SocialActivity{
		ActivityType: models.ActivityTypePost,
		UserID:       userID,
		Content:      content,
		Visibility:   visibility,
	}
	if err := tx.Create(&post).Error; err != nil {
		t.Fatalf("Не удалось создать тестовый пост: %v", err)
	}
	return post
}

// CreateTestInternship создает открытую стажировку
func CreateTestInternship(t *testing.T, tx *gorm.DB, title string, spots int) models.Internship {
	deadline := time.Now().Add(30 * 24 * time.Hour)
	internship := models.Internship{
		Title:          title,
		Company:        "Test Company",
		Description:    "Test internship",
		SpotsTotal:     spots,
		SpotsAvailable: spots,
		Status:         models.InternshipStatusOpen,
		Deadline:       &deadline,
	}
	if err := tx.Create(&internship).Error; err != nil {
		t.Fatalf("Не удалось создать тестовую стажировку: %v", err)
	}
	return internship
}

// MakeTestPNG кодирует маленькое одноцветное PNG для тестов загрузки
func MakeTestPNG(t *testing.T) []byte {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Не удалось закодировать тестовое PNG: %v", err)
	}
	return buf.Bytes()
}

// ConnectUsers создает взаимную связь между пользователями
func ConnectUsers(t *testing.T, tx *gorm.DB, userID, otherID string) {
	pairs := []models.Connection{
		{UserID: userID, ConnectedUserID: otherID},
		{UserID: otherID, ConnectedUserID: userID},
	}
	for _, conn := range pairs {
		c := conn
		if err := tx.Create(&c).Error; err != nil {
			t.Fatalf("Не удалось создать связь пользователей: %v", err)
		}
	}
}
