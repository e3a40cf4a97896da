package integration_test

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"skillspace_backend/internal/models"
	"skillspace_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

type feedPage struct {
	Posts []struct {
		ID           string `json:"id"`
		Content      string `json:"content"`
		LikeCount    int    `json:"like_count"`
		CommentCount int    `json:"comment_count"`
		IsLiked      bool   `json:"is_liked"`
		IsBookmarked bool   `json:"is_bookmarked"`
	} `json:"posts"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// TestFeed_PrivatePostHidden - приватный пост виден только автору
func TestFeed_PrivatePostHidden(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	authorToken, author := helpers.CreateAndLoginStudent(t, ts, tx)
	viewerToken, _ := helpers.CreateAndLoginStudent(t, ts, tx)

	post := helpers.CreateTestPost(t, tx, author.ID, "секретный пост", models.VisibilityPrivate)

	// Автор видит свой приватный пост
	res, bodyStr := ts.SendRequest(t, tx, "GET", "/api/v1/feed", authorToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "секретный пост")

	// Чужая лента его не содержит
	res, bodyStr = ts.SendRequest(t, tx, "GET", "/api/v1/feed", viewerToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotContains(t, bodyStr, "секретный пост")

	// Прямой доступ к приватному посту тоже закрыт
	res, _ = ts.SendRequest(t, tx, "GET", "/api/v1/feed/posts/"+post.ID, viewerToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

// TestFeed_ConnectionsVisibility - пост "connections" виден только связям
func TestFeed_ConnectionsVisibility(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, author := helpers.CreateAndLoginStudent(t, ts, tx)
	friendToken, friend := helpers.CreateAndLoginStudent(t, ts, tx)
	strangerToken, _ := helpers.CreateAndLoginStudent(t, ts, tx)

	helpers.ConnectUsers(t, tx, author.ID, friend.ID)
	helpers.CreateTestPost(t, tx, author.ID, "пост для своих", models.VisibilityConnections)

	res, bodyStr := ts.SendRequest(t, tx, "GET", "/api/v1/feed", friendToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "пост для своих")

	res, bodyStr = ts.SendRequest(t, tx, "GET", "/api/v1/feed", strangerToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotContains(t, bodyStr, "пост для своих")
}

// TestFeed_LikeFlow - повторный лайк 400, снятие несуществующего 404
func TestFeed_LikeFlow(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, author := helpers.CreateAndLoginStudent(t, ts, tx)
	viewerToken, _ := helpers.CreateAndLoginStudent(t, ts, tx)

	post := helpers.CreateTestPost(t, tx, author.ID, "лайкни меня", models.VisibilityPublic)
	likePath := "/api/v1/feed/posts/" + post.ID + "/like"

	// Первый лайк проходит
	res, _ := ts.SendRequest(t, tx, "POST", likePath, viewerToken, nil)
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	// Повторный лайк отклоняется
	res, bodyStr := ts.SendRequest(t, tx, "POST", likePath, viewerToken, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, bodyStr, "already liked")

	// Снятие лайка проходит
	res, _ = ts.SendRequest(t, tx, "DELETE", likePath, viewerToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// Снимать больше нечего
	res, bodyStr = ts.SendRequest(t, tx, "DELETE", likePath, viewerToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, bodyStr, "Like not found")
}

// TestFeed_PostDeleteCascade - удаление поста уносит лайки, комментарии, закладки
func TestFeed_PostDeleteCascade(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	authorToken, author := helpers.CreateAndLoginStudent(t, ts, tx)
	viewerToken, _ := helpers.CreateAndLoginStudent(t, ts, tx)

	post := helpers.CreateTestPost(t, tx, author.ID, "скоро удалюсь", models.VisibilityPublic)
	base := "/api/v1/feed/posts/" + post.ID

	res, _ := ts.SendRequest(t, tx, "POST", base+"/like", viewerToken, nil)
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	res, _ = ts.SendRequest(t, tx, "POST", base+"/bookmark", viewerToken, nil)
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	res, _ = ts.SendRequest(t, tx, "POST", base+"/comments", viewerToken, map[string]interface{}{
		"content": "жаль",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	// Автор удаляет пост
	res, _ = ts.SendRequest(t, tx, "DELETE", base, authorToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// Все связанные активности удалены вместе с постом
	var count int64
	err := tx.Model(&models.SocialActivity{}).
		Where("id = ? OR target_id = ?", post.ID, post.ID).
		Count(&count).Error
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

// TestFeed_DeleteByNonAuthorForbidden - чужой пост может удалить только админ
func TestFeed_DeleteByNonAuthorForbidden(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, author := helpers.CreateAndLoginStudent(t, ts, tx)
	strangerToken, _ := helpers.CreateAndLoginStudent(t, ts, tx)
	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, tx)

	post := helpers.CreateTestPost(t, tx, author.ID, "неприкосновенный", models.VisibilityPublic)
	path := "/api/v1/feed/posts/" + post.ID

	res, _ := ts.SendRequest(t, tx, "DELETE", path, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = ts.SendRequest(t, tx, "DELETE", path, adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

// TestFeed_Pagination - 15 постов, страница 2 с limit 10 дает 5 постов
func TestFeed_Pagination(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	viewerToken, viewer := helpers.CreateAndLoginStudent(t, ts, tx)

	for i := 0; i < 15; i++ {
		helpers.CreateTestPost(t, tx, viewer.ID, fmt.Sprintf("пост номер %d", i), models.VisibilityPublic)
	}

	res, bodyStr := ts.SendRequest(t, tx, "GET", "/api/v1/feed?page=2&limit=10", viewerToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var page feedPage
	assert.NoError(t, jsonUnmarshal(bodyStr, &page))
	assert.Len(t, page.Posts, 5)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, int64(15), page.Total)
	assert.Equal(t, 2, page.TotalPages)

	// Пустая страница за пределами выдачи
	res, bodyStr = ts.SendRequest(t, tx, "GET", "/api/v1/feed?page=3&limit=10", viewerToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.NoError(t, jsonUnmarshal(bodyStr, &page))
	assert.Len(t, page.Posts, 0)
}

// TestFeed_Bookmarks - закладки возвращают только отмеченные посты
func TestFeed_Bookmarks(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, author := helpers.CreateAndLoginStudent(t, ts, tx)
	viewerToken, _ := helpers.CreateAndLoginStudent(t, ts, tx)

	bookmarked := helpers.CreateTestPost(t, tx, author.ID, "в закладки", models.VisibilityPublic)
	helpers.CreateTestPost(t, tx, author.ID, "мимо закладок", models.VisibilityPublic)

	res, _ := ts.SendRequest(t, tx, "POST", "/api/v1/feed/posts/"+bookmarked.ID+"/bookmark", viewerToken, nil)
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	res, bodyStr := ts.SendRequest(t, tx, "GET", "/api/v1/feed/bookmarks", viewerToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "в закладки")
	assert.NotContains(t, bodyStr, "мимо закладок")
}

// TestFeed_EnrichedCounters - лента отдает счетчики и флаги зрителя
func TestFeed_EnrichedCounters(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, author := helpers.CreateAndLoginStudent(t, ts, tx)
	viewerToken, _ := helpers.CreateAndLoginStudent(t, ts, tx)
	otherToken, _ := helpers.CreateAndLoginStudent(t, ts, tx)

	post := helpers.CreateTestPost(t, tx, author.ID, "считаем лайки", models.VisibilityPublic)
	base := "/api/v1/feed/posts/" + post.ID

	res, _ := ts.SendRequest(t, tx, "POST", base+"/like", viewerToken, nil)
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	res, _ = ts.SendRequest(t, tx, "POST", base+"/like", otherToken, nil)
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	res, _ = ts.SendRequest(t, tx, "POST", base+"/comments", otherToken, map[string]interface{}{
		"content": "первый",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	res, bodyStr := ts.SendRequest(t, tx, "GET", "/api/v1/feed", viewerToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var page feedPage
	assert.NoError(t, jsonUnmarshal(bodyStr, &page))
	assert.Len(t, page.Posts, 1)
	assert.Equal(t, 2, page.Posts[0].LikeCount)
	assert.Equal(t, 1, page.Posts[0].CommentCount)
	assert.True(t, page.Posts[0].IsLiked)
	assert.False(t, page.Posts[0].IsBookmarked)
}

// TestFeed_PostWithImageLifecycle - пост с изображением: multipart-поля
// биндятся, файл сохраняется и подчищается при каскадном удалении
func TestFeed_PostWithImageLifecycle(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginStudent(t, ts, tx)

	res, bodyStr := ts.SendMultipartRequest(t, tx, "POST", "/api/v1/feed/posts", token,
		map[string]string{
			"content":    "Пост с картинкой",
			"visibility": "public",
		},
		"image", "photo.png", "image/png", helpers.MakeTestPNG(t))
	assert.Equal(t, http.StatusCreated, res.StatusCode, "Ответ: "+bodyStr)

	var created struct {
		ID       string `json:"id"`
		Content  string `json:"content"`
		ImageURL string `json:"image_url"`
	}
	assert.NoError(t, jsonUnmarshal(bodyStr, &created))
	assert.Equal(t, "Пост с картинкой", created.Content)
	assert.Contains(t, created.ImageURL, "/posts/")

	// Файл действительно лежит в хранилище
	var stored models.SocialActivity
	assert.NoError(t, tx.First(&stored, "id = ?", created.ID).Error)
	assert.NotEmpty(t, stored.ImagePath)

	imageOnDisk := filepath.Join("uploads", stored.ImagePath)
	_, statErr := os.Stat(imageOnDisk)
	assert.NoError(t, statErr)

	// Каскадное удаление поста подчищает и файл
	res, _ = ts.SendRequest(t, tx, "DELETE", "/api/v1/feed/posts/"+created.ID, token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	_, statErr = os.Stat(imageOnDisk)
	assert.True(t, os.IsNotExist(statErr))
}
