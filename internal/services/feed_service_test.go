package services

import (
	"testing"

	"skillspace_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func makePost(id, authorID string, visibility models.Visibility) models.SocialActivity {
	post := models.SocialActivity{
		ActivityType: models.ActivityTypePost,
		UserID:       authorID,
		Content:      "content " + id,
		Visibility:   visibility,
	}
	post.ID = id
	return post
}

func TestPostVisibleTo(t *testing.T) {
	connected := map[string]bool{"friend": true}

	tests := []struct {
		name       string
		authorID   string
		visibility models.Visibility
		viewerID   string
		want       bool
	}{
		{"author sees own private post", "alice", models.VisibilityPrivate, "alice", true},
		{"stranger does not see private post", "alice", models.VisibilityPrivate, "bob", false},
		{"everyone sees public post", "alice", models.VisibilityPublic, "bob", true},
		{"empty visibility treated as public", "alice", "", "bob", true},
		{"connection sees connections post", "friend", models.VisibilityConnections, "viewer", true},
		{"stranger does not see connections post", "stranger", models.VisibilityConnections, "viewer", false},
		{"unknown visibility hidden from others", "alice", models.Visibility("secret"), "bob", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := makePost("p1", tt.authorID, tt.visibility)
			got := postVisibleTo(&post, tt.viewerID, connected)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterVisiblePosts_PreservesOrder(t *testing.T) {
	connected := map[string]bool{"friend": true}

	posts := []models.SocialActivity{
		makePost("1", "friend", models.VisibilityConnections),
		makePost("2", "stranger", models.VisibilityPrivate),
		makePost("3", "stranger", models.VisibilityPublic),
		makePost("4", "viewer", models.VisibilityPrivate),
	}

	visible := filterVisiblePosts(posts, "viewer", connected)

	ids := make([]string, 0, len(visible))
	for _, p := range visible {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"1", "3", "4"}, ids)
}

func TestFilterVisiblePosts_EmptyInput(t *testing.T) {
	visible := filterVisiblePosts(nil, "viewer", nil)
	assert.NotNil(t, visible)
	assert.Len(t, visible, 0)
}

func TestNormalizePage(t *testing.T) {
	page, size := normalizePage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, size)

	page, size = normalizePage(-5, 500)
	assert.Equal(t, 1, page)
	assert.Equal(t, 100, size)

	page, size = normalizePage(3, 15)
	assert.Equal(t, 3, page)
	assert.Equal(t, 15, size)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, totalPages(0, 10))
	assert.Equal(t, 1, totalPages(10, 10))
	assert.Equal(t, 2, totalPages(15, 10))
	assert.Equal(t, 2, totalPages(11, 10))
	assert.Equal(t, 0, totalPages(5, 0))
}
