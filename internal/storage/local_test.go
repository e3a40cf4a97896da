package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(Config{
		BasePath: t.TempDir(),
		BaseURL:  "/api/v1/files",
	})
	require.NoError(t, err)
	return s
}

func TestLocalStorage_SaveGetDelete(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	err := s.Save(ctx, "avatars/user1/photo.jpg", strings.NewReader("fake image bytes"), "image/jpeg")
	require.NoError(t, err)

	exists, err := s.Exists(ctx, "avatars/user1/photo.jpg")
	require.NoError(t, err)
	assert.True(t, exists)

	size, err := s.GetSize(ctx, "avatars/user1/photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, int64(len("fake image bytes")), size)

	reader, err := s.Get(ctx, "avatars/user1/photo.jpg")
	require.NoError(t, err)
	defer reader.Close()
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))

	require.NoError(t, s.Delete(ctx, "avatars/user1/photo.jpg"))
	exists, err = s.Exists(ctx, "avatars/user1/photo.jpg")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStorage_DeleteMissingIsNoop(t *testing.T) {
	s := newTestStorage(t)
	assert.NoError(t, s.Delete(context.Background(), "no/such/file.png"))
}

func TestLocalStorage_GetURL(t *testing.T) {
	s := newTestStorage(t)
	url, err := s.GetURL(context.Background(), "posts/p1/image.jpg")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/files/posts/p1/image.jpg", url)

	bare, err := NewLocalStorage(Config{BasePath: t.TempDir()})
	require.NoError(t, err)
	url, err = bare.GetURL(context.Background(), "posts/p1/image.jpg")
	require.NoError(t, err)
	assert.Equal(t, "/files/posts/p1/image.jpg", url)
}
