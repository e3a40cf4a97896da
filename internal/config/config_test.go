package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	applyDefaults(&cfg)

	assert.Equal(t, "./uploads", cfg.Storage.BasePath)
	assert.Equal(t, "/api/v1/files", cfg.Storage.BaseURL)
	assert.Equal(t, int64(10*1024*1024), cfg.Upload.MaxSize)
	assert.Contains(t, cfg.Upload.AllowedTypes, "image/png")
	assert.Equal(t, 85, cfg.Upload.ImageQuality)
	assert.Equal(t, 3000, cfg.Feed.EnrichTimeoutMS)
	assert.Equal(t, 8, cfg.Feed.EnrichConcurrent)
	assert.Equal(t, 60, cfg.JWT.TTL)

	// Ссылки в письмах получают абсолютный адрес фронтенда
	assert.Equal(t, cfg.CORS.AllowedOrigins[0], cfg.Email.PublicBaseURL)
	assert.NotEmpty(t, cfg.Email.PublicBaseURL)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	var cfg Config
	cfg.Email.PublicBaseURL = "https://skillspace.io"
	cfg.CORS.AllowedOrigins = []string{"https://app.skillspace.io"}
	cfg.Upload.ImageQuality = 70

	applyDefaults(&cfg)

	assert.Equal(t, "https://skillspace.io", cfg.Email.PublicBaseURL)
	assert.Equal(t, []string{"https://app.skillspace.io"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 70, cfg.Upload.ImageQuality)
}
