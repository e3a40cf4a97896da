package handlers

import (
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"skillspace_backend/internal/storage"
	"skillspace_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// FileHandler раздаёт загруженные файлы (аватары, картинки постов)
type FileHandler struct {
	*BaseHandler
	storage storage.Storage
}

func NewFileHandler(base *BaseHandler, store storage.Storage) *FileHandler {
	return &FileHandler{
		BaseHandler: base,
		storage:     store,
	}
}

func (h *FileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	files := rg.Group("/files")
	{
		files.GET("/*path", h.ServeFile)
		files.HEAD("/*path", h.CheckFileExists)
	}
}

// cleanFilePath нормализует путь и отклоняет выход за пределы корня хранилища
func cleanFilePath(raw string) (string, bool) {
	cleaned := path.Clean(strings.TrimPrefix(raw, "/"))
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", false
	}
	return cleaned, true
}

func (h *FileHandler) ServeFile(c *gin.Context) {
	filePath, ok := cleanFilePath(c.Param("path"))
	if !ok {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid file path"))
		return
	}

	reader, err := h.storage.Get(c.Request.Context(), filePath)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewNotFoundError("file", "File not found"))
		return
	}
	defer reader.Close()

	contentType := mime.TypeByExtension(filepath.Ext(filePath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Header("Content-Type", contentType)
	if size, err := h.storage.GetSize(c.Request.Context(), filePath); err == nil {
		c.Header("Content-Length", strconv.FormatInt(size, 10))
	}
	c.Header("Cache-Control", "public, max-age=31536000")

	if c.Query("download") == "true" {
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filepath.Base(filePath)))
	} else {
		c.Header("Content-Disposition", "inline")
	}

	if _, err := io.Copy(c.Writer, reader); err != nil {
		// Заголовки уже отправлены, ответить ошибкой нельзя
		c.Error(err)
	}
}

func (h *FileHandler) CheckFileExists(c *gin.Context) {
	filePath, ok := cleanFilePath(c.Param("path"))
	if !ok {
		c.Status(400)
		return
	}

	exists, err := h.storage.Exists(c.Request.Context(), filePath)
	if err != nil || !exists {
		c.Status(404)
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(filePath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	if size, err := h.storage.GetSize(c.Request.Context(), filePath); err == nil {
		c.Header("Content-Length", strconv.FormatInt(size, 10))
	}
	c.Status(200)
}
