package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	appErr := Wrap(cause, CodeInternalError, "storage", "Failed to save file", http.StatusInternalServerError)

	assert.Contains(t, appErr.Error(), "storage")
	assert.Contains(t, appErr.Error(), "Failed to save file")
	assert.Contains(t, appErr.Error(), "connection refused")
	assert.ErrorIs(t, appErr, cause)
}

func TestAppError_MarshalHidesInternals(t *testing.T) {
	appErr := Wrap(errors.New("pq: duplicate key"), CodeConflict, "auth", "Email already exists", http.StatusConflict).
		WithDetails(map[string]string{"email": "taken"})

	raw, err := json.Marshal(appErr)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "Email already exists", decoded["message"])
	assert.Equal(t, "auth", decoded["domain"])
	assert.NotContains(t, string(raw), "pq: duplicate key")
	assert.NotContains(t, string(raw), "HTTPCode")
}

func TestSentinels_NotMutatedByWithError(t *testing.T) {
	// Доменные ошибки - общие для всех запросов, оборачивание причины
	// не должно трогать сам sentinel
	wrapped := Wrap(errors.New("ctx"), ErrInvalidToken.Code, ErrInvalidToken.Domain, ErrInvalidToken.Message, ErrInvalidToken.HTTPCode)
	assert.NotSame(t, ErrInvalidToken, wrapped)
	assert.Nil(t, ErrInvalidToken.Err)
}

func TestDomainErrors_HTTPCodes(t *testing.T) {
	tests := []struct {
		err  *AppError
		code int
	}{
		{ErrEmailAlreadyExists, http.StatusBadRequest},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{ErrAccountDeactivated, http.StatusUnauthorized},
		{ErrInvalidToken, http.StatusUnauthorized},
		{ErrAlreadyLiked, http.StatusBadRequest},
		{ErrLikeNotFound, http.StatusNotFound},
		{ErrAlreadyEnrolled, http.StatusConflict},
		{ErrInternshipFull, http.StatusConflict},
		{ErrAlreadyApplied, http.StatusConflict},
		{ErrCannotModifySelf, http.StatusForbidden},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.code, tt.err.HTTPCode, tt.err.Message)
	}
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, InternalError(errors.New("boom")).HTTPCode)
	assert.Equal(t, http.StatusBadRequest, ValidationError(map[string]string{"email": "required"}).HTTPCode)
	assert.Equal(t, http.StatusUnauthorized, NewUnauthorizedError("no token").HTTPCode)
	assert.Equal(t, http.StatusForbidden, NewForbiddenError("admins only").HTTPCode)
	assert.Equal(t, http.StatusNotFound, NewNotFoundError("course", "Course not found").HTTPCode)
}

func TestAs(t *testing.T) {
	var target *AppError
	err := error(NewBadRequestError("bad payload"))
	require.True(t, As(err, &target))
	assert.Equal(t, http.StatusBadRequest, target.HTTPCode)
}
