package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=student professional business agency"`
}

func TestValidate_OK(t *testing.T) {
	v := New()
	err := v.Validate(&sampleRequest{
		Email:    "user@test.com",
		Password: "password123",
		Role:     "student",
	})
	assert.NoError(t, err)
}

func TestValidate_JSONFieldNames(t *testing.T) {
	v := New()
	err := v.Validate(&sampleRequest{Email: "not-an-email", Password: "123"})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	// В карте ошибок JSON-имена полей, не Go-имена
	assert.Contains(t, vErr.Errors, "email")
	assert.Contains(t, vErr.Errors, "password")
	assert.NotContains(t, vErr.Errors, "Email")

	assert.Equal(t, "Must be a valid email address", vErr.Errors["email"])
	assert.Equal(t, "Must be at least 6 items/characters long", vErr.Errors["password"])
}

func TestValidate_OneOfMessage(t *testing.T) {
	v := New()
	err := v.Validate(&sampleRequest{
		Email:    "user@test.com",
		Password: "password123",
		Role:     "superadmin",
	})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Must be one of: student, professional, business, agency", vErr.Errors["role"])
}

func TestValidate_RequiredMessage(t *testing.T) {
	v := New()
	err := v.Validate(&sampleRequest{})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "This field is required", vErr.Errors["email"])
	assert.Contains(t, vErr.Error(), "Validation failed")
}
