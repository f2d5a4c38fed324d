package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidation(t *testing.T) {
	err := Validation("title", "This field is required.")
	assert.Equal(t, CodeValidationFailed, err.Code)
	assert.Equal(t, "This field is required.", err.Details["title"])

	bare := Validation("", "Invalid credentials")
	assert.Nil(t, bare.Details)
	assert.Equal(t, "Invalid credentials", bare.Message)
}

func TestWithField_Accumulates(t *testing.T) {
	err := Validation("email", "taken").WithField("username", "taken")
	assert.Len(t, err.Details, 2)
}

func TestCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("toggle like: %w", NotFound("Announcement not found"))

	assert.Equal(t, CodeNotFound, CodeOf(wrapped))
	assert.True(t, Is(wrapped, CodeNotFound))
	assert.False(t, Is(wrapped, CodeInternal))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
	assert.False(t, Is(nil, CodeNotFound))
}

func TestError_IncludesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("Internal server error", cause)

	assert.Equal(t, "Internal server error: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Forbidden", Forbidden("Forbidden").Error())
}
