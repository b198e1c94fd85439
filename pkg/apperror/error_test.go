package apperror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without internal",
			err:  New(404, "not_found", "Version not found"),
			want: "not_found: Version not found",
		},
		{
			name: "with internal",
			err:  New(500, "database_error", "Database operation failed").WithInternal(errors.New("connection refused")),
			want: "database_error: Database operation failed (connection refused)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	inner := errors.New("broken pipe")
	err := ErrDatabase.WithInternal(inner)

	assert.Equal(t, inner, err.Unwrap())
	assert.True(t, errors.Is(err, inner))
}

func TestError_IsMatchesByCode(t *testing.T) {
	err := ErrNotFound.WithMessage("version 'abc123' not found")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrInvalidState))
}

func TestError_CopiesDoNotMutate(t *testing.T) {
	base := New(409, "invalid_state", "Operation not valid in current state")

	withMsg := base.WithMessage("no active deployment")
	withDetails := base.WithDetails(map[string]any{"environment": "staging"})

	assert.Equal(t, "Operation not valid in current state", base.Message)
	assert.Nil(t, base.Details)
	assert.Equal(t, "no active deployment", withMsg.Message)
	assert.Equal(t, "staging", withDetails.Details["environment"])
}

func TestNewNotFound(t *testing.T) {
	err := NewNotFound("version", "deadbeef")

	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
	assert.Equal(t, "not_found", err.Code)
	assert.Equal(t, "version 'deadbeef' not found", err.Message)
	assert.True(t, IsNotFound(err))
}

func TestNewInvalidState(t *testing.T) {
	err := NewInvalidState("no previous deployment")

	assert.Equal(t, http.StatusConflict, err.HTTPStatus)
	assert.Equal(t, "invalid_state", err.Code)
	assert.True(t, errors.Is(err, ErrInvalidState))
}

func TestNewValidation(t *testing.T) {
	err := NewValidation("content must not be empty")

	assert.Equal(t, http.StatusUnprocessableEntity, err.HTTPStatus)
	assert.Equal(t, "validation_error", err.Code)
}
