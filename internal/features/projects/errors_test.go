package projects

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectError(t *testing.T) {
	tests := []struct {
		name    string
		err     *ProjectError
		code    string
		status  int
		message string
	}{
		{"not found", NewNotFoundError("alpha"), "PROJECT_NOT_FOUND", http.StatusNotFound, "Project not found: alpha"},
		{"slug exists", NewSlugExistsError("alpha"), "PROJECT_SLUG_EXISTS", http.StatusConflict, "Project slug already exists: alpha"},
		{"access denied", NewAccessDeniedError("p-1"), "PROJECT_ACCESS_DENIED", http.StatusForbidden, "Access denied to project: p-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code())
			assert.Equal(t, tt.status, tt.err.StatusCode())
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}

func TestProjectErrorMatching(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewNotFoundError("p-1"))

	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.True(t, errors.Is(wrapped, NewNotFoundError("p-1")))
	assert.False(t, errors.Is(wrapped, NewNotFoundError("p-2")))
	assert.False(t, errors.Is(wrapped, ErrAccessDenied))
	assert.False(t, errors.Is(wrapped, ErrSlugExists))

	var projectErr *ProjectError
	require.True(t, errors.As(wrapped, &projectErr))
	assert.Equal(t, KindNotFound, projectErr.Kind)
	assert.Equal(t, "p-1", projectErr.Identifier)
}
