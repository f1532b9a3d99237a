package apperr

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"Nil", nil, http.StatusOK},
		{"Validation", Validation("title is required"), http.StatusBadRequest},
		{"Not found", NotFound("prompt not found"), http.StatusNotFound},
		{"Conflict", Conflict("category already exists"), http.StatusConflict},
		{"Unauthorized", Unauthorized("invalid credentials"), http.StatusUnauthorized},
		{"Wrapped kind", Wrap(NotFound("category not found"), "loading prompts"), http.StatusNotFound},
		{"Fmt wrapped kind", fmt.Errorf("outer: %w", Conflict("dup")), http.StatusConflict},
		{"Unknown", New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestKindKeepsMessage(t *testing.T) {
	err := Conflict("Category already exists")
	assert.Equal(t, "Category already exists", err.Error())
	assert.True(t, Is(err, ErrConflict))
	assert.False(t, Is(err, ErrNotFound))
}
