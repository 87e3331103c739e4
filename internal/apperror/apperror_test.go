package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		message  string
		kindName string
	}{
		{"unauthenticated", Unauthenticated("login required"), http.StatusUnauthorized, "login required", "unauthenticated"},
		{"forbidden", Forbidden("nope"), http.StatusForbidden, "nope", "forbidden"},
		{"validation", Validation("bad"), http.StatusBadRequest, "bad", "validation"},
		{"not found", NotFound("missing"), http.StatusNotFound, "missing", "not_found"},
		{"wrapped", fmt.Errorf("layer: %w", NotFound("missing")), http.StatusNotFound, "missing", "not_found"},
		{"internal", Internal("db down", errors.New("dial tcp")), http.StatusInternalServerError, "Internal server error", "internal"},
		{"foreign", errors.New("boom"), http.StatusInternalServerError, "Internal server error", "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, HTTPStatus(tt.err))
			assert.Equal(t, tt.message, Message(tt.err))
			assert.Equal(t, tt.kindName, KindOf(tt.err).String())
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("dial tcp")
	err := Internal("db down", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "db down: dial tcp", err.Error())
}
