package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"business", NewBusinessError("duplicate plate"), "BUSINESS_RULE", http.StatusBadRequest},
		{"validation", NewValidationError("bad payload", nil), "VALIDATION_FAILED", http.StatusBadRequest},
		{"not found", NewNotFound("customer", nil), "NOT_FOUND", http.StatusNotFound},
		{"unauthorized", NewUnauthorized("no token"), "UNAUTHORIZED", http.StatusUnauthorized},
		{"forbidden", NewForbidden("customers only"), "FORBIDDEN", http.StatusForbidden},
		{"conflict", NewConflict("already exists", nil), "CONFLICT", http.StatusConflict},
		{"internal", NewInternalError(errors.New("boom")), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var de *DomainError
			require.ErrorAs(t, tt.err, &de)
			assert.Equal(t, tt.wantCode, de.Code)
			assert.Equal(t, tt.wantStatus, de.HTTPStatus)
		})
	}
}

func TestToDomainErrorPassthrough(t *testing.T) {
	orig := NewBusinessError("duplicate plate")
	wrapped := fmt.Errorf("creating vehicle: %w", orig)

	de := ToDomainError(wrapped)
	assert.Equal(t, "BUSINESS_RULE", de.Code)
}

func TestToDomainErrorNoRows(t *testing.T) {
	de := ToDomainError(fmt.Errorf("loading customer: %w", pgx.ErrNoRows))
	assert.Equal(t, "NOT_FOUND", de.Code)
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
}

func TestToDomainErrorOpaque(t *testing.T) {
	de := ToDomainError(errors.New("connection reset"))
	assert.Equal(t, "INTERNAL_ERROR", de.Code)
	assert.EqualError(t, de, "internal server error: connection reset")
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestInternalErrorUnwraps(t *testing.T) {
	cause := errors.New("boom")
	assert.ErrorIs(t, NewInternalError(cause), cause)
}
