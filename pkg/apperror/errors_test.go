package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrBadRequest, http.StatusBadRequest},
		{ErrInvalidState, http.StatusBadRequest},
		{ErrConflict, http.StatusConflict},
		{ErrInternal, http.StatusInternalServerError},
		{errors.New("anything else"), http.StatusInternalServerError},
		{fmt.Errorf("evento non trovato: %w", ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", ErrForbidden)), http.StatusForbidden},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MapErrorToStatus(tt.err), "error: %v", tt.err)
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	err := New(0, "messaggio", ErrConflict)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, http.StatusConflict, MapErrorToStatus(err))
}
