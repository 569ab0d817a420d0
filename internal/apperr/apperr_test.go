package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{BadRequest("x"), http.StatusBadRequest},
		{NotFound("x"), http.StatusNotFound},
		{PayloadTooLarge("x"), http.StatusRequestEntityTooLarge},
		{Unavailable("x", nil), http.StatusInternalServerError},
		{Internal("x", nil), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.err.Code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Status())
		})
	}
}

func TestFromKeepsClassifiedErrors(t *testing.T) {
	wrapped := fmt.Errorf("loading job: %w", NotFound("job not found"))

	got := From(wrapped)

	assert.Equal(t, CodeNotFound, got.Code)
	assert.True(t, Is(wrapped, CodeNotFound))
	assert.False(t, Is(wrapped, CodeBadRequest))
}

func TestFromWrapsUnknownErrors(t *testing.T) {
	cause := errors.New("socket closed")

	got := From(cause)

	assert.Equal(t, CodeInternal, got.Code)
	assert.ErrorIs(t, got, cause)
	assert.NotContains(t, got.Message, "socket")
}
