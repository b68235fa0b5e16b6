package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithDetails_DoesNotMutateSentinel(t *testing.T) {
	detailed := ErrInvalidCoordinates.WithDetails(map[string]interface{}{"lat": 91.0})

	assert.Equal(t, 91.0, detailed.Details["lat"])
	assert.Empty(t, ErrInvalidCoordinates.Details)
	assert.Equal(t, ErrInvalidCoordinates.Code, detailed.Code)
}

func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("search places: %w", ErrDatabaseError)

	appErr, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "DATABASE_ERROR", appErr.Code)

	_, ok = As(fmt.Errorf("plain"))
	assert.False(t, ok)
}

func TestHTTPCode(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", HTTPCode(404))
	assert.Equal(t, "REQUEST_TOO_LARGE", HTTPCode(413))
	assert.Equal(t, "INVALID_REQUEST", HTTPCode(422))
	assert.Equal(t, "INTERNAL_SERVER_ERROR", HTTPCode(502))
}
