package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromErrorKeepsAppError(t *testing.T) {
	cause := errors.New("boom")
	wrapped := fmt.Errorf("handler: %w", Conflict("already_voted", "voter cannot vote twice", cause).WithProgramCode(6004))

	appErr := FromError(wrapped)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusConflict, appErr.StatusCode())
	assert.Equal(t, uint32(6004), appErr.ProgramCode)
	assert.ErrorIs(t, appErr, cause)
}

func TestFromErrorDefaultsToInternal(t *testing.T) {
	appErr := FromError(errors.New("db down"))
	assert.Equal(t, http.StatusInternalServerError, appErr.StatusCode())
	assert.Equal(t, "internal_error", appErr.Code)
	assert.Nil(t, FromError(nil))
}

func TestStatusHelpers(t *testing.T) {
	assert.Equal(t, http.StatusTooManyRequests, TooManyRequests("rate_limited", "slow down", nil).StatusCode())
	assert.Equal(t, http.StatusServiceUnavailable, Unavailable("store_unavailable", "down", nil).StatusCode())
	assert.Equal(t, http.StatusTeapot, New(http.StatusTeapot, "teapot", "short and stout", nil).StatusCode())
	var nilErr *AppError
	assert.Equal(t, http.StatusInternalServerError, nilErr.StatusCode())
}
