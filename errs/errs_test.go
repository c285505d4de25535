package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{NotFound("appointment"), http.StatusNotFound},
		{Validation("start time must be before end time"), http.StatusBadRequest},
		{Conflict("slot taken"), http.StatusBadRequest},
		{InvalidState("already cancelled"), http.StatusBadRequest},
		{Unauthorized("bad token"), http.StatusUnauthorized},
		{Forbidden("admins only"), http.StatusForbidden},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusCode(tc.err), "error %v", tc.err)
	}
}

func TestStatusCodeUnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("fetching appointment: %w", NotFound("appointment"))
	assert.Equal(t, http.StatusNotFound, StatusCode(wrapped))
}

func TestMessages(t *testing.T) {
	assert.EqualError(t, NotFound("appointment"), "appointment not found")
	assert.EqualError(t, Conflict("slot taken"), "slot taken")
}
