package api

import (
	"fmt"
	"net/http"

	"github.com/jrsteele09/podmixer-console/internal/errors"
)

// Error is a non-2xx answer from the API.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// Unwrap maps well-known status codes onto the shared sentinel errors.
func (e *Error) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.ErrUnauthorized
	case http.StatusNotFound:
		return errors.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return errors.ErrInvalidRequest
	case http.StatusTooManyRequests:
		return errors.ErrRateLimited
	default:
		return errors.ErrInternal
	}
}
