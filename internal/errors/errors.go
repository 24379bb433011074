package errors

import (
	"errors"
	"fmt"
)

// Common error types for the admin console
var (
	// Token errors
	ErrInvalidToken   = errors.New("invalid token")
	ErrMalformedToken = errors.New("malformed token")
	ErrMissingExpiry  = errors.New("token missing exp claim")
	ErrTokenExpired   = errors.New("token expired")

	// Session errors
	ErrNotLoggedIn    = errors.New("not logged in")
	ErrTokenNotFound  = errors.New("token not found")
	ErrStoreClosed    = errors.New("token store closed")
	ErrSealedToken    = errors.New("sealed token could not be opened")

	// API errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRateLimited        = errors.New("too many requests")

	// General errors
	ErrNotFound       = errors.New("not found")
	ErrInvalidRequest = errors.New("invalid request")
	ErrInternal       = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
