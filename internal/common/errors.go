package common

import (
	"errors"
	"net/http"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthorized    = errors.New("invalid credentials")
	ErrTooManyAttempts = errors.New("too many failed attempts")
	ErrUnavailable     = errors.New("dependency not initialized")
	ErrUpstream        = errors.New("external service error")
)

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrTooManyAttempts):
		return http.StatusTooManyRequests
	}
	// ErrUnavailable and ErrUpstream both surface as a plain 500.
	return http.StatusInternalServerError
}
