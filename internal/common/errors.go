// Package common defines shared constants and sentinel errors used across
// client and server layers of the task manager. Callers should use errors.Is
// to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal       = errors.New("internal error")
	ErrStoreUnavailable = errors.New("store unavailable")

	// Auth errors. Every token failure (malformed, tampered, expired) is
	// reported as ErrInvalidToken so callers cannot tell which check failed.
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")
	ErrInvalidToken   = errors.New("invalid token")

	// Validation errors.
	ErrorValidation  = errors.New("validation error")
	ErrAlreadyExists = fmt.Errorf("%w: already exists", ErrorValidation)
)
