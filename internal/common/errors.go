// Package common defines shared constants, sentinel errors and small
// utilities used across the auth service. Callers should use errors.Is to
// match the sentinel values.
package common

import (
	"errors"
	"strings"
)

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")

	// Service-level errors.
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("storage unavailable")

	// Token lifecycle errors. These never cross the verifier boundary:
	// the token service collapses them to ErrUnauthorized.
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenRevoked = errors.New("refresh token revoked")
)

// ValidationError reports one or more violated signup rules. Unlike the
// sentinel errors above it carries detail for the caller, since password
// policy feedback is pre-authentication UX, not a security boundary.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// NewValidationError builds a ValidationError from the violated rules.
func NewValidationError(violations ...string) *ValidationError {
	return &ValidationError{Violations: violations}
}
