// Package service provides business logic for the application.
package service

import (
	"errors"
	"fmt"
)

// Service errors.
var (
	ErrUnauthenticated     = errors.New("authentication required")
	ErrNotFound            = errors.New("resource not found")
	ErrValidation          = errors.New("validation failed")
	ErrInvalidTemplateType = errors.New("invalid template type")
)

// ValidationError describes one rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap makes errors.Is(err, ErrValidation) hold.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// AuthError is returned for every rejected session. Reason is meant for logs
// and metrics only and must never reach the client.
type AuthError struct {
	Reason string
	Cause  error
}

func (e *AuthError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("unauthenticated (%s): %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("unauthenticated (%s)", e.Reason)
}

// Unwrap makes errors.Is(err, ErrUnauthenticated) hold.
func (e *AuthError) Unwrap() error {
	return ErrUnauthenticated
}

func authFailure(reason string, cause error) error {
	return &AuthError{Reason: reason, Cause: cause}
}
