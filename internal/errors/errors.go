package errors

import (
	"errors"
	"fmt"
)

// Common error types for the portal API client
var (
	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrRefreshFailed      = errors.New("token refresh failed")

	// Transport errors
	ErrRequestFailed = errors.New("request failed")
	ErrNotFound      = errors.New("not found")

	// Input errors
	ErrValidation = errors.New("validation failed")

	// General errors
	ErrInternal = errors.New("internal error")
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
