package auth

import (
	"errors"
	"fmt"
)

var (
	ErrEmailTaken      = errors.New("email already registered")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrTooManyAttempts = errors.New("too many login attempts")
)

// ValidationError names the first failing field of a signup/login request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
