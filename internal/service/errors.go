package service

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated means the operation needs a signed-in user.
	ErrUnauthenticated = errors.New("user must be authenticated")
	// ErrNotFound covers both missing records and records owned by someone else.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials is returned by Login for any email/password mismatch.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned by Register when the email already has an account.
	ErrEmailTaken = errors.New("email already exists")
)

// ValidationError rejects input before anything is written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError names the kind that could not be found; it matches ErrNotFound.
type NotFoundError struct {
	Label string
}

func (e *NotFoundError) Error() string {
	return e.Label + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
