package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error the core returns to the transport layer wraps
// exactly one of these; the HTTP error handler maps them to status codes.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("authentication failed")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
)

// Error is a client-facing error: Message is safe to render, Kind decides the status.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// Validationf builds a validation error with a formatted message.
func Validationf(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

var (
	ErrInvalidCredentials = &Error{Kind: ErrUnauthenticated, Message: "Invalid email or password"}
	ErrInvalidToken       = &Error{Kind: ErrUnauthenticated, Message: "Invalid or expired token. Please log in again"}
	ErrNotLoggedIn        = &Error{Kind: ErrUnauthenticated, Message: "You are not logged in. Please log in to get access"}
	ErrWrongPassword      = &Error{Kind: ErrUnauthenticated, Message: "Incorrect password"}
	ErrTokenUserGone      = &Error{Kind: ErrUnauthenticated, Message: "The user belonging to this token no longer exists"}

	ErrUserNotFound    = &Error{Kind: ErrNotFound, Message: "No user found with that ID"}
	ErrExpenseNotFound = &Error{Kind: ErrNotFound, Message: "No expense found with that ID"}

	ErrEmailTaken = &Error{Kind: ErrConflict, Message: "A user with that email already exists"}

	ErrPasswordMismatch = &Error{Kind: ErrValidation, Message: "Passwords do not match"}
	ErrPasswordUpdate   = &Error{Kind: ErrValidation, Message: "This route is not for password updates"}
)
