package scheduling

import (
	"errors"
	"fmt"
)

// Code classifies a scheduling failure for callers and transports.
type Code string

const (
	CodeNotFound          Code = "not_found"
	CodeUnauthenticated   Code = "unauthenticated"
	CodeUnauthorized      Code = "unauthorized"
	CodeSlotUnavailable   Code = "slot_unavailable"
	CodeInvalidTransition Code = "invalid_transition"
	CodeInvalidInput      Code = "invalid_input"
)

// Error is the typed result every scheduling operation returns on rejection.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewNotFoundError(msg string) error {
	return &Error{Code: CodeNotFound, Message: msg}
}

func NewUnauthenticatedError(msg string) error {
	return &Error{Code: CodeUnauthenticated, Message: msg}
}

func NewUnauthorizedError(msg string) error {
	return &Error{Code: CodeUnauthorized, Message: msg}
}

func NewSlotUnavailableError(msg string) error {
	return &Error{Code: CodeSlotUnavailable, Message: msg}
}

func NewInvalidTransitionError(msg string) error {
	return &Error{Code: CodeInvalidTransition, Message: msg}
}

func NewInvalidInputError(msg string) error {
	return &Error{Code: CodeInvalidInput, Message: msg}
}

// CodeOf extracts the scheduling code from err, or "" for untyped failures.
func CodeOf(err error) Code {
	var schedErr *Error
	if errors.As(err, &schedErr) {
		return schedErr.Code
	}
	return ""
}
