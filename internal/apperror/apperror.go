package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the HTTP boundary. Handlers never map errors
// themselves; the error middleware translates Kind to a status code.
type Kind int

const (
	KindValidation Kind = iota // missing/invalid input, caught before any store access
	KindNotFound               // no matching record for the given owner
	KindConflict               // id collision on create, caller should retry with a new id
	KindTransient              // persistence layer unreachable, surfaced as a generic 500
)

type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidation(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func NewNotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func NewConflict(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func NewTransient(message string, err error) *AppError {
	return &AppError{Kind: KindTransient, Message: message, Err: err}
}

// As unwraps err into an *AppError if possible.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsValidation(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == KindValidation
}

func IsNotFound(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == KindNotFound
}

func IsConflict(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == KindConflict
}
