package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	// ErrDocumentUnreadable means the source bytes could not be parsed as a
	// PDF at all. It is the only error that aborts an extraction run; every
	// other anomaly degrades to an absent field.
	ErrDocumentUnreadable = errors.New("document unreadable")

	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrDatabase     = errors.New("database error")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Unreadable wraps a parser failure as ErrDocumentUnreadable, keeping the
// underlying parser message reachable via errors.Unwrap.
func Unreadable(cause error) error {
	return &AppError{Code: "DOCUMENT_UNREADABLE", Message: ErrDocumentUnreadable.Error(), Cause: cause}
}

// IsUnreadable reports whether err is a document-unreadable failure.
func IsUnreadable(err error) bool {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code == "DOCUMENT_UNREADABLE"
	}
	return errors.Is(err, ErrDocumentUnreadable)
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
