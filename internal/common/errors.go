// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Export errors.
	ErrInvalidExportRoot = errors.New("invalid export root")
	ErrMalformedRow      = errors.New("malformed metadata row")
	ErrMissingColumns    = errors.New("metadata is missing required columns")

	// Deletion errors.
	ErrAuditWrite = errors.New("cannot write audit log")
	ErrDeletion   = errors.New("deletion failed")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsFatal reports whether err must stop a deletion run: the audit trail can
// no longer be trusted or an existing file could not be processed.
func IsFatal(err error) bool {
	return errors.Is(err, ErrAuditWrite) || errors.Is(err, ErrDeletion)
}
