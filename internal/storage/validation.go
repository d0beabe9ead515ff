package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/appraise/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrInvalidRun   = errors.New("invalid run")
	ErrNotFound     = errors.New("not found")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil { //nolint:staticcheck // nil contexts come from callers we don't control
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRun validates a run before it is written.
func validateRun(run *model.Run) error {
	if run == nil {
		return fmt.Errorf("%w: run", ErrNilParameter)
	}
	switch run.Mode {
	case model.ModeClassify, model.ModeDelete:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidRun, run.Mode)
	}
	// Classification never touches letter files, so only deletions need a root.
	if run.Mode == model.ModeDelete && strings.TrimSpace(run.ExportRoot) == "" {
		return fmt.Errorf("%w: export root is required for deletion", ErrInvalidRun)
	}
	return nil
}
