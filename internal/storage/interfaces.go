package storage

import (
	"context"

	"github.com/Veraticus/appraise/internal/model"
)

// RunStore records the history of classification and deletion runs.
type RunStore interface {
	// StartRun inserts a running record, assigning an ID when none is set.
	StartRun(ctx context.Context, run *model.Run) error
	// FinishRun stores the final counts and status of a run.
	FinishRun(ctx context.Context, run *model.Run) error
	// GetRun loads one run by ID.
	GetRun(ctx context.Context, id string) (*model.Run, error)
	// ListRuns returns the most recent runs first.
	ListRuns(ctx context.Context, limit int) ([]model.Run, error)
	Close() error
}
