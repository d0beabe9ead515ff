package model

import "time"

// RunStatus is the lifecycle state of a recorded run.
type RunStatus string

// Run statuses.
const (
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// RunMode names what an invocation did.
type RunMode string

// Run modes.
const (
	ModeClassify RunMode = "classify"
	ModeDelete   RunMode = "delete"
)

// Run is the history record of one invocation.
type Run struct {
	StartedAt       time.Time
	FinishedAt      *time.Time
	ID              string
	Mode            RunMode
	Status          RunStatus
	ExportRoot      string
	Source          string
	AuditLog        string
	DeleteLog       string
	CheckLog        string
	Error           string
	Records         int
	Classified      int
	CheckCandidates int
	Deleted         int
	NotFound        int
	Unrecognized    int
	FormLettersKept int
}
