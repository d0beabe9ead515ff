// Package deletion destroys the letter files named by classified records and
// records every attempt in the audit log.
package deletion

import (
	"context"
	"crypto/md5" //nolint:gosec // MD5 is the archival fixity digest, not a security control
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Veraticus/appraise/internal/audit"
	"github.com/Veraticus/appraise/internal/common"
	"github.com/Veraticus/appraise/internal/model"
	"github.com/spf13/afero"
)

// DefaultFormLetterMarker identifies shared template responses in outbound paths.
const DefaultFormLetterMarker = "formletters"

// AuditLog receives one entry per deletion attempt.
type AuditLog interface {
	Append(filePath string, outcome audit.Outcome) error
}

// PathResolver rewrites a recorded document path under an export root.
type PathResolver interface {
	Resolve(recorded, exportRoot string) (string, error)
}

// Progress is advanced once per record.
type Progress interface {
	Add(n int) error
}

// Direction says whether a reference is a received or a sent letter.
type Direction string

// Reference directions.
const (
	Inbound  Direction = "inbound"
	Outbound Direction = "outbound"
)

// State is where one reference field ended up.
type State string

// Reference states.
const (
	StateSkippedBlank     State = "skipped_blank"
	StatePathUnrecognized State = "path_unrecognized"
	StateFormLetterKept   State = "form_letter_kept"
	StateFileMissing      State = "file_missing"
	StateDeleted          State = "deleted"
)

// Options configures an Orchestrator.
type Options struct {
	Now              func() time.Time
	Progress         Progress
	ExportRoot       string
	InboundField     string
	OutboundField    string
	FormLetterMarker string
}

// Summary counts the outcomes of a run.
type Summary struct {
	Records         int
	Deleted         int
	NotFound        int
	Unrecognized    int
	SkippedBlank    int
	FormLettersKept int
	BytesDeleted    int64
}

// Attempts returns the number of audit rows the run wrote.
func (s Summary) Attempts() int {
	return s.Deleted + s.NotFound + s.Unrecognized
}

// Orchestrator walks classified records and deletes their referenced files.
type Orchestrator struct {
	fs       afero.Fs
	resolver PathResolver
	log      AuditLog
	opts     Options
}

// NewOrchestrator creates an orchestrator over fs.
func NewOrchestrator(fs afero.Fs, resolver PathResolver, log AuditLog, opts Options) (*Orchestrator, error) {
	if fs == nil || resolver == nil || log == nil {
		return nil, fmt.Errorf("%w: filesystem, resolver, and audit log are required", common.ErrMissingConfig)
	}
	if strings.TrimSpace(opts.ExportRoot) == "" {
		return nil, fmt.Errorf("%w: export root is required", common.ErrMissingConfig)
	}
	if opts.InboundField == "" && opts.OutboundField == "" {
		return nil, fmt.Errorf("%w: no document reference fields configured", common.ErrMissingConfig)
	}
	if opts.FormLetterMarker == "" {
		opts.FormLetterMarker = DefaultFormLetterMarker
	}
	opts.FormLetterMarker = strings.ToLower(opts.FormLetterMarker)
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Orchestrator{fs: fs, resolver: resolver, log: log, opts: opts}, nil
}

// Run processes every record's inbound then outbound reference. Missing and
// unresolvable files are logged and skipped; a failure to hash or delete an
// existing file, or to write the audit log, stops the run. Rows already
// written stay valid.
func (o *Orchestrator) Run(ctx context.Context, rows []model.ClassifiedRecord) (Summary, error) {
	var summary Summary

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("deletion interrupted after %d records: %w", summary.Records, err)
		}

		for _, ref := range o.references(row) {
			state, size, err := o.Attempt(row, ref.direction, ref.value)
			if err != nil {
				return summary, err
			}
			summary.record(state, size)
		}

		summary.Records++
		if o.opts.Progress != nil {
			_ = o.opts.Progress.Add(1)
		}
	}

	return summary, nil
}

type reference struct {
	direction Direction
	value     string
}

func (o *Orchestrator) references(row model.ClassifiedRecord) []reference {
	refs := make([]reference, 0, 2)
	if o.opts.InboundField != "" {
		refs = append(refs, reference{Inbound, row.Record.Field(o.opts.InboundField)})
	}
	if o.opts.OutboundField != "" {
		refs = append(refs, reference{Outbound, row.Record.Field(o.opts.OutboundField)})
	}
	return refs
}

// Attempt drives one reference field through resolution, the form-letter
// check, existence, and deletion. It returns the final state and the number of
// bytes removed.
func (o *Orchestrator) Attempt(row model.ClassifiedRecord, direction Direction, recorded string) (State, int64, error) {
	if strings.TrimSpace(recorded) == "" {
		return StateSkippedBlank, 0, nil
	}

	path, err := o.resolver.Resolve(recorded, o.opts.ExportRoot)
	if err != nil {
		slog.Warn("Unrecognized document path", "record", row.Index, "direction", direction, "path", recorded)
		if logErr := o.log.Append(recorded, audit.UnrecognizedPath()); logErr != nil {
			return "", 0, logErr
		}
		return StatePathUnrecognized, 0, nil
	}

	// Inbound letters are always individually authored.
	if direction == Outbound && strings.Contains(strings.ToLower(recorded), o.opts.FormLetterMarker) {
		slog.Debug("Keeping form letter", "record", row.Index, "path", path)
		return StateFormLetterKept, 0, nil
	}

	info, err := o.fs.Stat(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", 0, fmt.Errorf("%w: failed to stat %s: %v", common.ErrDeletion, path, err)
	}
	if err != nil || info.IsDir() {
		slog.Warn("Document not found", "record", row.Index, "direction", direction, "path", path)
		if logErr := o.log.Append(path, audit.NotFound()); logErr != nil {
			return "", 0, logErr
		}
		return StateFileMissing, 0, nil
	}

	sum, err := o.hashFile(path)
	if err != nil {
		return "", 0, fmt.Errorf("%w: failed to hash %s: %v", common.ErrDeletion, path, err)
	}

	if err := o.fs.Remove(path); err != nil {
		return "", 0, fmt.Errorf("%w: failed to delete %s: %v", common.ErrDeletion, path, err)
	}

	outcome := audit.Deleted(row.CategoryField(), audit.SizeKB(info.Size()), createdTime(info), o.opts.Now(), sum)
	if err := o.log.Append(path, outcome); err != nil {
		return "", 0, err
	}

	slog.Debug("Deleted document", "record", row.Index, "direction", direction, "path", path, "md5", sum)
	return StateDeleted, info.Size(), nil
}

// hashFile digests the full file content. It must run before deletion.
func (o *Orchestrator) hashFile(path string) (string, error) {
	f, err := o.fs.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = f.Close()
	}()

	h := md5.New() //nolint:gosec // fixity digest
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func (s *Summary) record(state State, size int64) {
	switch state {
	case StateDeleted:
		s.Deleted++
		s.BytesDeleted += size
	case StateFileMissing:
		s.NotFound++
	case StatePathUnrecognized:
		s.Unrecognized++
	case StateSkippedBlank:
		s.SkippedBlank++
	case StateFormLetterKept:
		s.FormLettersKept++
	}
}
