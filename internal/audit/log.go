// Package audit writes the deletion audit log: one CSV row per deletion
// attempt, flushed and synced to disk before the next attempt starts.
package audit

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/Veraticus/appraise/internal/common"
	"github.com/jszwec/csvutil"
	"github.com/spf13/afero"
)

// DateFormat is the layout of the date columns.
const DateFormat = "2006-01-02"

// Notes recorded for attempts that deleted nothing.
const (
	NoteUnrecognizedPath = "Cannot determine file path"
	NoteNotFound         = "Cannot find file"
)

// Entry is one row of the audit log.
type Entry struct {
	File        string `csv:"File"`
	SizeKB      string `csv:"SizeKB"`
	DateCreated string `csv:"DateCreated"`
	DateDeleted string `csv:"DateDeleted"`
	MD5         string `csv:"MD5"`
	Notes       string `csv:"Notes"`
}

// FileName returns the log name for a run on the given day.
func FileName(day time.Time) string {
	return "file_deletion_log_" + day.Format(DateFormat) + ".csv"
}

// Log is an open audit log. It is not safe for concurrent use.
type Log struct {
	file   afero.File
	csv    *csv.Writer
	enc    *csvutil.Encoder
	path   string
	rows   int
	closed bool
}

// Open creates the log at path, replacing any log of the same name, and
// durably writes the header before returning.
func Open(fs afero.Fs, path string) (*Log, error) {
	f, err := fs.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create %s: %v", common.ErrAuditWrite, path, err)
	}

	w := csv.NewWriter(f)
	enc := csvutil.NewEncoder(w)
	l := &Log{file: f, csv: w, enc: enc, path: path}

	if err := enc.EncodeHeader(Entry{}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: failed to write header: %v", common.ErrAuditWrite, err)
	}
	enc.AutoHeader = false

	if err := l.sync(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return l, nil
}

// Path returns the log's location.
func (l *Log) Path() string {
	return l.path
}

// Rows returns the number of attempts written so far.
func (l *Log) Rows() int {
	return l.rows
}

// Append writes one attempt and syncs it to disk. Nothing is buffered across
// calls, so every row written before a crash survives it.
func (l *Log) Append(filePath string, outcome Outcome) error {
	if l.closed {
		return fmt.Errorf("%w: log %s is closed", common.ErrAuditWrite, l.path)
	}

	if err := l.enc.Encode(outcome.entry(filePath)); err != nil {
		return fmt.Errorf("%w: failed to encode entry for %s: %v", common.ErrAuditWrite, filePath, err)
	}
	if err := l.sync(); err != nil {
		return err
	}
	l.rows++
	return nil
}

// Close closes the log. Calling Close more than once is a no-op.
func (l *Log) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	if err := l.file.Close(); err != nil {
		return fmt.Errorf("%w: failed to close %s: %v", common.ErrAuditWrite, l.path, err)
	}
	return nil
}

func (l *Log) sync() error {
	l.csv.Flush()
	if err := l.csv.Error(); err != nil {
		return fmt.Errorf("%w: failed to flush %s: %v", common.ErrAuditWrite, l.path, err)
	}
	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("%w: failed to sync %s: %v", common.ErrAuditWrite, l.path, err)
	}
	return nil
}

// ReadLog loads every entry of an existing audit log.
func ReadLog(fs afero.Fs, path string) ([]Entry, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	dec, err := csvutil.NewDecoder(csv.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("failed to read audit log header: %w", err)
	}

	var entries []Entry
	if err := dec.Decode(&entries); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode audit log: %w", err)
	}
	return entries, nil
}

func formatKB(kb float64) string {
	return strconv.FormatFloat(kb, 'f', 1, 64)
}
