package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/appraise/internal/model"
	"github.com/google/uuid"
)

const runColumns = `id, mode, status, export_root, source, audit_log, delete_log, check_log,
	records, classified, check_candidates, deleted, not_found, unrecognized, form_letters_kept,
	started_at, finished_at, error`

// StartRun inserts a running record before any work begins.
func (s *SQLiteStorage) StartRun(ctx context.Context, run *model.Run) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRun(run); err != nil {
		return err
	}

	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	run.Status = model.RunRunning

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, mode, status, export_root, source, started_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Mode, run.Status, run.ExportRoot, run.Source, run.StartedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to start run: %w", err)
	}
	return nil
}

// FinishRun stores the final counts and status. A run without an explicit
// terminal status is marked failed when it carries an error, otherwise completed.
func (s *SQLiteStorage) FinishRun(ctx context.Context, run *model.Run) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRun(run); err != nil {
		return err
	}
	if err := validateString(run.ID, "run.ID"); err != nil {
		return err
	}

	if run.Status == "" || run.Status == model.RunRunning {
		run.Status = model.RunCompleted
		if run.Error != "" {
			run.Status = model.RunFailed
		}
	}
	finished := time.Now()
	run.FinishedAt = &finished

	result, err := s.db.ExecContext(ctx, `
		UPDATE runs SET
			status = ?, audit_log = ?, delete_log = ?, check_log = ?,
			records = ?, classified = ?, check_candidates = ?,
			deleted = ?, not_found = ?, unrecognized = ?, form_letters_kept = ?,
			finished_at = ?, error = ?
		WHERE id = ?`,
		run.Status, run.AuditLog, run.DeleteLog, run.CheckLog,
		run.Records, run.Classified, run.CheckCandidates,
		run.Deleted, run.NotFound, run.Unrecognized, run.FormLettersKept,
		finished.UTC(), run.Error, run.ID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check run update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: run %s", ErrNotFound, run.ID)
	}
	return nil
}

// GetRun loads one run by ID.
func (s *SQLiteStorage) GetRun(ctx context.Context, id string) (*model.Run, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: run %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs first. A limit of zero or less returns all runs.
func (s *SQLiteStorage) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var runs []model.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*model.Run, error) {
	var (
		run                                               model.Run
		source, auditLog, deleteLog, checkLog, errMessage sql.NullString
		finishedAt                                        sql.NullTime
	)

	err := sc.Scan(
		&run.ID, &run.Mode, &run.Status, &run.ExportRoot,
		&source, &auditLog, &deleteLog, &checkLog,
		&run.Records, &run.Classified, &run.CheckCandidates,
		&run.Deleted, &run.NotFound, &run.Unrecognized, &run.FormLettersKept,
		&run.StartedAt, &finishedAt, &errMessage,
	)
	if err != nil {
		return nil, err
	}

	run.Source = source.String
	run.AuditLog = auditLog.String
	run.DeleteLog = deleteLog.String
	run.CheckLog = checkLog.String
	run.Error = errMessage.String
	if finishedAt.Valid {
		t := finishedAt.Time
		run.FinishedAt = &t
	}
	return &run, nil
}
