package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/appraise/internal/audit"
	"github.com/Veraticus/appraise/internal/classification"
	"github.com/Veraticus/appraise/internal/cli"
	"github.com/Veraticus/appraise/internal/common"
	"github.com/Veraticus/appraise/internal/config"
	"github.com/Veraticus/appraise/internal/deletion"
	"github.com/Veraticus/appraise/internal/docpath"
	"github.com/Veraticus/appraise/internal/export"
	"github.com/Veraticus/appraise/internal/model"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// confirmWord must be typed before a deletion without --yes.
const confirmWord = "delete"

func deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the letter files of classified records",
		Long: `Delete the inbound and outbound letter files named by classified records.

Rows come either from classifying a metadata export (--metadata) or from a
delete log written by an earlier "appraise classify" (--from-log). Every
attempt is written to file_deletion_log_<date>.csv in --out and synced
before the next file is touched. Outbound form letters are never deleted.

Deletion is irreversible. You are asked to confirm unless --yes is given.

Examples:
  appraise delete --export-root /mnt/export --from-log appraisal_delete_log.csv
  appraise delete --export-root /mnt/export --metadata metadata.txt --yes`,
		RunE: runDelete,
	}

	// Flags
	cmd.Flags().StringP("export-root", "r", "", "root directory of the export (required)")
	cmd.Flags().StringP("metadata", "m", "", "metadata export to classify and delete from")
	cmd.Flags().StringP("from-log", "l", "", "appraisal delete log to delete from")
	cmd.Flags().StringP("out", "o", ".", "directory for the audit log")
	cmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	cmd.Flags().BoolP("quiet", "q", false, "hide the progress bar")
	cmd.MarkFlagsMutuallyExclusive("metadata", "from-log")
	cmd.MarkFlagsOneRequired("metadata", "from-log")

	return cmd
}

func runDelete(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	fs := afero.NewOsFs()

	metadataPath, _ := cmd.Flags().GetString("metadata")
	fromLog, _ := cmd.Flags().GetString("from-log")
	yes, _ := cmd.Flags().GetBool("yes")
	quiet, _ := cmd.Flags().GetBool("quiet")
	outDir := config.ExpandPath(stringSetting(cmd, "out", "output.dir"))

	exportRoot, err := config.ValidateExportRoot(fs, stringSetting(cmd, "export-root", "export.root"))
	if err != nil {
		return common.NewUserError("--export-root must name the export's root directory", err)
	}

	schema, classifier, err := loadClassifier()
	if err != nil {
		return err
	}

	run := &model.Run{Mode: model.ModeDelete, ExportRoot: exportRoot}

	var rows []model.ClassifiedRecord
	if fromLog != "" {
		run.Source = fromLog
		rows, err = loadAppraisalLog(fs, fromLog, schema)
		if err != nil {
			return err
		}
		run.Records = len(rows)
		run.Classified = len(rows)
		run.DeleteLog = fromLog
	} else {
		run.Source = metadataPath
		var appraisal classification.Appraisal
		appraisal, _, err = classifyExport(fs, metadataPath, outDir, schema, classifier, run)
		if err != nil {
			return err
		}
		rows = appraisal.Rows
	}

	if len(rows) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("No classified records; nothing to delete.")) //nolint:forbidigo // User-facing output
		return nil
	}

	if !yes {
		prompt := fmt.Sprintf("Permanently delete the letter files of %d records under %s?", len(rows), exportRoot)
		ok, confirmErr := cli.Confirm(ctx, cmd.InOrStdin(), cmd.ErrOrStderr(), prompt, confirmWord)
		if confirmErr != nil {
			return confirmErr
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning("Aborted; no files were deleted.")) //nolint:forbidigo // User-facing output
			return nil
		}
	}

	var progress io.Writer
	if !quiet {
		progress = cmd.ErrOrStderr()
	}

	recorder := startRun(ctx, run)
	summary, err := deleteRows(ctx, fs, rows, schema, exportRoot, outDir, progress, run)
	recorder.finish(ctx, err)

	if run.AuditLog != "" {
		fmt.Fprintln(cmd.OutOrStdout(), cli.RenderDeletionSummary(summary, run.AuditLog)) //nolint:forbidigo // User-facing output
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return common.NewUserError("deletion stopped before all records were processed", err)
		}
		if common.IsFatal(err) {
			common.LogError(err, "Deletion halted", common.Fields{
				"audit_log": run.AuditLog,
				"deleted":   summary.Deleted,
			})
		}
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Processed %d records, deleted %d files", summary.Records, summary.Deleted))) //nolint:forbidigo // User-facing output
	return nil
}

// loadAppraisalLog reads a delete log and checks that it still carries the
// schema's reference columns.
func loadAppraisalLog(fs afero.Fs, path string, schema model.Schema) ([]model.ClassifiedRecord, error) {
	rows, err := export.ReadAppraisalLog(fs, config.ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read appraisal log: %w", err)
	}
	if len(rows) == 0 {
		return rows, nil
	}

	header := rows[0].Record.Header
	if !header.Has(schema.InboundRef) && !header.Has(schema.OutboundRef) {
		return nil, common.NewUserError(
			fmt.Sprintf("%s has no %s or %s column; try --schema", path, schema.InboundRef, schema.OutboundRef),
			common.ErrMissingColumns)
	}

	slog.Info("Read appraisal log", "path", path, "rows", len(rows))
	return rows, nil
}

// deleteRows runs the orchestrator with a fresh audit log in outDir.
func deleteRows(ctx context.Context, fs afero.Fs, rows []model.ClassifiedRecord, schema model.Schema, exportRoot, outDir string, progress io.Writer, run *model.Run) (summary deletion.Summary, err error) {
	if err := fs.MkdirAll(outDir, 0o750); err != nil {
		return summary, fmt.Errorf("%w: failed to create output directory: %v", common.ErrAuditWrite, err)
	}

	auditPath, err := auditLogPath(fs, outDir, time.Now())
	if err != nil {
		return summary, err
	}
	log, err := audit.Open(fs, auditPath)
	if err != nil {
		return summary, err
	}
	run.AuditLog = auditPath
	defer func() {
		if closeErr := log.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	opts := deletion.Options{
		ExportRoot:       exportRoot,
		InboundField:     schema.InboundRef,
		OutboundField:    schema.OutboundRef,
		FormLetterMarker: viper.GetString("deletion.form_letter_marker"),
	}
	if bar := cli.NewProgressBar(progress, len(rows), "Deleting letters"); bar != nil {
		opts.Progress = bar
	}

	orchestrator, err := deletion.NewOrchestrator(fs, docpath.NewResolver(), log, opts)
	if err != nil {
		return summary, err
	}

	slog.Info("Starting deletion", "records", len(rows), "export_root", exportRoot, "audit_log", auditPath)
	summary, err = orchestrator.Run(ctx, rows)

	run.Deleted = summary.Deleted
	run.NotFound = summary.NotFound
	run.Unrecognized = summary.Unrecognized
	run.FormLettersKept = summary.FormLettersKept

	common.LogInfo("Deletion finished", common.Fields{
		"records":           summary.Records,
		"deleted":           summary.Deleted,
		"not_found":         summary.NotFound,
		"unrecognized":      summary.Unrecognized,
		"form_letters_kept": summary.FormLettersKept,
	})
	return summary, err
}

// auditLogPath picks the day's log name, adding a counter when an earlier run
// already wrote one so its trail is never truncated.
func auditLogPath(fs afero.Fs, dir string, now time.Time) (string, error) {
	name := audit.FileName(now)
	path := filepath.Join(dir, name)
	ext := filepath.Ext(name)
	base := name[:len(name)-len(ext)]

	for n := 2; ; n++ {
		_, err := fs.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", fmt.Errorf("%w: failed to check %s: %v", common.ErrAuditWrite, path, err)
		}
		path = filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, n, ext))
	}
}
