package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/appraise/internal/classification"
	"github.com/Veraticus/appraise/internal/cli"
	"github.com/Veraticus/appraise/internal/config"
	"github.com/Veraticus/appraise/internal/export"
	"github.com/Veraticus/appraise/internal/model"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify records into appraisal categories",
		Long: `Classify every record of a metadata export into the appraisal categories.

Matched records are written to the delete log with their categories joined
by "|". Records that mention a category's root word without matching any of
its rules are written to the check log for manual review. Nothing is deleted.

Examples:
  appraise classify --metadata export/metadata.txt
  appraise classify --metadata export/metadata.txt --schema cms --out appraisal/`,
		RunE: runClassify,
	}

	// Flags
	cmd.Flags().StringP("metadata", "m", "", "metadata export to classify (required)")
	cmd.Flags().StringP("export-root", "r", "", "root directory of the export (recorded in history)")
	cmd.Flags().StringP("out", "o", ".", "directory for the delete and check logs")
	_ = cmd.MarkFlagRequired("metadata")

	return cmd
}

func runClassify(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	fs := afero.NewOsFs()

	metadataPath, _ := cmd.Flags().GetString("metadata")
	exportRoot := stringSetting(cmd, "export-root", "export.root")
	outDir := config.ExpandPath(stringSetting(cmd, "out", "output.dir"))

	schema, classifier, err := loadClassifier()
	if err != nil {
		return err
	}

	run := &model.Run{
		Mode:       model.ModeClassify,
		ExportRoot: exportRoot,
		Source:     metadataPath,
	}
	recorder := startRun(ctx, run)

	_, counts, err := classifyExport(fs, metadataPath, outDir, schema, classifier, run)
	recorder.finish(ctx, err)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderAppraisalSummary(counts)) //nolint:forbidigo // User-facing output
	return nil
}

// classifyExport reads, classifies, and writes the appraisal logs, filling in
// the run's counts as it goes.
func classifyExport(fs afero.Fs, metadataPath, outDir string, schema model.Schema, classifier *classification.Classifier, run *model.Run) (classification.Appraisal, cli.AppraisalCounts, error) {
	md, err := readMetadata(fs, metadataPath, schema)
	if err != nil {
		return classification.Appraisal{}, cli.AppraisalCounts{}, err
	}

	appraisal := classifier.Classify(md.Records)
	files, err := export.WriteAppraisal(fs, outDir, md.Header, appraisal)
	if err != nil {
		return appraisal, cli.AppraisalCounts{}, fmt.Errorf("failed to write appraisal logs: %w", err)
	}

	run.Records = len(md.Records)
	run.Classified = len(appraisal.Rows)
	run.CheckCandidates = len(appraisal.CheckLog)
	run.DeleteLog = files.DeleteLog
	run.CheckLog = files.CheckLog

	slog.Info("Classification complete",
		"schema", schema.Name,
		"records", len(md.Records),
		"matched", len(appraisal.Rows),
		"check_candidates", len(appraisal.CheckLog))

	return appraisal, cli.AppraisalCounts{
		ByCategory:  appraisal.CountByCategory(),
		DeleteLog:   files.DeleteLog,
		CheckLog:    files.CheckLog,
		Records:     len(md.Records),
		Matched:     len(appraisal.Rows),
		CheckRows:   len(appraisal.CheckLog),
		SkippedRows: md.Skipped,
	}, nil
}
