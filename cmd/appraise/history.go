package main

import (
	"fmt"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/Veraticus/appraise/internal/cli"
	"github.com/Veraticus/appraise/internal/model"
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded classification and deletion runs",
		RunE:  runHistory,
	}

	cmd.Flags().IntP("limit", "n", 20, "number of runs to show (0 = all)")

	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("failed to close storage", "error", closeErr)
		}
	}()

	runs, err := store.ListRuns(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), cli.InfoStyle.Render("No runs recorded yet.")) //nolint:forbidigo // User-facing output
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatTitle("Run History")) //nolint:forbidigo // User-facing output
	return writeRuns(cmd, runs)
}

func writeRuns(cmd *cobra.Command, runs []model.Run) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer func() {
		if flushErr := w.Flush(); flushErr != nil {
			slog.Error("failed to flush table writer", "error", flushErr)
		}
	}()

	if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		cli.HeaderStyle.Render("Started"),
		cli.HeaderStyle.Render("Mode"),
		cli.HeaderStyle.Render("Status"),
		cli.HeaderStyle.Render("Records"),
		cli.HeaderStyle.Render("Matched"),
		cli.HeaderStyle.Render("Deleted"),
		cli.HeaderStyle.Render("Source"),
	); err != nil {
		return err
	}

	for _, run := range runs {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			run.StartedAt.Local().Format(time.DateTime),
			run.Mode,
			statusStyle(run.Status),
			run.Records,
			run.Classified,
			run.Deleted,
			run.Source,
		); err != nil {
			return err
		}
	}
	return nil
}

func statusStyle(status model.RunStatus) string {
	switch status {
	case model.RunCompleted:
		return cli.SuccessStyle.Render(string(status))
	case model.RunFailed:
		return cli.ErrorStyle.Render(string(status))
	default:
		return cli.WarningStyle.Render(string(status))
	}
}
