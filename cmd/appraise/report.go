package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Veraticus/appraise/internal/audit"
	"github.com/Veraticus/appraise/internal/cli"
	"github.com/Veraticus/appraise/internal/config"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report AUDIT_LOG",
		Short: "Summarize a deletion audit log",
		Long: `Read a file_deletion_log_<date>.csv back and summarize it: files deleted
per category, files that were already gone, and recorded paths that could not
be resolved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := audit.ReadLog(afero.NewOsFs(), config.ExpandPath(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderReport(args[0], audit.Summarize(entries))) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}

func renderReport(path string, s audit.LogSummary) string {
	lines := []string{
		fmt.Sprintf("Attempts:      %d", s.Attempts),
		fmt.Sprintf("Deleted:       %d (%.1f KB)", s.Deleted, s.SizeKB),
		fmt.Sprintf("Not found:     %d", s.NotFound),
		fmt.Sprintf("Unrecognized:  %d", len(s.Unrecognized)),
	}

	if len(s.ByCategory) > 0 {
		categories := make([]string, 0, len(s.ByCategory))
		for c := range s.ByCategory {
			categories = append(categories, c)
		}
		sort.Strings(categories)

		lines = append(lines, "", cli.HeaderStyle.Render("Deleted by category"))
		for _, c := range categories {
			lines = append(lines, fmt.Sprintf("  %-20s %d", c, s.ByCategory[c]))
		}
	}

	if len(s.Unrecognized) > 0 {
		lines = append(lines, "", cli.WarningStyle.Render("Unrecognized paths"))
		for _, p := range s.Unrecognized {
			lines = append(lines, "  "+p)
		}
	}

	return cli.RenderBox(path, strings.Join(lines, "\n"))
}
