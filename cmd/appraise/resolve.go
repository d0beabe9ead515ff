package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/Veraticus/appraise/internal/cli"
	"github.com/Veraticus/appraise/internal/config"
	"github.com/Veraticus/appraise/internal/docpath"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func resolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve PATH...",
		Short: "Show where recorded document paths resolve under the export root",
		Long: `Rewrite recorded document paths the way a deletion run would, without
touching any file. Use --check to also report whether each file exists.

Examples:
  appraise resolve --export-root /mnt/export '..\documents\BlobExport\in\a.txt'
  appraise resolve -r /mnt/export --check '\\CSS01\dos\public\out\b.txt'`,
		Args: cobra.MinimumNArgs(1),
		RunE: runResolve,
	}

	cmd.Flags().StringP("export-root", "r", "", "root directory of the export")
	cmd.Flags().Bool("check", false, "report whether each resolved file exists")

	return cmd
}

func runResolve(cmd *cobra.Command, args []string) error {
	exportRoot := config.ExpandPath(stringSetting(cmd, "export-root", "export.root"))
	if exportRoot == "" {
		return fmt.Errorf("--export-root is required")
	}
	check, _ := cmd.Flags().GetBool("check")

	return writeResolutions(cmd, afero.NewOsFs(), docpath.NewResolver(), exportRoot, args, check)
}

func writeResolutions(cmd *cobra.Command, fs afero.Fs, resolver *docpath.Resolver, exportRoot string, recorded []string, check bool) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer func() {
		if flushErr := w.Flush(); flushErr != nil {
			slog.Error("failed to flush table writer", "error", flushErr)
		}
	}()

	for _, value := range recorded {
		path, convention, err := resolver.ResolveWithConvention(value, exportRoot)
		if err != nil {
			if !errors.Is(err, docpath.ErrUnrecognizedPattern) {
				return err
			}
			if _, err := fmt.Fprintf(w, "%s\t%s\n", value, cli.WarningStyle.Render("unrecognized")); err != nil {
				return err
			}
			continue
		}

		line := fmt.Sprintf("%s\t%s\t%s", value, cli.SubtleStyle.Render(convention), path)
		if check {
			line += "\t" + existence(fs, path)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func existence(fs afero.Fs, path string) string {
	info, err := fs.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return cli.WarningStyle.Render("missing")
	case err != nil:
		return cli.ErrorStyle.Render(err.Error())
	case info.IsDir():
		return cli.WarningStyle.Render("directory")
	default:
		return cli.SuccessStyle.Render("exists")
	}
}
