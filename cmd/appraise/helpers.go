package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/appraise/internal/classification"
	"github.com/Veraticus/appraise/internal/common"
	"github.com/Veraticus/appraise/internal/config"
	"github.com/Veraticus/appraise/internal/export"
	"github.com/Veraticus/appraise/internal/model"
	"github.com/Veraticus/appraise/internal/storage"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initStorage initializes the run history store with proper path expansion.
func initStorage(ctx context.Context) (storage.RunStore, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/appraise/appraise.db"
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// runRecorder writes a run to the history store. History is secondary to the
// audit log, so a store that cannot be opened only produces a warning.
type runRecorder struct {
	store storage.RunStore
	run   *model.Run
}

func startRun(ctx context.Context, run *model.Run) *runRecorder {
	r := &runRecorder{run: run}

	store, err := initStorage(ctx)
	if err != nil {
		common.LogWarn("Run history unavailable", common.Fields{"error": err.Error()})
		return r
	}
	if err := store.StartRun(ctx, run); err != nil {
		common.LogWarn("Failed to record run start", common.Fields{"error": err.Error()})
		_ = store.Close()
		return r
	}

	r.store = store
	slog.Debug("Recorded run start", "run_id", run.ID, "mode", run.Mode)
	return r
}

// finish stores the final state. It runs even after an interrupt.
func (r *runRecorder) finish(ctx context.Context, runErr error) {
	if r.store == nil {
		return
	}
	defer func() {
		if closeErr := r.store.Close(); closeErr != nil {
			slog.Error("Failed to close database", "error", closeErr)
		}
	}()

	if runErr != nil {
		r.run.Error = runErr.Error()
	}
	if err := r.store.FinishRun(context.WithoutCancel(ctx), r.run); err != nil {
		slog.Warn("Failed to record run result", "run_id", r.run.ID, "error", err)
	}
}

// stringSetting prefers an explicitly set flag, then the viper key.
func stringSetting(cmd *cobra.Command, flag, key string) string {
	if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
		return f.Value.String()
	}
	if v := viper.GetString(key); v != "" {
		return v
	}
	if f := cmd.Flags().Lookup(flag); f != nil {
		return f.Value.String()
	}
	return ""
}

// loadClassifier builds the classifier from the configured schema and vocabulary.
func loadClassifier() (model.Schema, *classification.Classifier, error) {
	v := viper.GetViper()

	schema, err := config.LoadSchema(v)
	if err != nil {
		return model.Schema{}, nil, err
	}
	defs, err := config.LoadCategoryRules(v)
	if err != nil {
		return model.Schema{}, nil, err
	}
	classifier, err := classification.NewClassifierFromRules(defs, schema)
	if err != nil {
		return model.Schema{}, nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	return schema, classifier, nil
}

// readMetadata loads an export and checks it against the schema. Absent
// columns only warn, since absent fields never match; an export with none of
// the searched columns is rejected.
func readMetadata(fs afero.Fs, path string, schema model.Schema) (*export.Metadata, error) {
	delimiter, err := parseDelimiter(viper.GetString("metadata.delimiter"))
	if err != nil {
		return nil, err
	}

	md, err := export.ReadMetadata(fs, config.ExpandPath(path), export.ReadOptions{Delimiter: delimiter})
	if err != nil {
		return nil, err
	}

	missing := schema.MissingColumns(md.Header)
	if len(missing) > 0 {
		slog.Warn("Metadata is missing schema columns", "schema", schema.Name, "columns", missing)
	}
	present := 0
	for _, c := range schema.SearchedColumns() {
		if md.Header.Has(c) {
			present++
		}
	}
	if present == 0 {
		return nil, common.NewUserError(
			fmt.Sprintf("%s has none of the %s schema's searched columns; try --schema", path, schema.Name),
			fmt.Errorf("%w: %v", common.ErrMissingColumns, missing))
	}
	return md, nil
}

// parseDelimiter maps the metadata.delimiter setting to a field separator. An
// empty value keeps the tab default.
func parseDelimiter(value string) (rune, error) {
	switch value {
	case "", "tab":
		return '\t', nil
	case "comma":
		return ',', nil
	}

	r := []rune(value)
	if len(r) != 1 {
		return 0, fmt.Errorf("%w: metadata.delimiter must be tab, comma, or a single character, got %q", common.ErrInvalidConfig, value)
	}
	return r[0], nil
}
