// Package testutil provides fixtures for tests that need an export on disk
// or a run history store.
package testutil

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/appraise/internal/docpath"
	"github.com/Veraticus/appraise/internal/model"
	"github.com/Veraticus/appraise/internal/storage"
	"github.com/spf13/afero"
)

// Archive is an in-memory export: metadata records plus the letter files
// their document references point at.
type Archive struct {
	FS       afero.Fs
	t        *testing.T
	header   *model.Header
	resolver *docpath.Resolver
	Root     string
	records  []model.Record
}

// NewArchive creates an empty export whose metadata has the given columns.
//
// Example:
//
//	a := testutil.NewArchive(t, "in_topic", "doc_in", "doc_out").
//		WithLetter(`..\documents\BlobExport\in\a.txt`, "Dear Senator").
//		WithRecord("Casework", `..\documents\BlobExport\in\a.txt`, "")
func NewArchive(t *testing.T, columns ...string) *Archive {
	t.Helper()
	return &Archive{
		FS:       afero.NewMemMapFs(),
		t:        t,
		header:   model.NewHeader(columns),
		resolver: docpath.NewResolver(),
		Root:     filepath.FromSlash("/exports/archive"),
	}
}

// WithLetter writes a letter file where the recorded reference resolves.
func (a *Archive) WithLetter(recorded, content string) *Archive {
	a.t.Helper()
	path := a.Path(recorded)
	if err := afero.WriteFile(a.FS, path, []byte(content), 0o644); err != nil {
		a.t.Fatalf("failed to write letter %q: %v", path, err)
	}
	return a
}

// WithRecord appends a metadata row; values follow the column order.
func (a *Archive) WithRecord(values ...string) *Archive {
	a.records = append(a.records, model.NewRecord(a.header, values))
	return a
}

// Records returns the metadata rows in insertion order.
func (a *Archive) Records() []model.Record {
	return a.records
}

// Path resolves a recorded reference under the archive root or fails the test.
func (a *Archive) Path(recorded string) string {
	a.t.Helper()
	path, err := a.resolver.Resolve(recorded, a.Root)
	if err != nil {
		a.t.Fatalf("fixture reference %q does not resolve: %v", recorded, err)
	}
	return path
}

// Exists reports whether the letter behind a recorded reference is on disk.
func (a *Archive) Exists(recorded string) bool {
	a.t.Helper()
	_, err := a.FS.Stat(a.Path(recorded))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		a.t.Fatalf("failed to stat %q: %v", recorded, err)
	}
	return err == nil
}

// SetupTestStore creates a migrated in-memory run history store that is
// closed when the test ends.
func SetupTestStore(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
