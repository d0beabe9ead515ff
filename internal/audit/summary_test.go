package audit

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	fs := afero.NewMemMapFs()
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	log, err := Open(fs, "/audit.csv")
	require.NoError(t, err)
	require.NoError(t, log.Append("/root/documents/a.txt", Deleted("Casework|Recommendation", 1.5, day, day, "abc")))
	require.NoError(t, log.Append("/root/documents/b.txt", Deleted("Casework", 0.5, day, day, "def")))
	require.NoError(t, log.Append("/root/documents/c.txt", NotFound()))
	require.NoError(t, log.Append(`Q:\odd\d.txt`, UnrecognizedPath()))
	require.NoError(t, log.Close())

	entries, err := ReadLog(fs, "/audit.csv")
	require.NoError(t, err)

	s := Summarize(entries)
	assert.Equal(t, 4, s.Attempts)
	assert.Equal(t, 2, s.Deleted)
	assert.Equal(t, 1, s.NotFound)
	assert.Equal(t, []string{`Q:\odd\d.txt`}, s.Unrecognized)
	assert.InDelta(t, 2.0, s.SizeKB, 0.001)
	assert.Equal(t, map[string]int{"Casework": 2, "Recommendation": 1}, s.ByCategory)
}

func TestSummarize_HeaderOnlyLog(t *testing.T) {
	fs := afero.NewMemMapFs()
	log, err := Open(fs, "/audit.csv")
	require.NoError(t, err)
	require.NoError(t, log.Close())

	entries, err := ReadLog(fs, "/audit.csv")
	require.NoError(t, err)
	assert.Empty(t, entries)

	s := Summarize(entries)
	assert.Zero(t, s.Attempts)
	assert.Empty(t, s.ByCategory)
}
