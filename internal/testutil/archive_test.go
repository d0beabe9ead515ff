package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchive(t *testing.T) {
	a := NewArchive(t, "in_topic", "doc_in").
		WithLetter(`..\documents\BlobExport\in\a.txt`, "Dear Senator").
		WithRecord("Casework", `..\documents\BlobExport\in\a.txt`)

	require.Len(t, a.Records(), 1)
	assert.Equal(t, "Casework", a.Records()[0].Field("in_topic"))
	assert.True(t, a.Exists(`..\documents\BlobExport\in\a.txt`))
	assert.False(t, a.Exists(`\\CSS01\dos\public\in\b.txt`))
}

func TestSetupTestStore(t *testing.T) {
	store := SetupTestStore(t)
	assert.Equal(t, ":memory:", store.Path())
}
