package export

import (
	"testing"

	"github.com/Veraticus/appraise/internal/common"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMetadata_TabDelimited(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := "in_topic\tin_text\tdoc_in\tdoc_out\n" +
		"Casework\tPlease help with \"my\" claim\t..\\documents\\BlobExport\\objects\\1.txt\t\n" +
		"Highways\ttoo\tfew\n" +
		"\n" +
		"Jobs\tresume\t\t..\\documents\\BlobExport\\formletters\\jobs.txt\n"
	require.NoError(t, afero.WriteFile(fs, "/export/metadata.txt", []byte(data), 0o644))

	md, err := ReadMetadata(fs, "/export/metadata.txt", ReadOptions{})
	require.NoError(t, err)

	assert.Equal(t, EncodingUTF8, md.Encoding)
	assert.Equal(t, 1, md.Skipped)
	require.Len(t, md.Records, 2)
	assert.Equal(t, `Please help with "my" claim`, md.Records[0].Field("in_text"))
	assert.Equal(t, `..\documents\BlobExport\objects\1.txt`, md.Records[0].Field("doc_in"))
	assert.Equal(t, `..\documents\BlobExport\formletters\jobs.txt`, md.Records[1].Field("doc_out"))
}

func TestReadMetadata_Windows1252Fallback(t *testing.T) {
	fs := afero.NewMemMapFs()
	// 0xE9 is é in Windows-1252 and invalid on its own in UTF-8.
	data := []byte("in_topic,in_text\nCasework,caf\xe9 owner\n")
	require.NoError(t, afero.WriteFile(fs, "/m.csv", data, 0o644))

	md, err := ReadMetadata(fs, "/m.csv", ReadOptions{Delimiter: ','})
	require.NoError(t, err)
	assert.Equal(t, EncodingWindows1252, md.Encoding)
	require.Len(t, md.Records, 1)
	assert.Equal(t, "café owner", md.Records[0].Field("in_text"))
}

func TestReadMetadata_StripsBOM(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/m.txt", []byte("\xEF\xBB\xBFin_topic\tdoc_in\nCase\tx\n"), 0o644))

	md, err := ReadMetadata(fs, "/m.txt", ReadOptions{})
	require.NoError(t, err)
	assert.True(t, md.Header.Has("in_topic"))
	assert.Equal(t, "Case", md.Records[0].Field("in_topic"))
}

func TestReadMetadata_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/empty.txt", nil, 0o644))

	_, err := ReadMetadata(fs, "/empty.txt", ReadOptions{})
	require.ErrorIs(t, err, common.ErrMalformedRow)

	_, err = ReadMetadata(fs, "/missing.txt", ReadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read metadata")
}
