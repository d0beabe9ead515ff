package main

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/appraise/internal/common"
	"github.com/Veraticus/appraise/internal/model"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDelimiter(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    rune
		wantErr bool
	}{
		{name: "default", value: "", want: '\t'},
		{name: "tab", value: "tab", want: '\t'},
		{name: "comma", value: "comma", want: ','},
		{name: "single character", value: ";", want: ';'},
		{name: "pipe", value: "|", want: '|'},
		{name: "word", value: "semicolon", wantErr: true},
		{name: "two characters", value: ";;", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDelimiter(tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadMetadata_RejectsUnknownDelimiter(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("metadata.delimiter", "semicolon")

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/metadata.txt", []byte("in_topic;doc_in\nCasework;a.txt\n"), 0o644))
	schema, err := model.SchemaByName("css")
	require.NoError(t, err)

	_, err = readMetadata(fs, "/metadata.txt", schema)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestReadMetadata_LogsOnce(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	var logs bytes.Buffer
	previous := slog.Default()
	require.NoError(t, common.SetupLogger(&logs, slog.LevelInfo, "console"))
	t.Cleanup(func() { slog.SetDefault(previous) })

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/metadata.txt", []byte("in_topic\tdoc_in\nCasework\ta.txt\n"), 0o644))
	schema, err := model.SchemaByName("css")
	require.NoError(t, err)

	md, err := readMetadata(fs, "/metadata.txt", schema)
	require.NoError(t, err)
	assert.Len(t, md.Records, 1)
	assert.Equal(t, 1, strings.Count(logs.String(), "Read metadata"))
}

func TestLoadAppraisalLog_RequiresReferenceColumns(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := filepath.FromSlash("/out/appraisal_delete_log.csv")
	require.NoError(t, afero.WriteFile(fs, path, []byte("in_topic,Appraisal_Category\nCasework,Casework\n"), 0o644))

	schema, err := model.SchemaByName("css")
	require.NoError(t, err)

	_, err = loadAppraisalLog(fs, path, schema)
	assert.ErrorIs(t, err, common.ErrMissingColumns)
}

func TestLoadAppraisalLog_ReadsRows(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := filepath.FromSlash("/out/appraisal_delete_log.csv")
	require.NoError(t, afero.WriteFile(fs, path, []byte("in_topic,doc_in,Appraisal_Category\nCasework,a.txt,Casework\n"), 0o644))

	schema, err := model.SchemaByName("css")
	require.NoError(t, err)

	rows, err := loadAppraisalLog(fs, path, schema)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "a.txt", rows[0].Record.Field("doc_in"))
}
