package common

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: "", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetupLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	require.NoError(t, SetupLogger(&buf, slog.LevelInfo, "json"))
	LogWarn("path skipped", Fields{"field": "doc_out"})
	LogError(errors.New("boom"), "hash failed", Fields{"file": "a.txt"})
	assert.Contains(t, buf.String(), `"msg":"path skipped"`)
	assert.Contains(t, buf.String(), `"field":"doc_out"`)
	assert.Contains(t, buf.String(), `"error":"boom"`)

	assert.ErrorIs(t, SetupLogger(&buf, slog.LevelInfo, "xml"), ErrInvalidConfig)
}

func TestUserErrorAndIsFatal(t *testing.T) {
	err := NewUserError("Export root is not a directory", ErrInvalidExportRoot)
	assert.Equal(t, "Export root is not a directory: invalid export root", err.Error())
	assert.ErrorIs(t, err, ErrInvalidExportRoot)

	assert.True(t, IsFatal(NewUserError("x", ErrAuditWrite)))
	assert.True(t, IsFatal(ErrDeletion))
	assert.False(t, IsFatal(ErrMalformedRow))
}
