package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("APPRAISE_TEST_DIR", "/srv/archive")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "home", in: "~", want: home},
		{name: "home relative", in: "~/exports", want: filepath.Join(home, "exports")},
		{name: "env var", in: "$APPRAISE_TEST_DIR/logs", want: "/srv/archive/logs"},
		{name: "plain", in: "/data/export", want: "/data/export"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}
