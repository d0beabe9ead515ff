package config

import (
	"strings"
	"testing"

	"github.com/Veraticus/appraise/internal/common"
	"github.com/Veraticus/appraise/internal/model"
	"github.com/Veraticus/appraise/internal/pattern"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func viperFromYAML(t *testing.T, doc string) *viper.Viper {
	t.Helper()
	v := viper.New()
	if doc == "" {
		return v
	}
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(doc)))
	return v
}

func TestLoadSchema(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		wantName string
		wantErr  error
	}{
		{name: "default preset", yaml: "", wantName: "css"},
		{name: "named preset", yaml: "schema:\n  preset: CMS\n", wantName: "cms"},
		{name: "unknown preset", yaml: "schema:\n  preset: ledger\n", wantErr: common.ErrInvalidConfig},
		{
			name: "custom schema",
			yaml: `schema:
  topic: [subject]
  text: [body]
  document_name: [attachment]
  inbound_ref: received
  outbound_ref: sent
`,
			wantName: "custom",
		},
		{
			name:    "custom schema without searched columns",
			yaml:    "schema:\n  topic: []\n  inbound_ref: received\n",
			wantErr: common.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema, err := LoadSchema(viperFromYAML(t, tt.yaml))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, schema.Name)
		})
	}
}

func TestLoadSchema_CustomColumns(t *testing.T) {
	v := viperFromYAML(t, `schema:
  name: cts
  topic: [subject]
  text: [body, reply]
  inbound_ref: received
`)
	schema, err := LoadSchema(v)
	require.NoError(t, err)

	assert.Equal(t, "cts", schema.Name)
	assert.Equal(t, []string{"subject"}, schema.Topic)
	assert.Equal(t, []string{"body", "reply"}, schema.Text)
	assert.Equal(t, "received", schema.InboundRef)
	assert.Empty(t, schema.OutboundRef)
}

func TestLoadCategoryRules_Default(t *testing.T) {
	defs, err := LoadCategoryRules(viper.New())
	require.NoError(t, err)
	assert.Equal(t, pattern.DefaultRules(), defs)
}

func TestLoadCategoryRules_FromConfig(t *testing.T) {
	v := viperFromYAML(t, `categories:
  - category: Grant
    root: grant
    rules:
      - name: grant topic
        role: topic
        kind: contains
        terms: [grant request, grant app]
      - name: grant doc
        role: document_name
        kind: prefix
        terms: [grant_]
`)
	defs, err := LoadCategoryRules(v)
	require.NoError(t, err)
	require.Len(t, defs, 1)

	assert.Equal(t, model.Category("Grant"), defs[0].Category)
	assert.Equal(t, "grant", defs[0].Root)
	require.Len(t, defs[0].Rules, 2)
	assert.Equal(t, model.RoleTopic, defs[0].Rules[0].Role)
	assert.Equal(t, model.MatchContains, defs[0].Rules[0].Kind)
	assert.Equal(t, []string{"grant request", "grant app"}, defs[0].Rules[0].Terms)
	assert.Equal(t, model.MatchPrefix, defs[0].Rules[1].Kind)
}

func TestLoadCategoryRules_Empty(t *testing.T) {
	v := viperFromYAML(t, "categories: []\n")
	_, err := LoadCategoryRules(v)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestValidateExportRoot(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/export/documents", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/export/readme.txt", []byte("x"), 0o644))

	got, err := ValidateExportRoot(fs, "/export")
	require.NoError(t, err)
	assert.Equal(t, "/export", got)

	for _, root := range []string{"", "/missing", "/export/readme.txt"} {
		_, err := ValidateExportRoot(fs, root)
		assert.ErrorIs(t, err, common.ErrInvalidExportRoot, "root %q", root)
	}
}
