package main

import (
	"bytes"
	"testing"

	"github.com/Veraticus/appraise/internal/config"
	"github.com/Veraticus/appraise/internal/pattern"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRulesYAML_LoadsBack(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRulesYAML(&buf, pattern.DefaultRules()))
	assert.Contains(t, buf.String(), "categories:")

	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(&buf))

	defs, err := config.LoadCategoryRules(v)
	require.NoError(t, err)
	assert.Equal(t, pattern.DefaultRules(), defs)
}
