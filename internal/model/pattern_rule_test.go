package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchRule_Matches(t *testing.T) {
	tests := []struct {
		name  string
		value string
		rule  MatchRule
		want  bool
	}{
		{
			name:  "contains is case-insensitive",
			rule:  MatchRule{Kind: MatchContains, Terms: []string{"casework"}},
			value: "Constituent CASEWORK - IRS",
			want:  true,
		},
		{
			name:  "exact requires whole value",
			rule:  MatchRule{Kind: MatchExact, Terms: []string{"case"}},
			value: "I am on the case",
			want:  false,
		},
		{
			name:  "exact ignores surrounding space",
			rule:  MatchRule{Kind: MatchExact, Terms: []string{"case"}},
			value: "  Case ",
			want:  true,
		},
		{
			name:  "prefix",
			rule:  MatchRule{Kind: MatchPrefix, Terms: []string{"acad"}},
			value: "Acad_Nomination_2009.doc",
			want:  true,
		},
		{
			name:  "prefix does not match mid-string",
			rule:  MatchRule{Kind: MatchPrefix, Terms: []string{"acad"}},
			value: "old_acad.doc",
			want:  false,
		},
		{
			name:  "blank never matches",
			rule:  MatchRule{Kind: MatchContains, Terms: []string{""}},
			value: "   ",
			want:  false,
		},
		{
			name:  "unknown kind never matches",
			rule:  MatchRule{Kind: "regex", Terms: []string{"case"}},
			value: "case",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.Normalized().Matches(tt.value))
		})
	}
}

func TestMatchRule_Validate(t *testing.T) {
	valid := MatchRule{Name: "topic", Role: RoleTopic, Kind: MatchExact, Terms: []string{"Case"}}
	require.NoError(t, valid.Validate())

	badRole := valid
	badRole.Role = "subject"
	assert.ErrorContains(t, badRole.Validate(), "invalid role")

	badKind := valid
	badKind.Kind = "fuzzy"
	assert.ErrorContains(t, badKind.Validate(), "invalid match kind")

	noTerms := valid
	noTerms.Terms = []string{" ", ""}
	assert.ErrorContains(t, noTerms.Validate(), "at least one term")
}
