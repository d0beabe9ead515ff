package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord_Field(t *testing.T) {
	header := NewHeader([]string{"In_Topic", " doc_in ", "doc_out"})

	tests := []struct {
		name   string
		column string
		want   string
		values []string
	}{
		{name: "case-insensitive column", column: "in_topic", values: []string{"Casework", "a.txt", "b.txt"}, want: "Casework"},
		{name: "trimmed header name", column: "DOC_IN", values: []string{"", "a.txt", ""}, want: "a.txt"},
		{name: "absent column", column: "group_name", values: []string{"x", "y", "z"}, want: ""},
		{name: "short row", column: "doc_out", values: []string{"x"}, want: ""},
		{name: "empty column name", column: "", values: []string{"x", "y", "z"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewRecord(header, tt.values)
			assert.Equal(t, tt.want, rec.Field(tt.column))
		})
	}
}

func TestRecord_FieldsPadsToHeader(t *testing.T) {
	rec := NewRecord(NewHeader([]string{"a", "b", "c"}), []string{"1"})
	assert.Equal(t, []string{"1", "", ""}, rec.Fields())

	var zero Record
	assert.Empty(t, zero.Field("a"))
}

func TestHeader_DuplicateColumnsKeepFirst(t *testing.T) {
	h := NewHeader([]string{"topic", "Topic"})
	assert.Equal(t, 0, h.Position("TOPIC"))
	assert.Equal(t, -1, h.Position("missing"))
	assert.Equal(t, []string{"topic", "Topic"}, h.Columns())
}
