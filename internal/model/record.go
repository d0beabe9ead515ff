// Package model defines the core data structures for the appraisal application.
package model

import "strings"

// Header is the shared, ordered column layout of a metadata export.
// Lookups are case-insensitive on trimmed column names.
type Header struct {
	index   map[string]int
	columns []string
}

// NewHeader builds a header from the export's column names.
func NewHeader(columns []string) *Header {
	h := &Header{
		columns: make([]string, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		h.columns[i] = c
		key := normalizeColumn(c)
		if _, dup := h.index[key]; !dup {
			h.index[key] = i
		}
	}
	return h
}

// Columns returns the column names in export order.
func (h *Header) Columns() []string {
	out := make([]string, len(h.columns))
	copy(out, h.columns)
	return out
}

// Len returns the number of columns.
func (h *Header) Len() int {
	return len(h.columns)
}

// Has reports whether the header contains the named column.
func (h *Header) Has(column string) bool {
	_, ok := h.index[normalizeColumn(column)]
	return ok
}

// Position returns the position of the named column, or -1.
func (h *Header) Position(column string) int {
	if i, ok := h.index[normalizeColumn(column)]; ok {
		return i
	}
	return -1
}

func normalizeColumn(c string) string {
	return strings.ToLower(strings.TrimSpace(c))
}

// Record is one correspondence row. Records carry no primary key; callers
// identify them by their position in the input sequence.
type Record struct {
	Header *Header
	Values []string
}

// NewRecord pairs values with a header. Missing trailing values read as blank.
func NewRecord(header *Header, values []string) Record {
	return Record{Header: header, Values: values}
}

// Field returns the named column's value, or "" when the column is absent.
func (r Record) Field(column string) string {
	if r.Header == nil || column == "" {
		return ""
	}
	i := r.Header.Position(column)
	if i < 0 || i >= len(r.Values) {
		return ""
	}
	return r.Values[i]
}

// Fields returns the values padded to the header length, in column order.
func (r Record) Fields() []string {
	n := len(r.Values)
	if r.Header != nil && r.Header.Len() > n {
		n = r.Header.Len()
	}
	out := make([]string, n)
	copy(out, r.Values)
	return out
}
