package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Role names the part a column plays in matching or deletion.
type Role string

// Field roles.
const (
	RoleTopic        Role = "topic"
	RoleText         Role = "text"
	RoleDocumentName Role = "document_name"
)

// ErrUnknownSchema is returned when a schema preset name is not registered.
var ErrUnknownSchema = errors.New("unknown schema")

// Schema maps field roles onto one export format's column names. Matching
// semantics are the same for every schema; only the names differ.
type Schema struct {
	Name         string   `mapstructure:"name"`
	InboundRef   string   `mapstructure:"inbound_ref"`
	OutboundRef  string   `mapstructure:"outbound_ref"`
	Topic        []string `mapstructure:"topic"`
	Text         []string `mapstructure:"text"`
	DocumentName []string `mapstructure:"document_name"`
}

// Columns returns the columns searched for a role.
func (s Schema) Columns(role Role) []string {
	switch role {
	case RoleTopic:
		return s.Topic
	case RoleText:
		return s.Text
	case RoleDocumentName:
		return s.DocumentName
	}
	return nil
}

// SearchedColumns returns every column any rule may inspect, in role order.
func (s Schema) SearchedColumns() []string {
	out := make([]string, 0, len(s.Topic)+len(s.Text)+len(s.DocumentName))
	out = append(out, s.Topic...)
	out = append(out, s.Text...)
	out = append(out, s.DocumentName...)
	return out
}

// Validate ensures the schema names at least one searched column.
func (s Schema) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("schema name is required")
	}
	if len(s.SearchedColumns()) == 0 {
		return fmt.Errorf("schema %s has no topic, text, or document name columns", s.Name)
	}
	if s.InboundRef == "" && s.OutboundRef == "" {
		return fmt.Errorf("schema %s has no document reference columns", s.Name)
	}
	return nil
}

// MissingColumns lists searched or reference columns the header lacks.
func (s Schema) MissingColumns(h *Header) []string {
	var missing []string
	cols := s.SearchedColumns()
	if s.InboundRef != "" {
		cols = append(cols, s.InboundRef)
	}
	if s.OutboundRef != "" {
		cols = append(cols, s.OutboundRef)
	}
	for _, c := range cols {
		if !h.Has(c) {
			missing = append(missing, c)
		}
	}
	return missing
}

var schemaPresets = map[string]Schema{
	"css": {
		Name:         "css",
		Topic:        []string{"in_topic", "out_topic"},
		Text:         []string{"in_text", "out_text"},
		DocumentName: []string{"in_document_name", "out_document_name"},
		InboundRef:   "doc_in",
		OutboundRef:  "doc_out",
	},
	"cms": {
		Name:         "cms",
		Topic:        []string{"group_name", "code_description"},
		Text:         []string{"correspondence_text"},
		DocumentName: []string{"correspondence_document_name"},
		InboundRef:   "doc_in",
		OutboundRef:  "doc_out",
	},
}

// SchemaByName returns a built-in schema preset.
func SchemaByName(name string) (Schema, error) {
	s, ok := schemaPresets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Schema{}, fmt.Errorf("%w: %q (known: %s)", ErrUnknownSchema, name, strings.Join(SchemaNames(), ", "))
	}
	return s, nil
}

// SchemaNames lists the built-in presets.
func SchemaNames() []string {
	names := make([]string, 0, len(schemaPresets))
	for n := range schemaPresets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
