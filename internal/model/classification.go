package model

import (
	"sort"
	"strings"
)

// CategorySeparator joins category names in persisted classification fields.
const CategorySeparator = "|"

// ClassifiedRecord is a record matched by one or more categories.
type ClassifiedRecord struct {
	Record     Record
	Categories []Category
	Index      int
}

// CategoryField returns the persisted form of the record's categories.
func (c ClassifiedRecord) CategoryField() string {
	return JoinCategories(c.Categories)
}

// CheckLogEntry is a near miss: the record mentions the category's root
// keyword but matched none of its rules.
type CheckLogEntry struct {
	Record   Record
	Category Category
	Index    int
}

// JoinCategories deduplicates, sorts, and pipe-joins category names.
func JoinCategories(categories []Category) string {
	return strings.Join(categoryNames(categories), CategorySeparator)
}

// SplitCategories parses a persisted category field.
func SplitCategories(field string) []Category {
	var out []Category
	for _, part := range strings.Split(field, CategorySeparator) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, Category(part))
		}
	}
	return NormalizeCategories(out)
}

// NormalizeCategories returns the sorted, deduplicated set.
func NormalizeCategories(categories []Category) []Category {
	names := categoryNames(categories)
	out := make([]Category, len(names))
	for i, n := range names {
		out[i] = Category(n)
	}
	return out
}

func categoryNames(categories []Category) []string {
	seen := make(map[Category]struct{}, len(categories))
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		names = append(names, string(c))
	}
	sort.Strings(names)
	return names
}
