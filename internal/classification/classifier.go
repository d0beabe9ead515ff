// Package classification runs every category matcher over one record set and
// merges the per-category results into an appraisal.
package classification

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/appraise/internal/model"
	"github.com/Veraticus/appraise/internal/pattern"
)

// Appraisal is the merged result of classifying one record set.
type Appraisal struct {
	Rows     []model.ClassifiedRecord
	CheckLog []model.CheckLogEntry
	Total    int
}

// CountByCategory returns how many rows each category contributed to. A row
// matched by two categories counts toward both.
func (a Appraisal) CountByCategory() map[model.Category]int {
	counts := make(map[model.Category]int)
	for _, row := range a.Rows {
		for _, c := range row.Categories {
			counts[c]++
		}
	}
	return counts
}

// Classifier runs a fixed set of category matchers.
type Classifier struct {
	matchers []pattern.CategoryMatcher
}

// NewClassifier creates a classifier over the given matchers.
func NewClassifier(matchers ...pattern.CategoryMatcher) *Classifier {
	return &Classifier{matchers: matchers}
}

// NewClassifierFromRules builds one matcher per category vocabulary.
func NewClassifierFromRules(defs []pattern.CategoryRules, schema model.Schema) (*Classifier, error) {
	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}

	seen := make(map[model.Category]bool, len(defs))
	matchers := make([]pattern.CategoryMatcher, 0, len(defs))
	for _, def := range defs {
		if seen[def.Category] {
			return nil, fmt.Errorf("duplicate rules for category %s", def.Category)
		}
		seen[def.Category] = true

		m, err := pattern.NewMatcher(def, schema)
		if err != nil {
			return nil, err
		}
		matchers = append(matchers, m)
	}
	return NewClassifier(matchers...), nil
}

// NewDefaultClassifier builds a classifier over the built-in vocabulary.
func NewDefaultClassifier(schema model.Schema) (*Classifier, error) {
	return NewClassifierFromRules(pattern.DefaultRules(), schema)
}

// Classify runs every matcher over the same original records; categories never
// consume one another's remainders. Rows keep input order and carry the sorted
// union of matching categories.
func (c *Classifier) Classify(records []model.Record) Appraisal {
	appraisal := Appraisal{Total: len(records)}
	if len(records) == 0 {
		return appraisal
	}

	matchedBy := make([][]model.Category, len(records))
	for _, m := range c.matchers {
		result := m.Match(records)

		for _, claim := range result.Claims {
			matchedBy[claim.Index] = append(matchedBy[claim.Index], result.Category)
		}
		for _, idx := range result.CheckCandidates {
			appraisal.CheckLog = append(appraisal.CheckLog, model.CheckLogEntry{
				Record:   records[idx],
				Category: result.Category,
				Index:    idx,
			})
		}

		slog.Debug("Category matched",
			"category", result.Category,
			"matched", len(result.Claims),
			"check_candidates", len(result.CheckCandidates))
	}

	for i, cats := range matchedBy {
		if len(cats) == 0 {
			continue
		}
		appraisal.Rows = append(appraisal.Rows, model.ClassifiedRecord{
			Record:     records[i],
			Categories: model.NormalizeCategories(cats),
			Index:      i,
		})
	}

	return appraisal
}
