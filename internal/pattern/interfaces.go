// Package pattern evaluates per-category rule lists against correspondence records.
package pattern

import (
	"github.com/Veraticus/appraise/internal/model"
)

// CategoryMatcher tests records against one category's ordered rules.
type CategoryMatcher interface {
	// Category returns the category this matcher claims records for.
	Category() model.Category
	// Match partitions records into claimed and remaining indices and collects near misses.
	Match(records []model.Record) MatchResult
}

// Rule is an alias to the model.MatchRule type for convenience.
type Rule = model.MatchRule

// CategoryRules is a category's vocabulary: its ordered rules and the bare
// root keyword used to spot near misses.
type CategoryRules struct {
	Category model.Category `mapstructure:"category"`
	Root     string         `mapstructure:"root"`
	Rules    []Rule         `mapstructure:"rules"`
}

// Claim records which rule took ownership of a record.
type Claim struct {
	RuleName string
	Index    int
	Rule     int
}

// MatchResult is the outcome of one matcher run. Indices refer to the input
// slice, which is never modified.
type MatchResult struct {
	Category        model.Category
	Claims          []Claim
	Remainder       []int
	CheckCandidates []int
}

// Matched returns the claimed record indices in input order.
func (r MatchResult) Matched() []int {
	out := make([]int, len(r.Claims))
	for i, c := range r.Claims {
		out[i] = c.Index
	}
	return out
}
