package model

import (
	"fmt"
	"strings"
)

// MatchKind selects how a rule compares its terms with a field value.
type MatchKind string

// Match kinds. All comparisons are case-insensitive.
const (
	MatchContains MatchKind = "contains"
	MatchExact    MatchKind = "exact"
	MatchPrefix   MatchKind = "prefix"
)

// MatchRule is a predicate over every column of one field role.
type MatchRule struct {
	Name  string    `json:"name"`
	Role  Role      `json:"role"`
	Kind  MatchKind `json:"kind"`
	Terms []string  `json:"terms"`
}

// Matches reports whether value satisfies the rule. Blank values never match.
// Terms are expected lower-cased; see Normalized.
func (r MatchRule) Matches(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return false
	}

	for _, term := range r.Terms {
		switch r.Kind {
		case MatchContains:
			if strings.Contains(v, term) {
				return true
			}
		case MatchExact:
			if v == term {
				return true
			}
		case MatchPrefix:
			if strings.HasPrefix(v, term) {
				return true
			}
		}
	}
	return false
}

// Normalized returns a copy with lower-cased, trimmed, non-empty terms.
func (r MatchRule) Normalized() MatchRule {
	terms := make([]string, 0, len(r.Terms))
	for _, t := range r.Terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			terms = append(terms, t)
		}
	}
	r.Terms = terms
	return r
}

// Validate ensures the rule is usable.
func (r MatchRule) Validate() error {
	switch r.Role {
	case RoleTopic, RoleText, RoleDocumentName:
	default:
		return fmt.Errorf("rule %q: invalid role %q", r.Name, r.Role)
	}

	switch r.Kind {
	case MatchContains, MatchExact, MatchPrefix:
	default:
		return fmt.Errorf("rule %q: invalid match kind %q", r.Name, r.Kind)
	}

	if len(r.Normalized().Terms) == 0 {
		return fmt.Errorf("rule %q: at least one term is required", r.Name)
	}
	return nil
}
