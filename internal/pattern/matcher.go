package pattern

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Veraticus/appraise/internal/model"
)

const unclaimed = -1

// rolePriority orders rules: dedicated topic fields, then free text, then
// filename-style fields.
var rolePriority = map[model.Role]int{
	model.RoleTopic:        0,
	model.RoleText:         1,
	model.RoleDocumentName: 2,
}

// MatcherImpl implements CategoryMatcher for one category over one schema.
type MatcherImpl struct {
	category model.Category
	root     string
	schema   model.Schema
	rules    []Rule
}

// NewMatcher validates and normalizes a category's rules for the given schema.
func NewMatcher(def CategoryRules, schema model.Schema) (*MatcherImpl, error) {
	if def.Category == "" {
		return nil, fmt.Errorf("category name is required")
	}
	root := strings.ToLower(strings.TrimSpace(def.Root))
	if root == "" {
		return nil, fmt.Errorf("category %s: root keyword is required", def.Category)
	}

	rules := make([]Rule, 0, len(def.Rules))
	for i, r := range def.Rules {
		if r.Name == "" {
			r.Name = fmt.Sprintf("%s-%d", strings.ToLower(string(def.Category)), i+1)
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("category %s: %w", def.Category, err)
		}
		rules = append(rules, r.Normalized())
	}

	sort.SliceStable(rules, func(i, j int) bool {
		return rolePriority[rules[i].Role] < rolePriority[rules[j].Role]
	})

	return &MatcherImpl{
		category: def.Category,
		root:     root,
		schema:   schema,
		rules:    rules,
	}, nil
}

// Category returns the category this matcher claims records for.
func (m *MatcherImpl) Category() model.Category {
	return m.category
}

// Rules returns the normalized rules in evaluation order.
func (m *MatcherImpl) Rules() []Rule {
	out := make([]Rule, len(m.rules))
	copy(out, m.rules)
	return out
}

// Match runs every rule in order. A record claimed by an earlier rule is not
// offered to later rules of this matcher. Unclaimed records mentioning the
// root keyword in any searched field become check candidates.
func (m *MatcherImpl) Match(records []model.Record) MatchResult {
	owner := make([]int, len(records))
	for i := range owner {
		owner[i] = unclaimed
	}

	for ruleIdx, rule := range m.rules {
		columns := m.schema.Columns(rule.Role)
		if len(columns) == 0 {
			continue
		}
		for i, rec := range records {
			if owner[i] != unclaimed {
				continue
			}
			if matchesAny(rec, columns, rule) {
				owner[i] = ruleIdx
			}
		}
	}

	result := MatchResult{Category: m.category}
	searched := m.schema.SearchedColumns()
	for i, ruleIdx := range owner {
		if ruleIdx != unclaimed {
			result.Claims = append(result.Claims, Claim{
				Index:    i,
				Rule:     ruleIdx,
				RuleName: m.rules[ruleIdx].Name,
			})
			continue
		}
		result.Remainder = append(result.Remainder, i)
		if mentions(records[i], searched, m.root) {
			result.CheckCandidates = append(result.CheckCandidates, i)
		}
	}

	return result
}

// matchesAny checks the rule against each column of its role.
func matchesAny(rec model.Record, columns []string, rule Rule) bool {
	for _, col := range columns {
		if rule.Matches(rec.Field(col)) {
			return true
		}
	}
	return false
}

// mentions checks whether any column contains the root keyword.
func mentions(rec model.Record, columns []string, root string) bool {
	for _, col := range columns {
		v := rec.Field(col)
		if v == "" {
			continue
		}
		if strings.Contains(strings.ToLower(v), root) {
			return true
		}
	}
	return false
}
