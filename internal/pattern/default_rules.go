package pattern

import "github.com/Veraticus/appraise/internal/model"

// DefaultRules returns the built-in vocabulary for every appraisal category.
// Within a category, rules are listed in evaluation order.
func DefaultRules() []CategoryRules {
	return []CategoryRules{
		{
			Category: model.CategoryAcademyApplication,
			Root:     "academy",
			Rules: []Rule{
				{Name: "academy-topic", Role: model.RoleTopic, Kind: model.MatchContains, Terms: []string{"academy app", "academy nom", "service academ"}},
				{Name: "academy-topic-exact", Role: model.RoleTopic, Kind: model.MatchExact, Terms: []string{"academy", "academies"}},
				{Name: "academy-text", Role: model.RoleText, Kind: model.MatchContains, Terms: []string{"academy nomination", "academy application"}},
				{Name: "academy-docname-prefix", Role: model.RoleDocumentName, Kind: model.MatchPrefix, Terms: []string{"acad"}},
				{Name: "academy-docname", Role: model.RoleDocumentName, Kind: model.MatchContains, Terms: []string{"academy"}},
			},
		},
		{
			Category: model.CategoryCasework,
			Root:     "case",
			Rules: []Rule{
				{Name: "casework-topic", Role: model.RoleTopic, Kind: model.MatchContains, Terms: []string{"casework", "case work"}},
				{Name: "casework-topic-exact", Role: model.RoleTopic, Kind: model.MatchExact, Terms: []string{"case", "cases", "case file"}},
				{Name: "casework-text", Role: model.RoleText, Kind: model.MatchContains, Terms: []string{"casework", "case work", "privacy release"}},
				{Name: "casework-docname-prefix", Role: model.RoleDocumentName, Kind: model.MatchPrefix, Terms: []string{"case_", "case-"}},
				{Name: "casework-docname", Role: model.RoleDocumentName, Kind: model.MatchContains, Terms: []string{"casework"}},
			},
		},
		{
			Category: model.CategoryJobApplication,
			Root:     "job",
			Rules: []Rule{
				{Name: "job-topic", Role: model.RoleTopic, Kind: model.MatchContains, Terms: []string{"job app", "job request", "employment app"}},
				{Name: "job-topic-exact", Role: model.RoleTopic, Kind: model.MatchExact, Terms: []string{"job", "resume"}},
				{Name: "job-text", Role: model.RoleText, Kind: model.MatchContains, Terms: []string{"job application", "job request", "my resume"}},
				{Name: "job-docname-prefix", Role: model.RoleDocumentName, Kind: model.MatchPrefix, Terms: []string{"job_app", "jobapp"}},
				{Name: "job-docname", Role: model.RoleDocumentName, Kind: model.MatchContains, Terms: []string{"resume"}},
			},
		},
		{
			Category: model.CategoryRecommendation,
			Root:     "recommend",
			Rules: []Rule{
				{Name: "recommendation-topic", Role: model.RoleTopic, Kind: model.MatchContains, Terms: []string{"recommendation", "reference letter"}},
				{Name: "recommendation-topic-exact", Role: model.RoleTopic, Kind: model.MatchExact, Terms: []string{"rec", "recs"}},
				{Name: "recommendation-text", Role: model.RoleText, Kind: model.MatchContains, Terms: []string{"letter of recommendation", "recommendation letter"}},
				{Name: "recommendation-docname-prefix", Role: model.RoleDocumentName, Kind: model.MatchPrefix, Terms: []string{"rec_"}},
				{Name: "recommendation-docname", Role: model.RoleDocumentName, Kind: model.MatchContains, Terms: []string{"recommendation"}},
			},
		},
	}
}
