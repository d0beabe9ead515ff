package model

// Category is an appraisal category whose records are destroyed.
type Category string

// Appraisal categories.
const (
	CategoryAcademyApplication Category = "AcademyApplication"
	CategoryCasework           Category = "Casework"
	CategoryJobApplication     Category = "JobApplication"
	CategoryRecommendation     Category = "Recommendation"
)

// String returns the persisted category label.
func (c Category) String() string {
	return string(c)
}

// AllCategories returns the built-in categories in alphabetical order.
func AllCategories() []Category {
	return []Category{
		CategoryAcademyApplication,
		CategoryCasework,
		CategoryJobApplication,
		CategoryRecommendation,
	}
}
