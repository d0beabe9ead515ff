package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinCategories(t *testing.T) {
	tests := []struct {
		name string
		want string
		in   []Category
	}{
		{name: "sorted regardless of input order", in: []Category{CategoryRecommendation, CategoryCasework}, want: "Casework|Recommendation"},
		{name: "already sorted", in: []Category{CategoryCasework, CategoryRecommendation}, want: "Casework|Recommendation"},
		{name: "duplicates collapse", in: []Category{CategoryJobApplication, CategoryJobApplication}, want: "JobApplication"},
		{name: "blank names dropped", in: []Category{"", CategoryCasework}, want: "Casework"},
		{name: "empty", in: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinCategories(tt.in))
		})
	}
}

func TestSplitCategories(t *testing.T) {
	assert.Equal(t,
		[]Category{CategoryAcademyApplication, CategoryCasework},
		SplitCategories(" Casework | AcademyApplication |Casework"))
	assert.Empty(t, SplitCategories(""))
}

func TestClassifiedRecord_CategoryField(t *testing.T) {
	rec := ClassifiedRecord{Categories: []Category{CategoryRecommendation, CategoryCasework, CategoryAcademyApplication}}
	assert.Equal(t, "AcademyApplication|Casework|Recommendation", rec.CategoryField())
}
