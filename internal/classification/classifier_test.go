package classification

import (
	"testing"

	"github.com/Veraticus/appraise/internal/model"
	"github.com/Veraticus/appraise/internal/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func records(rows ...map[string]string) []model.Record {
	header := model.NewHeader([]string{"in_topic", "out_topic", "in_text", "out_text", "in_document_name", "out_document_name", "doc_in", "doc_out"})
	out := make([]model.Record, len(rows))
	for i, row := range rows {
		values := make([]string, header.Len())
		for k, v := range row {
			values[header.Position(k)] = v
		}
		out[i] = model.NewRecord(header, values)
	}
	return out
}

func newClassifier(t *testing.T) *Classifier {
	t.Helper()
	schema, err := model.SchemaByName("css")
	require.NoError(t, err)
	c, err := NewDefaultClassifier(schema)
	require.NoError(t, err)
	return c
}

func TestClassify_EmptyInput(t *testing.T) {
	a := newClassifier(t).Classify(nil)
	assert.Empty(t, a.Rows)
	assert.Empty(t, a.CheckLog)
	assert.Zero(t, a.Total)
}

func TestClassify_UnionIsSortedAndDeterministic(t *testing.T) {
	c := newClassifier(t)
	recs := records(
		map[string]string{"in_topic": "Recommendation", "out_topic": "Casework"},
		map[string]string{"in_topic": "Casework", "out_text": "letter of recommendation enclosed"},
	)

	for i := 0; i < 3; i++ {
		a := c.Classify(recs)
		require.Len(t, a.Rows, 2)
		assert.Equal(t, "Casework|Recommendation", a.Rows[0].CategoryField())
		assert.Equal(t, "Casework|Recommendation", a.Rows[1].CategoryField())
	}
}

func TestClassify_CategoriesSeeOriginalRecords(t *testing.T) {
	// A record claimed by Casework is still available to Job.
	a := newClassifier(t).Classify(records(
		map[string]string{"in_topic": "Casework", "in_document_name": "job_application.doc"},
	))

	require.Len(t, a.Rows, 1)
	assert.Equal(t, []model.Category{model.CategoryCasework, model.CategoryJobApplication}, a.Rows[0].Categories)
	assert.Equal(t, 0, a.Rows[0].Index)
}

func TestClassify_NearMissGoesToCheckLogOnly(t *testing.T) {
	a := newClassifier(t).Classify(records(
		map[string]string{"in_topic": "I am on the case", "doc_in": `..\documents\BlobExport\objects\7.txt`},
	))

	assert.Empty(t, a.Rows)
	require.Len(t, a.CheckLog, 1)
	assert.Equal(t, model.CategoryCasework, a.CheckLog[0].Category)
	assert.Equal(t, `..\documents\BlobExport\objects\7.txt`, a.CheckLog[0].Record.Field("doc_in"))
}

func TestClassify_CheckLogAllowsDuplicatesAcrossCategories(t *testing.T) {
	a := newClassifier(t).Classify(records(
		map[string]string{"in_text": "in case the academy writes, good job"},
	))

	assert.Empty(t, a.Rows)
	require.Len(t, a.CheckLog, 3)
	var cats []model.Category
	for _, e := range a.CheckLog {
		assert.Equal(t, 0, e.Index)
		cats = append(cats, e.Category)
	}
	assert.Equal(t, []model.Category{model.CategoryAcademyApplication, model.CategoryCasework, model.CategoryJobApplication}, cats)
}

func TestClassify_RowsRetainOriginalFields(t *testing.T) {
	a := newClassifier(t).Classify(records(
		map[string]string{"in_topic": "Job", "doc_in": `..\documents\BlobExport\objects\9.txt`, "doc_out": `..\documents\BlobExport\formletters\thanks.txt`},
	))

	require.Len(t, a.Rows, 1)
	row := a.Rows[0].Record
	assert.Equal(t, `..\documents\BlobExport\objects\9.txt`, row.Field("doc_in"))
	assert.Equal(t, `..\documents\BlobExport\formletters\thanks.txt`, row.Field("doc_out"))
	assert.Equal(t, map[model.Category]int{model.CategoryJobApplication: 1}, a.CountByCategory())
}

func TestNewClassifierFromRules_RejectsDuplicates(t *testing.T) {
	schema, err := model.SchemaByName("css")
	require.NoError(t, err)

	defs := pattern.DefaultRules()
	defs = append(defs, defs[0])
	_, err = NewClassifierFromRules(defs, schema)
	assert.ErrorContains(t, err, "duplicate rules")

	_, err = NewClassifierFromRules(pattern.DefaultRules(), model.Schema{})
	assert.ErrorContains(t, err, "invalid schema")
}
