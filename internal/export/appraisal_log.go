package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Veraticus/appraise/internal/classification"
	"github.com/Veraticus/appraise/internal/model"
	"github.com/spf13/afero"
)

// Appraisal artifact names and the column appended to every row.
const (
	DeleteLogName  = "appraisal_delete_log.csv"
	CheckLogName   = "appraisal_check_log.csv"
	CategoryColumn = "Appraisal_Category"
)

// AppraisalFiles are the paths written by WriteAppraisal.
type AppraisalFiles struct {
	DeleteLog string
	CheckLog  string
}

// WriteAppraisal writes the delete and check logs into dir. Each row is the
// original record followed by its category field.
func WriteAppraisal(fs afero.Fs, dir string, header *model.Header, a classification.Appraisal) (AppraisalFiles, error) {
	if err := fs.MkdirAll(dir, 0o750); err != nil {
		return AppraisalFiles{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	files := AppraisalFiles{
		DeleteLog: filepath.Join(dir, DeleteLogName),
		CheckLog:  filepath.Join(dir, CheckLogName),
	}

	deleteRows := make([][]string, len(a.Rows))
	for i, row := range a.Rows {
		deleteRows[i] = append(row.Record.Fields(), row.CategoryField())
	}
	if err := writeRows(fs, files.DeleteLog, header, deleteRows); err != nil {
		return files, err
	}

	checkRows := make([][]string, len(a.CheckLog))
	for i, e := range a.CheckLog {
		checkRows[i] = append(e.Record.Fields(), e.Category.String())
	}
	if err := writeRows(fs, files.CheckLog, header, checkRows); err != nil {
		return files, err
	}

	return files, nil
}

func writeRows(fs afero.Fs, path string, header *model.Header, rows [][]string) (err error) {
	f, err := fs.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, closeErr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(append(header.Columns(), CategoryColumn)); err != nil {
		return fmt.Errorf("failed to write header to %s: %w", path, err)
	}
	width := header.Len()
	for _, row := range rows {
		if len(row) != width+1 {
			// Pad or trim the record portion to the header width.
			fixed := make([]string, width+1)
			copy(fixed[:width], row[:len(row)-1])
			fixed[width] = row[len(row)-1]
			row = fixed
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row to %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}

// ReadAppraisalLog loads a delete log written by an earlier run. The returned
// records keep every original column, so document paths can be resolved again.
func ReadAppraisalLog(fs afero.Fs, path string) ([]model.ClassifiedRecord, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open appraisal log: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	cr := csv.NewReader(f)
	columns, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read appraisal log header: %w", err)
	}
	header := model.NewHeader(columns)
	if !header.Has(CategoryColumn) {
		return nil, fmt.Errorf("%s has no %s column", path, CategoryColumn)
	}

	var rows []model.ClassifiedRecord
	for i := 0; ; i++ {
		values, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read appraisal log row %d: %w", i+1, err)
		}

		rec := model.NewRecord(header, values)
		cats := model.SplitCategories(rec.Field(CategoryColumn))
		if len(cats) == 0 {
			continue
		}
		rows = append(rows, model.ClassifiedRecord{Record: rec, Categories: cats, Index: i})
	}
	return rows, nil
}
