package audit

import (
	"strconv"

	"github.com/Veraticus/appraise/internal/model"
)

// LogSummary tallies an audit log read back from disk.
type LogSummary struct {
	ByCategory   map[string]int
	Unrecognized []string
	Attempts     int
	Deleted      int
	NotFound     int
	SizeKB       float64
}

// Summarize tallies entries. A row counts as deleted when it carries a digest;
// a multi-category label counts toward each of its categories.
func Summarize(entries []Entry) LogSummary {
	s := LogSummary{ByCategory: make(map[string]int)}

	for _, e := range entries {
		s.Attempts++
		switch {
		case e.Notes == NoteNotFound:
			s.NotFound++
		case e.Notes == NoteUnrecognizedPath:
			s.Unrecognized = append(s.Unrecognized, e.File)
		case e.MD5 != "":
			s.Deleted++
			if kb, err := strconv.ParseFloat(e.SizeKB, 64); err == nil {
				s.SizeKB += kb
			}
			for _, c := range model.SplitCategories(e.Notes) {
				s.ByCategory[c.String()]++
			}
		}
	}
	return s
}
