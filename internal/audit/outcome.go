package audit

import (
	"math"
	"time"
)

// OutcomeKind classifies a deletion attempt.
type OutcomeKind string

// Attempt outcomes.
const (
	OutcomeDeleted          OutcomeKind = "deleted"
	OutcomeNotFound         OutcomeKind = "not_found"
	OutcomeUnrecognizedPath OutcomeKind = "unrecognized_path"
)

// Outcome is the result of one deletion attempt.
type Outcome struct {
	CreatedAt time.Time
	DeletedAt time.Time
	Kind      OutcomeKind
	Category  string
	MD5       string
	SizeKB    float64
}

// Deleted records a file removed for the given category label.
func Deleted(category string, sizeKB float64, createdAt, deletedAt time.Time, md5 string) Outcome {
	return Outcome{
		Kind:      OutcomeDeleted,
		Category:  category,
		SizeKB:    sizeKB,
		CreatedAt: createdAt,
		DeletedAt: deletedAt,
		MD5:       md5,
	}
}

// NotFound records a resolved path with no file behind it.
func NotFound() Outcome {
	return Outcome{Kind: OutcomeNotFound}
}

// UnrecognizedPath records a metadata value no convention could resolve.
func UnrecognizedPath() Outcome {
	return Outcome{Kind: OutcomeUnrecognizedPath}
}

// SizeKB converts a byte count to kilobytes rounded to one decimal place.
func SizeKB(bytes int64) float64 {
	return math.Round(float64(bytes)/100) / 10
}

func (o Outcome) entry(filePath string) Entry {
	e := Entry{File: filePath}
	switch o.Kind {
	case OutcomeDeleted:
		e.SizeKB = formatKB(o.SizeKB)
		e.DateCreated = formatDate(o.CreatedAt)
		e.DateDeleted = formatDate(o.DeletedAt)
		e.MD5 = o.MD5
		e.Notes = o.Category
	case OutcomeNotFound:
		e.Notes = NoteNotFound
	case OutcomeUnrecognizedPath:
		e.Notes = NoteUnrecognizedPath
	}
	return e
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateFormat)
}
