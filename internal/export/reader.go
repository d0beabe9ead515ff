// Package export reads metadata exports into records and persists appraisal
// results as delimited text.
package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"

	"github.com/Veraticus/appraise/internal/common"
	"github.com/Veraticus/appraise/internal/model"
	"github.com/spf13/afero"
	"golang.org/x/text/encoding/charmap"
)

// Source encodings.
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadOptions controls metadata parsing.
type ReadOptions struct {
	// Delimiter separates fields; exports default to tabs.
	Delimiter rune
}

// Metadata is a parsed export.
type Metadata struct {
	Header   *model.Header
	Encoding string
	Records  []model.Record
	Skipped  int
}

// ReadMetadata parses a delimited metadata file whose first row is the
// header. Input that is not valid UTF-8 is decoded as Windows-1252. Rows whose
// width differs from the header are skipped with a warning.
func ReadMetadata(fs afero.Fs, path string, opts ReadOptions) (*Metadata, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata %s: %w", path, err)
	}

	text, encoding, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode metadata %s: %w", path, err)
	}

	delimiter := opts.Delimiter
	if delimiter == 0 {
		delimiter = '\t'
	}

	md, err := parse(bytes.NewReader(text), delimiter, path)
	if err != nil {
		return nil, err
	}
	md.Encoding = encoding

	slog.Info("Read metadata",
		"path", path,
		"records", len(md.Records),
		"skipped", md.Skipped,
		"encoding", encoding)
	return md, nil
}

// decode normalizes input to UTF-8 without a byte order mark.
func decode(data []byte) ([]byte, string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return data, EncodingUTF8, nil
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return nil, "", err
	}
	return out, EncodingWindows1252, nil
}

func parse(r io.Reader, delimiter rune, path string) (*Metadata, error) {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	columns, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s has no header row", common.ErrMalformedRow, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	md := &Metadata{Header: model.NewHeader(columns)}
	for {
		values, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			md.Skipped++
			slog.Warn("Skipping malformed metadata row", "path", path, "line", parseErr.Line, "error", parseErr.Err)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		if len(values) != md.Header.Len() {
			md.Skipped++
			line, _ := cr.FieldPos(0)
			slog.Warn("Skipping malformed metadata row",
				"path", path,
				"line", line,
				"error", fmt.Errorf("%w: %d fields, header has %d", common.ErrMalformedRow, len(values), md.Header.Len()))
			continue
		}

		md.Records = append(md.Records, model.NewRecord(md.Header, values))
	}

	return md, nil
}
