package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/Gokul-1737/mk-glass-dashboard/pkg/enums"
)

// ContentTypeCSV is the media type of a generated export payload.
const ContentTypeCSV = "text/csv; charset=utf-8"

// Document is an ordered dataset ready for formatting: explicit column order
// and one string slice per record.
type Document struct {
	Dataset enums.ExportDataset
	Columns []string
	Rows    [][]string
}

// Result carries the formatted payload. Empty marks a header-only export of
// a dataset with no records; it is a condition, not an error.
type Result struct {
	Filename    string
	ContentType string
	Payload     []byte
	RowCount    int
	Empty       bool
}

// FormatCSV renders the document as an RFC 4180 payload. The filename embeds
// the export day so repeated downloads sort naturally.
func FormatCSV(doc Document, day time.Time) (*Result, error) {
	if !doc.Dataset.IsValid() {
		return nil, fmt.Errorf("unknown export dataset %q", doc.Dataset)
	}
	if len(doc.Columns) == 0 {
		return nil, fmt.Errorf("export document has no columns")
	}
	for i, row := range doc.Rows {
		if len(row) != len(doc.Columns) {
			return nil, fmt.Errorf("row %d has %d fields, want %d", i, len(row), len(doc.Columns))
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(doc.Columns); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	if err := w.WriteAll(doc.Rows); err != nil {
		return nil, fmt.Errorf("write rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	return &Result{
		Filename:    fmt.Sprintf("%s_%s.csv", doc.Dataset, day.UTC().Format("2006-01-02")),
		ContentType: ContentTypeCSV,
		Payload:     buf.Bytes(),
		RowCount:    len(doc.Rows),
		Empty:       len(doc.Rows) == 0,
	}, nil
}
