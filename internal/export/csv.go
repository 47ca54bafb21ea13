// Package export renders a user's OCR history as CSV or XLSX downloads.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"ocrdesk/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the header row shared by every format.
var columns = []string{
	"Record ID",
	"Status",
	"Language",
	"Confidence",
	"Image Path",
	"Extracted Text",
	"Created At",
}

// Format identifies an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat maps a query value to a Format, defaulting to CSV.
func ParseFormat(s string) (Format, bool) {
	switch Format(s) {
	case "", FormatCSV:
		return FormatCSV, true
	case FormatXLSX:
		return FormatXLSX, true
	default:
		return "", false
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Writer wraps csv.Writer for exporting OCR records as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRecords converts records to CSV rows and writes them.
func (w *Writer) WriteRecords(records []domain.OcrRecord) error {
	for i := range records {
		if err := w.csv.Write(recordToRow(&records[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// WriteCSV writes a BOM, the header and all records to w.
func WriteCSV(w io.Writer, records []domain.OcrRecord) error {
	if _, err := w.Write(BOM); err != nil {
		return fmt.Errorf("writing bom: %w", err)
	}
	cw := NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := cw.WriteRecords(records); err != nil {
		return fmt.Errorf("writing records: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// BuildFilename returns the download name for an export made at t.
func BuildFilename(f Format, t time.Time) string {
	return fmt.Sprintf("ocr_history_%s.%s", t.Format("2006-01-02"), f)
}

func recordToRow(rec *domain.OcrRecord) []string {
	row := make([]string, len(columns))
	row[0] = rec.ID.String()
	row[1] = string(rec.Status)
	row[2] = rec.Language
	if rec.Confidence != nil {
		row[3] = strconv.FormatFloat(*rec.Confidence, 'f', 2, 64)
	}
	row[4] = rec.ImagePath
	if rec.ExtractedText != nil {
		row[5] = *rec.ExtractedText
	}
	row[6] = rec.CreatedAt.UTC().Format(time.RFC3339)
	return row
}
