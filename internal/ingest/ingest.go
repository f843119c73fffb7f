// Package ingest reads lead tables from CSV and XLSX files.
package ingest

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// Table is a parsed input sheet: one header row plus data rows. Rows may
// have fewer cells than the header (ragged input is tolerated).
type Table struct {
	Headers []string
	Rows    [][]string
}

// Truncate caps the table at n data rows. Zero or negative n is a no-op.
func (t *Table) Truncate(n int) {
	if n > 0 && n < len(t.Rows) {
		t.Rows = t.Rows[:n]
	}
}

// Cell returns the trimmed value at (row, col), or "" when the row is
// ragged and the column does not exist.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// ColumnIndex returns the index of the first header equal to name, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// ReadTable reads a CSV or XLSX file, dispatching on the file extension.
func ReadTable(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(path)
	case ".xlsx":
		return ReadXLSX(path, XLSXOptions{})
	default:
		return nil, eris.Errorf("ingest: unsupported file type %q (want .csv or .xlsx)", filepath.Ext(path))
	}
}
