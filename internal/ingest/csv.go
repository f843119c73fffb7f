package ingest

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// ReadCSV reads a CSV file into a Table. The first record is the header.
// Quoting is lenient and rows may have variable field counts; all cells
// are whitespace-trimmed.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "ingest: open csv")
	}
	defer f.Close() //nolint:errcheck

	return parseCSV(f)
}

// ParseCSV reads CSV content from a stream into a Table. Used by the
// serve command for uploaded files.
func ParseCSV(r io.Reader) (*Table, error) {
	return parseCSV(r)
}

func parseCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1 // allow variable fields

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "ingest: read csv")
	}
	if len(records) == 0 {
		return nil, eris.New("ingest: csv is empty")
	}

	for _, rec := range records {
		for i, field := range rec {
			rec[i] = strings.TrimSpace(field)
		}
	}

	return &Table{
		Headers: records[0],
		Rows:    records[1:],
	}, nil
}
