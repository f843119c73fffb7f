package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leads.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeCSV(t, "Website,Email , Name\nhttp://a.com, a@a.com ,Alice\nhttp://b.com,,\n")

	table, err := ReadCSV(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Website", "Email", "Name"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "a@a.com", table.Cell(0, 1))
	assert.Equal(t, "http://b.com", table.Cell(1, 0))
}

func TestReadCSV_Ragged(t *testing.T) {
	path := writeCSV(t, "a,b,c\n1,2\n1,2,3,4\n")

	table, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)

	// Missing trailing cells read as "".
	assert.Equal(t, "", table.Cell(0, 2))
	assert.Equal(t, "3", table.Cell(1, 2))
}

func TestReadCSV_Empty(t *testing.T) {
	path := writeCSV(t, "")
	_, err := ReadCSV(path)
	assert.Error(t, err)
}

func TestParseCSV_Stream(t *testing.T) {
	table, err := ParseCSV(strings.NewReader("website\nhttp://a.com\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"website"}, table.Headers)
	require.Len(t, table.Rows, 1)
}

func TestTruncate(t *testing.T) {
	table := &Table{Rows: [][]string{{"1"}, {"2"}, {"3"}}}

	table.Truncate(0) // no-op
	assert.Len(t, table.Rows, 3)

	table.Truncate(5) // larger than table, no-op
	assert.Len(t, table.Rows, 3)

	table.Truncate(2)
	assert.Len(t, table.Rows, 2)
}

func TestColumnIndex(t *testing.T) {
	table := &Table{Headers: []string{"Website", "Email", "Website"}}
	assert.Equal(t, 0, table.ColumnIndex("Website")) // first occurrence wins
	assert.Equal(t, 1, table.ColumnIndex("Email"))
	assert.Equal(t, -1, table.ColumnIndex("Phone"))
}

func TestReadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.xlsx")

	f := xlsx.NewFile()
	sheet, err := f.AddSheet("leads")
	require.NoError(t, err)
	for _, row := range [][]string{
		{"Website", "Company"},
		{"http://a.com", "Acme"},
		{"http://b.com", "Bravo"},
	} {
		r := sheet.AddRow()
		for _, v := range row {
			r.AddCell().SetString(v)
		}
	}
	require.NoError(t, f.Save(path))

	table, err := ReadXLSX(path, XLSXOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Website", "Company"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Bravo", table.Cell(1, 1))
}

func TestReadXLSX_SheetNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.xlsx")
	f := xlsx.NewFile()
	_, err := f.AddSheet("leads")
	require.NoError(t, err)
	require.NoError(t, f.Save(path))

	_, err = ReadXLSX(path, XLSXOptions{SheetName: "other"})
	assert.Error(t, err)
}

func TestReadTable_Dispatch(t *testing.T) {
	path := writeCSV(t, "website\nhttp://a.com\n")
	table, err := ReadTable(path)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 1)

	_, err = ReadTable(filepath.Join(t.TempDir(), "leads.txt"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}
