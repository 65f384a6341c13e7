package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Table is a caller-supplied tabular dataset: an ordered header and rows of
// string cells. Row order and column order are preserved end to end.
type Table struct {
	// Columns are the header names, in sheet column order.
	Columns []string

	// Rows hold the data cells. Short rows are padded with empty strings
	// when converted to sheet values.
	Rows [][]string
}

// FromCSV reads a table from CSV data. The first record becomes the header.
func FromCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV input is empty")
	}

	return &Table{
		Columns: records[0],
		Rows:    records[1:],
	}, nil
}

// FromCSVFile reads a table from the CSV file at path.
func FromCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return FromCSV(f)
}

// ColumnIndex returns the zero-based index of the named column, or -1 if the
// table has no such column.
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// NumRows returns the number of data rows (the header is not counted).
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// Cell returns the cell at the given data row and column, or an empty string
// when the row is shorter than the header.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return ""
	}
	r := t.Rows[row]
	if col >= len(r) {
		return ""
	}
	return r[col]
}

// Values returns the header and rows as the value matrix the Sheets API
// expects. Short rows are padded to the header width.
func (t *Table) Values() [][]interface{} {
	width := len(t.Columns)

	values := make([][]interface{}, 0, len(t.Rows)+1)

	header := make([]interface{}, width)
	for i, col := range t.Columns {
		header[i] = col
	}
	values = append(values, header)

	for _, row := range t.Rows {
		cells := make([]interface{}, width)
		for i := range cells {
			if i < len(row) {
				cells[i] = row[i]
			} else {
				cells[i] = ""
			}
		}
		values = append(values, cells)
	}

	return values
}

// A1 converts zero-based row and column indices to an A1 cell reference,
// e.g. (0,0) -> "A1", (1,26) -> "AA2".
func A1(row, col int) string {
	letters := ""
	for c := col; c >= 0; c = c/26 - 1 {
		letters = string(rune('A'+c%26)) + letters
		if c < 26 {
			break
		}
	}
	return fmt.Sprintf("%s%d", letters, row+1)
}
