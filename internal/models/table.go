package models

import "strings"

// Table is one uploaded source export held fully in memory: a header row
// plus data rows. The loader pads or truncates every row to the header
// width, so cell access by column index is always in range.
type Table struct {
	Headers []string
	Rows    [][]string
}

// ColumnIndex finds a column by name, ignoring case and surrounding
// whitespace. Returns -1 when the column is absent.
func (t *Table) ColumnIndex(name string) int {
	want := strings.ToLower(strings.TrimSpace(name))
	for i, h := range t.Headers {
		if strings.ToLower(strings.TrimSpace(h)) == want {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, col).
func (t *Table) Cell(row, col int) string {
	return t.Rows[row][col]
}

// Len is the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}
