package model

import "strings"

// Table is a raw tabular dataset: one header row and zero or more data rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// ColumnIndex returns the position of name in the header, or -1.
func (t Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the trimmed cell at row/col, or "" for ragged rows.
func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[row][col])
}

// Len returns the number of data rows.
func (t Table) Len() int { return len(t.Rows) }
