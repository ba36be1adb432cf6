// Package table holds the tabular input contract: a column-named Table
// value and the schema validation that gates every build.
package table

import (
	"strings"

	"github.com/awantoch/procmap/constants"
)

// Table is an immutable, column-named view over raw tabular input. Cells are
// kept verbatim as loaded; cleaning happens through Value.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// New builds a Table from a header and rows. Short rows are tolerated and
// read as empty cells; column names are matched exactly.
func New(columns []string, rows [][]string) *Table {
	idx := make(map[string]int, len(columns))
	for i, c := range columns {
		idx[strings.TrimSpace(c)] = i
	}
	trimmed := make([]string, len(columns))
	for i, c := range columns {
		trimmed[i] = strings.TrimSpace(c)
	}
	return &Table{columns: trimmed, index: idx, rows: rows}
}

// Columns returns the column names in table order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Has reports whether the table carries the named column.
func (t *Table) Has(col string) bool {
	_, ok := t.index[col]
	return ok
}

// Cell returns the raw cell value, or "" when the column is absent or the
// row is short.
func (t *Table) Cell(row int, col string) string {
	i, ok := t.index[col]
	if !ok || row < 0 || row >= len(t.rows) || i >= len(t.rows[row]) {
		return ""
	}
	return t.rows[row][i]
}

// Value returns the cleaned cell value: trimmed, with the spreadsheet
// missing-cell sentinel treated as absent.
func (t *Table) Value(row int, col string) string {
	return Clean(t.Cell(row, col))
}

// Clean trims a cell and maps the textual missing-cell sentinel to "".
func Clean(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, constants.MissingCellSentinel) {
		return ""
	}
	return s
}

// Select returns a new Table containing only the rows for which keep
// returns true. Row order is preserved; the header is shared.
func (t *Table) Select(keep func(row int) bool) *Table {
	var rows [][]string
	for i := range t.rows {
		if keep(i) {
			rows = append(rows, t.rows[i])
		}
	}
	return &Table{columns: t.columns, index: t.index, rows: rows}
}

// Row returns a copy of the raw row, padded to the column count.
func (t *Table) Row(row int) []string {
	out := make([]string, len(t.columns))
	if row < 0 || row >= len(t.rows) {
		return out
	}
	copy(out, t.rows[row])
	return out
}
