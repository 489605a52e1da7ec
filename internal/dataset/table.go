// Hybridrec - Hybrid Video Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrec

package dataset

import (
	"fmt"
	"strings"
)

// Table is an in-memory, read-only tabular snapshot with string cells.
type Table struct {
	// Source is the path the table was read from.
	Source string

	// Digest is the hex SHA-256 of the source bytes.
	Digest string

	columns []string
	index   map[string]int
	rows    [][]string
}

// NewTable builds a table. Short rows are padded with empty cells and
// duplicate column names keep their first position.
func NewTable(columns []string, rows [][]string) (*Table, error) {
	t := &Table{
		columns: make([]string, len(columns)),
		index:   make(map[string]int, len(columns)),
		rows:    make([][]string, len(rows)),
	}
	for i, c := range columns {
		name := strings.TrimSpace(c)
		t.columns[i] = name
		if _, dup := t.index[name]; !dup {
			t.index[name] = i
		}
	}

	for r, row := range rows {
		if len(row) > len(columns) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", r+1, len(row), len(columns))
		}
		cells := make([]string, len(columns))
		for c, v := range row {
			cells[c] = normalizeCell(v)
		}
		t.rows[r] = cells
	}
	return t, nil
}

// Columns returns the column names in source order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// HasColumn reports whether the table has the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Get returns the cell at (row, column). ok is false for an unknown column.
func (t *Table) Get(row int, column string) (value string, ok bool) {
	c, ok := t.index[column]
	if !ok {
		return "", false
	}
	return t.rows[row][c], true
}

// Value returns the cell at (row, column), or "" for an unknown column.
func (t *Table) Value(row int, column string) string {
	v, _ := t.Get(row, column)
	return v
}

// MissingColumns returns the required columns absent from the table, in
// the order they were requested.
func (t *Table) MissingColumns(required ...string) []string {
	var missing []string
	for _, name := range required {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// FirstPresent returns the first of candidates that is a column.
func (t *Table) FirstPresent(candidates ...string) (string, bool) {
	for _, name := range candidates {
		if t.HasColumn(name) {
			return name, true
		}
	}
	return "", false
}

// naMarkers are the cell values treated as missing.
var naMarkers = map[string]struct{}{
	"":     {},
	"nan":  {},
	"NaN":  {},
	"-nan": {},
	"NULL": {},
	"null": {},
	"None": {},
	"NA":   {},
	"N/A":  {},
	"n/a":  {},
	"<NA>": {},
	"#N/A": {},
}

func normalizeCell(v string) string {
	trimmed := strings.TrimSpace(v)
	if _, na := naMarkers[trimmed]; na {
		return ""
	}
	return v
}
