// Package table provides the row-oriented tables exchanged with the extraction
// collaborator and written to the flat file layout.
//
// A Table is a list of named columns plus rows keyed by column name. Cells are
// kept as text: every table ends up in a delimited file, and the extraction
// backends already render their values.
package table

import (
	"encoding/csv"
	"io"
	"slices"
)

// Row is one table row keyed by column name. A missing key is an empty cell.
type Row map[string]string

// Table is an ordered set of columns and the rows over them.
type Table struct {
	Columns []string
	Rows    []Row
}

// New creates an empty table with the given columns. Repeated names are kept once.
func New(columns ...string) *Table {
	t := &Table{}
	for _, c := range columns {
		t.AddColumn(c)
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// HasColumn reports whether the table has the column.
func (t *Table) HasColumn(name string) bool {
	return t != nil && slices.Contains(t.Columns, name)
}

// AddColumn appends a column if it is not present yet.
func (t *Table) AddColumn(name string) {
	if !slices.Contains(t.Columns, name) {
		t.Columns = append(t.Columns, name)
	}
}

// Append adds a row. Keys not yet known become new columns, in sorted order
// so the column layout does not depend on map iteration.
func (t *Table) Append(row Row) {
	var extra []string
	for k := range row {
		if !slices.Contains(t.Columns, k) {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)
	t.Columns = append(t.Columns, extra...)
	t.Rows = append(t.Rows, row)
}

// Missing returns the required columns the table does not have, in the order given.
func (t *Table) Missing(required []string) []string {
	var missing []string
	for _, c := range required {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	return missing
}

// Tag sets column to value on every row, adding the column when needed.
// Existing values in that column are overwritten.
func (t *Table) Tag(column, value string) {
	t.AddColumn(column)
	for i, row := range t.Rows {
		if row == nil {
			row = Row{}
			t.Rows[i] = row
		}
		row[column] = value
	}
}

// Project returns a copy holding only the given columns, in that order.
// Columns the table does not have are skipped.
func (t *Table) Project(columns ...string) *Table {
	out := &Table{}
	for _, c := range columns {
		if t.HasColumn(c) {
			out.AddColumn(c)
		}
	}
	for _, row := range t.Rows {
		r := make(Row, len(out.Columns))
		for _, c := range out.Columns {
			if v, ok := row[c]; ok {
				r[c] = v
			}
		}
		out.Rows = append(out.Rows, r)
	}
	return out
}

// Concat stacks tables. The result has the union of all columns in first-seen
// order; cells a table does not have are left empty. Nil tables are skipped.
func Concat(tables ...*Table) *Table {
	out := &Table{}
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, c := range t.Columns {
			out.AddColumn(c)
		}
		out.Rows = append(out.Rows, t.Rows...)
	}
	return out
}

// WriteCSV writes the table with a header row. A table without columns
// writes nothing.
func (t *Table) WriteCSV(w io.Writer) error {
	if t == nil || len(t.Columns) == 0 {
		return nil
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, c := range t.Columns {
			record[i] = row[c]
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads a table written by WriteCSV.
func ReadCSV(r io.Reader) (*Table, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &Table{}, nil
	}
	t := New(records[0]...)
	for _, rec := range records[1:] {
		row := make(Row, len(rec))
		for i, v := range rec {
			if i < len(records[0]) {
				row[records[0][i]] = v
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
