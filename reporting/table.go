package reporting

import (
	"io"

	"github.com/crytic/solinspect/utils"
	"github.com/olekukonko/tablewriter"
)

// Alignment describes how the cells of a column are aligned.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Column describes a column of a Table.
type Column struct {
	// Name is the column header.
	Name string

	// Alignment is the alignment of the column's cells.
	Alignment Alignment
}

// Table is a list of rows with named columns which can be rendered as text.
type Table struct {
	columns []Column
	rows    [][]string
}

// NewTable creates an empty table with the given columns.
func NewTable(columns ...Column) *Table {
	return &Table{columns: columns}
}

// Columns returns the columns of the table.
func (t *Table) Columns() []Column {
	return t.columns
}

// ColumnNames returns the headers of the table's columns.
func (t *Table) ColumnNames() []string {
	return utils.SliceSelect(t.columns, func(c Column) string { return c.Name })
}

// AddRow appends a row given as a mapping of column name to cell. Cells of columns absent from the mapping are
// empty, and keys which are not columns of the table are ignored.
func (t *Table) AddRow(cells map[string]string) {
	row := make([]string, len(t.columns))
	for i, column := range t.columns {
		row[i] = cells[column.Name]
	}
	t.rows = append(t.rows, row)
}

// AddRows appends several rows.
func (t *Table) AddRows(rows []map[string]string) {
	for _, row := range rows {
		t.AddRow(row)
	}
}

// Rows returns the cells of every row, in column order.
func (t *Table) Rows() [][]string {
	return t.rows
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render writes the table to the given writer.
func (t *Table) Render(w io.Writer) {
	alignments := make([]int, len(t.columns))
	for i, column := range t.columns {
		if column.Alignment == AlignRight {
			alignments[i] = tablewriter.ALIGN_RIGHT
		} else {
			alignments[i] = tablewriter.ALIGN_LEFT
		}
	}

	writer := tablewriter.NewWriter(w)
	writer.SetHeader(t.ColumnNames())
	writer.SetAutoFormatHeaders(false)
	writer.SetAutoWrapText(false)
	writer.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
	writer.SetColumnAlignment(alignments)
	writer.AppendBulk(t.rows)
	writer.Render()
}
