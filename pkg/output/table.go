// Package output provides table and JSON formatting for command results.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/ajxudir/pkgsupport/pkg/utils"
)

// Column represents a single table column with its header and current width.
//
// Fields:
//   - Header: The display text for this column's header
//   - Width: The current display width for this column in characters
type Column struct {
	Header string
	Width  int
}

// Table provides a flexible table formatter with dynamic column widths.
// It handles Unicode-aware width calculations and consistent formatting.
//
// Fields:
//   - columns: List of columns with their headers and widths
//   - separator: String used to separate columns in formatted output
type Table struct {
	columns   []Column
	separator string
}

// NewTable creates a new table formatter and returns a pointer to it.
//
// The table is initialized with an empty column list and a default separator
// of two spaces ("  ").
//
// Returns:
//   - *Table: A new table instance ready for column configuration
func NewTable() *Table {
	return &Table{
		columns:   make([]Column, 0),
		separator: "  ",
	}
}

// AddColumn adds a column with the given header and returns the table.
//
// The initial width is set to the display width of the header using
// Unicode-aware width calculation.
//
// Parameters:
//   - header: The text to display in the column header
//
// Returns:
//   - *Table: The table instance for method chaining
func (t *Table) AddColumn(header string) *Table {
	t.columns = append(t.columns, Column{
		Header: header,
		Width:  utils.DisplayWidth(header),
	})
	return t
}

// UpdateWidths grows column widths to fit the given row values.
//
// Values beyond the configured column count are ignored.
//
// Parameters:
//   - values: One value per column, in column order
//
// Returns:
//   - *Table: The table instance for method chaining
func (t *Table) UpdateWidths(values ...string) *Table {
	for i, value := range values {
		if i >= len(t.columns) {
			break
		}
		t.columns[i].Width = utils.Max(t.columns[i].Width, utils.DisplayWidth(value))
	}
	return t
}

// HeaderRow formats the header row with all column headers padded to width.
//
// Returns:
//   - string: The formatted header row without a trailing newline
func (t *Table) HeaderRow() string {
	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = utils.ToWidth(col.Header, col.Width)
	}
	return strings.TrimRight(strings.Join(headers, t.separator), " ")
}

// SeparatorRow formats a dashed row matching the current column widths.
//
// Returns:
//   - string: The formatted separator row without a trailing newline
func (t *Table) SeparatorRow() string {
	dashes := make([]string, len(t.columns))
	for i, col := range t.columns {
		dashes[i] = strings.Repeat("-", col.Width)
	}
	return strings.Join(dashes, t.separator)
}

// FormatRow formats one data row padded to the current column widths.
//
// Missing values render as empty cells; extra values are ignored.
//
// Parameters:
//   - values: One value per column, in column order
//
// Returns:
//   - string: The formatted row without a trailing newline
func (t *Table) FormatRow(values ...string) string {
	cells := make([]string, len(t.columns))
	for i, col := range t.columns {
		value := ""
		if i < len(values) {
			value = values[i]
		}
		cells[i] = utils.ToWidth(value, col.Width)
	}
	return strings.TrimRight(strings.Join(cells, t.separator), " ")
}

// FprintHeader writes the header and separator rows to a writer.
//
// Parameters:
//   - w: The destination writer
func (t *Table) FprintHeader(w io.Writer) {
	fmt.Fprintln(w, t.HeaderRow())
	fmt.Fprintln(w, t.SeparatorRow())
}
