package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column alignments
const (
	AlignLeft   = "left"
	AlignRight  = "right"
	AlignCenter = "center"
)

// TableColumn describes one column of a Table.
// Width is a minimum; MaxWidth, when set, truncates longer cells.
type TableColumn struct {
	Header   string
	Width    int
	MaxWidth int
	Align    string
}

// Table renders rows of weaver and history data as aligned text.
// Cells are measured in terminal cells, not bytes, and are flattened to one line.
type Table struct {
	Columns []TableColumn
	Rows    [][]string
}

// NewTable creates a new table with specified columns
func NewTable(columns []TableColumn) *Table {
	return &Table{
		Columns: columns,
		Rows:    [][]string{},
	}
}

// AddRow adds a row, flattening and truncating each cell for its column
func (t *Table) AddRow(cells []string) {
	row := make([]string, len(t.Columns))
	for i := range row {
		if i >= len(cells) {
			break
		}
		cell := FlattenCell(cells[i])
		if limit := t.Columns[i].MaxWidth; limit > 0 {
			cell = TruncateCell(cell, limit)
		}
		row[i] = cell
	}
	t.Rows = append(t.Rows, row)
}

// Render renders the table as a string
func (t *Table) Render() string {
	if len(t.Columns) == 0 {
		return ""
	}

	widths := t.columnWidths()
	var builder strings.Builder

	headerParts := make([]string, len(t.Columns))
	separatorParts := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		headerParts[i] = padString(col.Header, widths[i], AlignLeft)
		separatorParts[i] = strings.Repeat("─", widths[i])
	}
	builder.WriteString(StyleTableHeader.Render(strings.Join(headerParts, "  ")))
	builder.WriteString("\n")
	builder.WriteString(StyleTableBorder.Render(strings.Join(separatorParts, "  ")))
	builder.WriteString("\n")

	for idx, row := range t.Rows {
		parts := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			parts[i] = padString(cellAt(row, i), widths[i], col.Align)
		}

		rowStyle := StyleTableRow
		if idx%2 == 1 {
			rowStyle = StyleTableRowAlt
		}
		builder.WriteString(rowStyle.Render(strings.Join(parts, "  ")))
		builder.WriteString("\n")
	}

	return builder.String()
}

func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		widths[i] = max(lipgloss.Width(col.Header), col.Width)
	}
	for _, row := range t.Rows {
		for i := range widths {
			widths[i] = max(widths[i], lipgloss.Width(cellAt(row, i)))
		}
	}
	return widths
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// FlattenCell joins multi-line text (weaver diagnostics, stack traces) into one line
func FlattenCell(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TruncateCell shortens s to at most width terminal cells, ending with an ellipsis
func TruncateCell(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}

	var b strings.Builder
	used := 0
	for _, r := range s {
		w := lipgloss.Width(string(r))
		if used+w > width-1 {
			break
		}
		b.WriteRune(r)
		used += w
	}
	b.WriteString("…")
	return b.String()
}

// padString pads s to width terminal cells
func padString(s string, width int, align string) string {
	padding := width - lipgloss.Width(s)
	if padding <= 0 {
		return s
	}

	switch align {
	case AlignRight:
		return strings.Repeat(" ", padding) + s
	case AlignCenter:
		left := padding / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", padding-left)
	default:
		return s + strings.Repeat(" ", padding)
	}
}

// RenderKeyValue renders a key-value pair
func RenderKeyValue(key, value string) string {
	return fmt.Sprintf("%s: %s",
		StyleAccent.Render(key),
		value,
	)
}
