// Package report renders run summaries for the console.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// SummaryLine is the one-line notice printed after a successful build.
func SummaryLine(count int, path string) string {
	return fmt.Sprintf("[Build] Saved %d articles to %s", count, path)
}

// Table is a plain text table with display-width aware padding.
type Table struct {
	header []string
	rows   [][]string
}

// NewTable creates a table with the given column headers.
func NewTable(header ...string) *Table {
	return &Table{header: header}
}

// AddRow appends a row. Missing cells render empty; extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// AddCounts appends a row made of a label followed by integer cells.
func (t *Table) AddCounts(label string, counts ...int) {
	cells := make([]string, 0, len(counts)+1)
	cells = append(cells, label)

	for _, n := range counts {
		cells = append(cells, strconv.Itoa(n))
	}

	t.AddRow(cells...)
}

// Render writes the table to w in markdown pipe layout.
func (t *Table) Render(w io.Writer) error {
	colCount := len(t.header)

	widths := make([]int, colCount)
	for i, h := range t.header {
		widths[i] = max(runewidth.StringWidth(h), 3)
	}

	for _, row := range t.rows {
		for i := 0; i < len(row) && i < colCount; i++ {
			widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
		}
	}

	lines := make([]string, 0, len(t.rows)+2)
	lines = append(lines, formatRow(t.header, widths))

	sep := make([]string, colCount)
	for i, width := range widths {
		sep[i] = strings.Repeat("-", width)
	}

	lines = append(lines, formatRow(sep, widths))

	for _, row := range t.rows {
		lines = append(lines, formatRow(row, widths))
	}

	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")

	return err
}

func formatRow(row []string, widths []int) string {
	var sb strings.Builder

	sb.WriteString("|")

	for i, width := range widths {
		content := ""
		if i < len(row) {
			content = row[i]
		}

		sb.WriteString(" ")
		sb.WriteString(runewidth.FillRight(content, width))
		sb.WriteString(" |")
	}

	return sb.String()
}
