package ui

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table is a borderless, column-aligned table.
type Table struct {
	headers  []string
	rows     [][]string
	maxWidth int // per column
}

// NewTable creates a new table
func NewTable(headers ...string) *Table {
	return &Table{headers: headers, maxWidth: 60}
}

// SetMaxColumnWidth caps each column; longer values are truncated.
func (t *Table) SetMaxColumnWidth(width int) {
	t.maxWidth = width
}

// AddRow adds a row to the table
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.headers))
	copy(row, values)
	t.rows = append(t.rows, row)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render writes the table to w.
func (t *Table) Render(w io.Writer) {
	if len(t.headers) == 0 {
		return
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = utf8.RuneCountInString(h)
		for _, row := range t.rows {
			if n := utf8.RuneCountInString(row[i]); n > widths[i] {
				widths[i] = n
			}
		}
		if widths[i] > t.maxWidth {
			widths[i] = t.maxWidth
		}
	}

	writeRow := func(values []string) {
		cells := make([]string, len(values))
		for i, v := range values {
			v = truncate(v, widths[i])
			cells[i] = v + strings.Repeat(" ", widths[i]-utf8.RuneCountInString(v))
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " "))
	}

	writeRow(t.headers)
	seps := make([]string, len(widths))
	for i, wd := range widths {
		seps[i] = strings.Repeat("─", wd)
	}
	fmt.Fprintln(w, Dim(strings.Join(seps, "  ")))
	for _, row := range t.rows {
		writeRow(row)
	}
}

// truncate shortens s to maxLen runes with an ellipsis
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	r := []rune(s)
	if maxLen <= 1 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-1]) + "…"
}
