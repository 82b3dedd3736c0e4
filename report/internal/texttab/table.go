// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out aligned text tables.
package texttab

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode/utf8"
)

// Table does layout of text-based tables.
//
// Many of its methods return the Table so callers can chain them to
// build up a row at once.
type Table struct {
	cells []cell
	cols  int

	curRow, curCol int
}

type cell struct {
	row, col, span int
	value          string
	leftMargin     string
	alignment      align

	// style decorates the value after its width is measured, so
	// it may add invisible bytes such as terminal escapes.
	style func(string) string
}

type CellOption func(c *cell)

// LeftMargin sets the text printed before the cell. Every cell in a
// column gets the column's widest margin.
func LeftMargin(x string) CellOption {
	return func(c *cell) {
		c.leftMargin = x
	}
}

// Style decorates the printed value with f. The width of the cell is
// that of the undecorated value.
func Style(f func(string) string) CellOption {
	return func(c *cell) {
		c.style = f
	}
}

var (
	Left   CellOption = func(c *cell) { c.alignment = alignLeft }
	Center CellOption = func(c *cell) { c.alignment = alignCenter }
	Right  CellOption = func(c *cell) { c.alignment = alignRight }
)

type align int

const (
	alignLeft align = iota
	alignCenter
	alignRight
)

// pad returns the spaces to print before and after a value of width n
// in a field of width w.
func (a align) pad(n, w int) (before, after int) {
	extra := max(w-n, 0)
	switch a {
	case alignCenter:
		return extra / 2, extra - extra/2
	case alignRight:
		return extra, 0
	}
	return 0, extra
}

// Row starts a new row in table t. Calling Row twice leaves an empty
// row.
func (t *Table) Row() *Table {
	if len(t.cells) > 0 {
		t.curRow++
	}
	t.curCol = 0
	return t
}

// Col skips to column "col" in table t. Columns are numbered starting
// at 0.
func (t *Table) Col(col int) *Table {
	if col < t.curCol {
		panic(fmt.Sprintf("cannot move from column %d to earlier column %d", t.curCol, col))
	}
	t.curCol = col
	return t
}

// Cell adds a single-column cell at the current row and column.
func (t *Table) Cell(value string, opts ...CellOption) *Table {
	return t.Span(1, value, opts...)
}

// Span adds a cell covering cols columns at the current row and
// column.
func (t *Table) Span(cols int, value string, opts ...CellOption) *Table {
	margin := " "
	if t.curCol == 0 || value == "" {
		margin = ""
	}
	c := cell{row: t.curRow, col: t.curCol, span: cols, value: value, leftMargin: margin}
	for _, o := range opts {
		o(&c)
	}
	t.cells = append(t.cells, c)

	t.curCol += cols
	t.cols = max(t.cols, t.curCol)
	return t
}

// Format lays out table t and writes it to w. Trailing spaces are
// never printed.
func (t *Table) Format(w io.Writer) error {
	lmargin := make([]int, t.cols)
	for _, c := range t.cells {
		lmargin[c.col] = max(lmargin[c.col], utf8.RuneCountInString(c.leftMargin))
	}

	// Single-column cells set the column widths. A spanning cell
	// that does not fit widens the last column it covers.
	ws := make([]int, t.cols)
	for _, c := range t.cells {
		if c.span == 1 {
			ws[c.col] = max(ws[c.col], lmargin[c.col]+utf8.RuneCountInString(c.value))
		}
	}
	for _, c := range t.cells {
		if c.span == 1 {
			continue
		}
		need := lmargin[c.col] + utf8.RuneCountInString(c.value)
		have := 0
		for col := c.col; col < c.col+c.span; col++ {
			have += ws[col]
		}
		if need > have {
			ws[c.col+c.span-1] += need - have
		}
	}

	offs := make([]int, t.cols+1)
	for i, w := range ws {
		offs[i+1] = offs[i] + w
	}

	cells := slices.Clone(t.cells)
	slices.SortStableFunc(cells, func(a, b cell) int {
		if a.row != b.row {
			return a.row - b.row
		}
		return a.col - b.col
	})

	var buf strings.Builder
	row, off := 0, 0
	for _, c := range cells {
		if strings.TrimSpace(c.value) == "" && strings.TrimSpace(c.leftMargin) == "" {
			continue
		}
		for c.row > row {
			buf.WriteByte('\n')
			row++
			off = 0
		}

		fmt.Fprintf(&buf, "%*s%*s", offs[c.col]-off, "", lmargin[c.col], c.leftMargin)
		off = offs[c.col] + lmargin[c.col]

		tw := offs[c.col+c.span] - off
		n := utf8.RuneCountInString(c.value)
		before, after := c.alignment.pad(n, tw)
		v := c.value
		if c.style != nil {
			v = c.style(v)
		}
		fmt.Fprintf(&buf, "%*s%s", before, "", v)
		off += before + n

		// Only pad the right side if another cell may follow.
		if c.col+c.span < t.cols {
			fmt.Fprintf(&buf, "%*s", after, "")
			off += after
		}
	}
	if len(cells) > 0 {
		buf.WriteByte('\n')
	}

	// Trailing padding appears when the next cell of a row is
	// skipped as empty.
	lines := strings.SplitAfter(buf.String(), "\n")
	for i, l := range lines {
		if strings.HasSuffix(l, "\n") {
			lines[i] = strings.TrimRight(l[:len(l)-1], " ") + "\n"
		}
	}
	_, err := io.WriteString(w, strings.Join(lines, ""))
	return err
}
