package grid

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when a mutation addresses a row or column
// outside the grid's current bounds.
var ErrIndexOutOfRange = errors.New("index out of range")

// IndexError describes a rejected out-of-range access.
type IndexError struct {
	Op   string
	Row  int
	Col  int // -1 for row-only operations
	Rows int
	Cols int // length of the addressed row, -1 when the row itself was missing
}

func (e *IndexError) Error() string {
	if e.Col < 0 {
		return fmt.Sprintf("%s: row %d: %v (rows: %d)", e.Op, e.Row, ErrIndexOutOfRange, e.Rows)
	}
	if e.Cols < 0 {
		return fmt.Sprintf("%s: cell (%d,%d): %v (rows: %d)", e.Op, e.Row, e.Col, ErrIndexOutOfRange, e.Rows)
	}
	return fmt.Sprintf("%s: cell (%d,%d): %v (row has %d cells)", e.Op, e.Row, e.Col, ErrIndexOutOfRange, e.Cols)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

// Row is an ordered sequence of cells.
type Row []string

// Grid is an ordered sequence of rows. Row 0 is the header by convention
// only; nothing here treats it differently.
type Grid []Row

// Rows returns the number of rows.
func (g Grid) Rows() int { return len(g) }

// Cols returns the header width, or 0 for an empty grid.
func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Clone returns a deep copy.
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for i, r := range g {
		out[i] = append(Row(nil), r...)
		if r != nil && out[i] == nil {
			out[i] = Row{}
		}
	}
	return out
}

// Equal reports whether both grids have the same shape and cell values.
func (g Grid) Equal(h Grid) bool {
	if len(g) != len(h) {
		return false
	}
	for i := range g {
		if len(g[i]) != len(h[i]) {
			return false
		}
		for j := range g[i] {
			if g[i][j] != h[i][j] {
				return false
			}
		}
	}
	return true
}

// EditCell returns a copy of g with the cell at (row, col) set to value.
func EditCell(g Grid, row, col int, value string) (Grid, error) {
	if row < 0 || row >= len(g) {
		return nil, &IndexError{Op: "edit cell", Row: row, Col: col, Rows: len(g), Cols: -1}
	}
	if col < 0 || col >= len(g[row]) {
		return nil, &IndexError{Op: "edit cell", Row: row, Col: col, Rows: len(g), Cols: len(g[row])}
	}

	out := make(Grid, len(g))
	copy(out, g)
	edited := append(Row(nil), g[row]...)
	edited[col] = value
	out[row] = edited
	return out, nil
}

// AddRow returns a copy of g with one empty row appended, sized to the
// header width.
func AddRow(g Grid) Grid {
	out := make(Grid, len(g), len(g)+1)
	copy(out, g)
	return append(out, make(Row, g.Cols()))
}

// DeleteRow returns a copy of g without the row at index row.
func DeleteRow(g Grid, row int) (Grid, error) {
	if row < 0 || row >= len(g) {
		return nil, &IndexError{Op: "delete row", Row: row, Col: -1, Rows: len(g)}
	}

	out := make(Grid, 0, len(g)-1)
	out = append(out, g[:row]...)
	return append(out, g[row+1:]...), nil
}
