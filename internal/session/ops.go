package session

import "github.com/nconklindev/gridedit/internal/grid"

// Op is one grid mutation routed through Session.Mutate.
type Op interface {
	Name() string
	Apply(g grid.Grid) (grid.Grid, error)
}

// EditCell replaces the value of one cell.
type EditCell struct {
	Row   int
	Col   int
	Value string
}

func (EditCell) Name() string { return "edit cell" }

func (o EditCell) Apply(g grid.Grid) (grid.Grid, error) {
	return grid.EditCell(g, o.Row, o.Col, o.Value)
}

// AddRow appends an empty row.
type AddRow struct{}

func (AddRow) Name() string { return "add row" }

func (AddRow) Apply(g grid.Grid) (grid.Grid, error) {
	return grid.AddRow(g), nil
}

// DeleteRow removes one row; later rows move up.
type DeleteRow struct {
	Row int
}

func (DeleteRow) Name() string { return "delete row" }

func (o DeleteRow) Apply(g grid.Grid) (grid.Grid, error) {
	return grid.DeleteRow(g, o.Row)
}
