// Package session holds the single table being edited and moves it through
// load, mutation and export.
package session

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/nconklindev/gridedit/internal/grid"
)

// ErrInvalidState is returned when an operation needs a loaded grid and the
// session is empty.
var ErrInvalidState = errors.New("no file loaded")

// DefaultHistoryLimit is the undo depth used when Options leaves it unset.
const DefaultHistoryLimit = 100

// State is where a session is in its lifecycle.
type State int

const (
	StateEmpty State = iota
	StateLoaded
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoaded:
		return "loaded"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Options configures a Session.
type Options struct {
	HistoryLimit int // 0 means DefaultHistoryLimit, negative disables undo
	Logger       *slog.Logger
}

// Session owns at most one grid. It is not safe for concurrent use.
type Session struct {
	state   State
	current grid.Grid
	dirty   bool

	opt  Options
	log  *slog.Logger
	hist history
}

// New returns an empty session.
func New(opt Options) *Session {
	if opt.HistoryLimit == 0 {
		opt.HistoryLimit = DefaultHistoryLimit
	}
	log := opt.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Session{
		state: StateEmpty,
		opt:   opt,
		log:   log.With("component", "session"),
	}
}

// State reports whether a grid is loaded.
func (s *Session) State() State { return s.state }

// Dirty reports whether the grid changed since the last Load or MarkClean.
func (s *Session) Dirty() bool { return s.dirty }

// MarkClean clears the dirty flag after the grid has been written out.
func (s *Session) MarkClean() { s.dirty = false }

// Load replaces whatever was loaded with the parsed text.
func (s *Session) Load(text string) {
	s.current = grid.Parse(text)
	s.state = StateLoaded
	s.dirty = false
	s.hist = history{}
	s.log.Debug("loaded", "rows", s.current.Rows(), "cols", s.current.Cols())
}

// Grid returns a copy of the current grid for rendering.
func (s *Session) Grid() (grid.Grid, bool) {
	if s.state != StateLoaded {
		return nil, false
	}
	return s.current.Clone(), true
}

// Mutate applies op to the current grid. On error nothing changes.
func (s *Session) Mutate(op Op) error {
	if s.state != StateLoaded {
		return fmt.Errorf("%s: %w", op.Name(), ErrInvalidState)
	}

	next, err := op.Apply(s.current)
	if err != nil {
		s.log.Debug("mutation rejected", "op", op.Name(), "error", err)
		return err
	}

	s.hist.push(s.current, s.opt.HistoryLimit)
	s.current = next
	s.dirty = true
	s.log.Debug("mutated", "op", op.Name(), "rows", s.current.Rows())
	return nil
}

// EditCell sets the cell at (row, col).
func (s *Session) EditCell(row, col int, value string) error {
	return s.Mutate(EditCell{Row: row, Col: col, Value: value})
}

// AddRow appends an empty row sized to the header.
func (s *Session) AddRow() error { return s.Mutate(AddRow{}) }

// DeleteRow removes the row at index row.
func (s *Session) DeleteRow(row int) error { return s.Mutate(DeleteRow{Row: row}) }

// Export serializes the current grid.
func (s *Session) Export() (string, error) {
	if s.state != StateLoaded {
		return "", fmt.Errorf("export: %w", ErrInvalidState)
	}
	return grid.Serialize(s.current), nil
}
