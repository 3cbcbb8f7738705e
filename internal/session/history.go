package session

import (
	"fmt"

	"github.com/nconklindev/gridedit/internal/grid"
)

// Grids are never mutated in place, so snapshots can share rows.
type history struct {
	undo []grid.Grid
	redo []grid.Grid
}

func (h *history) push(prev grid.Grid, limit int) {
	if limit < 0 {
		return
	}

	h.undo = append(h.undo, prev)
	if len(h.undo) > limit {
		h.undo = h.undo[len(h.undo)-limit:]
	}
	h.redo = nil
}

// CanUndo reports whether Undo has a snapshot to restore.
func (s *Session) CanUndo() bool { return len(s.hist.undo) > 0 }

// CanRedo reports whether Redo has a snapshot to restore.
func (s *Session) CanRedo() bool { return len(s.hist.redo) > 0 }

// Undo restores the grid as it was before the last mutation. It returns
// false when there is nothing to undo.
func (s *Session) Undo() (bool, error) {
	if s.state != StateLoaded {
		return false, fmt.Errorf("undo: %w", ErrInvalidState)
	}
	if len(s.hist.undo) == 0 {
		return false, nil
	}

	i := len(s.hist.undo) - 1
	prev := s.hist.undo[i]
	s.hist.undo = s.hist.undo[:i]
	s.hist.redo = append(s.hist.redo, s.current)
	s.current = prev
	s.dirty = true
	s.log.Debug("undo", "rows", s.current.Rows(), "remaining", len(s.hist.undo))
	return true, nil
}

// Redo reapplies the last undone mutation. It returns false when there is
// nothing to redo.
func (s *Session) Redo() (bool, error) {
	if s.state != StateLoaded {
		return false, fmt.Errorf("redo: %w", ErrInvalidState)
	}
	if len(s.hist.redo) == 0 {
		return false, nil
	}

	i := len(s.hist.redo) - 1
	next := s.hist.redo[i]
	s.hist.redo = s.hist.redo[:i]
	s.hist.undo = append(s.hist.undo, s.current)
	s.current = next
	s.dirty = true
	s.log.Debug("redo", "rows", s.current.Rows(), "remaining", len(s.hist.redo))
	return true, nil
}
