package session

import (
	"errors"
	"testing"

	"github.com/nconklindev/gridedit/internal/grid"
)

func mustGrid(t *testing.T, s *Session) grid.Grid {
	t.Helper()
	g, ok := s.Grid()
	if !ok {
		t.Fatalf("expected a loaded grid")
	}
	return g
}

func TestSession_EmptyState(t *testing.T) {
	s := New(Options{})
	if s.State() != StateEmpty {
		t.Fatalf("state = %v; want empty", s.State())
	}
	if _, ok := s.Grid(); ok {
		t.Errorf("expected no grid before load")
	}

	if _, err := s.Export(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Export error = %v; want ErrInvalidState", err)
	}

	ops := []Op{EditCell{}, AddRow{}, DeleteRow{}}
	for _, op := range ops {
		t.Run(op.Name(), func(t *testing.T) {
			if err := s.Mutate(op); !errors.Is(err, ErrInvalidState) {
				t.Errorf("Mutate(%s) error = %v; want ErrInvalidState", op.Name(), err)
			}
		})
	}

	if _, err := s.Undo(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Undo error = %v; want ErrInvalidState", err)
	}
	if _, err := s.Redo(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Redo error = %v; want ErrInvalidState", err)
	}
	if s.State() != StateEmpty || s.Dirty() {
		t.Errorf("failed calls changed the session")
	}
}

func TestSession_EndToEnd(t *testing.T) {
	s := New(Options{})
	s.Load("name,age\nAlice,30\nBob,25")

	if err := s.EditCell(1, 1, "31"); err != nil {
		t.Fatalf("EditCell failed: %v", err)
	}
	if err := s.DeleteRow(2); err != nil {
		t.Fatalf("DeleteRow failed: %v", err)
	}
	if err := s.AddRow(); err != nil {
		t.Fatalf("AddRow failed: %v", err)
	}

	got, err := s.Export()
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if want := "name,age\nAlice,31\n,"; got != want {
		t.Errorf("Export() = %q; want %q", got, want)
	}
	if !s.Dirty() {
		t.Errorf("expected session to be dirty after edits")
	}
}

func TestSession_OutOfRangeLeavesGridUntouched(t *testing.T) {
	tests := []struct {
		name string
		op   Op
	}{
		{"Edit row one past end", EditCell{Row: 3, Col: 0, Value: "X"}},
		{"Edit column one past end", EditCell{Row: 0, Col: 2, Value: "X"}},
		{"Delete row one past end", DeleteRow{Row: 3}},
		{"Delete negative row", DeleteRow{Row: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(Options{})
			s.Load("a,b\n1,2\n3,4")
			before := mustGrid(t, s)

			err := s.Mutate(tt.op)
			if !errors.Is(err, grid.ErrIndexOutOfRange) {
				t.Fatalf("Mutate error = %v; want ErrIndexOutOfRange", err)
			}
			if after := mustGrid(t, s); !after.Equal(before) {
				t.Errorf("grid changed after failed mutation: %q", after)
			}
			if s.Dirty() {
				t.Errorf("failed mutation marked session dirty")
			}
			if s.CanUndo() {
				t.Errorf("failed mutation recorded history")
			}
		})
	}
}

func TestSession_GridIsACopy(t *testing.T) {
	s := New(Options{})
	s.Load("a,b")

	g := mustGrid(t, s)
	g[0][0] = "changed"

	if out, _ := s.Export(); out != "a,b" {
		t.Errorf("Export() = %q after editing returned grid; want %q", out, "a,b")
	}
}

func TestSession_LoadReplaces(t *testing.T) {
	s := New(Options{})
	s.Load("a\n1")
	if err := s.AddRow(); err != nil {
		t.Fatal(err)
	}

	s.Load("x,y")
	if s.Dirty() {
		t.Errorf("expected clean session after load")
	}
	if s.CanUndo() {
		t.Errorf("expected history to be cleared after load")
	}
	if out, _ := s.Export(); out != "x,y" {
		t.Errorf("Export() = %q; want %q", out, "x,y")
	}
}

func TestSession_UndoRedo(t *testing.T) {
	s := New(Options{})
	s.Load("a,b\n1,2")

	if ok, err := s.Undo(); ok || err != nil {
		t.Fatalf("Undo on fresh load = %v, %v; want false, nil", ok, err)
	}

	if err := s.EditCell(1, 0, "X"); err != nil {
		t.Fatal(err)
	}
	if err := s.AddRow(); err != nil {
		t.Fatal(err)
	}

	steps := []struct {
		name string
		do   func() (bool, error)
		want string
	}{
		{"Undo add row", s.Undo, "a,b\nX,2"},
		{"Undo edit", s.Undo, "a,b\n1,2"},
		{"Redo edit", s.Redo, "a,b\nX,2"},
		{"Redo add row", s.Redo, "a,b\nX,2\n,"},
	}

	for _, step := range steps {
		ok, err := step.do()
		if err != nil || !ok {
			t.Fatalf("%s = %v, %v; want true, nil", step.name, ok, err)
		}
		if got, _ := s.Export(); got != step.want {
			t.Errorf("%s: Export() = %q; want %q", step.name, got, step.want)
		}
	}

	if s.CanRedo() {
		t.Errorf("expected redo stack to be empty")
	}
}

func TestSession_MutationClearsRedo(t *testing.T) {
	s := New(Options{})
	s.Load("a")
	_ = s.AddRow()
	_, _ = s.Undo()
	if !s.CanRedo() {
		t.Fatalf("expected CanRedo after undo")
	}

	_ = s.EditCell(0, 0, "b")
	if s.CanRedo() {
		t.Errorf("expected mutation to clear redo stack")
	}
}

func TestSession_HistoryLimit(t *testing.T) {
	s := New(Options{HistoryLimit: 2})
	s.Load("a")
	for i := 0; i < 5; i++ {
		if err := s.AddRow(); err != nil {
			t.Fatal(err)
		}
	}

	undone := 0
	for s.CanUndo() {
		if _, err := s.Undo(); err != nil {
			t.Fatal(err)
		}
		undone++
	}
	if undone != 2 {
		t.Errorf("undone = %d; want 2", undone)
	}
	if g := mustGrid(t, s); g.Rows() != 4 {
		t.Errorf("rows after undoing to limit = %d; want 4", g.Rows())
	}
}

func TestSession_HistoryDisabled(t *testing.T) {
	s := New(Options{HistoryLimit: -1})
	s.Load("a")
	_ = s.AddRow()
	if s.CanUndo() {
		t.Errorf("expected no undo history when disabled")
	}
}

func TestSession_MarkClean(t *testing.T) {
	s := New(Options{})
	s.Load("a")
	_ = s.AddRow()
	s.MarkClean()
	if s.Dirty() {
		t.Errorf("expected clean after MarkClean")
	}
}
