package cursor

import (
	"testing"

	"github.com/darvelo/ShadowVim/internal/engine/buffer"
	"github.com/darvelo/ShadowVim/internal/mode"
)

func TestProjectSelectionInsertLike(t *testing.T) {
	pos := buffer.Position{Line: 3, Column: 7}

	for _, m := range []mode.Mode{mode.Insert, mode.Replace} {
		sel := New(pos, m).ProjectSelection()
		if !sel.IsEmpty() {
			t.Errorf("%v projection should be a caret, got %v", m, sel)
		}
		if sel.Start != pos {
			t.Errorf("%v projection at %v, want %v", m, sel.Start, pos)
		}
	}
}

func TestProjectSelectionBlockCursor(t *testing.T) {
	pos := buffer.Position{Line: 2, Column: 4}

	for _, m := range []mode.Mode{mode.Normal, mode.Visual, mode.VisualBlock, mode.OperatorPending, mode.Other} {
		sel := New(pos, m).ProjectSelection()
		if sel.Start != pos {
			t.Errorf("%v projection starts at %v, want %v", m, sel.Start, pos)
		}
		want := buffer.Position{Line: 2, Column: 5}
		if sel.End != want {
			t.Errorf("%v projection ends at %v, want %v", m, sel.End, want)
		}
	}
}

func TestSelectionNormalize(t *testing.T) {
	fwd := NewSelection(buffer.Position{Line: 0, Column: 1}, buffer.Position{Line: 0, Column: 5})
	if fwd.Normalize() != fwd {
		t.Error("forward selection should be unchanged")
	}

	bwd := NewSelection(buffer.Position{Line: 2, Column: 0}, buffer.Position{Line: 1, Column: 3})
	norm := bwd.Normalize()
	if norm.Start != bwd.End || norm.End != bwd.Start {
		t.Errorf("backward selection should flip, got %v", norm)
	}
}

func TestSelectionClamp(t *testing.T) {
	lines := []string{"ab", "c"}
	sel := NewSelection(buffer.Position{Line: 0, Column: 9}, buffer.Position{Line: 9, Column: 9})
	got := sel.Clamp(lines)
	if got.Start != (buffer.Position{Line: 0, Column: 2}) {
		t.Errorf("start clamped to %v", got.Start)
	}
	if got.End != (buffer.Position{Line: 1, Column: 1}) {
		t.Errorf("end clamped to %v", got.End)
	}
}

func TestCaret(t *testing.T) {
	c := Caret(buffer.Position{Line: 1, Column: 2})
	if !c.IsEmpty() {
		t.Error("caret should be empty")
	}
}
