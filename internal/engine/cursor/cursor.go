package cursor

import (
	"fmt"

	"github.com/darvelo/ShadowVim/internal/engine/buffer"
	"github.com/darvelo/ShadowVim/internal/mode"
)

// Cursor represents the primary engine's cursor: a position plus the
// editing mode active at that position.
// Cursor is an immutable value type.
type Cursor struct {
	Pos  buffer.Position
	Mode mode.Mode
}

// New creates a cursor at the given position and mode.
func New(pos buffer.Position, m mode.Mode) Cursor {
	return Cursor{Pos: pos, Mode: m}
}

// String returns a human-readable representation of the cursor.
func (c Cursor) String() string {
	return fmt.Sprintf("Cursor%s[%s]", c.Pos, c.Mode)
}

// Equals returns true if two cursors share position and mode.
func (c Cursor) Equals(other Cursor) bool {
	return c == other
}

// ProjectSelection projects the cursor into a secondary-side selection.
//
// In insert-like modes the selection collapses to a caret at the cursor
// position; in every other mode it spans one column past the cursor on
// the same line, approximating a block cursor. Block-wise visual
// selections cannot be represented this way; the one-column span is the
// accepted lossy mapping.
func (c Cursor) ProjectSelection() Selection {
	if c.Mode.IsInsertLike() {
		return Caret(c.Pos)
	}
	return Selection{
		Start: c.Pos,
		End:   buffer.Position{Line: c.Pos.Line, Column: c.Pos.Column + 1},
	}
}
