package cursor

import (
	"fmt"

	"github.com/darvelo/ShadowVim/internal/engine/buffer"
)

// Selection represents a range of selected text on the secondary side.
// Start is the anchor and End the head; no Start <= End ordering is
// enforced, callers supply anchor/head semantics. A selection with
// Start == End is a bare caret.
// Selection is an immutable value type.
type Selection struct {
	Start buffer.Position
	End   buffer.Position
}

// NewSelection creates a selection from start to end.
func NewSelection(start, end buffer.Position) Selection {
	return Selection{Start: start, End: end}
}

// Caret creates an empty selection at the given position.
func Caret(pos buffer.Position) Selection {
	return Selection{Start: pos, End: pos}
}

// IsEmpty returns true if the selection has no extent.
func (s Selection) IsEmpty() bool {
	return s.Start == s.End
}

// Equals returns true if two selections have the same start and end.
func (s Selection) Equals(other Selection) bool {
	return s == other
}

// Normalize returns a selection ordered so that Start <= End.
func (s Selection) Normalize() Selection {
	if s.End.Before(s.Start) {
		return Selection{Start: s.End, End: s.Start}
	}
	return s
}

// Clamp returns a selection with both ends clamped to the given content.
func (s Selection) Clamp(lines []string) Selection {
	return Selection{Start: s.Start.Clamp(lines), End: s.End.Clamp(lines)}
}

// String returns a human-readable representation of the selection.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Caret%s", s.Start)
	}
	return fmt.Sprintf("Selection[%s-%s]", s.Start, s.End)
}
