package buffer

import "fmt"

// Position represents a line and column position in a buffer.
// Both Line and Column are 0-indexed; Column is measured in bytes from
// the start of the line.
type Position struct {
	Line   int
	Column int
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other,
// ordering by line first, then column.
func (p Position) Compare(other Position) int {
	if p.Line != other.Line {
		if p.Line < other.Line {
			return -1
		}
		return 1
	}
	if p.Column != other.Column {
		if p.Column < other.Column {
			return -1
		}
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// IsZero returns true if this is the zero position (0:0).
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Column == 0
}

// Clamp returns a position clamped to the given line sequence: Line is
// limited to the last line index and Column to that line's length.
// An empty sequence clamps to the zero position.
func (p Position) Clamp(lines []string) Position {
	if len(lines) == 0 {
		return Position{}
	}
	if p.Line < 0 {
		p.Line = 0
	}
	if p.Line >= len(lines) {
		p.Line = len(lines) - 1
	}
	if p.Column < 0 {
		p.Column = 0
	}
	if max := len(lines[p.Line]); p.Column > max {
		p.Column = max
	}
	return p
}
