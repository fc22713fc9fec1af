package buffer

import "fmt"

// EndOfBuffer is the LastLine sentinel meaning "through the end of the
// buffer", matching the primary engine's own delta notifications.
const EndOfBuffer = -1

// ChangeDescriptor is the primary engine's native description of one of
// its own edits: the half-open line range [FirstLine, LastLine) is
// replaced by Lines. It allows the secondary side to be patched directly
// without recomputing a diff.
//
// The descriptor is carried opaquely through the reconciliation engine;
// only the driver applying it interprets the range.
type ChangeDescriptor struct {
	// FirstLine is the first replaced line (0-indexed, inclusive).
	FirstLine int

	// LastLine is the line after the last replaced one (exclusive),
	// or EndOfBuffer for a replacement extending to the end.
	LastLine int

	// Lines is the replacement content for the range.
	Lines []string
}

// FullReplacement returns a descriptor replacing the entire buffer.
func FullReplacement(lines []string) ChangeDescriptor {
	return ChangeDescriptor{FirstLine: 0, LastLine: EndOfBuffer, Lines: CloneLines(lines)}
}

// IsFull returns true if the descriptor replaces the whole buffer.
func (c ChangeDescriptor) IsFull() bool {
	return c.FirstLine == 0 && c.LastLine == EndOfBuffer
}

// Apply returns the line sequence resulting from applying the change to
// the given content. Out-of-range bounds are clamped rather than
// rejected; the primary engine is trusted but its notifications may race
// with content we have not observed yet.
func (c ChangeDescriptor) Apply(lines []string) []string {
	first := c.FirstLine
	if first < 0 {
		first = 0
	}
	if first > len(lines) {
		first = len(lines)
	}

	last := c.LastLine
	if last == EndOfBuffer || last > len(lines) {
		last = len(lines)
	}
	if last < first {
		last = first
	}

	out := make([]string, 0, len(lines)-(last-first)+len(c.Lines))
	out = append(out, lines[:first]...)
	out = append(out, c.Lines...)
	out = append(out, lines[last:]...)
	return out
}

// String returns a human-readable representation of the change.
func (c ChangeDescriptor) String() string {
	if c.LastLine == EndOfBuffer {
		return fmt.Sprintf("Change[%d:$ -> %d lines]", c.FirstLine, len(c.Lines))
	}
	return fmt.Sprintf("Change[%d:%d -> %d lines]", c.FirstLine, c.LastLine, len(c.Lines))
}
