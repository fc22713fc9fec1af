package reconcile

import (
	"github.com/darvelo/ShadowVim/internal/engine/buffer"
	"github.com/darvelo/ShadowVim/internal/engine/cursor"
)

// PrimaryState is the last-known state of the primary buffer.
type PrimaryState struct {
	Cursor cursor.Cursor
	Lines  []string
}

// SecondaryState is the last-known state of the secondary buffer.
type SecondaryState struct {
	Selection cursor.Selection
	Lines     []string
}

// BufferState is the entire persistent state of the engine for one
// logical buffer pairing. It is a value type owned exclusively by one
// mediator; no instance is ever shared between mediators.
type BufferState struct {
	Token     EditionToken
	Primary   PrimaryState
	Secondary SecondaryState
}

// NewBufferState creates the state for a freshly established pairing
// from the initial content both sides reported.
func NewBufferState(primary PrimaryState, secondary SecondaryState) BufferState {
	primary.Lines = buffer.CloneLines(primary.Lines)
	secondary.Lines = buffer.CloneLines(secondary.Lines)
	return BufferState{
		Token:     FreeToken(),
		Primary:   primary,
		Secondary: secondary,
	}
}

// converged reports whether the two sides' content already agrees after
// reconciling the trailing-empty-line convention: some host environments
// always keep a trailing blank line, so when the secondary ends with an
// empty line the primary is compared as if it carried one too.
func converged(primary, secondary []string) bool {
	if buffer.EqualLines(primary, secondary) {
		return true
	}
	n := len(secondary)
	if n == 0 || secondary[n-1] != "" {
		return false
	}
	if len(primary) > 0 && primary[len(primary)-1] == "" {
		return false
	}
	return len(secondary) == len(primary)+1 && buffer.EqualLines(primary, secondary[:n-1])
}
