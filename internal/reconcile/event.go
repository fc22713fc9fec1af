package reconcile

import (
	"github.com/darvelo/ShadowVim/internal/engine/buffer"
	"github.com/darvelo/ShadowVim/internal/engine/cursor"
)

// Event is one input to the reconciliation engine. The set of events is
// closed; external notifications translate 1:1 into these types.
type Event interface {
	isEvent()
}

// TokenTimedOut reports that the outstanding token timeout elapsed with
// no further activity.
type TokenTimedOut struct{}

// RefreshRequested forces a full resync using Source as ground truth.
type RefreshRequested struct {
	Source Side
}

// PrimaryContentChanged reports a content change in the primary buffer.
// Change carries the engine's own delta, used to patch the secondary
// side cheaply without recomputing a diff.
type PrimaryContentChanged struct {
	Lines  []string
	Change buffer.ChangeDescriptor
}

// PrimaryCursorChanged reports a cursor move or mode change in the
// primary buffer.
type PrimaryCursorChanged struct {
	Cursor cursor.Cursor
}

// SecondaryFocusGained reports that the secondary buffer regained focus.
// Content and selection are supplied because a third party may have
// mutated the buffer while it was unfocused.
type SecondaryFocusGained struct {
	Lines     []string
	Selection cursor.Selection
}

// SecondaryContentChanged reports a content change in the secondary
// buffer.
type SecondaryContentChanged struct {
	Lines []string
}

// SecondarySelectionChanged reports a selection change in the secondary
// buffer.
type SecondarySelectionChanged struct {
	Selection cursor.Selection
}

// OperationFailed reports an opaque failure from a collaborator.
type OperationFailed struct {
	Err error
}

func (TokenTimedOut) isEvent()             {}
func (RefreshRequested) isEvent()          {}
func (PrimaryContentChanged) isEvent()     {}
func (PrimaryCursorChanged) isEvent()      {}
func (SecondaryFocusGained) isEvent()      {}
func (SecondaryContentChanged) isEvent()   {}
func (SecondarySelectionChanged) isEvent() {}
func (OperationFailed) isEvent()           {}
