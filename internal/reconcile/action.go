package reconcile

import (
	"github.com/darvelo/ShadowVim/internal/diff"
	"github.com/darvelo/ShadowVim/internal/engine/buffer"
	"github.com/darvelo/ShadowVim/internal/engine/cursor"
)

// Action is one corrective effect the mediator must execute against the
// live buffers, the token timer, or the user-facing signal channel. The
// set of actions is closed. Actions emitted by one On call must be
// executed in order before the next event is processed.
type Action interface {
	isAction()
}

// ApplyToPrimary replaces the primary buffer's content per the edit
// script, then moves its cursor.
type ApplyToPrimary struct {
	Lines  []string
	Script diff.Script
	Cursor buffer.Position
}

// SetPrimaryCursor moves the primary buffer's cursor.
type SetPrimaryCursor struct {
	Pos buffer.Position
}

// ApplyToSecondary replaces the secondary buffer's content per the edit
// script, then sets its selection.
type ApplyToSecondary struct {
	Lines     []string
	Script    diff.Script
	Selection cursor.Selection
}

// ApplyPartialToSecondary patches the secondary buffer directly with the
// primary engine's own delta, bypassing diffing.
type ApplyPartialToSecondary struct {
	Change buffer.ChangeDescriptor
}

// SetSecondarySelection sets the secondary buffer's selection.
type SetSecondarySelection struct {
	Selection cursor.Selection
}

// ReArmTimeout (re)starts the token timeout, superseding any pending one.
type ReArmTimeout struct{}

// Ring notifies the user that an operation was rejected.
type Ring struct{}

// Alert surfaces a collaborator failure to the user.
type Alert struct {
	Err error
}

func (ApplyToPrimary) isAction()          {}
func (SetPrimaryCursor) isAction()        {}
func (ApplyToSecondary) isAction()        {}
func (ApplyPartialToSecondary) isAction() {}
func (SetSecondarySelection) isAction()   {}
func (ReArmTimeout) isAction()            {}
func (Ring) isAction()                    {}
func (Alert) isAction()                   {}
