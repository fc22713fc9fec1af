package reconcile

import (
	"github.com/darvelo/ShadowVim/internal/diff"
	"github.com/darvelo/ShadowVim/internal/engine/buffer"
	"github.com/darvelo/ShadowVim/internal/engine/cursor"
)

// Engine owns one BufferState and reduces events into actions.
// It is not safe for concurrent use; the owning mediator serializes
// every call to On.
type Engine struct {
	state BufferState
}

// New creates an engine over the given initial state.
func New(state BufferState) *Engine {
	return &Engine{state: state}
}

// State returns a copy of the current state, with content slices cloned
// so callers cannot alias the engine's internals.
func (e *Engine) State() BufferState {
	s := e.state
	s.Primary.Lines = buffer.CloneLines(s.Primary.Lines)
	s.Secondary.Lines = buffer.CloneLines(s.Secondary.Lines)
	return s
}

// On consumes one event, mutates the state, and returns the ordered
// actions to execute. It never fails; collaborator failures arrive as
// OperationFailed events and leave as Alert actions.
func (e *Engine) On(ev Event) []Action {
	switch ev := ev.(type) {
	case TokenTimedOut:
		return e.onTimeout()
	case RefreshRequested:
		return e.onRefresh(ev.Source)
	case PrimaryContentChanged:
		return e.onPrimaryContent(ev)
	case PrimaryCursorChanged:
		return e.onPrimaryCursor(ev)
	case SecondaryFocusGained:
		e.state.Secondary.Selection = ev.Selection
		return e.onSecondaryContent(ev.Lines)
	case SecondaryContentChanged:
		return e.onSecondaryContent(ev.Lines)
	case SecondarySelectionChanged:
		return e.onSecondarySelection(ev.Selection)
	case OperationFailed:
		return []Action{Alert{Err: ev.Err}}
	default:
		return nil
	}
}

// onTimeout releases or hands back the token. A stale acquisition is
// treated as the owner intending to hand authority back via a full sync.
func (e *Engine) onTimeout() []Action {
	switch e.state.Token.State {
	case TokenFree:
		return nil
	case TokenSynchronizing:
		e.state.Token = FreeToken()
		return nil
	default:
		return e.synchronize(e.state.Token.Owner)
	}
}

func (e *Engine) onRefresh(source Side) []Action {
	if e.state.Token.State != TokenFree {
		return []Action{Ring{}}
	}
	return e.synchronize(source)
}

func (e *Engine) onPrimaryContent(ev PrimaryContentChanged) []Action {
	e.state.Primary.Lines = buffer.CloneLines(ev.Lines)

	if !e.acquire(SidePrimary) {
		return nil
	}

	// Fold the issued corrections into the recorded secondary state.
	// Drivers suppress echoes of engine-issued edits, so no event will
	// ever report these back; later transitions must already see them.
	sel := e.state.Primary.Cursor.ProjectSelection()
	e.state.Secondary.Lines = ev.Change.Apply(e.state.Secondary.Lines)
	e.state.Secondary.Selection = sel

	return []Action{
		ReArmTimeout{},
		ApplyPartialToSecondary{Change: ev.Change},
		SetSecondarySelection{Selection: sel},
	}
}

func (e *Engine) onPrimaryCursor(ev PrimaryCursorChanged) []Action {
	e.state.Primary.Cursor = ev.Cursor

	if !e.acquire(SidePrimary) {
		return nil
	}

	sel := ev.Cursor.ProjectSelection()
	e.state.Secondary.Selection = sel
	return []Action{
		ReArmTimeout{},
		SetSecondarySelection{Selection: sel},
	}
}

// onSecondaryContent handles both focus-with-content and plain content
// changes. The primary has no notion of a partial change descriptor
// originating from the secondary, so propagation is always a full diff.
func (e *Engine) onSecondaryContent(lines []string) []Action {
	e.state.Secondary.Lines = buffer.CloneLines(lines)

	if !e.acquire(SideSecondary) {
		return nil
	}

	actions := []Action{ReArmTimeout{}}
	script := diff.Compute(e.state.Primary.Lines, e.state.Secondary.Lines)
	if !script.IsEmpty() {
		actions = append(actions, ApplyToPrimary{
			Lines:  buffer.CloneLines(e.state.Secondary.Lines),
			Script: script,
			Cursor: e.state.Secondary.Selection.Start,
		})
		// Fold the issued correction; a same-owner follow-up edit must
		// diff against the content already sent, not the stale base.
		e.state.Primary.Lines = buffer.CloneLines(e.state.Secondary.Lines)
		e.state.Primary.Cursor.Pos = e.state.Secondary.Selection.Start
	}
	return actions
}

func (e *Engine) onSecondarySelection(sel cursor.Selection) []Action {
	e.state.Secondary.Selection = sel

	// A selection landing where the primary cursor already is carries no
	// information; acquiring for it would only block the primary. This
	// also swallows the echo of our own SetSecondarySelection actions.
	if sel.Start == e.state.Primary.Cursor.Pos {
		return nil
	}

	if !e.acquire(SideSecondary) {
		return nil
	}

	e.state.Primary.Cursor.Pos = sel.Start
	return []Action{
		ReArmTimeout{},
		SetPrimaryCursor{Pos: sel.Start},
	}
}

// acquire attempts to take the token for the given side. It succeeds iff
// the token is free or already held by that side.
func (e *Engine) acquire(side Side) bool {
	switch e.state.Token.State {
	case TokenFree:
		e.state.Token = AcquiredBy(side)
		return true
	case TokenAcquired:
		if e.state.Token.Owner == side {
			return true
		}
		return false
	default:
		return false
	}
}

// synchronize resolves divergence by forcing the non-source side to the
// source side's content. If both sides already agree (after reconciling
// the trailing-empty-line convention) the token is simply released.
// The issued correction is folded into the non-source side's recorded
// state, since its driver will suppress the echo.
func (e *Engine) synchronize(source Side) []Action {
	if converged(e.state.Primary.Lines, e.state.Secondary.Lines) {
		e.state.Token = FreeToken()
		return nil
	}

	var apply Action
	if source == SidePrimary {
		sel := e.state.Primary.Cursor.ProjectSelection()
		apply = ApplyToSecondary{
			Lines:     buffer.CloneLines(e.state.Primary.Lines),
			Script:    diff.Compute(e.state.Secondary.Lines, e.state.Primary.Lines),
			Selection: sel,
		}
		e.state.Secondary.Lines = buffer.CloneLines(e.state.Primary.Lines)
		e.state.Secondary.Selection = sel
	} else {
		apply = ApplyToPrimary{
			Lines:  buffer.CloneLines(e.state.Secondary.Lines),
			Script: diff.Compute(e.state.Primary.Lines, e.state.Secondary.Lines),
			Cursor: e.state.Secondary.Selection.Start,
		}
		e.state.Primary.Lines = buffer.CloneLines(e.state.Secondary.Lines)
		e.state.Primary.Cursor.Pos = e.state.Secondary.Selection.Start
	}

	e.state.Token = SynchronizingToken()
	return []Action{apply, ReArmTimeout{}}
}
