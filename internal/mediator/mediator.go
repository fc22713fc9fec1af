// Package mediator drives one buffer pairing: it owns the reconciliation
// engine, funnels notifications from both drivers and the token timer
// through a single serialized queue, and executes the engine's actions
// against the live buffers.
package mediator

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/darvelo/ShadowVim/internal/diff"
	"github.com/darvelo/ShadowVim/internal/engine/buffer"
	"github.com/darvelo/ShadowVim/internal/engine/cursor"
	"github.com/darvelo/ShadowVim/internal/reconcile"
)

// Primary applies engine-issued edits to the primary buffer. The driver
// must not re-report changes it is itself applying.
type Primary interface {
	ApplyEdit(lines []string, script diff.Script, cur buffer.Position) error
	SetCursor(pos buffer.Position) error
}

// Secondary applies engine-issued edits to the secondary buffer, with
// the same echo-suppression obligation as Primary.
type Secondary interface {
	ApplyEdit(lines []string, script diff.Script, sel cursor.Selection) error
	ApplyChange(change buffer.ChangeDescriptor) error
	SetSelection(sel cursor.Selection) error
}

// Signaler is the user-facing signal channel.
type Signaler interface {
	Ring()
	Alert(err error)
}

// Hooks receives sync lifecycle callbacks. All methods may be called
// from the mediator goroutine only.
type Hooks interface {
	OnSync(source string)
	OnConflict()
	OnAlert(msg string)
}

// DefaultTimeout is the token timeout used when none is configured.
const DefaultTimeout = 300 * time.Millisecond

// Option configures a Mediator.
type Option func(*Mediator)

// WithTimeout sets the initial token timeout.
func WithTimeout(d time.Duration) Option {
	return func(m *Mediator) {
		m.timeout.Store(int64(d))
	}
}

// WithHooks attaches lifecycle hooks.
func WithHooks(h Hooks) Option {
	return func(m *Mediator) {
		m.hooks = h
	}
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(m *Mediator) {
		m.log = log
	}
}

// WithQueueSize sets the event queue capacity.
func WithQueueSize(n int) Option {
	return func(m *Mediator) {
		if n > 0 {
			m.events = make(chan reconcile.Event, n)
		}
	}
}

// Mediator owns exactly one engine and BufferState. Events posted from
// driver goroutines are consumed by the single Run goroutine, so engine
// calls are strictly serialized and each event's actions are fully
// issued before the next event is dequeued.
type Mediator struct {
	id  uuid.UUID
	log zerolog.Logger

	// mu guards engine. Reduction already happens on the single Run
	// goroutine; the lock exists so State can be read from outside it.
	mu        sync.Mutex
	engine    *reconcile.Engine
	primary   Primary
	secondary Secondary
	signaler  Signaler
	hooks     Hooks

	events  chan reconcile.Event
	timeout atomic.Int64

	// timer is the single outstanding token timeout; accessed only from
	// the Run goroutine.
	timer *time.Timer
}

// New creates a mediator for one buffer pairing.
func New(state reconcile.BufferState, primary Primary, secondary Secondary, signaler Signaler, opts ...Option) *Mediator {
	m := &Mediator{
		id:        uuid.New(),
		log:       zerolog.Nop(),
		engine:    reconcile.New(state),
		primary:   primary,
		secondary: secondary,
		signaler:  signaler,
		events:    make(chan reconcile.Event, 64),
	}
	m.timeout.Store(int64(DefaultTimeout))
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.With().Str("pairing", m.id.String()).Logger()
	return m
}

// ID returns the pairing identifier.
func (m *Mediator) ID() uuid.UUID {
	return m.id
}

// SetTimeout changes the token timeout. Outstanding timers keep their
// old duration; the new one applies from the next re-arm.
func (m *Mediator) SetTimeout(d time.Duration) {
	if d > 0 {
		m.timeout.Store(int64(d))
	}
}

// State returns a copy of the engine's current state as of the last
// fully processed event.
func (m *Mediator) State() reconcile.BufferState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engine.State()
}

// Run processes events until ctx is cancelled. It must be called exactly
// once.
func (m *Mediator) Run(ctx context.Context) error {
	m.timer = time.NewTimer(time.Duration(m.timeout.Load()))
	if !m.timer.Stop() {
		<-m.timer.C
	}
	defer m.timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-m.events:
			m.step(ev)
		case <-m.timer.C:
			m.step(reconcile.TokenTimedOut{})
		}
	}
}

// step reduces one event and executes the resulting actions in order.
func (m *Mediator) step(ev reconcile.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	actions := m.engine.On(ev)
	m.log.Trace().Type("event", ev).Int("actions", len(actions)).Msg("event reduced")

	for _, a := range actions {
		if err := m.execute(a); err != nil {
			m.log.Error().Err(err).Type("action", a).Msg("action failed")
			// Collaborator failures loop back as events so the alert
			// surfaces through the same reducer path as everything else.
			for _, fa := range m.engine.On(reconcile.OperationFailed{Err: err}) {
				if alert, ok := fa.(reconcile.Alert); ok {
					m.signaler.Alert(alert.Err)
					m.fireAlert(alert.Err)
				}
			}
		}
	}
}

func (m *Mediator) execute(a reconcile.Action) error {
	switch a := a.(type) {
	case reconcile.ApplyToPrimary:
		m.fireSync(reconcile.SideSecondary)
		return m.primary.ApplyEdit(a.Lines, a.Script, a.Cursor)
	case reconcile.SetPrimaryCursor:
		return m.primary.SetCursor(a.Pos)
	case reconcile.ApplyToSecondary:
		m.fireSync(reconcile.SidePrimary)
		return m.secondary.ApplyEdit(a.Lines, a.Script, a.Selection)
	case reconcile.ApplyPartialToSecondary:
		return m.secondary.ApplyChange(a.Change)
	case reconcile.SetSecondarySelection:
		return m.secondary.SetSelection(a.Selection)
	case reconcile.ReArmTimeout:
		m.rearmTimer()
		return nil
	case reconcile.Ring:
		m.signaler.Ring()
		if m.hooks != nil {
			m.hooks.OnConflict()
		}
		return nil
	case reconcile.Alert:
		m.signaler.Alert(a.Err)
		m.fireAlert(a.Err)
		return nil
	default:
		return nil
	}
}

// rearmTimer restarts the single-slot token timer, superseding any
// pending expiry.
func (m *Mediator) rearmTimer() {
	if !m.timer.Stop() {
		select {
		case <-m.timer.C:
		default:
		}
	}
	m.timer.Reset(time.Duration(m.timeout.Load()))
}

func (m *Mediator) fireSync(source reconcile.Side) {
	if m.hooks != nil {
		m.hooks.OnSync(source.String())
	}
}

func (m *Mediator) fireAlert(err error) {
	if m.hooks != nil && err != nil {
		m.hooks.OnAlert(err.Error())
	}
}

// post enqueues an event for the Run goroutine.
func (m *Mediator) post(ev reconcile.Event) {
	m.events <- ev
}

// PrimaryContentChanged reports new primary content with the engine's
// own change descriptor.
func (m *Mediator) PrimaryContentChanged(lines []string, change buffer.ChangeDescriptor) {
	m.post(reconcile.PrimaryContentChanged{Lines: lines, Change: change})
}

// PrimaryCursorChanged reports a primary cursor move or mode change.
func (m *Mediator) PrimaryCursorChanged(cur cursor.Cursor) {
	m.post(reconcile.PrimaryCursorChanged{Cursor: cur})
}

// SecondaryFocusGained reports the secondary buffer regaining focus with
// its currently observed content and selection.
func (m *Mediator) SecondaryFocusGained(lines []string, sel cursor.Selection) {
	m.post(reconcile.SecondaryFocusGained{Lines: lines, Selection: sel})
}

// SecondaryContentChanged reports new secondary content.
func (m *Mediator) SecondaryContentChanged(lines []string) {
	m.post(reconcile.SecondaryContentChanged{Lines: lines})
}

// SecondarySelectionChanged reports a secondary selection change.
func (m *Mediator) SecondarySelectionChanged(sel cursor.Selection) {
	m.post(reconcile.SecondarySelectionChanged{Selection: sel})
}

// RequestRefresh forces a full resync with source as ground truth.
func (m *Mediator) RequestRefresh(source reconcile.Side) {
	m.post(reconcile.RefreshRequested{Source: source})
}

// OperationFailed reports a collaborator failure.
func (m *Mediator) OperationFailed(err error) {
	m.post(reconcile.OperationFailed{Err: err})
}
