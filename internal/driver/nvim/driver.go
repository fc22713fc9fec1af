package nvim

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/darvelo/ShadowVim/internal/diff"
	"github.com/darvelo/ShadowVim/internal/engine/buffer"
	"github.com/darvelo/ShadowVim/internal/engine/cursor"
)

// Handlers receives translated notifications from the bridge. All
// callbacks are invoked from the driver's read goroutine, one at a time.
// Nil callbacks are skipped.
type Handlers struct {
	// OnContent is called with the full mirrored content and the
	// engine's own change descriptor.
	OnContent func(lines []string, change buffer.ChangeDescriptor)

	// OnCursor is called with the engine's cursor and mode.
	OnCursor func(cur cursor.Cursor)

	// OnError is called with engine-side faults.
	OnError func(err error)

	// OnRefresh is called when the engine requests a full resync with
	// itself as ground truth.
	OnRefresh func()
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(d *Driver) {
		d.log = log
	}
}

// WithInitialLines seeds the driver's buffer mirror, for pairings where
// the content is known before the bridge reports it.
func WithInitialLines(lines []string) Option {
	return func(d *Driver) {
		d.lines = buffer.CloneLines(lines)
	}
}

// Driver translates between the mediator and the bridge process.
// It satisfies the mediator's Primary interface.
type Driver struct {
	log      zerolog.Logger
	handlers Handlers

	r io.Reader

	// wmu serializes protocol writes.
	wmu sync.Mutex
	w   io.Writer

	// mu guards the buffer mirror.
	mu    sync.Mutex
	lines []string

	// pendingEchoes counts outstanding self-originated writes whose
	// change notifications must be swallowed.
	pendingEchoes atomic.Int64
}

// New creates a driver over an established bridge connection.
func New(r io.Reader, w io.Writer, handlers Handlers, opts ...Option) *Driver {
	d := &Driver{
		log:      zerolog.Nop(),
		handlers: handlers,
		r:        r,
		w:        w,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Process is a bridge subprocess with its driver attached.
type Process struct {
	*Driver
	cmd *exec.Cmd
}

// Spawn starts the bridge process and returns a driver wired to its
// stdio. The process is terminated when ctx is cancelled.
func Spawn(ctx context.Context, argv []string, handlers Handlers, opts ...Option) (*Process, error) {
	if len(argv) == 0 {
		return nil, errors.New("empty bridge command")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("opening bridge stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("opening bridge stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting bridge %q: %w", argv[0], err)
	}

	return &Process{
		Driver: New(stdout, stdin, handlers, opts...),
		cmd:    cmd,
	}, nil
}

// Wait blocks until the bridge process exits.
func (p *Process) Wait() error {
	return p.cmd.Wait()
}

// Lines returns a copy of the driver's buffer mirror.
func (d *Driver) Lines() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return buffer.CloneLines(d.lines)
}

// Run reads and dispatches notifications until the bridge connection
// closes or ctx is cancelled.
func (d *Driver) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(d.r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := scanner.Text()
		if line == "" {
			continue
		}

		msg, err := decodeNotification(line)
		if err != nil {
			d.log.Warn().Err(err).Msg("dropping malformed notification")
			continue
		}
		d.dispatch(msg)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading bridge stream: %w", err)
	}
	return nil
}

func (d *Driver) dispatch(msg any) {
	switch msg := msg.(type) {
	case linesNotification:
		// Echoes of our own setlines writes are swallowed before touching
		// the mirror: ApplyEdit already set it to the final content, so
		// re-applying the echoed change would double the edit.
		if d.pendingEchoes.Load() > 0 {
			d.pendingEchoes.Add(-1)
			d.log.Trace().Msg("suppressed self-originated change echo")
			return
		}

		d.mu.Lock()
		d.lines = msg.Change.Apply(d.lines)
		lines := buffer.CloneLines(d.lines)
		d.mu.Unlock()

		if d.handlers.OnContent != nil {
			d.handlers.OnContent(lines, msg.Change)
		}

	case cursorNotification:
		if d.handlers.OnCursor != nil {
			d.handlers.OnCursor(cursor.New(msg.Pos, msg.Mode))
		}

	case errorNotification:
		if d.handlers.OnError != nil {
			d.handlers.OnError(errors.New(msg.Message))
		}

	case refreshNotification:
		if d.handlers.OnRefresh != nil {
			d.handlers.OnRefresh()
		}
	}
}

// ApplyEdit sends the edit script as a sequence of setlines messages and
// then moves the cursor. The script's own ordering (deletions in
// descending order, then insertions in ascending order) keeps every
// message's line range valid on the engine side.
func (d *Driver) ApplyEdit(lines []string, script diff.Script, cur buffer.Position) error {
	for _, e := range script {
		var msg string
		switch e.Op {
		case diff.OpDelete:
			msg = encodeSetLines(e.Index, e.Index+1, nil)
		case diff.OpInsert:
			msg = encodeSetLines(e.Index, e.Index, []string{e.Text})
		default:
			continue
		}
		d.pendingEchoes.Add(1)
		if err := d.send(msg); err != nil {
			d.pendingEchoes.Add(-1)
			return err
		}
	}

	d.mu.Lock()
	d.lines = buffer.CloneLines(lines)
	d.mu.Unlock()

	return d.SetCursor(cur)
}

// SetCursor moves the engine's cursor.
func (d *Driver) SetCursor(pos buffer.Position) error {
	return d.send(encodeSetCursor(pos))
}

func (d *Driver) send(msg string) error {
	d.wmu.Lock()
	defer d.wmu.Unlock()
	if _, err := io.WriteString(d.w, msg+"\n"); err != nil {
		return fmt.Errorf("writing to bridge: %w", err)
	}
	return nil
}
