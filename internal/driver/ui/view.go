package ui

import (
	"context"
	"sync"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/darvelo/ShadowVim/internal/diff"
	"github.com/darvelo/ShadowVim/internal/engine/buffer"
	"github.com/darvelo/ShadowVim/internal/engine/cursor"
)

// Callbacks receives the view's change notifications. Nil callbacks are
// skipped. Only user-originated changes are reported; corrections
// applied through ApplyEdit, ApplyChange, and SetSelection never fire
// callbacks, which is this driver's echo suppression.
type Callbacks struct {
	OnContent   func(lines []string)
	OnSelection func(sel cursor.Selection)
	OnFocus     func(lines []string, sel cursor.Selection)
	OnRefresh   func()
}

// View is an editable text view over a tcell screen. It implements the
// mediator's Secondary and Signaler contracts.
type View struct {
	screen tcell.Screen
	cb     Callbacks

	mu     sync.Mutex
	lines  []string
	sel    cursor.Selection
	top    int
	status string
}

// NewView creates a view over an initialized screen.
func NewView(screen tcell.Screen, cb Callbacks, initial []string) *View {
	lines := buffer.CloneLines(initial)
	if len(lines) == 0 {
		lines = []string{""}
	}
	return &View{
		screen: screen,
		cb:     cb,
		lines:  lines,
	}
}

// Run polls terminal events until ctx is cancelled or the user quits.
func (v *View) Run(ctx context.Context) error {
	v.Draw()

	events := make(chan tcell.Event)
	quit := make(chan struct{})
	go v.screen.ChannelEvents(events, quit)
	defer close(quit)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !v.handleEvent(ev) {
				return nil
			}
		}
	}
}

// handleEvent processes one terminal event. It returns false on quit.
func (v *View) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
		v.Draw()

	case *tcell.EventFocus:
		if ev.Focused {
			v.mu.Lock()
			lines := buffer.CloneLines(v.lines)
			sel := v.sel
			v.mu.Unlock()
			if v.cb.OnFocus != nil {
				v.cb.OnFocus(lines, sel)
			}
		}

	case *tcell.EventKey:
		return v.handleKey(ev)
	}
	return true
}

func (v *View) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return false

	case tcell.KeyCtrlR:
		if v.cb.OnRefresh != nil {
			v.cb.OnRefresh()
		}

	case tcell.KeyRune:
		v.insertRune(ev.Rune())

	case tcell.KeyEnter:
		v.splitLine()

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		v.deleteBack()

	case tcell.KeyLeft:
		v.moveCaret(0, -1)
	case tcell.KeyRight:
		v.moveCaret(0, 1)
	case tcell.KeyUp:
		v.moveCaret(-1, 0)
	case tcell.KeyDown:
		v.moveCaret(1, 0)
	}
	return true
}

func (v *View) insertRune(r rune) {
	v.mu.Lock()
	pos := v.sel.Start.Clamp(v.lines)
	line := v.lines[pos.Line]
	v.lines[pos.Line] = line[:pos.Column] + string(r) + line[pos.Column:]
	v.sel = cursor.Caret(buffer.Position{Line: pos.Line, Column: pos.Column + len(string(r))})
	lines := buffer.CloneLines(v.lines)
	v.mu.Unlock()

	v.Draw()
	v.notifyContent(lines)
}

func (v *View) splitLine() {
	v.mu.Lock()
	pos := v.sel.Start.Clamp(v.lines)
	line := v.lines[pos.Line]
	head, tail := line[:pos.Column], line[pos.Column:]

	out := make([]string, 0, len(v.lines)+1)
	out = append(out, v.lines[:pos.Line]...)
	out = append(out, head, tail)
	out = append(out, v.lines[pos.Line+1:]...)
	v.lines = out
	v.sel = cursor.Caret(buffer.Position{Line: pos.Line + 1, Column: 0})
	lines := buffer.CloneLines(v.lines)
	v.mu.Unlock()

	v.Draw()
	v.notifyContent(lines)
}

func (v *View) deleteBack() {
	v.mu.Lock()
	pos := v.sel.Start.Clamp(v.lines)
	switch {
	case pos.Column > 0:
		line := v.lines[pos.Line]
		// Columns are byte offsets; remove the whole previous rune.
		_, size := utf8.DecodeLastRuneInString(line[:pos.Column])
		v.lines[pos.Line] = line[:pos.Column-size] + line[pos.Column:]
		v.sel = cursor.Caret(buffer.Position{Line: pos.Line, Column: pos.Column - size})
	case pos.Line > 0:
		prev := v.lines[pos.Line-1]
		v.lines[pos.Line-1] = prev + v.lines[pos.Line]
		v.lines = append(v.lines[:pos.Line], v.lines[pos.Line+1:]...)
		v.sel = cursor.Caret(buffer.Position{Line: pos.Line - 1, Column: len(prev)})
	default:
		v.mu.Unlock()
		return
	}
	lines := buffer.CloneLines(v.lines)
	v.mu.Unlock()

	v.Draw()
	v.notifyContent(lines)
}

func (v *View) moveCaret(dl, dc int) {
	v.mu.Lock()
	pos := v.sel.Start.Clamp(v.lines)
	switch {
	case dc > 0:
		if line := v.lines[pos.Line]; pos.Column < len(line) {
			_, size := utf8.DecodeRuneInString(line[pos.Column:])
			pos.Column += size
		}
	case dc < 0:
		if pos.Column > 0 {
			_, size := utf8.DecodeLastRuneInString(v.lines[pos.Line][:pos.Column])
			pos.Column -= size
		}
	case dl != 0:
		pos.Line += dl
		pos = pos.Clamp(v.lines)
		pos.Column = runeBoundary(v.lines[pos.Line], pos.Column)
	}
	v.sel = cursor.Caret(pos)
	sel := v.sel
	v.mu.Unlock()

	v.Draw()
	if v.cb.OnSelection != nil {
		v.cb.OnSelection(sel)
	}
}

func (v *View) notifyContent(lines []string) {
	if v.cb.OnContent != nil {
		v.cb.OnContent(lines)
	}
}

// Lines returns a copy of the view's content.
func (v *View) Lines() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return buffer.CloneLines(v.lines)
}

// Selection returns the current selection.
func (v *View) Selection() cursor.Selection {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sel
}

// ApplyEdit replaces content per the edit script and sets the selection.
func (v *View) ApplyEdit(lines []string, script diff.Script, sel cursor.Selection) error {
	v.mu.Lock()
	v.lines = diff.Apply(v.lines, script)
	if len(v.lines) == 0 {
		v.lines = []string{""}
	}
	v.sel = sel.Clamp(v.lines)
	v.mu.Unlock()

	v.Draw()
	return nil
}

// ApplyChange patches content directly with the primary engine's delta.
func (v *View) ApplyChange(change buffer.ChangeDescriptor) error {
	v.mu.Lock()
	v.lines = change.Apply(v.lines)
	if len(v.lines) == 0 {
		v.lines = []string{""}
	}
	v.mu.Unlock()

	v.Draw()
	return nil
}

// SetSelection sets the selection.
func (v *View) SetSelection(sel cursor.Selection) error {
	v.mu.Lock()
	v.sel = sel.Clamp(v.lines)
	v.mu.Unlock()

	v.Draw()
	return nil
}

// Ring sounds the terminal bell.
func (v *View) Ring() {
	v.screen.Beep()
}

// Alert shows the error in the status line.
func (v *View) Alert(err error) {
	v.mu.Lock()
	v.status = err.Error()
	v.mu.Unlock()
	v.Draw()
}

// Draw renders the view.
func (v *View) Draw() {
	v.mu.Lock()
	defer v.mu.Unlock()

	width, height := v.screen.Size()
	if height == 0 {
		return
	}
	textHeight := height - 1

	// Keep the caret visible.
	caret := v.sel.Start.Clamp(v.lines)
	if caret.Line < v.top {
		v.top = caret.Line
	}
	if textHeight > 0 && caret.Line >= v.top+textHeight {
		v.top = caret.Line - textHeight + 1
	}

	v.screen.Clear()

	normal := tcell.StyleDefault
	selected := tcell.StyleDefault.Reverse(true)
	sel := v.sel.Normalize()

	for row := 0; row < textHeight; row++ {
		idx := v.top + row
		if idx >= len(v.lines) {
			break
		}
		line := v.lines[idx]
		// Screen cells advance one per rune; selection columns are byte
		// offsets into the line.
		x := 0
		for i, r := range line {
			if x >= width {
				break
			}
			style := normal
			if selectionCovers(sel, idx, i) {
				style = selected
			}
			v.screen.SetContent(x, row, r, nil, style)
			x++
		}
		// A caret at end of line still needs a visible cell.
		if sel.IsEmpty() && caret.Line == idx && caret.Column >= len(line) && x < width {
			v.screen.SetContent(x, row, ' ', nil, selected)
		}
	}

	x := 0
	for _, r := range v.status {
		if x >= width {
			break
		}
		v.screen.SetContent(x, height-1, r, nil, normal.Reverse(true))
		x++
	}
	for ; x < width; x++ {
		v.screen.SetContent(x, height-1, ' ', nil, normal.Reverse(true))
	}

	v.screen.Show()
}

// runeBoundary backs col up to the start of the rune containing it, so
// vertical caret motion never lands mid-rune.
func runeBoundary(line string, col int) int {
	for col > 0 && col < len(line) && !utf8.RuneStart(line[col]) {
		col--
	}
	return col
}

// selectionCovers reports whether the normalized selection covers the
// cell at (line, col). An empty selection covers only its caret cell.
func selectionCovers(sel cursor.Selection, line, col int) bool {
	pos := buffer.Position{Line: line, Column: col}
	if sel.IsEmpty() {
		return pos == sel.Start
	}
	return !pos.Before(sel.Start) && pos.Before(sel.End)
}
