package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/darvelo/ShadowVim/internal/diff"
	"github.com/darvelo/ShadowVim/internal/engine/buffer"
	"github.com/darvelo/ShadowVim/internal/engine/cursor"
)

func newTestView(t *testing.T, cb Callbacks, lines []string) *View {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(40, 10)
	return NewView(screen, cb, lines)
}

func TestTypingReportsContent(t *testing.T) {
	var reported [][]string
	v := newTestView(t, Callbacks{
		OnContent: func(lines []string) {
			reported = append(reported, lines)
		},
	}, []string{"ab"})

	v.handleKey(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))

	if len(reported) != 1 || !buffer.EqualLines(reported[0], []string{"xab"}) {
		t.Fatalf("reported = %q", reported)
	}
	if v.Selection().Start != (buffer.Position{Line: 0, Column: 1}) {
		t.Errorf("caret = %v", v.Selection().Start)
	}
}

func TestEnterSplitsLine(t *testing.T) {
	var last []string
	v := newTestView(t, Callbacks{
		OnContent: func(lines []string) { last = lines },
	}, []string{"hello"})

	if err := v.SetSelection(cursor.Caret(buffer.Position{Line: 0, Column: 2})); err != nil {
		t.Fatal(err)
	}
	v.handleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	if !buffer.EqualLines(last, []string{"he", "llo"}) {
		t.Errorf("split = %q", last)
	}
	if v.Selection().Start != (buffer.Position{Line: 1, Column: 0}) {
		t.Errorf("caret = %v", v.Selection().Start)
	}
}

func TestBackspaceJoinsLines(t *testing.T) {
	var last []string
	v := newTestView(t, Callbacks{
		OnContent: func(lines []string) { last = lines },
	}, []string{"ab", "cd"})

	if err := v.SetSelection(cursor.Caret(buffer.Position{Line: 1, Column: 0})); err != nil {
		t.Fatal(err)
	}
	v.handleKey(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))

	if !buffer.EqualLines(last, []string{"abcd"}) {
		t.Errorf("join = %q", last)
	}
	if v.Selection().Start != (buffer.Position{Line: 0, Column: 2}) {
		t.Errorf("caret = %v", v.Selection().Start)
	}

	// Backspace at the very start is a no-op and must not notify.
	last = nil
	if err := v.SetSelection(cursor.Caret(buffer.Position{})); err != nil {
		t.Fatal(err)
	}
	v.handleKey(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	if last != nil {
		t.Errorf("no-op backspace reported content %q", last)
	}
}

func TestArrowsReportSelectionOnly(t *testing.T) {
	var contents int
	var sels []cursor.Selection
	v := newTestView(t, Callbacks{
		OnContent:   func([]string) { contents++ },
		OnSelection: func(sel cursor.Selection) { sels = append(sels, sel) },
	}, []string{"abc", "def"})

	v.handleKey(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	v.handleKey(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))

	if contents != 0 {
		t.Errorf("cursor motion should not report content, got %d reports", contents)
	}
	if len(sels) != 2 {
		t.Fatalf("expected 2 selection reports, got %d", len(sels))
	}
	if sels[1].Start != (buffer.Position{Line: 1, Column: 1}) {
		t.Errorf("final caret = %v", sels[1].Start)
	}
}

func TestApplyEditSuppressesEcho(t *testing.T) {
	var contents int
	v := newTestView(t, Callbacks{
		OnContent: func([]string) { contents++ },
	}, []string{"a", "b"})

	script := diff.Compute([]string{"a", "b"}, []string{"a", "x", "b"})
	err := v.ApplyEdit([]string{"a", "x", "b"}, script, cursor.Caret(buffer.Position{Line: 1, Column: 0}))
	if err != nil {
		t.Fatal(err)
	}

	if contents != 0 {
		t.Error("engine-issued edits must not report content")
	}
	if !buffer.EqualLines(v.Lines(), []string{"a", "x", "b"}) {
		t.Errorf("lines = %q", v.Lines())
	}
	if v.Selection().Start != (buffer.Position{Line: 1, Column: 0}) {
		t.Errorf("selection = %v", v.Selection())
	}
}

func TestApplyChangePatchesDirectly(t *testing.T) {
	v := newTestView(t, Callbacks{}, []string{"a", "b", "c"})

	change := buffer.ChangeDescriptor{FirstLine: 1, LastLine: 2, Lines: []string{"B", "B2"}}
	if err := v.ApplyChange(change); err != nil {
		t.Fatal(err)
	}
	if !buffer.EqualLines(v.Lines(), []string{"a", "B", "B2", "c"}) {
		t.Errorf("lines = %q", v.Lines())
	}
}

func TestCtrlRRequestsRefresh(t *testing.T) {
	var refreshes int
	v := newTestView(t, Callbacks{
		OnRefresh: func() { refreshes++ },
	}, []string{"a"})

	v.handleKey(tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModNone))
	if refreshes != 1 {
		t.Errorf("refreshes = %d", refreshes)
	}
}

func TestMultiByteRuneEditing(t *testing.T) {
	var last []string
	v := newTestView(t, Callbacks{
		OnContent: func(lines []string) { last = lines },
	}, []string{"aé"})

	// "é" occupies bytes 1-2; the caret after it sits at byte column 3.
	if err := v.SetSelection(cursor.Caret(buffer.Position{Line: 0, Column: 3})); err != nil {
		t.Fatal(err)
	}

	// Arrows must step over whole runes, never into the middle of one.
	v.handleKey(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	if got := v.Selection().Start.Column; got != 1 {
		t.Errorf("left over rune landed at column %d, want 1", got)
	}
	v.handleKey(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	if got := v.Selection().Start.Column; got != 0 {
		t.Errorf("left landed at column %d, want 0", got)
	}
	v.handleKey(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	v.handleKey(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	if got := v.Selection().Start.Column; got != 3 {
		t.Errorf("right over rune landed at column %d, want 3", got)
	}

	// Backspace removes the whole rune, leaving valid UTF-8.
	v.handleKey(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	if !buffer.EqualLines(last, []string{"a"}) {
		t.Errorf("backspace over rune left %q", last)
	}
	if got := v.Selection().Start.Column; got != 1 {
		t.Errorf("caret after rune backspace at column %d, want 1", got)
	}
}

func TestEmptyContentKeepsOneLine(t *testing.T) {
	v := newTestView(t, Callbacks{}, nil)
	if !buffer.EqualLines(v.Lines(), []string{""}) {
		t.Errorf("empty view should hold one empty line, got %q", v.Lines())
	}

	script := diff.Compute([]string{""}, nil)
	if err := v.ApplyEdit(nil, script, cursor.Caret(buffer.Position{})); err != nil {
		t.Fatal(err)
	}
	if !buffer.EqualLines(v.Lines(), []string{""}) {
		t.Errorf("view should never go below one line, got %q", v.Lines())
	}
}
