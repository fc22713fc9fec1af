// Package mode defines the editor modes reported by the primary editing
// engine and their mapping from the engine's short mode names.
//
// Only a handful of modes influence reconciliation (insert-like modes
// collapse the projected selection, everything else keeps a one-column
// block); the rest are carried through unchanged so callers can still
// display or log them.
package mode

// Mode identifies the editing mode of the primary engine.
type Mode uint8

const (
	// Normal is the default navigation mode.
	Normal Mode = iota

	// Insert is character insertion mode.
	Insert

	// Replace overwrites characters under the cursor.
	Replace

	// Visual is character-wise visual selection.
	Visual

	// VisualLine is line-wise visual selection.
	VisualLine

	// VisualBlock is block-wise (rectangular) visual selection.
	VisualBlock

	// Select is character-wise select mode.
	Select

	// SelectLine is line-wise select mode.
	SelectLine

	// SelectBlock is block-wise select mode.
	SelectBlock

	// OperatorPending is normal mode waiting for a motion.
	OperatorPending

	// CommandLine is command-line (ex) mode.
	CommandLine

	// Terminal is embedded-terminal mode.
	Terminal

	// Other covers any mode the engine reports that we do not model.
	Other
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Insert:
		return "insert"
	case Replace:
		return "replace"
	case Visual:
		return "visual"
	case VisualLine:
		return "visual-line"
	case VisualBlock:
		return "visual-block"
	case Select:
		return "select"
	case SelectLine:
		return "select-line"
	case SelectBlock:
		return "select-block"
	case OperatorPending:
		return "operator-pending"
	case CommandLine:
		return "command-line"
	case Terminal:
		return "terminal"
	default:
		return "other"
	}
}

// FromShortName maps the primary engine's short mode name (the first
// character(s) of its mode() report, e.g. "n", "i", "V", "\x16") to a Mode.
// Unknown names map to Other.
func FromShortName(name string) Mode {
	switch name {
	case "n", "niI", "niR", "niV":
		return Normal
	case "i", "ic", "ix":
		return Insert
	case "R", "Rc", "Rx", "Rv":
		return Replace
	case "v", "vs":
		return Visual
	case "V", "Vs":
		return VisualLine
	case "\x16", "\x16s", "CTRL-V":
		return VisualBlock
	case "s":
		return Select
	case "S":
		return SelectLine
	case "\x13", "CTRL-S":
		return SelectBlock
	case "no", "nov", "noV":
		return OperatorPending
	case "c", "cv", "ce":
		return CommandLine
	case "t", "nt":
		return Terminal
	default:
		return Other
	}
}

// IsInsertLike reports whether the mode inserts or overwrites text at a
// single point. Insert-like modes project the cursor as a collapsed
// selection rather than a one-column block.
func (m Mode) IsInsertLike() bool {
	return m == Insert || m == Replace
}

// IsVisual reports whether the mode is one of the visual selection modes.
func (m Mode) IsVisual() bool {
	return m == Visual || m == VisualLine || m == VisualBlock
}

// IsSelect reports whether the mode is one of the select modes.
func (m Mode) IsSelect() bool {
	return m == Select || m == SelectLine || m == SelectBlock
}
