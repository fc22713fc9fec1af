package buffer

import "strings"

// EqualLines returns true if the two line sequences have identical length
// and content. Nil and empty sequences compare equal.
func EqualLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// CloneLines returns an independent copy of the line sequence.
// A nil input returns nil.
func CloneLines(lines []string) []string {
	if lines == nil {
		return nil
	}
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}

// SplitLines splits text into its line sequence. The final newline, if
// any, does not produce a trailing empty line; an empty string produces
// a single empty line.
func SplitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// JoinLines joins a line sequence back into text with newline separators.
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
