package diff

// Apply executes a script against the source sequence and returns the
// resulting sequence. The source is never mutated.
//
// Edits are applied in script order, which is self-consistent: deletions
// arrive in descending source order so earlier removals never shift the
// indices of later ones, and insertions arrive in ascending target order
// so their indices are final. Out-of-range edits are clamped; a script
// produced by Compute for the same source never needs clamping.
func Apply(from []string, script Script) []string {
	out := make([]string, len(from))
	copy(out, from)

	for _, e := range script {
		switch e.Op {
		case OpDelete:
			if e.Index < 0 || e.Index >= len(out) {
				continue
			}
			out = append(out[:e.Index], out[e.Index+1:]...)
		case OpInsert:
			idx := e.Index
			if idx < 0 {
				idx = 0
			}
			if idx > len(out) {
				idx = len(out)
			}
			out = append(out, "")
			copy(out[idx+1:], out[idx:])
			out[idx] = e.Text
		}
	}
	return out
}
