package diff

import "fmt"

// Op is the kind of a single edit.
type Op uint8

const (
	// OpDelete removes the line at Index from the source sequence.
	OpDelete Op = iota

	// OpInsert inserts Text so that it ends up at Index in the target
	// sequence.
	OpInsert
)

// String returns the operation name.
func (op Op) String() string {
	switch op {
	case OpDelete:
		return "delete"
	case OpInsert:
		return "insert"
	default:
		return "unknown"
	}
}

// Edit is a single line insertion or deletion.
type Edit struct {
	Op    Op
	Index int
	Text  string // replacement line, only set for insertions
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.Op == OpDelete {
		return fmt.Sprintf("delete@%d", e.Index)
	}
	return fmt.Sprintf("insert@%d(%q)", e.Index, e.Text)
}

// Script is an ordered edit script: deletions first (descending source
// index), then insertions (ascending target index). Applying the edits
// in order transforms the source sequence into the target.
type Script []Edit

// IsEmpty returns true if the script contains no edits.
func (s Script) IsEmpty() bool {
	return len(s) == 0
}

// Compute returns the minimal edit script transforming from into to.
func Compute(from, to []string) Script {
	// Strip the common prefix and suffix; Myers runs on the middle only.
	n, m := len(from), len(to)
	var prefix int
	for prefix < n && prefix < m && from[prefix] == to[prefix] {
		prefix++
	}
	var suffix int
	for suffix < n-prefix && suffix < m-prefix && from[n-1-suffix] == to[m-1-suffix] {
		suffix++
	}
	mid, tid := from[prefix:n-suffix], to[prefix:m-suffix]
	if len(mid) == 0 && len(tid) == 0 {
		return nil
	}

	dels, ins := shortestEdit(mid, tid)

	script := make(Script, 0, len(dels)+len(ins))
	for _, d := range dels {
		script = append(script, Edit{Op: OpDelete, Index: d + prefix})
	}
	// Insertions were collected back to front; emit them ascending.
	for i := len(ins) - 1; i >= 0; i-- {
		e := ins[i]
		e.Index += prefix
		script = append(script, e)
	}
	return script
}

// shortestEdit runs the Myers greedy search over the trimmed sequences
// and backtracks the recorded trace into deletions (descending indices
// into from) and insertions (descending indices into to).
func shortestEdit(from, to []string) (dels []int, ins []Edit) {
	n, m := len(from), len(to)
	max := n + m
	off := max
	v := make([]int, 2*max+1)
	trace := make([][]int, 0, max+1)

	depth := 0
search:
	for d := 0; d <= max; d++ {
		snapshot := make([]int, len(v))
		copy(snapshot, v)
		trace = append(trace, snapshot)

		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[off+k-1] < v[off+k+1]) {
				x = v[off+k+1]
			} else {
				x = v[off+k-1] + 1
			}
			y := x - k
			for x < n && y < m && from[x] == to[y] {
				x++
				y++
			}
			v[off+k] = x
			if x >= n && y >= m {
				depth = d
				break search
			}
		}
	}

	x, y := n, m
	for d := depth; d > 0; d-- {
		prev := trace[d]
		k := x - y

		var prevK int
		if k == -d || (k != d && prev[off+k-1] < prev[off+k+1]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := prev[off+prevK]
		prevY := prevX - prevK

		// Walk back over the snake.
		for x > prevX && y > prevY {
			x--
			y--
		}

		if prevK == k+1 {
			// Downward move: to[prevY] was inserted.
			ins = append(ins, Edit{Op: OpInsert, Index: prevY, Text: to[prevY]})
		} else {
			// Rightward move: from[prevX] was deleted.
			dels = append(dels, prevX)
		}
		x, y = prevX, prevY
	}

	return dels, ins
}
