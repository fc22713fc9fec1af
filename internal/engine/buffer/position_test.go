package buffer

import "testing"

func TestPositionCompare(t *testing.T) {
	a := Position{Line: 1, Column: 2}
	b := Position{Line: 1, Column: 5}
	c := Position{Line: 2, Column: 0}
	d := Position{Line: 1, Column: 2}

	if a.Compare(b) != -1 {
		t.Error("a should be before b")
	}
	if b.Compare(a) != 1 {
		t.Error("b should be after a")
	}
	if a.Compare(c) != -1 {
		t.Error("line ordering should dominate column ordering")
	}
	if a.Compare(d) != 0 {
		t.Error("equal positions should compare 0")
	}
	if !a.Before(c) || !c.After(a) {
		t.Error("Before/After disagree with Compare")
	}
}

func TestPositionIsZero(t *testing.T) {
	if !(Position{}).IsZero() {
		t.Error("zero value should be zero position")
	}
	if (Position{Line: 0, Column: 1}).IsZero() {
		t.Error("(0:1) is not the zero position")
	}
}

func TestPositionClamp(t *testing.T) {
	lines := []string{"hello", "hi"}

	tests := []struct {
		in   Position
		want Position
	}{
		{Position{Line: 0, Column: 3}, Position{Line: 0, Column: 3}},
		{Position{Line: 0, Column: 99}, Position{Line: 0, Column: 5}},
		{Position{Line: 9, Column: 0}, Position{Line: 1, Column: 0}},
		{Position{Line: 9, Column: 99}, Position{Line: 1, Column: 2}},
		{Position{Line: -1, Column: -1}, Position{Line: 0, Column: 0}},
	}

	for _, tt := range tests {
		if got := tt.in.Clamp(lines); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if got := (Position{Line: 3, Column: 4}).Clamp(nil); !got.IsZero() {
		t.Errorf("clamping against empty content should yield zero, got %v", got)
	}
}

func TestEqualLines(t *testing.T) {
	if !EqualLines(nil, []string{}) {
		t.Error("nil and empty should be equal")
	}
	if !EqualLines([]string{"a", "b"}, []string{"a", "b"}) {
		t.Error("identical sequences should be equal")
	}
	if EqualLines([]string{"a"}, []string{"a", "b"}) {
		t.Error("different lengths should not be equal")
	}
	if EqualLines([]string{"a", "b"}, []string{"a", "c"}) {
		t.Error("different content should not be equal")
	}
}

func TestCloneLines(t *testing.T) {
	orig := []string{"a", "b"}
	clone := CloneLines(orig)
	clone[0] = "x"
	if orig[0] != "a" {
		t.Error("clone should not share backing array")
	}
	if CloneLines(nil) != nil {
		t.Error("clone of nil should be nil")
	}
}

func TestSplitJoinLines(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"", []string{""}},
		{"a", []string{"a"}},
		{"a\nb", []string{"a", "b"}},
		{"a\nb\n", []string{"a", "b"}},
		{"\n", []string{""}},
	}
	for _, tt := range tests {
		if got := SplitLines(tt.text); !EqualLines(got, tt.want) {
			t.Errorf("SplitLines(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}

	if got := JoinLines([]string{"a", "b"}); got != "a\nb" {
		t.Errorf("JoinLines = %q", got)
	}
}
