package buffer

import "testing"

func TestChangeDescriptorApply(t *testing.T) {
	base := []string{"a", "b", "c"}

	tests := []struct {
		name   string
		change ChangeDescriptor
		want   []string
	}{
		{
			name:   "insert middle",
			change: ChangeDescriptor{FirstLine: 1, LastLine: 1, Lines: []string{"x"}},
			want:   []string{"a", "x", "b", "c"},
		},
		{
			name:   "replace one line",
			change: ChangeDescriptor{FirstLine: 1, LastLine: 2, Lines: []string{"B"}},
			want:   []string{"a", "B", "c"},
		},
		{
			name:   "delete range",
			change: ChangeDescriptor{FirstLine: 0, LastLine: 2, Lines: nil},
			want:   []string{"c"},
		},
		{
			name:   "append at end",
			change: ChangeDescriptor{FirstLine: 3, LastLine: 3, Lines: []string{"d"}},
			want:   []string{"a", "b", "c", "d"},
		},
		{
			name:   "replace through end sentinel",
			change: ChangeDescriptor{FirstLine: 1, LastLine: EndOfBuffer, Lines: []string{"z"}},
			want:   []string{"a", "z"},
		},
		{
			name:   "full replacement",
			change: FullReplacement([]string{"p", "q"}),
			want:   []string{"p", "q"},
		},
		{
			name:   "out of range clamps",
			change: ChangeDescriptor{FirstLine: 10, LastLine: 20, Lines: []string{"x"}},
			want:   []string{"a", "b", "c", "x"},
		},
		{
			name:   "inverted range treated as insert",
			change: ChangeDescriptor{FirstLine: 2, LastLine: 1, Lines: []string{"x"}},
			want:   []string{"a", "b", "x", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.change.Apply(base)
			if !EqualLines(got, tt.want) {
				t.Errorf("Apply = %q, want %q", got, tt.want)
			}
		})
	}

	// The input must never be mutated.
	if !EqualLines(base, []string{"a", "b", "c"}) {
		t.Errorf("Apply mutated its input: %q", base)
	}
}

func TestChangeDescriptorIsFull(t *testing.T) {
	if !FullReplacement([]string{"a"}).IsFull() {
		t.Error("FullReplacement should be full")
	}
	if (ChangeDescriptor{FirstLine: 1, LastLine: EndOfBuffer}).IsFull() {
		t.Error("partial tail replacement is not full")
	}
}
