package mode

import "testing"

func TestFromShortName(t *testing.T) {
	tests := []struct {
		name string
		want Mode
	}{
		{"n", Normal},
		{"niI", Normal},
		{"i", Insert},
		{"ic", Insert},
		{"R", Replace},
		{"v", Visual},
		{"V", VisualLine},
		{"\x16", VisualBlock},
		{"s", Select},
		{"S", SelectLine},
		{"\x13", SelectBlock},
		{"no", OperatorPending},
		{"c", CommandLine},
		{"t", Terminal},
		{"nt", Terminal},
		{"zz", Other},
		{"", Other},
	}

	for _, tt := range tests {
		if got := FromShortName(tt.name); got != tt.want {
			t.Errorf("FromShortName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsInsertLike(t *testing.T) {
	if !Insert.IsInsertLike() {
		t.Error("insert should be insert-like")
	}
	if !Replace.IsInsertLike() {
		t.Error("replace should be insert-like")
	}
	if Normal.IsInsertLike() {
		t.Error("normal should not be insert-like")
	}
	if Visual.IsInsertLike() {
		t.Error("visual should not be insert-like")
	}
}

func TestModeFamilies(t *testing.T) {
	for _, m := range []Mode{Visual, VisualLine, VisualBlock} {
		if !m.IsVisual() {
			t.Errorf("%v should be visual", m)
		}
	}
	for _, m := range []Mode{Select, SelectLine, SelectBlock} {
		if !m.IsSelect() {
			t.Errorf("%v should be select", m)
		}
		if m.IsVisual() {
			t.Errorf("%v should not be visual", m)
		}
	}
}

func TestModeString(t *testing.T) {
	if Normal.String() != "normal" {
		t.Errorf("unexpected name %q", Normal.String())
	}
	if Mode(200).String() != "other" {
		t.Errorf("out-of-range mode should stringify as other, got %q", Mode(200).String())
	}
}
