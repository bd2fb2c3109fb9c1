package thread

import "testing"

func TestNormalizeBody(t *testing.T) {
	in := "Intro.\n\n## Sub Heading\n\ntext\n\n### Deeper\n\n## Notes\n"
	want := "Intro.\n\n### Sub Heading\n\ntext\n\n### Deeper\n\n## Notes\n"
	if got := NormalizeBody(in); got != want {
		t.Errorf("NormalizeBody:\ngot  %q\nwant %q", got, want)
	}
}

func TestNormalizeList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "  \n\n", ""},
		{"blank between items dropped", "- a\n\n- b\n", "- a\n- b"},
		{"run collapses", "para one\n\n\n\npara two", "para one\n\npara two"},
		{"trimmed", "\n\n- a\n\n", "- a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeList(tt.in); got != tt.want {
				t.Errorf("NormalizeList(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
