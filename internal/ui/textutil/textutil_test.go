package textutil

import (
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"Settings", 10, "Settings"},
		{"Calculator", 6, "Calcu…"},
		{"x", 0, ""},
		{"日本語", 4, "日…"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestCenter(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"7", 5, "  7  "},
		{"ab", 5, " ab  "},
		{"", 3, "   "},
		{"toolong", 4, "too…"},
	}
	for _, tt := range tests {
		if got := Center(tt.in, tt.width); got != tt.want {
			t.Errorf("Center(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestBlock(t *testing.T) {
	got := Block("Brightness\n50%", 10, 5, 1)
	if len(got) != 5 {
		t.Fatalf("Block: %d lines, want 5", len(got))
	}
	want := []string{
		"          ",
		"Brightness",
		"   50%    ",
		"          ",
		"          ",
	}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Block middle:\n got %q\nwant %q", got, want)
	}

	got = Block("Exit", 6, 3, 2)
	if got[2] != " Exit " || got[0] != "      " {
		t.Errorf("Block bottom: %q", got)
	}

	got = Block("", 4, 2, 1)
	for _, l := range got {
		if l != "    " {
			t.Errorf("Block empty: %q", got)
		}
	}

	got = Block("a\nb\nc", 1, 2, 0)
	if got[0] != "a" || got[1] != "b" {
		t.Errorf("Block overflow: %q", got)
	}
}
