package ui

import (
	"strings"
	"testing"
)

func TestOrpPosition(t *testing.T) {
	tests := []struct {
		name string
		word string
		want int
	}{
		{"empty string", "", 0},
		{"single char", "a", 0},
		{"two chars", "ab", 1},
		{"three chars", "abc", 1},
		{"five chars", "abcde", 1},
		{"six chars", "abcdef", 2},
		{"nine chars", "abcdefghi", 3},
		{"twelve chars", "abcdefghijkl", 4},
		{"multibyte runes", "über", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := orpPosition(tt.word); got != tt.want {
				t.Errorf("orpPosition(%q) = %d, want %d", tt.word, got, tt.want)
			}
		})
	}
}

func TestFormatWordKeepsAllRunes(t *testing.T) {
	for _, word := range []string{"a", "hello", "hello,", "über", "naïveté"} {
		rendered := formatWord(word)
		for _, r := range word {
			if !strings.ContainsRune(rendered, r) {
				t.Errorf("formatWord(%q) dropped %q", word, r)
			}
		}
	}
	if got := formatWord(""); got != "" {
		t.Errorf("formatWord(\"\") = %q, want empty", got)
	}
}

func TestAnchorWordCentersRecognitionPoint(t *testing.T) {
	tests := []struct {
		word    string
		width   int
		wantPad int
	}{
		{"hello", 80, 39}, // orp 1, center 40
		{"a", 80, 40},
		{"abcdefghi", 80, 37},
		{"hello", 0, 0}, // pad never negative
	}
	for _, tt := range tests {
		got := anchorWord("X", tt.word, tt.width)
		pad := len(got) - 1
		if pad != tt.wantPad {
			t.Errorf("anchorWord(%q, width %d) pad = %d, want %d",
				tt.word, tt.width, pad, tt.wantPad)
		}
	}
}
