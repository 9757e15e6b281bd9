package extract

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestParseBlockText(t *testing.T) {
	src := `
	<html>
		<head><title>Test Page</title></head>
		<body>
			<h1>Chapter 1</h1>
			<p>This is the <b>first</b> paragraph.</p>
			<p>
				This is the second paragraph
				with a newline.
			</p>
			<div>Some <span>nested</span> text.</div>
		</body>
	</html>
	`

	blk := parseBlock(src)

	expected := []string{"Test", "Page", "Chapter", "1", "This", "is", "the",
		"first", "paragraph.", "This", "is", "the", "second", "paragraph",
		"with", "a", "newline.", "Some", "nested", "text."}
	words := strings.Fields(blk.text)

	if len(words) != len(expected) {
		t.Fatalf("words = %d %v, want %d", len(words), words, len(expected))
	}
	for i, w := range words {
		if w != expected[i] {
			t.Errorf("word %d = %q, want %q", i, w, expected[i])
		}
	}

	if blk.docTitle != "Test Page" {
		t.Errorf("docTitle = %q, want %q", blk.docTitle, "Test Page")
	}
	if blk.heading != "Chapter 1" {
		t.Errorf("heading = %q, want %q", blk.heading, "Chapter 1")
	}
}

func TestParseBlockSkipsScriptAndStyle(t *testing.T) {
	src := `<html><body>
		<style>p { color: red; }</style>
		<script>var hidden = "nope";</script>
		<p>visible words</p>
	</body></html>`

	blk := parseBlock(src)
	got := strings.Fields(blk.text)
	want := []string{"visible", "words"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("words = %v, want %v", got, want)
	}
}

func TestParseBlockFirstHeadingWins(t *testing.T) {
	src := `<html><body>
		<h2>Second Level First</h2>
		<h1>Top Level Later</h1>
	</body></html>`

	blk := parseBlock(src)
	if blk.heading != "Second Level First" {
		t.Errorf("heading = %q, want the first heading in document order", blk.heading)
	}
}

func TestParseBlockRejectsOverlongHeading(t *testing.T) {
	long := strings.Repeat("padding ", 20)
	src := `<html><body><h1>` + long + `</h1><p>body</p></body></html>`

	blk := parseBlock(src)
	if blk.heading != "" {
		t.Errorf("heading = %q, want empty for paragraph-length headings", blk.heading)
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"chapter-01.xhtml", "chapter 01"},
		{"front_matter.html", "front matter"},
		{"notes.htm", "notes"},
		{"Plain Title", "Plain Title"},
		{"  spaced  ", "spaced"},
	}
	for _, tc := range tests {
		if got := cleanTitle(tc.in); got != tc.want {
			t.Errorf("cleanTitle(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	long := strings.Repeat("x", 120)
	got := cleanTitle(long)
	if len(got) != maxTitleLen {
		t.Errorf("cleanTitle(long) length = %d, want %d", len(got), maxTitleLen)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("cleanTitle(long) = %q, want ellipsis suffix", got)
	}
}

func TestBlockTitleFallbacks(t *testing.T) {
	tests := []struct {
		name string
		blk  block
		href string
		want string
	}{
		{"heading wins", block{heading: "Chapter 1", docTitle: "Page"}, "OEBPS/ch1.xhtml", "Chapter 1"},
		{"doc title next", block{docTitle: "Page Title"}, "OEBPS/ch1.xhtml", "Page Title"},
		{"file name last", block{}, "OEBPS/chapter-02.xhtml", "chapter 02"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := blockTitle(tc.blk, tc.href); got != tc.want {
				t.Errorf("blockTitle = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestExtractMissingFile(t *testing.T) {
	doc, err := Extract(filepath.Join(t.TempDir(), "nope.epub"))
	if err == nil {
		t.Fatal("Extract of a missing file succeeded")
	}
	if doc == nil {
		t.Fatal("Extract returned nil document on error")
	}
	if doc.Meta.Title != "Error" || !doc.Empty() {
		t.Errorf("error document = %+v", doc)
	}
}
