package nav

import (
	"errors"
	"fmt"
	"testing"

	"github.com/amendoza/ritmo/internal/document"
)

type fakeSeeker struct {
	calls []int
	ok    bool
}

func (f *fakeSeeker) Seek(wordIndex int) bool {
	f.calls = append(f.calls, wordIndex)
	return f.ok
}

func docWithWords(n int, chapters ...document.Chapter) *document.Document {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i)
	}
	return document.New(words, chapters, document.Metadata{Title: "t"})
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		words, pageSize, want int
	}{
		{0, 300, 1},
		{1, 300, 1},
		{300, 300, 1},
		{301, 300, 2},
		{600, 300, 2},
		{601, 300, 3},
		{10, 3, 4},
	}
	for _, tc := range tests {
		ix := New(docWithWords(tc.words), tc.pageSize)
		if got := ix.PageCount(); got != tc.want {
			t.Errorf("PageCount(%d words, %d/page) = %d, want %d",
				tc.words, tc.pageSize, got, tc.want)
		}
	}
}

func TestDefaultPageSize(t *testing.T) {
	ix := New(docWithWords(10), 0)
	if got := ix.PageSize(); got != DefaultPageSize {
		t.Errorf("PageSize() = %d, want %d", got, DefaultPageSize)
	}
}

func TestWordIndexForPage(t *testing.T) {
	ix := New(docWithWords(650), 300)

	tests := []struct {
		page, want int
	}{
		{1, 0},
		{2, 300},
		{3, 600},
	}
	for _, tc := range tests {
		got, err := ix.WordIndexForPage(tc.page)
		if err != nil {
			t.Fatalf("WordIndexForPage(%d): %v", tc.page, err)
		}
		if got != tc.want {
			t.Errorf("WordIndexForPage(%d) = %d, want %d", tc.page, got, tc.want)
		}
	}

	for _, bad := range []int{0, -1, 4} {
		if _, err := ix.WordIndexForPage(bad); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("WordIndexForPage(%d) err = %v, want ErrOutOfRange", bad, err)
		}
	}
}

func TestPageForRoundTrip(t *testing.T) {
	ix := New(docWithWords(650), 300)
	for page := 1; page <= ix.PageCount(); page++ {
		idx, err := ix.WordIndexForPage(page)
		if err != nil {
			t.Fatalf("WordIndexForPage(%d): %v", page, err)
		}
		if got := ix.PageFor(idx); got != page {
			t.Errorf("PageFor(WordIndexForPage(%d)) = %d", page, got)
		}
	}
	if got := ix.PageFor(-5); got != 1 {
		t.Errorf("PageFor(-5) = %d, want 1", got)
	}
}

func TestChapterAt(t *testing.T) {
	ix := New(docWithWords(100,
		document.Chapter{Title: "One", Start: 10},
		document.Chapter{Title: "Two", Start: 40},
		document.Chapter{Title: "Three", Start: 70},
	), 300)

	tests := []struct {
		idx, want int
	}{
		{0, 0}, // before the first chapter maps to it
		{9, 0},
		{10, 0},
		{39, 0},
		{40, 1},
		{69, 1},
		{70, 2},
		{99, 2},
	}
	for _, tc := range tests {
		if got := ix.ChapterAt(tc.idx); got != tc.want {
			t.Errorf("ChapterAt(%d) = %d, want %d", tc.idx, got, tc.want)
		}
	}

	if got := ix.ChapterTitle(50); got != "Two" {
		t.Errorf("ChapterTitle(50) = %q, want %q", got, "Two")
	}

	bare := New(docWithWords(100), 300)
	if got := bare.ChapterAt(50); got != -1 {
		t.Errorf("ChapterAt with no chapters = %d, want -1", got)
	}
	if got := bare.ChapterTitle(50); got != "" {
		t.Errorf("ChapterTitle with no chapters = %q, want empty", got)
	}
}

func TestJumpToChapter(t *testing.T) {
	ix := New(docWithWords(100,
		document.Chapter{Title: "One", Start: 0},
		document.Chapter{Title: "Two", Start: 40},
	), 300)

	s := &fakeSeeker{ok: true}
	if !ix.JumpToChapter(s, 1) {
		t.Fatal("JumpToChapter(1) rejected")
	}
	if len(s.calls) != 1 || s.calls[0] != 40 {
		t.Errorf("seeker calls = %v, want [40]", s.calls)
	}

	for _, bad := range []int{-1, 2} {
		if ix.JumpToChapter(s, bad) {
			t.Errorf("JumpToChapter(%d) accepted", bad)
		}
	}
	if len(s.calls) != 1 {
		t.Errorf("rejected jumps reached the seeker: %v", s.calls)
	}
}

func TestJumpToPage(t *testing.T) {
	ix := New(docWithWords(650), 300)

	s := &fakeSeeker{ok: true}
	if err := ix.JumpToPage(s, 3); err != nil {
		t.Fatalf("JumpToPage(3): %v", err)
	}
	if len(s.calls) != 1 || s.calls[0] != 600 {
		t.Errorf("seeker calls = %v, want [600]", s.calls)
	}

	if err := ix.JumpToPage(s, 4); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("JumpToPage(4) err = %v, want ErrOutOfRange", err)
	}
	if len(s.calls) != 1 {
		t.Errorf("rejected jump reached the seeker: %v", s.calls)
	}

	refused := &fakeSeeker{ok: false}
	if err := ix.JumpToPage(refused, 1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("JumpToPage with refusing seeker err = %v, want ErrOutOfRange", err)
	}
}
