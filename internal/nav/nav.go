// Package nav provides page and chapter addressing over a document's word
// sequence. Pages are fixed-size word windows for coarse navigation;
// chapters are the document's semantic boundaries. The index reads playback
// position but never moves it directly: jumps delegate to the engine's Seek
// so progress checkpoints are never bypassed.
package nav

import (
	"errors"
	"sort"

	"github.com/amendoza/ritmo/internal/document"
)

// DefaultPageSize is the page window in words.
const DefaultPageSize = 300

// ErrOutOfRange rejects page or chapter requests outside the document.
var ErrOutOfRange = errors.New("nav: out of range")

// Seeker is the slice of the playback engine that jumps delegate to.
type Seeker interface {
	Seek(wordIndex int) bool
}

// Index addresses one document. Build a new one when a document is loaded.
type Index struct {
	doc      *document.Document
	pageSize int
}

// New creates an index over doc. A non-positive pageSize selects the
// default.
func New(doc *document.Document, pageSize int) *Index {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Index{doc: doc, pageSize: pageSize}
}

// PageSize returns the configured words-per-page window.
func (ix *Index) PageSize() int {
	return ix.pageSize
}

// PageCount is at least 1, even for an empty document.
func (ix *Index) PageCount() int {
	n := ix.doc.WordCount()
	if n == 0 {
		return 1
	}
	return (n + ix.pageSize - 1) / ix.pageSize
}

// PageFor returns the 1-based page containing wordIndex.
func (ix *Index) PageFor(wordIndex int) int {
	if wordIndex < 0 {
		return 1
	}
	return wordIndex/ix.pageSize + 1
}

// WordIndexForPage maps a 1-based page to the index of its first word,
// clamped to the last word of the document. Pages outside [1, PageCount]
// are rejected with ErrOutOfRange.
func (ix *Index) WordIndexForPage(page int) (int, error) {
	if page < 1 || page > ix.PageCount() {
		return 0, ErrOutOfRange
	}
	idx := (page - 1) * ix.pageSize
	if n := ix.doc.WordCount(); n > 0 && idx >= n {
		idx = n - 1
	}
	return idx, nil
}

// ChapterAt returns the index of the last chapter starting at or before
// wordIndex, 0 when the position precedes every chapter, and -1 when the
// document has no chapters at all.
func (ix *Index) ChapterAt(wordIndex int) int {
	chs := ix.doc.Chapters
	if len(chs) == 0 {
		return -1
	}
	i := sort.Search(len(chs), func(i int) bool { return chs[i].Start > wordIndex }) - 1
	if i < 0 {
		return 0
	}
	return i
}

// ChapterTitle is the title of the chapter containing wordIndex, or "".
func (ix *Index) ChapterTitle(wordIndex int) string {
	if i := ix.ChapterAt(wordIndex); i >= 0 {
		return ix.doc.Chapters[i].Title
	}
	return ""
}

// JumpToChapter seeks to the start of chapter i. Unknown chapters are
// rejected without touching the seeker.
func (ix *Index) JumpToChapter(s Seeker, i int) bool {
	if i < 0 || i >= len(ix.doc.Chapters) {
		return false
	}
	return s.Seek(ix.doc.Chapters[i].Start)
}

// JumpToPage seeks to the first word of page.
func (ix *Index) JumpToPage(s Seeker, page int) error {
	idx, err := ix.WordIndexForPage(page)
	if err != nil {
		return err
	}
	if !s.Seek(idx) {
		return ErrOutOfRange
	}
	return nil
}
