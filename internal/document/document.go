// Package document holds the immutable representation of a loaded book: an
// ordered word sequence plus chapter boundary markers and metadata. A
// Document is replaced wholesale when a new book is loaded, never mutated.
package document

// Metadata identifies a book.
type Metadata struct {
	Title  string
	Author string
}

// Chapter marks where a chapter begins in the word sequence.
type Chapter struct {
	Title string
	Start int
}

// Document is a book flattened to words. Chapter start indexes are
// monotonically non-decreasing and always within [0, len(Words)).
type Document struct {
	Words    []string
	Chapters []Chapter
	Meta     Metadata
}

// New creates a Document. Empty words is a valid "nothing to read" state,
// not an error; downstream components must handle it.
func New(words []string, chapters []Chapter, meta Metadata) *Document {
	return &Document{Words: words, Chapters: chapters, Meta: meta}
}

// WordCount is nil-safe so an unloaded document reads as empty.
func (d *Document) WordCount() int {
	if d == nil {
		return 0
	}
	return len(d.Words)
}

// Empty reports whether there is nothing to read.
func (d *Document) Empty() bool {
	return d.WordCount() == 0
}
