package document

import "strings"

// IntroductoryTitle labels a book's opening block when its derived title is
// just the book title again (cover pages, half titles).
const IntroductoryTitle = "Introductory"

// Builder assembles a Document from content blocks in reading order,
// applying the chapter naming policy:
//
//   - consecutive blocks with identical titles (case-insensitive) continue
//     the previous chapter instead of opening a duplicate entry;
//   - only the first block, when titled like the book itself, is relabeled
//     Introductory. Later blocks carrying the book title keep it and stay
//     separate unless they are consecutive duplicates.
type Builder struct {
	meta     Metadata
	words    []string
	chapters []Chapter
}

// NewBuilder starts a document for the given metadata. The metadata title
// is needed up front because the Introductory relabel compares against it.
func NewBuilder(meta Metadata) *Builder {
	return &Builder{meta: meta}
}

// AddBlock appends one content block. Blocks without words are skipped
// entirely and leave no chapter entry.
func (b *Builder) AddBlock(title string, words []string) {
	if len(words) == 0 {
		return
	}
	if len(b.chapters) == 0 && strings.EqualFold(title, b.meta.Title) {
		title = IntroductoryTitle
	}
	if n := len(b.chapters); n > 0 && strings.EqualFold(title, b.chapters[n-1].Title) {
		b.words = append(b.words, words...)
		return
	}
	b.chapters = append(b.chapters, Chapter{Title: title, Start: len(b.words)})
	b.words = append(b.words, words...)
}

// Document finalizes the build.
func (b *Builder) Document() *Document {
	return New(b.words, b.chapters, b.meta)
}
