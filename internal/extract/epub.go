// Package extract turns EPUB archives into documents: an ordered word
// sequence, chapter boundaries derived from per-block headings, and book
// metadata. Tokens are split on whitespace with punctuation retained, which
// the RSVP display depends on.
package extract

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/taylorskalyo/goreader/epub"

	"github.com/amendoza/ritmo/internal/document"
)

const (
	unknownTitle  = "Unknown Title"
	unknownAuthor = "Unknown Author"

	// maxHeadingLen guards against paragraphs accidentally marked up as
	// headings.
	maxHeadingLen = 100
	maxTitleLen   = 80
)

// Extract reads the EPUB at epubPath into a Document. On failure it returns
// an empty error-flagged document alongside the error, so callers can
// surface "could not load" without special-casing nil.
func Extract(epubPath string) (*document.Document, error) {
	rc, err := epub.OpenReader(epubPath)
	if err != nil {
		return errorDocument(), fmt.Errorf("open epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return errorDocument(), fmt.Errorf("no rootfiles found in epub")
	}
	book := rc.Rootfiles[0]

	meta := document.Metadata{Title: unknownTitle, Author: unknownAuthor}
	if t := strings.TrimSpace(book.Title); t != "" {
		meta.Title = t
	}
	if a := strings.TrimSpace(book.Creator); a != "" {
		meta.Author = a
	}

	b := document.NewBuilder(meta)
	for _, ref := range book.Spine.Itemrefs {
		if ref.Item == nil {
			continue
		}
		r, err := ref.Item.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			continue
		}
		blk := parseBlock(string(data))
		words := strings.Fields(blk.text)
		if len(words) == 0 {
			continue
		}
		b.AddBlock(blockTitle(blk, ref.Item.HREF), words)
	}
	return b.Document(), nil
}

func errorDocument() *document.Document {
	return document.New(nil, nil, document.Metadata{Title: "Error", Author: "Error"})
}

// blockTitle picks a chapter title for one spine item: the first real
// heading, else the html <title>, else the cleaned file name.
func blockTitle(b block, href string) string {
	if b.heading != "" {
		return cleanTitle(b.heading)
	}
	if b.docTitle != "" {
		return cleanTitle(b.docTitle)
	}
	return cleanTitle(path.Base(href))
}

// cleanTitle strips file-name noise from a derived title: dashes and
// underscores become spaces, the markup extension is dropped, and overlong
// titles are truncated.
func cleanTitle(raw string) string {
	t := strings.NewReplacer("-", " ", "_", " ").Replace(raw)
	lower := strings.ToLower(t)
	for _, ext := range []string{".xhtml", ".html", ".htm"} {
		if strings.HasSuffix(lower, ext) {
			t = t[:len(t)-len(ext)]
			break
		}
	}
	t = strings.TrimSpace(t)
	if len(t) > maxTitleLen {
		t = t[:maxTitleLen-3] + "..."
	}
	return t
}
