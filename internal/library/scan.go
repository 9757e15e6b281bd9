package library

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/amendoza/ritmo/internal/document"
)

// Scanner discovers EPUB files and registers them in the store. Extract is
// injectable so tests can register books without real archives.
type Scanner struct {
	Store   *Store
	Log     *slog.Logger
	Extract func(path string) (*document.Document, error)
}

// ScanFolder walks dir recursively and adds every .epub file found. Files
// that fail to extract are logged and skipped; the walk continues.
func (sc *Scanner) ScanFolder(ctx context.Context, dir string) (added, seen int, err error) {
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".epub") {
			return nil
		}
		seen++
		if _, err := sc.AddBook(ctx, path); err != nil {
			sc.Log.Warn("skipping book",
				slog.String("path", path),
				slog.String("error", err.Error()))
			return nil
		}
		added++
		return nil
	})
	if err != nil {
		return added, seen, fmt.Errorf("scan %s: %w", dir, err)
	}
	return added, seen, nil
}

// AddBook extracts one EPUB and upserts it. A book that yields no words at
// all is rejected rather than stored empty.
func (sc *Scanner) AddBook(ctx context.Context, path string) (Book, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Book{}, err
	}
	doc, err := sc.Extract(abs)
	if err != nil {
		return Book{}, err
	}
	if doc.Empty() {
		return Book{}, fmt.Errorf("no readable text in %s", abs)
	}
	var size int64
	if fi, err := os.Stat(abs); err == nil {
		size = fi.Size()
	}
	b := Book{
		Title:      doc.Meta.Title,
		Author:     doc.Meta.Author,
		Path:       abs,
		TotalWords: doc.WordCount(),
		FileSize:   size,
	}
	id, err := sc.Store.Upsert(ctx, b)
	if err != nil {
		return Book{}, err
	}
	return sc.Store.Get(ctx, id)
}

// Refresh lists the library after soft-deleting entries whose files have
// disappeared. Positions survive; a file that comes back keeps its place.
func (sc *Scanner) Refresh(ctx context.Context) ([]Book, error) {
	books, err := sc.Store.List(ctx)
	if err != nil {
		return nil, err
	}
	kept := books[:0]
	for _, b := range books {
		if _, err := os.Stat(b.Path); err != nil {
			sc.Log.Info("book file missing, hiding from library",
				slog.String("path", b.Path))
			if err := sc.Store.MarkInvalid(ctx, b.Path); err != nil {
				return nil, err
			}
			continue
		}
		kept = append(kept, b)
	}
	return kept, nil
}
