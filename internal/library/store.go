// Package library is the persistence side of the reader: a SQLite database
// of known books, their reading positions and speeds, and reading sessions,
// plus the folder scanner that populates it.
package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound reports a book id or path unknown to the library.
var ErrNotFound = errors.New("library: book not found")

// Book is one library row. Progress is a derived completion percentage.
type Book struct {
	ID           int64
	Title        string
	Author       string
	Path         string
	TotalWords   int
	CurrentWord  int
	ReadingSpeed int
	LastRead     time.Time
	FileSize     int64
	Progress     float64
}

// Store wraps the SQLite-backed library.
type Store struct {
	db    *sql.DB
	log   *slog.Logger
	clock func() time.Time
}

// Open creates or opens the library database at path, creating parent
// directories as needed.
func Open(ctx context.Context, path string, log *slog.Logger) (*Store, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	s := &Store{db: db, log: log, clock: time.Now}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	ddl := `
CREATE TABLE IF NOT EXISTS books (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    author TEXT,
    file_path TEXT UNIQUE NOT NULL,
    total_words INTEGER DEFAULT 0,
    current_word INTEGER DEFAULT 0,
    reading_speed INTEGER DEFAULT 250,
    last_read TIMESTAMP,
    added_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    file_size INTEGER,
    is_valid BOOLEAN DEFAULT 1
);
CREATE TABLE IF NOT EXISTS reading_sessions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    book_id INTEGER,
    session_start TIMESTAMP,
    session_end TIMESTAMP,
    words_read INTEGER,
    average_speed INTEGER,
    FOREIGN KEY (book_id) REFERENCES books (id)
);
`
	_, err := s.db.ExecContext(ctx, ddl)
	return err
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

const bookColumns = `id, title, author, file_path, total_words, current_word,
       reading_speed, last_read, file_size`

// Upsert registers a book, keyed by its unique file path. Re-adding an
// existing path refreshes title, author, word count and size, revalidates
// the row, and keeps the stored reading position and speed.
func (s *Store) Upsert(ctx context.Context, b Book) (int64, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO books(title, author, file_path, total_words, file_size, last_read, is_valid)
		 VALUES(?, ?, ?, ?, ?, ?, 1)
		 ON CONFLICT(file_path) DO UPDATE SET
		   title=excluded.title, author=excluded.author,
		   total_words=excluded.total_words, file_size=excluded.file_size,
		   is_valid=1`,
		b.Title, b.Author, b.Path, b.TotalWords, b.FileSize, s.clock().UTC())
	if err != nil {
		return 0, fmt.Errorf("upsert book: %w", err)
	}
	var id int64
	if err := s.db.QueryRowContext(ctx,
		`SELECT id FROM books WHERE file_path = ?`, b.Path).Scan(&id); err != nil {
		return 0, fmt.Errorf("query book id: %w", err)
	}
	return id, nil
}

// List returns valid books, most recently read first.
func (s *Store) List(ctx context.Context) ([]Book, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bookColumns+`
		 FROM books WHERE is_valid = 1
		 ORDER BY last_read DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// Get looks a book up by id.
func (s *Store) Get(ctx context.Context, id int64) (Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ?`, id)
	b, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Book{}, ErrNotFound
	}
	return b, err
}

// GetByPath looks a book up by its file path.
func (s *Store) GetByPath(ctx context.Context, path string) (Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE file_path = ?`, path)
	b, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Book{}, ErrNotFound
	}
	return b, err
}

// UpdateProgress is the sink's storage operation: an upsert of the resume
// point, last-write-wins per book.
func (s *Store) UpdateProgress(ctx context.Context, bookID int64, currentWord, readingSpeed int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE books SET current_word = ?, reading_speed = ?, last_read = ? WHERE id = ?`,
		currentWord, readingSpeed, s.clock().UTC(), bookID)
	return err
}

// LastPosition returns the stored resume point for a book.
func (s *Store) LastPosition(ctx context.Context, bookID int64) (wordIndex, speedWPM int, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT current_word, reading_speed FROM books WHERE id = ?`, bookID).
		Scan(&wordIndex, &speedWPM)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, ErrNotFound
	}
	return wordIndex, speedWPM, err
}

// MarkInvalid soft-deletes a book whose file has gone missing. Rows are
// never hard-deleted, so a reappearing file keeps its reading position.
func (s *Store) MarkInvalid(ctx context.Context, path string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE books SET is_valid = 0 WHERE file_path = ?`, path)
	return err
}

// BeginSession opens a reading session row and returns its id.
func (s *Store) BeginSession(ctx context.Context, bookID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO reading_sessions(book_id, session_start) VALUES(?, ?)`,
		bookID, s.clock().UTC())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// EndSession closes a session with what was read during it.
func (s *Store) EndSession(ctx context.Context, sessionID int64, wordsRead, averageSpeed int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE reading_sessions SET session_end = ?, words_read = ?, average_speed = ?
		 WHERE id = ?`,
		s.clock().UTC(), wordsRead, averageSpeed, sessionID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(r rowScanner) (Book, error) {
	var b Book
	var author sql.NullString
	var lastRead sql.NullString
	var fileSize sql.NullInt64
	if err := r.Scan(&b.ID, &b.Title, &author, &b.Path, &b.TotalWords,
		&b.CurrentWord, &b.ReadingSpeed, &lastRead, &fileSize); err != nil {
		return Book{}, err
	}
	b.Author = author.String
	b.FileSize = fileSize.Int64
	if lastRead.Valid {
		if ts, err := time.Parse(time.RFC3339Nano, lastRead.String); err == nil {
			b.LastRead = ts
		}
	}
	if b.TotalWords > 0 {
		b.Progress = float64(b.CurrentWord) / float64(b.TotalWords) * 100
	}
	return b, nil
}
