package library

import (
	"context"
	"log/slog"
	"time"
)

// ProgressSink adapts the store to the playback engine's checkpoint calls.
// Checkpoints run synchronously on the engine's coordinating goroutine, so
// each write is bounded by Timeout and failures are logged and dropped
// rather than retried. The next checkpoint supersedes a lost one.
type ProgressSink struct {
	Store   *Store
	Log     *slog.Logger
	Timeout time.Duration
}

// NewProgressSink wires a sink to the store with a 1s write deadline.
func NewProgressSink(store *Store, log *slog.Logger) *ProgressSink {
	if log == nil {
		log = slog.Default()
	}
	return &ProgressSink{Store: store, Log: log, Timeout: time.Second}
}

// RecordProgress persists a resume point. It never fails the caller.
func (p *ProgressSink) RecordProgress(bookID int64, wordIndex, speedWPM int) {
	ctx, cancel := context.WithTimeout(context.Background(), p.Timeout)
	defer cancel()
	if err := p.Store.UpdateProgress(ctx, bookID, wordIndex, speedWPM); err != nil {
		p.Log.Warn("progress checkpoint dropped",
			slog.Int64("book_id", bookID),
			slog.Int("word_index", wordIndex),
			slog.String("error", err.Error()))
	}
}
