// Package engine drives word-by-word RSVP playback. It is a state machine
// that paces through a document at a words-per-minute rate, emitting display
// frames for the presentation layer and checkpointing reading progress to a
// sink at bounded intervals.
package engine

import (
	"log/slog"
	"time"

	"github.com/amendoza/ritmo/internal/document"
)

// State is the playback phase.
type State int

const (
	// StateIdle means no document, or an empty one.
	StateIdle State = iota
	// StateReady means a document is loaded and halted with words remaining.
	StateReady
	// StateRunning means playback is advancing.
	StateRunning
	// StateCompleted means the position is one past the last word.
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	}
	return "unknown"
}

const (
	// DefaultMinWPM and DefaultMaxWPM bound the playback speed.
	DefaultMinWPM = 100
	DefaultMaxWPM = 500
	// DefaultWPM is used when no speed has ever been chosen.
	DefaultWPM = 250

	// saveEvery bounds checkpoint frequency while running: at most
	// saveEvery-1 words of progress can be lost between checkpoints.
	saveEvery = 5
)

// Sink consumes progress checkpoints. Calls are synchronous on the engine's
// coordinating goroutine and must return quickly. The engine never retries;
// each checkpoint supersedes the previous one.
type Sink interface {
	RecordProgress(bookID int64, wordIndex, speedWPM int)
}

// Frame is one display update emitted by a tick.
type Frame struct {
	Word      string
	Index     int // index of the word shown
	Total     int
	Completed bool // terminal frame; Word is empty
}

// Options tune a new engine. Zero values select the defaults.
type Options struct {
	MinWPM     int
	MaxWPM     int
	DefaultWPM int
}

// Engine owns the playback position exclusively. It is not safe for
// concurrent use: all control calls and tick delivery must come from a
// single coordinating context. Position changes only happen through Load,
// Seek, Reset and Tick, so the checkpoint policy cannot be bypassed.
type Engine struct {
	doc       *document.Document
	bookID    int64
	state     State
	wordIndex int
	speedWPM  int
	lastSaved int
	gen       int

	minWPM int
	maxWPM int

	sink Sink
	log  *slog.Logger
}

// New creates a halted engine with nothing loaded.
func New(sink Sink, log *slog.Logger, opts Options) *Engine {
	if log == nil {
		log = slog.Default()
	}
	min := opts.MinWPM
	if min <= 0 {
		min = DefaultMinWPM
	}
	max := opts.MaxWPM
	if max < min {
		max = DefaultMaxWPM
	}
	def := opts.DefaultWPM
	if def <= 0 {
		def = DefaultWPM
	}
	e := &Engine{state: StateIdle, sink: sink, log: log, minWPM: min, maxWPM: max}
	e.speedWPM = e.clampSpeed(def)
	return e
}

// Load replaces the current document and moves to startIndex, clamped to
// [0, len]. Playback does not auto-start. A speedWPM of 0 keeps the speed
// already in effect. Any pending scheduled tick is invalidated.
func (e *Engine) Load(doc *document.Document, bookID int64, startIndex, speedWPM int) {
	e.doc = doc
	e.bookID = bookID
	if speedWPM > 0 {
		e.speedWPM = e.clampSpeed(speedWPM)
	}
	n := doc.WordCount()
	idx := startIndex
	if idx < 0 {
		idx = 0
	}
	if idx > n {
		idx = n
	}
	e.wordIndex = idx
	e.lastSaved = idx
	e.gen++
	switch {
	case n == 0:
		e.state = StateIdle
	case idx >= n:
		e.state = StateCompleted
	default:
		e.state = StateReady
	}
	e.log.Debug("document loaded",
		slog.Int64("book_id", bookID),
		slog.Int("words", n),
		slog.Int("start", idx),
		slog.String("state", e.state.String()))
}

// Start begins advancement. Only Ready may start; anything else is an
// invalid transition and a silent no-op returning false.
func (e *Engine) Start() bool {
	if e.state != StateReady {
		return false
	}
	e.state = StateRunning
	e.gen++
	return true
}

// Gen is the live tick generation. A scheduled tick must carry the value
// Gen had at scheduling time; Tick drops mismatches at fire time, so a
// pause or reload defuses in-flight ticks without cancelling timers.
func (e *Engine) Gen() int {
	return e.gen
}

// Tick performs one advancement step. It returns the frame to display and
// whether a successor tick should be scheduled after Delay. Ticks carrying
// a stale generation, or arriving while not running, are no-ops.
func (e *Engine) Tick(gen int) (Frame, bool) {
	if gen != e.gen || e.state != StateRunning {
		return Frame{}, false
	}
	n := e.doc.WordCount()
	if e.wordIndex >= n {
		// The last word has had its time on screen.
		e.state = StateCompleted
		e.flush()
		e.log.Debug("playback completed", slog.Int64("book_id", e.bookID))
		return Frame{Index: n, Total: n, Completed: true}, false
	}
	f := Frame{Word: e.doc.Words[e.wordIndex], Index: e.wordIndex, Total: n}
	e.wordIndex++
	if e.wordIndex-e.lastSaved >= saveEvery || e.wordIndex == n-1 {
		e.flush()
	}
	return f, true
}

// Pause halts advancement and synchronously checkpoints the current
// position before returning. Pausing a non-running engine is a no-op.
func (e *Engine) Pause() {
	if e.state != StateRunning {
		return
	}
	e.settle()
	e.flush()
}

// Stop ends a reading session: it halts like Pause but checkpoints from any
// state with a non-empty document. Position is kept, not reset.
func (e *Engine) Stop() {
	if e.doc == nil || e.doc.Empty() {
		return
	}
	if e.state == StateRunning {
		e.settle()
	}
	e.flush()
}

// Reset checkpoints at the old position, then rewinds to the start.
func (e *Engine) Reset() {
	if e.doc == nil || e.doc.Empty() {
		return
	}
	e.Stop()
	e.wordIndex = 0
	e.lastSaved = 0
	e.state = StateReady
}

// Seek moves to wordIndex, checkpointing at the old position first so the
// progress flushed reflects where reading actually stopped. Indexes outside
// [0, len) are rejected: state and position unchanged, no event emitted.
func (e *Engine) Seek(wordIndex int) bool {
	n := e.doc.WordCount()
	if wordIndex < 0 || wordIndex >= n {
		return false
	}
	e.Stop()
	e.wordIndex = wordIndex
	e.lastSaved = wordIndex
	e.state = StateReady
	return true
}

// SetSpeed clamps wpm to the configured bounds and returns the value now in
// effect. Valid in any state. Only delays computed after the call change;
// a tick already scheduled keeps its old delay.
func (e *Engine) SetSpeed(wpm int) int {
	e.speedWPM = e.clampSpeed(wpm)
	return e.speedWPM
}

// Delay is how long the current word stays on screen.
func (e *Engine) Delay() time.Duration {
	return time.Duration(60.0/float64(e.speedWPM)*1000) * time.Millisecond
}

// settle leaves Running for the halted state matching the position.
func (e *Engine) settle() {
	if e.wordIndex >= e.doc.WordCount() {
		e.state = StateCompleted
		return
	}
	e.state = StateReady
}

func (e *Engine) clampSpeed(wpm int) int {
	if wpm < e.minWPM {
		return e.minWPM
	}
	if wpm > e.maxWPM {
		return e.maxWPM
	}
	return wpm
}

func (e *Engine) flush() {
	e.lastSaved = e.wordIndex
	if e.sink == nil || e.doc == nil {
		return
	}
	e.sink.RecordProgress(e.bookID, e.wordIndex, e.speedWPM)
}

// State returns the current playback phase.
func (e *Engine) State() State {
	return e.state
}

// WordIndex is the position of the next word to show, or the word count at
// completion.
func (e *Engine) WordIndex() int {
	return e.wordIndex
}

// Speed is the current words-per-minute rate.
func (e *Engine) Speed() int {
	return e.speedWPM
}

// BookID identifies the loaded book for the sink.
func (e *Engine) BookID() int64 {
	return e.bookID
}

// Document returns the loaded document, possibly nil.
func (e *Engine) Document() *document.Document {
	return e.doc
}

// CurrentWord is the next word to be shown, or "" at completion or when
// nothing is loaded.
func (e *Engine) CurrentWord() string {
	if e.doc != nil && e.wordIndex < e.doc.WordCount() {
		return e.doc.Words[e.wordIndex]
	}
	return ""
}

// Progress returns the number of words consumed and the total.
func (e *Engine) Progress() (current, total int) {
	return e.wordIndex, e.doc.WordCount()
}
