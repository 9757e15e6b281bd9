// Package ui is the terminal reading view: a bubbletea program that drives
// the playback engine with scheduled tick messages and renders one word at a
// time, anchored on its recognition point.
package ui

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/amendoza/ritmo/internal/engine"
	"github.com/amendoza/ritmo/internal/nav"
)

type view int

const (
	viewReader view = iota
	viewChapters
	viewPageJump
)

// tickMsg carries the engine generation it was scheduled under. The engine
// drops ticks whose generation has passed, so a pause or jump silently
// defuses whatever is still in flight.
type tickMsg struct {
	gen int
}

func tickCmd(d time.Duration, gen int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

type chapterItem struct {
	title string
	start int
}

func (c chapterItem) Title() string       { return c.title }
func (c chapterItem) Description() string { return fmt.Sprintf("word %d", c.start+1) }
func (c chapterItem) FilterValue() string { return c.title }

// Model is the bubbletea model for a reading session.
type Model struct {
	eng       *engine.Engine
	idx       *nav.Index
	log       *slog.Logger
	speedStep int

	view     view
	chapters list.Model
	pageIn   textinput.Model
	bar      progress.Model

	width    int
	height   int
	quitting bool
}

// New builds a reading model over a loaded engine. Playback starts paused so
// the reader can orient before the first word flashes.
func New(eng *engine.Engine, idx *nav.Index, speedStep int, log *slog.Logger) Model {
	if log == nil {
		log = slog.Default()
	}
	if speedStep <= 0 {
		speedStep = 25
	}

	var items []list.Item
	for _, ch := range eng.Document().Chapters {
		items = append(items, chapterItem{title: ch.Title, start: ch.Start})
	}
	chapters := list.New(items, list.NewDefaultDelegate(), 0, 0)
	chapters.Title = "Chapters"
	chapters.SetShowHelp(false)

	pageIn := textinput.New()
	pageIn.Placeholder = "page number"
	pageIn.CharLimit = 6
	pageIn.Width = 12

	bar := progress.New(progress.WithDefaultGradient())
	bar.ShowPercentage = false

	return Model{
		eng:       eng,
		idx:       idx,
		log:       log,
		speedStep: speedStep,
		chapters:  chapters,
		pageIn:    pageIn,
		bar:       bar,
		width:     80,
		height:    24,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.chapters.SetSize(msg.Width, msg.Height-2)
		m.bar.Width = msg.Width - 4
		return m, nil

	case tickMsg:
		frame, more := m.eng.Tick(msg.gen)
		if frame == (engine.Frame{}) && !more {
			return m, nil
		}
		if more {
			return m, tickCmd(m.eng.Delay(), msg.gen)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case viewChapters:
			return m.updateChapters(msg)
		case viewPageJump:
			return m.updatePageJump(msg)
		}
		return m.updateReader(msg)
	}
	return m, nil
}

func (m Model) updateReader(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		if m.eng.State() == engine.StateRunning {
			m.eng.Pause()
			return m, nil
		}
		if m.eng.Start() {
			return m, tickCmd(m.eng.Delay(), m.eng.Gen())
		}
		return m, nil

	case "up", "+", "=":
		m.eng.SetSpeed(m.eng.Speed() + m.speedStep)
		return m, nil

	case "down", "-":
		m.eng.SetSpeed(m.eng.Speed() - m.speedStep)
		return m, nil

	case "s":
		m.eng.Stop()
		return m, nil

	case "r":
		m.eng.Reset()
		return m, nil

	case "c":
		if len(m.eng.Document().Chapters) == 0 {
			return m, nil
		}
		m.eng.Pause()
		if i := m.idx.ChapterAt(m.eng.WordIndex()); i >= 0 {
			m.chapters.Select(i)
		}
		m.view = viewChapters
		return m, nil

	case "g":
		m.eng.Pause()
		m.pageIn.SetValue("")
		m.pageIn.Focus()
		m.view = viewPageJump
		return m, textinput.Blink

	case "q", "ctrl+c":
		m.eng.Stop()
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateChapters(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if !m.idx.JumpToChapter(m.eng, m.chapters.Index()) {
			m.log.Warn("chapter jump rejected", slog.Int("chapter", m.chapters.Index()))
		}
		m.view = viewReader
		return m, nil
	case "esc", "c":
		m.view = viewReader
		return m, nil
	}
	var cmd tea.Cmd
	m.chapters, cmd = m.chapters.Update(msg)
	return m, cmd
}

func (m Model) updatePageJump(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		page, err := strconv.Atoi(strings.TrimSpace(m.pageIn.Value()))
		if err == nil {
			if err := m.idx.JumpToPage(m.eng, page); err != nil {
				m.log.Warn("page jump rejected", slog.Int("page", page))
			}
		}
		m.view = viewReader
		return m, nil
	case "esc":
		m.view = viewReader
		return m, nil
	}
	var cmd tea.Cmd
	m.pageIn, cmd = m.pageIn.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	switch m.view {
	case viewChapters:
		return m.chapters.View()
	case viewPageJump:
		return fmt.Sprintf("\n  Go to page (1-%d):\n\n  %s\n\n  %s",
			m.idx.PageCount(),
			m.pageIn.View(),
			controlsStyle.Render("ENTER: jump  ESC: cancel"))
	}
	return m.readerView()
}

func (m Model) readerView() string {
	doc := m.eng.Document()
	if doc == nil || doc.Empty() {
		return "Nothing to read."
	}

	current, total := m.eng.Progress()

	var middle string
	switch m.eng.State() {
	case engine.StateCompleted:
		middle = completeStyle.Render("Reading complete!") +
			"\n\n" + controlsStyle.Render("  R: restart  Q: quit")
		middle = strings.Repeat(" ", max(0, m.width/2-9)) + middle
	default:
		word := m.eng.CurrentWord()
		middle = anchorWord(formatWord(word), word, m.width)
	}

	pause := ""
	if m.eng.State() != engine.StateRunning && m.eng.State() != engine.StateCompleted {
		pause = pausedStyle.Render(" [PAUSED]")
	}

	status := statusStyle.Render(fmt.Sprintf("%s | Word %d/%d | Page %d/%d | %d WPM%s",
		titleStyle.Render(doc.Meta.Title),
		current, total,
		m.idx.PageFor(min(current, total-1)), m.idx.PageCount(),
		m.eng.Speed(), pause))

	chapter := ""
	if t := m.idx.ChapterTitle(min(current, total-1)); t != "" {
		chapter = statusStyle.Render(t)
	}

	controls := controlsStyle.Render(
		"SPACE: pause/play  ↑/↓: speed  C: chapters  G: go to page  R: restart  Q: quit")

	pct := 0.0
	if total > 0 {
		pct = float64(current) / float64(total)
	}
	bar := "  " + m.bar.ViewAs(pct)

	avail := m.height - 4
	if avail < 1 {
		avail = 1
	}
	vPad := avail / 2

	var sb strings.Builder
	sb.WriteString(status)
	sb.WriteString("\n")
	sb.WriteString(chapter)
	sb.WriteString("\n")
	for i := 0; i < vPad; i++ {
		sb.WriteString("\n")
	}
	sb.WriteString(middle)
	for i := 0; i < avail-vPad; i++ {
		sb.WriteString("\n")
	}
	sb.WriteString(bar)
	sb.WriteString("\n")
	sb.WriteString(controls)
	return sb.String()
}
