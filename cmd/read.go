package cmd

import (
	"errors"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/amendoza/ritmo/internal/engine"
	"github.com/amendoza/ritmo/internal/extract"
	"github.com/amendoza/ritmo/internal/library"
	"github.com/amendoza/ritmo/internal/nav"
	"github.com/amendoza/ritmo/internal/ui"
)

func newReadCmd(configPath *string) *cobra.Command {
	var fresh bool
	var wpm int

	cmd := &cobra.Command{
		Use:   "read <#id | file.epub>",
		Short: "Read a book, resuming where you left off",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, *configPath, true)
			if err != nil {
				return err
			}
			defer a.close()

			book, err := resolveBook(cmd, a, args[0])
			if err != nil {
				return err
			}

			doc, err := extract.Extract(book.Path)
			if err != nil {
				return fmt.Errorf("load %s: %w", book.Path, err)
			}

			start, speed, err := a.store.LastPosition(ctx, book.ID)
			if err != nil {
				return err
			}
			if fresh {
				start = 0
			}
			if wpm > 0 {
				speed = wpm
			}

			eng := engine.New(library.NewProgressSink(a.store, a.log), a.log, engine.Options{
				MinWPM:     a.cfg.Playback.MinWPM,
				MaxWPM:     a.cfg.Playback.MaxWPM,
				DefaultWPM: a.cfg.Playback.DefaultWPM,
			})
			eng.Load(doc, book.ID, start, speed)
			idx := nav.New(doc, a.cfg.Playback.WordsPerPage)

			sessionID, err := a.store.BeginSession(ctx, book.ID)
			if err != nil {
				return err
			}

			m := ui.New(eng, idx, a.cfg.Playback.SpeedStep, a.log)
			_, runErr := tea.NewProgram(m, tea.WithAltScreen()).Run()

			wordsRead := eng.WordIndex() - start
			if wordsRead < 0 {
				wordsRead = 0
			}
			if err := a.store.EndSession(ctx, sessionID, wordsRead, eng.Speed()); err != nil {
				return err
			}
			return runErr
		},
	}
	cmd.Flags().BoolVar(&fresh, "fresh", false, "start from the beginning instead of resuming")
	cmd.Flags().IntVarP(&wpm, "wpm", "w", 0, "words per minute for this session")
	return cmd
}

// resolveBook accepts either a numeric library id or an EPUB path. Paths not
// yet in the library are registered on the fly.
func resolveBook(cmd *cobra.Command, a *app, arg string) (library.Book, error) {
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return a.store.Get(cmd.Context(), id)
	}
	book, err := a.store.GetByPath(cmd.Context(), arg)
	if errors.Is(err, library.ErrNotFound) {
		return a.scanner().AddBook(cmd.Context(), arg)
	}
	return book, err
}
