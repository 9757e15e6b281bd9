// Package cmd wires the ritmo command line: library management subcommands
// plus the interactive reader.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amendoza/ritmo/internal/config"
	"github.com/amendoza/ritmo/internal/extract"
	"github.com/amendoza/ritmo/internal/library"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Execute runs the root command and exits non-zero on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "ritmo",
		Short:         "RSVP speed reader for your EPUB library",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")

	root.AddCommand(
		newScanCmd(&configPath),
		newAddCmd(&configPath),
		newListCmd(&configPath),
		newReadCmd(&configPath),
	)
	return root
}

// app holds the wired dependencies a subcommand needs.
type app struct {
	cfg   config.Config
	log   *slog.Logger
	store *library.Store
}

// newApp loads config, builds the logger and opens the library. interactive
// silences stderr logging, which would corrupt the alternate screen.
func newApp(ctx context.Context, configPath string, interactive bool) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log, err := newLogger(cfg.Log, interactive)
	if err != nil {
		return nil, err
	}
	store, err := library.Open(ctx, cfg.Library.DatabasePath, log)
	if err != nil {
		return nil, fmt.Errorf("open library: %w", err)
	}
	return &app{cfg: cfg, log: log, store: store}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("closing library", slog.String("error", err.Error()))
	}
}

func (a *app) scanner() *library.Scanner {
	return &library.Scanner{Store: a.store, Log: a.log, Extract: extract.Extract}
}

func newLogger(cfg config.LogConfig, interactive bool) (*slog.Logger, error) {
	var w io.Writer
	switch {
	case cfg.Path != "":
		f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
	case interactive:
		w = io.Discard
	default:
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()})), nil
}
