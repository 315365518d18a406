package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/zeusync/sceneedit/internal/audio"
	"github.com/zeusync/sceneedit/internal/config"
	"github.com/zeusync/sceneedit/internal/core/observability/log"
	"github.com/zeusync/sceneedit/internal/editor"
	"github.com/zeusync/sceneedit/internal/injector"
	"github.com/zeusync/sceneedit/internal/server"
	"github.com/zeusync/sceneedit/internal/tui"
	"github.com/zeusync/sceneedit/internal/ui"
	"golang.org/x/sync/errgroup"
)

// fallbackLogFile receives logs that would otherwise be drawn over the
// terminal front-end.
const fallbackLogFile = "sceneedit.log"

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	headless := flag.Bool("headless", false, "run without the terminal front-end")
	flag.Parse()

	if err := run(*configPath, *headless); err != nil {
		fmt.Fprintln(os.Stderr, "sceneedit:", err)
		os.Exit(1)
	}
}

func run(configPath string, headless bool) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}

	logger, err := newLogger(cfg.Log, headless)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cues, closeAudio := audio.New(cfg.Audio.Enabled, logger)
	defer closeAudio()

	var (
		pointer ui.PointerSource = ui.Detached{}
		cursor  *tui.Pointer
	)
	if !headless {
		cursor = tui.NewPointer(tui.NewProjection(cfg.Scene.Area.Box(), 80, 24))
		pointer = cursor
	}

	ed, err := injector.InitializeEditor(cfg, logger, pointer, cues)
	if err != nil {
		return fmt.Errorf("assemble editor: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return ed.Loop.Run(ctx) })

	if err = ed.Do(ctx, func(ed *editor.Editor) error { return ed.Start(ctx) }); err != nil {
		cancel()
		_ = g.Wait()
		return fmt.Errorf("start editor: %w", err)
	}

	if cfg.Control.Enabled {
		srv := server.New(ed, cfg.Control.Listen, cfg.Control.MaxClients, logger)
		g.Go(func() error { return srv.Run(ctx) })
	}

	if !headless {
		screen, err := tcell.NewScreen()
		if err != nil {
			cancel()
			_ = g.Wait()
			return fmt.Errorf("open terminal: %w", err)
		}

		term := tui.New(screen, ed, cursor, logger)
		if err = term.Init(ctx); err != nil {
			cancel()
			_ = g.Wait()
			return err
		}
		g.Go(func() error {
			defer cancel()
			return term.Run(ctx)
		})
	}

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	logger.Info("editor stopped")
	return err
}

func newLogger(cfg config.LogConfig, headless bool) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	output := cfg.Output
	if output == "" || (!headless && (output == "stderr" || output == "stdout")) {
		output = fallbackLogFile
	}

	return log.NewWithOptions(log.Options{
		Level:       level,
		Encoding:    "json",
		OutputPaths: []string{output},
	})
}
