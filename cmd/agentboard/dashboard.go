package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/aristath/agentboard/internal/backlog"
	"github.com/aristath/agentboard/internal/config"
	"github.com/aristath/agentboard/internal/events"
	"github.com/aristath/agentboard/internal/logging"
	"github.com/aristath/agentboard/internal/source"
	"github.com/aristath/agentboard/internal/tasklist"
	"github.com/aristath/agentboard/internal/tui"
)

// runDashboard wires the source, bus, reconciler, and TUI together and runs
// until the user quits or a shutdown signal arrives.
func runDashboard(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, closeLog, err := logging.NewFromEnv(cfg.Debug)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer closeLog()

	src, cleanup, err := buildSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	bus := events.NewBus()
	defer bus.Close()

	opts := []tasklist.Option{
		tasklist.WithAnimationWindow(time.Duration(cfg.Dashboard.AnimationMS) * time.Millisecond),
	}
	if !cfg.Dashboard.ShowHeader {
		opts = append(opts, tasklist.WithoutFilterUI())
	}
	rec := tasklist.New(opts...)
	defer rec.Close()
	// Baseline filter; recorded silently so the first paint never animates.
	rec.SetFilter(cfg.Dashboard.DefaultFilter)

	poller := source.NewPoller(src, bus,
		time.Duration(cfg.Dashboard.PollIntervalMS)*time.Millisecond, log)

	model := tui.New(bus, rec, cfg.Dashboard.ShowHeader)
	program := tea.NewProgram(model, tea.WithAltScreen())

	pollCtx, stopPolling := context.WithCancel(ctx)
	defer stopPolling()

	// Quit the TUI on a shutdown signal; a normal quit cancels the poller
	// via stopPolling below.
	go func() {
		<-ctx.Done()
		program.Quit()
	}()

	var g errgroup.Group

	g.Go(func() error {
		err := poller.Run(pollCtx)
		if err == context.Canceled {
			return nil
		}
		return err
	})

	g.Go(func() error {
		defer stopPolling()
		_, err := program.Run()
		return err
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		log.Error().Err(err).Msg("dashboard exited with error")
		return err
	}

	log.Info().Msg("shutdown complete")
	return nil
}

// buildSource creates the snapshot source selected by the config.
func buildSource(ctx context.Context, cfg *config.Config) (source.Source, func(), error) {
	switch cfg.Source.Mode {
	case "", "store":
		dbPath, err := defaultDBPath(cfg)
		if err != nil {
			return nil, nil, err
		}
		store, err := backlog.NewSQLiteStore(ctx, dbPath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening backlog store: %w", err)
		}
		return source.NewStoreSource(store), func() { _ = store.Close() }, nil

	case "http":
		if cfg.Source.BaseURL == "" {
			return nil, nil, fmt.Errorf("source.base_url is required in http mode")
		}
		return source.NewHTTPSource(cfg.Source.BaseURL), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown source mode %q", cfg.Source.Mode)
	}
}
