package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"presupuesto/internal/cli"
	applog "presupuesto/internal/log"
	"presupuesto/internal/presenter"
	"presupuesto/internal/services"
	"presupuesto/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "presupuesto: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig()

	logger, logCloser := cli.SetupLogger(cfg)
	defer logCloser.Close()

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	res := cli.InitBackend(ctx, logger, cfg)
	defer func() {
		if err := res.Close(); err != nil {
			logger.Error("Storage cleanup failed", applog.FieldOperation, applog.OpShutdown, applog.FieldError, err)
		}
	}()

	budget := services.NewBudgetService(res.Store, cfg.StorageKey, logger)
	notifier := presenter.NewNotifier()
	defer notifier.Close()

	p := presenter.New(budget, notifier, logger, presenter.Durations{
		Success:   cfg.NotifySuccess,
		Error:     cfg.NotifyError,
		Exhausted: cfg.NotifyExhausted,
	})

	needsBudget, err := p.Start(ctx)
	if err != nil {
		return fmt.Errorf("load budget: %w", err)
	}
	logger.Info("Starting presupuesto",
		applog.FieldOperation, applog.OpStartup,
		applog.FieldBackend, cfg.DataBackend,
		applog.FieldStorageKey, budget.Key(),
		"needs_budget", needsBudget)

	// Notifications are posted from inside the UI loop, so redraws go through
	// a buffered channel the App waits on rather than through prog.Send.
	refresher := tui.NewRefresher()
	notifier.SetOnChange(refresher.Notify)
	app := tui.NewApp(ctx, p, needsBudget, tui.Options{Refresher: refresher, Logger: logger})
	prog := tea.NewProgram(app, tea.WithAltScreen())

	// The UI and the signal watcher share a lifetime: whichever ends first
	// stops the other.
	g, gctx := errgroup.WithContext(ctx)
	uiDone := make(chan struct{})
	g.Go(func() error {
		defer close(uiDone)
		_, err := prog.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		select {
		case <-gctx.Done():
			logger.Info("Shutdown signal received", applog.FieldOperation, applog.OpShutdown)
			prog.Quit()
		case <-uiDone:
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("UI stopped with error",
			applog.NewFields().WithOperation(applog.OpShutdown).WithError(err, applog.ErrorTypeInternal).ToSlice()...)
		return err
	}
	logger.Info("Stopped", applog.FieldOperation, applog.OpShutdown)
	return nil
}
