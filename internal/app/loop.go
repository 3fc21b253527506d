package app

import (
	"context"
	"time"

	"github.com/dshills/splitflap/internal/config"
	"github.com/dshills/splitflap/internal/ui"
)

// Run takes over the terminal and drives the event loop until the user
// quits or the context is canceled. configPath, when non-empty, is
// watched for live reloads of the tuning values.
func (a *App) Run(ctx context.Context, configPath string) error {
	term, err := ui.NewTerminal()
	if err != nil {
		return err
	}
	if err := term.Init(); err != nil {
		return err
	}
	defer term.Fini()

	events := term.Events()

	cfgCh := make(chan config.Config, 1)
	if configPath != "" {
		watcher, err := config.NewWatcher(configPath, a.logger, func(cfg config.Config) {
			select {
			case cfgCh <- cfg:
			default:
			}
		})
		if err != nil {
			a.logger.Warn("config watch unavailable", "error", err)
		} else {
			defer watcher.Close()
		}
	}

	ticker := time.NewTicker(a.pollInterval)
	defer ticker.Stop()

	// First poll without waiting a full interval.
	a.tick(ctx)

	for !a.quit {
		term.Render(a.viewState())

		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			a.handleCommand(ctx, a.translator.Translate(ev))
		case <-ticker.C:
			a.tick(ctx)
		case cfg := <-cfgCh:
			a.applyConfig(cfg, ticker)
		}
	}
	return nil
}

// tick runs one reconciliation pass with a deadline so a hung fetch
// cannot stall the loop past the poll cadence.
func (a *App) tick(ctx context.Context) {
	tctx, cancel := context.WithTimeout(ctx, a.pollInterval)
	defer cancel()
	if err := a.engine.Tick(tctx); err != nil {
		a.logger.Warn("reconcile tick failed", "error", err)
	}
}

// applyConfig picks up the reloadable tuning values. Everything else
// requires a restart.
func (a *App) applyConfig(cfg config.Config, ticker *time.Ticker) {
	a.engine.SetStaleness(cfg.Reconcile.Staleness.Std())

	if next := cfg.Reconcile.PollInterval.Std(); next != a.pollInterval && next > 0 {
		a.pollInterval = next
		ticker.Reset(next)
		a.logger.Info("poll interval updated", "interval", next)
	}
}
