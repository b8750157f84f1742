package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"keyhook/internal/config"
	"keyhook/internal/interceptor"
	"keyhook/internal/ipc"
	"keyhook/internal/shortcut"
	"keyhook/internal/workerutil"
)

// startup loads the config, installs the hook, registers the bindings and
// starts the control pipe and the config watcher. Only a hook install
// failure is fatal.
func (a *App) startup(ctx context.Context) error {
	a.startedAt = time.Now()

	cfg, err := config.EnsureFile(a.configPath)
	if err != nil {
		// A broken config must not leave the user without a daemon to fix it with.
		slog.Warn("[WARN-CONFIG] failed to load config, running with defaults", "path", a.configPath, "error", err)
		cfg = config.DefaultConfig()
	}

	legacy := a.legacyOverride || cfg.LegacyMode
	var presets []shortcut.Shortcut
	if legacy {
		presets = bindingShortcuts(cfg.Bindings)
	}
	it, err := interceptor.New(interceptor.Options{
		Install:              installHookFn,
		Modifiers:            modifierStateFn,
		LegacyMode:           legacy,
		Shortcuts:            presets,
		RecoverHandlerPanics: cfg.RecoverHandlerPanics,
	})
	if err != nil {
		return err
	}
	a.interceptor = it
	if _, err := it.Subscribe(a.observePress); err != nil {
		return fmt.Errorf("subscribe press observer: %w", err)
	}

	a.cfgMu.Lock()
	a.cfg = cfg
	a.openJournalLocked(cfg)
	n := a.registerBindingsLocked(cfg.Bindings)
	a.cfgMu.Unlock()
	slog.Info("[keyhook] bindings registered", "count", n, "legacy", legacy, "config", a.configPath)

	a.pipeServer = ipc.NewPipeServer(a.pipeName, ipcHandler{a})
	if err := a.pipeServer.Start(); err != nil {
		slog.Warn("[keyhook] control pipe unavailable, keyhookctl will not reach this daemon", "error", err)
		a.pipeServer = nil
	} else {
		slog.Info("[keyhook] control pipe listening", "pipe", a.pipeServer.PipeName())
	}

	workerCtx, cancel := context.WithCancel(ctx)
	a.workerCancel = cancel
	if !hotReload {
		return nil
	}
	watcher := config.NewWatcher(a.configPath, a.onConfigReload)
	workerutil.RunWithPanicRecovery(workerCtx, "config-watcher", &a.workers, func(ctx context.Context) {
		if err := watcher.Run(ctx); err != nil {
			slog.Warn("[WARN-CONFIG] config hot reload disabled", "error", err)
		}
	}, workerutil.RecoveryOptions{IsShutdown: a.shuttingDown.Load})
	return nil
}

// shutdown releases everything startup acquired. It is safe after a
// partial startup.
func (a *App) shutdown() error {
	if !a.shuttingDown.CompareAndSwap(false, true) {
		return nil
	}
	var errs []error
	if a.workerCancel != nil {
		a.workerCancel()
	}
	if a.pipeServer != nil {
		if err := a.pipeServer.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop control pipe: %w", err))
		}
	}
	if a.interceptor != nil {
		if err := a.interceptor.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	done := make(chan struct{})
	go func() {
		a.workers.Wait()
		a.firing.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(shutdownWaitTimeout):
		errs = append(errs, errors.New("timed out waiting for background workers"))
	}

	a.journalMu.Lock()
	if err := a.journal.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close journal: %w", err))
	}
	a.journal = nil
	a.journalMu.Unlock()

	slog.Info("[keyhook] stopped")
	return errors.Join(errs...)
}

func (a *App) onConfigReload(cfg config.Config, err error) {
	if err != nil {
		return
	}
	if a.shuttingDown.Load() {
		return
	}
	n := a.reload(cfg)
	slog.Info("[keyhook] config reloaded", "bindings", n)
}

// reload swaps in cfg's bindings and journal settings. Settings fixed at
// hook install time only take effect after a restart.
func (a *App) reload(cfg config.Config) int {
	a.cfgMu.Lock()
	defer a.cfgMu.Unlock()

	if (a.legacyOverride || cfg.LegacyMode) != a.interceptor.LegacyMode() {
		slog.Warn("[WARN-CONFIG] legacy_mode changed, restart keyhook to apply")
	}
	if cfg.RecoverHandlerPanics != a.cfg.RecoverHandlerPanics {
		slog.Warn("[WARN-CONFIG] recover_handler_panics changed, restart keyhook to apply")
	}
	if cfg.Journal != a.cfg.Journal {
		a.openJournalLocked(cfg)
	}
	a.unregisterBindingsLocked()
	a.cfg = cfg
	return a.registerBindingsLocked(cfg.Bindings)
}
