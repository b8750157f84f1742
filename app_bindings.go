package main

import (
	"log/slog"

	"keyhook/internal/config"
	"keyhook/internal/interceptor"
	"keyhook/internal/journal"
	"keyhook/internal/keys"
	"keyhook/internal/procutil"
	"keyhook/internal/registry"
	"keyhook/internal/shortcut"
)

// bindingShortcuts returns the legacy presets for bindings. A shortcut bound
// more than once yields one preset so observers see each press once.
func bindingShortcuts(bindings []config.Binding) []shortcut.Shortcut {
	out := make([]shortcut.Shortcut, 0, len(bindings))
	seen := make(map[shortcut.ID]bool, len(bindings))
	for _, b := range bindings {
		sc, err := b.ParseShortcut()
		if err != nil || seen[sc.ID()] {
			continue
		}
		seen[sc.ID()] = true
		out = append(out, sc)
	}
	return out
}

// registerBindingsLocked registers one handler per binding. Bindings that
// fail to parse are skipped with a warning; config validation normally
// rejects them earlier. Caller holds cfgMu.
func (a *App) registerBindingsLocked(bindings []config.Binding) int {
	a.bindings = a.bindings[:0]
	for i, b := range bindings {
		sc, err := b.ParseShortcut()
		if err != nil {
			slog.Warn("[WARN-CONFIG] skipping binding", "index", i, "error", err)
			continue
		}
		id, err := a.interceptor.Register(sc, a.bindingHandler(b, sc))
		if err != nil {
			slog.Warn("[WARN-CONFIG] failed to register binding", "shortcut", sc.String(), "error", err)
			continue
		}
		a.bindings = append(a.bindings, activeBinding{binding: b, shortcut: sc, id: id})
	}
	return len(a.bindings)
}

// unregisterBindingsLocked removes only the daemon's own handlers so that
// legacy presets stay registered. Caller holds cfgMu.
func (a *App) unregisterBindingsLocked() {
	for _, ab := range a.bindings {
		a.interceptor.Unregister(ab.shortcut, ab.id)
	}
	a.bindings = nil
}

// bindingHandler votes the binding's consume flag. The command starts off
// the hook thread because the hook blocks keyboard input until it returns.
func (a *App) bindingHandler(b config.Binding, sc shortcut.Shortcut) registry.Handler {
	return func() bool {
		if a.shuttingDown.Load() {
			return false
		}
		a.firing.Go(func() { a.fire(b, sc) })
		return b.Consume
	}
}

func (a *App) fire(b config.Binding, sc shortcut.Shortcut) {
	a.fired.Add(1)
	var runErr error
	if b.Command != "" {
		pid, err := startCommandFn(procutil.Command{
			Path:       b.Command,
			Args:       b.Args,
			Dir:        b.WorkDir,
			HideWindow: b.HideWindow,
		})
		if err != nil {
			runErr = err
			slog.Warn("[binding] failed to start command", "binding", sc.Name(), "command", b.Command, "error", err)
		} else {
			slog.Debug("[binding] command started", "binding", sc.Name(), "pid", pid)
		}
	}
	slog.Info("[binding] fired", "binding", sc.Name(), "shortcut", sc.String())
	a.currentJournal().Fired(sc.Name(), sc.String(), b.Command, runErr)
}

// observePress receives the catch-all notification for every transition.
// It never swallows a key.
func (a *App) observePress(ev *interceptor.PressedEvent) {
	sc := ev.Shortcut
	if sc.State() != keys.Down {
		return
	}
	a.lastPressed.Store(&sc)

	a.cfgMu.RLock()
	logUnmatched := a.cfg.LogUnmatched
	matched := false
	for _, ab := range a.bindings {
		if interceptor.Matches(ab.shortcut, sc.Key(), sc.Modifier(), sc.State()) {
			matched = true
			break
		}
	}
	a.cfgMu.RUnlock()

	if logUnmatched && !matched {
		slog.Debug("[binding] unmatched press", "shortcut", sc.String())
		a.currentJournal().Unmatched(sc.String())
	}
}

// openJournalLocked replaces the journal according to cfg. Caller holds cfgMu.
func (a *App) openJournalLocked(cfg config.Config) {
	var next *journal.Journal
	if cfg.Journal.Enabled {
		path := cfg.JournalPath(a.configPath)
		j, err := journal.Open(path)
		if err != nil {
			slog.Warn("[WARN-CONFIG] binding journal disabled", "path", path, "error", err)
		} else {
			next = j
		}
	}

	a.journalMu.Lock()
	prev := a.journal
	a.journal = next
	a.journalMu.Unlock()
	if err := prev.Close(); err != nil {
		slog.Warn("[keyhook] failed to close previous journal", "error", err)
	}
}
