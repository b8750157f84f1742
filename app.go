package main

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"keyhook/internal/config"
	"keyhook/internal/interceptor"
	"keyhook/internal/ipc"
	"keyhook/internal/journal"
	"keyhook/internal/nativehook"
	"keyhook/internal/procutil"
	"keyhook/internal/registry"
	"keyhook/internal/sessionlog"
	"keyhook/internal/shortcut"
)

// Test seams.
var (
	installHookFn   interceptor.InstallFunc   = installNativeHook
	modifierStateFn interceptor.ModifierState = nativehook.AsyncKeyState{}
	startCommandFn                            = procutil.Start
	hotReload                                 = true
)

const shutdownWaitTimeout = 5 * time.Second

// installNativeHook adapts nativehook.Install to interceptor.InstallFunc.
// A failed install must return a nil io.Closer, not a typed nil *Hook.
func installNativeHook(dispatch interceptor.DispatchFunc) (io.Closer, error) {
	hook, err := nativehook.Install(dispatch)
	if err != nil {
		return nil, err
	}
	return hook, nil
}

// activeBinding is a config binding registered with the interceptor.
type activeBinding struct {
	binding  config.Binding
	shortcut shortcut.Shortcut
	id       registry.HandlerID
}

// App is the keyhook daemon: one keyboard hook, the bindings of one config
// file and the control pipe.
type App struct {
	configPath     string
	legacyOverride bool
	pipeName       string
	startedAt      time.Time

	// Lock ordering (outer -> inner): cfgMu -> journalMu.
	cfgMu    sync.RWMutex
	cfg      config.Config
	bindings []activeBinding

	journalMu sync.Mutex
	journal   *journal.Journal

	interceptor *interceptor.Interceptor
	pipeServer  *ipc.PipeServer
	warnings    *sessionlog.Ring

	lastPressed atomic.Pointer[shortcut.Shortcut]
	fired       atomic.Uint64

	workerCancel context.CancelFunc
	workers      sync.WaitGroup
	firing       sync.WaitGroup
	shuttingDown atomic.Bool
	stopOnce     sync.Once
	stopCh       chan struct{}
}

// NewApp creates a daemon for the config file at configPath. warnings may be
// nil when no log ring is installed.
func NewApp(configPath string, legacy bool, warnings *sessionlog.Ring) *App {
	return &App{
		configPath:     configPath,
		legacyOverride: legacy,
		warnings:       warnings,
		stopCh:         make(chan struct{}),
	}
}

// Done is closed when a stop was requested over the control pipe.
func (a *App) Done() <-chan struct{} {
	return a.stopCh
}

func (a *App) requestStop() {
	a.stopOnce.Do(func() { close(a.stopCh) })
}

func (a *App) config() config.Config {
	a.cfgMu.RLock()
	defer a.cfgMu.RUnlock()
	return config.Clone(a.cfg)
}

func (a *App) currentJournal() *journal.Journal {
	a.journalMu.Lock()
	defer a.journalMu.Unlock()
	return a.journal
}
