// Package interceptor matches keyboard transitions reported by a low-level
// hook against registered shortcuts and decides whether each keystroke is
// hidden from the rest of the system.
package interceptor

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"weak"

	"keyhook/internal/keys"
	"keyhook/internal/registry"
	"keyhook/internal/shortcut"
)

var (
	ErrNoInstaller     = errors.New("hook installer is required")
	ErrNoModifierState = errors.New("modifier state source is required")
	ErrLegacyShortcuts = errors.New("preset shortcuts require legacy mode")
)

// ModifierState reports which modifiers are held right now. Each call
// samples live state; results must not be cached across events.
type ModifierState interface {
	IsCtrlPressed() bool
	IsShiftPressed() bool
	IsAltPressed() bool
	IsWinPressed() bool
}

// DispatchFunc receives one raw transition and returns true to swallow it.
type DispatchFunc func(keys.RawEvent) bool

// InstallFunc installs a keyboard hook that feeds dispatch. The returned
// closer removes the hook.
type InstallFunc func(dispatch DispatchFunc) (io.Closer, error)

// Options configures New.
type Options struct {
	Install   InstallFunc
	Modifiers ModifierState

	// LegacyMode seeds the registry with Shortcuts, each reporting to the
	// subscribers, and turns off the catch-all notification for other keys.
	LegacyMode bool
	Shortcuts  []shortcut.Shortcut

	// RecoverHandlerPanics logs a panicking handler or subscriber and counts
	// its vote as false instead of letting the panic unwind into the hook.
	RecoverHandlerPanics bool
}

// Interceptor owns one keyboard hook and the shortcuts matched against it.
type Interceptor struct {
	registry      *registry.Registry
	modifiers     ModifierState
	legacy        bool
	recoverPanics bool

	subMu       sync.Mutex
	subscribers []subscriber

	hook    io.Closer
	cleanup runtime.Cleanup
	closed  atomic.Bool
}

// New installs the hook and returns a ready interceptor. A failure to
// install the hook is returned as an error.
func New(opts Options) (*Interceptor, error) {
	if opts.Install == nil {
		return nil, ErrNoInstaller
	}
	if opts.Modifiers == nil {
		return nil, ErrNoModifierState
	}
	if len(opts.Shortcuts) > 0 && !opts.LegacyMode {
		return nil, ErrLegacyShortcuts
	}

	i := &Interceptor{
		registry:      registry.New(),
		modifiers:     opts.Modifiers,
		legacy:        opts.LegacyMode,
		recoverPanics: opts.RecoverHandlerPanics,
	}
	for _, sc := range opts.Shortcuts {
		if _, err := i.registry.Register(sc, func() bool { return i.notify(sc) }); err != nil {
			return nil, err
		}
	}

	// The hook only holds a weak reference so an abandoned interceptor can
	// be collected and its cleanup can release the hook.
	target := weak.Make(i)
	hook, err := opts.Install(func(ev keys.RawEvent) bool {
		if it := target.Value(); it != nil {
			return it.Dispatch(ev)
		}
		return false
	})
	if err != nil {
		return nil, fmt.Errorf("install keyboard hook: %w", err)
	}
	if hook == nil {
		return nil, errors.New("install keyboard hook: installer returned no handle")
	}
	i.hook = hook
	i.cleanup = runtime.AddCleanup(i, releaseAbandoned, hook)

	slog.Debug("[interceptor] keyboard hook installed", "legacy", i.legacy, "presets", len(opts.Shortcuts))
	return i, nil
}

func releaseAbandoned(hook io.Closer) {
	slog.Warn("[interceptor] releasing keyboard hook of an interceptor that was never closed")
	if err := hook.Close(); err != nil {
		slog.Warn("[interceptor] release of abandoned keyboard hook failed", "error", err)
	}
}

// Close removes the hook and drops every shortcut and subscriber.
// Only the first call does any work; later calls return nil.
func (i *Interceptor) Close() error {
	if !i.closed.CompareAndSwap(false, true) {
		return nil
	}
	i.cleanup.Stop()
	err := i.hook.Close()

	i.registry.Clear()
	i.subMu.Lock()
	i.subscribers = nil
	i.subMu.Unlock()

	if err != nil {
		return fmt.Errorf("remove keyboard hook: %w", err)
	}
	return nil
}

// Closed reports whether Close has been called.
func (i *Interceptor) Closed() bool {
	return i.closed.Load()
}

// LegacyMode reports whether the interceptor runs without the catch-all
// notification.
func (i *Interceptor) LegacyMode() bool {
	return i.legacy
}

// Register attaches handler to sc. Several handlers may share a shortcut.
func (i *Interceptor) Register(sc shortcut.Shortcut, handler registry.Handler) (registry.HandlerID, error) {
	return i.registry.Register(sc, handler)
}

// RegisterAction attaches action to sc; the keystroke is swallowed when consume is set.
func (i *Interceptor) RegisterAction(sc shortcut.Shortcut, action func(), consume bool) (registry.HandlerID, error) {
	return i.registry.RegisterAction(sc, action, consume)
}

// Unregister removes one handler from sc.
func (i *Interceptor) Unregister(sc shortcut.Shortcut, id registry.HandlerID) bool {
	return i.registry.Unregister(sc, id)
}

// UnregisterAll removes sc and every handler attached to it.
func (i *Interceptor) UnregisterAll(sc shortcut.Shortcut) bool {
	return i.registry.UnregisterAll(sc)
}

// UnregisterAllShortcuts empties the registry.
func (i *Interceptor) UnregisterAllShortcuts() {
	i.registry.Clear()
}

// Shortcuts lists the registered shortcuts in registration order.
func (i *Interceptor) Shortcuts() []shortcut.Shortcut {
	return i.registry.Shortcuts()
}
