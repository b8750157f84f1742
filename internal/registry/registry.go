// Package registry keeps the shortcuts an interceptor listens for and the
// handlers attached to each of them.
package registry

import (
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"

	"keyhook/internal/shortcut"
)

// ErrNilHandler is returned when a nil callback is registered.
var ErrNilHandler = errors.New("handler callback is required")

// Handler runs when its shortcut is pressed. Returning true asks for the
// keystroke to be hidden from the rest of the system.
type Handler func() bool

// HandlerID identifies one registered handler.
type HandlerID uuid.UUID

func (id HandlerID) String() string { return uuid.UUID(id).String() }

// Registered is one handler as seen by a dispatch snapshot.
type Registered struct {
	Shortcut shortcut.Shortcut
	ID       HandlerID
	Handler  Handler
}

type entry struct {
	shortcut shortcut.Shortcut
	handlers []Registered
}

// Registry maps shortcuts to ordered handler sets. Entries are kept in
// the order their shortcut was first registered. It is safe for
// concurrent use, including from inside a handler during dispatch.
type Registry struct {
	mu      sync.Mutex
	entries []*entry
	index   map[shortcut.ID]*entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{index: make(map[shortcut.ID]*entry)}
}

// Register attaches handler to sc, creating the entry if needed.
func (r *Registry) Register(sc shortcut.Shortcut, handler Handler) (HandlerID, error) {
	if handler == nil {
		return HandlerID{}, ErrNilHandler
	}
	id := HandlerID(uuid.New())

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.index[sc.ID()]
	if !ok {
		e = &entry{shortcut: sc}
		r.index[sc.ID()] = e
		r.entries = append(r.entries, e)
	}
	e.handlers = append(e.handlers, Registered{Shortcut: e.shortcut, ID: id, Handler: handler})
	return id, nil
}

// RegisterAction attaches a side-effect callback whose vote is consume.
func (r *Registry) RegisterAction(sc shortcut.Shortcut, action func(), consume bool) (HandlerID, error) {
	if action == nil {
		return HandlerID{}, ErrNilHandler
	}
	return r.Register(sc, func() bool {
		action()
		return consume
	})
}

// Unregister removes one handler from sc. The entry disappears with its
// last handler. It reports whether the handler was found.
func (r *Registry) Unregister(sc shortcut.Shortcut, id HandlerID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.index[sc.ID()]
	if !ok {
		return false
	}
	for i, h := range e.handlers {
		if h.ID != id {
			continue
		}
		e.handlers = slices.Delete(e.handlers, i, i+1)
		if len(e.handlers) == 0 {
			r.removeLocked(sc.ID())
		}
		return true
	}
	return false
}

// UnregisterAll removes sc with every handler attached to it.
func (r *Registry) UnregisterAll(sc shortcut.Shortcut) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.index[sc.ID()]; !ok {
		return false
	}
	r.removeLocked(sc.ID())
	return true
}

// Clear removes every shortcut.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
	r.index = make(map[shortcut.ID]*entry)
}

func (r *Registry) removeLocked(id shortcut.ID) {
	delete(r.index, id)
	r.entries = slices.DeleteFunc(r.entries, func(e *entry) bool {
		return e.shortcut.ID() == id
	})
}

// Len returns the number of registered shortcuts.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Handlers returns the number of handlers attached to sc.
func (r *Registry) Handlers(sc shortcut.Shortcut) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.index[sc.ID()]; ok {
		return len(e.handlers)
	}
	return 0
}

// Shortcuts returns the registered shortcuts in registration order.
func (r *Registry) Shortcuts() []shortcut.Shortcut {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]shortcut.Shortcut, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.shortcut)
	}
	return out
}

// Match returns a snapshot of the handlers whose shortcut satisfies
// accept, in entry order then handler order. The snapshot is detached from
// the registry, so handlers may mutate the registry while it is walked.
func (r *Registry) Match(accept func(shortcut.Shortcut) bool) []Registered {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Registered
	for _, e := range r.entries {
		if accept(e.shortcut) {
			out = append(out, e.handlers...)
		}
	}
	return out
}
