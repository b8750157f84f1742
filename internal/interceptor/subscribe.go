package interceptor

import (
	"errors"
	"slices"

	"github.com/google/uuid"

	"keyhook/internal/shortcut"
	"keyhook/internal/workerutil"
)

// ErrNilObserver is returned when Subscribe gets a nil callback.
var ErrNilObserver = errors.New("observer callback is required")

// PressedEvent is the catch-all notification raised for every transition.
// Observers set Handled to swallow the keystroke.
type PressedEvent struct {
	Shortcut shortcut.Shortcut
	Handled  bool
}

// Observer receives catch-all notifications on the hook thread.
type Observer func(*PressedEvent)

// SubscriptionID identifies one Subscribe call.
type SubscriptionID uuid.UUID

func (id SubscriptionID) String() string { return uuid.UUID(id).String() }

type subscriber struct {
	id SubscriptionID
	fn Observer
}

// Subscribe adds an observer after the existing ones.
func (i *Interceptor) Subscribe(fn Observer) (SubscriptionID, error) {
	if fn == nil {
		return SubscriptionID{}, ErrNilObserver
	}
	id := SubscriptionID(uuid.New())
	i.subMu.Lock()
	defer i.subMu.Unlock()
	i.subscribers = append(i.subscribers, subscriber{id: id, fn: fn})
	return id, nil
}

// Unsubscribe removes an observer. It reports whether id was subscribed.
func (i *Interceptor) Unsubscribe(id SubscriptionID) bool {
	i.subMu.Lock()
	defer i.subMu.Unlock()
	n := len(i.subscribers)
	i.subscribers = slices.DeleteFunc(i.subscribers, func(s subscriber) bool { return s.id == id })
	return len(i.subscribers) != n
}

// notify raises sc to every observer in subscription order and returns
// whether any of them marked it handled.
func (i *Interceptor) notify(sc shortcut.Shortcut) bool {
	i.subMu.Lock()
	subs := slices.Clone(i.subscribers)
	i.subMu.Unlock()

	ev := &PressedEvent{Shortcut: sc}
	for _, s := range subs {
		if !i.recoverPanics {
			s.fn(ev)
			continue
		}
		_ = workerutil.Recover("observer "+s.id.String(), func() { s.fn(ev) })
	}
	return ev.Handled
}
