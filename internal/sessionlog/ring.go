package sessionlog

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Entry is one captured record.
type Entry struct {
	Time    time.Time
	Level   slog.Level
	Message string
	Group   string
}

func (e Entry) String() string {
	source := ""
	if e.Group != "" {
		source = " (" + e.Group + ")"
	}
	return fmt.Sprintf("%s %-5s %s%s", e.Time.Format("15:04:05"), e.Level, e.Message, source)
}

// Ring holds the last N entries. The zero value is unusable; use NewRing.
type Ring struct {
	mu      sync.Mutex
	entries []Entry
	next    int
	full    bool
}

// NewRing allocates a ring with room for capacity entries (at least one).
func NewRing(capacity int) *Ring {
	return &Ring{entries: make([]Entry, max(capacity, 1))}
}

// Add is an EntryCallback.
func (r *Ring) Add(ts time.Time, level slog.Level, msg string, group string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[r.next] = Entry{Time: ts, Level: level, Message: msg, Group: group}
	r.next = (r.next + 1) % len(r.entries)
	if r.next == 0 {
		r.full = true
	}
}

// Entries returns the captured entries, oldest first.
func (r *Ring) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.full {
		return append([]Entry(nil), r.entries[:r.next]...)
	}
	out := make([]Entry, 0, len(r.entries))
	out = append(out, r.entries[r.next:]...)
	return append(out, r.entries[:r.next]...)
}

// Len reports how many entries are held.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.full {
		return len(r.entries)
	}
	return r.next
}
