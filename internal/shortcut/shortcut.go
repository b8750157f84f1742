// Package shortcut defines the Shortcut value: a key, the modifiers held
// with it and the transition it fires on.
package shortcut

import (
	"strings"

	"keyhook/internal/keys"
)

// ID is the comparable identity of a Shortcut. The name is not part of it.
type ID struct {
	Key      keys.Key
	Modifier keys.Modifier
	State    keys.State
}

// Shortcut is an immutable key combination.
// Construct with New so the modifier normalization holds.
type Shortcut struct {
	key      keys.Key
	modifier keys.Modifier
	state    keys.State
	name     string
}

// New builds a Shortcut. When key is itself a modifier key, the matching
// modifier bit is dropped: LeftCtrl with Ctrl|Shift becomes LeftCtrl with Shift.
func New(key keys.Key, modifier keys.Modifier, state keys.State) Shortcut {
	return Shortcut{
		key:      key,
		modifier: modifier.Without(keys.ModifierOf(key)),
		state:    state,
	}
}

// WithName returns a copy of s carrying a descriptive name.
func (s Shortcut) WithName(name string) Shortcut {
	s.name = name
	return s
}

func (s Shortcut) Key() keys.Key           { return s.key }
func (s Shortcut) Modifier() keys.Modifier { return s.modifier }
func (s Shortcut) State() keys.State       { return s.state }
func (s Shortcut) Name() string            { return s.name }

// ID returns the identity used for equality and registry lookups.
func (s Shortcut) ID() ID {
	return ID{Key: s.key, Modifier: s.modifier, State: s.state}
}

// Equal reports whether s and other share key, modifier and state.
func (s Shortcut) Equal(other Shortcut) bool {
	return s.ID() == other.ID()
}

// String renders the canonical form with full key names,
// e.g. "Win + Ctrl + Shift + Alt + StandardEnter".
func (s Shortcut) String() string {
	return s.join(s.key.String())
}

// DisplayString renders the short human-facing form,
// e.g. "Ctrl + 3" or "Win + Enter".
func (s Shortcut) DisplayString() string {
	return s.join(s.key.Label())
}

func (s Shortcut) join(keyText string) string {
	parts := append(s.modifier.Names(), keyText)
	return strings.Join(parts, " + ")
}
