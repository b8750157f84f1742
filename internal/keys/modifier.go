package keys

import (
	"math"
	"strings"
)

// Modifier is a set of co-pressed modifier keys.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModCtrl  Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModShift Modifier = 1 << 2
	ModWin   Modifier = 1 << 3

	modAll = ModCtrl | ModAlt | ModShift | ModWin
)

// displayOrder is the order modifiers are written in shortcut strings.
var displayOrder = []Modifier{ModWin, ModCtrl, ModShift, ModAlt}

func (m Modifier) Has(flag Modifier) bool { return flag != 0 && m&flag == flag }
func (m Modifier) HasCtrl() bool          { return m&ModCtrl != 0 }
func (m Modifier) HasAlt() bool           { return m&ModAlt != 0 }
func (m Modifier) HasShift() bool         { return m&ModShift != 0 }
func (m Modifier) HasWin() bool           { return m&ModWin != 0 }

// With returns the union of m and other.
func (m Modifier) With(other Modifier) Modifier { return m | other }

// Without returns m with the bits of other cleared.
func (m Modifier) Without(other Modifier) Modifier { return m &^ other }

// Names returns the modifier names in Win, Ctrl, Shift, Alt order.
func (m Modifier) Names() []string {
	names := make([]string, 0, 4)
	for _, flag := range displayOrder {
		if m.Has(flag) {
			names = append(names, modifierNames[flag])
		}
	}
	return names
}

// String renders the set as "Win + Ctrl", or "None" when empty.
func (m Modifier) String() string {
	if m&modAll == 0 {
		return "None"
	}
	return strings.Join(m.Names(), " + ")
}

// State is the key transition a shortcut fires on.
type State uint8

const (
	Up State = iota
	Down
)

func (s State) String() string {
	if s == Down {
		return "Down"
	}
	return "Up"
}

// RawEvent is one keyboard transition as delivered by the OS hook.
type RawEvent struct {
	VirtualCode uint32
	Extended    bool
	State       State
}

// Valid reports whether VirtualCode fits in a Key without truncation.
func (ev RawEvent) Valid() bool {
	return ev.VirtualCode <= math.MaxUint16
}
