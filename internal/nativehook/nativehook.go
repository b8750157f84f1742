// Package nativehook installs the Windows low-level keyboard hook
// (WH_KEYBOARD_LL) and reads live modifier state. The hook runs its own
// message loop on a locked OS thread; every keystroke is handed to a
// dispatch function whose answer decides whether the key is swallowed.
package nativehook

import (
	"errors"
	"fmt"

	"keyhook/internal/keys"
)

// ErrUnsupported is returned by Install on platforms without the hook.
var ErrUnsupported = fmt.Errorf("low-level keyboard hook: %w", errors.ErrUnsupported)

// Window messages delivered to a WH_KEYBOARD_LL callback.
const (
	wmKeyDown    = 0x0100
	wmKeyUp      = 0x0101
	wmSysKeyDown = 0x0104
	wmSysKeyUp   = 0x0105
)

// llkhfExtended is the KBDLLHOOKSTRUCT.flags bit set for extended keys.
const llkhfExtended = 0x01

// stateFromMessage collapses the four keyboard messages into Up and Down.
func stateFromMessage(msg uint32) (keys.State, bool) {
	switch msg {
	case wmKeyDown, wmSysKeyDown:
		return keys.Down, true
	case wmKeyUp, wmSysKeyUp:
		return keys.Up, true
	default:
		return keys.Up, false
	}
}

func rawEvent(vkCode, flags uint32, state keys.State) keys.RawEvent {
	return keys.RawEvent{
		VirtualCode: vkCode,
		Extended:    flags&llkhfExtended != 0,
		State:       state,
	}
}
