//go:build !windows

package nativehook

import (
	"errors"
	"log/slog"

	"keyhook/internal/keys"
)

// Hook is never installed on this platform.
type Hook struct{}

// Close is a no-op.
func (h *Hook) Close() error { return nil }

// Install reports ErrUnsupported: low-level keyboard hooks exist only on Windows.
func Install(dispatch func(keys.RawEvent) bool) (*Hook, error) {
	if dispatch == nil {
		return nil, errors.New("dispatch callback is required")
	}
	slog.Warn("[hook] DEBUG low-level keyboard hooks are not supported on this platform")
	return nil, ErrUnsupported
}

// AsyncKeyState reports every modifier as released.
type AsyncKeyState struct{}

func (AsyncKeyState) IsCtrlPressed() bool  { return false }
func (AsyncKeyState) IsShiftPressed() bool { return false }
func (AsyncKeyState) IsAltPressed() bool   { return false }
func (AsyncKeyState) IsWinPressed() bool   { return false }
