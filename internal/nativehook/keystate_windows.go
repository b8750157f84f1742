//go:build windows

package nativehook

import "keyhook/internal/keys"

var procGetAsyncKeyState = user32DLL.NewProc("GetAsyncKeyState")

// AsyncKeyState samples modifier keys with GetAsyncKeyState on every call.
type AsyncKeyState struct{}

func (AsyncKeyState) IsCtrlPressed() bool  { return keyDown(keys.Ctrl) }
func (AsyncKeyState) IsShiftPressed() bool { return keyDown(keys.Shift) }
func (AsyncKeyState) IsAltPressed() bool   { return keyDown(keys.Alt) }
func (AsyncKeyState) IsWinPressed() bool {
	return keyDown(keys.LeftWindows) || keyDown(keys.RightWindows)
}

// keyDown tests the most significant bit of the returned SHORT.
func keyDown(k keys.Key) bool {
	r, _, _ := procGetAsyncKeyState.Call(uintptr(k))
	return int16(r) < 0
}
