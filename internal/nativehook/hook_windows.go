//go:build windows

package nativehook

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"keyhook/internal/keys"
	"keyhook/internal/workerutil"
)

var (
	user32DLL = windows.NewLazySystemDLL("user32.dll")

	procSetWindowsHookExW   = user32DLL.NewProc("SetWindowsHookExW")
	procUnhookWindowsHookEx = user32DLL.NewProc("UnhookWindowsHookEx")
	procCallNextHookEx      = user32DLL.NewProc("CallNextHookEx")
	procGetMessageW         = user32DLL.NewProc("GetMessageW")
	procTranslateMessage    = user32DLL.NewProc("TranslateMessage")
	procDispatchMessageW    = user32DLL.NewProc("DispatchMessageW")
	procPostThreadMessageW  = user32DLL.NewProc("PostThreadMessageW")
	procPeekMessageW        = user32DLL.NewProc("PeekMessageW")
)

const (
	whKeyboardLL = 13
	hcAction     = 0
	wmQuit       = 0x0012
	pmNoRemove   = 0x0000

	stopTimeout = 2 * time.Second
)

// kbdllHookStruct mirrors KBDLLHOOKSTRUCT.
type kbdllHookStruct struct {
	vkCode      uint32
	scanCode    uint32
	flags       uint32
	time        uint32
	dwExtraInfo uintptr
}

type point struct {
	x int32
	y int32
}

// winMsg mirrors the Win32 MSG struct. The layout must match winuser.h.
type winMsg struct {
	hWnd    uintptr
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	pt      point
}

type loopReady struct {
	threadID uint32
	hhook    uintptr
	err      error
}

var (
	callbackOnce sync.Once
	callbackPtr  uintptr

	// dispatchers maps a hook thread ID to its dispatch function. The OS
	// calls hookProc on the thread that installed the hook.
	dispatchers sync.Map
)

// Hook is an installed low-level keyboard hook.
type Hook struct {
	threadID uint32
	hhook    uintptr
	doneCh   chan struct{}
	closed   atomic.Bool
}

// Install starts a message loop thread, installs WH_KEYBOARD_LL on it and
// feeds every keystroke to dispatch. dispatch runs on the loop thread and
// must return quickly: the OS stalls keyboard input until it does.
func Install(dispatch func(keys.RawEvent) bool) (*Hook, error) {
	if dispatch == nil {
		return nil, errors.New("dispatch callback is required")
	}
	if err := user32DLL.Load(); err != nil {
		return nil, fmt.Errorf("user32.dll is unavailable: %w", err)
	}
	callbackOnce.Do(func() {
		callbackPtr = windows.NewCallback(hookProc)
	})

	readyCh := make(chan loopReady, 1)
	doneCh := make(chan struct{})
	go runHookLoop(dispatch, readyCh, doneCh)

	ready := <-readyCh
	if ready.err != nil {
		return nil, fmt.Errorf("install WH_KEYBOARD_LL: %w", ready.err)
	}
	slog.Debug("[hook] DEBUG keyboard hook installed", "threadID", ready.threadID)
	return &Hook{threadID: ready.threadID, hhook: ready.hhook, doneCh: doneCh}, nil
}

// Close stops the message loop, which removes the hook on its own thread.
// Calls after the first return nil.
func (h *Hook) Close() error {
	if h == nil || !h.closed.CompareAndSwap(false, true) {
		return nil
	}

	stopErr := postQuit(h.threadID)
	if stopErr != nil {
		if err := unhook(h.hhook); err != nil {
			slog.Warn("[hook] DEBUG cross-thread unhook fallback failed", "error", err, "threadID", h.threadID)
		}
	}

	timer := time.NewTimer(stopTimeout)
	defer timer.Stop()
	select {
	case <-h.doneCh:
	case <-timer.C:
		slog.Warn("[hook] DEBUG message loop stop timed out, thread may leak", "threadID", h.threadID)
		stopErr = errors.Join(stopErr, fmt.Errorf("keyboard hook loop stop timed out (threadID=%d)", h.threadID))
	}
	return stopErr
}

func runHookLoop(dispatch func(keys.RawEvent) bool, readyCh chan<- loopReady, doneCh chan struct{}) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(doneCh)

	threadID := windows.GetCurrentThreadId()

	// PeekMessageW creates the thread message queue so that Close can post
	// WM_QUIT before the first keystroke arrives.
	var qmsg winMsg
	procPeekMessageW.Call(uintptr(unsafe.Pointer(&qmsg)), 0, 0, 0, pmNoRemove)

	var module windows.Handle
	if err := windows.GetModuleHandleEx(0, nil, &module); err != nil {
		readyCh <- loopReady{err: fmt.Errorf("GetModuleHandleEx: %w", err)}
		return
	}

	dispatchers.Store(threadID, dispatch)
	defer dispatchers.Delete(threadID)

	hhook, _, callErr := procSetWindowsHookExW.Call(whKeyboardLL, callbackPtr, uintptr(module), 0)
	if hhook == 0 {
		readyCh <- loopReady{err: lastError(callErr, "SetWindowsHookExW failed")}
		return
	}
	defer func() {
		if err := unhook(hhook); err != nil {
			slog.Error("[hook] DEBUG UnhookWindowsHookEx on loop exit failed", "error", err, "threadID", threadID)
		}
	}()

	readyCh <- loopReady{threadID: threadID, hhook: hhook}

	for {
		var msg winMsg
		ret, _, lastErr := procGetMessageW.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0)
		switch int32(ret) {
		case -1:
			slog.Warn("[hook] DEBUG GetMessageW returned error, exiting loop", "error", lastErr, "threadID", threadID)
			return
		case 0:
			slog.Info("[hook] DEBUG message loop received WM_QUIT, exiting normally", "threadID", threadID)
			return
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&msg)))
		procDispatchMessageW.Call(uintptr(unsafe.Pointer(&msg)))
	}
}

func hookProc(nCode, wParam, lParam uintptr) uintptr {
	if int32(nCode) == hcAction {
		if state, ok := stateFromMessage(uint32(wParam)); ok {
			kb := (*kbdllHookStruct)(unsafe.Pointer(lParam))
			if fn, ok := dispatchers.Load(windows.GetCurrentThreadId()); ok {
				if dispatchSafely(fn.(func(keys.RawEvent) bool), rawEvent(kb.vkCode, kb.flags, state)) {
					return 1
				}
			}
		}
	}
	ret, _, _ := procCallNextHookEx.Call(0, nCode, wParam, lParam)
	return ret
}

// dispatchSafely keeps a panic from unwinding through the OS callback frame.
func dispatchSafely(dispatch func(keys.RawEvent) bool, ev keys.RawEvent) bool {
	var consumed bool
	if err := workerutil.Recover("keyboard hook dispatch", func() { consumed = dispatch(ev) }); err != nil {
		return false
	}
	return consumed
}

func unhook(hhook uintptr) error {
	if hhook == 0 {
		return nil
	}
	res, _, err := procUnhookWindowsHookEx.Call(hhook)
	if res != 0 {
		return nil
	}
	return lastError(err, "UnhookWindowsHookEx failed")
}

func postQuit(threadID uint32) error {
	if threadID == 0 {
		return errors.New("cannot post WM_QUIT: threadID is 0")
	}
	res, _, err := procPostThreadMessageW.Call(uintptr(threadID), wmQuit, 0, 0)
	if res != 0 {
		return nil
	}
	return lastError(err, "PostThreadMessageW failed")
}

func lastError(err error, fallback string) error {
	if err == nil || err == syscall.Errno(0) {
		return errors.New(fallback)
	}
	return err
}
