package interceptor

import (
	"errors"
	"io"
	"sync"
	"testing"

	"keyhook/internal/keys"
)

type fakeModifiers struct {
	ctrl, shift, alt, win bool
}

func (f *fakeModifiers) IsCtrlPressed() bool  { return f.ctrl }
func (f *fakeModifiers) IsShiftPressed() bool { return f.shift }
func (f *fakeModifiers) IsAltPressed() bool   { return f.alt }
func (f *fakeModifiers) IsWinPressed() bool   { return f.win }

func modifiersFor(m keys.Modifier) *fakeModifiers {
	return &fakeModifiers{ctrl: m.HasCtrl(), shift: m.HasShift(), alt: m.HasAlt(), win: m.HasWin()}
}

// fakeSource stands in for the native hook: tests push raw events through
// the captured dispatch function.
type fakeSource struct {
	mu         sync.Mutex
	dispatch   DispatchFunc
	closeCount int
	closeErr   error
	installErr error
}

func (f *fakeSource) install(dispatch DispatchFunc) (io.Closer, error) {
	if f.installErr != nil {
		return nil, f.installErr
	}
	f.mu.Lock()
	f.dispatch = dispatch
	f.mu.Unlock()
	return fakeHandle{src: f}, nil
}

type fakeHandle struct{ src *fakeSource }

func (h fakeHandle) Close() error {
	h.src.mu.Lock()
	defer h.src.mu.Unlock()
	h.src.closeCount++
	return h.src.closeErr
}

func (f *fakeSource) closes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closeCount
}

func (f *fakeSource) press(code keys.Key, extended bool, state keys.State) bool {
	f.mu.Lock()
	dispatch := f.dispatch
	f.mu.Unlock()
	return dispatch(keys.RawEvent{VirtualCode: uint32(code), Extended: extended, State: state})
}

var errInstallRefused = errors.New("hook refused")

func newTestInterceptor(t *testing.T, mods *fakeModifiers, opts Options) (*Interceptor, *fakeSource) {
	t.Helper()
	src := &fakeSource{}
	opts.Install = src.install
	opts.Modifiers = mods
	i, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { i.Close() })
	return i, src
}
