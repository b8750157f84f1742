package interceptor

import (
	"log/slog"

	"keyhook/internal/keys"
	"keyhook/internal/registry"
	"keyhook/internal/shortcut"
	"keyhook/internal/workerutil"
)

// EffectiveModifiers samples state and drops the modifier that key itself
// stands for, so a bare LeftCtrl press reports no Ctrl modifier.
func EffectiveModifiers(state ModifierState, key keys.Key) keys.Modifier {
	var mods keys.Modifier
	if state.IsCtrlPressed() && !keys.IsCtrl(key) {
		mods |= keys.ModCtrl
	}
	if state.IsShiftPressed() && !keys.IsShift(key) {
		mods |= keys.ModShift
	}
	if state.IsAltPressed() && !keys.IsAlt(key) {
		mods |= keys.ModAlt
	}
	if state.IsWinPressed() && !keys.IsWin(key) {
		mods |= keys.ModWin
	}
	return mods
}

// Matches reports whether a registered shortcut fires for a resolved key
// pressed with exactly mods.
func Matches(sc shortcut.Shortcut, key keys.Key, mods keys.Modifier, state keys.State) bool {
	return sc.State() == state &&
		sc.Modifier() == mods &&
		keys.MatchesReported(sc.Key(), key)
}

// Dispatch processes one transition. Every matching handler runs, then
// the catch-all subscribers; the keystroke is swallowed if any of them
// asked for it. Dispatch runs on the hook thread and blocks keyboard input
// system-wide until it returns.
func (i *Interceptor) Dispatch(ev keys.RawEvent) bool {
	if i.closed.Load() {
		return false
	}
	if !ev.Valid() {
		slog.Debug("[interceptor] ignoring out-of-range virtual-key code", "code", ev.VirtualCode)
		return false
	}

	key := keys.ResolveExtended(keys.Key(ev.VirtualCode), ev.Extended)
	mods := EffectiveModifiers(i.modifiers, key)

	matched := i.registry.Match(func(sc shortcut.Shortcut) bool {
		return Matches(sc, key, mods, ev.State)
	})

	consumed := false
	for _, m := range matched {
		if i.invoke(m) {
			consumed = true
		}
	}

	if !i.legacy && i.notify(shortcut.New(key, mods, ev.State)) {
		consumed = true
	}

	if len(matched) > 0 {
		slog.Debug("[interceptor] shortcut dispatched",
			"key", key, "modifiers", mods, "state", ev.State,
			"handlers", len(matched), "consumed", consumed)
	}
	return consumed
}

func (i *Interceptor) invoke(m registry.Registered) bool {
	if !i.recoverPanics {
		return m.Handler()
	}
	var vote bool
	if err := workerutil.Recover("shortcut "+m.Shortcut.String(), func() { vote = m.Handler() }); err != nil {
		return false
	}
	return vote
}
