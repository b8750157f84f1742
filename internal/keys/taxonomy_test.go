package keys

import "testing"

func TestResolveExtended(t *testing.T) {
	tests := []struct {
		name     string
		code     Key
		extended bool
		want     Key
	}{
		{name: "main enter", code: Enter, extended: false, want: StandardEnter},
		{name: "numpad enter", code: Enter, extended: true, want: NumEnter},
		{name: "main end", code: End, extended: true, want: StandardEnd},
		{name: "numpad end", code: End, extended: false, want: NumEnd},
		{name: "main delete", code: Delete, extended: true, want: StandardDelete},
		{name: "numpad page up", code: PageUp, extended: false, want: NumPageUp},
		{name: "main left arrow", code: LeftArrow, extended: true, want: StandardLeftArrow},
		{name: "numpad down arrow", code: DownArrow, extended: false, want: NumDownArrow},
		{name: "letter without flag", code: E, extended: false, want: E},
		{name: "letter with flag", code: E, extended: true, want: E},
		{name: "right ctrl keeps its code", code: RightCtrl, extended: true, want: RightCtrl},
		{name: "already resolved identifier", code: StandardEnter, extended: true, want: StandardEnter},
		{name: "unnamed code", code: Key(0xE9), extended: true, want: Key(0xE9)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveExtended(tt.code, tt.extended); got != tt.want {
				t.Fatalf("ResolveExtended(%v, %v) = %v, want %v", tt.code, tt.extended, got, tt.want)
			}
		})
	}
}

func TestBaseKeyOfResolvedKeyIsReportedCode(t *testing.T) {
	for base := range extendedPairs {
		for _, extended := range []bool{false, true} {
			resolved := ResolveExtended(base, extended)
			if resolved == base {
				t.Fatalf("ResolveExtended(%v, %v) returned base code", base, extended)
			}
			if got := BaseKey(resolved); got != base {
				t.Fatalf("BaseKey(%v) = %v, want %v", resolved, got, base)
			}
		}
	}
	if got := BaseKey(F5); got != F5 {
		t.Fatalf("BaseKey(F5) = %v, want F5", got)
	}
}

func TestModifierPredicates(t *testing.T) {
	tests := []struct {
		key                   Key
		ctrl, shift, alt, win bool
	}{
		{key: Ctrl, ctrl: true},
		{key: LeftCtrl, ctrl: true},
		{key: RightCtrl, ctrl: true},
		{key: Shift, shift: true},
		{key: LeftShift, shift: true},
		{key: RightShift, shift: true},
		{key: Alt, alt: true},
		{key: LeftAlt, alt: true},
		{key: RightAlt, alt: true},
		{key: LeftWindows, win: true},
		{key: RightWindows, win: true},
		{key: Applications},
		{key: E},
	}
	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			if got := IsCtrl(tt.key); got != tt.ctrl {
				t.Errorf("IsCtrl = %v, want %v", got, tt.ctrl)
			}
			if got := IsShift(tt.key); got != tt.shift {
				t.Errorf("IsShift = %v, want %v", got, tt.shift)
			}
			if got := IsAlt(tt.key); got != tt.alt {
				t.Errorf("IsAlt = %v, want %v", got, tt.alt)
			}
			if got := IsWin(tt.key); got != tt.win {
				t.Errorf("IsWin = %v, want %v", got, tt.win)
			}
			wantModifier := tt.ctrl || tt.shift || tt.alt || tt.win
			if got := IsModifier(tt.key); got != wantModifier {
				t.Errorf("IsModifier = %v, want %v", got, wantModifier)
			}
		})
	}
}

func TestMatchesReported(t *testing.T) {
	tests := []struct {
		name       string
		registered Key
		reported   Key
		want       bool
	}{
		{name: "same key", registered: E, reported: E, want: true},
		{name: "generic ctrl accepts left", registered: Ctrl, reported: LeftCtrl, want: true},
		{name: "generic ctrl accepts right", registered: Ctrl, reported: RightCtrl, want: true},
		{name: "generic shift accepts right", registered: Shift, reported: RightShift, want: true},
		{name: "generic alt accepts left", registered: Alt, reported: LeftAlt, want: true},
		{name: "left ctrl rejects right", registered: LeftCtrl, reported: RightCtrl, want: false},
		{name: "left ctrl rejects generic report", registered: LeftCtrl, reported: Ctrl, want: false},
		{name: "base enter accepts standard", registered: Enter, reported: StandardEnter, want: true},
		{name: "base enter accepts numpad", registered: Enter, reported: NumEnter, want: true},
		{name: "standard enter rejects numpad", registered: StandardEnter, reported: NumEnter, want: false},
		{name: "numpad end rejects standard", registered: NumEnd, reported: StandardEnd, want: false},
		{name: "different letters", registered: E, reported: F, want: false},
		{name: "generic ctrl rejects shift", registered: Ctrl, reported: LeftShift, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesReported(tt.registered, tt.reported); got != tt.want {
				t.Fatalf("MatchesReported(%v, %v) = %v, want %v", tt.registered, tt.reported, got, tt.want)
			}
		})
	}
}

func TestModifierOf(t *testing.T) {
	tests := map[Key]Modifier{
		RightCtrl:    ModCtrl,
		Shift:        ModShift,
		LeftAlt:      ModAlt,
		RightWindows: ModWin,
		Space:        ModNone,
	}
	for key, want := range tests {
		if got := ModifierOf(key); got != want {
			t.Errorf("ModifierOf(%v) = %v, want %v", key, got, want)
		}
	}
}

func TestKeyCategories(t *testing.T) {
	tests := []struct {
		name string
		fn   func(Key) bool
		yes  []Key
		no   []Key
	}{
		{name: "letter", fn: IsLetter, yes: []Key{A, M, Z}, no: []Key{D1, Num1, Colon}},
		{name: "digit", fn: IsDigit, yes: []Key{D0, D9}, no: []Key{Num0, A}},
		{name: "numpad digit", fn: IsNumpadDigit, yes: []Key{Num0, Num9}, no: []Key{D0, NumAdd}},
		{name: "numpad key", fn: IsNumpadKey, yes: []Key{Num5, NumAdd, NumDivide, NumEnter, NumHome}, no: []Key{StandardEnter, Enter, D5}},
		{name: "function key", fn: IsFunctionKey, yes: []Key{F1, F12, F24}, no: []Key{Escape, NumLock}},
		{name: "arrow key", fn: IsArrowKey, yes: []Key{LeftArrow, StandardUpArrow, NumDownArrow}, no: []Key{Home, NumEnd, A}},
		{name: "navigation key", fn: IsNavigationKey, yes: []Key{Home, StandardEnd, NumPageDown, Insert, NumDelete, RightArrow}, no: []Key{Enter, StandardEnter, Space}},
		{name: "character key", fn: IsCharacterKey, yes: []Key{A, D3, Num3, Quote, Space, NumMultiply}, no: []Key{Enter, F1, LeftCtrl}},
		{name: "extended", fn: IsExtended, yes: []Key{StandardEnter, NumEnter, NumEnd}, no: []Key{Enter, End, Key(0x30D)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range tt.yes {
				if !tt.fn(k) {
					t.Errorf("%s(%v) = false, want true", tt.name, k)
				}
			}
			for _, k := range tt.no {
				if tt.fn(k) {
					t.Errorf("%s(%v) = true, want false", tt.name, k)
				}
			}
		})
	}
}

func TestRawEventValid(t *testing.T) {
	tests := []struct {
		code uint32
		want bool
	}{
		{code: uint32(A), want: true},
		{code: uint32(NumEnd), want: true},
		{code: 0xFFFF, want: true},
		{code: 0x10000 | uint32(A), want: false},
		{code: 0xFFFFFFFF, want: false},
	}
	for _, tt := range tests {
		if got := (RawEvent{VirtualCode: tt.code}).Valid(); got != tt.want {
			t.Errorf("RawEvent{0x%X}.Valid() = %v, want %v", tt.code, got, tt.want)
		}
	}
}
