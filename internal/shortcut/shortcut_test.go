package shortcut

import (
	"errors"
	"slices"
	"testing"

	"keyhook/internal/keys"
)

const allModifiers = keys.ModCtrl | keys.ModShift | keys.ModAlt | keys.ModWin

func TestNewDropsSelfModifier(t *testing.T) {
	tests := []struct {
		name string
		key  keys.Key
		mod  keys.Modifier
		want keys.Modifier
	}{
		{name: "generic ctrl", key: keys.Ctrl, mod: keys.ModCtrl | keys.ModShift, want: keys.ModShift},
		{name: "left ctrl", key: keys.LeftCtrl, mod: keys.ModCtrl, want: keys.ModNone},
		{name: "right shift", key: keys.RightShift, mod: allModifiers, want: keys.ModCtrl | keys.ModAlt | keys.ModWin},
		{name: "left alt", key: keys.LeftAlt, mod: keys.ModAlt | keys.ModWin, want: keys.ModWin},
		{name: "right windows", key: keys.RightWindows, mod: keys.ModWin | keys.ModCtrl, want: keys.ModCtrl},
		{name: "plain letter keeps all", key: keys.E, mod: allModifiers, want: allModifiers},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := New(tt.key, tt.mod, keys.Down)
			if sc.Modifier() != tt.want {
				t.Fatalf("Modifier() = %v, want %v", sc.Modifier(), tt.want)
			}
			if sc.Key() != tt.key {
				t.Fatalf("Key() = %v, want %v", sc.Key(), tt.key)
			}
		})
	}
}

func TestEqualIgnoresName(t *testing.T) {
	a := New(keys.S, keys.ModCtrl, keys.Down).WithName("save")
	b := New(keys.S, keys.ModCtrl, keys.Down).WithName("other")
	if !a.Equal(b) {
		t.Fatal("shortcuts differing only by name should be equal")
	}
	if a.ID() != b.ID() {
		t.Fatal("IDs differ for equal shortcuts")
	}
	if a.Name() != "save" {
		t.Fatalf("Name() = %q, want save", a.Name())
	}

	others := []Shortcut{
		New(keys.S, keys.ModCtrl, keys.Up),
		New(keys.S, keys.ModCtrl|keys.ModShift, keys.Down),
		New(keys.D, keys.ModCtrl, keys.Down),
	}
	for _, o := range others {
		if a.Equal(o) {
			t.Errorf("%v should not equal %v", a, o)
		}
	}
}

func TestStringAndDisplayString(t *testing.T) {
	tests := []struct {
		name        string
		sc          Shortcut
		wantString  string
		wantDisplay string
	}{
		{
			name:        "all modifiers standard enter",
			sc:          New(keys.StandardEnter, allModifiers, keys.Up),
			wantString:  "Win + Ctrl + Shift + Alt + StandardEnter",
			wantDisplay: "Win + Ctrl + Shift + Alt + Enter",
		},
		{name: "standard end", sc: New(keys.StandardEnd, keys.ModCtrl, keys.Down), wantString: "Ctrl + StandardEnd", wantDisplay: "Ctrl + End"},
		{name: "digit", sc: New(keys.D3, keys.ModNone, keys.Up), wantString: "D3", wantDisplay: "3"},
		{name: "numpad end", sc: New(keys.NumEnd, keys.ModNone, keys.Up), wantString: "NumEnd", wantDisplay: "NumEnd"},
		{name: "punctuation", sc: New(keys.Colon, keys.ModNone, keys.Up), wantString: "Colon", wantDisplay: ";"},
		{name: "ctrl minus", sc: New(keys.Minus, keys.ModCtrl, keys.Down), wantString: "Ctrl + Minus", wantDisplay: "Ctrl + -"},
		{name: "numpad digit", sc: New(keys.Num4, keys.ModAlt, keys.Down), wantString: "Alt + Num4", wantDisplay: "Alt + Num4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sc.String(); got != tt.wantString {
				t.Errorf("String() = %q, want %q", got, tt.wantString)
			}
			if got := tt.sc.DisplayString(); got != tt.wantDisplay {
				t.Errorf("DisplayString() = %q, want %q", got, tt.wantDisplay)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		text    string
		state   keys.State
		wantKey keys.Key
		wantMod keys.Modifier
	}{
		{text: "Ctrl + Shift + E", state: keys.Down, wantKey: keys.E, wantMod: keys.ModCtrl | keys.ModShift},
		{text: "alt shift win ctrl e", state: keys.Up, wantKey: keys.E, wantMod: allModifiers},
		{text: "NumLeftArrow", state: keys.Up, wantKey: keys.NumLeftArrow},
		{text: "StandardPageUp", state: keys.Down, wantKey: keys.StandardPageUp},
		{text: "control-menu-delete", state: keys.Down, wantKey: keys.Delete, wantMod: keys.ModCtrl | keys.ModAlt},
		{text: "Windows+D", state: keys.Down, wantKey: keys.D, wantMod: keys.ModWin},
		{text: "  ctrl\t;  ", state: keys.Up, wantKey: keys.Colon, wantMod: keys.ModCtrl},
		{text: "Ctrl + -", state: keys.Down, wantKey: keys.Minus, wantMod: keys.ModCtrl},
		{text: "Ctrl++", state: keys.Down, wantKey: keys.Plus, wantMod: keys.ModCtrl},
		{text: "-", state: keys.Up, wantKey: keys.Minus},
		{text: "Ctrl + LeftCtrl", state: keys.Down, wantKey: keys.LeftCtrl},
		{text: "ctrl ctrl a", state: keys.Down, wantKey: keys.A, wantMod: keys.ModCtrl},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			sc, err := Parse(tt.text, tt.state)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.text, err)
			}
			want := New(tt.wantKey, tt.wantMod, tt.state)
			if !sc.Equal(want) {
				t.Fatalf("Parse(%q) = %v/%v, want %v/%v", tt.text, sc, sc.State(), want, want.State())
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, text := range []string{"", "   ", "e ctrl shift", "Ctrl + NotAKey", "Hyper + A", "None + A"} {
		t.Run(text, func(t *testing.T) {
			_, err := Parse(text, keys.Up)
			if err == nil {
				t.Fatalf("Parse(%q) expected error", text)
			}
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("Parse(%q) error = %v, want ErrInvalid", text, err)
			}
		})
	}
}

func TestTryParse(t *testing.T) {
	sc, ok := TryParse("Ctrl + Shift + E", keys.Down)
	if !ok {
		t.Fatal("TryParse(Ctrl + Shift + E) failed")
	}
	if sc.Key() != keys.E || sc.Modifier() != keys.ModCtrl|keys.ModShift || sc.State() != keys.Down {
		t.Fatalf("TryParse = %v (%v), want Ctrl + Shift + E (Down)", sc, sc.State())
	}

	sc, ok = TryParse("e ctrl shift", keys.Up)
	if ok {
		t.Fatal("TryParse(e ctrl shift) succeeded")
	}
	if sc != (Shortcut{}) {
		t.Fatalf("TryParse failure left %v", sc)
	}
}

func TestRoundTrip(t *testing.T) {
	samples := []Shortcut{
		New(keys.E, keys.ModCtrl|keys.ModShift, keys.Down),
		New(keys.D7, keys.ModWin, keys.Up),
		New(keys.OpenBracket, keys.ModAlt, keys.Down),
		New(keys.Minus, keys.ModCtrl, keys.Down),
		New(keys.StandardEnter, allModifiers, keys.Up),
		New(keys.NumEnter, keys.ModNone, keys.Down),
		New(keys.NumHome, keys.ModShift, keys.Up),
		New(keys.F24, keys.ModNone, keys.Up),
		New(keys.RightAlt, keys.ModCtrl, keys.Down),
	}
	for _, sc := range samples {
		t.Run(sc.String(), func(t *testing.T) {
			parsed, err := Parse(sc.String(), sc.State())
			if err != nil {
				t.Fatalf("Parse(String()) error = %v", err)
			}
			if !parsed.Equal(sc) {
				t.Fatalf("Parse(%q) = %v, want %v", sc.String(), parsed, sc)
			}
		})
	}

	// StandardEnter displays as Enter, which parses to the base code.
	for _, sc := range slices.DeleteFunc(slices.Clone(samples), func(sc Shortcut) bool {
		return sc.Key() == keys.StandardEnter
	}) {
		t.Run("display "+sc.DisplayString(), func(t *testing.T) {
			parsed, err := Parse(sc.DisplayString(), sc.State())
			if err != nil {
				t.Fatalf("Parse(DisplayString()) error = %v", err)
			}
			if !parsed.Equal(sc) {
				t.Fatalf("Parse(%q) = %v, want %v", sc.DisplayString(), parsed, sc)
			}
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustParse did not panic")
		}
	}()
	MustParse("Ctrl + bogus", keys.Up)
}
