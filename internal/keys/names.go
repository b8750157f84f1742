package keys

import (
	"fmt"
	"strconv"
	"strings"
)

var keyNames = map[Key]string{
	Backspace: "Backspace", Tab: "Tab", Clear: "Clear", Enter: "Enter",
	Shift: "Shift", Ctrl: "Ctrl", Alt: "Alt", Pause: "Pause", CapsLock: "CapsLock",
	Escape: "Escape", Space: "Space",
	PageUp: "PageUp", PageDown: "PageDown", End: "End", Home: "Home",
	LeftArrow: "LeftArrow", UpArrow: "UpArrow", RightArrow: "RightArrow", DownArrow: "DownArrow",
	Select: "Select", Print: "Print", Execute: "Execute", PrintScreen: "PrintScreen",
	Insert: "Insert", Delete: "Delete", Help: "Help",
	LeftWindows: "LeftWindows", RightWindows: "RightWindows", Applications: "Applications", Sleep: "Sleep",
	NumMultiply: "NumMultiply", NumAdd: "NumAdd", Separator: "Separator",
	NumSubtract: "NumSubtract", NumDecimal: "NumDecimal", NumDivide: "NumDivide",
	NumLock: "NumLock", ScrollLock: "ScrollLock",
	LeftShift: "LeftShift", RightShift: "RightShift", LeftCtrl: "LeftCtrl",
	RightCtrl: "RightCtrl", LeftAlt: "LeftAlt", RightAlt: "RightAlt",
	BrowserBack: "BrowserBack", BrowserForward: "BrowserForward", BrowserRefresh: "BrowserRefresh",
	BrowserStop: "BrowserStop", BrowserSearch: "BrowserSearch", BrowserFavorites: "BrowserFavorites",
	BrowserHome: "BrowserHome", VolumeMute: "VolumeMute", VolumeDown: "VolumeDown", VolumeUp: "VolumeUp",
	MediaNext: "MediaNext", MediaPrevious: "MediaPrevious", MediaStop: "MediaStop", MediaPlay: "MediaPlay",
	LaunchMail: "LaunchMail", LaunchMediaSelect: "LaunchMediaSelect",
	LaunchApp1: "LaunchApp1", LaunchApp2: "LaunchApp2",
	Colon: "Colon", Plus: "Plus", Comma: "Comma", Minus: "Minus", Period: "Period",
	Slash: "Slash", Tilde: "Tilde", OpenBracket: "OpenBracket", BackSlash: "BackSlash",
	ClosingBracket: "ClosingBracket", Quote: "Quote", Oem8: "Oem8", Oem102: "Oem102",
	Process: "Process", Packet: "Packet", Attention: "Attention", CrSel: "CrSel", ExSel: "ExSel",
	EraseEndOfFile: "EraseEndOfFile", Play: "Play", Zoom: "Zoom", Pa1: "Pa1", OemClear: "OemClear",
}

// glyphByKey holds the printed glyph of each punctuation key on a US layout.
var glyphByKey = map[Key]string{
	Colon:          ";",
	Plus:           "=",
	Comma:          ",",
	Minus:          "-",
	Period:         ".",
	Slash:          "/",
	Tilde:          "`",
	OpenBracket:    "[",
	BackSlash:      `\`,
	ClosingBracket: "]",
	Quote:          "'",
}

// keyAliases are extra lower-case spellings accepted by ParseKey.
var keyAliases = map[string]Key{
	"+":         Plus,
	"esc":       Escape,
	"return":    Enter,
	"del":       Delete,
	"ins":       Insert,
	"left":      LeftArrow,
	"right":     RightArrow,
	"up":        UpArrow,
	"down":      DownArrow,
	"pgup":      PageUp,
	"pgdn":      PageDown,
	"control":   Ctrl,
	"menu":      Alt,
	"backquote": Tilde,
	"grave":     Tilde,
	"semicolon": Colon,
	"equals":    Plus,
	"lwin":      LeftWindows,
	"rwin":      RightWindows,
}

var modifierNames = map[Modifier]string{
	ModCtrl:  "Ctrl",
	ModShift: "Shift",
	ModAlt:   "Alt",
	ModWin:   "Win",
}

var modifierByName = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"shift":   ModShift,
	"alt":     ModAlt,
	"menu":    ModAlt,
	"win":     ModWin,
	"windows": ModWin,
	"super":   ModWin,
}

var keyByName map[string]Key

func init() {
	for i := 0; i <= 9; i++ {
		keyNames[D0+Key(i)] = fmt.Sprintf("D%d", i)
		keyNames[Num0+Key(i)] = fmt.Sprintf("Num%d", i)
	}
	for k := A; k <= Z; k++ {
		keyNames[k] = string(rune(k))
	}
	for k := F1; k <= F24; k++ {
		keyNames[k] = fmt.Sprintf("F%d", k-F1+1)
	}
	for base, pair := range extendedPairs {
		keyNames[pair.standard] = "Standard" + keyNames[base]
		keyNames[pair.numpad] = "Num" + keyNames[base]
	}

	keyByName = make(map[string]Key, len(keyNames)+len(glyphByKey)+len(keyAliases)+10)
	for k, name := range keyNames {
		keyByName[strings.ToLower(name)] = k
	}
	for k, glyph := range glyphByKey {
		keyByName[glyph] = k
	}
	for i := 0; i <= 9; i++ {
		keyByName[strconv.Itoa(i)] = D0 + Key(i)
	}
	for alias, k := range keyAliases {
		keyByName[alias] = k
	}
}

// String returns the canonical identifier name, such as "D3",
// "StandardEnter" or "NumEnd". Unnamed codes print as hexadecimal.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("0x%02X", uint16(k))
}

// Label returns the short human-facing label: digits without the "D"
// prefix, punctuation as its glyph, and main-block variants under their
// base name. Numpad variants keep their full name.
func (k Key) Label() string {
	if IsDigit(k) {
		return strconv.Itoa(int(k - D0))
	}
	if glyph, ok := glyphByKey[k]; ok {
		return glyph
	}
	if pair, ok := extendedPairs[BaseKey(k)]; ok && k == pair.standard {
		return BaseKey(k).String()
	}
	return k.String()
}

// ParseKey resolves a key name, glyph, alias or hexadecimal code.
// Names are case-insensitive.
func ParseKey(text string) (Key, error) {
	token := strings.TrimSpace(text)
	if token == "" {
		return None, fmt.Errorf("missing key name")
	}
	if k, ok := keyByName[strings.ToLower(token)]; ok {
		return k, nil
	}
	if len(token) > 2 && (token[:2] == "0x" || token[:2] == "0X") {
		value, err := strconv.ParseUint(token[2:], 16, 16)
		if err != nil {
			return None, fmt.Errorf("invalid hex key %q", text)
		}
		if value == 0 {
			return None, fmt.Errorf("key code 0x00 is not a valid key")
		}
		return Key(value), nil
	}
	return None, fmt.Errorf("unknown key %q", text)
}

// ParseModifier resolves a single modifier name, accepting the synonyms
// control, menu, windows and super.
func ParseModifier(text string) (Modifier, error) {
	token := strings.ToLower(strings.TrimSpace(text))
	if mod, ok := modifierByName[token]; ok {
		return mod, nil
	}
	return ModNone, fmt.Errorf("unknown modifier %q", text)
}

// ParseState accepts "up" or "down" in any case. Empty input means Up.
func ParseState(text string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "", "up":
		return Up, nil
	case "down":
		return Down, nil
	default:
		return Up, fmt.Errorf("unknown key state %q", text)
	}
}
