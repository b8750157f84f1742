package keys

// extendedPair holds both identifiers defined for one shared virtual code.
type extendedPair struct {
	standard Key
	numpad   Key
}

var extendedPairs = map[Key]extendedPair{
	Enter:      {standard: StandardEnter, numpad: NumEnter},
	Delete:     {standard: StandardDelete, numpad: NumDelete},
	Insert:     {standard: StandardInsert, numpad: NumInsert},
	Home:       {standard: StandardHome, numpad: NumHome},
	End:        {standard: StandardEnd, numpad: NumEnd},
	PageUp:     {standard: StandardPageUp, numpad: NumPageUp},
	PageDown:   {standard: StandardPageDown, numpad: NumPageDown},
	LeftArrow:  {standard: StandardLeftArrow, numpad: NumLeftArrow},
	UpArrow:    {standard: StandardUpArrow, numpad: NumUpArrow},
	RightArrow: {standard: StandardRightArrow, numpad: NumRightArrow},
	DownArrow:  {standard: StandardDownArrow, numpad: NumDownArrow},
}

// BaseKey strips the extended-variant bits, returning the code the OS reports.
func BaseKey(k Key) Key {
	return k & baseMask
}

// ResolveExtended maps a reported code and its extended flag to the most
// specific identifier defined for it. Codes without a standard/numpad pair,
// including codes that are already extended identifiers, are returned as is.
func ResolveExtended(code Key, extended bool) Key {
	pair, ok := extendedPairs[code]
	if !ok {
		return code
	}
	bit := extendedClear
	if extended {
		bit = extendedSet
	}
	if pair.standard&^baseMask == bit {
		return pair.standard
	}
	return pair.numpad
}

// IsExtended reports whether k is a standard or numpad variant identifier.
func IsExtended(k Key) bool {
	pair, ok := extendedPairs[BaseKey(k)]
	return ok && (k == pair.standard || k == pair.numpad)
}

// IsCtrl reports whether k is the generic Ctrl key or either physical twin.
func IsCtrl(k Key) bool {
	return k == Ctrl || k == LeftCtrl || k == RightCtrl
}

// IsShift reports whether k is the generic Shift key or either physical twin.
func IsShift(k Key) bool {
	return k == Shift || k == LeftShift || k == RightShift
}

// IsAlt reports whether k is the generic Alt key or either physical twin.
func IsAlt(k Key) bool {
	return k == Alt || k == LeftAlt || k == RightAlt
}

// IsWin reports whether k is either Windows key.
func IsWin(k Key) bool {
	return k == LeftWindows || k == RightWindows
}

// IsModifier reports whether k is any modifier key.
func IsModifier(k Key) bool {
	return IsCtrl(k) || IsShift(k) || IsAlt(k) || IsWin(k)
}

// IsGeneric reports whether k denotes a modifier without choosing a side.
func IsGeneric(k Key) bool {
	return k == Ctrl || k == Shift || k == Alt
}

// ModifierOf returns the modifier bit a modifier key stands for, or
// ModNone for other keys.
func ModifierOf(k Key) Modifier {
	switch {
	case IsCtrl(k):
		return ModCtrl
	case IsShift(k):
		return ModShift
	case IsAlt(k):
		return ModAlt
	case IsWin(k):
		return ModWin
	default:
		return ModNone
	}
}

// MatchesReported reports whether a shortcut key registered as registered
// accepts the fully resolved key reported by the OS.
//
// A generic modifier accepts either twin and a base code accepts both of its
// extended variants. The reverse never holds: LeftCtrl does not accept
// RightCtrl, and StandardEnter does not accept NumEnter.
func MatchesReported(registered, reported Key) bool {
	if registered == reported {
		return true
	}
	switch registered {
	case Ctrl:
		return IsCtrl(reported)
	case Shift:
		return IsShift(reported)
	case Alt:
		return IsAlt(reported)
	}
	return registered == BaseKey(reported)
}

// IsLetter reports whether k is A through Z.
func IsLetter(k Key) bool {
	return k >= A && k <= Z
}

// IsDigit reports whether k is a main-block digit, D0 through D9.
func IsDigit(k Key) bool {
	return k >= D0 && k <= D9
}

// IsNumpadDigit reports whether k is Num0 through Num9.
func IsNumpadDigit(k Key) bool {
	return k >= Num0 && k <= Num9
}

// IsNumpadKey covers numpad digits, operators and the numpad variants of
// the shared navigation codes.
func IsNumpadKey(k Key) bool {
	if k >= Num0 && k <= NumDivide {
		return true
	}
	pair, ok := extendedPairs[BaseKey(k)]
	return ok && k == pair.numpad
}

// IsFunctionKey reports whether k is F1 through F24.
func IsFunctionKey(k Key) bool {
	return k >= F1 && k <= F24
}

// IsArrowKey accepts the base arrow codes and both extended variants.
func IsArrowKey(k Key) bool {
	b := BaseKey(k)
	return b >= LeftArrow && b <= DownArrow && (k == b || IsExtended(k))
}

// IsNavigationKey accepts arrows, Home, End, PageUp, PageDown, Insert and
// Delete, with or without an extended variant.
func IsNavigationKey(k Key) bool {
	b := BaseKey(k)
	if k != b && !IsExtended(k) {
		return false
	}
	return (b >= PageUp && b <= DownArrow) || b == Insert || b == Delete
}

// IsPunctuation reports whether k is one of the OEM glyph keys.
func IsPunctuation(k Key) bool {
	_, ok := glyphByKey[k]
	return ok
}

// IsCharacterKey reports whether pressing k normally produces a character.
func IsCharacterKey(k Key) bool {
	return IsLetter(k) || IsDigit(k) || IsNumpadDigit(k) || IsPunctuation(k) ||
		k == Space || k == NumMultiply || k == NumAdd || k == NumSubtract ||
		k == NumDecimal || k == NumDivide
}
