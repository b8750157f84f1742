// Package keys defines key identifiers, modifier sets and the equivalence
// rules used to match reported keystrokes against registered shortcuts.
//
// Key values equal Windows virtual-key codes. Keys that share one virtual
// code between the main block and the numeric pad get two extra identifiers
// encoded above 0xFF so they never collide with a real code.
package keys

// Key identifies a keyboard key.
type Key uint16

const (
	// extendedClear marks the variant reported while the extended flag is clear.
	extendedClear Key = 0x100
	// extendedSet marks the variant reported while the extended flag is set.
	extendedSet Key = 0x200

	baseMask Key = 0xFF
)

const (
	None      Key = 0x00
	Backspace Key = 0x08
	Tab       Key = 0x09
	Clear     Key = 0x0C
	Enter     Key = 0x0D
	Shift     Key = 0x10
	Ctrl      Key = 0x11
	Alt       Key = 0x12
	Pause     Key = 0x13
	CapsLock  Key = 0x14
	Escape    Key = 0x1B
	Space     Key = 0x20

	PageUp     Key = 0x21
	PageDown   Key = 0x22
	End        Key = 0x23
	Home       Key = 0x24
	LeftArrow  Key = 0x25
	UpArrow    Key = 0x26
	RightArrow Key = 0x27
	DownArrow  Key = 0x28

	Select      Key = 0x29
	Print       Key = 0x2A
	Execute     Key = 0x2B
	PrintScreen Key = 0x2C
	Insert      Key = 0x2D
	Delete      Key = 0x2E
	Help        Key = 0x2F

	D0 Key = 0x30
	D1 Key = 0x31
	D2 Key = 0x32
	D3 Key = 0x33
	D4 Key = 0x34
	D5 Key = 0x35
	D6 Key = 0x36
	D7 Key = 0x37
	D8 Key = 0x38
	D9 Key = 0x39

	A Key = 0x41
	B Key = 0x42
	C Key = 0x43
	D Key = 0x44
	E Key = 0x45
	F Key = 0x46
	G Key = 0x47
	H Key = 0x48
	I Key = 0x49
	J Key = 0x4A
	K Key = 0x4B
	L Key = 0x4C
	M Key = 0x4D
	N Key = 0x4E
	O Key = 0x4F
	P Key = 0x50
	Q Key = 0x51
	R Key = 0x52
	S Key = 0x53
	T Key = 0x54
	U Key = 0x55
	V Key = 0x56
	W Key = 0x57
	X Key = 0x58
	Y Key = 0x59
	Z Key = 0x5A

	LeftWindows  Key = 0x5B
	RightWindows Key = 0x5C
	Applications Key = 0x5D
	Sleep        Key = 0x5F

	Num0        Key = 0x60
	Num1        Key = 0x61
	Num2        Key = 0x62
	Num3        Key = 0x63
	Num4        Key = 0x64
	Num5        Key = 0x65
	Num6        Key = 0x66
	Num7        Key = 0x67
	Num8        Key = 0x68
	Num9        Key = 0x69
	NumMultiply Key = 0x6A
	NumAdd      Key = 0x6B
	Separator   Key = 0x6C
	NumSubtract Key = 0x6D
	NumDecimal  Key = 0x6E
	NumDivide   Key = 0x6F

	F1  Key = 0x70
	F2  Key = 0x71
	F3  Key = 0x72
	F4  Key = 0x73
	F5  Key = 0x74
	F6  Key = 0x75
	F7  Key = 0x76
	F8  Key = 0x77
	F9  Key = 0x78
	F10 Key = 0x79
	F11 Key = 0x7A
	F12 Key = 0x7B
	F13 Key = 0x7C
	F14 Key = 0x7D
	F15 Key = 0x7E
	F16 Key = 0x7F
	F17 Key = 0x80
	F18 Key = 0x81
	F19 Key = 0x82
	F20 Key = 0x83
	F21 Key = 0x84
	F22 Key = 0x85
	F23 Key = 0x86
	F24 Key = 0x87

	NumLock    Key = 0x90
	ScrollLock Key = 0x91

	LeftShift  Key = 0xA0
	RightShift Key = 0xA1
	LeftCtrl   Key = 0xA2
	RightCtrl  Key = 0xA3
	LeftAlt    Key = 0xA4
	RightAlt   Key = 0xA5

	BrowserBack       Key = 0xA6
	BrowserForward    Key = 0xA7
	BrowserRefresh    Key = 0xA8
	BrowserStop       Key = 0xA9
	BrowserSearch     Key = 0xAA
	BrowserFavorites  Key = 0xAB
	BrowserHome       Key = 0xAC
	VolumeMute        Key = 0xAD
	VolumeDown        Key = 0xAE
	VolumeUp          Key = 0xAF
	MediaNext         Key = 0xB0
	MediaPrevious     Key = 0xB1
	MediaStop         Key = 0xB2
	MediaPlay         Key = 0xB3
	LaunchMail        Key = 0xB4
	LaunchMediaSelect Key = 0xB5
	LaunchApp1        Key = 0xB6
	LaunchApp2        Key = 0xB7

	Colon          Key = 0xBA
	Plus           Key = 0xBB
	Comma          Key = 0xBC
	Minus          Key = 0xBD
	Period         Key = 0xBE
	Slash          Key = 0xBF
	Tilde          Key = 0xC0
	OpenBracket    Key = 0xDB
	BackSlash      Key = 0xDC
	ClosingBracket Key = 0xDD
	Quote          Key = 0xDE
	Oem8           Key = 0xDF
	Oem102         Key = 0xE2

	Process        Key = 0xE5
	Packet         Key = 0xE7
	Attention      Key = 0xF6
	CrSel          Key = 0xF7
	ExSel          Key = 0xF8
	EraseEndOfFile Key = 0xF9
	Play           Key = 0xFA
	Zoom           Key = 0xFB
	Pa1            Key = 0xFD
	OemClear       Key = 0xFE
)

// Main-block and numeric-pad variants of keys sharing one virtual code.
// Enter is the odd one out: the main-block Enter arrives without the
// extended flag, while the navigation cluster arrives with it.
const (
	StandardEnter = extendedClear | Enter
	NumEnter      = extendedSet | Enter

	StandardDelete = extendedSet | Delete
	NumDelete      = extendedClear | Delete

	StandardInsert = extendedSet | Insert
	NumInsert      = extendedClear | Insert

	StandardHome = extendedSet | Home
	NumHome      = extendedClear | Home

	StandardEnd = extendedSet | End
	NumEnd      = extendedClear | End

	StandardPageUp = extendedSet | PageUp
	NumPageUp      = extendedClear | PageUp

	StandardPageDown = extendedSet | PageDown
	NumPageDown      = extendedClear | PageDown

	StandardLeftArrow = extendedSet | LeftArrow
	NumLeftArrow      = extendedClear | LeftArrow

	StandardUpArrow = extendedSet | UpArrow
	NumUpArrow      = extendedClear | UpArrow

	StandardRightArrow = extendedSet | RightArrow
	NumRightArrow      = extendedClear | RightArrow

	StandardDownArrow = extendedSet | DownArrow
	NumDownArrow      = extendedClear | DownArrow
)
