package suggest

import "strings"

// Key is a navigation key the engine may intercept.
type Key int

const (
	KeyOther Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyEnter
	KeyEscape
)

var keyNames = map[Key]string{
	KeyOther:  "other",
	KeyLeft:   "left",
	KeyRight:  "right",
	KeyUp:     "up",
	KeyDown:   "down",
	KeyEnter:  "enter",
	KeyEscape: "escape",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "other"
}

// ParseKey maps a key name to a Key. Unknown names are KeyOther.
func ParseKey(name string) Key {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "left", "arrowleft":
		return KeyLeft
	case "right", "arrowright":
		return KeyRight
	case "up", "arrowup":
		return KeyUp
	case "down", "arrowdown":
		return KeyDown
	case "enter", "return":
		return KeyEnter
	case "escape", "esc":
		return KeyEscape
	default:
		return KeyOther
	}
}

// ChangeEvent is a new buffer value after an edit or cursor move.
type ChangeEvent struct {
	Text   string
	Cursor int // rune offset
}

// KeyEvent is a key press seen before the input applies it.
type KeyEvent struct {
	Key Key
}

// Edit is a proposed next buffer value. Applying it is up to the host.
type Edit struct {
	Text   string
	Cursor int
}

// Result is what every handler returns.
type Result struct {
	// Edit is non-nil when the engine substituted a glyph.
	Edit *Edit

	// Handled reports that a key was consumed and must not reach the input.
	Handled bool

	Snapshot Snapshot
}
