package strata

// Event is what Runtime.Next returns: one terminal event, already routed
// through the component tree. Use a type switch to handle specific kinds.
type Event interface {
	// Handled reports whether a component handler consumed the event.
	// ResizeEvent and EndEvent are always handled; key and mouse events
	// are handled only when some handler returned true.
	Handled() bool

	// isEvent restricts implementations to this package's event kinds.
	isEvent()
}

// KeyEvent is a keyboard event. Printable characters carry KeyRune and the
// character in Rune; special keys carry their Key constant.
type KeyEvent struct {
	Key  Key
	Rune rune
	Mod  Modifier

	handled bool
}

func (KeyEvent) isEvent() {}

// Handled reports whether a keypress handler consumed the event.
func (e KeyEvent) Handled() bool { return e.handled }

// IsRune reports whether this is a printable character event.
func (e KeyEvent) IsRune() bool {
	return e.Key == KeyRune
}

// Is checks the event against a key and an optional exact modifier set.
// Example: event.Is(KeyEnter) or event.Is(KeyRune, ModCtrl).
func (e KeyEvent) Is(key Key, mods ...Modifier) bool {
	if e.Key != key {
		return false
	}
	if len(mods) == 0 {
		return true
	}
	var combined Modifier
	for _, m := range mods {
		combined |= m
	}
	return e.Mod == combined
}

// Char returns the rune for KeyRune events, or 0 for special keys.
func (e KeyEvent) Char() rune {
	if e.Key == KeyRune {
		return e.Rune
	}
	return 0
}

// MouseButton identifies the button involved in a mouse event.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
	// MouseNone marks motion events with no button held.
	MouseNone
)

// MouseAction is the kind of mouse transition.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseRelease
	// MouseDrag is motion while a button is held.
	MouseDrag
)

// MouseEvent is a mouse event in 0-indexed screen coordinates.
type MouseEvent struct {
	Button MouseButton
	Action MouseAction
	X      int
	Y      int
	Mod    Modifier

	handled bool
}

func (MouseEvent) isEvent() {}

// Handled reports whether a click handler consumed the event.
func (e MouseEvent) Handled() bool { return e.handled }

// ResizeEvent reports that the viewport changed and the component tree has
// already been resized to the new dimensions.
type ResizeEvent struct {
	Width  int
	Height int
}

func (ResizeEvent) isEvent() {}

// Handled always reports true: the runtime itself consumes resizes.
func (ResizeEvent) Handled() bool { return true }

// EndEvent reports that the runtime has shut down and restored the
// terminal. No further events follow.
type EndEvent struct{}

func (EndEvent) isEvent() {}

// Handled always reports true.
func (EndEvent) Handled() bool { return true }
