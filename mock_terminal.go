package strata

import "bytes"

// MockTerminal is a Terminal for tests. It records every control
// operation in order and captures flushed output bytes, so tests can
// assert both the lifecycle sequencing and the exact escape stream a
// render produced.
type MockTerminal struct {
	width, height int
	sizeErr       error

	ops     []string
	buf     bytes.Buffer
	flushed bytes.Buffer

	inRawMode    bool
	inAltScreen  bool
	mouseEnabled bool
	cursorHidden bool
}

var _ Terminal = (*MockTerminal)(nil)

// NewMockTerminal creates a mock terminal reporting the given size.
func NewMockTerminal(width, height int) *MockTerminal {
	return &MockTerminal{width: width, height: height}
}

// Size returns the configured dimensions.
func (m *MockTerminal) Size() (int, int, error) {
	if m.sizeErr != nil {
		return 0, 0, m.sizeErr
	}
	return m.width, m.height, nil
}

// SetSize changes the dimensions reported by Size. Pair with the resize
// latch to simulate a window change.
func (m *MockTerminal) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// FailSize makes Size return err.
func (m *MockTerminal) FailSize(err error) {
	m.sizeErr = err
}

func (m *MockTerminal) Write(p []byte) (int, error) {
	return m.buf.Write(p)
}

func (m *MockTerminal) Flush() error {
	m.ops = append(m.ops, "flush")
	m.flushed.Write(m.buf.Bytes())
	m.buf.Reset()
	return nil
}

func (m *MockTerminal) EnterRawMode() error {
	m.ops = append(m.ops, "enter-raw")
	m.inRawMode = true
	return nil
}

func (m *MockTerminal) ExitRawMode() error {
	m.ops = append(m.ops, "exit-raw")
	m.inRawMode = false
	return nil
}

func (m *MockTerminal) EnterAltScreen() {
	m.ops = append(m.ops, "enter-alt")
	m.inAltScreen = true
}

func (m *MockTerminal) ExitAltScreen() {
	m.ops = append(m.ops, "exit-alt")
	m.inAltScreen = false
}

func (m *MockTerminal) Clear() {
	m.ops = append(m.ops, "clear")
}

func (m *MockTerminal) HideCursor() {
	m.ops = append(m.ops, "hide-cursor")
	m.cursorHidden = true
}

func (m *MockTerminal) ShowCursor() {
	m.ops = append(m.ops, "show-cursor")
	m.cursorHidden = false
}

func (m *MockTerminal) EnableMouse() {
	m.ops = append(m.ops, "enable-mouse")
	m.mouseEnabled = true
}

func (m *MockTerminal) DisableMouse() {
	m.ops = append(m.ops, "disable-mouse")
	m.mouseEnabled = false
}

// InputFd returns an invalid descriptor; tests inject a MockEventReader
// instead of polling one.
func (m *MockTerminal) InputFd() int { return -1 }

// Ops returns the recorded operation names in call order.
func (m *MockTerminal) Ops() []string { return m.ops }

// ResetOps clears the recorded operations.
func (m *MockTerminal) ResetOps() { m.ops = nil }

// Flushed returns every byte flushed so far.
func (m *MockTerminal) Flushed() []byte { return m.flushed.Bytes() }

// ResetFlushed clears the captured output.
func (m *MockTerminal) ResetFlushed() { m.flushed.Reset() }

// IsInRawMode reports whether the terminal is currently in raw mode.
func (m *MockTerminal) IsInRawMode() bool { return m.inRawMode }

// IsInAltScreen reports whether the alternate screen is active.
func (m *MockTerminal) IsInAltScreen() bool { return m.inAltScreen }

// IsMouseEnabled reports whether mouse reporting is on.
func (m *MockTerminal) IsMouseEnabled() bool { return m.mouseEnabled }

// IsCursorHidden reports whether the cursor is hidden.
func (m *MockTerminal) IsCursorHidden() bool { return m.cursorHidden }
