package strata

import (
	"bufio"
	"fmt"
	"os"

	"golang.org/x/term"
)

// Terminal abstracts the real terminal device: mode switching, control
// sequences, size queries, and buffered output. The runtime issues the
// startup sequences through it and mirrors them exactly in reverse at
// teardown. MockTerminal implements it for tests.
type Terminal interface {
	// Size returns the terminal dimensions (width, height) in cells.
	Size() (width, height int, err error)

	// Write buffers output bytes; nothing reaches the terminal until Flush.
	Write(p []byte) (int, error)

	// Flush sends all buffered output to the terminal.
	Flush() error

	// EnterRawMode disables echo and line buffering, saving the prior mode.
	EnterRawMode() error

	// ExitRawMode restores the mode saved by EnterRawMode.
	ExitRawMode() error

	// EnterAltScreen switches to the alternate screen buffer.
	EnterAltScreen()

	// ExitAltScreen switches back to the main screen buffer.
	ExitAltScreen()

	// Clear clears the screen and homes the cursor.
	Clear()

	// HideCursor makes the cursor invisible.
	HideCursor()

	// ShowCursor makes the cursor visible.
	ShowCursor()

	// EnableMouse turns on mouse reporting (SGR-1006 extended mode).
	EnableMouse()

	// DisableMouse turns off mouse reporting.
	DisableMouse()

	// InputFd returns the file descriptor the input reader polls.
	InputFd() int
}

// ttyTerminal is the Terminal implementation for a real tty. Control
// sequences are built with the escape builder and written through a
// buffered writer so a render pass reaches the terminal in one write.
type ttyTerminal struct {
	in       *os.File
	out      *os.File
	w        *bufio.Writer
	esc      *escBuilder
	rawState *term.State
}

var _ Terminal = (*ttyTerminal)(nil)

// newTTYTerminal wraps stdin/stdout as a Terminal. Both ends must be a
// tty; anything else is a configuration error.
func newTTYTerminal(in, out *os.File) (*ttyTerminal, error) {
	if !term.IsTerminal(int(in.Fd())) {
		return nil, fmt.Errorf("input %s: %w", in.Name(), ErrNotTerminal)
	}
	if !term.IsTerminal(int(out.Fd())) {
		return nil, fmt.Errorf("output %s: %w", out.Name(), ErrNotTerminal)
	}
	return &ttyTerminal{
		in:  in,
		out: out,
		w:   bufio.NewWriterSize(out, 32*1024),
		esc: newEscBuilder(64),
	}, nil
}

// Size queries the kernel for the terminal dimensions.
func (t *ttyTerminal) Size() (int, int, error) {
	return getTerminalSize(int(t.out.Fd()))
}

func (t *ttyTerminal) Write(p []byte) (int, error) {
	return t.w.Write(p)
}

func (t *ttyTerminal) Flush() error {
	return t.w.Flush()
}

// EnterRawMode puts the input tty into raw mode, saving the prior state.
// Calling it again while raw is a no-op.
func (t *ttyTerminal) EnterRawMode() error {
	if t.rawState != nil {
		return nil
	}
	state, err := term.MakeRaw(int(t.in.Fd()))
	if err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	t.rawState = state
	return nil
}

// ExitRawMode restores the saved terminal mode exactly once.
func (t *ttyTerminal) ExitRawMode() error {
	if t.rawState == nil {
		return nil
	}
	err := term.Restore(int(t.in.Fd()), t.rawState)
	t.rawState = nil
	if err != nil {
		return fmt.Errorf("exit raw mode: %w", err)
	}
	return nil
}

// control writes one escape sequence immediately; mode switches should
// not sit in the output buffer waiting for the next render.
func (t *ttyTerminal) control(build func(*escBuilder)) {
	t.esc.Reset()
	build(t.esc)
	t.w.Write(t.esc.Bytes())
	t.w.Flush()
}

func (t *ttyTerminal) EnterAltScreen() {
	t.control((*escBuilder).EnterAltScreen)
}

func (t *ttyTerminal) ExitAltScreen() {
	t.control((*escBuilder).ExitAltScreen)
}

func (t *ttyTerminal) Clear() {
	t.control(func(e *escBuilder) {
		e.ClearScreen()
		e.MoveTo(0, 0)
	})
}

func (t *ttyTerminal) HideCursor() {
	t.control((*escBuilder).HideCursor)
}

func (t *ttyTerminal) ShowCursor() {
	t.control((*escBuilder).ShowCursor)
}

func (t *ttyTerminal) EnableMouse() {
	t.control((*escBuilder).EnableMouse)
}

func (t *ttyTerminal) DisableMouse() {
	t.control((*escBuilder).DisableMouse)
}

func (t *ttyTerminal) InputFd() int {
	return int(t.in.Fd())
}
