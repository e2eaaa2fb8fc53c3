package strata

import (
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/grindlemire/strata/pkg/debug"
	"github.com/grindlemire/strata/vt"
)

// maxCoord is the largest cell coordinate the runtime supports. Terminal
// size reports use 16-bit fields; anything past this range is a broken
// report, not a real window.
const maxCoord = 32767

// defaultPollInterval bounds how long the event loop waits for input
// before re-checking the resize and exit latches.
const defaultPollInterval = 50 * time.Millisecond

// runtimeActive guards against two live runtimes fighting over one
// terminal.
var runtimeActive atomic.Bool

// Runtime owns the terminal for the life of the application: it holds the
// component tree and its stacking order, converts raw input into events,
// and flushes the virtual screen to the real terminal. Create one with
// New, drive it with Next and Render from a single goroutine, and let
// Close (or the EndEvent path) restore the terminal.
type Runtime struct {
	term   Terminal
	reader EventReader
	screen Screen
	esc    *escBuilder
	enc    *charsetEncoder
	caps   Capabilities

	zo   zorder
	root *Component

	// The signal goroutine touches nothing but these two latches.
	needsResize atomic.Bool
	exiting     atomic.Bool

	sigCh chan os.Signal

	width, height int
	pollInterval  time.Duration
	charset       string
	capsOverride  *Capabilities
	mouse         bool
	active        bool
}

// New takes over the terminal: it validates the tty, resolves the output
// charset, detects capabilities, enters raw mode and the alternate
// screen, hides the cursor, enables mouse reporting, installs signal
// notifications, and opens the virtual screen at the current size.
// Every step is mirrored in reverse by Close.
//
// Only one Runtime may be live per process; a second New fails with
// ErrRuntimeActive.
func New(opts ...Option) (*Runtime, error) {
	if !runtimeActive.CompareAndSwap(false, true) {
		return nil, ErrRuntimeActive
	}

	rt := &Runtime{
		esc:          newEscBuilder(16 * 1024),
		pollInterval: defaultPollInterval,
		mouse:        true,
	}

	ok := false
	defer func() {
		if !ok {
			runtimeActive.Store(false)
		}
	}()

	for _, opt := range opts {
		if err := opt(rt); err != nil {
			return nil, err
		}
	}

	debug.Init()

	if rt.charset == "" {
		rt.charset = detectCharset()
	}
	enc, err := encoderFor(rt.charset)
	if err != nil {
		return nil, err
	}
	rt.enc = enc

	if rt.capsOverride != nil {
		rt.caps = *rt.capsOverride
	} else {
		rt.caps = DetectCapabilities()
	}

	if rt.term == nil {
		t, err := newTTYTerminal(os.Stdin, os.Stdout)
		if err != nil {
			return nil, err
		}
		rt.term = t
	}

	if err := rt.term.EnterRawMode(); err != nil {
		return nil, err
	}
	defer func() {
		if !ok {
			rt.term.ExitRawMode()
		}
	}()

	w, h, err := rt.term.Size()
	if err != nil {
		return nil, err
	}
	if w <= 0 || h <= 0 || w > maxCoord || h > maxCoord {
		return nil, fmt.Errorf("%dx%d: %w", w, h, ErrSizeOverflow)
	}
	rt.width, rt.height = w, h

	if rt.screen == nil {
		scr, err := vt.New(h, w)
		if err != nil {
			return nil, err
		}
		rt.screen = scr
	} else {
		rt.screen.Resize(h, w)
	}

	rt.term.EnterAltScreen()
	rt.term.Clear()
	rt.term.HideCursor()
	if rt.mouse {
		rt.term.EnableMouse()
	}

	if rt.reader == nil {
		rt.reader = newInputReader(rt.term.InputFd())
	}

	rt.sigCh = make(chan os.Signal, 4)
	signal.Notify(rt.sigCh, syscall.SIGWINCH, syscall.SIGINT, syscall.SIGTERM)
	go rt.watchSignals()

	rt.active = true
	ok = true
	debug.Log("runtime up: %dx%d, charset %s, caps [%s]", w, h, rt.enc.name, rt.caps)
	return rt, nil
}

// watchSignals is the only code running concurrently with the event
// loop. Setting the atomic latches is all it is allowed to do; the loop
// does the real work on its next iteration.
func (rt *Runtime) watchSignals() {
	for sig := range rt.sigCh {
		switch sig {
		case syscall.SIGWINCH:
			rt.needsResize.Store(true)
		case syscall.SIGINT, syscall.SIGTERM:
			rt.exiting.Store(true)
		}
	}
}

// Close restores the terminal, mirroring New exactly in reverse: mouse
// reporting off, cursor shown, alternate screen exited, raw mode
// restored, signal notifications removed. Close is idempotent; the
// teardown runs once no matter how many paths reach it.
func (rt *Runtime) Close() error {
	if !rt.active {
		return nil
	}
	rt.active = false

	signal.Stop(rt.sigCh)
	close(rt.sigCh)

	if rt.mouse {
		rt.term.DisableMouse()
	}
	rt.term.ShowCursor()
	rt.term.ExitAltScreen()
	err := rt.term.ExitRawMode()
	if ferr := rt.term.Flush(); err == nil {
		err = ferr
	}
	if rerr := rt.reader.Close(); err == nil {
		err = rerr
	}

	runtimeActive.Store(false)
	debug.Log("runtime closed")
	return err
}

// Stop requests a shutdown: the next call to Next tears down the
// terminal and returns EndEvent. It takes the same path a SIGINT or
// SIGTERM takes and is safe to call from event handlers.
func (rt *Runtime) Stop() {
	rt.exiting.Store(true)
}

// SetRoot installs the root of the component tree. The root covers the
// full viewport: its bounds are set immediately and follow every resize.
// Any previous root is detached first.
func (rt *Runtime) SetRoot(c *Component) error {
	if !rt.active {
		return ErrRuntimeClosed
	}
	if c == nil {
		return fmt.Errorf("set root: nil component")
	}
	if c.parent != nil {
		return fmt.Errorf("set root: component %q has a parent", c.kind)
	}

	if rt.root != nil {
		rt.zo.removeTree(rt.root)
		rt.root.setRuntime(nil)
	}

	if err := rt.zo.addTree(c); err != nil {
		return err
	}
	rt.root = c
	c.setRuntime(rt)
	c.Resize(NewRect(0, 0, rt.width, rt.height))
	return nil
}

// Root returns the current root component, or nil.
func (rt *Runtime) Root() *Component { return rt.root }

// Size returns the viewport dimensions in cells.
func (rt *Runtime) Size() (width, height int) { return rt.width, rt.height }

// Caps returns the detected terminal capabilities.
func (rt *Runtime) Caps() Capabilities { return rt.caps }

// Screen returns the virtual screen components render into.
func (rt *Runtime) Screen() Screen { return rt.screen }

// ComponentAt returns the topmost component whose bounds contain (x, y),
// or nil. Containment includes all four edges; overlaps resolve to the
// component nearest the top of the stacking order.
func (rt *Runtime) ComponentAt(x, y int) *Component {
	return rt.zo.hitTest(x, y)
}
