package strata

import (
	"fmt"

	"github.com/grindlemire/strata/pkg/debug"
)

// Next produces the next event, blocking until one arrives. Latch checks
// strictly precede input on every iteration, so a resize or shutdown is
// never starved behind pending keystrokes:
//
//  1. With the exit latch set, the terminal is torn down and EndEvent is
//     returned; further calls fail with ErrRuntimeClosed.
//  2. With the resize latch set, the latch is cleared, the terminal is
//     re-measured, the virtual screen and the component tree are resized
//     top-down, and a ResizeEvent is returned.
//  3. Otherwise input is polled and decoded; key and mouse events are
//     dispatched through the component tree before being returned, with
//     Handled reporting whether any handler consumed them.
//
// Calling Next with no root installed is a configuration error: the
// runtime tears down and returns ErrNoRoot.
func (rt *Runtime) Next() (Event, error) {
	if !rt.active {
		return nil, ErrRuntimeClosed
	}
	if rt.root == nil {
		rt.Close()
		return nil, ErrNoRoot
	}

	for {
		if rt.exiting.Load() {
			if err := rt.Close(); err != nil {
				debug.Log("teardown: %v", err)
			}
			return EndEvent{}, nil
		}

		if rt.needsResize.CompareAndSwap(true, false) {
			w, h, err := rt.term.Size()
			if err != nil {
				rt.Close()
				return nil, err
			}
			if w <= 0 || h <= 0 || w > maxCoord || h > maxCoord {
				rt.Close()
				return nil, fmt.Errorf("%dx%d: %w", w, h, ErrSizeOverflow)
			}
			rt.width, rt.height = w, h
			rt.screen.Resize(h, w)
			rt.root.Resize(NewRect(0, 0, w, h))
			debug.Log("resize to %dx%d", w, h)
			return ResizeEvent{Width: w, Height: h}, nil
		}

		ev, ok := rt.reader.PollEvent(rt.pollInterval)
		if !ok {
			continue
		}

		switch e := ev.(type) {
		case KeyEvent:
			e.handled = rt.dispatchKey(e)
			return e, nil
		case MouseEvent:
			e.handled = rt.dispatchMouse(e)
			return e, nil
		default:
			// Scripted readers may inject other event kinds directly.
			return ev, nil
		}
	}
}

// dispatchKey offers a key event to components from the top of the
// stacking order down. Each component with a keypress handler anchors an
// ancestor bubble: its own handler runs first, and on decline the walk
// continues through the parent chain. The first handler to return true
// consumes the event. A handler runs at most once per event, however
// many bubbles its subtree anchors.
func (rt *Runtime) dispatchKey(ev KeyEvent) bool {
	visited := make(map[*Component]bool, rt.zo.len())
	for i := rt.zo.len() - 1; i >= 0; i-- {
		c := rt.zo.stack[i]
		if c.onKeypress == nil {
			continue
		}
		if bubbleKey(c, ev, visited) {
			return true
		}
	}
	return false
}

// bubbleKey walks from c to the root, invoking each unvisited keypress
// handler until one consumes the event.
func bubbleKey(c *Component, ev KeyEvent, visited map[*Component]bool) bool {
	for n := c; n != nil; n = n.parent {
		if visited[n] {
			continue
		}
		visited[n] = true
		if n.onKeypress != nil && n.onKeypress(n, ev) {
			return true
		}
	}
	return false
}

// dispatchMouse hit-tests once: only the topmost component under the
// pointer receives the event, bubbling up its ancestor chain on decline.
// There is no fallback to siblings lower in the stacking order.
func (rt *Runtime) dispatchMouse(ev MouseEvent) bool {
	target := rt.zo.hitTest(ev.X, ev.Y)
	if target == nil {
		return false
	}
	for n := target; n != nil; n = n.parent {
		if n.onClick != nil && n.onClick(n, ev) {
			return true
		}
	}
	return false
}
