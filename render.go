package strata

import "github.com/grindlemire/strata/vt"

// Render draws the component tree into the virtual screen and flushes
// every dirty line to the terminal. Clean lines emit zero bytes; within
// a dirty line only the minimal style transitions between adjacent cells
// are sent, never a full reset per cell.
func (rt *Runtime) Render() error {
	if !rt.active {
		return ErrRuntimeClosed
	}
	if rt.root == nil {
		return ErrNoRoot
	}
	rt.root.Render(rt.screen)
	return rt.flush()
}

// flush walks the dirty lines of the virtual screen and emits terminal
// output for them. Each dirty line starts with a cursor move and one SGR
// reset, seeding the style tracker to the terminal default; from there
// only deltas are emitted. Visited lines are marked clean.
func (rt *Runtime) flush() error {
	e := rt.esc
	e.Reset()

	rows := rt.screen.Rows()
	for row := 0; row < rows; row++ {
		if !rt.screen.LineDirty(row) {
			continue
		}

		e.MoveTo(0, row)
		e.ResetStyle()
		last := vt.Style{}

		for _, cell := range rt.screen.Line(row) {
			// Continuation cells are the second column of a wide
			// character; the lead cell already produced their bytes.
			if cell.IsContinuation() {
				continue
			}

			eff := rt.caps.effectiveStyle(cell.Style)
			if eff != last {
				e.StyleDelta(last, eff)
				last = eff
			}

			r := cell.Rune
			if r == 0 {
				r = ' '
			}
			e.buf = rt.enc.append(e.buf, r)
		}

		rt.screen.MarkClean(row)
	}

	if e.Len() == 0 {
		return nil
	}

	// Leave the terminal in its default style between passes.
	e.ResetStyle()

	if _, err := rt.term.Write(e.Bytes()); err != nil {
		return err
	}
	return rt.term.Flush()
}
