package strata

import (
	"strconv"

	"github.com/grindlemire/strata/vt"
)

// escBuilder efficiently builds ANSI escape sequences.
// It uses a pre-allocated buffer to minimize allocations.
type escBuilder struct {
	buf []byte
}

// newEscBuilder creates a new escape sequence builder with the given
// initial capacity.
func newEscBuilder(capacity int) *escBuilder {
	return &escBuilder{
		buf: make([]byte, 0, capacity),
	}
}

// Reset clears the buffer for reuse.
func (e *escBuilder) Reset() {
	e.buf = e.buf[:0]
}

// Bytes returns the built escape sequence.
func (e *escBuilder) Bytes() []byte {
	return e.buf
}

// Len returns the current length of the buffer.
func (e *escBuilder) Len() int {
	return len(e.buf)
}

// writeCSI writes the Control Sequence Introducer (ESC [).
func (e *escBuilder) writeCSI() {
	e.buf = append(e.buf, '\x1b', '[')
}

// writeInt writes an integer to the buffer.
func (e *escBuilder) writeInt(n int) {
	e.buf = strconv.AppendInt(e.buf, int64(n), 10)
}

// MoveTo moves the cursor to the specified position.
// x and y are 0-indexed; ANSI sequences use 1-indexed positions.
func (e *escBuilder) MoveTo(x, y int) {
	e.writeCSI()
	e.writeInt(y + 1)
	e.buf = append(e.buf, ';')
	e.writeInt(x + 1)
	e.buf = append(e.buf, 'H')
}

// ClearScreen clears the entire screen.
func (e *escBuilder) ClearScreen() {
	e.writeCSI()
	e.buf = append(e.buf, '2', 'J')
}

// HideCursor makes the cursor invisible.
func (e *escBuilder) HideCursor() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '2', '5', 'l')
}

// ShowCursor makes the cursor visible.
func (e *escBuilder) ShowCursor() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '2', '5', 'h')
}

// EnterAltScreen switches to the alternate screen buffer.
func (e *escBuilder) EnterAltScreen() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '1', '0', '4', '9', 'h')
}

// ExitAltScreen switches back to the main screen buffer.
func (e *escBuilder) ExitAltScreen() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '1', '0', '4', '9', 'l')
}

// EnableMouse enables mouse reporting: X10 button tracking plus SGR-1006
// extended coordinates (works beyond column 223).
func (e *escBuilder) EnableMouse() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '1', '0', '0', '0', 'h')
	e.writeCSI()
	e.buf = append(e.buf, '?', '1', '0', '0', '6', 'h')
}

// DisableMouse disables mouse reporting, mirroring EnableMouse in reverse.
func (e *escBuilder) DisableMouse() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '1', '0', '0', '6', 'l')
	e.writeCSI()
	e.buf = append(e.buf, '?', '1', '0', '0', '0', 'l')
}

// ResetStyle resets all text attributes to default.
func (e *escBuilder) ResetStyle() {
	e.writeCSI()
	e.buf = append(e.buf, '0', 'm')
}

// WriteString appends a string to the buffer.
func (e *escBuilder) WriteString(s string) {
	e.buf = append(e.buf, s...)
}

// sgrParam appends one SGR parameter, opening the sequence on the first
// call. The caller finishes the sequence with sgrEnd.
func (e *escBuilder) sgrParam(open *bool, n int) {
	if !*open {
		e.writeCSI()
		*open = true
	} else {
		e.buf = append(e.buf, ';')
	}
	e.writeInt(n)
}

// attrDeltaCodes maps each attribute bit to its SGR set and clear codes.
// Reverse is absent: it is resolved into the colors before styles are
// compared and never transmitted.
var attrDeltaCodes = []struct {
	attr       vt.Attr
	set, clear int
}{
	{vt.AttrBold, 1, 22},
	{vt.AttrDim, 2, 22},
	{vt.AttrItalic, 3, 23},
	{vt.AttrUnderline, 4, 24},
	{vt.AttrBlink, 5, 25},
	{vt.AttrStrikethrough, 9, 29},
}

// StyleDelta emits the minimal SGR sequence that moves the terminal from
// style `from` to style `to`. Identical styles emit nothing; a changed
// style never triggers a full reset, only the parameters that differ.
// Both styles are assumed to already be effective styles: reverse
// resolved and colors downconverted.
func (e *escBuilder) StyleDelta(from, to vt.Style) {
	if from == to {
		return
	}

	open := false

	if from.Attrs != to.Attrs {
		set := to.Attrs &^ from.Attrs
		cleared := from.Attrs &^ to.Attrs

		// SGR 22 clears bold and dim together. When only one of them is
		// being cleared, the survivor has to be re-set afterward.
		if cleared&(vt.AttrBold|vt.AttrDim) != 0 {
			if to.Attrs&vt.AttrBold != 0 {
				set |= vt.AttrBold
			}
			if to.Attrs&vt.AttrDim != 0 {
				set |= vt.AttrDim
			}
		}

		emittedBoldDimClear := false
		for _, c := range attrDeltaCodes {
			if cleared&c.attr == 0 {
				continue
			}
			if c.clear == 22 {
				if emittedBoldDimClear {
					continue
				}
				emittedBoldDimClear = true
			}
			e.sgrParam(&open, c.clear)
		}
		for _, c := range attrDeltaCodes {
			if set&c.attr != 0 {
				e.sgrParam(&open, c.set)
			}
		}
	}

	if from.Fg != to.Fg {
		e.colorParams(&open, to.Fg, true)
	}
	if from.Bg != to.Bg {
		e.colorParams(&open, to.Bg, false)
	}

	if open {
		e.buf = append(e.buf, 'm')
	}
}

// colorParams appends the SGR parameters selecting one color. fg selects
// between the foreground (38/39) and background (48/49) code families.
func (e *escBuilder) colorParams(open *bool, c vt.Color, fg bool) {
	base := 48
	reset := 49
	if fg {
		base = 38
		reset = 39
	}

	switch c.Kind {
	case vt.ColorDefault:
		e.sgrParam(open, reset)

	case vt.ColorANSI:
		idx := int(c.R)
		switch {
		case idx < 8:
			if fg {
				e.sgrParam(open, 30+idx)
			} else {
				e.sgrParam(open, 40+idx)
			}
		case idx < 16:
			if fg {
				e.sgrParam(open, 90+idx-8)
			} else {
				e.sgrParam(open, 100+idx-8)
			}
		default:
			e.sgrParam(open, base)
			e.sgrParam(open, 5)
			e.sgrParam(open, idx)
		}

	case vt.ColorRGB:
		e.sgrParam(open, base)
		e.sgrParam(open, 2)
		e.sgrParam(open, int(c.R))
		e.sgrParam(open, int(c.G))
		e.sgrParam(open, int(c.B))
	}
}
