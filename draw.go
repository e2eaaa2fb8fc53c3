package strata

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/grindlemire/strata/vt"
)

// Draw helpers for render handlers. They emit escape-encoded output into
// the virtual screen, the same stream they would send a real terminal:
// a cursor move, the style, then the content.

// BorderStyle selects the characters DrawBox draws with.
type BorderStyle int

const (
	// BorderSingle uses single-line box-drawing characters (─, │, ┌, ...).
	BorderSingle BorderStyle = iota
	// BorderDouble uses double-line box-drawing characters (═, ║, ╔, ...).
	BorderDouble
	// BorderRounded uses rounded corners (╭, ╮, ╰, ╯).
	BorderRounded
	// BorderASCII uses plain ASCII (-, |, +) for terminals without
	// box-drawing glyphs.
	BorderASCII
)

// borderChars holds the eight characters of one border style.
type borderChars struct {
	topLeft, top, topRight          rune
	left, right                     rune
	bottomLeft, bottom, bottomRight rune
}

func (b BorderStyle) chars() borderChars {
	switch b {
	case BorderDouble:
		return borderChars{'╔', '═', '╗', '║', '║', '╚', '═', '╝'}
	case BorderRounded:
		return borderChars{'╭', '─', '╮', '│', '│', '╰', '─', '╯'}
	case BorderASCII:
		return borderChars{'+', '-', '+', '|', '|', '+', '-', '+'}
	default:
		return borderChars{'┌', '─', '┐', '│', '│', '└', '─', '┘'}
	}
}

// moveAndStyle positions the cursor and sets the full style, seeding from
// a reset so the screen's pen matches exactly.
func moveAndStyle(e *escBuilder, x, y int, style vt.Style) {
	e.MoveTo(x, y)
	e.ResetStyle()
	e.StyleDelta(vt.Style{}, style)
	// StyleDelta resolves reverse into swapped colors for terminal
	// output; the virtual screen wants the flag itself so the swap
	// happens at flush time instead.
	if style.HasAttr(vt.AttrReverse) {
		e.writeCSI()
		e.buf = append(e.buf, '7', 'm')
	}
}

// DrawText writes text at (x, y) in the given style, truncating at the
// screen's right edge. Width accounting is grapheme-cluster aware, so
// combining marks and wide characters occupy what they render as.
// Returns the number of columns written.
func DrawText(scr Screen, x, y int, style vt.Style, text string) int {
	if y < 0 || y >= scr.Rows() || x >= scr.Cols() || text == "" {
		return 0
	}

	e := newEscBuilder(len(text) + 32)
	moveAndStyle(e, x, y, style)

	col := x
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		w := runewidth.StringWidth(cluster)
		if w == 0 {
			continue
		}
		if col+w > scr.Cols() {
			break
		}
		e.WriteString(cluster)
		col += w
	}
	e.ResetStyle()

	scr.Write(e.Bytes())
	return col - x
}

// FillRect fills a rectangle with one character in the given style.
// The rectangle is clipped to the screen.
func FillRect(scr Screen, r Rect, style vt.Style, ch rune) {
	clipped := r.Intersect(Rect{Width: scr.Cols(), Height: scr.Rows()})
	if clipped.IsEmpty() {
		return
	}

	w := runewidth.RuneWidth(ch)
	if w <= 0 {
		return
	}

	e := newEscBuilder(clipped.Width*clipped.Height + 64)
	for row := clipped.Y; row < clipped.Bottom(); row++ {
		moveAndStyle(e, clipped.X, row, style)
		for col := clipped.X; col+w <= clipped.Right(); col += w {
			e.buf = utf8.AppendRune(e.buf, ch)
		}
	}
	e.ResetStyle()

	scr.Write(e.Bytes())
}

// DrawBox draws a border along the edges of the rectangle. Boxes thinner
// than 2x2 cells are skipped.
func DrawBox(scr Screen, r Rect, style vt.Style, border BorderStyle) {
	if r.Width < 2 || r.Height < 2 {
		return
	}

	bc := border.chars()
	e := newEscBuilder(r.Width*2 + r.Height*16 + 64)

	// Top edge.
	moveAndStyle(e, r.X, r.Y, style)
	e.buf = utf8.AppendRune(e.buf, bc.topLeft)
	for i := 0; i < r.Width-2; i++ {
		e.buf = utf8.AppendRune(e.buf, bc.top)
	}
	e.buf = utf8.AppendRune(e.buf, bc.topRight)

	// Side edges.
	for row := r.Y + 1; row < r.Y+r.Height-1; row++ {
		e.MoveTo(r.X, row)
		e.buf = utf8.AppendRune(e.buf, bc.left)
		e.MoveTo(r.X+r.Width-1, row)
		e.buf = utf8.AppendRune(e.buf, bc.right)
	}

	// Bottom edge.
	e.MoveTo(r.X, r.Y+r.Height-1)
	e.buf = utf8.AppendRune(e.buf, bc.bottomLeft)
	for i := 0; i < r.Width-2; i++ {
		e.buf = utf8.AppendRune(e.buf, bc.bottom)
	}
	e.buf = utf8.AppendRune(e.buf, bc.bottomRight)

	e.ResetStyle()
	scr.Write(e.Bytes())
}
