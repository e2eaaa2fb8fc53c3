package vt

import "github.com/mattn/go-runewidth"

// ColorKind distinguishes between color representations.
type ColorKind uint8

const (
	// ColorDefault represents the terminal's default color (no color set).
	ColorDefault ColorKind = iota
	// ColorANSI represents an ANSI 256 palette color (0-255).
	ColorANSI
	// ColorRGB represents a true color (24-bit RGB).
	ColorRGB
)

// Color represents a cell color: the terminal default, an ANSI 256 palette
// index, or a 24-bit RGB value. The zero value is the terminal default.
type Color struct {
	Kind ColorKind
	// For ColorANSI, R holds the palette index (0-255).
	R, G, B uint8
}

// DefaultColor returns a Color representing the terminal's default color.
func DefaultColor() Color {
	return Color{Kind: ColorDefault}
}

// ANSIColor returns a Color from the ANSI 256 palette.
func ANSIColor(index uint8) Color {
	return Color{Kind: ColorANSI, R: index}
}

// RGBColor returns a true color (24-bit RGB) Color.
func RGBColor(r, g, b uint8) Color {
	return Color{Kind: ColorRGB, R: r, G: g, B: b}
}

// IsDefault returns true if this is the terminal default color.
func (c Color) IsDefault() bool {
	return c.Kind == ColorDefault
}

// Standard ANSI palette indices, usable with ANSIColor.
const (
	Black uint8 = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	BrightBlack
	BrightRed
	BrightGreen
	BrightYellow
	BrightBlue
	BrightMagenta
	BrightCyan
	BrightWhite
)

// Attr represents text attributes as a bitfield.
type Attr uint8

const (
	// AttrNone represents no text attributes.
	AttrNone Attr = 0
	// AttrBold makes text bold/bright.
	AttrBold Attr = 1 << iota
	// AttrDim makes text dimmed/faint.
	AttrDim
	// AttrItalic makes text italic.
	AttrItalic
	// AttrUnderline underlines the text.
	AttrUnderline
	// AttrBlink makes text blink (rarely supported).
	AttrBlink
	// AttrReverse swaps foreground and background at render time.
	AttrReverse
	// AttrStrikethrough draws a line through the text.
	AttrStrikethrough
)

// Style combines text attributes with foreground and background colors.
// The zero value is the terminal default: default colors, no attributes.
type Style struct {
	Fg    Color
	Bg    Color
	Attrs Attr
}

// Foreground returns a copy of the style with the given foreground color.
func (s Style) Foreground(c Color) Style {
	s.Fg = c
	return s
}

// Background returns a copy of the style with the given background color.
func (s Style) Background(c Color) Style {
	s.Bg = c
	return s
}

// Bold returns a copy of the style with the bold attribute set.
func (s Style) Bold() Style {
	s.Attrs |= AttrBold
	return s
}

// Dim returns a copy of the style with the dim attribute set.
func (s Style) Dim() Style {
	s.Attrs |= AttrDim
	return s
}

// Italic returns a copy of the style with the italic attribute set.
func (s Style) Italic() Style {
	s.Attrs |= AttrItalic
	return s
}

// Underline returns a copy of the style with the underline attribute set.
func (s Style) Underline() Style {
	s.Attrs |= AttrUnderline
	return s
}

// Blink returns a copy of the style with the blink attribute set.
func (s Style) Blink() Style {
	s.Attrs |= AttrBlink
	return s
}

// Reverse returns a copy of the style with the reverse attribute set.
func (s Style) Reverse() Style {
	s.Attrs |= AttrReverse
	return s
}

// Strikethrough returns a copy of the style with the strikethrough attribute set.
func (s Style) Strikethrough() Style {
	s.Attrs |= AttrStrikethrough
	return s
}

// HasAttr returns true if the style has all of the given attribute bits set.
func (s Style) HasAttr(a Attr) bool {
	return s.Attrs&a == a
}

// Cell is a single character cell in the screen grid. Wide characters
// (CJK, emoji) occupy two cells; the first holds the rune, the second is
// marked as a continuation.
type Cell struct {
	Rune  rune  // the character (0 for continuation cells)
	Style Style // visual styling
	Width uint8 // display width (1 or 2; 0 for continuation)
}

// NewCell creates a Cell with automatic width detection.
func NewCell(r rune, style Style) Cell {
	return Cell{
		Rune:  r,
		Style: style,
		Width: uint8(runewidth.RuneWidth(r)),
	}
}

// IsContinuation returns true if this cell is the trailing half of a wide
// character.
func (c Cell) IsContinuation() bool {
	return c.Width == 0
}

// blankCell returns the cell used for erased positions. Erase operations
// keep the current background color, matching how terminals clear lines.
func blankCell(st Style) Cell {
	return Cell{Rune: ' ', Style: Style{Bg: st.Bg}, Width: 1}
}
