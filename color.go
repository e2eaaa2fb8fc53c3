package strata

import (
	"sync"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/grindlemire/strata/vt"
)

// ansi16RGB maps ANSI palette entries 0-15 to typical RGB values. Actual
// values vary by terminal theme; these match common defaults.
var ansi16RGB = [16][3]uint8{
	{0, 0, 0},       // black
	{205, 49, 49},   // red
	{13, 188, 121},  // green
	{229, 229, 16},  // yellow
	{36, 114, 200},  // blue
	{188, 63, 188},  // magenta
	{17, 168, 205},  // cyan
	{229, 229, 229}, // white
	{102, 102, 102}, // bright black (gray)
	{241, 76, 76},   // bright red
	{35, 209, 139},  // bright green
	{245, 245, 67},  // bright yellow
	{59, 142, 234},  // bright blue
	{214, 112, 214}, // bright magenta
	{41, 184, 219},  // bright cyan
	{255, 255, 255}, // bright white
}

// paletteRGB returns the RGB value of an ANSI 256 palette index: the 16
// named colors, the 6x6x6 color cube (16-231), or the grayscale ramp
// (232-255).
func paletteRGB(idx uint8) (r, g, b uint8) {
	switch {
	case idx < 16:
		rgb := ansi16RGB[idx]
		return rgb[0], rgb[1], rgb[2]
	case idx < 232:
		i := idx - 16
		cube := func(v uint8) uint8 {
			if v == 0 {
				return 0
			}
			return 55 + v*40
		}
		return cube(i / 36), cube((i % 36) / 6), cube(i % 6)
	default:
		gray := 8 + (idx-232)*10
		return gray, gray, gray
	}
}

var (
	paletteOnce sync.Once
	palette256  [256]colorful.Color
)

// labPalette returns the full 256-entry palette as colorful colors, built
// once. Nearest-match lookups compare in Lab space, which tracks perceived
// color distance far better than plain RGB deltas.
func labPalette() *[256]colorful.Color {
	paletteOnce.Do(func() {
		for i := 0; i < 256; i++ {
			r, g, b := paletteRGB(uint8(i))
			palette256[i] = colorful.Color{
				R: float64(r) / 255,
				G: float64(g) / 255,
				B: float64(b) / 255,
			}
		}
	})
	return &palette256
}

// nearestPalette returns the palette index in [0, size) whose entry is
// closest to the given RGB value by Lab distance.
func nearestPalette(r, g, b uint8, size int) uint8 {
	target := colorful.Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}
	pal := labPalette()

	best := 0
	bestDist := -1.0
	for i := 0; i < size; i++ {
		d := target.DistanceLab(pal[i])
		if bestDist < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return uint8(best)
}

// effectiveColor downconverts a color to what the terminal can display.
// RGB collapses to the nearest 256-palette or 16-palette entry, high
// palette indices collapse to the nearest of the first 16, and on a
// monochrome terminal every color becomes the default.
func (c Capabilities) effectiveColor(col vt.Color) vt.Color {
	switch col.Kind {
	case vt.ColorDefault:
		return col
	case vt.ColorRGB:
		switch {
		case c.Colors >= ColorTrue:
			return col
		case c.Colors >= Color256:
			return vt.ANSIColor(nearestPalette(col.R, col.G, col.B, 256))
		case c.Colors >= Color16:
			return vt.ANSIColor(nearestPalette(col.R, col.G, col.B, 16))
		default:
			return vt.DefaultColor()
		}
	case vt.ColorANSI:
		switch {
		case c.Colors >= Color256:
			return col
		case c.Colors >= Color16:
			if col.R < 16 {
				return col
			}
			r, g, b := paletteRGB(col.R)
			return vt.ANSIColor(nearestPalette(r, g, b, 16))
		default:
			return vt.DefaultColor()
		}
	}
	return col
}

// effectiveStyle is the style actually transmitted for a cell: reverse
// video is applied by swapping foreground and background (the flag itself
// is never sent), and both colors are downconverted to the terminal's
// capability level.
func (c Capabilities) effectiveStyle(s vt.Style) vt.Style {
	if s.HasAttr(vt.AttrReverse) {
		s.Fg, s.Bg = s.Bg, s.Fg
		s.Attrs &^= vt.AttrReverse
	}
	s.Fg = c.effectiveColor(s.Fg)
	s.Bg = c.effectiveColor(s.Bg)
	return s
}
