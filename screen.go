package strata

import (
	"io"

	"github.com/grindlemire/strata/vt"
)

// Screen is the drawing surface shared by every component. Writes are
// interpreted as terminal output (UTF-8 text and escape sequences) and land
// in a cell grid; nothing reaches the real terminal until the runtime
// flushes the dirty lines.
//
// *vt.Screen is the implementation; the interface exists so rendering can
// be tested against a plain buffer.
type Screen interface {
	io.Writer

	// Rows and Cols report the grid dimensions in cells.
	Rows() int
	Cols() int

	// Resize changes the grid dimensions, marking every line dirty.
	Resize(rows, cols int)

	// Line returns the cells of one row, read-only.
	Line(row int) []vt.Cell

	// LineDirty reports whether a row changed since it was last flushed.
	LineDirty(row int) bool

	// MarkClean records that a row has been flushed.
	MarkClean(row int)
}

var _ Screen = (*vt.Screen)(nil)
