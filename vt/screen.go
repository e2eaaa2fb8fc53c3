// Package vt implements a virtual terminal screen buffer: a grid of styled
// cells that interprets the bytes written to it (UTF-8 text and a practical
// subset of ANSI escape sequences) and tracks which lines have changed.
//
// A Screen is the backing store a UI renders into. Writers feed it the same
// escape-encoded stream they would feed a real terminal; readers walk the
// cell grid and the per-line dirty flags to decide what to repaint.
package vt

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// parseState tracks where the escape parser is between Write calls.
type parseState int

const (
	stGround parseState = iota
	stEscape
	stCSI
	stEscSkip // charset designation: one byte follows, then ground
)

// maxParamBytes bounds CSI parameter accumulation so a malformed stream
// cannot grow the buffer without limit.
const maxParamBytes = 64

// Screen is a virtual terminal: a rows×cols grid of styled cells with a
// cursor, a current pen style, a scroll region, and per-line dirty flags.
//
// Screen implements io.Writer; written bytes are interpreted, not stored.
// It is not safe for concurrent use.
type Screen struct {
	rows, cols int
	cells      [][]Cell
	dirty      []bool

	curRow, curCol int // curCol may equal cols while a wrap is pending
	pen            Style
	cursorVisible  bool

	// Scroll region, 0-indexed inclusive. Defaults to the full screen.
	scrollTop    int
	scrollBottom int

	savedRow, savedCol int
	savedPen           Style

	state    parseState
	paramBuf []byte
	partial  []byte // incomplete trailing UTF-8 sequence from a previous Write
}

// New opens a Screen with the given dimensions.
func New(rows, cols int) (*Screen, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.New("vt: screen dimensions must be positive")
	}
	s := &Screen{
		rows:          rows,
		cols:          cols,
		cursorVisible: true,
		scrollBottom:  rows - 1,
	}
	s.cells = make([][]Cell, rows)
	for r := range s.cells {
		s.cells[r] = blankRow(cols, Style{})
	}
	s.dirty = make([]bool, rows)
	for r := range s.dirty {
		s.dirty[r] = true
	}
	return s, nil
}

func blankRow(cols int, st Style) []Cell {
	row := make([]Cell, cols)
	b := blankCell(st)
	for c := range row {
		row[c] = b
	}
	return row
}

// Rows returns the number of rows in the grid.
func (s *Screen) Rows() int { return s.rows }

// Cols returns the number of columns in the grid.
func (s *Screen) Cols() int { return s.cols }

// Cell returns the cell at (row, col), or a zero Cell if out of bounds.
func (s *Screen) Cell(row, col int) Cell {
	if row < 0 || row >= s.rows || col < 0 || col >= s.cols {
		return Cell{}
	}
	return s.cells[row][col]
}

// Line returns the cells of one row. The returned slice aliases the grid
// and must be treated as read-only; it is valid until the next Resize.
func (s *Screen) Line(row int) []Cell {
	if row < 0 || row >= s.rows {
		return nil
	}
	return s.cells[row]
}

// LineDirty reports whether a row has changed since it was last marked clean.
func (s *Screen) LineDirty(row int) bool {
	if row < 0 || row >= s.rows {
		return false
	}
	return s.dirty[row]
}

// MarkClean clears the dirty flag for a row. Renderers call this after
// flushing the row.
func (s *Screen) MarkClean(row int) {
	if row < 0 || row >= s.rows {
		return
	}
	s.dirty[row] = false
}

// Cursor returns the cursor position (0-indexed). The column is clamped to
// the grid even while a wrap is pending.
func (s *Screen) Cursor() (row, col int) {
	col = s.curCol
	if col >= s.cols {
		col = s.cols - 1
	}
	return s.curRow, col
}

// CursorVisible reports whether the cursor is visible (DECTCEM).
func (s *Screen) CursorVisible() bool { return s.cursorVisible }

// Resize changes the grid dimensions, preserving the overlapping region.
// The cursor is clamped, the scroll region resets to the full screen, and
// every line is marked dirty.
func (s *Screen) Resize(rows, cols int) {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	if rows == s.rows && cols == s.cols {
		for r := range s.dirty {
			s.dirty[r] = true
		}
		return
	}

	cells := make([][]Cell, rows)
	for r := 0; r < rows; r++ {
		cells[r] = blankRow(cols, Style{})
		if r < s.rows {
			copy(cells[r], s.cells[r][:minInt(cols, s.cols)])
			// A wide character split by the new right edge loses its lead cell.
			if cols < s.cols && cols > 0 && cells[r][cols-1].Width == 2 {
				cells[r][cols-1] = blankCell(Style{})
			}
		}
	}

	s.cells = cells
	s.rows = rows
	s.cols = cols
	s.dirty = make([]bool, rows)
	for r := range s.dirty {
		s.dirty[r] = true
	}
	s.scrollTop = 0
	s.scrollBottom = rows - 1
	if s.curRow >= rows {
		s.curRow = rows - 1
	}
	if s.curCol > cols {
		s.curCol = cols
	}
	if s.savedRow >= rows {
		s.savedRow = rows - 1
	}
	if s.savedCol >= cols {
		s.savedCol = cols - 1
	}
}

// Write interprets p as terminal output: printable text advances the cursor
// and fills cells with the current pen style; control bytes and escape
// sequences update cursor, pen, and grid state. Incomplete trailing UTF-8
// sequences are buffered for the next call. Write always consumes all of p.
func (s *Screen) Write(p []byte) (int, error) {
	data := p
	if len(s.partial) > 0 {
		data = append(s.partial, p...)
		s.partial = nil
	}

	i := 0
	for i < len(data) {
		b := data[i]

		switch s.state {
		case stEscape:
			i++
			s.handleEscape(b)
			continue
		case stEscSkip:
			i++
			s.state = stGround
			continue
		case stCSI:
			if b >= 0x20 {
				i++
				s.handleCSIByte(b)
				continue
			}
			// C0 controls execute even inside a CSI sequence.
		}

		if b < 0x20 || b == 0x7f {
			i++
			s.handleControl(b)
			continue
		}

		if b < utf8.RuneSelf {
			i++
			s.print(rune(b))
			continue
		}

		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			if !utf8.FullRune(data[i:]) && len(data)-i < utf8.UTFMax {
				// Incomplete sequence at the end of the chunk; wait for more.
				s.partial = append(s.partial, data[i:]...)
				return len(p), nil
			}
			// Genuinely invalid byte.
			s.print(utf8.RuneError)
			i++
			continue
		}
		s.print(r)
		i += size
	}
	return len(p), nil
}

// handleControl processes a C0 control byte.
func (s *Screen) handleControl(b byte) {
	switch b {
	case '\x1b':
		s.state = stEscape
	case '\n', '\v', '\f':
		s.linefeed()
	case '\r':
		s.curCol = 0
	case '\b':
		if s.curCol > s.cols {
			s.curCol = s.cols
		}
		if s.curCol > 0 {
			s.curCol--
		}
	case '\t':
		next := (s.curCol/8 + 1) * 8
		if next > s.cols-1 {
			next = s.cols - 1
		}
		s.curCol = next
	}
	// BEL and other controls are ignored.
}

// handleEscape processes the byte following a bare ESC.
func (s *Screen) handleEscape(b byte) {
	s.state = stGround
	switch b {
	case '[':
		s.state = stCSI
		s.paramBuf = s.paramBuf[:0]
	case '7': // DECSC
		s.saveCursor()
		s.savedPen = s.pen
	case '8': // DECRC
		s.restoreCursor()
		s.pen = s.savedPen
	case 'D': // IND
		s.linefeed()
	case 'E': // NEL
		s.curCol = 0
		s.linefeed()
	case 'M': // RI
		s.reverseIndex()
	case 'c': // RIS
		s.reset()
	case '(', ')', '*', '+': // charset designation, final byte follows
		s.state = stEscSkip
	}
	// Unrecognized escapes are dropped.
}

// handleCSIByte accumulates parameter bytes until the final byte arrives.
func (s *Screen) handleCSIByte(b byte) {
	if b >= 0x40 && b <= 0x7e {
		s.state = stGround
		s.dispatchCSI(b, string(s.paramBuf))
		return
	}
	if len(s.paramBuf) < maxParamBytes {
		s.paramBuf = append(s.paramBuf, b)
		return
	}
	// Parameter overflow: abandon the sequence.
	s.state = stGround
	s.paramBuf = s.paramBuf[:0]
}

// print writes one rune at the cursor with the current pen.
func (s *Screen) print(r rune) {
	w := runewidth.RuneWidth(r)
	if w <= 0 {
		// Zero-width characters (combining marks) are not stored.
		return
	}
	if s.curCol >= s.cols {
		// Deferred autowrap: the previous print filled the last column.
		s.curCol = 0
		s.linefeed()
	}
	if w == 2 && s.curCol == s.cols-1 {
		// A wide character does not fit in the last column: blank it and wrap.
		s.setCell(s.curRow, s.curCol, blankCell(s.pen))
		s.curCol = 0
		s.linefeed()
	}

	s.setCell(s.curRow, s.curCol, Cell{Rune: r, Style: s.pen, Width: uint8(w)})
	if w == 2 && s.curCol+1 < s.cols {
		s.cells[s.curRow][s.curCol+1] = Cell{Style: s.pen, Width: 0}
	}
	s.curCol += w
}

// setCell stores a cell and repairs any wide character it tears in half:
// overwriting a continuation blanks its lead, and overwriting a lead blanks
// its continuation. Writing a cell's existing value leaves the line clean,
// so redrawing unchanged content costs nothing at flush time.
func (s *Screen) setCell(row, col int, c Cell) {
	if row < 0 || row >= s.rows || col < 0 || col >= s.cols {
		return
	}
	old := s.cells[row][col]
	if old == c {
		return
	}
	if old.IsContinuation() && col > 0 && s.cells[row][col-1].Width == 2 {
		lead := s.cells[row][col-1]
		s.cells[row][col-1] = Cell{Rune: ' ', Style: lead.Style, Width: 1}
	}
	if old.Width == 2 && col+1 < s.cols {
		s.cells[row][col+1] = Cell{Rune: ' ', Style: old.Style, Width: 1}
	}
	s.cells[row][col] = c
	s.dirty[row] = true
}

// linefeed moves the cursor down, scrolling the region when the cursor is
// on its bottom row.
func (s *Screen) linefeed() {
	if s.curRow == s.scrollBottom {
		s.scrollUp(1)
	} else if s.curRow < s.rows-1 {
		s.curRow++
	}
}

// reverseIndex moves the cursor up, scrolling the region down when the
// cursor is on its top row.
func (s *Screen) reverseIndex() {
	if s.curRow == s.scrollTop {
		s.scrollDown(1)
	} else if s.curRow > 0 {
		s.curRow--
	}
}

// scrollUp shifts the scroll region up by n lines; new bottom lines are
// blank with the pen's background.
func (s *Screen) scrollUp(n int) {
	for ; n > 0; n-- {
		for r := s.scrollTop; r < s.scrollBottom; r++ {
			copy(s.cells[r], s.cells[r+1])
		}
		s.cells[s.scrollBottom] = blankRow(s.cols, s.pen)
	}
	for r := s.scrollTop; r <= s.scrollBottom; r++ {
		s.dirty[r] = true
	}
}

// scrollDown shifts the scroll region down by n lines; new top lines are
// blank with the pen's background.
func (s *Screen) scrollDown(n int) {
	for ; n > 0; n-- {
		for r := s.scrollBottom; r > s.scrollTop; r-- {
			copy(s.cells[r], s.cells[r-1])
		}
		s.cells[s.scrollTop] = blankRow(s.cols, s.pen)
	}
	for r := s.scrollTop; r <= s.scrollBottom; r++ {
		s.dirty[r] = true
	}
}

func (s *Screen) saveCursor() {
	row, col := s.Cursor()
	s.savedRow, s.savedCol = row, col
}

func (s *Screen) restoreCursor() {
	s.curRow = s.savedRow
	s.curCol = s.savedCol
}

// reset returns the screen to its initial state (RIS).
func (s *Screen) reset() {
	for r := range s.cells {
		s.cells[r] = blankRow(s.cols, Style{})
		s.dirty[r] = true
	}
	s.curRow, s.curCol = 0, 0
	s.savedRow, s.savedCol = 0, 0
	s.pen = Style{}
	s.savedPen = Style{}
	s.cursorVisible = true
	s.scrollTop = 0
	s.scrollBottom = s.rows - 1
	s.state = stGround
	s.partial = nil
}

// RowString returns the runes of one row as a right-trimmed string.
// Continuation cells contribute nothing. Intended for tests and debugging.
func (s *Screen) RowString(row int) string {
	if row < 0 || row >= s.rows {
		return ""
	}
	var sb strings.Builder
	for _, c := range s.cells[row] {
		if c.IsContinuation() {
			continue
		}
		r := c.Rune
		if r == 0 {
			r = ' '
		}
		sb.WriteRune(r)
	}
	return strings.TrimRight(sb.String(), " ")
}

// String returns the visible text of the whole screen, rows joined by
// newlines. Intended for tests and debugging.
func (s *Screen) String() string {
	lines := make([]string, s.rows)
	for r := 0; r < s.rows; r++ {
		lines[r] = s.RowString(r)
	}
	return strings.Join(lines, "\n")
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
