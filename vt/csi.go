package vt

import (
	"strconv"
	"strings"
)

// csiParams parses a CSI parameter string into integers. Empty parameters
// become def, which is also returned for a missing first parameter.
func csiParams(raw string, def int) []int {
	if raw == "" {
		return []int{def}
	}
	parts := strings.Split(raw, ";")
	params := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			n = def
		}
		params[i] = n
	}
	return params
}

// dispatchCSI executes one complete CSI sequence. Unrecognized finals are
// dropped without side effects.
func (s *Screen) dispatchCSI(final byte, raw string) {
	private := strings.HasPrefix(raw, "?")
	if private {
		raw = raw[1:]
	}

	switch final {
	case 'A': // CUU: cursor up
		s.moveCursor(-atLeast(firstParam(raw, 1), 1), 0)
	case 'B': // CUD: cursor down
		s.moveCursor(atLeast(firstParam(raw, 1), 1), 0)
	case 'C': // CUF: cursor forward
		s.moveCursor(0, atLeast(firstParam(raw, 1), 1))
	case 'D': // CUB: cursor back
		s.moveCursor(0, -atLeast(firstParam(raw, 1), 1))
	case 'G': // CHA: cursor to column
		s.curCol = clampInt(firstParam(raw, 1)-1, 0, s.cols-1)
	case 'd': // VPA: cursor to row
		s.curRow = clampInt(firstParam(raw, 1)-1, 0, s.rows-1)
	case 'H', 'f': // CUP: cursor to row;col
		params := csiParams(raw, 1)
		row, col := params[0], 1
		if len(params) > 1 {
			col = params[1]
		}
		s.curRow = clampInt(row-1, 0, s.rows-1)
		s.curCol = clampInt(col-1, 0, s.cols-1)
	case 'J': // ED: erase display
		s.eraseDisplay(firstParam(raw, 0))
	case 'K': // EL: erase line
		s.eraseLine(firstParam(raw, 0))
	case 'L': // IL: insert lines
		s.insertLines(atLeast(firstParam(raw, 1), 1))
	case 'M': // DL: delete lines
		s.deleteLines(atLeast(firstParam(raw, 1), 1))
	case 'P': // DCH: delete characters
		s.deleteChars(atLeast(firstParam(raw, 1), 1))
	case '@': // ICH: insert blank characters
		s.insertChars(atLeast(firstParam(raw, 1), 1))
	case 'X': // ECH: erase characters in place
		s.eraseChars(atLeast(firstParam(raw, 1), 1))
	case 'S': // SU: scroll up
		s.scrollUp(atLeast(firstParam(raw, 1), 1))
	case 'T': // SD: scroll down
		s.scrollDown(atLeast(firstParam(raw, 1), 1))
	case 'r': // DECSTBM: set scroll region
		params := csiParams(raw, 0)
		top := params[0]
		bottom := 0
		if len(params) > 1 {
			bottom = params[1]
		}
		s.setScrollRegion(top, bottom)
	case 's': // SCOSC: save cursor position
		s.saveCursor()
	case 'u': // SCORC: restore cursor position
		s.restoreCursor()
	case 'h': // SM / DECSET
		if private && firstParam(raw, 0) == 25 {
			s.cursorVisible = true
		}
	case 'l': // RM / DECRST
		if private && firstParam(raw, 0) == 25 {
			s.cursorVisible = false
		}
	case 'm': // SGR
		s.applySGR(csiParams(raw, 0))
	}
}

// moveCursor moves the cursor relatively, clamped to the grid. Relative
// movement never scrolls.
func (s *Screen) moveCursor(dRow, dCol int) {
	col := s.curCol
	if col >= s.cols {
		col = s.cols - 1
	}
	s.curRow = clampInt(s.curRow+dRow, 0, s.rows-1)
	s.curCol = clampInt(col+dCol, 0, s.cols-1)
}

// setScrollRegion applies DECSTBM with 1-indexed inclusive bounds; zero or
// missing values select the full screen. The cursor homes afterward.
func (s *Screen) setScrollRegion(top, bottom int) {
	if top < 1 {
		top = 1
	}
	if bottom < 1 || bottom > s.rows {
		bottom = s.rows
	}
	if top >= bottom {
		return
	}
	s.scrollTop = top - 1
	s.scrollBottom = bottom - 1
	s.curRow, s.curCol = 0, 0
}

func (s *Screen) eraseDisplay(mode int) {
	row, col := s.Cursor()
	switch mode {
	case 0: // cursor to end of screen
		s.blankSpan(row, col, s.cols-1)
		for r := row + 1; r < s.rows; r++ {
			s.blankSpan(r, 0, s.cols-1)
		}
	case 1: // start of screen to cursor
		for r := 0; r < row; r++ {
			s.blankSpan(r, 0, s.cols-1)
		}
		s.blankSpan(row, 0, col)
	case 2, 3: // whole screen
		for r := 0; r < s.rows; r++ {
			s.blankSpan(r, 0, s.cols-1)
		}
	}
}

func (s *Screen) eraseLine(mode int) {
	row, col := s.Cursor()
	switch mode {
	case 0:
		s.blankSpan(row, col, s.cols-1)
	case 1:
		s.blankSpan(row, 0, col)
	case 2:
		s.blankSpan(row, 0, s.cols-1)
	}
}

// blankSpan fills cells [from, to] of a row with pen-background blanks,
// splitting any wide character that straddles an edge.
func (s *Screen) blankSpan(row, from, to int) {
	if row < 0 || row >= s.rows {
		return
	}
	from = clampInt(from, 0, s.cols-1)
	to = clampInt(to, 0, s.cols-1)
	if from > 0 {
		s.setCell(row, from, blankCell(s.pen))
		from++
	}
	if to < s.cols-1 {
		s.setCell(row, to, blankCell(s.pen))
		to--
	}
	b := blankCell(s.pen)
	for c := from; c <= to; c++ {
		s.cells[row][c] = b
	}
	s.dirty[row] = true
}

// insertLines shifts lines at and below the cursor down within the scroll
// region, blanking the opened lines. Outside the region it is a no-op.
func (s *Screen) insertLines(n int) {
	if s.curRow < s.scrollTop || s.curRow > s.scrollBottom {
		return
	}
	for ; n > 0; n-- {
		for r := s.scrollBottom; r > s.curRow; r-- {
			copy(s.cells[r], s.cells[r-1])
		}
		s.cells[s.curRow] = blankRow(s.cols, s.pen)
	}
	for r := s.curRow; r <= s.scrollBottom; r++ {
		s.dirty[r] = true
	}
	s.curCol = 0
}

// deleteLines removes lines at the cursor within the scroll region, pulling
// lower lines up and blanking the vacated bottom.
func (s *Screen) deleteLines(n int) {
	if s.curRow < s.scrollTop || s.curRow > s.scrollBottom {
		return
	}
	for ; n > 0; n-- {
		for r := s.curRow; r < s.scrollBottom; r++ {
			copy(s.cells[r], s.cells[r+1])
		}
		s.cells[s.scrollBottom] = blankRow(s.cols, s.pen)
	}
	for r := s.curRow; r <= s.scrollBottom; r++ {
		s.dirty[r] = true
	}
	s.curCol = 0
}

// deleteChars removes n cells at the cursor, shifting the remainder of the
// line left and blanking the tail.
func (s *Screen) deleteChars(n int) {
	row, col := s.Cursor()
	if n > s.cols-col {
		n = s.cols - col
	}
	line := s.cells[row]
	copy(line[col:], line[col+n:])
	b := blankCell(s.pen)
	for c := s.cols - n; c < s.cols; c++ {
		line[c] = b
	}
	s.repairSeam(row, col)
	s.repairSeam(row, s.cols-n)
	s.dirty[row] = true
}

// repairSeam fixes a wide character torn at column col by a horizontal
// shift: an orphaned continuation or a lead with no partner becomes a space.
func (s *Screen) repairSeam(row, col int) {
	line := s.cells[row]
	if col < s.cols && line[col].IsContinuation() {
		line[col] = Cell{Rune: ' ', Style: line[col].Style, Width: 1}
	}
	if col > 0 && line[col-1].Width == 2 {
		line[col-1] = Cell{Rune: ' ', Style: line[col-1].Style, Width: 1}
	}
}

// insertChars opens n blank cells at the cursor, shifting the remainder of
// the line right; cells pushed past the edge are lost.
func (s *Screen) insertChars(n int) {
	row, col := s.Cursor()
	if n > s.cols-col {
		n = s.cols - col
	}
	line := s.cells[row]
	copy(line[col+n:], line[col:])
	b := blankCell(s.pen)
	for c := col; c < col+n; c++ {
		line[c] = b
	}
	s.repairSeam(row, col)
	s.repairSeam(row, col+n)
	if line[s.cols-1].Width == 2 {
		// A wide character shifted halfway off the right edge.
		line[s.cols-1] = Cell{Rune: ' ', Style: line[s.cols-1].Style, Width: 1}
	}
	s.dirty[row] = true
}

// eraseChars blanks n cells at the cursor without shifting.
func (s *Screen) eraseChars(n int) {
	row, col := s.Cursor()
	to := col + n - 1
	if to > s.cols-1 {
		to = s.cols - 1
	}
	s.blankSpan(row, col, to)
}

// applySGR updates the pen from a Select Graphic Rendition parameter list.
func (s *Screen) applySGR(params []int) {
	if len(params) == 0 {
		params = []int{0}
	}
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			s.pen = Style{}
		case p == 1:
			s.pen.Attrs |= AttrBold
		case p == 2:
			s.pen.Attrs |= AttrDim
		case p == 3:
			s.pen.Attrs |= AttrItalic
		case p == 4:
			s.pen.Attrs |= AttrUnderline
		case p == 5:
			s.pen.Attrs |= AttrBlink
		case p == 7:
			s.pen.Attrs |= AttrReverse
		case p == 9:
			s.pen.Attrs |= AttrStrikethrough
		case p == 22:
			s.pen.Attrs &^= AttrBold | AttrDim
		case p == 23:
			s.pen.Attrs &^= AttrItalic
		case p == 24:
			s.pen.Attrs &^= AttrUnderline
		case p == 25:
			s.pen.Attrs &^= AttrBlink
		case p == 27:
			s.pen.Attrs &^= AttrReverse
		case p == 29:
			s.pen.Attrs &^= AttrStrikethrough
		case p >= 30 && p <= 37:
			s.pen.Fg = ANSIColor(uint8(p - 30))
		case p == 38:
			color, skip, ok := extendedColor(params[i+1:])
			if !ok {
				return
			}
			s.pen.Fg = color
			i += skip
		case p == 39:
			s.pen.Fg = DefaultColor()
		case p >= 40 && p <= 47:
			s.pen.Bg = ANSIColor(uint8(p - 40))
		case p == 48:
			color, skip, ok := extendedColor(params[i+1:])
			if !ok {
				return
			}
			s.pen.Bg = color
			i += skip
		case p == 49:
			s.pen.Bg = DefaultColor()
		case p >= 90 && p <= 97:
			s.pen.Fg = ANSIColor(uint8(p - 90 + 8))
		case p >= 100 && p <= 107:
			s.pen.Bg = ANSIColor(uint8(p - 100 + 8))
		}
	}
}

// extendedColor decodes the tail of a 38/48 SGR parameter: "5;n" selects a
// palette entry, "2;r;g;b" a direct color. It returns the color, how many
// parameters it consumed, and whether the form was valid.
func extendedColor(rest []int) (Color, int, bool) {
	if len(rest) == 0 {
		return Color{}, 0, false
	}
	switch rest[0] {
	case 5:
		if len(rest) < 2 {
			return Color{}, 0, false
		}
		return ANSIColor(uint8(clampInt(rest[1], 0, 255))), 2, true
	case 2:
		if len(rest) < 4 {
			return Color{}, 0, false
		}
		r := uint8(clampInt(rest[1], 0, 255))
		g := uint8(clampInt(rest[2], 0, 255))
		b := uint8(clampInt(rest[3], 0, 255))
		return RGBColor(r, g, b), 4, true
	}
	return Color{}, 0, false
}

func firstParam(raw string, def int) int {
	return csiParams(raw, def)[0]
}

func atLeast(n, min int) int {
	if n < min {
		return min
	}
	return n
}

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
