package strata

import (
	"testing"

	"github.com/grindlemire/strata/vt"
)

func newDrawScreen(t *testing.T, rows, cols int) *vt.Screen {
	t.Helper()
	scr, err := vt.New(rows, cols)
	if err != nil {
		t.Fatalf("vt.New: %v", err)
	}
	return scr
}

func TestDrawText(t *testing.T) {
	tests := []struct {
		name     string
		cols     int
		x, y     int
		text     string
		want     string // RowString of the target row
		wantCols int
	}{
		{"plain", 10, 0, 0, "hello", "hello", 5},
		{"offset", 10, 3, 0, "hi", "   hi", 2},
		{"truncated at right edge", 5, 0, 0, "toolong", "toolo", 5},
		{"wide characters", 10, 0, 0, "日本", "日本", 4},
		{"wide char cut at edge", 3, 0, 0, "a日本", "a日", 3},
		{"empty text", 10, 0, 0, "", "", 0},
		{"start past right edge", 5, 5, 0, "x", "", 0},
		{"negative row", 10, 0, -1, "x", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scr := newDrawScreen(t, 3, tt.cols)
			row := tt.y
			if row < 0 {
				row = 0
			}
			got := DrawText(scr, tt.x, tt.y, vt.Style{}, tt.text)
			if got != tt.wantCols {
				t.Errorf("columns = %d, want %d", got, tt.wantCols)
			}
			if s := scr.RowString(row); s != tt.want {
				t.Errorf("row = %q, want %q", s, tt.want)
			}
		})
	}
}

func TestDrawTextStyle(t *testing.T) {
	scr := newDrawScreen(t, 1, 10)
	style := vt.Style{}.Bold().Foreground(vt.ANSIColor(vt.Cyan))
	DrawText(scr, 0, 0, style, "ok")

	for col := 0; col < 2; col++ {
		if got := scr.Cell(0, col).Style; got != style {
			t.Errorf("cell %d style = %+v, want %+v", col, got, style)
		}
	}
	// The cell after the text keeps its previous style.
	if got := scr.Cell(0, 2).Style; got != (vt.Style{}) {
		t.Errorf("cell 2 style = %+v, want default", got)
	}
}

func TestDrawTextReverseStyle(t *testing.T) {
	scr := newDrawScreen(t, 1, 10)
	style := vt.Style{}.Reverse().Foreground(vt.ANSIColor(vt.Red))
	DrawText(scr, 0, 0, style, "x")

	if got := scr.Cell(0, 0).Style; !got.HasAttr(vt.AttrReverse) {
		t.Errorf("cell style = %+v, reverse flag lost", got)
	}
}

func TestFillRect(t *testing.T) {
	scr := newDrawScreen(t, 4, 8)
	FillRect(scr, NewRect(2, 1, 3, 2), vt.Style{}, '#')

	want := []string{
		"",
		"  ###",
		"  ###",
		"",
	}
	for row, w := range want {
		if got := scr.RowString(row); got != w {
			t.Errorf("row %d = %q, want %q", row, got, w)
		}
	}
}

func TestFillRectClipped(t *testing.T) {
	scr := newDrawScreen(t, 3, 5)
	// Extends past every edge; only the on-screen part is filled.
	FillRect(scr, NewRect(-2, -1, 20, 20), vt.Style{}, '*')

	for row := 0; row < 3; row++ {
		if got := scr.RowString(row); got != "*****" {
			t.Errorf("row %d = %q, want full fill", row, got)
		}
	}
}

func TestFillRectOffscreen(t *testing.T) {
	scr := newDrawScreen(t, 3, 5)
	FillRect(scr, NewRect(10, 10, 4, 4), vt.Style{}, '*')
	for row := 0; row < 3; row++ {
		if got := scr.RowString(row); got != "" {
			t.Errorf("row %d = %q, want untouched", row, got)
		}
	}
}

func TestDrawBox(t *testing.T) {
	tests := []struct {
		name   string
		border BorderStyle
		want   []string
	}{
		{
			name:   "single",
			border: BorderSingle,
			want: []string{
				"┌──┐",
				"│  │",
				"└──┘",
			},
		},
		{
			name:   "double",
			border: BorderDouble,
			want: []string{
				"╔══╗",
				"║  ║",
				"╚══╝",
			},
		},
		{
			name:   "rounded",
			border: BorderRounded,
			want: []string{
				"╭──╮",
				"│  │",
				"╰──╯",
			},
		},
		{
			name:   "ascii",
			border: BorderASCII,
			want: []string{
				"+--+",
				"|  |",
				"+--+",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scr := newDrawScreen(t, 3, 4)
			DrawBox(scr, NewRect(0, 0, 4, 3), vt.Style{}, tt.border)
			for row, w := range tt.want {
				if got := scr.RowString(row); got != w {
					t.Errorf("row %d = %q, want %q", row, got, w)
				}
			}
		})
	}
}

func TestDrawBoxTooSmall(t *testing.T) {
	scr := newDrawScreen(t, 3, 5)
	DrawBox(scr, NewRect(0, 0, 1, 3), vt.Style{}, BorderSingle)
	DrawBox(scr, NewRect(0, 0, 3, 1), vt.Style{}, BorderSingle)
	for row := 0; row < 3; row++ {
		if got := scr.RowString(row); got != "" {
			t.Errorf("row %d = %q, want untouched", row, got)
		}
	}
}

func TestDrawBoxMinimumSize(t *testing.T) {
	scr := newDrawScreen(t, 2, 2)
	DrawBox(scr, NewRect(0, 0, 2, 2), vt.Style{}, BorderSingle)
	want := []string{"┌┐", "└┘"}
	for row, w := range want {
		if got := scr.RowString(row); got != w {
			t.Errorf("row %d = %q, want %q", row, got, w)
		}
	}
}
