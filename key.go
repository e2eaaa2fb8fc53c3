package strata

import (
	"strconv"
	"strings"
)

// Key identifies a keyboard key. Printable characters arrive as KeyRune
// with the character in KeyEvent.Rune; everything else maps to a named key.
type Key uint16

const (
	KeyNone Key = iota
	KeyRune

	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert

	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// KeyCtrlA through KeyCtrlZ are contiguous so a control byte 0x01-0x1a
	// maps with KeyCtrlA + Key(b-1).
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlH
	KeyCtrlI
	KeyCtrlJ
	KeyCtrlK
	KeyCtrlL
	KeyCtrlM
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ

	// KeyCtrlSpace is the NUL byte.
	KeyCtrlSpace
)

var keyNames = map[Key]string{
	KeyNone:      "None",
	KeyRune:      "Rune",
	KeyEscape:    "Escape",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyInsert:    "Insert",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyCtrlSpace: "Ctrl+Space",
}

// String returns a human-readable name for the key.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k >= KeyF1 && k <= KeyF12 {
		return "F" + strconv.Itoa(int(k-KeyF1)+1)
	}
	if k >= KeyCtrlA && k <= KeyCtrlZ {
		return "Ctrl+" + string(rune('A'+k-KeyCtrlA))
	}
	return "Unknown"
}

// Modifier is a set of keyboard modifier flags.
type Modifier uint8

const (
	ModNone Modifier = 0
	ModCtrl Modifier = 1 << iota
	ModAlt
	ModShift
)

// Has reports whether the set includes mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// String returns the modifiers joined with "+".
func (m Modifier) String() string {
	if m == ModNone {
		return "None"
	}
	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	return strings.Join(parts, "+")
}
