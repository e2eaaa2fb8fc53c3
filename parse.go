package strata

import "unicode/utf8"

// incompleteSeq is the consumed-count sentinel for a sequence that ran
// out of bytes before its final byte. The reader holds the tail back and
// retries once more input arrives.
const incompleteSeq = -1

// parseInput decodes buffered terminal input into events and returns any
// incomplete trailing bytes to carry into the next read. Handles:
//   - printable characters, including multi-byte UTF-8 -> KeyEvent{KeyRune}
//   - control bytes (0x00-0x1F, 0x7F) -> the matching special key
//   - CSI sequences (ESC [ ...) -> arrows, function keys, with modifiers
//   - SS3 sequences (ESC O ...) -> F1-F4, arrows on some terminals
//   - Alt+key (ESC + printable) -> KeyRune with ModAlt
//   - SGR-1006 mouse reports (ESC [ < b;x;y M/m) -> MouseEvent
func parseInput(data []byte) ([]Event, []byte) {
	var events []Event
	i := 0

	for i < len(data) {
		b := data[i]

		if b == 0x1b {
			if i+1 >= len(data) {
				// Lone escape at the end of a read is the Escape key: a
				// split sequence would have delivered at least one more
				// byte in the same flight.
				events = append(events, KeyEvent{Key: KeyEscape})
				i++
				continue
			}

			next := data[i+1]
			switch next {
			case '[':
				if i+2 >= len(data) {
					return events, data[i:]
				}
				if data[i+2] == '<' {
					ev, consumed := parseMouseSGR(data[i:])
					if consumed == incompleteSeq {
						return events, data[i:]
					}
					if consumed > 0 {
						events = append(events, ev)
						i += consumed
						continue
					}
				}
				key, mod, consumed := parseCSISequence(data[i:])
				if consumed == incompleteSeq {
					return events, data[i:]
				}
				if consumed > 0 {
					if key != KeyNone {
						events = append(events, KeyEvent{Key: key, Mod: mod})
					}
					i += consumed
					continue
				}
				// Malformed sequence: fall back to the Escape key.
				events = append(events, KeyEvent{Key: KeyEscape})
				i++
				continue

			case 'O':
				if i+2 >= len(data) {
					return events, data[i:]
				}
				if key := parseSS3(data[i+2]); key != KeyNone {
					events = append(events, KeyEvent{Key: key})
					i += 3
					continue
				}
				events = append(events, KeyEvent{Key: KeyEscape})
				i++
				continue

			default:
				// Alt+key combination.
				if next >= 0x20 && next < 0x7f {
					events = append(events, KeyEvent{Key: KeyRune, Rune: rune(next), Mod: ModAlt})
					i += 2
					continue
				}
				events = append(events, KeyEvent{Key: KeyEscape})
				i++
				continue
			}
		}

		// Control characters (0x1b handled above).
		if b < 0x20 {
			events = append(events, KeyEvent{Key: controlToKey(b)})
			i++
			continue
		}

		// DEL is backspace on most terminals.
		if b == 0x7f {
			events = append(events, KeyEvent{Key: KeyBackspace})
			i++
			continue
		}

		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			if !utf8.FullRune(data[i:]) && len(data)-i < utf8.UTFMax {
				// Incomplete rune at the end of the read; wait for more.
				return events, data[i:]
			}
			// Genuinely invalid byte, drop it.
			i++
			continue
		}
		events = append(events, KeyEvent{Key: KeyRune, Rune: r})
		i += size
	}

	return events, nil
}

// controlToKey converts a control byte (0x00-0x1F) to its Key.
func controlToKey(b byte) Key {
	switch b {
	case 0x00:
		return KeyCtrlSpace
	case 0x08: // Ctrl+H doubles as backspace
		return KeyBackspace
	case 0x09:
		return KeyTab
	case 0x0d:
		return KeyEnter
	case 0x1b:
		return KeyEscape
	}
	if b >= 0x01 && b <= 0x1a {
		return KeyCtrlA + Key(b-0x01)
	}
	return KeyNone
}

// parseCSISequence parses a CSI escape sequence starting at data[0].
// Returns the key, modifier, and bytes consumed: 0 when malformed,
// incompleteSeq when the final byte has not arrived yet.
func parseCSISequence(data []byte) (Key, Modifier, int) {
	if len(data) < 3 || data[0] != 0x1b || data[1] != '[' {
		return KeyNone, ModNone, 0
	}

	var params []int
	currentParam := 0
	hasParam := false
	i := 2

	for i < len(data) {
		b := data[i]

		if b >= '0' && b <= '9' {
			currentParam = currentParam*10 + int(b-'0')
			hasParam = true
			i++
			continue
		}

		if b == ';' {
			params = append(params, currentParam)
			currentParam = 0
			hasParam = false
			i++
			continue
		}

		// Final byte selects the key.
		if b >= 0x40 && b <= 0x7e {
			if hasParam {
				params = append(params, currentParam)
			}
			key, mod := csiKey(params, b)
			return key, mod, i + 1
		}

		return KeyNone, ModNone, 0
	}

	return KeyNone, ModNone, incompleteSeq
}

// csiKey maps a complete CSI sequence (parameters plus final byte) to a key.
func csiKey(params []int, final byte) (Key, Modifier) {
	mod := ModNone

	// xterm modifier encoding: CSI 1;mod X
	if len(params) >= 2 {
		mod = decodeModifier(params[1])
	}

	switch final {
	case 'A':
		return KeyUp, mod
	case 'B':
		return KeyDown, mod
	case 'C':
		return KeyRight, mod
	case 'D':
		return KeyLeft, mod
	case 'H':
		return KeyHome, mod
	case 'F':
		return KeyEnd, mod
	case 'P':
		return KeyF1, mod
	case 'Q':
		return KeyF2, mod
	case 'R':
		return KeyF3, mod
	case 'S':
		return KeyF4, mod
	case 'Z':
		// Backtab.
		return KeyTab, ModShift
	case '~':
		if len(params) == 0 {
			return KeyNone, ModNone
		}
		switch params[0] {
		case 1:
			return KeyHome, mod
		case 2:
			return KeyInsert, mod
		case 3:
			return KeyDelete, mod
		case 4:
			return KeyEnd, mod
		case 5:
			return KeyPageUp, mod
		case 6:
			return KeyPageDown, mod
		case 11:
			return KeyF1, mod
		case 12:
			return KeyF2, mod
		case 13:
			return KeyF3, mod
		case 14:
			return KeyF4, mod
		case 15:
			return KeyF5, mod
		case 17:
			return KeyF6, mod
		case 18:
			return KeyF7, mod
		case 19:
			return KeyF8, mod
		case 20:
			return KeyF9, mod
		case 21:
			return KeyF10, mod
		case 23:
			return KeyF11, mod
		case 24:
			return KeyF12, mod
		}
	}

	return KeyNone, ModNone
}

// parseSS3 maps an SS3 final byte to a key.
func parseSS3(b byte) Key {
	switch b {
	case 'P':
		return KeyF1
	case 'Q':
		return KeyF2
	case 'R':
		return KeyF3
	case 'S':
		return KeyF4
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	case 'C':
		return KeyRight
	case 'D':
		return KeyLeft
	case 'H':
		return KeyHome
	case 'F':
		return KeyEnd
	}
	return KeyNone
}

// decodeModifier decodes the xterm modifier parameter:
// 1 + (shift ? 1 : 0) + (alt ? 2 : 0) + (ctrl ? 4 : 0).
func decodeModifier(param int) Modifier {
	if param <= 1 {
		return ModNone
	}
	flags := param - 1
	var mod Modifier
	if flags&1 != 0 {
		mod |= ModShift
	}
	if flags&2 != 0 {
		mod |= ModAlt
	}
	if flags&4 != 0 {
		mod |= ModCtrl
	}
	return mod
}

// parseMouseSGR parses an SGR-1006 mouse report:
// ESC [ < button ; x ; y M (press) or m (release). The button field packs
// the button number with modifier, motion, and wheel bits. Returns bytes
// consumed: 0 when malformed, incompleteSeq when cut short.
func parseMouseSGR(data []byte) (MouseEvent, int) {
	if len(data) < 3 || data[0] != 0x1b || data[1] != '[' || data[2] != '<' {
		return MouseEvent{}, 0
	}

	i := 3
	button, x, y := 0, 0, 0
	stage := 0 // 0=button, 1=x, 2=y

	for i < len(data) {
		b := data[i]

		if b >= '0' && b <= '9' {
			switch stage {
			case 0:
				button = button*10 + int(b-'0')
			case 1:
				x = x*10 + int(b-'0')
			case 2:
				y = y*10 + int(b-'0')
			}
			i++
			continue
		}

		if b == ';' {
			stage++
			if stage > 2 {
				return MouseEvent{}, 0
			}
			i++
			continue
		}

		if b == 'M' || b == 'm' {
			if stage != 2 {
				return MouseEvent{}, 0
			}

			event := MouseEvent{
				X: x - 1, // 1-indexed on the wire
				Y: y - 1,
			}

			if button&4 != 0 {
				event.Mod |= ModShift
			}
			if button&8 != 0 {
				event.Mod |= ModAlt
			}
			if button&16 != 0 {
				event.Mod |= ModCtrl
			}

			if button&64 != 0 {
				// Wheel events are instantaneous presses.
				if button&1 != 0 {
					event.Button = MouseWheelDown
				} else {
					event.Button = MouseWheelUp
				}
				event.Action = MousePress
			} else {
				switch button & 3 {
				case 0:
					event.Button = MouseLeft
				case 1:
					event.Button = MouseMiddle
				case 2:
					event.Button = MouseRight
				case 3:
					event.Button = MouseNone
				}

				if button&32 != 0 {
					event.Action = MouseDrag
				} else if b == 'M' {
					event.Action = MousePress
				} else {
					event.Action = MouseRelease
				}
			}

			return event, i + 1
		}

		return MouseEvent{}, 0
	}

	return MouseEvent{}, incompleteSeq
}
