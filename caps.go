package strata

import (
	"os"
	"strings"
)

// ColorCapability describes the level of color support in a terminal.
type ColorCapability int

const (
	// ColorNone indicates a monochrome terminal with no color support.
	ColorNone ColorCapability = iota
	// Color16 indicates basic 16-color support (ANSI standard colors).
	Color16
	// Color256 indicates ANSI 256 palette support.
	Color256
	// ColorTrue indicates 24-bit true color (RGB) support.
	ColorTrue
)

// Capabilities describes what features the terminal supports. The runtime
// detects them once at startup and downconverts every emitted color to the
// detected level.
type Capabilities struct {
	// Colors indicates the level of color support.
	Colors ColorCapability
	// Unicode indicates whether the terminal can render Unicode characters.
	Unicode bool
	// AltScreen indicates whether the terminal supports the alternate
	// screen buffer.
	AltScreen bool
}

// DetectCapabilities determines terminal capabilities from environment
// variables. Returns conservative defaults when detection fails.
func DetectCapabilities() Capabilities {
	caps := Capabilities{
		Colors:    Color16, // Safe default for most terminals
		Unicode:   true,    // Assume modern terminal
		AltScreen: true,
	}

	// Explicit true color indicators override everything else.
	colorterm := strings.ToLower(os.Getenv("COLORTERM"))
	if colorterm == "truecolor" || colorterm == "24bit" {
		caps.Colors = ColorTrue
		return caps
	}

	// Terminal emulators known to support true color.
	for _, v := range []string{
		"WT_SESSION",       // Windows Terminal
		"ITERM_SESSION_ID", // iTerm2
		"KITTY_WINDOW_ID",  // Kitty
		"KONSOLE_VERSION",  // Konsole
		"VTE_VERSION",      // VTE-based (GNOME Terminal, Tilix, ...)
	} {
		if os.Getenv(v) != "" {
			caps.Colors = ColorTrue
			return caps
		}
	}

	term := strings.ToLower(os.Getenv("TERM"))
	switch {
	case term == "dumb":
		caps.Colors = ColorNone
		caps.Unicode = false
		caps.AltScreen = false
	case strings.Contains(term, "truecolor"):
		caps.Colors = ColorTrue
	case strings.Contains(term, "256color"):
		caps.Colors = Color256
	}

	return caps
}

// String returns a human-readable description of the capabilities.
func (c Capabilities) String() string {
	var parts []string

	switch c.Colors {
	case ColorNone:
		parts = append(parts, "no-color")
	case Color16:
		parts = append(parts, "16-color")
	case Color256:
		parts = append(parts, "256-color")
	case ColorTrue:
		parts = append(parts, "true-color")
	}

	if c.Unicode {
		parts = append(parts, "unicode")
	} else {
		parts = append(parts, "ascii")
	}

	if c.AltScreen {
		parts = append(parts, "altscreen")
	}

	return strings.Join(parts, ", ")
}
