package strata

import (
	"fmt"
	"time"
)

// Option configures a Runtime at construction time.
type Option func(*Runtime) error

// WithTerminal injects a Terminal implementation. Tests pass a
// MockTerminal; the default is the process tty.
func WithTerminal(t Terminal) Option {
	return func(rt *Runtime) error {
		if t == nil {
			return fmt.Errorf("with terminal: nil terminal")
		}
		rt.term = t
		return nil
	}
}

// WithReader injects an EventReader. Tests pass a MockEventReader; the
// default reads the terminal's input descriptor.
func WithReader(r EventReader) Option {
	return func(rt *Runtime) error {
		if r == nil {
			return fmt.Errorf("with reader: nil reader")
		}
		rt.reader = r
		return nil
	}
}

// WithScreen injects a virtual screen implementation. The default is a
// vt.Screen sized to the terminal.
func WithScreen(s Screen) Option {
	return func(rt *Runtime) error {
		if s == nil {
			return fmt.Errorf("with screen: nil screen")
		}
		rt.screen = s
		return nil
	}
}

// WithCharset overrides locale-based output charset detection.
func WithCharset(name string) Option {
	return func(rt *Runtime) error {
		if name == "" {
			return fmt.Errorf("with charset: empty name")
		}
		rt.charset = name
		return nil
	}
}

// WithPollInterval sets how long Next waits for input before re-checking
// the resize and exit latches. Shorter intervals observe signals sooner
// at the cost of more wakeups. Default is 50ms.
func WithPollInterval(d time.Duration) Option {
	return func(rt *Runtime) error {
		if d <= 0 {
			return fmt.Errorf("with poll interval: duration must be positive")
		}
		rt.pollInterval = d
		return nil
	}
}

// WithCapabilities overrides terminal capability detection. Use it when
// the environment misreports what the terminal supports, or in tests
// that need deterministic color output.
func WithCapabilities(caps Capabilities) Option {
	return func(rt *Runtime) error {
		rt.capsOverride = &caps
		return nil
	}
}

// WithoutMouse disables mouse reporting. Mouse events are enabled by
// default.
func WithoutMouse() Option {
	return func(rt *Runtime) error {
		rt.mouse = false
		return nil
	}
}
