// Package debug provides an env-gated file logger. A TUI owns the
// terminal, so it cannot log to stdout or stderr; when the STRATA_DEBUG
// environment variable names a file path, log lines are appended there
// instead. With the variable unset, logging is a no-op.
package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	mu      sync.Mutex
	logFile *os.File
)

// Init opens the log file named by STRATA_DEBUG. Called automatically by
// the runtime; calling it again is harmless. Returns an error only when
// the variable is set but the file cannot be opened.
func Init() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		return nil
	}

	path := os.Getenv("STRATA_DEBUG")
	if path == "" {
		return nil
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open debug log: %w", err)
	}
	logFile = f
	return nil
}

// Enabled reports whether logging is active.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return logFile != nil
}

// Log writes one timestamped line to the log file. A no-op when logging
// is disabled.
func Log(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if logFile == nil {
		return
	}

	timestamp := time.Now().Format("15:04:05.000")
	fmt.Fprintf(logFile, "[%s] %s\n", timestamp, fmt.Sprintf(format, args...))
	logFile.Sync()
}

// Close closes the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}
