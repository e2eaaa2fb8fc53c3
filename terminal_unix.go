//go:build unix

package strata

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// getTerminalSize returns the terminal dimensions in cells.
func getTerminalSize(fd int) (width, height int, err error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, fmt.Errorf("query terminal size: %w", err)
	}
	return int(ws.Col), int(ws.Row), nil
}
