package strata

import (
	"time"
)

// EventReader produces decoded input events from the terminal. The
// runtime polls it with a short timeout so the signal latches are checked
// between reads; it never blocks indefinitely.
type EventReader interface {
	// PollEvent waits up to timeout for the next event. Returns
	// (event, true) when one was read and (nil, false) on timeout.
	PollEvent(timeout time.Duration) (Event, bool)

	// Close releases resources. Must be called when done.
	Close() error
}

// inputReader reads raw bytes from a terminal file descriptor and decodes
// them into key and mouse events. Escape sequences and UTF-8 runes split
// across reads are buffered until complete.
type inputReader struct {
	fd      int
	buf     []byte
	partial []byte
	pending []Event
}

var _ EventReader = (*inputReader)(nil)

// newInputReader creates an EventReader over the given file descriptor.
// The terminal should already be in raw mode.
func newInputReader(fd int) *inputReader {
	return &inputReader{
		fd:  fd,
		buf: make([]byte, 256),
	}
}

// PollEvent returns the next decoded event, reading more bytes when the
// pending queue is empty. A timeout or interrupted read yields (nil, false).
func (r *inputReader) PollEvent(timeout time.Duration) (Event, bool) {
	if ev, ok := r.popPending(); ok {
		return ev, true
	}

	ready, err := waitReadable(r.fd, timeout)
	if err != nil || !ready {
		return nil, false
	}

	n, err := readFd(r.fd, r.buf)
	if err != nil || n == 0 {
		return nil, false
	}

	data := r.buf[:n]
	if len(r.partial) > 0 {
		data = append(r.partial, data...)
		r.partial = nil
	}

	events, remainder := parseInput(data)
	if len(remainder) > 0 {
		r.partial = append([]byte(nil), remainder...)
	}
	r.pending = events

	return r.popPending()
}

func (r *inputReader) popPending() (Event, bool) {
	if len(r.pending) == 0 {
		return nil, false
	}
	ev := r.pending[0]
	r.pending = r.pending[1:]
	return ev, true
}

// Close releases resources. The fd belongs to the Terminal, so there is
// nothing to tear down here.
func (r *inputReader) Close() error {
	return nil
}
