package strata

import "time"

// MockEventReader is an EventReader for tests: it returns scripted
// events in order and reports timeouts once they run out.
type MockEventReader struct {
	events []Event
	index  int
	closed bool
}

var _ EventReader = (*MockEventReader)(nil)

// NewMockEventReader creates a reader that yields the given events in
// order from successive PollEvent calls.
func NewMockEventReader(events ...Event) *MockEventReader {
	return &MockEventReader{events: events}
}

// PollEvent returns the next scripted event, ignoring the timeout.
// Returns (nil, false) when the script is exhausted.
func (m *MockEventReader) PollEvent(timeout time.Duration) (Event, bool) {
	if m.index >= len(m.events) {
		return nil, false
	}
	ev := m.events[m.index]
	m.index++
	return ev, true
}

// Close marks the reader closed.
func (m *MockEventReader) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockEventReader) Closed() bool { return m.closed }

// AddEvents appends more events to the script.
func (m *MockEventReader) AddEvents(events ...Event) {
	m.events = append(m.events, events...)
}

// Remaining returns the number of events not yet returned.
func (m *MockEventReader) Remaining() int {
	return len(m.events) - m.index
}
