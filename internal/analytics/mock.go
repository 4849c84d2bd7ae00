package analytics

import "sync"

// MockTracker is a mock implementation of Tracker for testing.
// It is safe for concurrent use.
type MockTracker struct {
	mu sync.Mutex

	// Spies for method calls
	TrackFunc func(event EventName, properties map[string]any) error

	// Call records
	TrackCalls []TrackCall
}

// TrackCall holds the arguments for a call to Track.
type TrackCall struct {
	Event      EventName
	Properties map[string]any
}

// NewMock creates a new mock Tracker.
func NewMock() *MockTracker {
	return &MockTracker{}
}

// Reset clears all call records.
func (m *MockTracker) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TrackCalls = nil
}

// Track records the call and executes the mock function if provided.
func (m *MockTracker) Track(event EventName, properties map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TrackCalls = append(m.TrackCalls, TrackCall{Event: event, Properties: properties})
	if m.TrackFunc != nil {
		return m.TrackFunc(event, properties)
	}
	return nil
}

// CallsOf returns the recorded calls matching event.
func (m *MockTracker) CallsOf(event EventName) []TrackCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	var calls []TrackCall
	for _, c := range m.TrackCalls {
		if c.Event == event {
			calls = append(calls, c)
		}
	}
	return calls
}
