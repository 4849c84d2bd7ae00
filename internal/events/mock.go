package events

import (
	"sync"
)

// MockBus is a mock implementation of Bus for testing.
// It records publishes without dispatching them. It is safe for concurrent use.
type MockBus struct {
	mu sync.Mutex

	// Spies for method calls
	PublishFunc func(t Type, payload any) error

	// Call records
	PublishCalls   []PublishCall
	SubscribeCalls []Type
}

// PublishCall holds the arguments for a call to Publish.
type PublishCall struct {
	Type    Type
	Payload any
}

// NewMock creates a new mock Bus.
func NewMock() *MockBus {
	return &MockBus{}
}

// Reset clears all call records.
func (m *MockBus) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishCalls = nil
	m.SubscribeCalls = nil
}

// Publish records the call and executes the mock function if provided.
func (m *MockBus) Publish(t Type, payload any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishCalls = append(m.PublishCalls, PublishCall{Type: t, Payload: payload})
	if m.PublishFunc != nil {
		return m.PublishFunc(t, payload)
	}
	return nil
}

// Subscribe records the topic and returns a dummy subscription.
func (m *MockBus) Subscribe(t Type, h Handler) Subscription {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SubscribeCalls = append(m.SubscribeCalls, t)
	return Subscription(len(m.SubscribeCalls))
}

// Unsubscribe is a no-op.
func (m *MockBus) Unsubscribe(sub Subscription) {}

// PublishedOfType returns the recorded publishes matching t.
func (m *MockBus) PublishedOfType(t Type) []PublishCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	var calls []PublishCall
	for _, c := range m.PublishCalls {
		if c.Type == t {
			calls = append(calls, c)
		}
	}
	return calls
}
