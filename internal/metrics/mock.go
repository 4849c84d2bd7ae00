package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu               sync.Mutex
	mounts           int
	authTransitions  int
	scoreSubmissions int
	fetchDurations   []float64
	digestSent       int
	digestFailed     int
	startupTime      float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		fetchDurations: make([]float64, 0),
	}
}

func (m *Mock) IncMounts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mounts++
}

func (m *Mock) IncAuthTransitions() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authTransitions++
}

func (m *Mock) IncScoreSubmissions() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scoreSubmissions++
}

func (m *Mock) ObserveLeaderboardFetchDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchDurations = append(m.fetchDurations, duration)
}

func (m *Mock) IncDigestSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.digestSent++
}

func (m *Mock) IncDigestFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.digestFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// Mounts returns the number of times IncMounts was called.
func (m *Mock) Mounts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mounts
}

// AuthTransitions returns the number of times IncAuthTransitions was called.
func (m *Mock) AuthTransitions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authTransitions
}

// ScoreSubmissions returns the number of times IncScoreSubmissions was called.
func (m *Mock) ScoreSubmissions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scoreSubmissions
}

// DigestSent returns the number of times IncDigestSent was called.
func (m *Mock) DigestSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.digestSent
}

// DigestFailed returns the number of times IncDigestFailed was called.
func (m *Mock) DigestFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.digestFailed
}
