package notifier

import (
	"sync"

	"github.com/puzzlehut/daily-widget/internal/games"
	"github.com/puzzlehut/daily-widget/internal/leaderboard"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	SendLeaderboardDigestFunc func(entries []leaderboard.Entry, game games.Game, date string, dryRun bool) error

	// Call records
	SendLeaderboardDigestCalls []DigestCall
}

// DigestCall holds the arguments for a call to SendLeaderboardDigest.
type DigestCall struct {
	Entries []leaderboard.Entry
	Game    games.Game
	Date    string
	DryRun  bool
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardDigestCalls = nil
}

func (m *Mock) SendLeaderboardDigest(entries []leaderboard.Entry, game games.Game, date string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardDigestCalls = append(m.SendLeaderboardDigestCalls, DigestCall{Entries: entries, Game: game, Date: date, DryRun: dryRun})
	if m.SendLeaderboardDigestFunc != nil {
		return m.SendLeaderboardDigestFunc(entries, game, date, dryRun)
	}
	return nil
}
