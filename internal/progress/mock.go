package progress

import (
	"context"
	"sync"

	"github.com/puzzlehut/daily-widget/internal/games"
	"github.com/puzzlehut/daily-widget/internal/identity"
)

// MockStore is a mock implementation of Store for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	FetchCompletedGamesFunc func(ctx context.Context, session identity.Session, game games.Game) ([]string, error)
	MarkGameAsCompletedFunc func(ctx context.Context, session identity.Session, game games.Game, gameDate string) error

	// Call records
	FetchCompletedGamesCalls []FetchCall
	MarkGameAsCompletedCalls []MarkCall

	completed map[string][]string
}

// FetchCall holds the arguments for a call to FetchCompletedGames.
type FetchCall struct {
	Session identity.Session
	Game    games.Game
}

// MarkCall holds the arguments for a call to MarkGameAsCompleted.
type MarkCall struct {
	Session  identity.Session
	Game     games.Game
	GameDate string
}

// NewMock creates a new mock Store.
func NewMock() *MockStore {
	return &MockStore{completed: make(map[string][]string)}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchCompletedGamesCalls = nil
	m.MarkGameAsCompletedCalls = nil
	m.completed = make(map[string][]string)
}

func (m *MockStore) FetchCompletedGames(ctx context.Context, session identity.Session, game games.Game) ([]string, error) {
	m.mu.Lock()
	m.FetchCompletedGamesCalls = append(m.FetchCompletedGamesCalls, FetchCall{Session: session, Game: game})
	fn := m.FetchCompletedGamesFunc
	dates := m.completed[cacheKey(session, game)]
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, session, game)
	}
	return dates, nil
}

func (m *MockStore) MarkGameAsCompleted(ctx context.Context, session identity.Session, game games.Game, gameDate string) error {
	m.mu.Lock()
	m.MarkGameAsCompletedCalls = append(m.MarkGameAsCompletedCalls, MarkCall{Session: session, Game: game, GameDate: gameDate})
	key := cacheKey(session, game)
	if !contains(m.completed[key], gameDate) {
		m.completed[key] = append(m.completed[key], gameDate)
	}
	fn := m.MarkGameAsCompletedFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, session, game, gameDate)
	}
	return nil
}

func (m *MockStore) IsGameCompleted(session identity.Session, game games.Game, gameDate string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return contains(m.completed[cacheKey(session, game)], gameDate)
}

func (m *MockStore) CompletedGames(session identity.Session, game games.Game) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.completed[cacheKey(session, game)]...)
}

func (m *MockStore) StateFor(session identity.Session, game games.Game) LoadState {
	return StateReady
}
