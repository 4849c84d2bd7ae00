package leaderboard

import (
	"context"
	"sync"

	"github.com/puzzlehut/daily-widget/internal/events"
	"github.com/puzzlehut/daily-widget/internal/games"
)

// MockService is a mock implementation of Service for testing.
// It is safe for concurrent use.
type MockService struct {
	mu sync.Mutex

	// Spies for method calls
	FetchLeaderboardForDateFunc func(ctx context.Context, date string, game games.Game) ([]Entry, error)
	SubmitScoreFunc             func(ctx context.Context, userID, displayName string, stats events.Stats, puzzleDate string, game games.Game) error
	GetUserRankFunc             func(ctx context.Context, userID, puzzleDate string, game games.Game) (int, *Entry, error)

	// Call records
	FetchCalls  []FetchLeaderboardCall
	SubmitCalls []SubmitScoreCall
	RankCalls   []GetUserRankCall
}

// FetchLeaderboardCall holds the arguments for a call to FetchLeaderboardForDate.
type FetchLeaderboardCall struct {
	Date string
	Game games.Game
}

// SubmitScoreCall holds the arguments for a call to SubmitScore.
type SubmitScoreCall struct {
	UserID      string
	DisplayName string
	Stats       events.Stats
	PuzzleDate  string
	Game        games.Game
}

// GetUserRankCall holds the arguments for a call to GetUserRank.
type GetUserRankCall struct {
	UserID     string
	PuzzleDate string
	Game       games.Game
}

// NewMock creates a new mock Service.
func NewMock() *MockService {
	return &MockService{}
}

// Reset clears all call records.
func (m *MockService) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchCalls = nil
	m.SubmitCalls = nil
	m.RankCalls = nil
}

func (m *MockService) FetchLeaderboardForDate(ctx context.Context, date string, game games.Game) ([]Entry, error) {
	m.mu.Lock()
	m.FetchCalls = append(m.FetchCalls, FetchLeaderboardCall{Date: date, Game: game})
	fn := m.FetchLeaderboardForDateFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, date, game)
	}
	return []Entry{}, nil
}

func (m *MockService) SubmitScore(ctx context.Context, userID, displayName string, stats events.Stats, puzzleDate string, game games.Game) error {
	m.mu.Lock()
	m.SubmitCalls = append(m.SubmitCalls, SubmitScoreCall{UserID: userID, DisplayName: displayName, Stats: stats, PuzzleDate: puzzleDate, Game: game})
	fn := m.SubmitScoreFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, userID, displayName, stats, puzzleDate, game)
	}
	return nil
}

func (m *MockService) GetUserRank(ctx context.Context, userID, puzzleDate string, game games.Game) (int, *Entry, error) {
	m.mu.Lock()
	m.RankCalls = append(m.RankCalls, GetUserRankCall{UserID: userID, PuzzleDate: puzzleDate, Game: game})
	fn := m.GetUserRankFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, userID, puzzleDate, game)
	}
	return 0, nil, nil
}

func (m *MockService) Current() ([]Entry, string) {
	return []Entry{}, ""
}

func (m *MockService) Err() error {
	return nil
}
