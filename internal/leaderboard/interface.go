package leaderboard

import (
	"context"

	"github.com/puzzlehut/daily-widget/internal/events"
	"github.com/puzzlehut/daily-widget/internal/games"
)

// Service fetches ranked leaderboards and records new scores.
type Service interface {
	// FetchLeaderboardForDate returns the top entries for (game, date),
	// ordered by the game's sort key, and publishes LeaderboardData. Any
	// fetch error empties the visible leaderboard and sticks until the next
	// successful fetch.
	FetchLeaderboardForDate(ctx context.Context, date string, game games.Game) ([]Entry, error)
	// SubmitScore inserts a new entry unless one already exists for
	// (user, date, game): first writer wins, later submissions are no-ops.
	SubmitScore(ctx context.Context, userID, displayName string, stats events.Stats, puzzleDate string, game games.Game) error
	// GetUserRank returns the 1-based position of the user's entry in the
	// full ordered set, or (0, nil, nil) when the user has no entry.
	GetUserRank(ctx context.Context, userID, puzzleDate string, game games.Game) (int, *Entry, error)
	// Current returns the view from the last fetch.
	Current() ([]Entry, string)
	// Err returns the sticky error from the last failed operation.
	Err() error
}
