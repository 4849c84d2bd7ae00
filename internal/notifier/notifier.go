package notifier

import (
	"github.com/puzzlehut/daily-widget/internal/games"
	"github.com/puzzlehut/daily-widget/internal/leaderboard"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// SendLeaderboardDigest posts the day's top entries for a game.
	SendLeaderboardDigest(entries []leaderboard.Entry, game games.Game, date string, dryRun bool) error
}
