package games

import "fmt"

// Game identifies one of the supported puzzle variants. Each game gets its own
// persistence namespaces so progress and leaderboards never mix across games.
type Game string

const (
	Connections           Game = "nfl-connections"
	WordFumble            Game = "nfl-word-fumble"
	PlayerGuessing        Game = "nfl-player-guessing-game"
	DraftProspectGuessing Game = "nfl-draft-prospect-guessing-game"
	NBAPlayerGuessing     Game = "nba-player-guessing-game"
	WWEGuessing           Game = "wwe-guessing-game"
	WordSearch            Game = "nfl-word-search"
)

// All lists every supported game.
var All = []Game{
	Connections,
	WordFumble,
	PlayerGuessing,
	DraftProspectGuessing,
	NBAPlayerGuessing,
	WWEGuessing,
	WordSearch,
}

// SortKey is the leaderboard column a game ranks by.
type SortKey string

const (
	SortByScore     SortKey = "score"      // descending
	SortByTotalTime SortKey = "total_time" // ascending
)

// Config holds the per-game persistence namespaces and ranking rule.
type Config struct {
	ProgressCollection    string
	LeaderboardCollection string
	GuestStorageKey       string
	SortKey               SortKey
}

// ConfigFor returns the configuration for a game. Connections ranks by score
// descending; every other game ranks by elapsed time ascending.
func ConfigFor(game Game) Config {
	sortKey := SortByTotalTime
	if game == Connections {
		sortKey = SortByScore
	}
	return Config{
		ProgressCollection:    fmt.Sprintf("%s-user-progress", game),
		LeaderboardCollection: fmt.Sprintf("%s-leaderboard", game),
		GuestStorageKey:       fmt.Sprintf("%s-guest-completed-games", game),
		SortKey:               sortKey,
	}
}

// Valid reports whether game is part of the supported catalog.
func Valid(game Game) bool {
	for _, g := range All {
		if g == game {
			return true
		}
	}
	return false
}
