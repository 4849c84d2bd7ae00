package events

import "github.com/puzzlehut/daily-widget/internal/games"

// Type names one of the signals exchanged between the host application and
// the widget. The catalog is closed: hosts and widgets only ever agree on
// these names, never on shared struct types.
type Type string

const (
	// Host -> widget
	ShowAuthModal       Type = "show-auth-modal"
	ShowLeaderboard     Type = "show-leaderboard"
	SubmitScore         Type = "submit-score"
	FetchLeaderboard    Type = "fetch-leaderboard"
	FetchCompletedGames Type = "fetch-completed-games"
	GameCompleted       Type = "game-completed"

	// Widget -> host
	AuthStateChanged      Type = "auth-state-changed"
	LeaderboardData       Type = "leaderboard-data"
	CompletedGamesUpdated Type = "completed-games-updated"
)

// Event is the envelope carried over the bus. Payloads travel as MessagePack
// blobs so the two sides stay loosely coupled.
type Event struct {
	Type Type
	Data []byte
}

// Handler receives events synchronously on the publisher's goroutine.
type Handler func(Event)

// Subscription identifies a registered handler so it can be removed.
type Subscription int

// User mirrors the identity fields the host page is shown on auth transitions.
type User struct {
	UID         string `msgpack:"uid" json:"uid"`
	Email       string `msgpack:"email" json:"email"`
	DisplayName string `msgpack:"displayName" json:"displayName"`
}

// AuthStatePayload is carried by AuthStateChanged. User is nil when the
// session is anonymous.
type AuthStatePayload struct {
	User *User `msgpack:"user"`
}

// Stats are the game-specific metrics attached to a score submission.
type Stats struct {
	Moves     int   `msgpack:"moves"`
	HintsUsed int   `msgpack:"hintsUsed"`
	TotalTime int64 `msgpack:"totalTime"`
	Score     int   `msgpack:"score"`
}

// SubmitScorePayload is carried by SubmitScore.
type SubmitScorePayload struct {
	DisplayName string     `msgpack:"displayName"`
	Stats       Stats      `msgpack:"gameStats"`
	PuzzleDate  string     `msgpack:"puzzleDate"`
	Game        games.Game `msgpack:"game"`
}

// FetchLeaderboardPayload is carried by FetchLeaderboard.
type FetchLeaderboardPayload struct {
	Date string     `msgpack:"date"`
	Game games.Game `msgpack:"game"`
}

// EntryPayload is one ranked leaderboard row as shown to the host.
type EntryPayload struct {
	ID          string `msgpack:"id"`
	UserID      string `msgpack:"userId"`
	DisplayName string `msgpack:"displayName"`
	PuzzleDate  string `msgpack:"puzzleDate"`
	Moves       int    `msgpack:"moves"`
	HintsUsed   int    `msgpack:"hintsUsed"`
	TotalTime   int64  `msgpack:"totalTime"`
	Score       int    `msgpack:"score"`
	CompletedAt int64  `msgpack:"completedAt"`
}

// LeaderboardDataPayload is carried by LeaderboardData, once per query.
type LeaderboardDataPayload struct {
	Entries     []EntryPayload `msgpack:"entries"`
	CurrentDate string         `msgpack:"currentDate"`
	Game        games.Game     `msgpack:"game"`
}

// FetchCompletedGamesPayload is carried by FetchCompletedGames.
type FetchCompletedGamesPayload struct {
	Game games.Game `msgpack:"game"`
}

// CompletedGamesPayload is carried by CompletedGamesUpdated.
type CompletedGamesPayload struct {
	CompletedGames []string   `msgpack:"completedGames"`
	Game           games.Game `msgpack:"game"`
}

// GameCompletedPayload is carried by GameCompleted.
type GameCompletedPayload struct {
	Date string     `msgpack:"gameDate"`
	Game games.Game `msgpack:"game"`
}
