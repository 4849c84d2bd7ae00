package progress

import (
	"context"

	"github.com/puzzlehut/daily-widget/internal/games"
	"github.com/puzzlehut/daily-widget/internal/identity"
)

// Store resolves and records game completion for the current actor.
type Store interface {
	// FetchCompletedGames loads the completed-date set for (actor, game).
	// Remote read failures are swallowed into an empty, ready set.
	FetchCompletedGames(ctx context.Context, session identity.Session, game games.Game) ([]string, error)
	// MarkGameAsCompleted appends a date to the set. Idempotent; a date, once
	// marked, is never unmarked. Remote write failures are logged only.
	MarkGameAsCompleted(ctx context.Context, session identity.Session, game games.Game, gameDate string) error
	// IsGameCompleted answers from the last-fetched set.
	IsGameCompleted(session identity.Session, game games.Game, gameDate string) bool
	// CompletedGames returns the last-fetched set without touching storage.
	CompletedGames(session identity.Session, game games.Game) []string
	// StateFor reports the load state for (actor, game).
	StateFor(session identity.Session, game games.Game) LoadState
}
