package progress

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/puzzlehut/daily-widget/internal/games"
	"github.com/puzzlehut/daily-widget/internal/identity"
)

// New creates a new progress Store.
func New(db *sql.DB) Store {
	return &store{
		db:        db,
		completed: make(map[string][]string),
		state:     make(map[string]LoadState),
	}
}

// cacheKey namespaces the cached set per (actor, game). Anonymous actors use
// the guest storage key; authenticated ones the progress collection plus
// user id, so nothing leaks between the two.
func cacheKey(session identity.Session, game games.Game) string {
	cfg := games.ConfigFor(game)
	if session.IsAnonymous() {
		return cfg.GuestStorageKey
	}
	return cfg.ProgressCollection + "/" + session.UserID
}

func (s *store) FetchCompletedGames(ctx context.Context, session identity.Session, game games.Game) ([]string, error) {
	key := cacheKey(session, game)
	s.setState(key, StateLoading)

	if session.IsAnonymous() {
		dates, err := s.fetchGuest(ctx, game)
		if err != nil {
			s.setState(key, StateUnknown)
			return nil, err
		}
		s.setCompleted(key, dates)
		return dates, nil
	}

	dates, err := s.fetchRemote(ctx, session, game)
	if err != nil {
		// Fail open: gameplay is never blocked on a progress read.
		log.Error("Error fetching completed games", "error", err, "game", game, "userID", session.UserID)
		dates = []string{}
	}
	s.setCompleted(key, dates)
	return dates, nil
}

func (s *store) MarkGameAsCompleted(ctx context.Context, session identity.Session, game games.Game, gameDate string) error {
	key := cacheKey(session, game)

	if session.IsAnonymous() {
		dates, err := s.markGuest(ctx, game, gameDate)
		if err != nil {
			return err
		}
		s.setCompleted(key, dates)
		return nil
	}

	if err := s.markRemote(ctx, session, game, gameDate); err != nil {
		// Logged only: no retry, no user-visible error.
		log.Error("Error marking game as completed", "error", err, "game", game, "userID", session.UserID)
		return nil
	}
	s.appendCompleted(key, gameDate)
	return nil
}

func (s *store) IsGameCompleted(session identity.Session, game games.Game, gameDate string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.completed[cacheKey(session, game)] {
		if d == gameDate {
			return true
		}
	}
	return false
}

func (s *store) CompletedGames(session identity.Session, game games.Game) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dates := s.completed[cacheKey(session, game)]
	out := make([]string, len(dates))
	copy(out, dates)
	return out
}

func (s *store) StateFor(session identity.Session, game games.Game) LoadState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if state, ok := s.state[cacheKey(session, game)]; ok {
		return state
	}
	return StateUnknown
}

func (s *store) fetchGuest(ctx context.Context, game games.Game) ([]string, error) {
	cfg := games.ConfigFor(game)
	var completedJSON string
	err := s.db.QueryRowContext(ctx, "SELECT completed_json FROM guest_progress WHERE storage_key = ?", cfg.GuestStorageKey).Scan(&completedJSON)
	if err == sql.ErrNoRows {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeDates(completedJSON), nil
}

func (s *store) markGuest(ctx context.Context, game games.Game, gameDate string) ([]string, error) {
	cfg := games.ConfigFor(game)
	dates, err := s.fetchGuest(ctx, game)
	if err != nil {
		return nil, err
	}
	if contains(dates, gameDate) {
		return dates, nil
	}
	dates = append(dates, gameDate)

	completedJSON, err := json.Marshal(dates)
	if err != nil {
		return nil, err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO guest_progress (storage_key, completed_json)
		VALUES (?, ?)
		ON CONFLICT(storage_key) DO UPDATE SET
			completed_json = excluded.completed_json;
	`, cfg.GuestStorageKey, string(completedJSON))
	if err != nil {
		return nil, err
	}
	return dates, nil
}

func (s *store) fetchRemote(ctx context.Context, session identity.Session, game games.Game) ([]string, error) {
	cfg := games.ConfigFor(game)
	var completedJSON string
	err := s.db.QueryRowContext(ctx, "SELECT completed_json FROM progress WHERE game = ? AND user_id = ?", cfg.ProgressCollection, session.UserID).Scan(&completedJSON)
	if err == sql.ErrNoRows {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeDates(completedJSON), nil
}

func (s *store) markRemote(ctx context.Context, session identity.Session, game games.Game, gameDate string) error {
	cfg := games.ConfigFor(game)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	var completedJSON string
	dates := []string{}
	err = tx.QueryRowContext(ctx, "SELECT completed_json FROM progress WHERE game = ? AND user_id = ?", cfg.ProgressCollection, session.UserID).Scan(&completedJSON)
	switch {
	case err == sql.ErrNoRows:
		// First completion for this (user, game): the document is created.
	case err != nil:
		tx.Rollback()
		return err
	default:
		dates = decodeDates(completedJSON)
	}

	if contains(dates, gameDate) {
		// Already marked; the set only grows.
		return tx.Commit()
	}
	dates = append(dates, gameDate)

	updatedJSON, err := json.Marshal(dates)
	if err != nil {
		tx.Rollback()
		return err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO progress (game, user_id, completed_json, last_updated)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(game, user_id) DO UPDATE SET
			completed_json = excluded.completed_json,
			last_updated = excluded.last_updated;
	`, cfg.ProgressCollection, session.UserID, string(updatedJSON), time.Now().Unix())
	if err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *store) setState(key string, state LoadState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state[key] = state
}

func (s *store) setCompleted(key string, dates []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completed[key] = dates
	s.state[key] = StateReady
}

func (s *store) appendCompleted(key string, gameDate string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !contains(s.completed[key], gameDate) {
		s.completed[key] = append(s.completed[key], gameDate)
	}
}

func decodeDates(completedJSON string) []string {
	var dates []string
	if completedJSON == "" {
		return []string{}
	}
	if err := json.Unmarshal([]byte(completedJSON), &dates); err != nil {
		log.Error("Failed to unmarshal completed_json", "error", err)
		return []string{}
	}
	return dates
}

func contains(dates []string, date string) bool {
	for _, d := range dates {
		if d == date {
			return true
		}
	}
	return false
}
