package leaderboard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/puzzlehut/daily-widget/internal/events"
	"github.com/puzzlehut/daily-widget/internal/games"
)

// ErrInvalidDate rejects blank puzzle dates before any query runs.
var ErrInvalidDate = errors.New("invalid puzzle date")

// New creates a new leaderboard Service.
func New(db *sql.DB, bus events.Bus) Service {
	return &store{
		db:  db,
		bus: bus,
	}
}

// orderClause builds the ORDER BY for a game's designated sort key: score
// descending for connections, elapsed time ascending for everything else.
func orderClause(game games.Game) string {
	cfg := games.ConfigFor(game)
	if cfg.SortKey == games.SortByScore {
		return "score DESC"
	}
	return "total_time ASC"
}

func (s *store) FetchLeaderboardForDate(ctx context.Context, date string, game games.Game) ([]Entry, error) {
	if strings.TrimSpace(date) == "" {
		s.setError(ErrInvalidDate)
		return nil, ErrInvalidDate
	}

	entries, err := s.query(ctx, date, game, viewLimit)
	if err != nil {
		log.Error("Leaderboard fetch error", "error", err, "game", game, "date", date)
		s.setView(nil, date, fmt.Errorf("failed to load leaderboard: %w", err))
		return nil, err
	}

	s.setView(entries, date, nil)

	payload := events.LeaderboardDataPayload{
		Entries:     make([]events.EntryPayload, 0, len(entries)),
		CurrentDate: date,
		Game:        game,
	}
	for _, e := range entries {
		payload.Entries = append(payload.Entries, events.EntryPayload{
			ID:          e.ID,
			UserID:      e.UserID,
			DisplayName: e.DisplayName,
			PuzzleDate:  e.PuzzleDate,
			Moves:       e.Moves,
			HintsUsed:   e.HintsUsed,
			TotalTime:   e.TotalTime,
			Score:       e.Score,
			CompletedAt: e.CompletedAt.Unix(),
		})
	}
	if err := s.bus.Publish(events.LeaderboardData, payload); err != nil {
		log.Error("Failed to publish leaderboard data", "error", err)
	}
	return entries, nil
}

func (s *store) SubmitScore(ctx context.Context, userID, displayName string, stats events.Stats, puzzleDate string, game games.Game) error {
	cfg := games.ConfigFor(game)

	// Best-effort duplicate suppression: check-then-insert without a storage
	// constraint, so near-simultaneous submissions can still race through.
	var existingID string
	err := s.db.QueryRowContext(ctx, `
		SELECT id FROM leaderboard_entries
		WHERE game = ? AND user_id = ? AND puzzle_date = ?
		LIMIT 1
	`, cfg.LeaderboardCollection, userID, puzzleDate).Scan(&existingID)
	if err == nil {
		log.Debug("Score already submitted", "game", game, "userID", userID, "date", puzzleDate)
		return nil
	}
	if err != sql.ErrNoRows {
		log.Error("Score submission error", "error", err, "game", game, "userID", userID)
		s.setError(fmt.Errorf("failed to submit score: %w", err))
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO leaderboard_entries (id, game, user_id, display_name, puzzle_date, moves, hints_used, total_time, score, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, uuid.NewString(), cfg.LeaderboardCollection, userID, displayName, puzzleDate,
		stats.Moves, stats.HintsUsed, stats.TotalTime, stats.Score, time.Now().Unix())
	if err != nil {
		log.Error("Score submission error", "error", err, "game", game, "userID", userID)
		s.setError(fmt.Errorf("failed to submit score: %w", err))
		return err
	}

	// Refresh the view so the new entry shows up immediately.
	_, err = s.FetchLeaderboardForDate(ctx, puzzleDate, game)
	return err
}

func (s *store) GetUserRank(ctx context.Context, userID, puzzleDate string, game games.Game) (int, *Entry, error) {
	entries, err := s.query(ctx, puzzleDate, game, 0)
	if err != nil {
		log.Error("Get user rank error", "error", err, "game", game, "userID", userID)
		return 0, nil, err
	}
	for i, e := range entries {
		if e.UserID == userID {
			entry := e
			return i + 1, &entry, nil
		}
	}
	return 0, nil, nil
}

func (s *store) Current() ([]Entry, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]Entry, len(s.current))
	copy(entries, s.current)
	return entries, s.currentDate
}

func (s *store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// query fetches the ordered entries for (game, date); limit <= 0 means all.
func (s *store) query(ctx context.Context, date string, game games.Game, limit int) ([]Entry, error) {
	cfg := games.ConfigFor(game)
	q := fmt.Sprintf(`
		SELECT id, user_id, display_name, puzzle_date, moves, hints_used, total_time, score, completed_at
		FROM leaderboard_entries
		WHERE game = ? AND puzzle_date = ?
		ORDER BY %s
	`, orderClause(game))
	args := []any{cfg.LeaderboardCollection, date}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var completedAt int64
		if err := rows.Scan(&e.ID, &e.UserID, &e.DisplayName, &e.PuzzleDate, &e.Moves, &e.HintsUsed, &e.TotalTime, &e.Score, &completedAt); err != nil {
			log.Error("Failed to scan leaderboard row", "error", err)
			continue
		}
		e.CompletedAt = time.Unix(completedAt, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *store) setView(entries []Entry, date string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entries == nil {
		entries = []Entry{}
	}
	s.current = entries
	s.currentDate = date
	s.lastErr = err
}

func (s *store) setError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
}
