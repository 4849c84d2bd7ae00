package leaderboard_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/puzzlehut/daily-widget/internal/database"
	"github.com/puzzlehut/daily-widget/internal/events"
	"github.com/puzzlehut/daily-widget/internal/games"
	"github.com/puzzlehut/daily-widget/internal/leaderboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestService creates a temporary in-memory SQLite database for testing.
func setupTestService(t *testing.T) (leaderboard.Service, *events.MockBus, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	bus := events.NewMock()
	svc := leaderboard.New(db, bus)
	return svc, bus, dbTeardown
}

func TestFetchLeaderboardForDate_EmptyDayIsNotAnError(t *testing.T) {
	svc, _, teardown := setupTestService(t)
	defer teardown()

	entries, err := svc.FetchLeaderboardForDate(context.Background(), "2025-01-15", games.Connections)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NoError(t, svc.Err())
}

func TestFetchLeaderboardForDate_RejectsBlankDate(t *testing.T) {
	svc, _, teardown := setupTestService(t)
	defer teardown()

	_, err := svc.FetchLeaderboardForDate(context.Background(), "  ", games.Connections)
	require.ErrorIs(t, err, leaderboard.ErrInvalidDate)
	assert.ErrorIs(t, svc.Err(), leaderboard.ErrInvalidDate)
}

func TestSubmitScore_FirstWriterWins(t *testing.T) {
	svc, _, teardown := setupTestService(t)
	defer teardown()

	ctx := context.Background()
	first := events.Stats{Moves: 5, TotalTime: 60, Score: 90}
	second := events.Stats{Moves: 3, TotalTime: 30, Score: 100}

	require.NoError(t, svc.SubmitScore(ctx, "user-1", "Player", first, "2025-01-15", games.Connections))
	require.NoError(t, svc.SubmitScore(ctx, "user-1", "Player", second, "2025-01-15", games.Connections))

	entries, err := svc.FetchLeaderboardForDate(ctx, "2025-01-15", games.Connections)
	require.NoError(t, err)
	require.Len(t, entries, 1, "a second submission for the same day must be a no-op")
	assert.Equal(t, 90, entries[0].Score)
}

func TestFetchLeaderboardForDate_ConnectionsRanksByScoreDescending(t *testing.T) {
	svc, _, teardown := setupTestService(t)
	defer teardown()

	ctx := context.Background()
	require.NoError(t, svc.SubmitScore(ctx, "user-low", "Low", events.Stats{Score: 90}, "2025-01-15", games.Connections))
	require.NoError(t, svc.SubmitScore(ctx, "user-high", "High", events.Stats{Score: 100}, "2025-01-15", games.Connections))

	entries, err := svc.FetchLeaderboardForDate(ctx, "2025-01-15", games.Connections)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "user-high", entries[0].UserID)
	assert.Equal(t, "user-low", entries[1].UserID)
}

func TestFetchLeaderboardForDate_OtherGamesRankByTimeAscending(t *testing.T) {
	svc, _, teardown := setupTestService(t)
	defer teardown()

	ctx := context.Background()
	require.NoError(t, svc.SubmitScore(ctx, "user-slow", "Slow", events.Stats{TotalTime: 120}, "2025-01-15", games.WordFumble))
	require.NoError(t, svc.SubmitScore(ctx, "user-fast", "Fast", events.Stats{TotalTime: 45}, "2025-01-15", games.WordFumble))

	entries, err := svc.FetchLeaderboardForDate(ctx, "2025-01-15", games.WordFumble)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "user-fast", entries[0].UserID)
	assert.Equal(t, "user-slow", entries[1].UserID)
}

func TestLeaderboardsAreIsolatedPerGameAndDate(t *testing.T) {
	svc, _, teardown := setupTestService(t)
	defer teardown()

	ctx := context.Background()
	require.NoError(t, svc.SubmitScore(ctx, "user-1", "Player", events.Stats{Score: 90}, "2025-01-15", games.Connections))
	require.NoError(t, svc.SubmitScore(ctx, "user-1", "Player", events.Stats{TotalTime: 60}, "2025-01-15", games.WordFumble))
	require.NoError(t, svc.SubmitScore(ctx, "user-1", "Player", events.Stats{Score: 80}, "2025-01-16", games.Connections))

	entries, err := svc.FetchLeaderboardForDate(ctx, "2025-01-15", games.Connections)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	entries, err = svc.FetchLeaderboardForDate(ctx, "2025-01-16", games.Connections)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, 80, entries[0].Score)
}

func TestFetchLeaderboardForDate_PublishesLeaderboardData(t *testing.T) {
	svc, bus, teardown := setupTestService(t)
	defer teardown()

	ctx := context.Background()
	require.NoError(t, svc.SubmitScore(ctx, "user-1", "Player", events.Stats{Score: 90}, "2025-01-15", games.Connections))
	bus.Reset()

	_, err := svc.FetchLeaderboardForDate(ctx, "2025-01-15", games.Connections)
	require.NoError(t, err)

	calls := bus.PublishedOfType(events.LeaderboardData)
	require.Len(t, calls, 1)
	payload, ok := calls[0].Payload.(events.LeaderboardDataPayload)
	require.True(t, ok)
	assert.Equal(t, "2025-01-15", payload.CurrentDate)
	require.Len(t, payload.Entries, 1)
	assert.Equal(t, "Player", payload.Entries[0].DisplayName)
}

func TestFetchLeaderboardForDate_CapsTheView(t *testing.T) {
	svc, _, teardown := setupTestService(t)
	defer teardown()

	ctx := context.Background()
	for i := 0; i < 25; i++ {
		userID := fmt.Sprintf("user-%02d", i)
		require.NoError(t, svc.SubmitScore(ctx, userID, "Player", events.Stats{Score: i}, "2025-01-15", games.Connections))
	}

	entries, err := svc.FetchLeaderboardForDate(ctx, "2025-01-15", games.Connections)
	require.NoError(t, err)
	assert.Len(t, entries, 20)
}

func TestGetUserRank(t *testing.T) {
	svc, _, teardown := setupTestService(t)
	defer teardown()

	ctx := context.Background()
	require.NoError(t, svc.SubmitScore(ctx, "user-1", "First", events.Stats{Score: 100}, "2025-01-15", games.Connections))
	require.NoError(t, svc.SubmitScore(ctx, "user-2", "Second", events.Stats{Score: 80}, "2025-01-15", games.Connections))
	require.NoError(t, svc.SubmitScore(ctx, "user-3", "Third", events.Stats{Score: 60}, "2025-01-15", games.Connections))

	rank, entry, err := svc.GetUserRank(ctx, "user-2", "2025-01-15", games.Connections)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, 2, rank)
	assert.Equal(t, "Second", entry.DisplayName)

	rank, entry, err = svc.GetUserRank(ctx, "user-unknown", "2025-01-15", games.Connections)
	require.NoError(t, err)
	assert.Equal(t, 0, rank)
	assert.Nil(t, entry)
}

func TestCurrentReflectsLastFetch(t *testing.T) {
	svc, _, teardown := setupTestService(t)
	defer teardown()

	ctx := context.Background()
	require.NoError(t, svc.SubmitScore(ctx, "user-1", "Player", events.Stats{Score: 90}, "2025-01-15", games.Connections))

	entries, date := svc.Current()
	assert.Equal(t, "2025-01-15", date, "SubmitScore refreshes the view")
	assert.Len(t, entries, 1)

	_, err := svc.FetchLeaderboardForDate(ctx, "2025-01-16", games.Connections)
	require.NoError(t, err)

	entries, date = svc.Current()
	assert.Equal(t, "2025-01-16", date)
	assert.Empty(t, entries)
}
