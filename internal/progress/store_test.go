package progress_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/puzzlehut/daily-widget/internal/database"
	"github.com/puzzlehut/daily-widget/internal/games"
	"github.com/puzzlehut/daily-widget/internal/identity"
	"github.com/puzzlehut/daily-widget/internal/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (progress.Store, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := progress.New(db)
	return store, db, dbTeardown
}

func TestFetchCompletedGames_EmptyForNewActor(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	dates, err := store.FetchCompletedGames(context.Background(), identity.Anonymous(), games.Connections)
	require.NoError(t, err)
	assert.Empty(t, dates)
	assert.Equal(t, progress.StateReady, store.StateFor(identity.Anonymous(), games.Connections))
}

func TestMarkGameAsCompleted_Guest(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	guest := identity.Anonymous()
	err := store.MarkGameAsCompleted(context.Background(), guest, games.Connections, "2025-01-15")
	require.NoError(t, err)

	dates, err := store.FetchCompletedGames(context.Background(), guest, games.Connections)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-15"}, dates)
	assert.True(t, store.IsGameCompleted(guest, games.Connections, "2025-01-15"))
}

func TestMarkGameAsCompleted_IsIdempotent(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	user := identity.Authenticated("user-1", "u@example.com", "User One")
	for i := 0; i < 3; i++ {
		require.NoError(t, store.MarkGameAsCompleted(context.Background(), user, games.WordFumble, "2025-01-15"))
	}

	dates, err := store.FetchCompletedGames(context.Background(), user, games.WordFumble)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-15"}, dates, "marking the same date twice must not duplicate it")
}

func TestProgressIsIsolatedPerActorAndGame(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	ctx := context.Background()
	guest := identity.Anonymous()
	userA := identity.Authenticated("user-a", "a@example.com", "A")
	userB := identity.Authenticated("user-b", "b@example.com", "B")

	require.NoError(t, store.MarkGameAsCompleted(ctx, guest, games.Connections, "2025-01-01"))
	require.NoError(t, store.MarkGameAsCompleted(ctx, userA, games.Connections, "2025-01-02"))
	require.NoError(t, store.MarkGameAsCompleted(ctx, userA, games.WordFumble, "2025-01-03"))

	dates, err := store.FetchCompletedGames(ctx, guest, games.Connections)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-01"}, dates)

	dates, err = store.FetchCompletedGames(ctx, userA, games.Connections)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-02"}, dates)

	dates, err = store.FetchCompletedGames(ctx, userA, games.WordFumble)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-01-03"}, dates)

	dates, err = store.FetchCompletedGames(ctx, userB, games.Connections)
	require.NoError(t, err)
	assert.Empty(t, dates, "another user's completions must not bleed through")
}

func TestFetchCompletedGames_RemoteFailureFailsOpen(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	// Force the read to fail.
	_, err := db.Exec("DROP TABLE progress")
	require.NoError(t, err)

	user := identity.Authenticated("user-1", "u@example.com", "User One")
	dates, err := store.FetchCompletedGames(context.Background(), user, games.Connections)
	require.NoError(t, err, "remote read failures must not surface")
	assert.Empty(t, dates)
	assert.Equal(t, progress.StateReady, store.StateFor(user, games.Connections))
}

func TestMarkGameAsCompleted_RemoteFailureIsSwallowed(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	_, err := db.Exec("DROP TABLE progress")
	require.NoError(t, err)

	user := identity.Authenticated("user-1", "u@example.com", "User One")
	err = store.MarkGameAsCompleted(context.Background(), user, games.Connections, "2025-01-15")
	assert.NoError(t, err, "remote write failures are logged, not returned")
}

func TestMarkGameAsCompleted_GuestFailurePropagates(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	_, err := db.Exec("DROP TABLE guest_progress")
	require.NoError(t, err)

	err = store.MarkGameAsCompleted(context.Background(), identity.Anonymous(), games.Connections, "2025-01-15")
	assert.Error(t, err, "guest storage failures surface to the caller")
}

func TestCompletedGamesReturnsCopy(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	guest := identity.Anonymous()
	require.NoError(t, store.MarkGameAsCompleted(context.Background(), guest, games.Connections, "2025-01-15"))

	dates := store.CompletedGames(guest, games.Connections)
	dates[0] = "mutated"

	assert.Equal(t, []string{"2025-01-15"}, store.CompletedGames(guest, games.Connections))
}
