package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/puzzlehut/daily-widget/internal/analytics"
	"github.com/puzzlehut/daily-widget/internal/config"
	"github.com/puzzlehut/daily-widget/internal/database"
	"github.com/puzzlehut/daily-widget/internal/events"
	"github.com/puzzlehut/daily-widget/internal/games"
	"github.com/puzzlehut/daily-widget/internal/identity"
	"github.com/puzzlehut/daily-widget/internal/leaderboard"
	"github.com/puzzlehut/daily-widget/internal/metrics"
	"github.com/puzzlehut/daily-widget/internal/notifier"
	"github.com/puzzlehut/daily-widget/internal/progress"
	"github.com/puzzlehut/daily-widget/internal/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serverFixture struct {
	server      *Server
	provider    *identity.MockProvider
	tracker     *identity.Tracker
	leaderboard leaderboard.Service
	notifier    *notifier.Mock
}

// setupTestServer initializes a new server against an in-memory database.
func setupTestServer(t *testing.T) (*serverFixture, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	bus := events.New()
	provider := identity.NewMockProvider()
	tracker := identity.NewTracker(provider, bus)
	progressStore := progress.New(db)
	leaderboardSvc := leaderboard.New(db, bus)
	notifierMock := notifier.NewMock()

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)

	usage := analytics.NewMock()
	shell := widget.NewShell(bus, tracker, progressStore, leaderboardSvc, metricsSvc, usage)
	registry := widget.NewRegistry(func() *widget.Shell {
		return widget.NewShell(bus, tracker, progressStore, leaderboardSvc, metricsSvc, usage)
	}, metricsSvc)

	server := NewServer(bus, registry, shell, leaderboardSvc, notifierMock, metricsSvc, metricsHandler, config.Config{})

	fixture := &serverFixture{
		server:      server,
		provider:    provider,
		tracker:     tracker,
		leaderboard: leaderboardSvc,
		notifier:    notifierMock,
	}
	teardown := func() {
		shell.Close()
		dbTeardown()
	}
	return fixture, teardown
}

func postJSON(t *testing.T, server *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest("POST", path, bytes.NewReader(data))
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	return rr
}

func get(t *testing.T, server *Server, path string) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest("GET", path, nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheckHandler(t *testing.T) {
	f, teardown := setupTestServer(t)
	defer teardown()

	rr := get(t, f.server, "/health")

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestSignUpHandler(t *testing.T) {
	f, teardown := setupTestServer(t)
	defer teardown()

	rr := postJSON(t, f.server, "/auth/signup", map[string]string{
		"email":       "new@example.com",
		"password":    "secret123",
		"displayName": "New Player",
	})

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		User *struct {
			UID         string `json:"uid"`
			DisplayName string `json:"displayName"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotNil(t, resp.User)
	assert.Equal(t, "New Player", resp.User.DisplayName)
	assert.False(t, f.tracker.Current().IsAnonymous())
}

func TestSignUpHandler_ValidationFailure(t *testing.T) {
	f, teardown := setupTestServer(t)
	defer teardown()

	rr := postJSON(t, f.server, "/auth/signup", map[string]string{
		"email":       "not-an-email",
		"password":    "secret123",
		"displayName": "New Player",
	})

	require.Equal(t, http.StatusBadRequest, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "email", resp["field"])
	assert.Empty(t, f.provider.SignUpCalls, "invalid input must not reach the provider")
}

func TestSignInHandler_ProviderRejection(t *testing.T) {
	f, teardown := setupTestServer(t)
	defer teardown()
	f.provider.SignInFunc = func(ctx context.Context, email, password string) (identity.Session, error) {
		return identity.Anonymous(), &identity.IdentityError{Code: "INVALID_PASSWORD", Message: "Incorrect email or password"}
	}

	rr := postJSON(t, f.server, "/auth/signin", map[string]string{
		"email":    "user@example.com",
		"password": "wrongpass1",
	})

	require.Equal(t, http.StatusUnauthorized, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_PASSWORD", resp["code"])
}

func TestSignOutHandler(t *testing.T) {
	f, teardown := setupTestServer(t)
	defer teardown()
	_, err := f.tracker.SignIn(context.Background(), "user@example.com", "secret123")
	require.NoError(t, err)

	rr := get(t, f.server, "/auth/signout")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, f.tracker.Current().IsAnonymous())
}

func TestShowAuthHandlerOpensModal(t *testing.T) {
	f, teardown := setupTestServer(t)
	defer teardown()

	rr := get(t, f.server, "/show-auth")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, widget.ModalAuth, f.server.Shell.Modal())
}

func TestWidgetStateHandler(t *testing.T) {
	f, teardown := setupTestServer(t)
	defer teardown()

	get(t, f.server, "/show-leaderboard")
	rr := get(t, f.server, "/widget/state")
	require.Equal(t, http.StatusOK, rr.Code)

	var view widget.ViewState
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Equal(t, widget.ModalLeaderboard, view.Modal)
	assert.Nil(t, view.User)
}

func TestMountHandler(t *testing.T) {
	f, teardown := setupTestServer(t)
	defer teardown()

	rr := get(t, f.server, "/widget/mount?slot=sidebar")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotNil(t, f.server.Registry.Get("sidebar"))

	rr = get(t, f.server, "/widget/mount")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = get(t, f.server, "/widget/unmount?slot=sidebar")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Nil(t, f.server.Registry.Get("sidebar"))
}

func TestLeaderboardHandler(t *testing.T) {
	f, teardown := setupTestServer(t)
	defer teardown()

	require.NoError(t, f.leaderboard.SubmitScore(context.Background(), "user-1", "Player", events.Stats{Score: 90}, "2025-01-15", games.Connections))

	rr := get(t, f.server, "/leaderboard?game=nfl-connections&date=2025-01-15")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Entries     []leaderboard.Entry `json:"entries"`
		CurrentDate string              `json:"currentDate"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "2025-01-15", resp.CurrentDate)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "Player", resp.Entries[0].DisplayName)
}

func TestLeaderboardHandler_UnknownGame(t *testing.T) {
	f, teardown := setupTestServer(t)
	defer teardown()

	rr := get(t, f.server, "/leaderboard?game=checkers&date=2025-01-15")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSubmitScoreHandler_AnonymousIsAcceptedButDropped(t *testing.T) {
	f, teardown := setupTestServer(t)
	defer teardown()

	rr := postJSON(t, f.server, "/submit-score", map[string]any{
		"displayName": "Ghost",
		"gameStats":   map[string]any{"score": 100},
		"puzzleDate":  "2025-01-15",
		"game":        "nfl-connections",
	})
	require.Equal(t, http.StatusAccepted, rr.Code)

	entries, err := f.leaderboard.FetchLeaderboardForDate(context.Background(), "2025-01-15", games.Connections)
	require.NoError(t, err)
	assert.Empty(t, entries, "anonymous submissions never land on the board")
}

func TestSubmitScoreHandler_SignedIn(t *testing.T) {
	f, teardown := setupTestServer(t)
	defer teardown()
	_, err := f.tracker.SignIn(context.Background(), "user@example.com", "secret123")
	require.NoError(t, err)

	rr := postJSON(t, f.server, "/submit-score", map[string]any{
		"displayName": "Player",
		"gameStats":   map[string]any{"moves": 5, "totalTime": 60, "score": 100},
		"puzzleDate":  "2025-01-15",
		"game":        "nfl-connections",
	})
	require.Equal(t, http.StatusAccepted, rr.Code)

	entries, err := f.leaderboard.FetchLeaderboardForDate(context.Background(), "2025-01-15", games.Connections)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "mock-user", entries[0].UserID)
	assert.Equal(t, 100, entries[0].Score)
}

func TestRankHandler(t *testing.T) {
	f, teardown := setupTestServer(t)
	defer teardown()

	require.NoError(t, f.leaderboard.SubmitScore(context.Background(), "user-1", "Player", events.Stats{Score: 90}, "2025-01-15", games.Connections))

	rr := get(t, f.server, "/rank?game=nfl-connections&date=2025-01-15&userId=user-1")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Rank int `json:"rank"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Rank)

	rr = get(t, f.server, "/rank?game=nfl-connections&date=2025-01-15&userId=nobody")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGameCompletedAndCompletedGamesHandlers(t *testing.T) {
	f, teardown := setupTestServer(t)
	defer teardown()

	rr := postJSON(t, f.server, "/game-completed", map[string]string{
		"gameDate": "2025-01-15",
		"game":     "nfl-connections",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = get(t, f.server, "/completed-games?game=nfl-connections")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		CompletedGames []string `json:"completedGames"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, []string{"2025-01-15"}, resp.CompletedGames)

	// Other games stay untouched.
	rr = get(t, f.server, "/completed-games?game=nfl-word-fumble")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Empty(t, resp.CompletedGames)
}

func TestNotifyDigestHandler(t *testing.T) {
	f, teardown := setupTestServer(t)
	defer teardown()

	require.NoError(t, f.leaderboard.SubmitScore(context.Background(), "user-1", "Player", events.Stats{Score: 90}, "2025-01-15", games.Connections))

	rr := get(t, f.server, "/notify-digest?game=nfl-connections&date=2025-01-15&dry_run=true")
	require.Equal(t, http.StatusOK, rr.Code)

	require.Len(t, f.notifier.SendLeaderboardDigestCalls, 1)
	call := f.notifier.SendLeaderboardDigestCalls[0]
	assert.True(t, call.DryRun)
	assert.Equal(t, games.Connections, call.Game)
	require.Len(t, call.Entries, 1)
}
