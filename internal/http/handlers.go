package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/puzzlehut/daily-widget/internal/events"
	"github.com/puzzlehut/daily-widget/internal/games"
	"github.com/puzzlehut/daily-widget/internal/identity"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) WidgetStateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.Shell.Render())
	}
}

func (s *Server) MountHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slot := r.URL.Query().Get("slot")
		if shell := s.Registry.Mount(slot); shell == nil {
			http.Error(w, "No slot given", http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "Mounted into %s", slot)
	}
}

func (s *Server) UnmountHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slot := r.URL.Query().Get("slot")
		s.Registry.Unmount(slot)
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "Unmounted %s", slot)
	}
}

type authRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

func (s *Server) SignUpHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req authRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		session, err := s.Shell.SignUp(r.Context(), req.Email, req.Password, req.DisplayName)
		if err != nil {
			writeAuthError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse(session))
	}
}

func (s *Server) SignInHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req authRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		session, err := s.Shell.SignIn(r.Context(), req.Email, req.Password)
		if err != nil {
			writeAuthError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse(session))
	}
}

func (s *Server) SignInPopupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := s.Shell.SignInWithPopup(r.Context())
		if err != nil {
			writeAuthError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse(session))
	}
}

func (s *Server) SignOutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Shell.SignOut(r.Context()); err != nil {
			log.Error("Sign-out error", "error", err)
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Signed out")
	}
}

func (s *Server) UpdateProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req authRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		session, err := s.Shell.UpdateDisplayName(r.Context(), req.DisplayName)
		if err != nil {
			writeAuthError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse(session))
	}
}

func (s *Server) ShowAuthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Bus.Publish(events.ShowAuthModal, nil)
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Auth modal opened")
	}
}

func (s *Server) ShowLeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Bus.Publish(events.ShowLeaderboard, nil)
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Leaderboard modal opened")
	}
}

func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		game, ok := gameParam(w, r)
		if !ok {
			return
		}
		date := r.URL.Query().Get("date")

		if err := s.Bus.Publish(events.FetchLeaderboard, events.FetchLeaderboardPayload{Date: date, Game: game}); err != nil {
			http.Error(w, "Failed to fetch leaderboard", http.StatusInternalServerError)
			return
		}

		// Dispatch is synchronous, so the view is current by now.
		entries, currentDate := s.Leaderboard.Current()
		resp := map[string]any{
			"entries":     entries,
			"currentDate": currentDate,
		}
		if err := s.Leaderboard.Err(); err != nil {
			resp["error"] = "Failed to load leaderboard"
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

type submitScoreRequest struct {
	DisplayName string       `json:"displayName"`
	Stats       events.Stats `json:"gameStats"`
	PuzzleDate  string       `json:"puzzleDate"`
	Game        games.Game   `json:"game"`
}

func (s *Server) SubmitScoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitScoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if !games.Valid(req.Game) {
			http.Error(w, "Unknown game", http.StatusBadRequest)
			return
		}

		s.Bus.Publish(events.SubmitScore, events.SubmitScorePayload{
			DisplayName: req.DisplayName,
			Stats:       req.Stats,
			PuzzleDate:  req.PuzzleDate,
			Game:        req.Game,
		})
		// The widget drops anonymous submissions silently; accepted either way.
		w.WriteHeader(http.StatusAccepted)
		fmt.Fprint(w, "Score submitted")
	}
}

func (s *Server) RankHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		game, ok := gameParam(w, r)
		if !ok {
			return
		}
		userID := r.URL.Query().Get("userId")
		date := r.URL.Query().Get("date")

		rank, entry, err := s.Leaderboard.GetUserRank(r.Context(), userID, date, game)
		if err != nil {
			http.Error(w, "Failed to get rank", http.StatusInternalServerError)
			return
		}
		if rank == 0 {
			writeJSON(w, http.StatusNotFound, map[string]any{"error": "No entry for user"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"rank": rank, "entry": entry})
	}
}

func (s *Server) CompletedGamesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		game, ok := gameParam(w, r)
		if !ok {
			return
		}

		// Capture the widget's answer off the bus; dispatch is synchronous.
		var captured *events.CompletedGamesPayload
		sub := s.Bus.Subscribe(events.CompletedGamesUpdated, func(e events.Event) {
			var payload events.CompletedGamesPayload
			if err := events.Decode(e, &payload); err == nil {
				captured = &payload
			}
		})
		defer s.Bus.Unsubscribe(sub)

		s.Bus.Publish(events.FetchCompletedGames, events.FetchCompletedGamesPayload{Game: game})

		if captured == nil {
			writeJSON(w, http.StatusOK, map[string]any{"completedGames": []string{}})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"completedGames": captured.CompletedGames})
	}
}

type gameCompletedRequest struct {
	Date string     `json:"gameDate"`
	Game games.Game `json:"game"`
}

func (s *Server) GameCompletedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req gameCompletedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if !games.Valid(req.Game) {
			http.Error(w, "Unknown game", http.StatusBadRequest)
			return
		}

		s.Bus.Publish(events.GameCompleted, events.GameCompletedPayload{Date: req.Date, Game: req.Game})
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Game completion recorded")
	}
}

func (s *Server) NotifyDigestHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		game, ok := gameParam(w, r)
		if !ok {
			return
		}
		date := r.URL.Query().Get("date")
		isDryRun := isDryRunFromContext(r)

		entries, err := s.Leaderboard.FetchLeaderboardForDate(r.Context(), date, game)
		if err != nil {
			http.Error(w, "Failed to fetch leaderboard", http.StatusInternalServerError)
			return
		}
		if err := s.Notifier.SendLeaderboardDigest(entries, game, date, isDryRun); err != nil {
			http.Error(w, "Failed to send digest", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Digest sent")
	}
}

func gameParam(w http.ResponseWriter, r *http.Request) (games.Game, bool) {
	game := games.Game(r.URL.Query().Get("game"))
	if !games.Valid(game) {
		http.Error(w, "Unknown game", http.StatusBadRequest)
		return "", false
	}
	return game, true
}

func sessionResponse(session identity.Session) map[string]any {
	if session.IsAnonymous() {
		return map[string]any{"user": nil}
	}
	return map[string]any{"user": map[string]string{
		"uid":         session.UserID,
		"email":       session.Email,
		"displayName": session.DisplayName,
	}}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

// writeAuthError maps the error taxonomy to responses: validation failures
// carry the offending field, provider rejections a dismissible message.
func writeAuthError(w http.ResponseWriter, err error) {
	var validationErr *identity.ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"field": validationErr.Field,
			"error": validationErr.Message,
		})
		return
	}
	var identityErr *identity.IdentityError
	if errors.As(err, &identityErr) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"code":  identityErr.Code,
			"error": identityErr.Message,
		})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "An unexpected error occurred"})
}
