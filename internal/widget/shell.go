package widget

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/puzzlehut/daily-widget/internal/analytics"
	"github.com/puzzlehut/daily-widget/internal/events"
	"github.com/puzzlehut/daily-widget/internal/games"
	"github.com/puzzlehut/daily-widget/internal/identity"
	"github.com/puzzlehut/daily-widget/internal/leaderboard"
	"github.com/puzzlehut/daily-widget/internal/metrics"
	"github.com/puzzlehut/daily-widget/internal/progress"
)

// NewShell creates the widget shell and wires it to the host-facing signals.
func NewShell(
	bus events.Bus,
	tracker *identity.Tracker,
	progressStore progress.Store,
	leaderboardSvc leaderboard.Service,
	metricsSvc metrics.Metrics,
	usage analytics.Tracker,
) *Shell {
	s := &Shell{
		bus:         bus,
		tracker:     tracker,
		progress:    progressStore,
		leaderboard: leaderboardSvc,
		metrics:     metricsSvc,
		analytics:   usage,
		modal:       ModalNone,
	}

	s.subs = append(s.subs,
		bus.Subscribe(events.ShowAuthModal, s.handleShowAuthModal),
		bus.Subscribe(events.ShowLeaderboard, s.handleShowLeaderboard),
		bus.Subscribe(events.SubmitScore, s.handleSubmitScore),
		bus.Subscribe(events.FetchLeaderboard, s.handleFetchLeaderboard),
		bus.Subscribe(events.FetchCompletedGames, s.handleFetchCompletedGames),
		bus.Subscribe(events.GameCompleted, s.handleGameCompleted),
		bus.Subscribe(events.AuthStateChanged, s.handleAuthStateChanged),
	)
	return s
}

// Close detaches the shell from the bus. In-flight operations are not
// cancelled; their results are simply no longer observed by anyone.
func (s *Shell) Close() {
	for _, sub := range s.subs {
		s.bus.Unsubscribe(sub)
	}
	s.subs = nil
}

// Render returns a snapshot of the shell's visible state.
func (s *Shell) Render() ViewState {
	s.mu.RLock()
	modal := s.modal
	s.mu.RUnlock()

	view := ViewState{Modal: modal}

	session := s.tracker.Current()
	if !session.IsAnonymous() {
		view.User = &events.User{
			UID:         session.UserID,
			Email:       session.Email,
			DisplayName: session.DisplayName,
		}
	}

	entries, date := s.leaderboard.Current()
	view.Leaderboard = entries
	view.LeaderboardDate = date
	if err := s.leaderboard.Err(); err != nil {
		view.LeaderboardError = err.Error()
	}
	return view
}

// Modal reports which overlay is currently open.
func (s *Shell) Modal() Modal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modal
}

// OpenAuthModal shows the sign-in/sign-up modal.
func (s *Shell) OpenAuthModal() {
	s.setModal(ModalAuth)
	s.track(analytics.EventModalOpen, map[string]any{"modal_type": "auth"})
}

// OpenLeaderboardModal shows the leaderboard modal.
func (s *Shell) OpenLeaderboardModal() {
	s.setModal(ModalLeaderboard)
	s.track(analytics.EventModalOpen, map[string]any{"modal_type": "leaderboard"})
}

// OpenEditProfileModal shows the edit-profile modal.
func (s *Shell) OpenEditProfileModal() {
	s.setModal(ModalEditProfile)
	s.track(analytics.EventModalOpen, map[string]any{"modal_type": "edit_profile"})
}

// CloseModal dismisses whatever modal is open.
func (s *Shell) CloseModal() {
	s.mu.Lock()
	closed := s.modal
	s.modal = ModalNone
	s.mu.Unlock()
	if closed != ModalNone {
		s.track(analytics.EventModalClose, map[string]any{"modal_type": string(closed)})
	}
}

// SignUp creates an account and closes the auth modal on success.
func (s *Shell) SignUp(ctx context.Context, email, password, displayName string) (identity.Session, error) {
	s.track(analytics.EventLoginAttempt, map[string]any{"method": "email", "signup": true})
	session, err := s.tracker.SignUp(ctx, email, password, displayName)
	if err != nil {
		return session, err
	}
	s.track(analytics.EventSignupSuccess, map[string]any{"method": "email"})
	s.CloseModal()
	return session, nil
}

// SignIn authenticates and closes the auth modal on success.
func (s *Shell) SignIn(ctx context.Context, email, password string) (identity.Session, error) {
	s.track(analytics.EventLoginAttempt, map[string]any{"method": "email"})
	session, err := s.tracker.SignIn(ctx, email, password)
	if err != nil {
		s.track(analytics.EventLoginError, map[string]any{"method": "email"})
		return session, err
	}
	s.track(analytics.EventLoginSuccess, map[string]any{"method": "email"})
	s.CloseModal()
	return session, nil
}

// SignInWithPopup runs the provider-hosted consent flow.
func (s *Shell) SignInWithPopup(ctx context.Context) (identity.Session, error) {
	s.track(analytics.EventLoginAttempt, map[string]any{"method": "popup"})
	session, err := s.tracker.SignInWithPopup(ctx)
	if err != nil {
		s.track(analytics.EventLoginError, map[string]any{"method": "popup"})
		return session, err
	}
	s.track(analytics.EventLoginSuccess, map[string]any{"method": "popup"})
	s.CloseModal()
	return session, nil
}

// SignOut clears the session.
func (s *Shell) SignOut(ctx context.Context) error {
	err := s.tracker.SignOut(ctx)
	s.track(analytics.EventLogout, nil)
	return err
}

// UpdateDisplayName edits the profile and closes the modal on success.
func (s *Shell) UpdateDisplayName(ctx context.Context, displayName string) (identity.Session, error) {
	session, err := s.tracker.UpdateDisplayName(ctx, displayName)
	if err != nil {
		s.track(analytics.EventProfileUpdate, map[string]any{"success": false})
		return session, err
	}
	s.track(analytics.EventProfileUpdate, map[string]any{"success": true})
	s.CloseModal()
	return session, nil
}

func (s *Shell) setModal(modal Modal) {
	s.mu.Lock()
	s.modal = modal
	s.mu.Unlock()
}

func (s *Shell) track(event analytics.EventName, properties map[string]any) {
	if s.analytics == nil {
		return
	}
	if err := s.analytics.Track(event, properties); err != nil {
		log.Debug("Analytics tracking failed", "event", event, "error", err)
	}
}

func (s *Shell) handleShowAuthModal(e events.Event) {
	s.OpenAuthModal()
}

func (s *Shell) handleShowLeaderboard(e events.Event) {
	s.OpenLeaderboardModal()
	s.track(analytics.EventLeaderboardView, map[string]any{
		"user_logged_in": !s.tracker.Current().IsAnonymous(),
	})
}

func (s *Shell) handleSubmitScore(e events.Event) {
	var payload events.SubmitScorePayload
	if err := events.Decode(e, &payload); err != nil {
		return
	}

	session := s.tracker.Current()
	if session.IsAnonymous() {
		// Anonymous submissions are silently dropped.
		log.Debug("Dropping score submission from anonymous actor", "game", payload.Game)
		return
	}

	s.metrics.IncScoreSubmissions()
	err := s.leaderboard.SubmitScore(context.Background(), session.UserID, payload.DisplayName, payload.Stats, payload.PuzzleDate, payload.Game)
	s.track(analytics.EventScoreSubmission, map[string]any{
		"success":     err == nil,
		"puzzle_date": payload.PuzzleDate,
	})
	if err != nil {
		log.Error("Score submission failed", "error", err, "game", payload.Game)
	}
}

func (s *Shell) handleFetchLeaderboard(e events.Event) {
	var payload events.FetchLeaderboardPayload
	if err := events.Decode(e, &payload); err != nil {
		return
	}

	start := time.Now()
	if _, err := s.leaderboard.FetchLeaderboardForDate(context.Background(), payload.Date, payload.Game); err != nil {
		log.Error("Leaderboard fetch failed", "error", err, "game", payload.Game, "date", payload.Date)
	}
	s.metrics.ObserveLeaderboardFetchDuration(time.Since(start).Seconds())
}

func (s *Shell) handleFetchCompletedGames(e events.Event) {
	var payload events.FetchCompletedGamesPayload
	if err := events.Decode(e, &payload); err != nil {
		return
	}

	session := s.tracker.Current()
	dates, err := s.progress.FetchCompletedGames(context.Background(), session, payload.Game)
	if err != nil {
		log.Error("Failed to fetch completed games", "error", err, "game", payload.Game)
		return
	}
	s.publishCompleted(payload.Game, dates)
}

func (s *Shell) handleGameCompleted(e events.Event) {
	var payload events.GameCompletedPayload
	if err := events.Decode(e, &payload); err != nil {
		return
	}

	session := s.tracker.Current()
	if err := s.progress.MarkGameAsCompleted(context.Background(), session, payload.Game, payload.Date); err != nil {
		log.Error("Failed to mark game as completed", "error", err, "game", payload.Game, "date", payload.Date)
		return
	}
	s.track(analytics.EventGameCompleted, map[string]any{"puzzle_date": payload.Date})
	s.publishCompleted(payload.Game, s.progress.CompletedGames(session, payload.Game))
}

func (s *Shell) handleAuthStateChanged(e events.Event) {
	s.metrics.IncAuthTransitions()
}

func (s *Shell) publishCompleted(game games.Game, dates []string) {
	if dates == nil {
		dates = []string{}
	}
	if err := s.bus.Publish(events.CompletedGamesUpdated, events.CompletedGamesPayload{
		CompletedGames: dates,
		Game:           game,
	}); err != nil {
		log.Error("Failed to publish completed games", "error", err)
	}
}
