package http

import (
	"net/http"

	"github.com/puzzlehut/daily-widget/internal/config"
	"github.com/puzzlehut/daily-widget/internal/events"
	"github.com/puzzlehut/daily-widget/internal/leaderboard"
	"github.com/puzzlehut/daily-widget/internal/metrics"
	"github.com/puzzlehut/daily-widget/internal/notifier"
	"github.com/puzzlehut/daily-widget/internal/widget"
)

func NewServer(bus events.Bus, registry *widget.Registry, shell *widget.Shell, leaderboardSvc leaderboard.Service, notifier notifier.Notifier, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config) *Server {
	server := &Server{
		Bus:            bus,
		Registry:       registry,
		Shell:          shell,
		Leaderboard:    leaderboardSvc,
		Notifier:       notifier,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/widget/state", Chain(s.WidgetStateHandler(), paramsMiddleware))
	s.Router.Handle("/widget/mount", Chain(s.MountHandler(), paramsMiddleware))
	s.Router.Handle("/widget/unmount", Chain(s.UnmountHandler(), paramsMiddleware))
	s.Router.Handle("/auth/signup", Chain(s.SignUpHandler(), paramsMiddleware))
	s.Router.Handle("/auth/signin", Chain(s.SignInHandler(), paramsMiddleware))
	s.Router.Handle("/auth/signin-popup", Chain(s.SignInPopupHandler(), paramsMiddleware))
	s.Router.Handle("/auth/signout", Chain(s.SignOutHandler(), paramsMiddleware))
	s.Router.Handle("/auth/profile", Chain(s.UpdateProfileHandler(), paramsMiddleware))
	s.Router.Handle("/show-auth", Chain(s.ShowAuthHandler(), paramsMiddleware))
	s.Router.Handle("/show-leaderboard", Chain(s.ShowLeaderboardHandler(), paramsMiddleware))
	s.Router.Handle("/leaderboard", Chain(s.LeaderboardHandler(), paramsMiddleware))
	s.Router.Handle("/submit-score", Chain(s.SubmitScoreHandler(), paramsMiddleware))
	s.Router.Handle("/rank", Chain(s.RankHandler(), paramsMiddleware))
	s.Router.Handle("/completed-games", Chain(s.CompletedGamesHandler(), paramsMiddleware))
	s.Router.Handle("/game-completed", Chain(s.GameCompletedHandler(), paramsMiddleware))
	s.Router.Handle("/notify-digest", Chain(s.NotifyDigestHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
