package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		Mounts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "widget_mounts_total",
			Help: "The total number of widget mounts.",
		}),
		AuthTransitions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "widget_auth_transitions_total",
			Help: "The total number of session transitions published to the host.",
		}),
		ScoreSubmissions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "widget_score_submissions_total",
			Help: "The total number of score submissions forwarded to the leaderboard.",
		}),
		LeaderboardFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "widget_leaderboard_fetch_duration_seconds",
			Help:    "The duration of individual leaderboard fetches.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		DigestSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "widget_digest_notifications_sent_total",
			Help: "The total number of leaderboard digests successfully sent.",
		}),
		DigestFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "widget_digest_notifications_failed_total",
			Help: "The total number of leaderboard digests that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "widget_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.Mounts,
		s.AuthTransitions,
		s.ScoreSubmissions,
		s.LeaderboardFetchDuration,
		s.DigestSent,
		s.DigestFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncMounts() {
	s.Mounts.Inc()
}

func (s *Service) IncAuthTransitions() {
	s.AuthTransitions.Inc()
}

func (s *Service) IncScoreSubmissions() {
	s.ScoreSubmissions.Inc()
}

func (s *Service) ObserveLeaderboardFetchDuration(duration float64) {
	s.LeaderboardFetchDuration.Observe(duration)
}

func (s *Service) IncDigestSent() {
	s.DigestSent.Inc()
}

func (s *Service) IncDigestFailed() {
	s.DigestFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
