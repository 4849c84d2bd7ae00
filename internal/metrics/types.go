package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	Mounts                   prometheus.Counter
	AuthTransitions          prometheus.Counter
	ScoreSubmissions         prometheus.Counter
	LeaderboardFetchDuration prometheus.Histogram
	DigestSent               prometheus.Counter
	DigestFailed             prometheus.Counter
	StartupTimeSeconds       prometheus.Gauge
}
