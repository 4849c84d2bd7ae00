package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncMounts()
	IncAuthTransitions()
	IncScoreSubmissions()
	ObserveLeaderboardFetchDuration(duration float64)
	IncDigestSent()
	IncDigestFailed()
	SetStartupTime(duration float64)
}
