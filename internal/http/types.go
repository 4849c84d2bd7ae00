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

type Server struct {
	Bus            events.Bus
	Registry       *widget.Registry
	Shell          *widget.Shell
	Leaderboard    leaderboard.Service
	Notifier       notifier.Notifier
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
}
