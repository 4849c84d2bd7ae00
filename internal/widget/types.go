package widget

import (
	"sync"

	"github.com/puzzlehut/daily-widget/internal/analytics"
	"github.com/puzzlehut/daily-widget/internal/events"
	"github.com/puzzlehut/daily-widget/internal/identity"
	"github.com/puzzlehut/daily-widget/internal/leaderboard"
	"github.com/puzzlehut/daily-widget/internal/metrics"
	"github.com/puzzlehut/daily-widget/internal/progress"
)

// Modal identifies which overlay the shell is currently showing. At most one
// modal open at a time is a UI convention, not an enforced invariant.
type Modal string

const (
	ModalNone        Modal = "NONE"
	ModalAuth        Modal = "AUTH"
	ModalLeaderboard Modal = "LEADERBOARD"
	ModalEditProfile Modal = "EDIT_PROFILE"
)

// Shell composes session, completion and leaderboard state into a rendered
// view and relays signals to and from the host page via the event bus.
type Shell struct {
	bus         events.Bus
	tracker     *identity.Tracker
	progress    progress.Store
	leaderboard leaderboard.Service
	metrics     metrics.Metrics
	analytics   analytics.Tracker

	mu    sync.RWMutex
	modal Modal
	subs  []events.Subscription
}

// ViewState is a snapshot of everything the shell would render.
type ViewState struct {
	User             *events.User        `json:"user"`
	Modal            Modal               `json:"modal"`
	Leaderboard      []leaderboard.Entry `json:"leaderboard"`
	LeaderboardDate  string              `json:"leaderboardDate"`
	LeaderboardError string              `json:"leaderboardError,omitempty"`
}
