package analytics

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	topic    string
	teardown func()
}

// EventName represents the type of usage event relayed to the analytics topic.
type EventName string

const (
	EventModalOpen       EventName = "modal-open"
	EventModalClose      EventName = "modal-close"
	EventLoginAttempt    EventName = "login-attempt"
	EventLoginSuccess    EventName = "login-success"
	EventLoginError      EventName = "login-error"
	EventSignupSuccess   EventName = "signup-success"
	EventLogout          EventName = "logout"
	EventProfileUpdate   EventName = "profile-update"
	EventScoreSubmission EventName = "score-submission"
	EventLeaderboardView EventName = "leaderboard-view"
	EventGameCompleted   EventName = "game-completed"
)

// Payload is the record published for every tracked event.
type Payload struct {
	Event      EventName      `msgpack:"event"`
	Properties map[string]any `msgpack:"properties"`
	Timestamp  int64          `msgpack:"timestamp"`
}
