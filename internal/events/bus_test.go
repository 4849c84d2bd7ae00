package events_test

import (
	"testing"

	"github.com/puzzlehut/daily-widget/internal/events"
	"github.com/puzzlehut/daily-widget/internal/games"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDeliversToAllSubscribers(t *testing.T) {
	bus := events.New()

	var first, second int
	bus.Subscribe(events.GameCompleted, func(e events.Event) { first++ })
	bus.Subscribe(events.GameCompleted, func(e events.Event) { second++ })

	err := bus.Publish(events.GameCompleted, events.GameCompletedPayload{Date: "2025-01-15", Game: games.Connections})
	require.NoError(t, err)

	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}

func TestPublishWithNoSubscribersIsDropped(t *testing.T) {
	bus := events.New()

	// No subscribers, no buffering: the event just disappears.
	err := bus.Publish(events.ShowAuthModal, nil)
	require.NoError(t, err)

	var called bool
	bus.Subscribe(events.ShowAuthModal, func(e events.Event) { called = true })
	assert.False(t, called, "a late subscriber should not see earlier events")
}

func TestPublishIsSynchronous(t *testing.T) {
	bus := events.New()

	var seen []string
	bus.Subscribe(events.ShowLeaderboard, func(e events.Event) { seen = append(seen, "handler") })

	bus.Publish(events.ShowLeaderboard, nil)
	seen = append(seen, "after")

	require.Equal(t, []string{"handler", "after"}, seen)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := events.New()

	var calls int
	sub := bus.Subscribe(events.ShowAuthModal, func(e events.Event) { calls++ })

	bus.Publish(events.ShowAuthModal, nil)
	bus.Unsubscribe(sub)
	bus.Publish(events.ShowAuthModal, nil)

	assert.Equal(t, 1, calls)
}

func TestDeliveryIsScopedToTopic(t *testing.T) {
	bus := events.New()

	var calls int
	bus.Subscribe(events.ShowAuthModal, func(e events.Event) { calls++ })

	bus.Publish(events.ShowLeaderboard, nil)
	assert.Equal(t, 0, calls)
}

func TestDecodeRoundTripsPayload(t *testing.T) {
	bus := events.New()

	var got events.SubmitScorePayload
	bus.Subscribe(events.SubmitScore, func(e events.Event) {
		require.NoError(t, events.Decode(e, &got))
	})

	sent := events.SubmitScorePayload{
		DisplayName: "Test Player",
		Stats:       events.Stats{Moves: 6, HintsUsed: 1, TotalTime: 92, Score: 80},
		PuzzleDate:  "2025-01-15",
		Game:        games.Connections,
	}
	require.NoError(t, bus.Publish(events.SubmitScore, sent))

	assert.Equal(t, sent, got)
}
