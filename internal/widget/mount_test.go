package widget_test

import (
	"testing"

	"github.com/puzzlehut/daily-widget/internal/analytics"
	"github.com/puzzlehut/daily-widget/internal/events"
	"github.com/puzzlehut/daily-widget/internal/identity"
	"github.com/puzzlehut/daily-widget/internal/leaderboard"
	"github.com/puzzlehut/daily-widget/internal/metrics"
	"github.com/puzzlehut/daily-widget/internal/progress"
	"github.com/puzzlehut/daily-widget/internal/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRegistry(t *testing.T) (*widget.Registry, *metrics.Mock) {
	t.Helper()

	bus := events.New()
	tracker := identity.NewTracker(identity.NewMockProvider(), bus)
	metricsSvc := metrics.NewMock()
	factory := func() *widget.Shell {
		return widget.NewShell(bus, tracker, progress.NewMock(), leaderboard.NewMock(), metricsSvc, analytics.NewMock())
	}
	return widget.NewRegistry(factory, metricsSvc), metricsSvc
}

func TestMountIntoSlot(t *testing.T) {
	registry, metricsSvc := setupRegistry(t)

	shell := registry.Mount("sidebar")
	require.NotNil(t, shell)
	assert.Same(t, shell, registry.Get("sidebar"))
	assert.Equal(t, 1, metricsSvc.Mounts())
}

func TestMountWithoutSlotIsRejected(t *testing.T) {
	registry, metricsSvc := setupRegistry(t)

	shell := registry.Mount("")
	assert.Nil(t, shell)
	assert.Equal(t, 0, metricsSvc.Mounts())
}

func TestMountingOccupiedSlotReturnsExistingShell(t *testing.T) {
	registry, metricsSvc := setupRegistry(t)

	first := registry.Mount("sidebar")
	second := registry.Mount("sidebar")

	assert.Same(t, first, second, "remounting must not replace the existing widget")
	assert.Equal(t, 1, metricsSvc.Mounts())
}

func TestUnmountRemovesShell(t *testing.T) {
	registry, _ := setupRegistry(t)

	registry.Mount("sidebar")
	registry.Unmount("sidebar")

	assert.Nil(t, registry.Get("sidebar"))
}

func TestUnmountEmptySlotIsNoOp(t *testing.T) {
	registry, _ := setupRegistry(t)

	// Must not panic or disturb other slots.
	registry.Unmount("nothing-here")

	registry.Mount("sidebar")
	registry.Unmount("nothing-here")
	assert.NotNil(t, registry.Get("sidebar"))
}

func TestAutoMount(t *testing.T) {
	registry, _ := setupRegistry(t)

	assert.Nil(t, registry.AutoMount(""), "no marker slot, no auto-mount")

	shell := registry.AutoMount("auto-slot")
	require.NotNil(t, shell)
	assert.Same(t, shell, registry.Get("auto-slot"))
}
