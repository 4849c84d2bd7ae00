package analytics

// Tracker relays usage events to the analytics pipeline. Tracking is
// best-effort: failures are logged and never block the widget.
type Tracker interface {
	Track(event EventName, properties map[string]any) error
}
