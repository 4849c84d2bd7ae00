package events

// Bus carries named signals between the host application and the widget.
// Dispatch is synchronous on the publisher's goroutine, in subscription
// order, at most once per subscriber. Nothing is queued or retried when no
// listener is attached at publish time.
type Bus interface {
	Publish(t Type, payload any) error
	Subscribe(t Type, h Handler) Subscription
	Unsubscribe(sub Subscription)
}
