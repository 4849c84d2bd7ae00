package events

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

type subscriber struct {
	id      Subscription
	topic   Type
	handler Handler
}

type bus struct {
	mu     sync.RWMutex
	nextID Subscription
	subs   map[Type][]subscriber
}

// New creates an in-process Bus.
func New() Bus {
	return &bus{
		subs: make(map[Type][]subscriber),
	}
}

// Publish encodes the payload and delivers it to every current subscriber of
// the topic. Events with no subscribers are dropped.
func (b *bus) Publish(t Type, payload any) error {
	data, err := msgpack.Marshal(payload)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err, "type", t)
		return err
	}

	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs[t]))
	for _, sub := range b.subs[t] {
		handlers = append(handlers, sub.handler)
	}
	b.mu.RUnlock()

	event := Event{Type: t, Data: data}
	for _, h := range handlers {
		h(event)
	}
	return nil
}

func (b *bus) Subscribe(t Type, h Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[t] = append(b.subs[t], subscriber{id: id, topic: t, handler: h})
	return id
}

func (b *bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for topic, subs := range b.subs {
		for i, s := range subs {
			if s.id == sub {
				b.subs[topic] = append(subs[:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Decode unmarshals an event's payload into the consumer's own type.
func Decode(e Event, returnValue any) error {
	err := msgpack.Unmarshal(e.Data, returnValue)
	if err != nil {
		log.Error("MessagePack unmarshal error", "error", err, "type", e.Type)
		return err
	}
	return nil
}
