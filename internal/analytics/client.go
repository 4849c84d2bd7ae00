package analytics

import (
	"context"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// New creates a Tracker publishing to the given Pub/Sub topic.
func New(projectID, topic string) Tracker {
	ctx := context.Background()
	pubSubC, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		log.Fatalf("Failed to create analytics client: %v", err)
	}
	teardown := func() {
		pubSubC.Close()
	}

	return &client{
		client:   pubSubC,
		topic:    topic,
		teardown: teardown,
	}
}

func (c *client) Track(event EventName, properties map[string]any) error {
	ctx := context.Background()
	payload := Payload{
		Event:      event,
		Properties: properties,
		Timestamp:  time.Now().Unix(),
	}
	msgpackData, err := msgpack.Marshal(payload)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err, "event", event)
		return err
	}
	message := &pubsub.Message{
		Data: msgpackData,
	}
	result := c.client.Topic(c.topic).Publish(ctx, message)
	serverID, err := result.Get(ctx)
	if err != nil {
		log.Error("Failed to publish analytics event", "error", err, "event", event)
		return err
	}
	log.Debug("Tracked event", "event", event, "serverID", serverID)
	return nil
}
