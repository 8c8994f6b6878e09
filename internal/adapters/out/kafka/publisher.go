// Package kafka provides the best-effort Kafka producer for order lifecycle
// events. Only order status changes go to the broker; realtime driver
// positions stay on the in-process relay.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"foodcourt/internal/core/application/events"

	"github.com/labstack/gommon/log"
	"github.com/twmb/franz-go/pkg/kgo"
)

const produceTimeout = 5 * time.Second

// OrderChangedProducer publishes order:changed events to a Kafka topic.
// Delivery is fire-and-forget: broker failures are logged, never surfaced
// to the business operation that triggered the event.
type OrderChangedProducer struct {
	client *kgo.Client
	topic  string
}

// NewOrderChangedProducer creates a producer for the given brokers and topic.
func NewOrderChangedProducer(brokers []string, topic string) (*OrderChangedProducer, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.AllowAutoTopicCreation(),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerLinger(10*time.Millisecond),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}

	return &OrderChangedProducer{
		client: client,
		topic:  topic,
	}, nil
}

// Publish implements events.Publisher. Events other than order status
// changes are ignored.
func (p *OrderChangedProducer) Publish(event events.Event) {
	if event.EventName() != events.OrderChangedName {
		return
	}

	data, err := json.Marshal(event.EventPayload())
	if err != nil {
		log.Errorf("kafka: marshal %s event: %v", event.EventName(), err)
		return
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(event.EventKey()),
		Value: data,
		Headers: []kgo.RecordHeader{
			{Key: "event_type", Value: []byte(event.EventName())},
		},
		Timestamp: time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), produceTimeout)
	p.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		defer cancel()
		if err != nil {
			log.Errorf("kafka: produce order %s: %v", event.EventKey(), err)
		}
	})
}

// Close flushes pending records and releases the client.
func (p *OrderChangedProducer) Close() {
	p.client.Close()
}
