package producer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
)

//go:generate mockgen -source=publisher.go -destination=mock/publisher_mock.go -package=mock

// Publisher pushes domain events to the broker. Implementations must
// be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, topic, key, eventType string, payload any) error
	Close() error
}

type kafkaPublisher struct {
	writer *kafkago.Writer
}

// NewKafkaPublisher wraps a configured writer. The writer owns the
// connection pool; Close releases it.
func NewKafkaPublisher(writer *kafkago.Writer) Publisher {
	return &kafkaPublisher{writer: writer}
}

func (p *kafkaPublisher) Publish(ctx context.Context, topic, key, eventType string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	msg := kafkago.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	}

	return p.writer.WriteMessages(ctx, msg)
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops every event. It stands in when the broker is not
// configured, so callers never branch on a nil publisher.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, string, string, any) error { return nil }

func (NopPublisher) Close() error { return nil }
