package feed

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	accountdomain "soapee/backend/internal/account/domain"
)

// KafkaPublisher publishes account events to a Kafka topic using segmentio/kafka-go.
type KafkaPublisher struct {
	writer *kafka.Writer
	topic  string
}

// NewKafkaPublisher creates a publisher that writes account events to the
// given topic. Returns (nil, nil) when brokers or topic are unset, so the
// caller can wire a disabled feed without special-casing. Call Close when
// shutting down.
func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	if len(brokers) == 0 || topic == "" {
		return nil, nil
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
	}
	return &KafkaPublisher{writer: writer, topic: topic}, nil
}

// PublishAccountCreated serializes an account-created event as JSON and
// writes it to the feed topic, keyed by account name so one account's events
// stay ordered.
func (p *KafkaPublisher) PublishAccountCreated(ctx context.Context, a *accountdomain.Account) error {
	if p == nil || p.writer == nil || a == nil {
		return nil
	}
	event := NewAccountCreatedEvent(uuid.New().String(), a)
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return p.writer.WriteMessages(writeCtx, kafka.Message{
		Key:   []byte(event.Account.Name),
		Value: payload,
	})
}

// Close closes the Kafka writer. Safe to call multiple times and on nil.
func (p *KafkaPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
