package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/conterGui/Aconchego-Pap/internal/models"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

// Publisher emits order lifecycle events. Publishing never fails the caller.
type Publisher interface {
	PublishOrderEvent(ctx context.Context, event models.OrderEvent)
	Close() error
}

// MessageWriter is the part of *kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	w MessageWriter
}

func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		Async:                  true,
		AllowAutoTopicCreation: true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Error().Err(err).Int("messages", len(messages)).Msg("Failed to deliver order events")
			}
		},
	}
}

func NewKafkaPublisher(w MessageWriter) Publisher {
	return &kafkaPublisher{w: w}
}

// PublishOrderEvent keys messages by order id so one order's events stay on one partition.
func (p *kafkaPublisher) PublishOrderEvent(ctx context.Context, event models.OrderEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("order_id", event.OrderID.String()).Msg("Failed to encode order event")
		return
	}
	msg := kafka.Message{
		Key:   []byte(event.OrderID.String()),
		Value: payload,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		log.Error().Err(err).Str("order_id", event.OrderID.String()).Str("type", event.Type).Msg("Failed to publish order event")
	}
}

func (p *kafkaPublisher) Close() error {
	return p.w.Close()
}

type noopPublisher struct{}

// NewNoopPublisher is used when no brokers are configured.
func NewNoopPublisher() Publisher { return noopPublisher{} }

func (noopPublisher) PublishOrderEvent(ctx context.Context, event models.OrderEvent) {
	log.Debug().Str("order_id", event.OrderID.String()).Str("type", event.Type).Msg("Order event dropped, no brokers configured")
}

func (noopPublisher) Close() error { return nil }
